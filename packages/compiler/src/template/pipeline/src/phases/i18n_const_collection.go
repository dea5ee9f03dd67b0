package phases

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_instruction "ngc-ir/packages/compiler/src/template/pipeline/src/instruction"
	"ngc-ir/packages/compiler/src/util"
)

const (
	translationVarPrefix = "i18n_"
	icuMappingPrefix     = "I18N_EXP_"
)

var nonPublicNameChars = regexp.MustCompile(`[^A-Z0-9_]`)

// CollectI18nConsts declares a `$localize` variable for every extracted message and stores
// it in the consts: root block messages become consts referenced by their i18nStart ops,
// attribute messages are inlined into the extracted attributes and i18nAttributes configs.
func CollectI18nConsts(job *compilation.ComponentCompilationJob) {
	attrsByContext := make(map[ir.XrefId][]*ir.ExtractedAttributeOp)
	i18nAttrsByElement := make(map[ir.XrefId]*ir.I18nAttributesOp)
	exprsByElement := make(map[ir.XrefId][]*ir.I18nExpressionOp)
	messages := make(map[ir.XrefId]*ir.I18nMessageOp)

	for _, unit := range job.GetUnits() {
		for _, op := range unit.Ops() {
			switch o := op.(type) {
			case *ir.ExtractedAttributeOp:
				if o.I18nContext != ir.NoXref {
					attrsByContext[o.I18nContext] = append(attrsByContext[o.I18nContext], o)
				}
			case *ir.I18nAttributesOp:
				i18nAttrsByElement[o.Target] = o
			case *ir.I18nExpressionOp:
				if o.Usage == ir.I18nExpressionForI18nAttribute {
					exprsByElement[o.Target] = append(exprsByElement[o.Target], o)
				}
			case *ir.I18nMessageOp:
				messages[o.Xref] = o
			}
		}
	}

	valuesByContext := make(map[ir.XrefId]output.OutputExpression)
	messageConsts := make(map[ir.XrefId]ir.ConstIndex)
	c := &messageCollector{job: job, messages: messages}

	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetCreate().All() {
			msg, ok := op.(*ir.I18nMessageOp)
			if !ok {
				continue
			}
			// Sub-messages are declared together with their root message.
			if msg.MessagePlaceholder == "" {
				mainVar, stmts := c.collect(msg)
				if msg.I18nBlock != ir.NoXref {
					messageConsts[msg.I18nBlock] = job.AddConst(mainVar, stmts)
				} else {
					job.ConstsInitializers = append(job.ConstsInitializers, stmts...)
					valuesByContext[msg.I18nContext] = mainVar
					for _, attr := range attrsByContext[msg.I18nContext] {
						attr.Expression = mainVar.Clone()
					}
				}
			}
			unit.GetCreate().Remove(msg)
		}
	}
	if job.Err() != nil {
		return
	}

	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			elem, ok := op.(ir.ElementOrContainerOp)
			if !ok {
				continue
			}
			xref := elem.GetConsumesSlotTrait().Xref
			attrs, ok := i18nAttrsByElement[xref]
			if !ok {
				continue
			}
			exprs, ok := exprsByElement[xref]
			if !ok {
				ir.Assertf("could not find any i18n expressions associated with an I18nAttributes instruction")
			}
			seen := make(map[string]bool)
			var config []output.OutputExpression
			for _, expr := range exprs {
				if seen[expr.Name] {
					continue
				}
				seen[expr.Name] = true
				value, ok := valuesByContext[expr.Context]
				if !ok {
					ir.Assertf("could not find the value of i18n expression %q", expr.Name)
				}
				config = append(config, output.Literal(expr.Name), value)
			}
			idx := job.AddConst(output.LiteralArr(config...), nil)
			attrs.I18nAttributesConfig = &idx
		}
	}

	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			start, ok := op.(*ir.I18nStartOp)
			if !ok {
				continue
			}
			idx, ok := messageConsts[start.Root]
			if !ok {
				ir.Assertf("i18n start op with no corresponding message const")
			}
			start.MessageIndex = &idx
		}
	}
}

type messageCollector struct {
	job      *compilation.ComponentCompilationJob
	messages map[ir.XrefId]*ir.I18nMessageOp
}

// collect declares the variable of msg and of its sub-messages
func (c *messageCollector) collect(msg *ir.I18nMessageOp) (*output.ReadVarExpr, []output.OutputStatement) {
	var stmts []output.OutputStatement
	var subNames []string
	subVars := make(map[string][]output.OutputExpression)
	for _, subXref := range msg.SubMessages {
		sub := c.messages[subXref]
		subVar, subStmts := c.collect(sub)
		stmts = append(stmts, subStmts...)
		if _, ok := subVars[sub.MessagePlaceholder]; !ok {
			subNames = append(subNames, sub.MessagePlaceholder)
		}
		subVars[sub.MessagePlaceholder] = append(subVars[sub.MessagePlaceholder], subVar)
	}
	for _, name := range subNames {
		vars := subVars[name]
		if len(vars) == 1 {
			msg.Params.Set(name, vars[0])
			continue
		}
		msg.Params.Set(name, output.Literal(i18nEscape+icuMappingPrefix+name+i18nEscape))
		msg.PostprocessingParams.Set(name, output.LiteralArr(vars...))
	}

	mainVar := output.Variable(c.job.Pool.UniqueName(translationVarPrefix, true))
	localized, ok := c.localize(msg)
	if !ok {
		return mainVar, stmts
	}
	stmts = append(stmts,
		output.NewDeclareVarStmt(mainVar.Name, nil, output.StmtModifierNone, nil),
		output.NewExpressionStatement(output.Set(mainVar, localized, nil), nil),
	)

	if msg.NeedsPostprocessing || len(msg.PostprocessingParams.Keys) > 0 {
		var params output.OutputExpression
		if len(msg.PostprocessingParams.Keys) > 0 {
			params = sortedParamMap(msg.PostprocessingParams)
		}
		post := pipeline_instruction.I18nPostprocess(mainVar, params)
		stmts = append(stmts, output.NewExpressionStatement(output.Set(mainVar, post, nil), nil))
	}
	return mainVar, stmts
}

// localize builds the `$localize` string of msg, translated when a bundle is configured
func (c *messageCollector) localize(msg *ir.I18nMessageOp) (output.OutputExpression, bool) {
	translation, err := c.job.Translations.Translate(msg.Message)
	if err != nil {
		c.job.Fail(fmt.Errorf("message %q: %w", msg.Message.ID, err))
		return nil, false
	}
	span := messageSpan(msg.Message)
	if translation.Missing {
		c.job.AddWarning(util.NewParseWarning(span, fmt.Sprintf("no translation found for message %q, using source text", msg.Message.ID)))
	}

	exprs := make([]output.OutputExpression, len(translation.PlaceholderNames))
	names := make([]string, len(translation.PlaceholderNames))
	for i, ph := range translation.PlaceholderNames {
		value, ok := msg.Params.Values[ph]
		if !ok {
			ir.Assertf("message %q has no param for placeholder %q", msg.Message.ID, ph)
		}
		exprs[i] = value
		names[i] = publicPlaceholderName(ph)
	}

	meta := i18n.SerializeI18nHead(msg.Message)
	if c.job.I18nUseExternalIds && msg.Message.CustomID == "" {
		meta += "@@" + msg.Message.ID
	}
	return output.NewLocalizedString(meta, translation.MessageParts, names, exprs, span), true
}

func sortedParamMap(params ir.I18nMessageParams) output.OutputExpression {
	keys := append([]string(nil), params.Keys...)
	sort.Strings(keys)
	entries := make([]*output.LiteralMapEntry, len(keys))
	for i, key := range keys {
		entries[i] = output.NewLiteralMapEntry(publicPlaceholderName(key), params.Values[key], true)
	}
	return output.LiteralMap(entries...)
}

func publicPlaceholderName(name string) string {
	return nonPublicNameChars.ReplaceAllString(strings.ToUpper(name), "_")
}

func messageSpan(msg *i18n.Message) *util.ParseSourceSpan {
	if len(msg.Nodes) == 0 {
		return nil
	}
	return msg.Nodes[0].GetSourceSpan()
}
