package phases

import (
	"fmt"
	"strings"

	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// Markers of the runtime's param value encoding.
const (
	i18nEscape      = "\uFFFD"
	elementMarker   = "#"
	templateMarker  = "*"
	tagCloseMarker  = "/"
	contextMarker   = ":"
	listStartMarker = "["
	listEndMarker   = "]"
	listDelimiter   = "|"
)

// ExtractI18nMessages creates a message op for each i18n context, formatting its params into
// the string form the runtime expects. ICU sub-messages are attached to their root message and
// the ICU ops are removed.
func ExtractI18nMessages(job *compilation.ComponentCompilationJob) {
	messages := make(map[ir.XrefId]*ir.I18nMessageOp)
	blocks := make(map[ir.XrefId]*ir.I18nStartOp)
	contexts := make(map[ir.XrefId]*ir.I18nContextOp)
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetCreate().All() {
			switch o := op.(type) {
			case *ir.I18nContextOp:
				msg := createI18nMessage(job, o)
				unit.GetCreate().Push(msg)
				messages[o.Xref] = msg
				contexts[o.Xref] = o
			case *ir.I18nStartOp:
				blocks[o.Xref] = o
			}
		}
	}

	var currentIcu *ir.IcuStartOp
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetCreate().All() {
			switch o := op.(type) {
			case *ir.IcuStartOp:
				currentIcu = o
				unit.GetCreate().Remove(o)
				attachIcuSubMessage(o, contexts, blocks, messages)
			case *ir.IcuEndOp:
				currentIcu = nil
				unit.GetCreate().Remove(o)
			case *ir.IcuPlaceholderOp:
				if currentIcu == nil || currentIcu.Context == ir.NoXref {
					ir.Assertf("unexpected ICU placeholder outside of i18n context")
				}
				msg := messages[currentIcu.Context]
				msg.PostprocessingParams.Set(o.Name, output.Literal(formatIcuPlaceholder(o)))
				unit.GetCreate().Remove(o)
			}
		}
	}
}

// attachIcuSubMessage records the message of a nested ICU as a sub-message of its root
// message. ICUs sharing the context of their i18n block are part of the root message itself.
func attachIcuSubMessage(icu *ir.IcuStartOp, contexts map[ir.XrefId]*ir.I18nContextOp, blocks map[ir.XrefId]*ir.I18nStartOp, messages map[ir.XrefId]*ir.I18nMessageOp) {
	ctx, ok := contexts[icu.Context]
	if !ok || ctx.ContextKind != ir.I18nContextKindIcu {
		return
	}
	block, ok := blocks[ctx.I18nBlock]
	if !ok || block.Context == ctx.Xref {
		return
	}
	root, ok := blocks[block.Root]
	if !ok {
		ir.Assertf("ICU sub-message should belong to a root message")
	}
	rootMessage, ok := messages[root.Context]
	if !ok {
		ir.Assertf("ICU sub-message should belong to a root message")
	}
	sub := messages[ctx.Xref]
	sub.MessagePlaceholder = icu.MessagePlaceholder
	rootMessage.SubMessages = append(rootMessage.SubMessages, sub.Xref)
}

func createI18nMessage(job *compilation.ComponentCompilationJob, ctx *ir.I18nContextOp) *ir.I18nMessageOp {
	needsPostprocessing := false
	for _, name := range ctx.Params.Keys() {
		if len(ctx.Params.Get(name)) > 1 {
			needsPostprocessing = true
			break
		}
	}
	return ir.NewI18nMessageOp(
		job.AllocateXrefId(), ctx.Xref, ctx.I18nBlock, ctx.Message, "",
		formatParams(ctx.Params), formatParams(ctx.PostprocessingParams), needsPostprocessing,
	)
}

func formatIcuPlaceholder(op *ir.IcuPlaceholderOp) string {
	if len(op.Strings) != len(op.ExpressionPlaceholders)+1 {
		ir.Assertf("invalid ICU placeholder with %d strings and %d expressions", len(op.Strings), len(op.ExpressionPlaceholders))
	}
	var b strings.Builder
	for i, s := range op.Strings {
		b.WriteString(s)
		if i < len(op.ExpressionPlaceholders) {
			b.WriteString(formatI18nValue(op.ExpressionPlaceholders[i]))
		}
	}
	return b.String()
}

func formatParams(params *ir.I18nParamMap) ir.I18nMessageParams {
	var formatted ir.I18nMessageParams
	for _, name := range params.Keys() {
		if value, ok := formatParamValues(params.Get(name)); ok {
			formatted.Set(name, output.Literal(value))
		}
	}
	return formatted
}

func formatParamValues(values []ir.I18nParamValue) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	serialized := make([]string, len(values))
	for i, v := range values {
		serialized[i] = formatI18nValue(v)
	}
	if len(serialized) == 1 {
		return serialized[0], true
	}
	return listStartMarker + strings.Join(serialized, listDelimiter) + listEndMarker, true
}

func formatI18nValue(value ir.I18nParamValue) string {
	const elementAndTemplate = ir.I18nParamValueFlagsElementTag | ir.I18nParamValueFlagsTemplateTag
	const openAndClose = ir.I18nParamValueFlagsOpenTag | ir.I18nParamValueFlagsCloseTag

	// An element carrying a structural directive encodes both of their slots.
	if value.Flags&elementAndTemplate == elementAndTemplate {
		compound, ok := value.Value.(ir.I18nElementTemplateValue)
		if !ok {
			ir.Assertf("expected i18n param value to have an element and template slot")
		}
		element := formatI18nValue(ir.I18nParamValue{
			Value:            compound.Element,
			SubTemplateIndex: value.SubTemplateIndex,
			Flags:            value.Flags &^ ir.I18nParamValueFlagsTemplateTag,
		})
		template := formatI18nValue(ir.I18nParamValue{
			Value:            compound.Template,
			SubTemplateIndex: value.SubTemplateIndex,
			Flags:            value.Flags &^ ir.I18nParamValueFlagsElementTag,
		})
		switch {
		case value.Flags&openAndClose == openAndClose:
			return template + element + template
		case value.Flags&ir.I18nParamValueFlagsCloseTag != 0:
			return element + template
		default:
			return template + element
		}
	}

	// Self-closing tags concatenate their open and close forms.
	if value.Flags&openAndClose == openAndClose {
		open := value
		open.Flags &^= ir.I18nParamValueFlagsCloseTag
		closing := value
		closing.Flags &^= ir.I18nParamValueFlagsOpenTag
		return formatI18nValue(open) + formatI18nValue(closing)
	}

	if value.Flags == ir.I18nParamValueFlagsNone {
		return fmt.Sprint(value.Value)
	}

	tag, closing := "", ""
	switch {
	case value.Flags&ir.I18nParamValueFlagsElementTag != 0:
		tag = elementMarker
	case value.Flags&ir.I18nParamValueFlagsTemplateTag != 0:
		tag = templateMarker
	}
	if tag != "" && value.Flags&ir.I18nParamValueFlagsCloseTag != 0 {
		closing = tagCloseMarker
	}
	ctx := ""
	if value.SubTemplateIndex != nil {
		ctx = fmt.Sprintf("%s%d", contextMarker, *value.SubTemplateIndex)
	}
	return fmt.Sprintf("%s%s%s%v%s%s", i18nEscape, closing, tag, value.Value, ctx, i18nEscape)
}
