package phases

import (
	"strings"

	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ParseExtractedStyles parses extracted style and class attributes into separate
// ExtractedAttributeOps per style or class property. In legacy compatibility mode a repeated
// `class` or `style` attribute replaces the properties of the earlier one.
func ParseExtractedStyles(job compilation.CompilationJob) {
	legacy := job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder
	elements := make(map[ir.XrefId]ir.Op)
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			if element, ok := op.(ir.ElementOrContainerOp); ok {
				elements[element.GetConsumesSlotTrait().Xref] = op
			}
		}
	}

	type attrKey struct {
		target ir.XrefId
		name   string
	}
	for _, unit := range job.GetUnits() {
		parsed := map[attrKey][]ir.Op{}
		for _, op := range unit.GetCreate().All() {
			extracted, ok := op.(*ir.ExtractedAttributeOp)
			if !ok || extracted.BindingKind != ir.BindingKindAttribute {
				continue
			}
			literal, ok := extracted.Expression.(*output.LiteralExpr)
			if !ok {
				continue
			}
			value, ok := literal.Value.(string)
			if !ok {
				continue
			}

			// TemplateDefinitionBuilder will not apply class and style bindings to structural
			// directives; instead, it will leave them as attributes.
			if template, ok := elements[extracted.Target].(*ir.TemplateOp); ok && template.TemplateKind == ir.TemplateKindStructural {
				continue
			}

			key := attrKey{extracted.Target, extracted.Name}
			if legacy && (extracted.Name == "style" || extracted.Name == "class") {
				for _, previous := range parsed[key] {
					unit.GetCreate().Remove(previous)
				}
				delete(parsed, key)
			}

			switch extracted.Name {
			case "style":
				parsedStyles := parseStyle(value)
				for i := 0; i < len(parsedStyles)-1; i += 2 {
					style := ir.NewExtractedAttributeOp(
						extracted.Target,
						ir.BindingKindStyleProperty,
						"",
						parsedStyles[i],
						output.NewLiteralExpr(parsedStyles[i+1], nil),
						ir.NoXref,
						nil,
						[]core.SecurityContext{core.SecurityContextSTYLE},
					)
					unit.GetCreate().InsertBefore(style, extracted)
					parsed[key] = append(parsed[key], style)
				}
				unit.GetCreate().Remove(extracted)
			case "class":
				for _, parsedClass := range strings.Fields(value) {
					class := ir.NewExtractedAttributeOp(
						extracted.Target,
						ir.BindingKindClassName,
						"",
						parsedClass,
						nil,
						ir.NoXref,
						nil,
						nil,
					)
					unit.GetCreate().InsertBefore(class, extracted)
					parsed[key] = append(parsed[key], class)
				}
				unit.GetCreate().Remove(extracted)
			}
		}
	}
}

const (
	charOpenParen  = '('
	charCloseParen = ')'
	charColon      = ':'
	charSemicolon  = ';'
	charBackSlash  = '\\'
	charQuoteNone  = 0
	charQuote      = '"'
	charApostrophe = '\''
)

// parseStyle parses a style string into an alternating list of property names and values:
//
//	parseStyle("width:100px;height:200px;opacity:0") // ["width", "100px", "height", "200px", "opacity", "0"]
//
// Property names are hyphenated. Semicolons and colons inside parentheses or quotes are part
// of the value.
func parseStyle(value string) []string {
	var styles []string

	i := 0
	parenDepth := 0
	var quote byte = charQuoteNone
	valueStart := 0
	propStart := 0
	currentProp := ""
	for i < len(value) {
		token := value[i]
		i++
		switch token {
		case charOpenParen:
			parenDepth++
		case charCloseParen:
			parenDepth--
		case charApostrophe, charQuote:
			// valueStart needs to be there since prop values don't have quotes in CSS
			if quote == charQuoteNone {
				quote = token
			} else if quote == token && (i < 2 || value[i-2] != charBackSlash) {
				quote = charQuoteNone
			}
		case charColon:
			if currentProp == "" && parenDepth == 0 && quote == charQuoteNone {
				currentProp = hyphenate(strings.TrimSpace(value[propStart : i-1]))
				valueStart = i
			}
		case charSemicolon:
			if currentProp != "" && valueStart > 0 && parenDepth == 0 && quote == charQuoteNone {
				styles = append(styles, currentProp, strings.TrimSpace(value[valueStart:i-1]))
				propStart = i
				valueStart = 0
				currentProp = ""
			}
		}
	}

	if currentProp != "" && valueStart > 0 {
		styles = append(styles, currentProp, strings.TrimSpace(value[valueStart:]))
	}
	return styles
}
