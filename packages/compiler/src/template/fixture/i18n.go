package fixture

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"ngc-ir/packages/compiler/src/expression_parser"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/render3"
)

// tagPlaceholderNames are the readable placeholder names of common tags
var tagPlaceholderNames = map[string]string{
	"A":     "LINK",
	"B":     "BOLD_TEXT",
	"BR":    "LINE_BREAK",
	"EM":    "EMPHASISED_TEXT",
	"H1":    "HEADING_LEVEL1",
	"H2":    "HEADING_LEVEL2",
	"H3":    "HEADING_LEVEL3",
	"H4":    "HEADING_LEVEL4",
	"H5":    "HEADING_LEVEL5",
	"H6":    "HEADING_LEVEL6",
	"HR":    "HORIZONTAL_RULE",
	"I":     "ITALIC_TEXT",
	"LI":    "LIST_ITEM",
	"LINK":  "MEDIA_LINK",
	"OL":    "ORDERED_LIST",
	"P":     "PARAGRAPH",
	"Q":     "QUOTATION",
	"S":     "STRIKETHROUGH_TEXT",
	"SMALL": "SMALL_TEXT",
	"SUB":   "SUBSTRIPT",
	"SUP":   "SUPERSCRIPT",
	"TBODY": "TABLE_BODY",
	"TD":    "TABLE_CELL",
	"TFOOT": "TABLE_FOOTER",
	"TH":    "TABLE_HEADER_CELL",
	"THEAD": "TABLE_HEADER",
	"TR":    "TABLE_ROW",
	"TT":    "MONOSPACED_TEXT",
	"U":     "UNDERLINED_TEXT",
	"UL":    "UNORDERED_LIST",
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// placeholderRegistry names the placeholders of one message. Identical content shares a name;
// different content with the same base name gets a numeric suffix.
type placeholderRegistry struct {
	counts          map[string]int
	signatureToName map[string]string
}

func newPlaceholderRegistry() *placeholderRegistry {
	return &placeholderRegistry{counts: map[string]int{}, signatureToName: map[string]string{}}
}

func (r *placeholderRegistry) uniqueName(base string) string {
	count, seen := r.counts[base]
	if !seen {
		r.counts[base] = 1
		return base
	}
	r.counts[base] = count + 1
	return fmt.Sprintf("%s_%d", base, count)
}

func (r *placeholderRegistry) named(signature string, name func() string) string {
	if existing, ok := r.signatureToName[signature]; ok {
		return existing
	}
	n := name()
	r.signatureToName[signature] = n
	return n
}

func tagBaseName(tag string) string {
	upper := strings.ToUpper(tag)
	if name, ok := tagPlaceholderNames[upper]; ok {
		return name
	}
	return "TAG_" + snakeCase(tag)
}

func (r *placeholderRegistry) startTag(tag string, attrs map[string]string, isVoid bool) string {
	return r.named(tagSignature(tag, attrs, isVoid), func() string {
		if isVoid {
			return r.uniqueName(tagBaseName(tag))
		}
		return r.uniqueName("START_" + tagBaseName(tag))
	})
}

func (r *placeholderRegistry) closeTag(tag string) string {
	return r.named(tagSignature("/"+tag, nil, false), func() string {
		return r.uniqueName("CLOSE_" + tagBaseName(tag))
	})
}

func (r *placeholderRegistry) startBlock(name string, parameters []string) string {
	return r.named(blockSignature(name, parameters), func() string {
		return r.uniqueName("START_BLOCK_" + snakeCase(name))
	})
}

func (r *placeholderRegistry) closeBlock(name string) string {
	return r.named(blockSignature("close_"+name, nil), func() string {
		return r.uniqueName("CLOSE_BLOCK_" + snakeCase(name))
	})
}

func (r *placeholderRegistry) placeholder(name, content string) string {
	upper := strings.ToUpper(name)
	return r.named("PH: "+upper+"="+content, func() string {
		return r.uniqueName(upper)
	})
}

func tagSignature(tag string, attrs map[string]string, isVoid bool) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString("<" + tag)
	for _, k := range keys {
		sb.WriteString(" " + k + "=" + attrs[k])
	}
	if isVoid {
		sb.WriteString("/>")
	} else {
		sb.WriteString("></" + tag + ">")
	}
	return sb.String()
}

func blockSignature(name string, parameters []string) string {
	params := ""
	if len(parameters) > 0 {
		sorted := append([]string(nil), parameters...)
		sort.Strings(sorted)
		params = " (" + strings.Join(sorted, "; ") + ")"
	}
	return "@" + name + params + " {}"
}

func snakeCase(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// messageScope collects the placeholders of the message an i18n section is building
type messageScope struct {
	registry             *placeholderRegistry
	placeholders         map[string]i18n.MessagePlaceholder
	placeholderToMessage map[string]*i18n.Message
}

func newMessageScope() *messageScope {
	return &messageScope{
		registry:             newPlaceholderRegistry(),
		placeholders:         map[string]i18n.MessagePlaceholder{},
		placeholderToMessage: map[string]*i18n.Message{},
	}
}

func (s *messageScope) message(nodes []i18n.Node, meta string) *i18n.Message {
	meaning, description, customID := parseI18nMeta(meta)
	return i18n.NewMessage(nodes, s.placeholders, s.placeholderToMessage, meaning, description, customID)
}

// parseI18nMeta splits `meaning|description@@id`
func parseI18nMeta(meta string) (meaning, description, customID string) {
	if idx := strings.Index(meta, "@@"); idx >= 0 {
		customID = meta[idx+2:]
		meta = meta[:idx]
	}
	if idx := strings.Index(meta, "|"); idx >= 0 {
		return meta[:idx], meta[idx+1:], customID
	}
	return "", meta, customID
}

// interpolationNodes builds the message nodes of an interpolation, one placeholder per
// expression
func (c *converter) interpolationNodes(interpolation *expression_parser.Interpolation, scope *messageScope) []i18n.Node {
	var nodes []i18n.Node
	for i, str := range interpolation.Strings {
		if str != "" {
			nodes = append(nodes, &i18n.Text{Value: str, SourceSpan: interpolation.GetSourceSpan()})
		}
		if i >= len(interpolation.Expressions) {
			continue
		}
		expr := interpolation.Expressions[i]
		text := expr.GetSourceSpan().String()
		name := scope.registry.placeholder("INTERPOLATION", text)
		scope.placeholders[name] = i18n.MessagePlaceholder{Text: "{{" + text + "}}", SourceSpan: expr.GetSourceSpan()}
		nodes = append(nodes, &i18n.Placeholder{Value: text, Name: name, SourceSpan: expr.GetSourceSpan()})
	}
	return nodes
}

// attributeMessage builds the message of a translated attribute
func (c *converter) attributeMessage(value interface{}, meta string, rng hcl.Range) *i18n.Message {
	scope := newMessageScope()
	var nodes []i18n.Node
	switch v := value.(type) {
	case string:
		nodes = []i18n.Node{&i18n.Text{Value: v, SourceSpan: c.span(rng)}}
	case *expression_parser.Interpolation:
		nodes = c.interpolationNodes(v, scope)
	default:
		c.errorf(rng, "Invalid i18n attribute", "only static and interpolated attributes can be translated")
		return nil
	}
	return scope.message(nodes, meta)
}

// tagPlaceholder wraps the message nodes of an element inside an enclosing message
func (c *converter) tagPlaceholder(tag string, attrs []*render3.TextAttribute, children []i18n.Node, scope *messageScope, rng hcl.Range) *i18n.TagPlaceholder {
	attrMap := map[string]string{}
	for _, attr := range attrs {
		attrMap[attr.Name] = attr.Value
	}
	isVoid := voidElements[tag]
	placeholder := &i18n.TagPlaceholder{
		Tag:        tag,
		Attrs:      attrMap,
		StartName:  scope.registry.startTag(tag, attrMap, isVoid),
		Children:   children,
		IsVoid:     isVoid,
		SourceSpan: c.span(rng),
	}
	scope.placeholders[placeholder.StartName] = i18n.MessagePlaceholder{Text: "<" + tag + ">", SourceSpan: placeholder.SourceSpan}
	if !isVoid {
		placeholder.CloseName = scope.registry.closeTag(tag)
		scope.placeholders[placeholder.CloseName] = i18n.MessagePlaceholder{Text: "</" + tag + ">", SourceSpan: placeholder.SourceSpan}
	}
	return placeholder
}

// blockPlaceholder wraps the message nodes of a control flow block inside an enclosing
// message
func (c *converter) blockPlaceholder(name string, parameters []string, children []i18n.Node, scope *messageScope, rng hcl.Range) *i18n.BlockPlaceholder {
	placeholder := &i18n.BlockPlaceholder{
		Name:       name,
		Parameters: parameters,
		StartName:  scope.registry.startBlock(name, parameters),
		CloseName:  scope.registry.closeBlock(name),
		Children:   children,
		SourceSpan: c.span(rng),
	}
	scope.placeholders[placeholder.StartName] = i18n.MessagePlaceholder{Text: "@" + name, SourceSpan: placeholder.SourceSpan}
	scope.placeholders[placeholder.CloseName] = i18n.MessagePlaceholder{Text: "}", SourceSpan: placeholder.SourceSpan}
	return placeholder
}

// icu reads an ICU block:
//
//	icu "plural" {
//	  value = count
//	  case "=0" { value = "none" }
//	  case "other" { value = "${count} items" }
//	}
//
// The ICU carries its own message. Inside an enclosing message it also becomes a
// placeholder of that message.
func (c *converter) icu(block *hclsyntax.Block, scope *messageScope) (*render3.Icu, i18n.Node) {
	if !c.labels(block, 1) {
		return nil, nil
	}
	icuType := block.Labels[0]
	if icuType != "plural" && icuType != "select" {
		c.errorf(block.LabelRanges[0], "Invalid ICU type", "ICU type must be plural or select, got %q", icuType)
	}
	body := block.Body
	c.checkAttributes(body, "value")
	valueAttr, ok := body.Attributes["value"]
	if !ok {
		c.errorf(block.TypeRange, "Missing ICU value", "icu blocks need a value")
		return nil, nil
	}

	icuScope := newMessageScope()
	varName := icuScope.registry.uniqueName("VAR_" + strings.ToUpper(icuType))
	switchExpr := c.expr(valueAttr.Expr)
	switchText := c.source(valueAttr.Expr.Range())
	icuScope.placeholders[varName] = i18n.MessagePlaceholder{Text: switchText, SourceSpan: c.span(valueAttr.Expr.Range())}

	node := &render3.Icu{
		Vars: []render3.IcuEntry{{
			Name: varName,
			Node: &render3.BoundText{
				Value:      expression_parser.NewInterpolation(switchExpr.GetSourceSpan(), []string{"", ""}, []expression_parser.AST{switchExpr}),
				SourceSpan: c.span(valueAttr.Expr.Range()),
			},
		}},
		SourceSpan: c.span(block.Range()),
	}
	icuNode := &i18n.Icu{
		Expression:            switchText,
		Type:                  icuType,
		ExpressionPlaceholder: varName,
		SourceSpan:            node.SourceSpan,
	}

	seen := map[string]bool{}
	for _, caseBlock := range body.Blocks {
		if caseBlock.Type != "case" {
			c.errorf(caseBlock.TypeRange, "Unsupported block type", "icu blocks only contain case blocks")
			continue
		}
		if !c.labels(caseBlock, 1) {
			continue
		}
		c.checkAttributes(caseBlock.Body, "value")
		for _, nested := range caseBlock.Body.Blocks {
			c.errorf(nested.TypeRange, "Unsupported block type", "ICU cases only contain text")
		}
		caseValue, ok := caseBlock.Body.Attributes["value"]
		if !ok {
			icuNode.Cases = append(icuNode.Cases, i18n.IcuCase{Key: caseBlock.Labels[0], Value: &i18n.Container{SourceSpan: c.span(caseBlock.Range())}})
			continue
		}
		interpolation := c.textInterpolation(caseValue.Expr)
		children := c.interpolationNodes(interpolation, icuScope)
		for _, child := range children {
			placeholder, ok := child.(*i18n.Placeholder)
			if !ok || seen[placeholder.Name] {
				continue
			}
			seen[placeholder.Name] = true
			expr := interpolationExpression(interpolation, placeholder)
			node.Placeholders = append(node.Placeholders, render3.IcuEntry{
				Name: placeholder.Name,
				Node: &render3.BoundText{
					Value:      expression_parser.NewInterpolation(expr.GetSourceSpan(), []string{"", ""}, []expression_parser.AST{expr}),
					SourceSpan: expr.GetSourceSpan(),
				},
			})
		}
		icuNode.Cases = append(icuNode.Cases, i18n.IcuCase{
			Key:   caseBlock.Labels[0],
			Value: &i18n.Container{Children: children, SourceSpan: c.span(caseValue.Expr.Range())},
		})
	}

	name := "ICU"
	if scope != nil {
		name = scope.registry.placeholder("ICU", c.source(block.Range()))
	}
	placeholder := &i18n.IcuPlaceholder{Value: icuNode, Name: name, SourceSpan: node.SourceSpan}
	message := icuScope.message([]i18n.Node{placeholder}, "")
	node.I18n = message

	if scope == nil {
		return node, nil
	}
	scope.placeholderToMessage[name] = message
	scope.placeholders[name] = i18n.MessagePlaceholder{Text: c.source(block.Range()), SourceSpan: node.SourceSpan}
	return node, placeholder
}

// interpolationExpression finds the expression a placeholder of an interpolation stands for
func interpolationExpression(interpolation *expression_parser.Interpolation, placeholder *i18n.Placeholder) expression_parser.AST {
	for _, expr := range interpolation.Expressions {
		if expr.GetSourceSpan() == placeholder.SourceSpan {
			return expr
		}
	}
	return interpolation.Expressions[0]
}
