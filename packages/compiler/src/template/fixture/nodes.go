package fixture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/expression_parser"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/render3"
	"ngc-ir/packages/compiler/src/schema"
	"ngc-ir/packages/compiler/src/util"
)

// forLoopImplicitVariables are the context variables every `@for` view declares
var forLoopImplicitVariables = []string{"$index", "$first", "$last", "$even", "$odd", "$count"}

// nodes reads the child blocks of body in order. Inside an i18n section scope is the
// enclosing message, and the matching message nodes are returned too.
func (c *converter) nodes(body *hclsyntax.Body, scope *messageScope) ([]render3.Node, []i18n.Node) {
	var nodes []render3.Node
	var messageNodes []i18n.Node
	for _, block := range body.Blocks {
		node, messageNode := c.node(block, scope)
		if node != nil {
			nodes = append(nodes, node)
		}
		if messageNode != nil {
			messageNodes = append(messageNodes, messageNode)
		}
	}
	return nodes, messageNodes
}

func (c *converter) node(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	switch block.Type {
	case "element":
		return c.element(block, scope)
	case "template":
		return c.template(block, scope)
	case "content":
		return c.content(block, scope)
	case "text":
		return c.text(block, scope)
	case "interpolation":
		return c.boundText(block, scope)
	case "comment":
		c.checkAttributes(block.Body)
		value := ""
		if len(block.Labels) > 0 {
			value = block.Labels[0]
		}
		return &render3.Comment{Value: value, SourceSpan: c.span(block.Range())}, nil
	case "let":
		return c.letDeclaration(block), nil
	case "if":
		return c.ifBlock(block, scope)
	case "switch":
		return c.switchBlock(block, scope)
	case "for":
		return c.forBlock(block, scope)
	case "defer":
		return c.deferBlock(block, scope)
	case "icu":
		icu, placeholder := c.icu(block, scope)
		if icu == nil {
			return nil, nil
		}
		return icu, placeholder
	}
	c.errorf(block.TypeRange, "Unsupported block type", "blocks of type %q are not template nodes", block.Type)
	return nil, nil
}

// i18nSection starts the message of a translated element, or reports the marker when the
// element already sits inside one
func (c *converter) i18nSection(body *hclsyntax.Body, scope *messageScope) (meta string, section *messageScope) {
	attr, ok := body.Attributes["i18n"]
	if !ok {
		return "", nil
	}
	if scope != nil {
		c.errorf(attr.NameRange, "Nested i18n section", "cannot mark an element as translatable inside of a translatable section")
		return "", nil
	}
	return c.stringValue(attr.Expr), newMessageScope()
}

// attributes reads the static attributes of an element, translated ones included
func (c *converter) attributes(body *hclsyntax.Body, i18nAttrs map[string]string) []*render3.TextAttribute {
	attr, ok := body.Attributes["attrs"]
	if !ok {
		return nil
	}
	var attrs []*render3.TextAttribute
	for _, e := range c.stringMap(attr.Expr) {
		textAttr := &render3.TextAttribute{
			Name:       e.key,
			Value:      e.value,
			SourceSpan: c.span(e.rng),
			ValueSpan:  c.span(e.vrng),
		}
		if meta, ok := i18nAttrs[e.key]; ok {
			textAttr.I18n = c.attributeMessage(e.value, meta, e.rng)
		}
		attrs = append(attrs, textAttr)
	}
	return attrs
}

// i18nAttributes reads `i18n_attrs = { title = "meaning|description" }`
func (c *converter) i18nAttributes(body *hclsyntax.Body) map[string]string {
	attr, ok := body.Attributes["i18n_attrs"]
	if !ok {
		return nil
	}
	metas := map[string]string{}
	for _, e := range c.stringMap(attr.Expr) {
		metas[e.key] = e.value
	}
	return metas
}

// parseBindingName splits a bound name into its binding type, name and unit. `class.active`
// binds a class, `style.width.px` a style with unit, `attr.role` an attribute.
func parseBindingName(name string) (expression_parser.BindingType, string, string) {
	switch {
	case strings.HasPrefix(name, "attr."):
		return expression_parser.BindingTypeAttribute, name[len("attr."):], ""
	case strings.HasPrefix(name, "class."):
		return expression_parser.BindingTypeClass, name[len("class."):], ""
	case strings.HasPrefix(name, "style."):
		rest := name[len("style."):]
		if idx := strings.Index(rest, "."); idx >= 0 {
			return expression_parser.BindingTypeStyle, rest[:idx], rest[idx+1:]
		}
		return expression_parser.BindingTypeStyle, rest, ""
	}
	return expression_parser.BindingTypeProperty, name, ""
}

func bindingSecurityContext(tag string, bindingType expression_parser.BindingType, name string) core.SecurityContext {
	switch bindingType {
	case expression_parser.BindingTypeAttribute:
		return schema.SecurityContextFor(tag, name, true)
	case expression_parser.BindingTypeClass:
		return core.SecurityContextNONE
	case expression_parser.BindingTypeStyle:
		return core.SecurityContextSTYLE
	}
	return schema.SecurityContextFor(tag, name, false)
}

// inputs reads the `bind` and `two_way` bindings of an element. Two-way bindings add the
// matching `<name>Change` event.
func (c *converter) inputs(tag string, body *hclsyntax.Body, i18nAttrs map[string]string) ([]*render3.BoundAttribute, []*render3.BoundEvent) {
	var inputs []*render3.BoundAttribute
	var outputs []*render3.BoundEvent
	if attr, ok := body.Attributes["bind"]; ok {
		for _, e := range c.entries(attr.Expr) {
			bindingType, name, unit := parseBindingName(e.key)
			rng := hcl.RangeBetween(e.keyRange, e.value.Range())
			input := &render3.BoundAttribute{
				Name:            name,
				Type:            bindingType,
				SecurityContext: bindingSecurityContext(tag, bindingType, name),
				Value:           c.bindingValue(e.value),
				Unit:            unit,
				SourceSpan:      c.span(rng),
				KeySpan:         c.span(e.keyRange),
			}
			if meta, ok := i18nAttrs[name]; ok {
				if message := c.attributeMessage(input.Value, meta, rng); message != nil {
					input.I18n = message
				}
			}
			inputs = append(inputs, input)
		}
	}
	if attr, ok := body.Attributes["two_way"]; ok {
		for _, e := range c.entries(attr.Expr) {
			rng := hcl.RangeBetween(e.keyRange, e.value.Range())
			inputs = append(inputs, &render3.BoundAttribute{
				Name:            e.key,
				Type:            expression_parser.BindingTypeTwoWay,
				SecurityContext: schema.SecurityContextFor(tag, e.key, false),
				Value:           c.expr(e.value),
				SourceSpan:      c.span(rng),
				KeySpan:         c.span(e.keyRange),
			})
			outputs = append(outputs, &render3.BoundEvent{
				Name:        e.key + "Change",
				Type:        expression_parser.ParsedEventTypeTwoWay,
				Handler:     c.expr(e.value),
				SourceSpan:  c.span(rng),
				HandlerSpan: c.span(e.value.Range()),
			})
		}
	}
	return inputs, outputs
}

func (c *converter) outputs(body *hclsyntax.Body) []*render3.BoundEvent {
	attr, ok := body.Attributes["on"]
	if !ok {
		return nil
	}
	var outputs []*render3.BoundEvent
	for _, e := range c.entries(attr.Expr) {
		outputs = append(outputs, c.event(e))
	}
	return outputs
}

func (c *converter) references(body *hclsyntax.Body) []*render3.Reference {
	attr, ok := body.Attributes["refs"]
	if !ok {
		return nil
	}
	var refs []*render3.Reference
	for _, e := range c.stringMap(attr.Expr) {
		refs = append(refs, &render3.Reference{Name: e.key, Value: e.value, SourceSpan: c.span(e.rng)})
	}
	return refs
}

// element reads `element "tag" { ... }`. Namespaced tags carry their prefix, as in
// `element ":svg:circle"`.
func (c *converter) element(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	if !c.labels(block, 1) {
		return nil, nil
	}
	body := block.Body
	c.checkAttributes(body, "attrs", "bind", "two_way", "on", "refs", "i18n", "i18n_attrs")

	tag := block.Labels[0]
	i18nAttrs := c.i18nAttributes(body)
	element := &render3.Element{
		Name:            tag,
		Attributes:      c.attributes(body, i18nAttrs),
		References:      c.references(body),
		SourceSpan:      c.span(block.Range()),
		StartSourceSpan: c.span(hcl.RangeBetween(block.TypeRange, block.OpenBraceRange)),
		EndSourceSpan:   c.span(block.CloseBraceRange),
	}
	var twoWayEvents []*render3.BoundEvent
	element.Inputs, twoWayEvents = c.inputs(tag, body, i18nAttrs)
	element.Outputs = append(c.outputs(body), twoWayEvents...)

	meta, section := c.i18nSection(body, scope)
	childScope := scope
	if section != nil {
		childScope = section
	}
	children, messageNodes := c.nodes(body, childScope)
	element.Children = children

	if section != nil {
		element.I18n = section.message(messageNodes, meta)
		return element, nil
	}
	if scope == nil {
		return element, nil
	}
	_, localName := splitNamespace(tag)
	placeholder := c.tagPlaceholder(localName, element.Attributes, messageNodes, scope, block.Range())
	element.I18n = placeholder
	return element, placeholder
}

// template reads `template "ng-template" { ... }`. A structural directive is written as a
// template labelled with the host tag, holding `template_attrs` and the element itself.
func (c *converter) template(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	if !c.labels(block, 1) {
		return nil, nil
	}
	body := block.Body
	c.checkAttributes(body, "attrs", "bind", "on", "refs", "vars", "template_attrs", "i18n", "i18n_attrs")

	tag := block.Labels[0]
	i18nAttrs := c.i18nAttributes(body)
	tmpl := &render3.Template{
		TagName:         tag,
		Attributes:      c.attributes(body, i18nAttrs),
		Outputs:         c.outputs(body),
		References:      c.references(body),
		SourceSpan:      c.span(block.Range()),
		StartSourceSpan: c.span(hcl.RangeBetween(block.TypeRange, block.OpenBraceRange)),
		EndSourceSpan:   c.span(block.CloseBraceRange),
	}
	tmpl.Inputs, _ = c.inputs(tag, body, i18nAttrs)

	if attr, ok := body.Attributes["template_attrs"]; ok {
		for _, e := range c.entries(attr.Expr) {
			rng := hcl.RangeBetween(e.keyRange, e.value.Range())
			if tmplExpr, ok := e.value.(*hclsyntax.TemplateExpr); ok && tmplExpr.IsStringLiteral() {
				tmpl.TemplateAttrs = append(tmpl.TemplateAttrs, &render3.TextAttribute{
					Name:       e.key,
					Value:      c.stringValue(e.value),
					SourceSpan: c.span(rng),
					ValueSpan:  c.span(e.value.Range()),
				})
				continue
			}
			tmpl.TemplateAttrs = append(tmpl.TemplateAttrs, &render3.BoundAttribute{
				Name:            e.key,
				Type:            expression_parser.BindingTypeProperty,
				SecurityContext: core.SecurityContextNONE,
				Value:           c.bindingValue(e.value),
				SourceSpan:      c.span(rng),
				KeySpan:         c.span(e.keyRange),
			})
		}
	}
	if attr, ok := body.Attributes["vars"]; ok {
		for _, e := range c.stringMap(attr.Expr) {
			tmpl.Variables = append(tmpl.Variables, &render3.Variable{Name: e.key, Value: e.value, SourceSpan: c.span(e.rng)})
		}
	}

	meta, section := c.i18nSection(body, scope)
	childScope := scope
	if section != nil {
		childScope = section
	}
	children, messageNodes := c.nodes(body, childScope)
	tmpl.Children = children

	if section != nil {
		tmpl.I18n = section.message(messageNodes, meta)
		return tmpl, nil
	}
	if scope == nil {
		return tmpl, nil
	}
	_, localName := splitNamespace(tag)
	placeholder := c.tagPlaceholder(localName, tmpl.Attributes, messageNodes, scope, block.Range())
	tmpl.I18n = placeholder
	return tmpl, placeholder
}

// content reads `content { select = "header" }`. Child blocks are the fallback content.
func (c *converter) content(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	body := block.Body
	c.checkAttributes(body, "select", "attrs")
	content := &render3.Content{
		Selector:   "*",
		Attributes: c.attributes(body, nil),
		SourceSpan: c.span(block.Range()),
	}
	if attr, ok := body.Attributes["select"]; ok {
		content.Selector = c.stringValue(attr.Expr)
		content.Attributes = append(content.Attributes, &render3.TextAttribute{
			Name:       "select",
			Value:      content.Selector,
			SourceSpan: c.span(attr.SrcRange),
			ValueSpan:  c.span(attr.Expr.Range()),
		})
	}
	children, messageNodes := c.nodes(body, scope)
	content.Children = children
	if scope == nil {
		return content, nil
	}
	placeholder := c.tagPlaceholder("ng-content", content.Attributes, messageNodes, scope, block.Range())
	content.I18n = placeholder
	return content, placeholder
}

// text reads `text "literal" {}` or `text { value = "literal" }`
func (c *converter) text(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	body := block.Body
	c.checkAttributes(body, "value")
	var value string
	switch {
	case len(block.Labels) == 1:
		value = block.Labels[0]
	case body.Attributes["value"] != nil:
		value = c.stringValue(body.Attributes["value"].Expr)
	default:
		c.errorf(block.TypeRange, "Missing text", "text blocks need a label or a value")
		return nil, nil
	}
	span := c.span(block.Range())
	text := &render3.Text{Value: value, SourceSpan: span}
	if scope == nil {
		return text, nil
	}
	return text, &i18n.Text{Value: value, SourceSpan: span}
}

// boundText reads `interpolation { value = "Hello ${name}" }`
func (c *converter) boundText(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	body := block.Body
	c.checkAttributes(body, "value")
	attr, ok := body.Attributes["value"]
	if !ok {
		c.errorf(block.TypeRange, "Missing value", "interpolation blocks need a value")
		return nil, nil
	}
	interpolation := c.textInterpolation(attr.Expr)
	text := &render3.BoundText{Value: interpolation, SourceSpan: c.span(block.Range())}
	if scope == nil {
		return text, nil
	}
	container := &i18n.Container{Children: c.interpolationNodes(interpolation, scope), SourceSpan: text.SourceSpan}
	text.I18n = container
	return text, container
}

// letDeclaration reads `let "name" { value = expr }`
func (c *converter) letDeclaration(block *hclsyntax.Block) render3.Node {
	if !c.labels(block, 1) {
		return nil
	}
	c.checkAttributes(block.Body, "value")
	attr, ok := block.Body.Attributes["value"]
	if !ok {
		c.errorf(block.TypeRange, "Missing value", "let blocks need a value")
		return nil
	}
	return &render3.LetDeclaration{Name: block.Labels[0], Value: c.expr(attr.Expr), SourceSpan: c.span(block.Range())}
}

// blockChildren reads the children of a control flow block, wrapping them into a block
// placeholder when inside a message
func (c *converter) blockChildren(name string, parameters []string, body *hclsyntax.Body, scope *messageScope, rng hcl.Range) ([]render3.Node, *i18n.BlockPlaceholder) {
	children, messageNodes := c.nodes(body, scope)
	if scope == nil {
		return children, nil
	}
	return children, c.blockPlaceholder(name, parameters, messageNodes, scope, rng)
}

// ifBlock reads an `if` block of `branch` blocks. A branch without `when` is the else
// branch and must come last.
func (c *converter) ifBlock(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	c.checkAttributes(block.Body)
	ifBlock := &render3.IfBlock{SourceSpan: c.span(block.Range())}
	var container *i18n.Container
	if scope != nil {
		container = &i18n.Container{SourceSpan: ifBlock.SourceSpan}
	}
	for i, branchBlock := range block.Body.Blocks {
		if branchBlock.Type != "branch" {
			c.errorf(branchBlock.TypeRange, "Unsupported block type", "if blocks only contain branch blocks")
			continue
		}
		body := branchBlock.Body
		c.checkAttributes(body, "when", "as")
		branch := &render3.IfBlockBranch{SourceSpan: c.span(branchBlock.Range())}

		var parameters []string
		name := "else"
		if when, ok := body.Attributes["when"]; ok {
			branch.Expression = c.expr(when.Expr)
			parameters = append(parameters, c.source(when.Expr.Range()))
			name = "if"
			if i > 0 {
				name = "else if"
			}
		} else if i != len(block.Body.Blocks)-1 {
			c.errorf(branchBlock.TypeRange, "Misplaced else", "a branch without a condition must be the last one")
		}
		if as, ok := body.Attributes["as"]; ok {
			if branch.Expression == nil {
				c.errorf(as.NameRange, "Invalid alias", "the else branch has no value to alias")
			}
			alias := c.stringValue(as.Expr)
			branch.ExpressionAlias = &render3.Variable{Name: alias, Value: alias, SourceSpan: c.span(as.SrcRange)}
			parameters = append(parameters, "as "+alias)
		}

		children, placeholder := c.blockChildren(name, parameters, body, scope, branchBlock.Range())
		branch.Children = children
		if placeholder != nil {
			branch.I18n = placeholder
			container.Children = append(container.Children, placeholder)
		}
		ifBlock.Branches = append(ifBlock.Branches, branch)
	}
	if container == nil {
		return ifBlock, nil
	}
	return ifBlock, container
}

// switchBlock reads `switch { value = expr  case { when = ... } }`. A case without `when`
// is the default.
func (c *converter) switchBlock(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	body := block.Body
	c.checkAttributes(body, "value")
	switchBlock := &render3.SwitchBlock{SourceSpan: c.span(block.Range())}
	if attr, ok := body.Attributes["value"]; ok {
		switchBlock.Expression = c.expr(attr.Expr)
	} else {
		c.errorf(block.TypeRange, "Missing value", "switch blocks need a value")
		return nil, nil
	}
	var container *i18n.Container
	if scope != nil {
		container = &i18n.Container{SourceSpan: switchBlock.SourceSpan}
	}
	for _, caseBlock := range body.Blocks {
		if caseBlock.Type != "case" {
			c.errorf(caseBlock.TypeRange, "Unsupported block type", "switch blocks only contain case blocks")
			continue
		}
		c.checkAttributes(caseBlock.Body, "when")
		switchCase := &render3.SwitchBlockCase{SourceSpan: c.span(caseBlock.Range())}
		name := "default"
		var parameters []string
		if when, ok := caseBlock.Body.Attributes["when"]; ok {
			switchCase.Expression = c.expr(when.Expr)
			parameters = []string{c.source(when.Expr.Range())}
			name = "case"
		}
		children, placeholder := c.blockChildren(name, parameters, caseBlock.Body, scope, caseBlock.Range())
		switchCase.Children = children
		if placeholder != nil {
			switchCase.I18n = placeholder
			container.Children = append(container.Children, placeholder)
		}
		switchBlock.Cases = append(switchBlock.Cases, switchCase)
	}
	if container == nil {
		return switchBlock, nil
	}
	return switchBlock, container
}

// forBlock reads
//
//	for {
//	  item  = "item"
//	  of    = items
//	  track = item.id
//	  vars  = { i = "$index" }
//	  empty { ... }
//	}
func (c *converter) forBlock(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	body := block.Body
	c.checkAttributes(body, "item", "of", "track", "vars")
	forBlock := &render3.ForLoopBlock{SourceSpan: c.span(block.Range())}

	itemAttr, hasItem := body.Attributes["item"]
	ofAttr, hasOf := body.Attributes["of"]
	trackAttr, hasTrack := body.Attributes["track"]
	if !hasItem || !hasOf || !hasTrack {
		c.errorf(block.TypeRange, "Incomplete for block", "for blocks need item, of and track")
		return nil, nil
	}
	itemName := c.stringValue(itemAttr.Expr)
	forBlock.Item = &render3.Variable{Name: itemName, Value: "$implicit", SourceSpan: c.span(itemAttr.SrcRange)}
	forBlock.Expression = c.expr(ofAttr.Expr)
	forBlock.TrackBy = c.expr(trackAttr.Expr)

	for _, name := range forLoopImplicitVariables {
		forBlock.ContextVariables = append(forBlock.ContextVariables, &render3.Variable{Name: name, Value: name, SourceSpan: forBlock.SourceSpan})
	}
	if attr, ok := body.Attributes["vars"]; ok {
		for _, e := range c.stringMap(attr.Expr) {
			if !isForLoopVariable(e.value) {
				c.errorf(e.vrng, "Invalid loop variable", "%q is not a loop context variable", e.value)
				continue
			}
			forBlock.ContextVariables = append(forBlock.ContextVariables, &render3.Variable{Name: e.key, Value: e.value, SourceSpan: c.span(e.rng)})
		}
	}

	parameters := []string{itemName + " of " + c.source(ofAttr.Expr.Range()), "track " + c.source(trackAttr.Expr.Range())}
	var children []render3.Node
	var messageNodes []i18n.Node
	for _, child := range body.Blocks {
		if child.Type != "empty" {
			node, messageNode := c.node(child, scope)
			if node != nil {
				children = append(children, node)
			}
			if messageNode != nil {
				messageNodes = append(messageNodes, messageNode)
			}
			continue
		}
		if forBlock.Empty != nil {
			c.errorf(child.TypeRange, "Duplicate empty", "for blocks have at most one empty block")
			continue
		}
		c.checkAttributes(child.Body)
		emptyChildren, placeholder := c.blockChildren("empty", nil, child.Body, scope, child.Range())
		forBlock.Empty = &render3.ForLoopBlockEmpty{Children: emptyChildren, SourceSpan: c.span(child.Range())}
		if placeholder != nil {
			forBlock.Empty.I18n = placeholder
		}
	}
	forBlock.Children = children
	if scope == nil {
		return forBlock, nil
	}

	placeholder := c.blockPlaceholder("for", parameters, messageNodes, scope, block.Range())
	forBlock.I18n = placeholder
	if forBlock.Empty == nil {
		return forBlock, placeholder
	}
	return forBlock, &i18n.Container{Children: []i18n.Node{placeholder, forBlock.Empty.I18n.(*i18n.BlockPlaceholder)}, SourceSpan: forBlock.SourceSpan}
}

func isForLoopVariable(name string) bool {
	for _, v := range forLoopImplicitVariables {
		if v == name {
			return true
		}
	}
	return false
}

// deferBlock reads a `defer` block. Triggers are lists such as
// `on = ["viewport(trigger)", "timer(500ms)"]`; `when` conditions are expressions.
func (c *converter) deferBlock(block *hclsyntax.Block, scope *messageScope) (render3.Node, i18n.Node) {
	body := block.Body
	c.checkAttributes(body, "on", "when", "prefetch_on", "prefetch_when", "hydrate_on", "hydrate_when")
	deferBlock := &render3.DeferredBlock{SourceSpan: c.span(block.Range())}

	c.triggers(body, "on", "when", &deferBlock.Triggers)
	c.triggers(body, "prefetch_on", "prefetch_when", &deferBlock.PrefetchTriggers)
	c.triggers(body, "hydrate_on", "hydrate_when", &deferBlock.HydrateTriggers)
	if deferBlock.Triggers.Never != nil || deferBlock.PrefetchTriggers.Never != nil {
		c.errorf(block.TypeRange, "Invalid trigger", "never is only supported as a hydrate trigger")
	}

	var messageNodes, secondaryNodes []i18n.Node
	for _, child := range body.Blocks {
		switch child.Type {
		case "placeholder":
			c.checkAttributes(child.Body, "minimum")
			children, placeholder := c.blockChildren("placeholder", nil, child.Body, scope, child.Range())
			deferBlock.Placeholder = &render3.DeferredBlockPlaceholder{Children: nonNilNodes(children), SourceSpan: c.span(child.Range())}
			if attr, ok := child.Body.Attributes["minimum"]; ok {
				deferBlock.Placeholder.MinimumTime = c.duration(attr.Expr)
			}
			if placeholder != nil {
				deferBlock.Placeholder.I18n = placeholder
				secondaryNodes = append(secondaryNodes, placeholder)
			}
		case "loading":
			c.checkAttributes(child.Body, "after", "minimum")
			children, placeholder := c.blockChildren("loading", nil, child.Body, scope, child.Range())
			deferBlock.Loading = &render3.DeferredBlockLoading{Children: nonNilNodes(children), SourceSpan: c.span(child.Range())}
			if attr, ok := child.Body.Attributes["after"]; ok {
				deferBlock.Loading.AfterTime = c.duration(attr.Expr)
			}
			if attr, ok := child.Body.Attributes["minimum"]; ok {
				deferBlock.Loading.MinimumTime = c.duration(attr.Expr)
			}
			if placeholder != nil {
				deferBlock.Loading.I18n = placeholder
				secondaryNodes = append(secondaryNodes, placeholder)
			}
		case "error":
			c.checkAttributes(child.Body)
			children, placeholder := c.blockChildren("error", nil, child.Body, scope, child.Range())
			deferBlock.Error = &render3.DeferredBlockError{Children: nonNilNodes(children), SourceSpan: c.span(child.Range())}
			if placeholder != nil {
				deferBlock.Error.I18n = placeholder
				secondaryNodes = append(secondaryNodes, placeholder)
			}
		default:
			node, messageNode := c.node(child, scope)
			if node != nil {
				deferBlock.Children = append(deferBlock.Children, node)
			}
			if messageNode != nil {
				messageNodes = append(messageNodes, messageNode)
			}
		}
	}
	deferBlock.Children = nonNilNodes(deferBlock.Children)
	if scope == nil {
		return deferBlock, nil
	}

	placeholder := c.blockPlaceholder("defer", nil, messageNodes, scope, block.Range())
	deferBlock.I18n = placeholder
	if len(secondaryNodes) == 0 {
		return deferBlock, placeholder
	}
	return deferBlock, &i18n.Container{Children: append([]i18n.Node{placeholder}, secondaryNodes...), SourceSpan: deferBlock.SourceSpan}
}

func nonNilNodes(nodes []render3.Node) []render3.Node {
	if nodes == nil {
		return []render3.Node{}
	}
	return nodes
}

// triggers reads the `on`-style trigger list and `when` condition of one modifier
func (c *converter) triggers(body *hclsyntax.Body, onName, whenName string, triggers *render3.DeferredBlockTriggers) {
	if attr, ok := body.Attributes[whenName]; ok {
		triggers.When = &render3.BoundDeferredTrigger{Value: c.expr(attr.Expr), SourceSpan: c.span(attr.SrcRange)}
	}
	attr, ok := body.Attributes[onName]
	if !ok {
		return
	}
	tuple, ok := attr.Expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		c.errorf(attr.Expr.Range(), "List required", "triggers are a list such as [\"idle\", \"timer(500ms)\"]")
		return
	}
	for _, item := range tuple.Exprs {
		if err := parseTrigger(c.stringValue(item), c.span(item.Range()), triggers); err != nil {
			c.errorf(item.Range(), "Invalid trigger", "%s", err)
		}
	}
}

// parseTrigger adds one trigger such as `idle`, `hover(button)` or `timer(2s)`
func parseTrigger(text string, span *util.ParseSourceSpan, triggers *render3.DeferredBlockTriggers) error {
	name, param := strings.TrimSpace(text), ""
	if open := strings.Index(name, "("); open >= 0 {
		if !strings.HasSuffix(name, ")") {
			return fmt.Errorf("unterminated trigger parameters in %q", text)
		}
		param = strings.TrimSpace(name[open+1 : len(name)-1])
		name = strings.TrimSpace(name[:open])
	}

	duplicate := func(set bool) error {
		if set {
			return fmt.Errorf("duplicate %q trigger is not allowed", name)
		}
		return nil
	}
	noParam := func() error {
		if param != "" {
			return fmt.Errorf("%q trigger cannot have parameters", name)
		}
		return nil
	}

	switch name {
	case "idle":
		if err := errors.Join(duplicate(triggers.Idle != nil), noParam()); err != nil {
			return err
		}
		triggers.Idle = &render3.IdleDeferredTrigger{SourceSpan: span}
	case "immediate":
		if err := errors.Join(duplicate(triggers.Immediate != nil), noParam()); err != nil {
			return err
		}
		triggers.Immediate = &render3.ImmediateDeferredTrigger{SourceSpan: span}
	case "never":
		if err := errors.Join(duplicate(triggers.Never != nil), noParam()); err != nil {
			return err
		}
		triggers.Never = &render3.NeverDeferredTrigger{SourceSpan: span}
	case "timer":
		if err := duplicate(triggers.Timer != nil); err != nil {
			return err
		}
		delay, err := parseMillis(param)
		if err != nil {
			return err
		}
		triggers.Timer = &render3.TimerDeferredTrigger{Delay: delay, SourceSpan: span}
	case "hover":
		if err := duplicate(triggers.Hover != nil); err != nil {
			return err
		}
		triggers.Hover = &render3.HoverDeferredTrigger{Reference: param, SourceSpan: span}
	case "interaction":
		if err := duplicate(triggers.Interaction != nil); err != nil {
			return err
		}
		triggers.Interaction = &render3.InteractionDeferredTrigger{Reference: param, SourceSpan: span}
	case "viewport":
		if err := duplicate(triggers.Viewport != nil); err != nil {
			return err
		}
		triggers.Viewport = &render3.ViewportDeferredTrigger{Reference: param, SourceSpan: span}
	default:
		return fmt.Errorf("unrecognized trigger type %q", name)
	}
	return nil
}

// splitNamespace splits `:svg:circle` into its namespace and local name
func splitNamespace(tag string) (string, string) {
	if !strings.HasPrefix(tag, ":") {
		return "", tag
	}
	if idx := strings.Index(tag[1:], ":"); idx >= 0 {
		return tag[1 : idx+1], tag[idx+2:]
	}
	return "", tag
}
