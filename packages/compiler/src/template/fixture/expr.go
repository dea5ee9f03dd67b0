package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"ngc-ir/packages/compiler/src/expression_parser"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/render3"
)

var binaryOperations = map[*hclsyntax.Operation]string{
	hclsyntax.OpLogicalOr:          "||",
	hclsyntax.OpLogicalAnd:         "&&",
	hclsyntax.OpEqual:              "==",
	hclsyntax.OpNotEqual:           "!=",
	hclsyntax.OpGreaterThan:        ">",
	hclsyntax.OpGreaterThanOrEqual: ">=",
	hclsyntax.OpLessThan:           "<",
	hclsyntax.OpLessThanOrEqual:    "<=",
	hclsyntax.OpAdd:                "+",
	hclsyntax.OpSubtract:           "-",
	hclsyntax.OpMultiply:           "*",
	hclsyntax.OpDivide:             "/",
	hclsyntax.OpModulo:             "%",
}

// binaryFunctions are the template operators HCL has no syntax for
var binaryFunctions = map[string]string{
	"identical":     "===",
	"not_identical": "!==",
	"coalesce":      "??",
	"set":           "=",
	"in":            "in",
	"pow":           "**",
}

// identifier maps a fixture identifier onto a template name
func identifier(name string) string {
	if strings.HasPrefix(name, "_") {
		return "$" + name[1:]
	}
	return name
}

// entry is one item of an object constructor
type entry struct {
	key      string
	keyRange hcl.Range
	value    hclsyntax.Expression
}

// entries reads the items of an object constructor in source order
func (c *converter) entries(expr hclsyntax.Expression) []entry {
	obj, ok := expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		c.errorf(expr.Range(), "Object required", "expected an object such as { name = value }")
		return nil
	}
	var entries []entry
	for _, item := range obj.Items {
		key := hcl.ExprAsKeyword(item.KeyExpr)
		if key == "" {
			v, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() || v.IsNull() || !v.Type().Equals(cty.String) {
				c.errorf(item.KeyExpr.Range(), "Invalid key", "object keys must be names or strings")
				continue
			}
			key = v.AsString()
		}
		entries = append(entries, entry{key: key, keyRange: item.KeyExpr.Range(), value: item.ValueExpr})
	}
	return entries
}

// constant evaluates an expression that must not reference anything
func (c *converter) constant(expr hclsyntax.Expression) (cty.Value, bool) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		c.errorf(expr.Range(), "Constant required", "expected a constant value: %s", diags.Error())
		return cty.NilVal, false
	}
	return v, true
}

func (c *converter) stringValue(expr hclsyntax.Expression) string {
	v, ok := c.constant(expr)
	if !ok {
		return ""
	}
	if v.IsNull() || !v.Type().Equals(cty.String) {
		c.errorf(expr.Range(), "String required", "expected a string, got %s", v.Type().FriendlyName())
		return ""
	}
	return v.AsString()
}

// stringMap reads an object whose values are constant strings
func (c *converter) stringMap(expr hclsyntax.Expression) []stringEntry {
	var values []stringEntry
	for _, e := range c.entries(expr) {
		values = append(values, stringEntry{
			key:   e.key,
			value: c.stringValue(e.value),
			rng:   hcl.RangeBetween(e.keyRange, e.value.Range()),
			vrng:  e.value.Range(),
		})
	}
	return values
}

type stringEntry struct {
	key, value string
	rng, vrng  hcl.Range
}

// duration reads a time in milliseconds, written as a number or as "500ms" or "2s"
func (c *converter) duration(expr hclsyntax.Expression) *int {
	v, ok := c.constant(expr)
	if !ok || v.IsNull() {
		return nil
	}
	if v.Type().Equals(cty.Number) {
		ms, _ := v.AsBigFloat().Int64()
		n := int(ms)
		return &n
	}
	if v.Type().Equals(cty.String) {
		n, err := parseMillis(v.AsString())
		if err != nil {
			c.errorf(expr.Range(), "Invalid time", "%s", err)
			return nil
		}
		return &n
	}
	c.errorf(expr.Range(), "Invalid time", "expected a number of milliseconds or a string such as \"500ms\"")
	return nil
}

// parseMillis parses a time such as `500ms`, `2s` or `300`
func parseMillis(s string) (int, error) {
	s = strings.TrimSpace(s)
	multiplier := 1
	switch {
	case strings.HasSuffix(s, "ms"):
		s = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "s"):
		s = strings.TrimSuffix(s, "s")
		multiplier = 1000
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("could not parse time value %q", s)
	}
	return int(value * float64(multiplier)), nil
}

// outputLiteral converts a constant into an output literal
func (c *converter) outputLiteral(expr hclsyntax.Expression) output.OutputExpression {
	v, ok := c.constant(expr)
	if !ok {
		return output.NewLiteralExpr(nil, c.span(expr.Range()))
	}
	value, err := literalValue(v)
	if err != nil {
		c.errorf(expr.Range(), "Invalid literal", "%s", err)
	}
	return output.NewLiteralExpr(value, c.span(expr.Range()))
}

func literalValue(v cty.Value) (interface{}, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	switch {
	case v.Type().Equals(cty.String):
		return v.AsString(), nil
	case v.Type().Equals(cty.Bool):
		return v.True(), nil
	case v.Type().Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return int(i), nil
		}
		f, _ := bf.Float64()
		return f, nil
	}
	return nil, fmt.Errorf("unsupported literal of type %s", v.Type().FriendlyName())
}

// bindingValue converts the value of a binding. A string template with interpolations
// becomes an interpolation.
func (c *converter) bindingValue(expr hclsyntax.Expression) expression_parser.AST {
	switch e := expr.(type) {
	case *hclsyntax.TemplateWrapExpr:
		return expression_parser.NewInterpolation(c.span(e.Range()), []string{"", ""}, []expression_parser.AST{c.expr(e.Wrapped)})
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			return c.interpolation(e)
		}
	}
	return c.expr(expr)
}

// interpolation converts a string template into strings and the expressions between them
func (c *converter) interpolation(tmpl *hclsyntax.TemplateExpr) *expression_parser.Interpolation {
	strs := []string{""}
	var exprs []expression_parser.AST
	for _, part := range tmpl.Parts {
		if lit, ok := part.(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type().Equals(cty.String) {
			strs[len(strs)-1] += lit.Val.AsString()
			continue
		}
		exprs = append(exprs, c.expr(part))
		strs = append(strs, "")
	}
	return expression_parser.NewInterpolation(c.span(tmpl.Range()), strs, exprs)
}

// textInterpolation converts the value of an interpolated text node
func (c *converter) textInterpolation(expr hclsyntax.Expression) *expression_parser.Interpolation {
	switch e := expr.(type) {
	case *hclsyntax.TemplateWrapExpr:
		return expression_parser.NewInterpolation(c.span(e.Range()), []string{"", ""}, []expression_parser.AST{c.expr(e.Wrapped)})
	case *hclsyntax.TemplateExpr:
		return c.interpolation(e)
	}
	return expression_parser.NewInterpolation(c.span(expr.Range()), []string{"", ""}, []expression_parser.AST{c.expr(expr)})
}

// event converts one `name = handler` listener entry. A `window:`, `document:` or `body:`
// prefix sets the event target.
func (c *converter) event(e entry) *render3.BoundEvent {
	name, target := e.key, ""
	if idx := strings.Index(name, ":"); idx >= 0 {
		target, name = name[:idx], name[idx+1:]
		switch target {
		case "window", "document", "body":
		default:
			c.errorf(e.keyRange, "Invalid event target", "unknown event target %q", target)
		}
	}
	return &render3.BoundEvent{
		Name:        name,
		Type:        expression_parser.ParsedEventTypeRegular,
		Handler:     c.expr(e.value),
		Target:      target,
		SourceSpan:  c.span(hcl.RangeBetween(e.keyRange, e.value.Range())),
		HandlerSpan: c.span(e.value.Range()),
	}
}

// expr converts an HCL expression into a template expression
func (c *converter) expr(expr hclsyntax.Expression) expression_parser.AST {
	span := c.span(expr.Range())
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		value, err := literalValue(e.Val)
		if err != nil {
			c.errorf(e.Range(), "Invalid literal", "%s", err)
		}
		return expression_parser.NewLiteralPrimitive(span, value)

	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			c.errorf(e.Range(), "Unexpected interpolation", "interpolations are only allowed as the whole value of a binding or text")
			return expression_parser.NewEmptyExpr(span)
		}
		v, ok := c.constant(e)
		if !ok {
			return expression_parser.NewEmptyExpr(span)
		}
		return expression_parser.NewLiteralPrimitive(span, v.AsString())

	case *hclsyntax.TemplateWrapExpr:
		return c.expr(e.Wrapped)

	case *hclsyntax.ScopeTraversalExpr:
		return c.traversal(nil, e.Traversal, e.Range())

	case *hclsyntax.RelativeTraversalExpr:
		return c.traversal(c.expr(e.Source), e.Traversal, e.Range())

	case *hclsyntax.IndexExpr:
		return expression_parser.NewKeyedRead(span, c.expr(e.Collection), c.expr(e.Key))

	case *hclsyntax.FunctionCallExpr:
		return c.call(e)

	case *hclsyntax.BinaryOpExpr:
		op, ok := binaryOperations[e.Op]
		if !ok {
			c.errorf(e.Range(), "Unsupported operator", "the operator is not supported in templates")
			return expression_parser.NewEmptyExpr(span)
		}
		return expression_parser.NewBinary(span, op, c.expr(e.LHS), c.expr(e.RHS))

	case *hclsyntax.UnaryOpExpr:
		if e.Op == hclsyntax.OpLogicalNot {
			return expression_parser.NewPrefixNot(span, c.expr(e.Val))
		}
		return expression_parser.NewUnary(span, "-", c.expr(e.Val))

	case *hclsyntax.ConditionalExpr:
		return expression_parser.NewConditional(span, c.expr(e.Condition), c.expr(e.TrueResult), c.expr(e.FalseResult))

	case *hclsyntax.ParenthesesExpr:
		return expression_parser.NewParenthesizedExpression(span, c.expr(e.Expression))

	case *hclsyntax.TupleConsExpr:
		values := make([]expression_parser.AST, 0, len(e.Exprs))
		for _, item := range e.Exprs {
			values = append(values, c.expr(item))
		}
		return expression_parser.NewLiteralArray(span, values)

	case *hclsyntax.ObjectConsExpr:
		var keys []expression_parser.LiteralMapKey
		var values []expression_parser.AST
		for _, item := range e.Items {
			key := hcl.ExprAsKeyword(item.KeyExpr)
			quoted := false
			if key == "" {
				v, ok := c.constant(item.KeyExpr)
				if !ok || v.IsNull() || !v.Type().Equals(cty.String) {
					continue
				}
				key, quoted = v.AsString(), true
			}
			keys = append(keys, expression_parser.LiteralMapKey{Key: key, Quoted: quoted})
			values = append(values, c.expr(item.ValueExpr))
		}
		return expression_parser.NewLiteralMap(span, keys, values)
	}

	c.errorf(expr.Range(), "Unsupported expression", "%T expressions are not supported in templates", expr)
	return expression_parser.NewEmptyExpr(span)
}

// traversal converts a chain of reads. A nil receiver starts from the component context, or
// from `this` when the root is named so.
func (c *converter) traversal(receiver expression_parser.AST, traversal hcl.Traversal, rng hcl.Range) expression_parser.AST {
	current := receiver
	start := rng
	for i, step := range traversal {
		stepRange := step.SourceRange()
		if i == 0 && receiver == nil {
			start = stepRange
		}
		span := c.span(hcl.RangeBetween(start, stepRange))
		switch t := step.(type) {
		case hcl.TraverseRoot:
			if t.Name == "this" {
				current = expression_parser.NewThisReceiver(span)
				continue
			}
			current = expression_parser.NewPropertyRead(span, expression_parser.NewImplicitReceiver(span), identifier(t.Name))
		case hcl.TraverseAttr:
			current = expression_parser.NewPropertyRead(span, current, identifier(t.Name))
		case hcl.TraverseIndex:
			value, err := literalValue(t.Key)
			if err != nil {
				c.errorf(stepRange, "Invalid index", "%s", err)
			}
			current = expression_parser.NewKeyedRead(span, current, expression_parser.NewLiteralPrimitive(c.span(stepRange), value))
		default:
			c.errorf(stepRange, "Unsupported traversal", "splat expressions are not supported in templates")
			return expression_parser.NewEmptyExpr(span)
		}
	}
	return current
}

// call converts a function call. Names joined with `::` call a method, so `user::save(x)`
// is `user.save(x)`. A handful of names stand for template constructs HCL lacks.
func (c *converter) call(e *hclsyntax.FunctionCallExpr) expression_parser.AST {
	span := c.span(e.Range())
	if e.ExpandFinal {
		c.errorf(e.Range(), "Unsupported expansion", "argument expansion is not supported in templates")
	}
	args := func(from int) []expression_parser.AST {
		var out []expression_parser.AST
		for _, arg := range e.Args[from:] {
			out = append(out, c.expr(arg))
		}
		return out
	}
	arity := func(min int) bool {
		if len(e.Args) >= min {
			return true
		}
		c.errorf(e.Range(), "Not enough arguments", "%s expects at least %d argument(s)", e.Name, min)
		return false
	}

	if op, ok := binaryFunctions[e.Name]; ok {
		if !arity(2) {
			return expression_parser.NewEmptyExpr(span)
		}
		all := args(0)
		result := all[0]
		for _, next := range all[1:] {
			result = expression_parser.NewBinary(span, op, result, next)
		}
		return result
	}

	switch e.Name {
	case "pipe":
		if !arity(2) {
			return expression_parser.NewEmptyExpr(span)
		}
		name := c.stringValue(e.Args[0])
		return expression_parser.NewBindingPipe(span, c.expr(e.Args[1]), name, args(2))
	case "safe":
		if !arity(1) {
			return expression_parser.NewEmptyExpr(span)
		}
		return c.safe(c.expr(e.Args[0]), e.Args[0].Range())
	case "chain":
		return expression_parser.NewChain(span, args(0))
	case "typeof":
		if !arity(1) {
			return expression_parser.NewEmptyExpr(span)
		}
		return expression_parser.NewTypeofExpression(span, c.expr(e.Args[0]))
	case "non_null":
		if !arity(1) {
			return expression_parser.NewEmptyExpr(span)
		}
		return expression_parser.NewNonNullAssert(span, c.expr(e.Args[0]))
	case "plus":
		if !arity(1) {
			return expression_parser.NewEmptyExpr(span)
		}
		return expression_parser.NewUnary(span, "+", c.expr(e.Args[0]))
	}

	// The receiver spans the function name only.
	nameSpan := c.span(e.NameRange)
	var receiver expression_parser.AST = expression_parser.NewImplicitReceiver(nameSpan)
	for i, part := range strings.Split(e.Name, "::") {
		if i == 0 && part == "this" {
			receiver = expression_parser.NewThisReceiver(nameSpan)
			continue
		}
		receiver = expression_parser.NewPropertyRead(nameSpan, receiver, identifier(part))
	}
	return expression_parser.NewCall(span, receiver, args(0))
}

// safe turns the outermost read or call of ast into its null-safe form
func (c *converter) safe(ast expression_parser.AST, rng hcl.Range) expression_parser.AST {
	switch a := ast.(type) {
	case *expression_parser.PropertyRead:
		return expression_parser.NewSafePropertyRead(a.GetSourceSpan(), a.Receiver, a.Name)
	case *expression_parser.KeyedRead:
		return expression_parser.NewSafeKeyedRead(a.GetSourceSpan(), a.Receiver, a.Key)
	case *expression_parser.Call:
		return expression_parser.NewSafeCall(a.GetSourceSpan(), a.Receiver, a.Args)
	}
	c.errorf(rng, "Invalid safe navigation", "safe() applies to a property read, keyed read or call")
	return ast
}
