package phases

import (
	"fmt"

	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/css"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/template/pipeline/src/conversion"
)

const ngProjectAsAttr = "ngProjectAs"

// CollectConstExpressions moves every ConstCollectedExpr into the consts array and replaces it
// with the index literal.
func CollectConstExpressions(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for _, op := range unit.Ops() {
			ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
				collected, ok := expr.(*ir.ConstCollectedExpr)
				if !ok {
					return expr
				}
				return output.Literal(int(job.AddConst(collected.Expr, nil)))
			}, ir.VisitorContextFlagNone)
		}
	}
}

// CollectElementConsts serializes the extracted attributes of each element-like op into a
// marker-separated literal array and stores it in the consts. Host bindings keep the array on
// the unit instead.
func CollectElementConsts(job compilation.CompilationJob) {
	legacy := job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder
	all := map[ir.XrefId]*elementAttributes{}
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetCreate().All() {
			extracted, ok := op.(*ir.ExtractedAttributeOp)
			if !ok {
				continue
			}
			attrs, ok := all[extracted.Target]
			if !ok {
				attrs = newElementAttributes(legacy)
				all[extracted.Target] = attrs
			}
			if err := attrs.add(extracted); err != nil {
				job.Fail(err)
				return
			}
			unit.GetCreate().Remove(op)
		}
	}

	switch j := job.(type) {
	case *compilation.ComponentCompilationJob:
		for _, unit := range j.GetUnits() {
			for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
				switch o := op.(type) {
				case *ir.ProjectionOp:
					if attrs, ok := all[o.Xref]; ok {
						if array := attrs.serialize(); len(array.Entries) > 0 {
							o.Attributes = array
						}
					}
				case ir.ElementOrContainerOp:
					base := o.GetElementOrContainerBase()
					base.Attributes = constIndexFor(j, all, base.Xref)
					// A repeater's empty view is a second element-like target on the same op.
					if repeater, ok := op.(*ir.RepeaterCreateOp); ok && repeater.EmptyView != ir.NoXref {
						repeater.EmptyAttributes = constIndexFor(j, all, repeater.EmptyView)
					}
				}
			}
		}
	case *compilation.HostBindingCompilationJob:
		root := j.Root
		for xref, attrs := range all {
			if xref != root.Xref {
				ir.Assertf("attribute of %d would be collected into the host bindings of %d", xref, root.Xref)
			}
			if array := attrs.serialize(); len(array.Entries) > 0 {
				root.Attributes = array
			}
		}
	}
}

func constIndexFor(job *compilation.ComponentCompilationJob, all map[ir.XrefId]*elementAttributes, xref ir.XrefId) *ir.ConstIndex {
	attrs, ok := all[xref]
	if !ok {
		return nil
	}
	array := attrs.serialize()
	if len(array.Entries) == 0 {
		return nil
	}
	idx := job.AddConst(array, nil)
	return &idx
}

type attributeEntry struct {
	name  string
	exprs []output.OutputExpression
}

// elementAttributes accumulates the static attributes of one element, grouped by binding kind
// in first-seen order.
type elementAttributes struct {
	legacy    bool
	byKind    map[ir.BindingKind][]attributeEntry
	projectAs []interface{}
}

func newElementAttributes(legacy bool) *elementAttributes {
	return &elementAttributes{legacy: legacy, byKind: map[ir.BindingKind][]attributeEntry{}}
}

func (e *elementAttributes) add(op *ir.ExtractedAttributeOp) error {
	kind := op.BindingKind
	if kind == ir.BindingKindTwoWayProperty {
		kind = ir.BindingKindProperty
	}

	entries := e.byKind[kind]
	existing := -1
	for i, entry := range entries {
		if entry.name == op.Name {
			existing = i
			break
		}
	}
	if existing >= 0 {
		// Legacy output applies the last of several identical static attributes.
		keepLast := e.legacy && (kind == ir.BindingKindAttribute || kind == ir.BindingKindClassName || kind == ir.BindingKindStyleProperty)
		if !keepLast {
			return nil
		}
		entries = append(entries[:existing], entries[existing+1:]...)
	}

	if op.Name == ngProjectAsAttr {
		value, ok := stringLiteral(op.Expression)
		if !ok {
			return fmt.Errorf("%s must have a string literal value", ngProjectAsAttr)
		}
		selector, err := css.ParseSelectorToR3Selector(value)
		if err != nil {
			return fmt.Errorf("parsing %s selector %q: %w", ngProjectAsAttr, value, err)
		}
		// Only the first selector of the list is supported.
		if len(selector) > 0 {
			e.projectAs = []interface{}{selector[0]}
		}
	}

	exprs := attributeNameLiterals(op.Namespace, op.Name)
	if kind == ir.BindingKindAttribute || kind == ir.BindingKindStyleProperty {
		if op.Expression == nil {
			ir.Assertf("static attribute %q of kind %d has no value", op.Name, kind)
		}
		value := op.Expression
		if op.TrustedValueFn != nil {
			_, ok := stringLiteral(value)
			if !ok {
				ir.Assertf("trusted value of %q must be a string literal", op.Name)
			}
			value = output.Call(op.TrustedValueFn, []output.OutputExpression{value}, nil)
		}
		exprs = append(exprs, value)
	}
	e.byKind[kind] = append(entries, attributeEntry{name: op.Name, exprs: exprs})
	return nil
}

func (e *elementAttributes) flatten(kind ir.BindingKind) []output.OutputExpression {
	var out []output.OutputExpression
	for _, entry := range e.byKind[kind] {
		out = append(out, entry.exprs...)
	}
	return out
}

// serialize lays the attributes out as plain name/value pairs followed by the marker
// sections for projectAs, classes, styles, bindings, template attributes and i18n attributes.
func (e *elementAttributes) serialize() *output.LiteralArrayExpr {
	array := e.flatten(ir.BindingKindAttribute)
	if len(e.projectAs) > 0 {
		array = append(array, output.Literal(int(core.AttributeMarkerProjectAs)), conversion.LiteralOrArrayLiteral(e.projectAs[0]))
	}
	sections := []struct {
		marker core.AttributeMarker
		kind   ir.BindingKind
	}{
		{core.AttributeMarkerClasses, ir.BindingKindClassName},
		{core.AttributeMarkerStyles, ir.BindingKindStyleProperty},
		{core.AttributeMarkerBindings, ir.BindingKindProperty},
		{core.AttributeMarkerTemplate, ir.BindingKindTemplate},
		{core.AttributeMarkerI18n, ir.BindingKindI18n},
	}
	for _, section := range sections {
		if values := e.flatten(section.kind); len(values) > 0 {
			array = append(array, output.Literal(int(section.marker)))
			array = append(array, values...)
		}
	}
	return output.NewLiteralArrayExpr(array, nil)
}

func attributeNameLiterals(namespace, name string) []output.OutputExpression {
	if namespace != "" {
		return []output.OutputExpression{
			output.Literal(int(core.AttributeMarkerNamespaceURI)),
			output.Literal(namespace),
			output.Literal(name),
		}
	}
	return []output.OutputExpression{output.Literal(name)}
}

func stringLiteral(expr output.OutputExpression) (string, bool) {
	literal, ok := expr.(*output.LiteralExpr)
	if !ok {
		return "", false
	}
	value, ok := literal.Value.(string)
	return value, ok
}
