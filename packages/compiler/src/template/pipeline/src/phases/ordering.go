package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// orderingRule places the ops matching test into one group. transform, when set, rewrites the
// group before it is reassembled.
type orderingRule struct {
	test      func(op ir.Op) bool
	transform func(ops []ir.Op) []ir.Op
}

func kindTest(kind ir.OpKind) func(op ir.Op) bool {
	return func(op ir.Op) bool { return op.GetKind() == kind }
}

func kindWithInterpolationTest(kind ir.OpKind, interpolation bool) func(op ir.Op) bool {
	return func(op ir.Op) bool {
		return op.GetKind() == kind && interpolation == isInterpolationBinding(op)
	}
}

func isInterpolationBinding(op ir.Op) bool {
	var expr output.OutputExpression
	switch o := op.(type) {
	case *ir.AttributeOp:
		expr = o.Expression
	case *ir.PropertyOp:
		expr = o.Expression
	case *ir.TwoWayPropertyOp:
		expr = o.Expression
	case *ir.DomPropertyOp:
		expr = o.Expression
	}
	_, ok := expr.(*ir.Interpolation)
	return ok
}

func basicListenerKindTest(op ir.Op) bool {
	return op.GetKind() == ir.OpKindListener || op.GetKind() == ir.OpKindTwoWayListener
}

func nonInterpolationPropertyKindTest(op ir.Op) bool {
	return (op.GetKind() == ir.OpKindProperty || op.GetKind() == ir.OpKindTwoWayProperty) && !isInterpolationBinding(op)
}

// Many type of operations have ordering constraints that must be respected. For example, a
// `ClassMap` instruction must be ordered after a `StyleMap` instruction, in order to have
// predictable semantics that match TemplateDefinitionBuilder and don't break applications.
var createOrdering = []orderingRule{
	{test: basicListenerKindTest},
}

var updateOrdering = []orderingRule{
	{test: kindTest(ir.OpKindStyleMap), transform: keepLast},
	{test: kindTest(ir.OpKindClassMap), transform: keepLast},
	{test: kindTest(ir.OpKindStyleProp)},
	{test: kindTest(ir.OpKindClassProp)},
	{test: kindWithInterpolationTest(ir.OpKindAttribute, true)},
	{test: kindWithInterpolationTest(ir.OpKindProperty, true)},
	{test: nonInterpolationPropertyKindTest},
	{test: kindWithInterpolationTest(ir.OpKindAttribute, false)},
}

// Host bindings have their own update block ordering to keep them compatible with the
// TemplateDefinitionBuilder output.
var updateHostOrdering = []orderingRule{
	{test: kindWithInterpolationTest(ir.OpKindDomProperty, true)},
	{test: kindWithInterpolationTest(ir.OpKindDomProperty, false)},
	{test: kindTest(ir.OpKindAttribute)},
	{test: kindTest(ir.OpKindStyleMap), transform: keepLast},
	{test: kindTest(ir.OpKindClassMap), transform: keepLast},
	{test: kindTest(ir.OpKindStyleProp)},
	{test: kindTest(ir.OpKindClassProp)},
}

// The set of all op kinds we handle in the reordering phase.
var handledOpKinds = map[ir.OpKind]bool{
	ir.OpKindListener:       true,
	ir.OpKindTwoWayListener: true,
	ir.OpKindStyleMap:       true,
	ir.OpKindClassMap:       true,
	ir.OpKindStyleProp:      true,
	ir.OpKindClassProp:      true,
	ir.OpKindProperty:       true,
	ir.OpKindTwoWayProperty: true,
	ir.OpKindDomProperty:    true,
	ir.OpKindAttribute:      true,
}

// OrderOps reorders property and attribute ops according to the ordering constraints above.
// Only runs of handled ops that target the same element are reordered.
func OrderOps(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		// First, we pull out ops that need to be ordered. Then, when we encounter an op that
		// shouldn't be reordered, put the ones we've pulled so far back in the correct order.
		// Finally, if we still have ops pulled at the end, put them back in the correct order.
		orderWithin(unit.GetCreate(), createOrdering)
		ordering := updateOrdering
		if job.GetKind() == compilation.CompilationJobKindHost {
			ordering = updateHostOrdering
		}
		orderWithin(unit.GetUpdate(), ordering)
	}
}

// orderWithin orders the operations within the given list according to the ordering rules.
func orderWithin(opList *ir.OpList, ordering []orderingRule) {
	var opsToOrder []ir.Op
	// Only reorder ops that target the same xref; do not mix ops that target different xrefs.
	firstTargetInGroup := ir.NoXref
	for _, op := range opList.All() {
		currentTarget := ir.NoXref
		if dependent, ok := op.(ir.DependsOnSlotContext); ok {
			currentTarget = dependent.GetDependsOnSlotContextTrait().Target
		}
		if !handledOpKinds[op.GetKind()] ||
			(currentTarget != firstTargetInGroup && firstTargetInGroup != ir.NoXref && currentTarget != ir.NoXref) {
			for _, ordered := range reorder(opsToOrder, ordering) {
				opList.InsertBefore(ordered, op)
			}
			opsToOrder = nil
			firstTargetInGroup = ir.NoXref
		}
		if handledOpKinds[op.GetKind()] {
			opsToOrder = append(opsToOrder, op)
			opList.Remove(op)
			if currentTarget != ir.NoXref {
				firstTargetInGroup = currentTarget
			}
		}
	}
	opList.Push(reorder(opsToOrder, ordering)...)
}

// reorder splits ops into groups based on the ordering rules and reassembles the groups in
// rule order.
func reorder(ops []ir.Op, ordering []orderingRule) []ir.Op {
	groups := make([][]ir.Op, len(ordering))
	for _, op := range ops {
		for i, rule := range ordering {
			if rule.test(op) {
				groups[i] = append(groups[i], op)
				break
			}
		}
	}
	var result []ir.Op
	for i, group := range groups {
		if transform := ordering[i].transform; transform != nil {
			group = transform(group)
		}
		result = append(result, group...)
	}
	return result
}

// keepLast keeps only the last op in a list of ops.
func keepLast(ops []ir.Op) []ir.Op {
	if len(ops) == 0 {
		return ops
	}
	return ops[len(ops)-1:]
}
