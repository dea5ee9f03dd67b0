package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// CountVariables counts the binding slots (vars) used by each unit and records the count on the
// ops declaring embedded views. Expressions that need to know their binding offset receive it
// here.
func CountVariables(job compilation.CompilationJob) {
	legacy := job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder
	for _, unit := range job.GetUnits() {
		count := 0
		lists := []*ir.OpList{unit.GetCreate(), unit.GetUpdate()}

		// Top-level ops come first so that conditional expressions (a pipe inside a ternary)
		// don't shift the offsets of the bindings.
		for _, list := range lists {
			for op := list.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
				if ir.HasConsumesVarsTrait(op) {
					count += varsUsedByOp(op)
				}
			}
		}

		// The legacy compiler assigned pure function offsets after everything else.
		visit := func(pureFunctions bool) {
			for _, list := range lists {
				for op := list.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
					ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
						if !ir.IsIrExpression(expr) {
							return
						}
						if _, isPure := expr.(*ir.PureFunctionExpr); legacy && isPure != pureFunctions {
							return
						}
						if offset, ok := expr.(ir.UsesVarOffset); ok {
							offset.SetVarOffset(count)
						}
						if ir.HasConsumesVarsTrait(expr) {
							count += varsUsedByExpression(expr)
						}
					})
				}
			}
		}
		visit(false)
		if legacy {
			visit(true)
		}

		unit.SetVars(count)
	}

	component, ok := job.(*compilation.ComponentCompilationJob)
	if !ok {
		return
	}
	for _, view := range component.ViewUnits() {
		for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			switch o := op.(type) {
			case *ir.TemplateOp:
				o.Vars = component.View(o.Xref).GetVars()
			case *ir.RepeaterCreateOp:
				// The empty view's vars are read from its unit at reification.
				o.Vars = component.View(o.Xref).GetVars()
			}
		}
	}
}

func varsUsedByOp(op ir.Op) int {
	switch o := op.(type) {
	case *ir.AttributeOp:
		// One slot, plus one per interpolated expression unless the interpolation is trivial.
		if interp, ok := o.Expression.(*ir.Interpolation); ok && !isSingletonInterpolation(interp) {
			return 1 + len(interp.Expressions)
		}
		return 1
	case *ir.PropertyOp:
		// The runtime stores the raw and the stringified value even for singletons.
		return 1 + interpolatedCount(o.Expression)
	case *ir.DomPropertyOp:
		return 1 + interpolatedCount(o.Expression)
	case *ir.TwoWayPropertyOp:
		return 1
	case *ir.StylePropOp:
		return 2 + interpolatedCount(o.Expression)
	case *ir.ClassPropOp:
		return 2 + interpolatedCount(o.Expression)
	case *ir.StyleMapOp:
		return 2 + interpolatedCount(o.Expression)
	case *ir.ClassMapOp:
		return 2 + interpolatedCount(o.Expression)
	case *ir.InterpolateTextOp:
		return len(o.Interpolation.Expressions)
	case *ir.I18nExpressionOp, *ir.ConditionalOp, *ir.DeferWhenOp, *ir.StoreLetOp:
		return 1
	case *ir.RepeaterCreateOp:
		// The empty view is tracked in a binding slot.
		if o.EmptyView != ir.NoXref {
			return 1
		}
		return 0
	}
	ir.Assertf("unhandled op %s consuming vars", op.GetKind())
	return 0
}

func varsUsedByExpression(expr output.OutputExpression) int {
	switch e := expr.(type) {
	case *ir.PureFunctionExpr:
		return 1 + len(e.Args)
	case *ir.PipeBindingExpr:
		return 1 + len(e.Args)
	case *ir.PipeBindingVariadicExpr:
		return 1 + e.NumArgs
	case *ir.StoreLetExpr:
		return 1
	}
	ir.Assertf("unhandled expression %T consuming vars", expr)
	return 0
}

func interpolatedCount(expr output.OutputExpression) int {
	if interp, ok := expr.(*ir.Interpolation); ok {
		return len(interp.Expressions)
	}
	return 0
}

func isSingletonInterpolation(interp *ir.Interpolation) bool {
	return len(interp.Expressions) == 1 && len(interp.Strings) == 2 &&
		interp.Strings[0] == "" && interp.Strings[1] == ""
}
