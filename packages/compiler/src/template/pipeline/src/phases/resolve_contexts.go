package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ResolveContexts resolves `ir.ContextExpr` expressions to either the `ctx` parameter of the
// current view function or the variable holding a context reached through `nextContext()`.
func ResolveContexts(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		resolveContextsInScope(unit, unit.GetCreate())
		resolveContextsInScope(unit, unit.GetUpdate())
	}
}

func resolveContextsInScope(unit compilation.CompilationUnit, ops *ir.OpList) {
	// Expressions reaching every available context, by view xref.
	scope := map[ir.XrefId]output.OutputExpression{
		unit.GetXref(): output.NewReadVarExpr("ctx", nil),
	}

	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		switch o := op.(type) {
		case *ir.VariableOp:
			if ctxVar, ok := o.Variable.(*ir.ContextVariable); ok {
				scope[ctxVar.View] = ir.NewReadVariableExpr(o.Xref)
			}
		case *ir.ListenerOp, *ir.TwoWayListenerOp:
			resolveContextsInScope(unit, listenerHandlerOps(o))
		case *ir.RepeaterCreateOp:
			if o.TrackByOps != nil {
				resolveContextsInScope(unit, o.TrackByOps)
			}
		}
	}

	if unit == unit.GetJob().GetRoot() {
		// Prefer `ctx` of the root view to any variable that happens to hold the root context.
		scope[unit.GetXref()] = output.NewReadVarExpr("ctx", nil)
	}

	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
			ctx, ok := expr.(*ir.ContextExpr)
			if !ok {
				return expr
			}
			resolved, ok := scope[ctx.View]
			if !ok {
				ir.Assertf("no context found for reference to view %d from view %d", ctx.View, unit.GetXref())
			}
			return resolved
		}, ir.VisitorContextFlagNone)
	}
}
