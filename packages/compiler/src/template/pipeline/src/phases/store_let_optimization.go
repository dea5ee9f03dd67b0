package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// OptimizeStoreLet drops `storeLet` calls for `@let` declarations that no other view reads. The
// declaration itself is dropped as well unless its value uses a pipe, since pipes need the node
// `declareLet` creates for injection.
func OptimizeStoreLet(job compilation.CompilationJob) {
	usedExternally := make(map[ir.XrefId]bool)
	declarations := make(map[ir.XrefId]*ir.DeclareLetOp)

	for _, unit := range job.GetUnits() {
		for _, op := range unit.Ops() {
			if declare, ok := op.(*ir.DeclareLetOp); ok {
				declarations[declare.Xref] = declare
			}
			ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
				if ref, ok := expr.(*ir.ContextLetReferenceExpr); ok {
					usedExternally[ref.Target] = true
				}
			})
		}
	}

	for _, unit := range job.GetUnits() {
		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
				store, ok := expr.(*ir.StoreLetExpr)
				if !ok || usedExternally[store.Target] {
					return expr
				}
				if declare, ok := declarations[store.Target]; ok && !hasPipe(store) && unit.GetCreate().Owns(declare) {
					unit.GetCreate().Remove(declare)
				}
				return store.Value
			}, ir.VisitorContextFlagNone)
		}
	}
}

func hasPipe(root *ir.StoreLetExpr) bool {
	found := false
	ir.TransformExpressionsInExpression(root, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
		switch expr.(type) {
		case *ir.PipeBindingExpr, *ir.PipeBindingVariadicExpr:
			found = true
		}
		return expr
	}, ir.VisitorContextFlagNone)
	return found
}
