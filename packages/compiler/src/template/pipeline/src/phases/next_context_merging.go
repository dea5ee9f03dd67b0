package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// MergeNextContextExpressions folds a standalone `nextContext()` statement into the next
// `nextContext()` of the same list, as long as nothing in between depends on the current
// context and the result of the first one is not used.
func MergeNextContextExpressions(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			if handlers := listenerHandlerOps(op); handlers != nil {
				mergeNextContextsInOps(handlers)
			} else if repeater, ok := op.(*ir.RepeaterCreateOp); ok && repeater.TrackByOps != nil {
				mergeNextContextsInOps(repeater.TrackByOps)
			}
		}
		mergeNextContextsInOps(unit.GetUpdate())
	}
}

func mergeNextContextsInOps(ops *ir.OpList) {
	for _, op := range ops.All() {
		stmtOp, ok := op.(*ir.StatementOp)
		if !ok {
			continue
		}
		stmt, ok := stmtOp.Statement.(*output.ExpressionStatement)
		if !ok {
			continue
		}
		next, ok := stmt.Expr.(*ir.NextContextExpr)
		if !ok {
			continue
		}
		steps := next.Steps

		merging := true
		for candidate := op.Next(); candidate.GetKind() != ir.OpKindListEnd && merging; candidate = candidate.Next() {
			ir.VisitExpressionsInOp(candidate, func(expr output.OutputExpression, flags ir.VisitorContextFlag) {
				if !merging || flags&ir.VisitorContextFlagInChildOperation != 0 {
					return
				}
				switch e := expr.(type) {
				case *ir.NextContextExpr:
					e.Steps += steps
					ops.Remove(op)
					merging = false
				case *ir.GetCurrentViewExpr, *ir.ReferenceExpr, *ir.ContextLetReferenceExpr:
					merging = false
				}
			})
		}
	}
}
