package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// SaveAndRestoreView saves the current view at the start of every view's creation block, and
// restores it inside listeners that need the view: every listener of an embedded view, and root
// view listeners that read local references or `@let` declarations.
func SaveAndRestoreView(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		unit.GetCreate().Prepend([]ir.Op{
			ir.NewVariableOp(job.AllocateXrefId(), ir.NewSavedViewVariable(unit.GetXref()), ir.NewGetCurrentViewExpr(), ir.VariableFlagsNone),
		})

		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			handlerOps := listenerHandlerOps(op)
			if handlerOps == nil {
				continue
			}

			// Embedded views always need the save/restore view operation.
			needsRestoreView := unit != compilation.CompilationUnit(job.Root)
			if !needsRestoreView {
				for handlerOp := handlerOps.Head(); handlerOp.GetKind() != ir.OpKindListEnd; handlerOp = handlerOp.Next() {
					ir.VisitExpressionsInOp(handlerOp, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
						switch expr.(type) {
						case *ir.ReferenceExpr, *ir.ContextLetReferenceExpr:
							// Listeners that reference() a local ref need the save/restore view operation.
							needsRestoreView = true
						}
					})
				}
			}

			if needsRestoreView {
				addSaveRestoreViewOperationToListener(job, unit, handlerOps)
			}
		}
	}
}

// listenerHandlerOps returns the handler ops of a listener, or nil for other ops.
func listenerHandlerOps(op ir.Op) *ir.OpList {
	switch o := op.(type) {
	case *ir.ListenerOp:
		return o.HandlerOps
	case *ir.TwoWayListenerOp:
		return o.HandlerOps
	}
	return nil
}

func addSaveRestoreViewOperationToListener(job *compilation.ComponentCompilationJob, unit compilation.CompilationUnit, handlerOps *ir.OpList) {
	handlerOps.Prepend([]ir.Op{
		ir.NewVariableOp(job.AllocateXrefId(), ir.NewContextVariable(unit.GetXref()), ir.NewRestoreViewExpr(unit.GetXref()), ir.VariableFlagsNone),
	})

	// The "restore view" operation in listeners requires a call to `resetView` to reset the
	// context prior to returning from the listener operation. Find any `return` statements in
	// the listener body and wrap them in a call to reset the view.
	for handlerOp := handlerOps.Head(); handlerOp.GetKind() != ir.OpKindListEnd; handlerOp = handlerOp.Next() {
		if statementOp, ok := handlerOp.(*ir.StatementOp); ok {
			if ret, ok := statementOp.Statement.(*output.ReturnStatement); ok {
				ret.Value = ir.NewResetViewExpr(ret.Value)
			}
		}
	}
}
