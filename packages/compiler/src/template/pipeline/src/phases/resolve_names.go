package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ResolveNames resolves lexical references in views (`ir.LexicalReadExpr`) to either a target variable or to
// property reads on the top-level component context.
//
// Also matches `ir.RestoreViewExpr` expressions with the variables of their corresponding saved
// views.
func ResolveNames(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		processLexicalScope(unit, unit.GetCreate(), nil)
		processLexicalScope(unit, unit.GetUpdate(), nil)
	}
}

// savedView is information about a `SavedView` variable.
type savedView struct {
	// The view `ir.XrefId` which was saved into this variable.
	view ir.XrefId

	// The `ir.XrefId` of the variable into which the view was saved.
	variable ir.XrefId
}

func processLexicalScope(unit compilation.CompilationUnit, ops *ir.OpList, saved *savedView) {
	// Maps names defined in the lexical scope of this template to the `ir.XrefId`s of the variable
	// declarations which represent those values.
	//
	// Since variables are generated in each view for the entire lexical scope (including any
	// identifiers from parent templates) only local variables need be considered here.
	scope := make(map[string]ir.XrefId)

	// Symbols defined within the current scope. They take precedence over ones defined outside.
	localDefinitions := make(map[string]ir.XrefId)

	// First, step through the operations list and:
	// 1) build up the `scope` mapping
	// 2) recurse into any listener functions
	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		switch o := op.(type) {
		case *ir.VariableOp:
			switch variable := o.Variable.(type) {
			case *ir.IdentifierVariable:
				if variable.Local {
					if _, exists := localDefinitions[variable.Identifier]; exists {
						continue
					}
					localDefinitions[variable.Identifier] = o.Xref
				} else if _, exists := scope[variable.Identifier]; exists {
					continue
				}
				scope[variable.Identifier] = o.Xref
			case *ir.AliasVariable:
				// This variable represents some kind of identifier which can be used in the template.
				if _, exists := scope[variable.Identifier]; exists {
					continue
				}
				scope[variable.Identifier] = o.Xref
			case *ir.SavedViewVariable:
				// This variable represents a snapshot of the current view context, and can be used to
				// restore that context within listener functions.
				saved = &savedView{view: variable.View, variable: o.Xref}
			}
		case *ir.ListenerOp:
			// Listener functions have separate variable declarations, so process them as a separate
			// lexical scope.
			processLexicalScope(unit, o.HandlerOps, saved)
		case *ir.TwoWayListenerOp:
			processLexicalScope(unit, o.HandlerOps, saved)
		case *ir.RepeaterCreateOp:
			if o.TrackByOps != nil {
				processLexicalScope(unit, o.TrackByOps, saved)
			}
		}
	}

	// Next, use the `scope` mapping to match `ir.LexicalReadExpr` with defined names in the lexical
	// scope. Also, look for `ir.RestoreViewExpr`s and match them with the snapshotted view context
	// variable.
	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		if listenerHandlerOps(op) != nil {
			// Listeners were already processed above with their own scopes.
			continue
		}
		ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
			switch e := expr.(type) {
			case *ir.LexicalReadExpr:
				// `expr` is a read of a name within the lexical scope of this view. Either that name is
				// defined within the current view, or it represents a property from the main component
				// context.
				if xref, exists := localDefinitions[e.Name]; exists {
					return ir.NewReadVariableExpr(xref)
				} else if xref, exists := scope[e.Name]; exists {
					return ir.NewReadVariableExpr(xref)
				}
				return output.NewReadPropExpr(ir.NewContextExpr(unit.GetJob().GetRoot().GetXref()), e.Name, e.SourceSpan)
			case *ir.RestoreViewExpr:
				if e.ViewExpr != nil {
					return expr
				}
				// `ir.RestoreViewExpr` happens in listener functions and restores a saved view from the
				// parent creation list. We expect to find that we captured the `savedView` previously,
				// and that it matches the expected view to be restored.
				if saved == nil || saved.view != e.View {
					ir.Assertf("no saved view %d from view %d", e.View, unit.GetXref())
				}
				e.ViewExpr = ir.NewReadVariableExpr(saved.variable)
			}
			return expr
		}, ir.VisitorContextFlagNone)
	}

	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
			if read, ok := expr.(*ir.LexicalReadExpr); ok {
				ir.Assertf("no lexical reads should remain, but found read of %s", read.Name)
			}
		})
	}
}
