package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateVariables generates a preamble sequence for each view creation block and listener function which declares
// any variables that be referenced in other operations in the block.
// Variables generated include:
//   - a saved view context to be used to restore the current view in event listeners.
//   - the context of the restored view within event listener handlers.
//   - context variables from the current view as well as all parent views (including the root
//     context if needed).
//   - local references from elements within the current view and any lexical parents.
//
// Variables are generated here unconditionally, and may optimized away in future operations if it
// turns out their values (and any side effects) are unused.
func GenerateVariables(job *compilation.ComponentCompilationJob) {
	recursivelyProcessView(job.Root, nil)
}

// scope is the lexical scope of a view, including a reference to its parent view's scope, if any.
type scope struct {
	// XrefId of the view to which this scope corresponds.
	view ir.XrefId

	viewContextVariable *ir.ContextVariable

	contextVariables map[string]*ir.IdentifierVariable

	aliases []*ir.AliasVariable

	// Local references collected from elements within the view.
	references []reference

	// `@let` declarations collected from the view.
	letDeclarations []letDeclaration

	// Scope of the parent view, if any.
	parent *scope
}

// reference is information needed about a local reference collected from an element within a view.
type reference struct {
	// Name given to the local reference variable within the template.
	//
	// This is not the name which will be used for the variable declaration in the generated
	// template code.
	name string

	// XrefId of the element-like node which this reference targets.
	//
	// The reference may be either to the element (or template) itself, or to a directive on it.
	targetId ir.XrefId

	targetSlot *ir.SlotHandle

	// A generated offset of this reference among all the references on a specific element.
	offset int

	variable *ir.IdentifierVariable
}

// letDeclaration is information about `@let` declaration collected from a view.
type letDeclaration struct {
	// XrefId of the `@let` declaration that the reference is pointing to.
	targetId ir.XrefId

	// Slot in which the declaration is stored.
	targetSlot *ir.SlotHandle

	// Variable referring to the declaration.
	variable *ir.IdentifierVariable
}

// recursivelyProcessView processes the given ViewCompilationUnit and generates preambles for it and any listeners that it
// declares.
//
// parentScope is a scope extracted from the parent view which captures any variables which
// should be inherited by this view. nil if the current view is the root view.
func recursivelyProcessView(view *compilation.ViewCompilationUnit, parentScope *scope) {
	// Extract a `Scope` from this view.
	viewScope := getScopeForView(view, parentScope)

	for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		switch o := op.(type) {
		case *ir.TemplateOp:
			// Descend into child embedded views.
			recursivelyProcessView(view.Job.View(o.Xref), viewScope)
		case *ir.ProjectionOp:
			if o.FallbackView != ir.NoXref {
				recursivelyProcessView(view.Job.View(o.FallbackView), viewScope)
			}
		case *ir.RepeaterCreateOp:
			// Descend into child embedded views.
			recursivelyProcessView(view.Job.View(o.Xref), viewScope)
			if o.EmptyView != ir.NoXref {
				recursivelyProcessView(view.Job.View(o.EmptyView), viewScope)
			}
			if o.TrackByOps != nil {
				o.TrackByOps.Prepend(generateVariablesInScopeForView(view, viewScope, false))
			}
		case *ir.ListenerOp:
			// Prepend variables to listener handler functions.
			o.HandlerOps.Prepend(generateVariablesInScopeForView(view, viewScope, true))
		case *ir.TwoWayListenerOp:
			o.HandlerOps.Prepend(generateVariablesInScopeForView(view, viewScope, true))
		}
	}

	view.GetUpdate().Prepend(generateVariablesInScopeForView(view, viewScope, false))
}

// getScopeForView processes a view and generates a `Scope` representing the variables available for reference within
// that view.
func getScopeForView(view *compilation.ViewCompilationUnit, parent *scope) *scope {
	s := &scope{
		view:                view.Xref,
		viewContextVariable: ir.NewContextVariable(view.Xref),
		contextVariables:    make(map[string]*ir.IdentifierVariable),
		aliases:             view.Aliases,
		parent:              parent,
	}

	for _, contextVariable := range view.ContextVariables {
		s.contextVariables[contextVariable.Name] = ir.NewIdentifierVariable(contextVariable.Name, false)
	}

	for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		switch o := op.(type) {
		case *ir.ElementStartOp, *ir.TemplateOp:
			element := o.(ir.ElementOrContainerOp).GetElementOrContainerBase()
			// Record available local references from this element.
			for offset, localRef := range element.LocalRefs {
				s.references = append(s.references, reference{
					name:       localRef.Name,
					targetId:   element.Xref,
					targetSlot: element.Handle,
					offset:     offset,
					variable:   ir.NewIdentifierVariable(localRef.Name, false),
				})
			}
		case *ir.DeclareLetOp:
			s.letDeclarations = append(s.letDeclarations, letDeclaration{
				targetId:   o.Xref,
				targetSlot: o.Handle,
				variable:   ir.NewIdentifierVariable(o.DeclaredName, false),
			})
		}
	}
	return s
}

// generateVariablesInScopeForView generates declarations for all variables that are in scope for a given view.
//
// This is a recursive process, as views inherit variables available from their parent view, which
// itself may have inherited variables, etc.
func generateVariablesInScopeForView(view *compilation.ViewCompilationUnit, s *scope, isCallback bool) []ir.Op {
	var newOps []ir.Op

	if s.view != view.Xref {
		// Before generating variables for a parent view, we need to switch to the context of the parent
		// view with a `nextContext` expression. This context switching operation itself declares a
		// variable, because the context of the view may be referenced directly.
		newOps = append(newOps, ir.NewVariableOp(view.Job.AllocateXrefId(), s.viewContextVariable, ir.NewNextContextExpr(), ir.VariableFlagsNone))
	}

	// Add variables for all context variables available in this scope's view.
	scopeView := view.Job.View(s.view)
	for _, contextVariable := range scopeView.ContextVariables {
		context := ir.NewContextExpr(s.view)
		// We either read the context, or, if the variable is CTX_REF, use the context directly.
		var variable output.OutputExpression = context
		if contextVariable.Value != ir.CtxRef {
			variable = output.NewReadPropExpr(context, contextVariable.Value, nil)
		}
		newOps = append(newOps, ir.NewVariableOp(view.Job.AllocateXrefId(), s.contextVariables[contextVariable.Name], variable, ir.VariableFlagsNone))
	}

	for _, alias := range scopeView.Aliases {
		newOps = append(newOps, ir.NewVariableOp(view.Job.AllocateXrefId(), alias, alias.Expression.Clone(), ir.VariableFlagsAlwaysInline))
	}

	// Add variables for all local references declared for elements in this scope.
	for _, ref := range s.references {
		newOps = append(newOps, ir.NewVariableOp(view.Job.AllocateXrefId(), ref.variable, ir.NewReferenceExpr(ref.targetId, ref.targetSlot, ref.offset), ir.VariableFlagsNone))
	}

	if s.view != view.Xref || isCallback {
		for _, decl := range s.letDeclarations {
			newOps = append(newOps, ir.NewVariableOp(view.Job.AllocateXrefId(), decl.variable, ir.NewContextLetReferenceExpr(decl.targetId, decl.targetSlot), ir.VariableFlagsNone))
		}
	}

	if s.parent != nil {
		// Recursively add variables from the parent scope.
		newOps = append(newOps, generateVariablesInScopeForView(view, s.parent, false)...)
	}
	return newOps
}
