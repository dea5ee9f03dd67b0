package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// deferTarget is an element that a `@defer` trigger can refer to by name
type deferTarget struct {
	xref ir.XrefId
	slot *ir.SlotHandle
}

// ResolveDeferTargetNames resolves the element targets of `on hover`, `on interaction` and
// `on viewport` triggers. A trigger with no reference name targets the first element of the
// placeholder block; otherwise the reference is looked up in the placeholder view and then the
// enclosing views, counting the steps up the view tree.
func ResolveDeferTargetNames(job *compilation.ComponentCompilationJob) {
	scopes := make(map[ir.XrefId]map[string]deferTarget)

	getScopeForView := func(view *compilation.ViewCompilationUnit) map[string]deferTarget {
		if targets, ok := scopes[view.Xref]; ok {
			return targets
		}
		targets := make(map[string]deferTarget)
		for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			// add everything that can be referenced.
			element, ok := op.(ir.ElementOrContainerOp)
			if !ok {
				continue
			}
			base := element.GetElementOrContainerBase()
			if base.LocalRefsIndex != nil {
				ir.Assertf("local refs were already processed, but were needed to resolve defer targets")
			}
			for _, ref := range base.LocalRefs {
				if ref.Target != "" {
					continue
				}
				targets[ref.Name] = deferTarget{xref: base.Xref, slot: base.Handle}
			}
		}
		scopes[view.Xref] = targets
		return targets
	}

	resolveTrigger := func(deferOwnerView *compilation.ViewCompilationUnit, op *ir.DeferOnOp, placeholderView ir.XrefId) {
		switch op.Trigger.Kind {
		case ir.DeferTriggerKindIdle, ir.DeferTriggerKindNever, ir.DeferTriggerKindImmediate, ir.DeferTriggerKindTimer:
			return
		case ir.DeferTriggerKindHover, ir.DeferTriggerKindInteraction, ir.DeferTriggerKindViewport:
		default:
			ir.Assertf("trigger kind %d not handled", op.Trigger.Kind)
		}

		trigger := op.Trigger
		if trigger.TargetName == "" {
			// An empty target name indicates we should default to the first element in the
			// placeholder block.
			if placeholderView == ir.NoXref {
				ir.Assertf("defer on trigger with no target name must have a placeholder block")
			}
			placeholder := job.View(placeholderView)
			for placeholderOp := placeholder.GetCreate().Head(); placeholderOp.GetKind() != ir.OpKindListEnd; placeholderOp = placeholderOp.Next() {
				slotOp, ok := placeholderOp.(ir.ConsumesSlotOp)
				if !ok {
					continue
				}
				_, isElement := placeholderOp.(ir.ElementOrContainerOp)
				if !isElement && placeholderOp.GetKind() != ir.OpKindProjection {
					continue
				}
				steps := -1
				trigger.TargetXref = slotOp.GetConsumesSlotTrait().Xref
				trigger.TargetView = placeholderView
				trigger.TargetSlotViewSteps = &steps
				trigger.TargetSlot = slotOp.GetConsumesSlotTrait().Handle
				return
			}
			return
		}

		view := deferOwnerView
		step := 0
		if placeholderView != ir.NoXref {
			view = job.View(placeholderView)
			step = -1
		}
		for view != nil {
			if target, ok := getScopeForView(view)[trigger.TargetName]; ok {
				steps := step
				trigger.TargetXref = target.xref
				trigger.TargetView = view.Xref
				trigger.TargetSlotViewSteps = &steps
				trigger.TargetSlot = target.slot
				return
			}
			if view.Parent == nil {
				view = nil
			} else {
				view = job.View(*view.Parent)
			}
			step++
		}
	}

	// Find the defer ops, and assign the data about their targets.
	for _, view := range job.ViewUnits() {
		defers := make(map[ir.XrefId]*ir.DeferOp)
		for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			switch o := op.(type) {
			case *ir.DeferOp:
				defers[o.Xref] = o
			case *ir.DeferOnOp:
				deferOp := defers[o.Defer]
				placeholderView := deferOp.PlaceholderView
				if o.Modifier == ir.DeferOpModifierKindHydrate {
					placeholderView = deferOp.MainView
				}
				resolveTrigger(view, o, placeholderView)
			}
		}
	}
}
