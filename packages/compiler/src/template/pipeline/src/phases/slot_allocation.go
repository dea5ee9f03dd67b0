package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// AllocateSlots assigns data slots to every op that consumes them. Slots are numbered from 0 in
// each view, in creation order, and a multi-slot op reserves a contiguous range. Expressions
// share the handle of the op they refer to, so they see the assignment directly.
//
// The number of slots of each view (its decls) is recorded on the view and on the op declaring
// it.
func AllocateSlots(job *compilation.ComponentCompilationJob) {
	for _, view := range job.ViewUnits() {
		count := 0
		for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			consumer, ok := op.(ir.ConsumesSlotOp)
			if !ok {
				continue
			}
			trait := consumer.GetConsumesSlotTrait()
			if trait.Handle == nil {
				trait.Handle = ir.NewSlotHandle()
			}
			trait.Handle.Assign(count)
			count += trait.NumSlotsUsed
		}
		decls := count
		view.Decls = &decls
	}

	for _, view := range job.ViewUnits() {
		for op := view.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			switch o := op.(type) {
			case *ir.TemplateOp:
				o.Decls = job.View(o.Xref).Decls
			case *ir.RepeaterCreateOp:
				// The empty view's decls are read from its unit at reification.
				o.Decls = job.View(o.Xref).Decls
			}
		}
	}
}
