package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateAdvance inserts advance ops so that the runtime's slot cursor points at the target of
// each update op that depends on it. The cursor only moves forward.
func GenerateAdvance(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		slots := make(map[ir.XrefId]int)
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			consumer, ok := op.(ir.ConsumesSlotOp)
			if !ok {
				continue
			}
			trait := consumer.GetConsumesSlotTrait()
			if !trait.Handle.IsAssigned() {
				ir.Assertf("expected slots to have been allocated before generating advance() calls")
			}
			slots[trait.Xref] = trait.Handle.Slot()
		}

		cursor := 0
		for _, op := range unit.GetUpdate().All() {
			target, ok := slotContextTarget(op)
			if !ok {
				continue
			}
			slot, ok := slots[target]
			if !ok {
				ir.Assertf("reference to unknown slot for target %d", target)
			}
			if slot == cursor {
				continue
			}
			if slot < cursor {
				ir.Assertf("slot counter should never need to move backwards")
			}
			unit.GetUpdate().InsertBefore(ir.NewAdvanceOp(slot-cursor, op.GetSourceSpan()), op)
			cursor = slot
		}
	}
}

// slotContextTarget is the target of op, or of the first expression of op, that depends on
// the slot cursor
func slotContextTarget(op ir.Op) (ir.XrefId, bool) {
	if dep, ok := op.(ir.DependsOnSlotContext); ok {
		return dep.GetDependsOnSlotContextTrait().Target, true
	}
	var found ir.DependsOnSlotContext
	ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
		if dep, ok := expr.(ir.DependsOnSlotContext); ok && found == nil {
			found = dep
		}
	})
	if found == nil {
		return ir.NoXref, false
	}
	return found.GetDependsOnSlotContextTrait().Target, true
}
