package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// CreatePipes generates pipe creation instructions. We do this based on the pipe bindings found in
// the update block, in the order we see them.
// When not in compatibility mode, we can simply group all these creation instructions together, to
// maximize chaining opportunities.
func CreatePipes(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		processPipeBindingsInView(unit)
	}
}

func processPipeBindingsInView(unit compilation.CompilationUnit) {
	for _, updateOp := range unit.GetUpdate().All() {
		ir.VisitExpressionsInOp(updateOp, func(expr output.OutputExpression, flags ir.VisitorContextFlag) {
			binding, ok := expr.(*ir.PipeBindingExpr)
			if !ok {
				return
			}
			if flags&ir.VisitorContextFlagInChildOperation != 0 {
				ir.Assertf("pipe bindings should not appear in child expressions")
			}

			if unit.GetJob().GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder {
				target, ok := updateOpTarget(updateOp)
				if !ok {
					ir.Assertf("expected slot handle to be assigned for pipe creation")
				}
				addPipeToCreationBlock(unit, target, binding)
			} else {
				// When not in compatibility mode, we just add the pipe to the end of the create block.
				// This is not only simpler and faster, but allows more chaining opportunities for other
				// instructions.
				unit.GetCreate().Push(ir.NewPipeOp(binding.Target, binding.TargetSlot, binding.Name))
			}
		})
	}
}

// updateOpTarget returns the xref of the element an update op applies to.
func updateOpTarget(op ir.Op) (ir.XrefId, bool) {
	switch o := op.(type) {
	case ir.DependsOnSlotContext:
		return o.GetDependsOnSlotContextTrait().Target, true
	case *ir.BindingOp:
		return o.Target, true
	}
	return ir.NoXref, false
}

func addPipeToCreationBlock(unit compilation.CompilationUnit, afterTargetXref ir.XrefId, binding *ir.PipeBindingExpr) {
	// Find the appropriate point to insert the Pipe creation operations.
	// We're looking for `afterTargetXref` (and also want to insert after any other pipe operations
	// which might be beyond it).
	for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		slotOp, ok := op.(ir.ConsumesSlotOp)
		if !ok || slotOp.GetConsumesSlotTrait().Xref != afterTargetXref {
			continue
		}

		// We've found a tentative insertion point; however, we also want to skip past any _other_
		// pipe operations present.
		for op.Next().GetKind() == ir.OpKindPipe {
			op = op.Next()
		}

		unit.GetCreate().InsertBefore(ir.NewPipeOp(binding.Target, binding.TargetSlot, binding.Name), op.Next())
		return
	}

	// At this point, we've failed to add the pipe to the creation block.
	ir.Assertf("unable to find insertion point for pipe %s", binding.Name)
}
