package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

type i18nBlockState struct {
	blockXref        ir.XrefId
	lastSlotConsumer ir.XrefId
}

// AssignI18nSlotDependencies moves the text expressions of each i18n block to the end of the
// block, targeting its last slot-consuming op. The runtime applies i18n expressions only once
// the whole block has been created, so advancing past them early would be wrong.
func AssignI18nSlotDependencies(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		updateOp := unit.GetUpdate().Head()
		var moving []*ir.I18nExpressionOp
		var state *i18nBlockState

		for createOp := unit.GetCreate().Head(); createOp.GetKind() != ir.OpKindListEnd; createOp = createOp.Next() {
			switch o := createOp.(type) {
			case *ir.I18nStartOp:
				state = &i18nBlockState{blockXref: o.Xref, lastSlotConsumer: o.Xref}
			case *ir.I18nEndOp:
				if state == nil {
					ir.Assertf("i18n end without a matching start")
				}
				for _, expr := range moving {
					expr.Target = state.lastSlotConsumer
					unit.GetUpdate().InsertBefore(expr, updateOp)
				}
				moving = nil
				state = nil
			}

			consumer, ok := createOp.(ir.ConsumesSlotOp)
			if !ok {
				continue
			}
			xref := consumer.GetConsumesSlotTrait().Xref
			if state != nil {
				state.lastSlotConsumer = xref
			}

			for updateOp.GetKind() != ir.OpKindListEnd {
				if expr, ok := updateOp.(*ir.I18nExpressionOp); ok && state != nil &&
					expr.Usage == ir.I18nExpressionForI18nText && expr.I18nOwner == state.blockXref {
					updateOp = updateOp.Next()
					unit.GetUpdate().Remove(expr)
					moving = append(moving, expr)
					continue
				}
				if dependsOnOtherSlot(updateOp, xref) {
					break
				}
				updateOp = updateOp.Next()
			}
		}
	}
}

func dependsOnOtherSlot(op ir.Op, xref ir.XrefId) bool {
	if dep, ok := op.(ir.DependsOnSlotContext); ok {
		return dep.GetDependsOnSlotContextTrait().Target != xref
	}
	if op.GetKind() != ir.OpKindStatement && op.GetKind() != ir.OpKindVariable {
		return false
	}
	found := false
	ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
		if dep, ok := expr.(ir.DependsOnSlotContext); ok && dep.GetDependsOnSlotContextTrait().Target != xref {
			found = true
		}
	})
	return found
}
