package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateConditionalExpressions collapses the various conditions of conditional ops (if, switch)
// into a single test expression.
func GenerateConditionalExpressions(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			conditional, ok := op.(*ir.ConditionalOp)
			if !ok {
				continue
			}

			var test output.OutputExpression
			// Any case with a `null` condition is `default`. If one exists, default to it instead.
			defaultCase := -1
			for i, cond := range conditional.Conditions {
				if cond.Expr == nil {
					defaultCase = i
					break
				}
			}
			if defaultCase >= 0 {
				slot := conditional.Conditions[defaultCase].TargetSlot
				conditional.Conditions = append(conditional.Conditions[:defaultCase:defaultCase], conditional.Conditions[defaultCase+1:]...)
				test = ir.NewSlotLiteralExpr(slot)
			} else {
				// By default, a switch evaluates to `-1`, causing no template to be displayed.
				test = output.NewLiteralExpr(-1, nil)
			}

			// Switch expressions assign their main test to a temporary, to avoid re-executing it.
			var tmp *ir.AssignTemporaryExpr
			if conditional.Test != nil {
				tmp = ir.NewAssignTemporaryExpr(conditional.Test, job.AllocateXrefId())
			}
			caseExpressionTemporaryXref := ir.NoXref

			// For each remaining condition, test whether the temporary satifies the check. (If no temp
			// is present, just check each expression directly.)
			for i := len(conditional.Conditions) - 1; i >= 0; i-- {
				conditionalCase := conditional.Conditions[i]
				if conditionalCase.Expr == nil {
					continue
				}
				if tmp != nil {
					var useTmp output.OutputExpression = tmp
					if i != 0 {
						useTmp = ir.NewReadTemporaryExpr(tmp.Xref)
					}
					conditionalCase.Expr = output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, useTmp, conditionalCase.Expr, nil)
				} else if conditionalCase.Alias != nil {
					// Since we can only pass one variable into the conditional instruction, reuse the
					// same variable to store the result of the expressions.
					if caseExpressionTemporaryXref == ir.NoXref {
						caseExpressionTemporaryXref = job.AllocateXrefId()
					}
					conditionalCase.Expr = ir.NewAssignTemporaryExpr(conditionalCase.Expr, caseExpressionTemporaryXref)
					conditional.ContextValue = ir.NewReadTemporaryExpr(caseExpressionTemporaryXref)
				}
				test = output.NewConditionalExpr(conditionalCase.Expr, ir.NewSlotLiteralExpr(conditionalCase.TargetSlot), test, nil)
			}

			// Save the resulting aggregate expression.
			conditional.Processed = test

			// Clear the original conditions array, since we no longer need it, and don't want it to
			// affect subsequent phases (e.g. pipe creation).
			conditional.Conditions = nil
		}
	}
}
