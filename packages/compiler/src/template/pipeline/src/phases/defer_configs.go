package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/template/pipeline/src/conversion"
)

// ConfigureDeferInstructions turns the timing parameters of `@placeholder` and `@loading` blocks
// into the const arrays passed to the `defer` instruction.
func ConfigureDeferInstructions(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			deferOp, ok := op.(*ir.DeferOp)
			if !ok {
				continue
			}

			if deferOp.PlaceholderMinimumTime != nil {
				deferOp.PlaceholderConfig = ir.NewConstCollectedExpr(
					conversion.LiteralOrArrayLiteral([]interface{}{*deferOp.PlaceholderMinimumTime}),
				)
			}
			if deferOp.LoadingMinimumTime != nil || deferOp.LoadingAfterTime != nil {
				deferOp.LoadingConfig = ir.NewConstCollectedExpr(
					conversion.LiteralOrArrayLiteral([]interface{}{optionalTime(deferOp.LoadingMinimumTime), optionalTime(deferOp.LoadingAfterTime)}),
				)
			}
		}
	}
}

// optionalTime unwraps a time for use as a literal; a missing time becomes `null`.
func optionalTime(time *int) interface{} {
	if time == nil {
		return nil
	}
	return *time
}
