package phases

import (
	"slices"

	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateTrackVariables replaces reads of the `@for` item and index inside a track expression
// with the `$item` and `$index` parameters of the generated track function.
func GenerateTrackVariables(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			repeater, ok := op.(*ir.RepeaterCreateOp)
			if !ok {
				continue
			}
			repeater.Track = ir.TransformExpressionsInExpression(repeater.Track, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
				read, ok := expr.(*ir.LexicalReadExpr)
				if !ok {
					return expr
				}
				if slices.Contains(repeater.VarNames.DollarIndex, read.Name) {
					return output.NewReadVarExpr("$index", nil)
				} else if read.Name == repeater.VarNames.DollarImplicit {
					return output.NewReadVarExpr("$item", nil)
				}
				return expr
			}, ir.VisitorContextFlagNone)
		}
	}
}
