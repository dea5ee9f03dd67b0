package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// CreateVariadicPipes converts pipes with more than 4 arguments to variadic pipe expressions.
// Pipes that accept more than 4 arguments are variadic, and are handled with a different runtime
// instruction.
func CreateVariadicPipes(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
				binding, ok := expr.(*ir.PipeBindingExpr)
				// Pipes are variadic if they have more than 4 arguments.
				if !ok || len(binding.Args) <= 4 {
					return expr
				}
				return ir.NewPipeBindingVariadicExpr(
					binding.Target,
					binding.TargetSlot,
					binding.Name,
					output.NewLiteralArrayExpr(binding.Args, nil),
					len(binding.Args),
				)
			}, ir.VisitorContextFlagNone)
		}
	}
}
