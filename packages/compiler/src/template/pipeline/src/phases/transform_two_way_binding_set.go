package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_instruction "ngc-ir/packages/compiler/src/template/pipeline/src/instruction"
)

// TransformTwoWayBindingSet lowers the `TwoWayBindingSet` expressions of two-way listeners into
// `ng.twoWayBindingSet(target, value) || (target = value)`.
func TransformTwoWayBindingSet(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			if op.GetKind() != ir.OpKindTwoWayListener {
				continue
			}
			ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, flags ir.VisitorContextFlag) output.OutputExpression {
				set, ok := expr.(*ir.TwoWayBindingSetExpr)
				if !ok {
					return expr
				}
				switch target := set.Target.(type) {
				case *output.ReadPropExpr, *output.ReadKeyExpr:
					return output.NewBinaryOperatorExpr(
						output.BinaryOperatorOr,
						pipeline_instruction.TwoWayBindingSet(target, set.Value),
						output.Set(target, set.Value, nil),
						nil,
					)
				case *ir.ReadVariableExpr:
					// Local template variables are constants, so only the instruction is emitted.
					// Invalid writes are reported by type checking.
					return pipeline_instruction.TwoWayBindingSet(target, set.Value)
				}
				ir.Assertf("unsupported expression in two-way action binding: %T", set.Target)
				return nil
			}, ir.VisitorContextFlagInChildOperation)
		}
	}
}
