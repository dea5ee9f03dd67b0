package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// CollapseSingletonInterpolations rewrites attribute and style bindings of the form `{{ x }}`
// into plain bindings of `x`, so they emit the non-interpolating instruction.
func CollapseSingletonInterpolations(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			var expression *output.OutputExpression
			switch o := op.(type) {
			case *ir.AttributeOp:
				expression = &o.Expression
			case *ir.StylePropOp:
				expression = &o.Expression
			case *ir.StyleMapOp:
				expression = &o.Expression
			case *ir.ClassMapOp:
				expression = &o.Expression
			default:
				continue
			}
			if collapsed, ok := singletonInterpolation(*expression); ok {
				*expression = collapsed
			}
		}
	}
}

func singletonInterpolation(expr output.OutputExpression) (output.OutputExpression, bool) {
	interpolation, ok := expr.(*ir.Interpolation)
	if !ok || len(interpolation.Strings) != 2 {
		return nil, false
	}
	for _, str := range interpolation.Strings {
		if str != "" {
			return nil, false
		}
	}
	return interpolation.Expressions[0], true
}
