package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ResolveDollarEvent finds all unresolved references to `$event` in listeners and replaces them
// with a read of the handler's `$event` parameter.
func ResolveDollarEvent(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		transformDollarEvent(unit.GetCreate())
		transformDollarEvent(unit.GetUpdate())
	}
}

func transformDollarEvent(ops *ir.OpList) {
	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		listener, isListener := op.(*ir.ListenerOp)
		if _, isTwoWay := op.(*ir.TwoWayListenerOp); !isListener && !isTwoWay {
			continue
		}
		ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
			if read, ok := expr.(*ir.LexicalReadExpr); ok && read.Name == "$event" {
				// Two-way listeners always consume `$event` so they omit this field.
				if isListener {
					listener.ConsumesDollarEvent = true
				}
				return output.NewReadVarExpr(read.Name, nil)
			}
			return expr
		}, ir.VisitorContextFlagInChildOperation)
	}
}
