package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// RemoveIllegalLetReferences replaces reads of a `@let` declaration that happen before the
// declaration, including in its own initializer, with `undefined`. The template type checker
// reports these as errors, so this only keeps the output well-formed.
func RemoveIllegalLetReferences(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			variableOp, ok := op.(*ir.VariableOp)
			if !ok {
				continue
			}
			identifier, ok := variableOp.Variable.(*ir.IdentifierVariable)
			if !ok {
				continue
			}
			if _, isStoreLet := variableOp.Initializer.(*ir.StoreLetExpr); !isStoreLet {
				continue
			}

			name := identifier.Identifier
			for current := ir.Op(variableOp); current.GetKind() != ir.OpKindListEnd; current = current.GetPrev() {
				ir.TransformExpressionsInOp(current, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
					if read, ok := expr.(*ir.LexicalReadExpr); ok && read.Name == name {
						return output.NewReadVarExpr("undefined", nil)
					}
					return expr
				}, ir.VisitorContextFlagNone)
			}
		}
	}
}
