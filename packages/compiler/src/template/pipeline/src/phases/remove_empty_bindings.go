package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// RemoveEmptyBindings removes bindings with no content. This is the case for `[class]=""` and
// similar empty bindings, which TemplateDefinitionBuilder drops from the update block.
func RemoveEmptyBindings(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetUpdate().All() {
			var expr output.OutputExpression
			switch o := op.(type) {
			case *ir.AttributeOp:
				expr = o.Expression
			case *ir.BindingOp:
				expr = o.Expression
			case *ir.ClassPropOp:
				expr = o.Expression
			case *ir.ClassMapOp:
				expr = o.Expression
			case *ir.PropertyOp:
				expr = o.Expression
			case *ir.StylePropOp:
				expr = o.Expression
			case *ir.StyleMapOp:
				expr = o.Expression
			default:
				continue
			}
			if _, isEmpty := expr.(*ir.EmptyExpr); isEmpty {
				unit.GetUpdate().Remove(op)
			}
		}
	}
}
