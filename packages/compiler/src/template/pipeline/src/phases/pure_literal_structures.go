package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// GeneratePureLiteralStructures transforms literal arrays and maps in bindings into pure function
// expressions, so the literal is only recreated when one of its dynamic entries changes.
func GeneratePureLiteralStructures(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			ir.TransformExpressionsInOp(op, func(expr output.OutputExpression, flags ir.VisitorContextFlag) output.OutputExpression {
				if flags&ir.VisitorContextFlagInChildOperation != 0 {
					return expr
				}
				switch literal := expr.(type) {
				case *output.LiteralArrayExpr:
					return transformLiteralArray(literal)
				case *output.LiteralMapExpr:
					return transformLiteralMap(literal)
				}
				return expr
			}, ir.VisitorContextFlagNone)
		}
	}
}

func transformLiteralArray(expr *output.LiteralArrayExpr) output.OutputExpression {
	derivedEntries := make([]output.OutputExpression, 0, len(expr.Entries))
	var nonConstantArgs []output.OutputExpression
	for _, entry := range expr.Entries {
		if entry.IsConstant() {
			derivedEntries = append(derivedEntries, entry)
			continue
		}
		idx := len(nonConstantArgs)
		nonConstantArgs = append(nonConstantArgs, entry)
		derivedEntries = append(derivedEntries, ir.NewPureFunctionParameterExpr(idx))
	}
	return ir.NewPureFunctionExpr(output.NewLiteralArrayExpr(derivedEntries, nil), nonConstantArgs)
}

func transformLiteralMap(expr *output.LiteralMapExpr) output.OutputExpression {
	derivedEntries := make([]*output.LiteralMapEntry, 0, len(expr.Entries))
	var nonConstantArgs []output.OutputExpression
	for _, entry := range expr.Entries {
		if entry.Value.IsConstant() {
			derivedEntries = append(derivedEntries, entry)
			continue
		}
		idx := len(nonConstantArgs)
		nonConstantArgs = append(nonConstantArgs, entry.Value)
		derivedEntries = append(derivedEntries, output.NewLiteralMapEntry(entry.Key, ir.NewPureFunctionParameterExpr(idx), entry.Quoted))
	}
	return ir.NewPureFunctionExpr(output.NewLiteralMapExpr(derivedEntries, nil), nonConstantArgs)
}
