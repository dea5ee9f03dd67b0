package phases

import (
	"fmt"
	"strconv"
	"strings"

	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/pool"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ExtractPureFunctions moves the body of each pure function into a shared constant of the pool.
// Structurally equal bodies with the same arity share one declaration.
func ExtractPureFunctions(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for _, op := range unit.Ops() {
			ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
				pureFn, ok := expr.(*ir.PureFunctionExpr)
				if !ok || pureFn.Body == nil {
					return
				}
				pureFn.Fn = job.GetPool().GetSharedConstant(&pureFunctionConstant{numArgs: len(pureFn.Args)}, pureFn.Body)
				pureFn.Body = nil
			})
		}
	}
}

type pureFunctionConstant struct {
	numArgs int
}

var _ pool.SharedConstantDefinition = (*pureFunctionConstant)(nil)

func (p *pureFunctionConstant) KeyOf(expr output.OutputExpression) string {
	switch e := expr.(type) {
	case *ir.PureFunctionParameterExpr:
		return fmt.Sprintf("param(%d)", e.Index)
	case *output.LiteralArrayExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = p.KeyOf(entry)
		}
		return "[" + strings.Join(entries, ",") + "]"
	case *output.LiteralMapExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			key := entry.Key
			if entry.Quoted {
				key = strconv.Quote(key)
			}
			entries[i] = key + ":" + p.KeyOf(entry.Value)
		}
		return "{" + strings.Join(entries, ",") + "}"
	}
	return pool.GenericKeyFnInstance.KeyOf(expr)
}

// ToSharedConstantDeclaration declares `const _cN = (a0, a1) => body`.
func (p *pureFunctionConstant) ToSharedConstantDeclaration(declName string, keyExpr output.OutputExpression) output.OutputStatement {
	params := make([]*output.FnParam, p.numArgs)
	for i := range params {
		params[i] = output.NewFnParam(fmt.Sprintf("a%d", i))
	}
	body := ir.TransformExpressionsInExpression(keyExpr, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
		if param, ok := expr.(*ir.PureFunctionParameterExpr); ok {
			return output.Variable(fmt.Sprintf("a%d", param.Index))
		}
		return expr
	}, ir.VisitorContextFlagNone)
	return output.NewDeclareVarStmt(declName, output.NewArrowFunctionExpr(params, body, nil), output.StmtModifierFinal, nil)
}
