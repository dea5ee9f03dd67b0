package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ApplyI18nExpressions inserts an i18nApply op after the last i18n expression of each run of
// expressions feeding the same block or element.
func ApplyI18nExpressions(job *compilation.ComponentCompilationJob) {
	contexts := make(map[ir.XrefId]*ir.I18nContextOp)
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			if ctx, ok := op.(*ir.I18nContextOp); ok {
				contexts[ctx.Xref] = ctx
			}
		}
	}

	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetUpdate().All() {
			expr, ok := op.(*ir.I18nExpressionOp)
			if ok && needsApplication(contexts, expr) {
				unit.GetUpdate().InsertAfter(ir.NewI18nApplyOp(expr.I18nOwner, expr.Handle, nil), expr)
			}
		}
	}
}

func needsApplication(contexts map[ir.XrefId]*ir.I18nContextOp, op *ir.I18nExpressionOp) bool {
	next, ok := op.Next().(*ir.I18nExpressionOp)
	if !ok {
		return true
	}
	ctx, ok := contexts[op.Context]
	if !ok {
		ir.Assertf("expected an I18nContextOp to exist for the context of an I18nExpressionOp")
	}
	nextCtx, ok := contexts[next.Context]
	if !ok {
		ir.Assertf("expected an I18nContextOp to exist for the context of the next I18nExpressionOp")
	}
	if ctx.I18nBlock != ir.NoXref {
		// Expressions of a block are applied per block, those of attributes per element.
		return ctx.I18nBlock != nextCtx.I18nBlock
	}
	return op.I18nOwner != next.I18nOwner
}
