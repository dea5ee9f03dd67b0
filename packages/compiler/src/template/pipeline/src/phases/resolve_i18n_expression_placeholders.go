package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ResolveI18nExpressionPlaceholders records the index of each i18n expression under its
// placeholder. Text expressions are numbered per i18n block, attribute expressions per
// context.
func ResolveI18nExpressionPlaceholders(job *compilation.ComponentCompilationJob) {
	subTemplateIndices := make(map[ir.XrefId]*int)
	contexts := make(map[ir.XrefId]*ir.I18nContextOp)
	icuPlaceholders := make(map[ir.XrefId]*ir.IcuPlaceholderOp)
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			switch o := op.(type) {
			case *ir.I18nStartOp:
				subTemplateIndices[o.Xref] = o.SubTemplateIndex
			case *ir.I18nContextOp:
				contexts[o.Xref] = o
			case *ir.IcuPlaceholderOp:
				icuPlaceholders[o.Xref] = o
			}
		}
	}

	indices := make(map[ir.XrefId]int)
	for _, unit := range job.GetUnits() {
		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			expr, ok := op.(*ir.I18nExpressionOp)
			if !ok {
				continue
			}
			ref := expr.Context
			if expr.Usage == ir.I18nExpressionForI18nText {
				ref = expr.I18nOwner
			}
			value := ir.I18nParamValue{
				Value:            indices[ref],
				SubTemplateIndex: subTemplateIndices[expr.I18nOwner],
				Flags:            ir.I18nParamValueFlagsExpressionIndex,
			}
			updateExpressionPlaceholder(expr, value, contexts, icuPlaceholders)
			indices[ref]++
		}
	}
}

func updateExpressionPlaceholder(op *ir.I18nExpressionOp, value ir.I18nParamValue, contexts map[ir.XrefId]*ir.I18nContextOp, icuPlaceholders map[ir.XrefId]*ir.IcuPlaceholderOp) {
	if op.I18nPlaceholder != "" {
		ctx, ok := contexts[op.Context]
		if !ok {
			ir.Assertf("i18n expression refers to unknown context %d", op.Context)
		}
		params := ctx.Params
		if op.ResolutionTime == ir.I18nParamResolutionTimePostprocessing {
			params = ctx.PostprocessingParams
		}
		params.Add(op.I18nPlaceholder, value)
	}
	if placeholder, ok := icuPlaceholders[op.IcuPlaceholder]; ok {
		placeholder.ExpressionPlaceholders = append(placeholder.ExpressionPlaceholders, value)
	}
}
