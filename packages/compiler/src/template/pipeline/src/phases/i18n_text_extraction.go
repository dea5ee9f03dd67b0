package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ConvertI18nText removes the text nodes inside i18n blocks, whose content is part of the
// message, and turns their interpolations into i18n expressions. Text standing for an ICU
// placeholder becomes an IcuPlaceholderOp holding the interpolation strings.
func ConvertI18nText(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		var currentI18n *ir.I18nStartOp
		var currentIcu *ir.IcuStartOp
		textI18nBlocks := make(map[ir.XrefId]*ir.I18nStartOp)
		textIcus := make(map[ir.XrefId]*ir.IcuStartOp)
		icuPlaceholders := make(map[ir.XrefId]*ir.IcuPlaceholderOp)

		for _, op := range unit.GetCreate().All() {
			switch o := op.(type) {
			case *ir.I18nStartOp:
				if o.Context == ir.NoXref {
					ir.Assertf("i18n op should have its context set")
				}
				currentI18n = o
			case *ir.I18nEndOp:
				currentI18n = nil
			case *ir.IcuStartOp:
				if o.Context == ir.NoXref {
					ir.Assertf("icu op should have its context set")
				}
				currentIcu = o
			case *ir.IcuEndOp:
				currentIcu = nil
			case *ir.TextOp:
				if currentI18n == nil {
					continue
				}
				textI18nBlocks[o.Xref] = currentI18n
				textIcus[o.Xref] = currentIcu
				if o.IcuPlaceholder != "" {
					// The static text may be replaced by the strings of an interpolation below.
					placeholder := ir.NewIcuPlaceholderOp(job.AllocateXrefId(), o.IcuPlaceholder, []string{o.InitialValue})
					unit.GetCreate().Replace(o, placeholder)
					icuPlaceholders[o.Xref] = placeholder
				} else {
					unit.GetCreate().Remove(o)
				}
			}
		}

		for _, op := range unit.GetUpdate().All() {
			text, ok := op.(*ir.InterpolateTextOp)
			if !ok {
				continue
			}
			i18nOp, ok := textI18nBlocks[text.Target]
			if !ok {
				continue
			}
			icuOp := textIcus[text.Target]
			placeholder := icuPlaceholders[text.Target]

			contextID := i18nOp.Context
			resolutionTime := ir.I18nParamResolutionTimeCreation
			if icuOp != nil {
				contextID = icuOp.Context
				resolutionTime = ir.I18nParamResolutionTimePostprocessing
			}
			placeholderXref := ir.NoXref
			if placeholder != nil {
				placeholderXref = placeholder.Xref
			}

			var exprOps []ir.Op
			for i, expr := range text.Interpolation.Expressions {
				i18nPlaceholder := ""
				if i < len(text.Interpolation.I18nPlaceholders) {
					i18nPlaceholder = text.Interpolation.I18nPlaceholders[i]
				}
				span := expr.GetSourceSpan()
				if span == nil {
					span = text.SourceSpan
				}
				// The expression depends on the slot of the enclosing i18n block until slot
				// dependencies are assigned.
				exprOps = append(exprOps, ir.NewI18nExpressionOp(
					contextID, i18nOp.Xref, i18nOp.Xref, i18nOp.Handle, expr,
					placeholderXref, i18nPlaceholder, resolutionTime, ir.I18nExpressionForI18nText, "", span,
				))
			}
			unit.GetUpdate().ReplaceWithMany(text, exprOps)
			if placeholder != nil {
				placeholder.Strings = text.Interpolation.Strings
			}
		}
	}
}
