package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/util"
)

// ConvertI18nBindings replaces interpolated i18n property and attribute bindings with one
// i18n expression per interpolated value, applied by the element's i18nAttributes instruction.
func ConvertI18nBindings(job compilation.CompilationJob) {
	i18nAttributesByElement := make(map[ir.XrefId]*ir.I18nAttributesOp)
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			if attrs, ok := op.(*ir.I18nAttributesOp); ok {
				i18nAttributesByElement[attrs.Target] = attrs
			}
		}

		for _, op := range unit.GetUpdate().All() {
			var (
				target      ir.XrefId
				name        string
				i18nContext ir.XrefId
				expression  output.OutputExpression
				span        *util.ParseSourceSpan
			)
			switch o := op.(type) {
			case *ir.PropertyOp:
				target, name, i18nContext, expression, span = o.Target, o.Name, o.I18nContext, o.Expression, o.SourceSpan
			case *ir.AttributeOp:
				target, name, i18nContext, expression, span = o.Target, o.Name, o.I18nContext, o.Expression, o.SourceSpan
			default:
				continue
			}
			interpolation, ok := expression.(*ir.Interpolation)
			if i18nContext == ir.NoXref || !ok {
				continue
			}

			attrs, ok := i18nAttributesByElement[target]
			if !ok {
				ir.Assertf("an i18n attribute binding requires the owning element to have an I18nAttributes op")
			}
			if len(interpolation.I18nPlaceholders) != len(interpolation.Expressions) {
				ir.Assertf("an i18n attribute binding requires the same number of expressions and placeholders, found %d placeholders and %d expressions",
					len(interpolation.I18nPlaceholders), len(interpolation.Expressions))
			}

			exprOps := make([]ir.Op, 0, len(interpolation.Expressions))
			for i, expr := range interpolation.Expressions {
				exprOps = append(exprOps, ir.NewI18nExpressionOp(
					i18nContext, attrs.Target, attrs.Xref, attrs.Handle, expr, ir.NoXref,
					interpolation.I18nPlaceholders[i], ir.I18nParamResolutionTimeCreation,
					ir.I18nExpressionForI18nAttribute, name, span,
				))
			}
			unit.GetUpdate().ReplaceWithMany(op, exprOps)
		}
	}
}
