package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// RemoveUnusedI18nAttributesOps drops i18nAttributes ops of elements whose i18n attributes are
// all static, since nothing would be applied through them.
func RemoveUnusedI18nAttributesOps(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		owners := make(map[ir.XrefId]bool)
		for op := unit.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			if expr, ok := op.(*ir.I18nExpressionOp); ok {
				owners[expr.I18nOwner] = true
			}
		}
		for _, op := range unit.GetCreate().All() {
			if attrs, ok := op.(*ir.I18nAttributesOp); ok && !owners[attrs.Xref] {
				unit.GetCreate().Remove(attrs)
			}
		}
	}
}
