package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// WrapI18nIcus wraps ICUs that do not already belong to an i18n block in a new i18n block.
func WrapI18nIcus(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		var currentI18nOp *ir.I18nStartOp
		addedI18nId := ir.NoXref
		for _, op := range unit.GetCreate().All() {
			switch o := op.(type) {
			case *ir.I18nStartOp:
				currentI18nOp = o
			case *ir.I18nEndOp:
				currentI18nOp = nil
			case *ir.IcuStartOp:
				if currentI18nOp == nil {
					addedI18nId = job.AllocateXrefId()
					// ICU i18n start/end ops should not receive source spans.
					unit.GetCreate().InsertBefore(ir.NewI18nStartOp(addedI18nId, o.Message, ir.NoXref, nil), o)
				}
			case *ir.IcuEndOp:
				if addedI18nId != ir.NoXref {
					unit.GetCreate().InsertAfter(ir.NewI18nEndOp(addedI18nId, nil), o)
					addedI18nId = ir.NoXref
				}
			}
		}
	}
}
