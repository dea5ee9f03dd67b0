package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// RemoveI18nContexts drops the i18n context ops once messages are extracted, and clears the
// references to them.
func RemoveI18nContexts(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetCreate().All() {
			switch o := op.(type) {
			case *ir.I18nContextOp:
				unit.GetCreate().Remove(o)
			case *ir.I18nStartOp:
				o.Context = ir.NoXref
			}
		}
	}
}
