package phases

import (
	"strings"

	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// RemoveContentSelectors drops the `select` attribute of `ng-content`. The selector has already
// been recorded on the projection op and must not reach the consts array.
func RemoveContentSelectors(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		elements := createOpXrefMap(unit)
		for _, op := range unit.GetUpdate().All() {
			binding, ok := op.(*ir.BindingOp)
			if !ok {
				continue
			}
			target := lookupInXrefMap(elements, binding.Target)
			if strings.ToLower(binding.Name) == "select" && target.GetKind() == ir.OpKindProjection {
				unit.GetUpdate().Remove(binding)
			}
		}
	}
}
