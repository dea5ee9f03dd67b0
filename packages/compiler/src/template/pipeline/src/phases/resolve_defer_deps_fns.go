package phases

import (
	"fmt"
	"strings"

	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ResolveDeferDepsFns hoists the dependency loader of each defer block into a shared function
// of the pool, named after the view and the block's slot.
func ResolveDeferDepsFns(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			deferOp, ok := op.(*ir.DeferOp)
			if !ok || deferOp.ResolverFn != nil || deferOp.OwnResolverFn == nil {
				continue
			}
			if !deferOp.Handle.IsAssigned() {
				ir.Assertf("slot must be assigned before extracting defer deps functions")
			}
			path := strings.Replace(unit.GetFnName(), "_Template", "", 1)
			name := fmt.Sprintf("%s_Defer_%d_DepsFn", path, deferOp.Handle.Slot())
			// Unique names are not forced so that the legacy output is reproduced.
			deferOp.ResolverFn = job.Pool.GetSharedFunctionReference(deferOp.OwnResolverFn, name, false)
		}
	}
}
