package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateLocalLetReferences replaces the `storeLet` ops with variables that can be
// used to reference the value within the same view.
func GenerateLocalLetReferences(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetUpdate().All() {
			storeLet, ok := op.(*ir.StoreLetOp)
			if !ok {
				continue
			}
			variable := ir.NewIdentifierVariable(storeLet.DeclaredName, true)
			unit.GetUpdate().Replace(storeLet, ir.NewVariableOp(
				job.AllocateXrefId(),
				variable,
				ir.NewStoreLetExpr(storeLet.Target, storeLet.Value, storeLet.SourceSpan),
				ir.VariableFlagsNone,
			))
		}
	}
}
