package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// EmitNamespaceChanges inserts a namespace op wherever the namespace of consecutive elements
// changes. Every view starts out in the HTML namespace.
func EmitNamespaceChanges(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		activeNamespace := ir.NamespaceHTML
		for _, op := range unit.GetCreate().All() {
			element, ok := op.(*ir.ElementStartOp)
			if !ok {
				continue
			}
			if element.Namespace != activeNamespace {
				unit.GetCreate().InsertBefore(ir.NewNamespaceOp(element.Namespace), element)
				activeNamespace = element.Namespace
			}
		}
	}
}
