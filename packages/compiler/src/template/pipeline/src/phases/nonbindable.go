package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// DisableBindings brackets the content of `ngNonBindable` elements with disableBindings and
// enableBindings instructions.
func DisableBindings(job *compilation.ComponentCompilationJob) {
	nonBindable := map[ir.XrefId]bool{}
	for _, view := range job.ViewUnits() {
		create := view.GetCreate()
		for _, op := range create.All() {
			switch o := op.(type) {
			case *ir.ElementStartOp:
				if o.Kind == ir.OpKindElementStart && o.NonBindable {
					nonBindable[o.Xref] = true
					create.InsertAfter(ir.NewDisableBindingsOp(o.Xref), o)
				}
			case *ir.ContainerStartOp:
				if o.Kind == ir.OpKindContainerStart && o.NonBindable {
					nonBindable[o.Xref] = true
					create.InsertAfter(ir.NewDisableBindingsOp(o.Xref), o)
				}
			case *ir.ElementEndOp:
				if nonBindable[o.Xref] {
					create.InsertBefore(ir.NewEnableBindingsOp(o.Xref), o)
				}
			case *ir.ContainerEndOp:
				if nonBindable[o.Xref] {
					create.InsertBefore(ir.NewEnableBindingsOp(o.Xref), o)
				}
			}
		}
	}
}
