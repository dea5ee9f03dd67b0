package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

const ngContainerTag = "ng-container"

// GenerateNgContainerOps replaces the element ops of an `<ng-container>` with container ops.
func GenerateNgContainerOps(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		containers := map[ir.XrefId]bool{}
		create := unit.GetCreate()
		for _, op := range create.All() {
			switch o := op.(type) {
			case *ir.ElementStartOp:
				if o.Tag != ngContainerTag {
					continue
				}
				container := ir.NewContainerStartOp(o.Xref, o.StartSourceSpan, o.WholeSourceSpan)
				container.Handle = o.Handle
				container.NumSlotsUsed = o.NumSlotsUsed
				container.Attributes = o.Attributes
				container.LocalRefs = o.LocalRefs
				container.LocalRefsIndex = o.LocalRefsIndex
				container.NonBindable = o.NonBindable
				container.SourceSpan = o.SourceSpan
				create.Replace(o, container)
				containers[o.Xref] = true
			case *ir.ElementEndOp:
				if containers[o.Xref] {
					create.Replace(o, ir.NewContainerEndOp(o.Xref, o.SourceSpan))
				}
			}
		}
	}
}
