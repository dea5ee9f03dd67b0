package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// AttachSourceLocations records where each element of a view starts in the template, for
// debug builds that set a relative template path.
func AttachSourceLocations(job *compilation.ComponentCompilationJob) {
	if !job.EnableDebugLocations || job.RelativeTemplatePath == "" {
		return
	}
	for _, unit := range job.GetUnits() {
		var locations []ir.ElementSourceLocation
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			element, ok := op.(*ir.ElementStartOp)
			if !ok || element.StartSourceSpan == nil {
				continue
			}
			start := element.StartSourceSpan.Start
			locations = append(locations, ir.ElementSourceLocation{
				TargetSlot: element.Handle,
				Offset:     start.Offset,
				Line:       start.Line,
				Column:     start.Col,
			})
		}
		if len(locations) > 0 {
			unit.GetCreate().Push(ir.NewSourceLocationOp(job.RelativeTemplatePath, locations))
		}
	}
}
