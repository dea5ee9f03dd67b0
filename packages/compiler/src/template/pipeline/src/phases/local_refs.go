package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// LiftLocalRefs moves the local references of elements and templates into the component's consts
// as a flat `[name, target, ...]` array. Each reference also reserves a data slot after its owner.
func LiftLocalRefs(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			var base *ir.ElementOrContainerOpBase
			switch o := op.(type) {
			case *ir.ElementStartOp:
				base = o.GetElementOrContainerBase()
			case *ir.TemplateOp:
				base = o.GetElementOrContainerBase()
			default:
				continue
			}
			if base.LocalRefsIndex != nil {
				ir.Assertf("local refs of xref %d were already lifted", base.Xref)
			}
			base.NumSlotsUsed += len(base.LocalRefs)
			if len(base.LocalRefs) > 0 {
				index := job.AddConst(serializeLocalRefs(base.LocalRefs), nil)
				base.LocalRefsIndex = &index
			}
			base.LocalRefs = nil
		}
	}
}

func serializeLocalRefs(refs []ir.LocalRef) output.OutputExpression {
	entries := make([]output.OutputExpression, 0, len(refs)*2)
	for _, ref := range refs {
		entries = append(entries, output.Literal(ref.Name), output.Literal(ref.Target))
	}
	return output.LiteralArr(entries...)
}
