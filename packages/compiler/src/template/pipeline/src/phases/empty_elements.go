package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// CollapseEmptyInstructions merges a start op directly followed by its end op into the
// single-instruction form. Pipe ops in between do not count as content.
func CollapseEmptyInstructions(job *compilation.ComponentCompilationJob) {
	for _, unit := range job.GetUnits() {
		create := unit.GetCreate()
		for _, op := range create.All() {
			var xref ir.XrefId
			switch o := op.(type) {
			case *ir.ElementEndOp:
				xref = o.Xref
			case *ir.ContainerEndOp:
				xref = o.Xref
			case *ir.I18nEndOp:
				xref = o.Xref
			default:
				continue
			}

			prev := op.GetPrev()
			for prev != nil && prev.GetKind() == ir.OpKindPipe {
				prev = prev.GetPrev()
			}
			if prev == nil || !collapseStart(prev, xref) {
				continue
			}
			create.Remove(op)
		}
	}
}

func collapseStart(op ir.Op, xref ir.XrefId) bool {
	switch o := op.(type) {
	case *ir.ElementStartOp:
		if o.Kind == ir.OpKindElementStart && o.Xref == xref {
			o.Kind = ir.OpKindElement
			return true
		}
	case *ir.ContainerStartOp:
		if o.Kind == ir.OpKindContainerStart && o.Xref == xref {
			o.Kind = ir.OpKindContainer
			return true
		}
	case *ir.I18nStartOp:
		if o.Kind == ir.OpKindI18nStart && o.Xref == xref {
			o.Kind = ir.OpKindI18n
			return true
		}
	}
	return false
}
