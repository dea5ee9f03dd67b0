package phases

import (
	"regexp"
	"strings"

	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// createOpXrefMap gets a map of all elements in the given view by their xref id.
func createOpXrefMap(unit compilation.CompilationUnit) map[ir.XrefId]ir.ConsumesSlotOp {
	elements := make(map[ir.XrefId]ir.ConsumesSlotOp)
	for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		slotOp, ok := op.(ir.ConsumesSlotOp)
		if !ok {
			continue
		}
		elements[slotOp.GetConsumesSlotTrait().Xref] = slotOp

		// A `@for` with an `@empty` block owns two views, both reachable through the repeater.
		if repeater, ok := op.(*ir.RepeaterCreateOp); ok && repeater.EmptyView != ir.NoXref {
			elements[repeater.EmptyView] = slotOp
		}
	}
	return elements
}

// lookupInXrefMap looks up an op by its xref and panics if it is missing.
func lookupInXrefMap(elements map[ir.XrefId]ir.ConsumesSlotOp, xref ir.XrefId) ir.ConsumesSlotOp {
	op, ok := elements[xref]
	if !ok {
		ir.Assertf("op with xref %d must be in the element map", xref)
	}
	return op
}

// lookupElement looks up an element-like op by its xref.
func lookupElement(elements map[ir.XrefId]ir.ConsumesSlotOp, xref ir.XrefId) ir.ElementOrContainerOp {
	op := lookupInXrefMap(elements, xref)
	element, ok := op.(ir.ElementOrContainerOp)
	if !ok {
		ir.Assertf("expected xref %d to refer to an element, got %s", xref, op.GetKind())
	}
	return element
}

// componentJobOf returns the template job behind job, or nil for host jobs.
func componentJobOf(job compilation.CompilationJob) *compilation.ComponentCompilationJob {
	componentJob, _ := job.(*compilation.ComponentCompilationJob)
	return componentJob
}

var hyphenateRegexp = regexp.MustCompile(`[a-z][A-Z]`)

// hyphenate turns camelCase into kebab-case.
func hyphenate(value string) string {
	return strings.ToLower(hyphenateRegexp.ReplaceAllStringFunc(value, func(m string) string {
		return m[:1] + "-" + m[1:]
	}))
}
