package phases

import (
	"ngc-ir/packages/compiler/src/css"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/template/pipeline/src/conversion"
)

// GenerateProjectionDefs locates projection slots, populates the each component's `ngContentSelectors`
// literal field, populates `project` arguments, and generates the required `projectionDef` instruction
// for the job's root view.
func GenerateProjectionDefs(job *compilation.ComponentCompilationJob) {
	// TemplateDefinitionBuilder always shares these constants.
	share := job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder

	// Collect all selectors from this component, and its nested views. Also, assign each projection a
	// unique ascending projection slot index.
	var selectors []string
	projectionSlotIndex := 0
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			if projection, ok := op.(*ir.ProjectionOp); ok {
				selectors = append(selectors, projection.Selector)
				projection.ProjectionSlotIndex = projectionSlotIndex
				projectionSlotIndex++
			}
		}
	}
	if len(selectors) == 0 {
		return
	}

	// Create the projectionDef array. If we only found a single wildcard selector, then we use the
	// default behavior with no arguments instead.
	var defExpr output.OutputExpression
	if len(selectors) > 1 || selectors[0] != "*" {
		def := make([]interface{}, len(selectors))
		for i, selector := range selectors {
			if selector == "*" {
				def[i] = selector
				continue
			}
			r3Selector, err := css.ParseSelectorToR3Selector(selector)
			if err != nil {
				ir.Assertf("invalid content projection selector %q: %v", selector, err)
			}
			def[i] = r3Selector
		}
		defExpr = job.GetPool().GetConstLiteral(conversion.LiteralOrArrayLiteral(def), share)
	}

	// Create the ngContentSelectors constant.
	job.ContentSelectors = job.GetPool().GetConstLiteral(conversion.LiteralOrArrayLiteral(selectors), share)

	// The projection def instruction goes at the beginning of the root view, before any
	// `projection` instructions.
	job.Root.GetCreate().Prepend([]ir.Op{ir.NewProjectionDefOp(defExpr)})
}
