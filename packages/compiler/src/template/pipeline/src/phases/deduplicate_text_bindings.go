package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// DeduplicateTextBindings handles repeated static attributes of one element. Walking backwards,
// the last occurrence of a name is the one that is seen first.
func DeduplicateTextBindings(job compilation.CompilationJob) {
	seen := make(map[ir.XrefId]map[string]bool)
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetUpdate().Reversed() {
			binding, ok := op.(*ir.BindingOp)
			if !ok || !binding.IsTextAttribute {
				continue
			}
			seenForElement, ok := seen[binding.Target]
			if !ok {
				seenForElement = make(map[string]bool)
				seen[binding.Target] = seenForElement
			}
			if seenForElement[binding.Name] {
				// Duplicated attributes are all listed in the consts array, except for `style`
				// and `class` in legacy mode, where only the last value is kept.
				if job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder &&
					(binding.Name == "style" || binding.Name == "class") {
					unit.GetUpdate().Remove(binding)
				}
			}
			seenForElement[binding.Name] = true
		}
	}
}
