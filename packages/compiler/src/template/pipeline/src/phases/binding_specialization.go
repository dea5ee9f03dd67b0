package phases

import (
	"strings"

	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/template/pipeline/src/conversion"
)

// isAriaAttribute checks whether a binding name is an `aria-` attribute.
func isAriaAttribute(name string) bool {
	return strings.HasPrefix(name, "aria-") && len(name) > len("aria-")
}

// SpecializeBindings converts the generic `ir.BindingOp`s produced by ingestion into the
// specific op kind for each binding: attributes, DOM properties for host bindings, template
// and two-way properties. `ngNonBindable` marks its element instead of emitting anything.
func SpecializeBindings(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		elements := createOpXrefMap(unit)
		for _, op := range unit.GetUpdate().All() {
			binding, ok := op.(*ir.BindingOp)
			if !ok {
				continue
			}

			switch binding.BindingKind {
			case ir.BindingKindAttribute:
				if binding.Name == "ngNonBindable" {
					unit.GetUpdate().Remove(binding)
					target := lookupElement(elements, binding.Target)
					target.GetElementOrContainerBase().NonBindable = true
					continue
				}
				namespace, name := conversion.SplitNsName(binding.Name)
				unit.GetUpdate().Replace(binding, ir.NewAttributeOp(
					binding.Target,
					namespace,
					name,
					binding.Expression,
					binding.SecurityContext,
					binding.IsTextAttribute,
					binding.IsStructuralTemplateAttribute,
					binding.TemplateKind,
					binding.I18nMessage,
					binding.SourceSpan,
				))
			case ir.BindingKindProperty:
				switch {
				case job.GetKind() == compilation.CompilationJobKindHost:
					unit.GetUpdate().Replace(binding, ir.NewDomPropertyOp(
						binding.Name,
						binding.Expression,
						binding.I18nContext,
						binding.SecurityContext,
						binding.SourceSpan,
					))
				case job.GetMode() == compilation.TemplateCompilationModeDomOnly && isAriaAttribute(binding.Name):
					unit.GetUpdate().Replace(binding, ir.NewAttributeOp(
						binding.Target,
						"",
						binding.Name,
						binding.Expression,
						binding.SecurityContext,
						false,
						binding.IsStructuralTemplateAttribute,
						binding.TemplateKind,
						binding.I18nMessage,
						binding.SourceSpan,
					))
				default:
					unit.GetUpdate().Replace(binding, ir.NewPropertyOp(
						binding.Target,
						binding.Name,
						binding.Expression,
						binding.SecurityContext,
						binding.IsStructuralTemplateAttribute,
						binding.TemplateKind,
						binding.I18nContext,
						binding.I18nMessage,
						binding.SourceSpan,
					))
				}
			case ir.BindingKindTwoWayProperty:
				if _, isInterpolation := binding.Expression.(*ir.Interpolation); isInterpolation {
					ir.Assertf("expected value of two-way property binding %q to be an expression", binding.Name)
				}
				unit.GetUpdate().Replace(binding, ir.NewTwoWayPropertyOp(
					binding.Target,
					binding.Name,
					binding.Expression,
					binding.SecurityContext,
					binding.IsStructuralTemplateAttribute,
					binding.TemplateKind,
					binding.I18nContext,
					binding.I18nMessage,
					binding.SourceSpan,
				))
			case ir.BindingKindI18n, ir.BindingKindClassName, ir.BindingKindStyleProperty:
				ir.Assertf("unhandled binding of kind %d", binding.BindingKind)
			}
		}
	}
}
