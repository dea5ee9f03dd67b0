package phases

import (
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// SpecializeStyleBindings transforms `ir.BindingOp`s targeting styles and classes into their
// specialized ops.
func SpecializeStyleBindings(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetUpdate().All() {
			binding, ok := op.(*ir.BindingOp)
			if !ok {
				continue
			}
			switch binding.BindingKind {
			case ir.BindingKindClassName:
				if _, isInterpolation := binding.Expression.(*ir.Interpolation); isInterpolation {
					ir.Assertf("unexpected interpolation in ClassName binding")
				}
				unit.GetUpdate().Replace(binding, ir.NewClassPropOp(binding.Target, binding.Name, binding.Expression, binding.SourceSpan))
			case ir.BindingKindStyleProperty:
				unit.GetUpdate().Replace(binding, ir.NewStylePropOp(binding.Target, binding.Name, binding.Expression, binding.Unit, binding.SourceSpan))
			case ir.BindingKindProperty, ir.BindingKindTemplate:
				if binding.Name == "style" {
					unit.GetUpdate().Replace(binding, ir.NewStyleMapOp(binding.Target, binding.Expression, binding.SourceSpan))
				} else if binding.Name == "class" {
					unit.GetUpdate().Replace(binding, ir.NewClassMapOp(binding.Target, binding.Expression, binding.SourceSpan))
				}
			}
		}
	}
}
