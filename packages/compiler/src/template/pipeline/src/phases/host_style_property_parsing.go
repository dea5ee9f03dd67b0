package phases

import (
	"strings"

	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

const (
	styleDot  = "style."
	classDot  = "class."
	styleBang = "style!"
	classBang = "class!"
	important = "!important"
)

// ParseHostStyleProperties turns host property bindings named `style.x` or `class.x` into
// style and class bindings. The template parser does this for templates, but host bindings
// arrive as plain properties.
func ParseHostStyleProperties(job *compilation.HostBindingCompilationJob) {
	for op := job.Root.GetUpdate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		binding, ok := op.(*ir.BindingOp)
		if !ok || binding.BindingKind != ir.BindingKindProperty {
			continue
		}

		switch {
		case strings.HasPrefix(binding.Name, styleDot):
			binding.BindingKind = ir.BindingKindStyleProperty
			binding.Name = binding.Name[len(styleDot):]
			if !isCssCustomProperty(binding.Name) {
				binding.Name = hyphenate(binding.Name)
			}
			binding.Name, binding.Unit = parseProperty(binding.Name)
		case strings.HasPrefix(binding.Name, styleBang):
			binding.BindingKind = ir.BindingKindStyleProperty
			binding.Name = "style"
		case strings.HasPrefix(binding.Name, classDot):
			binding.BindingKind = ir.BindingKindClassName
			binding.Name, _ = parseProperty(binding.Name[len(classDot):])
		case strings.HasPrefix(binding.Name, classBang):
			binding.BindingKind = ir.BindingKindClassName
			binding.Name, _ = parseProperty(binding.Name[len(classBang):])
		}
	}
}

// isCssCustomProperty checks whether a property name is a `--custom` property. Those keep their
// case.
func isCssCustomProperty(name string) bool {
	return strings.HasPrefix(name, "--")
}

// parseProperty splits `width.px` into the property and its unit, dropping `!important`.
func parseProperty(name string) (property, unit string) {
	if idx := strings.Index(name, important); idx != -1 {
		if idx > 0 {
			name = name[:idx]
		} else {
			name = ""
		}
	}
	property = name
	if unitIndex := strings.LastIndex(name, "."); unitIndex > 0 {
		unit = name[unitIndex+1:]
		property = name[:unitIndex]
	}
	return property, unit
}
