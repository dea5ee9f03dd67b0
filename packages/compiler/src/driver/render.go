package driver

import (
	"fmt"
	"strings"

	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline"
)

// renderer writes the debug listing of a compiled component
type renderer struct {
	indentLevel int
	builder     strings.Builder
}

// Render returns a readable listing of everything compiled for a component
func Render(result Result) string {
	r := &renderer{}
	r.write("// %s", result.Name)
	if result.Path != "" {
		r.write("// source: %s", result.Path)
	}
	if result.Err != nil {
		r.write("// error: %v", result.Err)
		return r.builder.String()
	}

	if t := result.Template; t != nil {
		r.write("")
		r.statements(t.Statements)
		r.write("// decls: %d, vars: %d", t.Decls, t.Vars)
		r.text(output.PrintExpression(t.TemplateFn))
		r.consts(t)
		if t.ContentSelectors != nil {
			r.write("ngContentSelectors = %s", output.PrintExpression(t.ContentSelectors))
		}
		r.slots(t.Slots)
		r.warnings(t)
	}

	if h := result.Host; h != nil {
		r.write("")
		r.statements(h.Statements)
		r.write("// host vars: %d", h.Vars)
		if h.HostAttrs != nil {
			r.write("hostAttrs = %s", output.PrintExpression(h.HostAttrs))
		}
		if h.HostBindingsFn != nil {
			r.text(output.PrintExpression(h.HostBindingsFn))
		} else {
			r.write("// no host bindings function")
		}
		r.warnings(h)
	}
	return r.builder.String()
}

func (r *renderer) write(format string, args ...interface{}) {
	r.builder.WriteString(strings.Repeat("  ", r.indentLevel))
	r.builder.WriteString(fmt.Sprintf(format, args...))
	r.builder.WriteString("\n")
}

// text writes multi-line text at the current indentation
func (r *renderer) text(s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		r.write("%s", line)
	}
}

func (r *renderer) statements(stmts []output.OutputStatement) {
	if len(stmts) == 0 {
		return
	}
	r.text(output.PrintStatements(stmts))
}

func (r *renderer) consts(t *pipeline.CompileResult) {
	if len(t.Consts) == 0 && len(t.ConstsInitializers) == 0 {
		return
	}
	r.write("consts = [")
	r.indentLevel++
	r.statements(t.ConstsInitializers)
	for i, c := range t.Consts {
		r.write("/* %d */ %s,", i, output.PrintExpression(c))
	}
	r.indentLevel--
	r.write("]")
}

func (r *renderer) slots(slots []pipeline.SlotMetadata) {
	if len(slots) == 0 {
		return
	}
	r.write("// slots:")
	r.indentLevel++
	for _, slot := range slots {
		name := slot.Name
		if name == "" {
			name = "-"
		}
		r.write("// view %d, slot %d: %s %s", slot.Unit, slot.Slot, slot.Kind, name)
	}
	r.indentLevel--
}

func (r *renderer) warnings(t *pipeline.CompileResult) {
	for _, warning := range t.Warnings {
		r.write("// warning: %s", warning.String())
	}
}
