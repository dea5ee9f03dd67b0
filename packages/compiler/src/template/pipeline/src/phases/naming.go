package phases

import (
	"fmt"
	"strings"

	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/util"
)

// NameFunctionsAndVariables names the template functions, listener handlers and variables of
// every unit, and propagates variable names into their reads. Names derive from the component
// name, the nesting path and slot indices, so they stay stable across recompiles.
func NameFunctionsAndVariables(job compilation.CompilationJob) {
	n := &namer{legacy: job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder}
	n.nameUnit(job.GetRoot(), job.GetComponentName())
}

type namer struct {
	index  int
	legacy bool
}

func (n *namer) nameUnit(unit compilation.CompilationUnit, baseName string) {
	job := unit.GetJob()
	if unit.GetFnName() == "" {
		name := util.SanitizeIdentifier(fmt.Sprintf("%s_%s", baseName, job.GetFnSuffix()))
		unit.SetFnName(job.GetPool().UniqueName(name, false))
	}

	varNames := make(map[ir.XrefId]string)
	for _, op := range unit.Ops() {
		switch o := op.(type) {
		case *ir.ListenerOp:
			if o.HandlerFnName != "" {
				continue
			}
			if o.HostListener {
				o.HandlerFnName = util.SanitizeIdentifier(fmt.Sprintf("%s_%s_HostBindingHandler", baseName, o.Name))
				continue
			}
			o.HandlerFnName = util.SanitizeIdentifier(fmt.Sprintf("%s_%s_%s_%d_listener",
				unit.GetFnName(), strings.ReplaceAll(o.Tag, "-", "_"), o.Name, o.TargetSlot.Slot()))
		case *ir.TwoWayListenerOp:
			if o.HandlerFnName != "" {
				continue
			}
			o.HandlerFnName = util.SanitizeIdentifier(fmt.Sprintf("%s_%s_%s_%d_listener",
				unit.GetFnName(), strings.ReplaceAll(o.Tag, "-", "_"), o.Name, o.TargetSlot.Slot()))
		case *ir.VariableOp:
			varNames[o.Xref] = n.variableName(o.Variable)
		case *ir.RepeaterCreateOp:
			view := viewOf(unit)
			// The item view follows the repeater's own slot, the empty view comes after it.
			slot := o.Handle.Slot()
			if o.EmptyView != ir.NoXref {
				n.nameUnit(view.Job.View(o.EmptyView), fmt.Sprintf("%s_%sEmpty_%d", baseName, o.FunctionNameSuffix, slot+2))
			}
			n.nameUnit(view.Job.View(o.Xref), fmt.Sprintf("%s_%s_%d", baseName, o.FunctionNameSuffix, slot+1))
		case *ir.ProjectionOp:
			if o.FallbackView != ir.NoXref {
				view := viewOf(unit)
				n.nameUnit(view.Job.View(o.FallbackView), fmt.Sprintf("%s_ProjectionFallback_%d", baseName, o.Handle.Slot()))
			}
		case *ir.TemplateOp:
			view := viewOf(unit)
			suffix := ""
			if o.FunctionNameSuffix != "" {
				suffix = "_" + o.FunctionNameSuffix
			}
			n.nameUnit(view.Job.View(o.Xref), fmt.Sprintf("%s%s_%d", baseName, suffix, o.Handle.Slot()))
		case *ir.StylePropOp:
			o.Name = normalizeStylePropName(o.Name)
			if n.legacy {
				o.Name = stripImportant(o.Name)
			}
		case *ir.ClassPropOp:
			if n.legacy {
				o.Name = stripImportant(o.Name)
			}
		}
	}

	for _, op := range unit.Ops() {
		ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
			read, ok := expr.(*ir.ReadVariableExpr)
			if !ok || read.Name != "" {
				return
			}
			name, ok := varNames[read.Xref]
			if !ok {
				ir.Assertf("variable %d not yet named", read.Xref)
			}
			read.Name = name
		})
	}
}

func (n *namer) variableName(variable ir.SemanticVariable) string {
	if variable.GetName() != "" {
		return variable.GetName()
	}
	var name string
	switch v := variable.(type) {
	case *ir.ContextVariable:
		name = fmt.Sprintf("ctx_r%d", n.index)
		n.index++
	case *ir.IdentifierVariable:
		if n.legacy {
			// `ctx` would collide with the template function parameter.
			prefix := ""
			if v.Identifier == "ctx" {
				prefix = "i"
			}
			n.index++
			name = fmt.Sprintf("%s_%sr%d", v.Identifier, prefix, n.index)
		} else {
			name = fmt.Sprintf("%s_i%d", v.Identifier, n.index)
			n.index++
		}
	default:
		n.index++
		name = fmt.Sprintf("_r%d", n.index)
	}
	variable.SetName(name)
	return name
}

func viewOf(unit compilation.CompilationUnit) *compilation.ViewCompilationUnit {
	view, ok := unit.(*compilation.ViewCompilationUnit)
	if !ok {
		ir.Assertf("must be compiling a component")
	}
	return view
}

// normalizeStylePropName hyphenates a style property unless it is a CSS variable
func normalizeStylePropName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	return hyphenate(name)
}

func stripImportant(name string) string {
	if i := strings.Index(name, "!important"); i > -1 {
		return name[:i]
	}
	return name
}
