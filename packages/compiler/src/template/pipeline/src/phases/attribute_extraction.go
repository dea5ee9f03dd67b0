package phases

import (
	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ExtractAttributes finds all extractable attribute and binding ops, and creates
// ExtractedAttributeOps for them. Static attributes move out of the update block entirely;
// dynamic bindings and listeners leave a name-only entry for directive matching.
func ExtractAttributes(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		elements := createOpXrefMap(unit)
		for _, op := range unit.Ops() {
			switch o := op.(type) {
			case *ir.AttributeOp:
				extractAttributeOp(job, unit, o, elements)
			case *ir.PropertyOp:
				var bindingKind ir.BindingKind
				switch {
				case o.I18nMessage != nil && o.TemplateKind == nil:
					// If the binding has an i18n context, it is an i18n attribute, and should have
					// that kind in the consts array.
					bindingKind = ir.BindingKindI18n
				case o.IsStructuralTemplateAttribute:
					bindingKind = ir.BindingKindTemplate
				default:
					bindingKind = ir.BindingKindProperty
				}
				unit.GetCreate().InsertBefore(
					// Deliberately null i18nMessage value
					ir.NewExtractedAttributeOp(o.Target, bindingKind, "", o.Name, nil, ir.NoXref, nil, o.SecurityContext),
					lookupElement(elements, o.Target),
				)
			case *ir.TwoWayPropertyOp:
				unit.GetCreate().InsertBefore(
					ir.NewExtractedAttributeOp(o.Target, ir.BindingKindTwoWayProperty, "", o.Name, nil, ir.NoXref, nil, o.SecurityContext),
					lookupElement(elements, o.Target),
				)
			case *ir.StylePropOp, *ir.ClassPropOp:
				// Empty style bindings are treated as regular bindings for the purpose of directive
				// matching in legacy mode.
				target, name, expr := styleOrClassProp(o)
				if _, isEmpty := expr.(*ir.EmptyExpr); isEmpty && job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder {
					unit.GetCreate().InsertBefore(
						ir.NewExtractedAttributeOp(target, ir.BindingKindProperty, "", name, nil, ir.NoXref, nil, []core.SecurityContext{core.SecurityContextSTYLE}),
						lookupElement(elements, target),
					)
				}
			case *ir.ListenerOp:
				extracted := ir.NewExtractedAttributeOp(o.Target, ir.BindingKindProperty, "", o.Name, nil, ir.NoXref, nil, []core.SecurityContext{core.SecurityContextNONE})
				if job.GetKind() == compilation.CompilationJobKindHost {
					// This attribute will apply to the enclosing host binding compilation unit, so
					// order doesn't matter.
					unit.GetCreate().Push(extracted)
				} else {
					unit.GetCreate().InsertBefore(extracted, lookupElement(elements, o.Target))
				}
			case *ir.TwoWayListenerOp:
				// Two-way listeners aren't supported in host bindings.
				if job.GetKind() != compilation.CompilationJobKindHost {
					extracted := ir.NewExtractedAttributeOp(o.Target, ir.BindingKindProperty, "", o.Name, nil, ir.NoXref, nil, []core.SecurityContext{core.SecurityContextNONE})
					unit.GetCreate().InsertBefore(extracted, lookupElement(elements, o.Target))
				}
			}
		}
	}
}

func styleOrClassProp(op ir.Op) (ir.XrefId, string, output.OutputExpression) {
	switch o := op.(type) {
	case *ir.StylePropOp:
		return o.Target, o.Name, o.Expression
	case *ir.ClassPropOp:
		return o.Target, o.Name, o.Expression
	}
	return ir.NoXref, "", nil
}

// extractAttributeOp moves a constant attribute into the consts array.
func extractAttributeOp(job compilation.CompilationJob, unit compilation.CompilationUnit, op *ir.AttributeOp, elements map[ir.XrefId]ir.ConsumesSlotOp) {
	if _, isInterpolation := op.Expression.(*ir.Interpolation); isInterpolation {
		return
	}

	extractable := op.IsTextAttribute || op.Expression.IsConstant()
	if job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder {
		// Legacy mode only extracts text attributes, not constant attribute bindings.
		extractable = extractable && op.IsTextAttribute
	}
	if !extractable {
		return
	}

	bindingKind := ir.BindingKindAttribute
	if op.IsStructuralTemplateAttribute {
		bindingKind = ir.BindingKindTemplate
	}
	extracted := ir.NewExtractedAttributeOp(op.Target, bindingKind, op.Namespace, op.Name, op.Expression, op.I18nContext, op.I18nMessage, op.SecurityContext)
	if job.GetKind() == compilation.CompilationJobKindHost {
		unit.GetCreate().Push(extracted)
	} else {
		unit.GetCreate().InsertBefore(extracted, lookupElement(elements, op.Target))
	}
	unit.GetUpdate().Remove(op)
}
