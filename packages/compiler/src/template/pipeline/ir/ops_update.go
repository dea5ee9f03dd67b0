package ir

import (
	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/util"
)

// InterpolateTextOp interpolates into the text node Target
type InterpolateTextOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Interpolation *Interpolation
}

func NewInterpolateTextOp(target XrefId, interpolation *Interpolation, span *util.ParseSourceSpan) *InterpolateTextOp {
	return &InterpolateTextOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		Interpolation:               interpolation,
	}
}

func (*InterpolateTextOp) GetKind() OpKind { return OpKindInterpolateText }

// BindingOp is an unspecialized binding of Target. Expression is an output expression or an
// *Interpolation.
type BindingOp struct {
	OpBase
	Target          XrefId
	BindingKind     BindingKind
	Name            string
	Expression      output.OutputExpression
	Unit            string
	SecurityContext []core.SecurityContext

	// IsTextAttribute marks a static attribute from the template text
	IsTextAttribute               bool
	IsStructuralTemplateAttribute bool
	TemplateKind                  *TemplateKind

	I18nContext XrefId
	I18nMessage *i18n.Message
}

func NewBindingOp(target XrefId, kind BindingKind, name string, expression output.OutputExpression, unit string, securityContext []core.SecurityContext, isTextAttribute, isStructuralTemplateAttribute bool, templateKind *TemplateKind, i18nMessage *i18n.Message, span *util.ParseSourceSpan) *BindingOp {
	return &BindingOp{
		OpBase:                        OpBase{SourceSpan: span},
		Target:                        target,
		BindingKind:                   kind,
		Name:                          name,
		Expression:                    expression,
		Unit:                          unit,
		SecurityContext:               securityContext,
		IsTextAttribute:               isTextAttribute,
		IsStructuralTemplateAttribute: isStructuralTemplateAttribute,
		TemplateKind:                  templateKind,
		I18nContext:                   NoXref,
		I18nMessage:                   i18nMessage,
	}
}

func (*BindingOp) GetKind() OpKind { return OpKindBinding }

// PropertyOp binds to a property of Target
type PropertyOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Name                          string
	Expression                    output.OutputExpression
	SecurityContext               []core.SecurityContext
	Sanitizer                     output.OutputExpression
	IsStructuralTemplateAttribute bool
	TemplateKind                  *TemplateKind
	I18nContext                   XrefId
	I18nMessage                   *i18n.Message
}

func NewPropertyOp(target XrefId, name string, expression output.OutputExpression, securityContext []core.SecurityContext, isStructuralTemplateAttribute bool, templateKind *TemplateKind, i18nContext XrefId, i18nMessage *i18n.Message, span *util.ParseSourceSpan) *PropertyOp {
	return &PropertyOp{
		OpBase:                        OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait:   DependsOnSlotContextOpTrait{Target: target},
		Name:                          name,
		Expression:                    expression,
		SecurityContext:               securityContext,
		IsStructuralTemplateAttribute: isStructuralTemplateAttribute,
		TemplateKind:                  templateKind,
		I18nContext:                   i18nContext,
		I18nMessage:                   i18nMessage,
	}
}

func (*PropertyOp) GetKind() OpKind { return OpKindProperty }

// TwoWayPropertyOp is the property side of a `[(prop)]` binding
type TwoWayPropertyOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Name                          string
	Expression                    output.OutputExpression
	SecurityContext               []core.SecurityContext
	Sanitizer                     output.OutputExpression
	IsStructuralTemplateAttribute bool
	TemplateKind                  *TemplateKind
	I18nContext                   XrefId
	I18nMessage                   *i18n.Message
}

func NewTwoWayPropertyOp(target XrefId, name string, expression output.OutputExpression, securityContext []core.SecurityContext, isStructuralTemplateAttribute bool, templateKind *TemplateKind, i18nContext XrefId, i18nMessage *i18n.Message, span *util.ParseSourceSpan) *TwoWayPropertyOp {
	return &TwoWayPropertyOp{
		OpBase:                        OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait:   DependsOnSlotContextOpTrait{Target: target},
		Name:                          name,
		Expression:                    expression,
		SecurityContext:               securityContext,
		IsStructuralTemplateAttribute: isStructuralTemplateAttribute,
		TemplateKind:                  templateKind,
		I18nContext:                   i18nContext,
		I18nMessage:                   i18nMessage,
	}
}

func (*TwoWayPropertyOp) GetKind() OpKind { return OpKindTwoWayProperty }

// AttributeOp binds to an attribute of Target
type AttributeOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Namespace                     string
	Name                          string
	Expression                    output.OutputExpression
	SecurityContext               []core.SecurityContext
	Sanitizer                     output.OutputExpression
	IsTextAttribute               bool
	IsStructuralTemplateAttribute bool
	TemplateKind                  *TemplateKind
	I18nContext                   XrefId
	I18nMessage                   *i18n.Message
}

func NewAttributeOp(target XrefId, namespace, name string, expression output.OutputExpression, securityContext []core.SecurityContext, isTextAttribute, isStructuralTemplateAttribute bool, templateKind *TemplateKind, i18nMessage *i18n.Message, span *util.ParseSourceSpan) *AttributeOp {
	return &AttributeOp{
		OpBase:                        OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait:   DependsOnSlotContextOpTrait{Target: target},
		Namespace:                     namespace,
		Name:                          name,
		Expression:                    expression,
		SecurityContext:               securityContext,
		IsTextAttribute:               isTextAttribute,
		IsStructuralTemplateAttribute: isStructuralTemplateAttribute,
		TemplateKind:                  templateKind,
		I18nContext:                   NoXref,
		I18nMessage:                   i18nMessage,
	}
}

func (*AttributeOp) GetKind() OpKind { return OpKindAttribute }

// StylePropOp binds to one style property, with an optional unit suffix
type StylePropOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Name       string
	Expression output.OutputExpression
	Unit       string
}

func NewStylePropOp(target XrefId, name string, expression output.OutputExpression, unit string, span *util.ParseSourceSpan) *StylePropOp {
	return &StylePropOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		Name:                        name,
		Expression:                  expression,
		Unit:                        unit,
	}
}

func (*StylePropOp) GetKind() OpKind { return OpKindStyleProp }

// ClassPropOp toggles one class
type ClassPropOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Name       string
	Expression output.OutputExpression
}

func NewClassPropOp(target XrefId, name string, expression output.OutputExpression, span *util.ParseSourceSpan) *ClassPropOp {
	return &ClassPropOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		Name:                        name,
		Expression:                  expression,
	}
}

func (*ClassPropOp) GetKind() OpKind { return OpKindClassProp }

// StyleMapOp binds the whole style attribute
type StyleMapOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Expression output.OutputExpression
}

func NewStyleMapOp(target XrefId, expression output.OutputExpression, span *util.ParseSourceSpan) *StyleMapOp {
	return &StyleMapOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		Expression:                  expression,
	}
}

func (*StyleMapOp) GetKind() OpKind { return OpKindStyleMap }

// ClassMapOp binds the whole class attribute
type ClassMapOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Expression output.OutputExpression
}

func NewClassMapOp(target XrefId, expression output.OutputExpression, span *util.ParseSourceSpan) *ClassMapOp {
	return &ClassMapOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		Expression:                  expression,
	}
}

func (*ClassMapOp) GetKind() OpKind { return OpKindClassMap }

// DomPropertyOp binds to a native DOM property: host bindings and DOM-only templates
type DomPropertyOp struct {
	OpBase
	ConsumesVarsTrait
	Name            string
	Expression      output.OutputExpression
	I18nContext     XrefId
	SecurityContext []core.SecurityContext
	Sanitizer       output.OutputExpression
}

func NewDomPropertyOp(name string, expression output.OutputExpression, i18nContext XrefId, securityContext []core.SecurityContext, span *util.ParseSourceSpan) *DomPropertyOp {
	return &DomPropertyOp{
		OpBase:          OpBase{SourceSpan: span},
		Name:            name,
		Expression:      expression,
		I18nContext:     i18nContext,
		SecurityContext: securityContext,
	}
}

func (*DomPropertyOp) GetKind() OpKind { return OpKindDomProperty }

// AdvanceOp moves the runtime's slot cursor forward by Delta
type AdvanceOp struct {
	OpBase
	Delta int
}

func NewAdvanceOp(delta int, span *util.ParseSourceSpan) *AdvanceOp {
	if delta <= 0 {
		Assertf("advance delta must be positive, got %d", delta)
	}
	return &AdvanceOp{OpBase: OpBase{SourceSpan: span}, Delta: delta}
}

func (*AdvanceOp) GetKind() OpKind { return OpKindAdvance }

// I18nExpressionOp feeds one expression into the message of Context. I18nOwner is the i18n block
// or i18n attributes op that applies it.
type I18nExpressionOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Context         XrefId
	I18nOwner       XrefId
	Handle          *SlotHandle
	Expression      output.OutputExpression
	IcuPlaceholder  XrefId
	I18nPlaceholder string
	ResolutionTime  I18nParamResolutionTime
	Usage           I18nExpressionFor
	Name            string
}

func NewI18nExpressionOp(context, target, i18nOwner XrefId, handle *SlotHandle, expression output.OutputExpression, icuPlaceholder XrefId, i18nPlaceholder string, resolutionTime I18nParamResolutionTime, usage I18nExpressionFor, name string, span *util.ParseSourceSpan) *I18nExpressionOp {
	return &I18nExpressionOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		Context:                     context,
		I18nOwner:                   i18nOwner,
		Handle:                      handle,
		Expression:                  expression,
		IcuPlaceholder:              icuPlaceholder,
		I18nPlaceholder:             i18nPlaceholder,
		ResolutionTime:              resolutionTime,
		Usage:                       usage,
		Name:                        name,
	}
}

func (*I18nExpressionOp) GetKind() OpKind { return OpKindI18nExpression }

// I18nApplyOp applies the expressions collected for Owner
type I18nApplyOp struct {
	OpBase
	Owner  XrefId
	Handle *SlotHandle
}

func NewI18nApplyOp(owner XrefId, handle *SlotHandle, span *util.ParseSourceSpan) *I18nApplyOp {
	return &I18nApplyOp{OpBase: OpBase{SourceSpan: span}, Owner: owner, Handle: handle}
}

func (*I18nApplyOp) GetKind() OpKind { return OpKindI18nApply }

// ConditionalOp picks the view of an `@if` or `@switch`. Conditions are folded into Processed
// before reification. ContextValue is passed to the selected view when it declares an alias.
type ConditionalOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Test         output.OutputExpression
	Conditions   []*ConditionalCaseExpr
	Processed    output.OutputExpression
	ContextValue output.OutputExpression
}

func NewConditionalOp(target XrefId, test output.OutputExpression, conditions []*ConditionalCaseExpr, span *util.ParseSourceSpan) *ConditionalOp {
	return &ConditionalOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		Test:                        test,
		Conditions:                  conditions,
	}
}

func (*ConditionalOp) GetKind() OpKind { return OpKindConditional }

// RepeaterOp updates the collection of the `@for` block Target
type RepeaterOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	TargetSlot *SlotHandle
	Collection output.OutputExpression
}

func NewRepeaterOp(target XrefId, targetSlot *SlotHandle, collection output.OutputExpression, span *util.ParseSourceSpan) *RepeaterOp {
	return &RepeaterOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		TargetSlot:                  targetSlot,
		Collection:                  collection,
	}
}

func (*RepeaterOp) GetKind() OpKind { return OpKindRepeater }

// DeferWhenOp is a `when` trigger of the block Target
type DeferWhenOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	Expr     output.OutputExpression
	Modifier DeferOpModifierKind
}

func NewDeferWhenOp(target XrefId, expr output.OutputExpression, modifier DeferOpModifierKind, span *util.ParseSourceSpan) *DeferWhenOp {
	return &DeferWhenOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		Expr:                        expr,
		Modifier:                    modifier,
	}
}

func (*DeferWhenOp) GetKind() OpKind { return OpKindDeferWhen }

// StoreLetOp stores the current value of the `@let` declaration Target
type StoreLetOp struct {
	OpBase
	DependsOnSlotContextOpTrait
	ConsumesVarsTrait
	DeclaredName string
	Value        output.OutputExpression
}

func NewStoreLetOp(target XrefId, declaredName string, value output.OutputExpression, span *util.ParseSourceSpan) *StoreLetOp {
	return &StoreLetOp{
		OpBase:                      OpBase{SourceSpan: span},
		DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target},
		DeclaredName:                declaredName,
		Value:                       value,
	}
}

func (*StoreLetOp) GetKind() OpKind { return OpKindStoreLet }
