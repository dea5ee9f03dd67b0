package pipeline_instruction

import (
	"ngc-ir/packages/compiler/src/output"
	r3_identifiers "ngc-ir/packages/compiler/src/render3/r3_identifiers"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/util"
)

func lit(value interface{}) output.OutputExpression {
	return output.NewLiteralExpr(value, nil)
}

func optionalIndex(index *ir.ConstIndex) output.OutputExpression {
	if index == nil {
		return lit(nil)
	}
	return lit(int(*index))
}

// trimTrailingNulls drops trailing null literals, which the runtime treats as absent arguments
func trimTrailingNulls(args []output.OutputExpression) []output.OutputExpression {
	for len(args) > 0 {
		last, ok := args[len(args)-1].(*output.LiteralExpr)
		if !ok || last.Value != nil {
			break
		}
		args = args[:len(args)-1]
	}
	return args
}

// CallExpr invokes a runtime instruction
func CallExpr(instruction *output.ExternalReference, args []output.OutputExpression, sourceSpan *util.ParseSourceSpan) *output.InvokeFunctionExpr {
	if args == nil {
		args = []output.OutputExpression{}
	}
	return output.NewInvokeFunctionExpr(output.NewExternalExpr(instruction, nil), args, sourceSpan, false)
}

// call wraps an instruction invocation in a statement op
func call(instruction *output.ExternalReference, args []output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	expr := CallExpr(instruction, args, sourceSpan)
	return ir.NewStatementOp(output.NewExpressionStatement(expr, sourceSpan))
}

func elementOrContainerBase(instruction *output.ExternalReference, slot int, tag *string, constIndex, localRefIndex *ir.ConstIndex, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(slot)}
	if tag != nil {
		args = append(args, lit(*tag))
	}
	if localRefIndex != nil {
		args = append(args, optionalIndex(constIndex), lit(int(*localRefIndex)))
	} else if constIndex != nil {
		args = append(args, lit(int(*constIndex)))
	}
	return call(instruction, args, sourceSpan)
}

// Element creates an element with no children
func Element(slot int, tag string, constIndex, localRefIndex *ir.ConstIndex, domOnly bool, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	instruction := r3_identifiers.Element
	if domOnly {
		instruction = r3_identifiers.DomElement
	}
	return elementOrContainerBase(instruction, slot, &tag, constIndex, localRefIndex, sourceSpan)
}

// ElementStart begins an element
func ElementStart(slot int, tag string, constIndex, localRefIndex *ir.ConstIndex, domOnly bool, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	instruction := r3_identifiers.ElementStart
	if domOnly {
		instruction = r3_identifiers.DomElementStart
	}
	return elementOrContainerBase(instruction, slot, &tag, constIndex, localRefIndex, sourceSpan)
}

// ElementEnd ends the current element
func ElementEnd(domOnly bool, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	if domOnly {
		return call(r3_identifiers.DomElementEnd, nil, sourceSpan)
	}
	return call(r3_identifiers.ElementEnd, nil, sourceSpan)
}

// ElementContainerStart begins an `ng-container`
func ElementContainerStart(slot int, constIndex, localRefIndex *ir.ConstIndex, domOnly bool, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	instruction := r3_identifiers.ElementContainerStart
	if domOnly {
		instruction = r3_identifiers.DomElementContainerStart
	}
	return elementOrContainerBase(instruction, slot, nil, constIndex, localRefIndex, sourceSpan)
}

// ElementContainer creates an empty `ng-container`
func ElementContainer(slot int, constIndex, localRefIndex *ir.ConstIndex, domOnly bool, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	instruction := r3_identifiers.ElementContainer
	if domOnly {
		instruction = r3_identifiers.DomElementContainer
	}
	return elementOrContainerBase(instruction, slot, nil, constIndex, localRefIndex, sourceSpan)
}

// ElementContainerEnd ends the current `ng-container`
func ElementContainerEnd(domOnly bool) *ir.StatementOp {
	if domOnly {
		return call(r3_identifiers.DomElementContainerEnd, nil, nil)
	}
	return call(r3_identifiers.ElementContainerEnd, nil, nil)
}

func templateBase(instruction *output.ExternalReference, slot int, templateFnRef output.OutputExpression, decls, vars int, tag *string, constIndex, localRefs *ir.ConstIndex, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(slot), templateFnRef, lit(decls), lit(vars)}
	if tag != nil {
		args = append(args, lit(*tag))
	} else {
		args = append(args, lit(nil))
	}
	args = append(args, optionalIndex(constIndex))
	if localRefs != nil {
		args = append(args, lit(int(*localRefs)), output.NewExternalExpr(r3_identifiers.TemplateRefExtractor, nil))
	}
	return call(instruction, trimTrailingNulls(args), sourceSpan)
}

// Template declares an embedded view
func Template(slot int, templateFnRef output.OutputExpression, decls, vars int, tag *string, constIndex, localRefs *ir.ConstIndex, domOnly bool, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	instruction := r3_identifiers.TemplateCreate
	if domOnly {
		instruction = r3_identifiers.DomTemplate
	}
	return templateBase(instruction, slot, templateFnRef, decls, vars, tag, constIndex, localRefs, sourceSpan)
}

// ConditionalCreate declares the first view of a conditional block
func ConditionalCreate(slot int, templateFnRef output.OutputExpression, decls, vars int, tag *string, constIndex, localRefs *ir.ConstIndex, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return templateBase(r3_identifiers.ConditionalCreate, slot, templateFnRef, decls, vars, tag, constIndex, localRefs, sourceSpan)
}

// ConditionalBranchCreate declares a later branch view of a conditional block
func ConditionalBranchCreate(slot int, templateFnRef output.OutputExpression, decls, vars int, tag *string, constIndex, localRefs *ir.ConstIndex, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return templateBase(r3_identifiers.ConditionalBranchCreate, slot, templateFnRef, decls, vars, tag, constIndex, localRefs, sourceSpan)
}

// DisableBindings starts an `ngNonBindable` region
func DisableBindings() *ir.StatementOp {
	return call(r3_identifiers.DisableBindings, nil, nil)
}

// EnableBindings ends an `ngNonBindable` region
func EnableBindings() *ir.StatementOp {
	return call(r3_identifiers.EnableBindings, nil, nil)
}

// Listener registers an event handler
func Listener(name string, handlerFn output.OutputExpression, eventTargetResolver *output.ExternalReference, domOnly bool, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(name), handlerFn}
	if eventTargetResolver != nil {
		args = append(args, output.NewExternalExpr(eventTargetResolver, nil))
	}
	if domOnly {
		return call(r3_identifiers.DomListener, args, sourceSpan)
	}
	return call(r3_identifiers.Listener, args, sourceSpan)
}

// TwoWayBindingSet writes value into target, returning whether the write happened
func TwoWayBindingSet(target, value output.OutputExpression) output.OutputExpression {
	return CallExpr(r3_identifiers.TwoWayBindingSet, []output.OutputExpression{target, value}, nil)
}

// TwoWayListener registers the event side of a two-way binding
func TwoWayListener(name string, handlerFn output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.TwoWayListener, []output.OutputExpression{lit(name), handlerFn}, sourceSpan)
}

// Pipe instantiates a pipe in a slot
func Pipe(slot int, name string) *ir.StatementOp {
	return call(r3_identifiers.Pipe, []output.OutputExpression{lit(slot), lit(name)}, nil)
}

// Namespace switches the active element namespace
func Namespace(namespace ir.Namespace) *ir.StatementOp {
	switch namespace {
	case ir.NamespaceSVG:
		return call(r3_identifiers.NamespaceSVG, nil, nil)
	case ir.NamespaceMath:
		return call(r3_identifiers.NamespaceMathML, nil, nil)
	}
	return call(r3_identifiers.NamespaceHTML, nil, nil)
}

// Advance moves the slot cursor forward
func Advance(delta int, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	var args []output.OutputExpression
	if delta > 1 {
		args = append(args, lit(delta))
	}
	return call(r3_identifiers.Advance, args, sourceSpan)
}

// Reference reads a local reference
func Reference(slot int) output.OutputExpression {
	return CallExpr(r3_identifiers.Reference, []output.OutputExpression{lit(slot)}, nil)
}

// NextContext walks up steps views
func NextContext(steps int) output.OutputExpression {
	var args []output.OutputExpression
	if steps != 1 {
		args = append(args, lit(steps))
	}
	return CallExpr(r3_identifiers.NextContext, args, nil)
}

// GetCurrentView snapshots the current view
func GetCurrentView() output.OutputExpression {
	return CallExpr(r3_identifiers.GetCurrentView, nil, nil)
}

// RestoreView restores a snapshotted view and returns its context
func RestoreView(savedView output.OutputExpression) output.OutputExpression {
	return CallExpr(r3_identifiers.RestoreView, []output.OutputExpression{savedView}, nil)
}

// ResetView resets the view and yields returnValue
func ResetView(returnValue output.OutputExpression) output.OutputExpression {
	return CallExpr(r3_identifiers.ResetView, []output.OutputExpression{returnValue}, returnValue.GetSourceSpan())
}

// Text creates a text node
func Text(slot int, initialValue string, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(slot)}
	if initialValue != "" {
		args = append(args, lit(initialValue))
	}
	return call(r3_identifiers.Text, args, sourceSpan)
}

func bindingValue(expression output.OutputExpression, sourceSpan *util.ParseSourceSpan) output.OutputExpression {
	if interpolation, ok := expression.(*ir.Interpolation); ok {
		return interpolationToExpression(interpolation, sourceSpan)
	}
	return expression
}

func propertyBase(instruction *output.ExternalReference, name string, expression, sanitizer output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(name), bindingValue(expression, sourceSpan)}
	if sanitizer != nil {
		args = append(args, sanitizer)
	}
	return call(instruction, args, sourceSpan)
}

// Property binds a property
func Property(name string, expression, sanitizer output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return propertyBase(r3_identifiers.Property, name, expression, sanitizer, sourceSpan)
}

// AriaProperty binds an ARIA attribute as a property in DOM-only mode
func AriaProperty(name string, expression output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return propertyBase(r3_identifiers.AriaProperty, name, expression, nil, sourceSpan)
}

// DomProperty binds a native DOM property
func DomProperty(name string, expression, sanitizer output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return propertyBase(r3_identifiers.DomProperty, name, expression, sanitizer, sourceSpan)
}

// TwoWayProperty binds the property side of a two-way binding
func TwoWayProperty(name string, expression, sanitizer output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return propertyBase(r3_identifiers.TwoWayProperty, name, expression, sanitizer, sourceSpan)
}

// Attribute binds an attribute
func Attribute(name string, expression, sanitizer output.OutputExpression, namespace string, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(name), bindingValue(expression, sourceSpan)}
	if sanitizer != nil || namespace != "" {
		if sanitizer != nil {
			args = append(args, sanitizer)
		} else {
			args = append(args, lit(nil))
		}
	}
	if namespace != "" {
		args = append(args, lit(namespace))
	}
	return call(r3_identifiers.Attribute, args, sourceSpan)
}

// StyleProp binds one style property
func StyleProp(name string, expression output.OutputExpression, unit string, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(name), bindingValue(expression, sourceSpan)}
	if unit != "" {
		args = append(args, lit(unit))
	}
	return call(r3_identifiers.StyleProp, args, sourceSpan)
}

// ClassProp toggles one class
func ClassProp(name string, expression output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.ClassProp, []output.OutputExpression{lit(name), expression}, sourceSpan)
}

// StyleMap binds the style attribute
func StyleMap(expression output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.StyleMap, []output.OutputExpression{bindingValue(expression, sourceSpan)}, sourceSpan)
}

// ClassMap binds the class attribute
func ClassMap(expression output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.ClassMap, []output.OutputExpression{bindingValue(expression, sourceSpan)}, sourceSpan)
}

func collateInterpolationArgs(strs []string, expressions []output.OutputExpression) []output.OutputExpression {
	if len(strs) < 1 || len(expressions) != len(strs)-1 {
		ir.Assertf("expected specific shape of args for strings/expressions in interpolation: strings=%d, expressions=%d", len(strs), len(expressions))
	}
	if len(expressions) == 1 && strs[0] == "" && strs[1] == "" {
		return []output.OutputExpression{expressions[0]}
	}
	var args []output.OutputExpression
	for idx, expr := range expressions {
		args = append(args, lit(strs[idx]), expr)
	}
	// The last string follows the last expression.
	return append(args, lit(strs[len(expressions)]))
}

func interpolationToExpression(interpolation *ir.Interpolation, sourceSpan *util.ParseSourceSpan) output.OutputExpression {
	args := collateInterpolationArgs(interpolation.Strings, interpolation.Expressions)
	return callVariadicInstructionExpr(ValueInterpolateConfig, nil, args, nil, sourceSpan)
}

// TextInterpolate interpolates into the current text node
func TextInterpolate(strs []string, expressions []output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := collateInterpolationArgs(strs, expressions)
	expr := callVariadicInstructionExpr(TextInterpolateConfig, nil, args, nil, sourceSpan)
	return ir.NewStatementOp(output.NewExpressionStatement(expr, sourceSpan))
}

// VariadicInstructionConfig describes a family of instructions with fixed-arity variants and a
// variadic fallback
type VariadicInstructionConfig struct {
	Constant []*output.ExternalReference
	Variable *output.ExternalReference
	Mapping  func(argCount int) int
}

func interpolationArity(n int) int {
	if n%2 == 0 {
		ir.Assertf("expected odd number of arguments")
	}
	return (n - 1) / 2
}

// TextInterpolateConfig is the config for the textInterpolate instruction
var TextInterpolateConfig = VariadicInstructionConfig{
	Constant: []*output.ExternalReference{
		r3_identifiers.TextInterpolate,
		r3_identifiers.TextInterpolate1,
		r3_identifiers.TextInterpolate2,
		r3_identifiers.TextInterpolate3,
		r3_identifiers.TextInterpolate4,
		r3_identifiers.TextInterpolate5,
		r3_identifiers.TextInterpolate6,
		r3_identifiers.TextInterpolate7,
		r3_identifiers.TextInterpolate8,
	},
	Variable: r3_identifiers.TextInterpolateV,
	Mapping:  interpolationArity,
}

// ValueInterpolateConfig is the config for the value interpolate instruction
var ValueInterpolateConfig = VariadicInstructionConfig{
	Constant: []*output.ExternalReference{
		r3_identifiers.Interpolate,
		r3_identifiers.Interpolate1,
		r3_identifiers.Interpolate2,
		r3_identifiers.Interpolate3,
		r3_identifiers.Interpolate4,
		r3_identifiers.Interpolate5,
		r3_identifiers.Interpolate6,
		r3_identifiers.Interpolate7,
		r3_identifiers.Interpolate8,
	},
	Variable: r3_identifiers.InterpolateV,
	Mapping:  interpolationArity,
}

// PureFunctionConfig is the config for the pure function instruction
var PureFunctionConfig = VariadicInstructionConfig{
	Constant: []*output.ExternalReference{
		r3_identifiers.PureFunction0,
		r3_identifiers.PureFunction1,
		r3_identifiers.PureFunction2,
		r3_identifiers.PureFunction3,
		r3_identifiers.PureFunction4,
		r3_identifiers.PureFunction5,
		r3_identifiers.PureFunction6,
		r3_identifiers.PureFunction7,
		r3_identifiers.PureFunction8,
	},
	Variable: r3_identifiers.PureFunctionV,
	Mapping:  func(n int) int { return n },
}

func callVariadicInstructionExpr(config VariadicInstructionConfig, baseArgs, interpolationArgs, extraArgs []output.OutputExpression, sourceSpan *util.ParseSourceSpan) output.OutputExpression {
	// The mapping is computed before the trailing empty string is dropped.
	n := config.Mapping(len(interpolationArgs))

	if len(extraArgs) == 0 && len(interpolationArgs) > 1 {
		if last, ok := interpolationArgs[len(interpolationArgs)-1].(*output.LiteralExpr); ok && last.Value == "" {
			interpolationArgs = interpolationArgs[:len(interpolationArgs)-1]
		}
	}

	var args []output.OutputExpression
	args = append(args, baseArgs...)
	if n < len(config.Constant) {
		args = append(args, interpolationArgs...)
		args = append(args, extraArgs...)
		return CallExpr(config.Constant[n], args, sourceSpan)
	}
	if config.Variable == nil {
		ir.Assertf("unable to call variadic function")
	}
	args = append(args, output.NewLiteralArrayExpr(interpolationArgs, nil))
	args = append(args, extraArgs...)
	return CallExpr(config.Variable, args, sourceSpan)
}

// Defer declares a `@defer` block
func Defer(selfSlot, primarySlot int, dependencyResolverFn output.OutputExpression, loadingSlot, placeholderSlot, errorSlot *int, loadingConfig, placeholderConfig output.OutputExpression, enableTimerScheduling bool, flags ir.TDeferDetailsFlags, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	optionalSlot := func(slot *int) output.OutputExpression {
		if slot == nil {
			return lit(nil)
		}
		return lit(*slot)
	}
	orNull := func(expr output.OutputExpression) output.OutputExpression {
		if expr == nil {
			return lit(nil)
		}
		return expr
	}
	args := []output.OutputExpression{
		lit(selfSlot),
		lit(primarySlot),
		orNull(dependencyResolverFn),
		optionalSlot(loadingSlot),
		optionalSlot(placeholderSlot),
		optionalSlot(errorSlot),
		orNull(loadingConfig),
		orNull(placeholderConfig),
	}
	if enableTimerScheduling {
		args = append(args, output.NewExternalExpr(r3_identifiers.DeferEnableTimerScheduling, nil))
	} else {
		args = append(args, lit(nil))
	}
	if flags != ir.TDeferDetailsFlagsDefault {
		args = append(args, lit(int(flags)))
	}
	return call(r3_identifiers.Defer, trimTrailingNulls(args), sourceSpan)
}

var deferTriggerInstructions = map[ir.DeferTriggerKind]map[ir.DeferOpModifierKind]*output.ExternalReference{
	ir.DeferTriggerKindIdle: {
		ir.DeferOpModifierKindNone:     r3_identifiers.DeferOnIdle,
		ir.DeferOpModifierKindPrefetch: r3_identifiers.DeferPrefetchOnIdle,
		ir.DeferOpModifierKindHydrate:  r3_identifiers.DeferHydrateOnIdle,
	},
	ir.DeferTriggerKindImmediate: {
		ir.DeferOpModifierKindNone:     r3_identifiers.DeferOnImmediate,
		ir.DeferOpModifierKindPrefetch: r3_identifiers.DeferPrefetchOnImmediate,
		ir.DeferOpModifierKindHydrate:  r3_identifiers.DeferHydrateOnImmediate,
	},
	ir.DeferTriggerKindTimer: {
		ir.DeferOpModifierKindNone:     r3_identifiers.DeferOnTimer,
		ir.DeferOpModifierKindPrefetch: r3_identifiers.DeferPrefetchOnTimer,
		ir.DeferOpModifierKindHydrate:  r3_identifiers.DeferHydrateOnTimer,
	},
	ir.DeferTriggerKindHover: {
		ir.DeferOpModifierKindNone:     r3_identifiers.DeferOnHover,
		ir.DeferOpModifierKindPrefetch: r3_identifiers.DeferPrefetchOnHover,
		ir.DeferOpModifierKindHydrate:  r3_identifiers.DeferHydrateOnHover,
	},
	ir.DeferTriggerKindInteraction: {
		ir.DeferOpModifierKindNone:     r3_identifiers.DeferOnInteraction,
		ir.DeferOpModifierKindPrefetch: r3_identifiers.DeferPrefetchOnInteraction,
		ir.DeferOpModifierKindHydrate:  r3_identifiers.DeferHydrateOnInteraction,
	},
	ir.DeferTriggerKindViewport: {
		ir.DeferOpModifierKindNone:     r3_identifiers.DeferOnViewport,
		ir.DeferOpModifierKindPrefetch: r3_identifiers.DeferPrefetchOnViewport,
		ir.DeferOpModifierKindHydrate:  r3_identifiers.DeferHydrateOnViewport,
	},
	ir.DeferTriggerKindNever: {
		ir.DeferOpModifierKindNone:     r3_identifiers.DeferHydrateNever,
		ir.DeferOpModifierKindPrefetch: r3_identifiers.DeferHydrateNever,
		ir.DeferOpModifierKindHydrate:  r3_identifiers.DeferHydrateNever,
	},
}

// DeferOn registers an `on` trigger
func DeferOn(trigger ir.DeferTriggerKind, args []output.OutputExpression, modifier ir.DeferOpModifierKind, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	instruction, ok := deferTriggerInstructions[trigger][modifier]
	if !ok {
		ir.Assertf("unable to determine instruction for trigger %d with modifier %d", trigger, modifier)
	}
	return call(instruction, args, sourceSpan)
}

// DeferWhen registers a `when` trigger
func DeferWhen(modifier ir.DeferOpModifierKind, expr output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	switch modifier {
	case ir.DeferOpModifierKindPrefetch:
		return call(r3_identifiers.DeferPrefetchWhen, []output.OutputExpression{expr}, sourceSpan)
	case ir.DeferOpModifierKindHydrate:
		return call(r3_identifiers.DeferHydrateWhen, []output.OutputExpression{expr}, sourceSpan)
	}
	return call(r3_identifiers.DeferWhen, []output.OutputExpression{expr}, sourceSpan)
}

// ProjectionDef declares the projection slots of a component
func ProjectionDef(def output.OutputExpression) *ir.StatementOp {
	var args []output.OutputExpression
	if def != nil {
		args = append(args, def)
	}
	return call(r3_identifiers.ProjectionDef, args, nil)
}

// Projection creates an `ng-content` slot
func Projection(slot, projectionSlotIndex int, attributes output.OutputExpression, fallbackFnName string, fallbackDecls, fallbackVars int, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(slot)}
	if projectionSlotIndex != 0 || attributes != nil || fallbackFnName != "" {
		args = append(args, lit(projectionSlotIndex))
		if attributes != nil {
			args = append(args, attributes)
		}
		if fallbackFnName != "" {
			if attributes == nil {
				args = append(args, lit(nil))
			}
			args = append(args, output.NewReadVarExpr(fallbackFnName, nil), lit(fallbackDecls), lit(fallbackVars))
		}
	}
	return call(r3_identifiers.Projection, args, sourceSpan)
}

// RepeaterCreate declares the views of a `@for` block
func RepeaterCreate(slot int, viewFnName string, decls, vars int, tag *string, constIndex *ir.ConstIndex, trackByFn output.OutputExpression, trackByUsesComponentInstance bool, emptyViewFnName string, emptyDecls, emptyVars int, emptyTag *string, emptyConstIndex *ir.ConstIndex, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(slot), output.NewReadVarExpr(viewFnName, nil), lit(decls), lit(vars)}
	if tag != nil {
		args = append(args, lit(*tag))
	} else {
		args = append(args, lit(nil))
	}
	args = append(args, optionalIndex(constIndex), trackByFn)
	if trackByUsesComponentInstance || emptyViewFnName != "" {
		args = append(args, lit(trackByUsesComponentInstance))
		if emptyViewFnName != "" {
			args = append(args, output.NewReadVarExpr(emptyViewFnName, nil), lit(emptyDecls), lit(emptyVars))
			if emptyTag != nil || emptyConstIndex != nil {
				if emptyTag != nil {
					args = append(args, lit(*emptyTag))
				} else {
					args = append(args, lit(nil))
				}
			}
			if emptyConstIndex != nil {
				args = append(args, lit(int(*emptyConstIndex)))
			}
		}
	}
	return call(r3_identifiers.RepeaterCreate, args, sourceSpan)
}

// Repeater updates the collection of a `@for` block
func Repeater(collection output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.Repeater, []output.OutputExpression{collection}, sourceSpan)
}

// Conditional selects the view of a conditional block
func Conditional(condition, contextValue output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{condition}
	if contextValue != nil {
		args = append(args, contextValue)
	}
	return call(r3_identifiers.Conditional, args, sourceSpan)
}

// DeclareLet reserves the slot of a `@let` declaration
func DeclareLet(slot int, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.DeclareLet, []output.OutputExpression{lit(slot)}, sourceSpan)
}

// StoreLet stores the value of a `@let` declaration
func StoreLet(value output.OutputExpression, sourceSpan *util.ParseSourceSpan) output.OutputExpression {
	return CallExpr(r3_identifiers.StoreLet, []output.OutputExpression{value}, sourceSpan)
}

// ReadContextLet reads a `@let` declaration of a parent view
func ReadContextLet(slot int) output.OutputExpression {
	return CallExpr(r3_identifiers.ReadContextLet, []output.OutputExpression{lit(slot)}, nil)
}

// I18nStart begins an i18n block
func I18nStart(slot int, constIndex ir.ConstIndex, subTemplateIndex *int, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(slot), lit(int(constIndex))}
	if subTemplateIndex != nil {
		args = append(args, lit(*subTemplateIndex))
	}
	return call(r3_identifiers.I18nStart, args, sourceSpan)
}

// I18n creates an i18n block without children
func I18n(slot int, constIndex ir.ConstIndex, subTemplateIndex *int, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	args := []output.OutputExpression{lit(slot), lit(int(constIndex))}
	if subTemplateIndex != nil {
		args = append(args, lit(*subTemplateIndex))
	}
	return call(r3_identifiers.I18n, args, sourceSpan)
}

// I18nEnd ends an i18n block
func I18nEnd(sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.I18nEnd, nil, sourceSpan)
}

// I18nAttributes configures the i18n attributes of the current element
func I18nAttributes(slot int, i18nAttributesConfig ir.ConstIndex) *ir.StatementOp {
	return call(r3_identifiers.I18nAttributes, []output.OutputExpression{lit(slot), lit(int(i18nAttributesConfig))}, nil)
}

// I18nExp feeds an expression into the current i18n block
func I18nExp(expr output.OutputExpression, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.I18nExp, []output.OutputExpression{expr}, sourceSpan)
}

// I18nApply applies the collected i18n expressions
func I18nApply(slot int, sourceSpan *util.ParseSourceSpan) *ir.StatementOp {
	return call(r3_identifiers.I18nApply, []output.OutputExpression{lit(slot)}, sourceSpan)
}

// I18nPostprocess resolves multi-valued placeholders of a message at runtime
func I18nPostprocess(message output.OutputExpression, params output.OutputExpression) output.OutputExpression {
	args := []output.OutputExpression{message}
	if params != nil {
		args = append(args, params)
	}
	return CallExpr(r3_identifiers.I18nPostprocess, args, nil)
}

// PureFunction memoizes fn over args
func PureFunction(varOffset int, fn output.OutputExpression, args []output.OutputExpression) output.OutputExpression {
	return callVariadicInstructionExpr(PureFunctionConfig, []output.OutputExpression{lit(varOffset), fn}, args, nil, nil)
}

// PipeBindings are the fixed-arity pipe instructions, indexed by argument count minus one
var PipeBindings = []*output.ExternalReference{
	r3_identifiers.PipeBind1,
	r3_identifiers.PipeBind2,
	r3_identifiers.PipeBind3,
	r3_identifiers.PipeBind4,
}

// PipeBind applies a pipe to one to four arguments
func PipeBind(slot, varOffset int, args []output.OutputExpression) output.OutputExpression {
	if len(args) < 1 || len(args) > len(PipeBindings) {
		ir.Assertf("pipeBind() argument count out of bounds: %d", len(args))
	}
	allArgs := append([]output.OutputExpression{lit(slot), lit(varOffset)}, args...)
	return CallExpr(PipeBindings[len(args)-1], allArgs, nil)
}

// PipeBindV applies a pipe to an array of arguments
func PipeBindV(slot, varOffset int, args output.OutputExpression) output.OutputExpression {
	return CallExpr(r3_identifiers.PipeBindV, []output.OutputExpression{lit(slot), lit(varOffset), args}, nil)
}

// AttachSourceLocation records template locations of elements for debugging
func AttachSourceLocation(templatePath string, locations *output.LiteralArrayExpr) *ir.StatementOp {
	return call(r3_identifiers.AttachSourceLocations, []output.OutputExpression{lit(templatePath), locations}, nil)
}
