package ir

// OpKind distinguishes different kinds of IR operations
type OpKind int

const (
	// OpKindListEnd - sentinel at the head and tail of every OpList
	OpKindListEnd OpKind = iota
	// OpKindStatement - wraps an output statement
	OpKindStatement
	// OpKindVariable - declares and initializes a SemanticVariable
	OpKindVariable
	// OpKindElementStart - begins rendering of an element
	OpKindElementStart
	// OpKindElement - renders an element with no children
	OpKindElement
	// OpKindTemplate - declares an embedded view
	OpKindTemplate
	// OpKindElementEnd - ends an element previously started with ElementStart
	OpKindElementEnd
	// OpKindContainerStart - begins an `ng-container`
	OpKindContainerStart
	// OpKindContainer - an `ng-container` with no children
	OpKindContainer
	// OpKindContainerEnd - ends an `ng-container`
	OpKindContainerEnd
	// OpKindDisableBindings - disables bindings for the following nodes (`ngNonBindable`)
	OpKindDisableBindings
	// OpKindConditionalCreate - declares the first view of an `@if` or `@switch`
	OpKindConditionalCreate
	// OpKindConditionalBranchCreate - declares a subsequent branch view of a conditional
	OpKindConditionalBranchCreate
	// OpKindConditional - selects which conditional view is shown
	OpKindConditional
	// OpKindEnableBindings - re-enables bindings after DisableBindings
	OpKindEnableBindings
	// OpKindText - renders a text node
	OpKindText
	// OpKindListener - declares an event listener
	OpKindListener
	// OpKindInterpolateText - interpolates text into a text node
	OpKindInterpolateText
	// OpKindBinding - a binding that has not been specialized yet
	OpKindBinding
	// OpKindProperty - binds an expression to a property
	OpKindProperty
	// OpKindStyleProp - binds an expression to a single style property
	OpKindStyleProp
	// OpKindClassProp - binds an expression to a single class
	OpKindClassProp
	// OpKindStyleMap - binds an expression to the whole style attribute
	OpKindStyleMap
	// OpKindClassMap - binds an expression to the whole class attribute
	OpKindClassMap
	// OpKindAdvance - advances the runtime's implicit slot cursor
	OpKindAdvance
	// OpKindPipe - instantiates a pipe
	OpKindPipe
	// OpKindAttribute - binds an expression to an attribute
	OpKindAttribute
	// OpKindExtractedAttribute - an attribute extracted into the consts array
	OpKindExtractedAttribute
	// OpKindDefer - configures a `@defer` block
	OpKindDefer
	// OpKindDeferOn - an `on` trigger of a `@defer` block
	OpKindDeferOn
	// OpKindDeferWhen - a `when` trigger of a `@defer` block
	OpKindDeferWhen
	// OpKindI18nMessage - an i18n message extracted into the consts array
	OpKindI18nMessage
	// OpKindDomProperty - binds to a native DOM property, used by host bindings and DOM-only mode
	OpKindDomProperty
	// OpKindNamespace - switches the active namespace
	OpKindNamespace
	// OpKindProjectionDef - declares the content projection slots of a view
	OpKindProjectionDef
	// OpKindProjection - creates a content projection slot
	OpKindProjection
	// OpKindRepeaterCreate - declares the views of a `@for` block
	OpKindRepeaterCreate
	// OpKindRepeater - updates the collection of a `@for` block
	OpKindRepeater
	// OpKindTwoWayProperty - the property side of a two-way binding
	OpKindTwoWayProperty
	// OpKindTwoWayListener - the event side of a two-way binding
	OpKindTwoWayListener
	// OpKindDeclareLet - initializes the slot of a `@let` declaration
	OpKindDeclareLet
	// OpKindStoreLet - stores the current value of a `@let` declaration
	OpKindStoreLet
	// OpKindI18nStart - starts an i18n block
	OpKindI18nStart
	// OpKindI18n - an i18n block on an element without children
	OpKindI18n
	// OpKindI18nEnd - ends an i18n block
	OpKindI18nEnd
	// OpKindI18nExpression - an expression used by an i18n message
	OpKindI18nExpression
	// OpKindI18nApply - applies the i18n expressions collected so far
	OpKindI18nApply
	// OpKindIcuStart - starts an ICU expression
	OpKindIcuStart
	// OpKindIcuEnd - ends an ICU expression
	OpKindIcuEnd
	// OpKindIcuPlaceholder - a placeholder inside an ICU expression
	OpKindIcuPlaceholder
	// OpKindI18nContext - collects the parameters of one i18n message
	OpKindI18nContext
	// OpKindI18nAttributes - the i18n attributes of an element
	OpKindI18nAttributes
	// OpKindSourceLocation - attaches the template location of elements for debugging
	OpKindSourceLocation
)

var opKindNames = map[OpKind]string{
	OpKindListEnd: "ListEnd", OpKindStatement: "Statement", OpKindVariable: "Variable",
	OpKindElementStart: "ElementStart", OpKindElement: "Element", OpKindTemplate: "Template",
	OpKindElementEnd: "ElementEnd", OpKindContainerStart: "ContainerStart", OpKindContainer: "Container",
	OpKindContainerEnd: "ContainerEnd", OpKindDisableBindings: "DisableBindings",
	OpKindConditionalCreate: "ConditionalCreate", OpKindConditionalBranchCreate: "ConditionalBranchCreate",
	OpKindConditional: "Conditional", OpKindEnableBindings: "EnableBindings", OpKindText: "Text",
	OpKindListener: "Listener", OpKindInterpolateText: "InterpolateText", OpKindBinding: "Binding",
	OpKindProperty: "Property", OpKindStyleProp: "StyleProp", OpKindClassProp: "ClassProp",
	OpKindStyleMap: "StyleMap", OpKindClassMap: "ClassMap", OpKindAdvance: "Advance", OpKindPipe: "Pipe",
	OpKindAttribute: "Attribute", OpKindExtractedAttribute: "ExtractedAttribute", OpKindDefer: "Defer",
	OpKindDeferOn: "DeferOn", OpKindDeferWhen: "DeferWhen", OpKindI18nMessage: "I18nMessage",
	OpKindDomProperty: "DomProperty", OpKindNamespace: "Namespace", OpKindProjectionDef: "ProjectionDef",
	OpKindProjection: "Projection", OpKindRepeaterCreate: "RepeaterCreate", OpKindRepeater: "Repeater",
	OpKindTwoWayProperty: "TwoWayProperty", OpKindTwoWayListener: "TwoWayListener",
	OpKindDeclareLet: "DeclareLet", OpKindStoreLet: "StoreLet", OpKindI18nStart: "I18nStart",
	OpKindI18n: "I18n", OpKindI18nEnd: "I18nEnd", OpKindI18nExpression: "I18nExpression",
	OpKindI18nApply: "I18nApply", OpKindIcuStart: "IcuStart", OpKindIcuEnd: "IcuEnd",
	OpKindIcuPlaceholder: "IcuPlaceholder", OpKindI18nContext: "I18nContext",
	OpKindI18nAttributes: "I18nAttributes", OpKindSourceLocation: "SourceLocation",
}

func (k OpKind) String() string {
	if name, ok := opKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// OpFamily tells which op lists an op kind may live in
type OpFamily int

const (
	// OpFamilyShared - ops valid in both create and update lists
	OpFamilyShared OpFamily = iota
	// OpFamilyCreate - ops run once when a view is created
	OpFamilyCreate
	// OpFamilyUpdate - ops run on every change detection pass
	OpFamilyUpdate
)

// Family returns the op family of the kind
func (k OpKind) Family() OpFamily {
	switch k {
	case OpKindListEnd, OpKindStatement, OpKindVariable:
		return OpFamilyShared
	case OpKindInterpolateText, OpKindBinding, OpKindProperty, OpKindStyleProp, OpKindClassProp,
		OpKindStyleMap, OpKindClassMap, OpKindAdvance, OpKindAttribute, OpKindDeferWhen,
		OpKindDomProperty, OpKindRepeater, OpKindTwoWayProperty, OpKindStoreLet,
		OpKindI18nExpression, OpKindI18nApply, OpKindConditional:
		return OpFamilyUpdate
	}
	return OpFamilyCreate
}

// ExpressionKind distinguishes different kinds of IR expressions
type ExpressionKind int

const (
	// ExpressionKindLexicalRead - read of a name in the lexical scope, before resolution
	ExpressionKindLexicalRead ExpressionKind = iota
	// ExpressionKindContext - reference to the context of a view
	ExpressionKindContext
	// ExpressionKindTrackContext - reference to the component context inside a track function
	ExpressionKindTrackContext
	// ExpressionKindReadVariable - read of a variable declared by a VariableOp
	ExpressionKindReadVariable
	// ExpressionKindNextContext - navigates to a parent view context
	ExpressionKindNextContext
	// ExpressionKindReference - retrieves the value of a local reference
	ExpressionKindReference
	// ExpressionKindStoreLet - stores the value of a `@let` declaration
	ExpressionKindStoreLet
	// ExpressionKindContextLetReference - reads a `@let` declaration from another view
	ExpressionKindContextLetReference
	// ExpressionKindGetCurrentView - snapshots the current view
	ExpressionKindGetCurrentView
	// ExpressionKindRestoreView - restores a snapshotted view
	ExpressionKindRestoreView
	// ExpressionKindResetView - resets the view after RestoreView
	ExpressionKindResetView
	// ExpressionKindPureFunctionExpr - a memoized function of change-detected arguments
	ExpressionKindPureFunctionExpr
	// ExpressionKindPureFunctionParameterExpr - a positional parameter inside a pure function body
	ExpressionKindPureFunctionParameterExpr
	// ExpressionKindPipeBinding - a pipe transformation with a fixed number of arguments
	ExpressionKindPipeBinding
	// ExpressionKindPipeBindingVariadic - a pipe transformation with arguments passed as an array
	ExpressionKindPipeBindingVariadic
	// ExpressionKindSafePropertyRead - `a?.b`, expanded into a null check later
	ExpressionKindSafePropertyRead
	// ExpressionKindSafeKeyedRead - `a?.[b]`, expanded into a null check later
	ExpressionKindSafeKeyedRead
	// ExpressionKindSafeInvokeFunction - `a?.()`, expanded into a null check later
	ExpressionKindSafeInvokeFunction
	// ExpressionKindSafeTernaryExpr - intermediate form of an expanded safe read
	ExpressionKindSafeTernaryExpr
	// ExpressionKindEmptyExpr - an empty expression, stripped before output
	ExpressionKindEmptyExpr
	// ExpressionKindAssignTemporaryExpr - assignment to a temporary variable
	ExpressionKindAssignTemporaryExpr
	// ExpressionKindReadTemporaryExpr - read of a temporary variable
	ExpressionKindReadTemporaryExpr
	// ExpressionKindSlotLiteralExpr - emits the slot index of an op as a literal
	ExpressionKindSlotLiteralExpr
	// ExpressionKindConditionalCase - a test of a conditional op
	ExpressionKindConditionalCase
	// ExpressionKindConstCollected - an expression to be moved into the consts array
	ExpressionKindConstCollected
	// ExpressionKindTwoWayBindingSet - writes the value of a two-way binding
	ExpressionKindTwoWayBindingSet
	// ExpressionKindInterpolation - the string parts and expressions of an interpolation
	ExpressionKindInterpolation
)

// VariableFlags describes flags for variables
type VariableFlags int

const (
	// VariableFlagsNone - no flags
	VariableFlagsNone VariableFlags = 0
	// VariableFlagsAlwaysInline - inline the variable regardless of how often it is read
	VariableFlagsAlwaysInline VariableFlags = 0b0001
)

// SemanticVariableKind distinguishes between different kinds of SemanticVariables
type SemanticVariableKind int

const (
	// SemanticVariableKindContext - the context of a particular view
	SemanticVariableKindContext SemanticVariableKind = iota
	// SemanticVariableKindIdentifier - an identifier declared in the lexical scope of a view
	SemanticVariableKindIdentifier
	// SemanticVariableKindSavedView - a saved view that can be restored in a listener
	SemanticVariableKindSavedView
	// SemanticVariableKindAlias - an alias generated by a special embedded view type
	SemanticVariableKindAlias
)

// CompatibilityMode selects whether output must match the legacy template compiler
type CompatibilityMode int

const (
	// CompatibilityModeNormal - normal compilation
	CompatibilityModeNormal CompatibilityMode = iota
	// CompatibilityModeTemplateDefinitionBuilder - reproduce the legacy TemplateDefinitionBuilder output
	CompatibilityModeTemplateDefinitionBuilder
)

// BindingKind is the kind of attribute or binding applied to an element
type BindingKind int

const (
	// BindingKindAttribute - static attributes
	BindingKindAttribute BindingKind = iota
	// BindingKindClassName - class bindings
	BindingKindClassName
	// BindingKindStyleProperty - style bindings
	BindingKindStyleProperty
	// BindingKindProperty - dynamic property bindings
	BindingKindProperty
	// BindingKindTemplate - property or attribute bindings on a template
	BindingKindTemplate
	// BindingKindI18n - internationalized attributes
	BindingKindI18n
	// BindingKindTwoWayProperty - property side of a two-way binding
	BindingKindTwoWayProperty
)

// I18nParamResolutionTime is when an i18n param value is known
type I18nParamResolutionTime int

const (
	// I18nParamResolutionTimeCreation - resolved when the message is created
	I18nParamResolutionTimeCreation I18nParamResolutionTime = iota
	// I18nParamResolutionTimePostprocessing - resolved by `ɵɵi18nPostprocess`
	I18nParamResolutionTimePostprocessing
)

// I18nExpressionFor is what an i18n expression feeds
type I18nExpressionFor int

const (
	// I18nExpressionForI18nText - a value inside an i18n block
	I18nExpressionForI18nText I18nExpressionFor = iota
	// I18nExpressionForI18nAttribute - a value of an i18n attribute binding
	I18nExpressionForI18nAttribute
)

// I18nParamValueFlags describe what an i18n param value stands for
type I18nParamValueFlags int

const (
	// I18nParamValueFlagsNone - no flags
	I18nParamValueFlagsNone I18nParamValueFlags = 0
	// I18nParamValueFlagsElementTag - an element tag
	I18nParamValueFlagsElementTag I18nParamValueFlags = 0b1
	// I18nParamValueFlagsTemplateTag - a template tag
	I18nParamValueFlagsTemplateTag I18nParamValueFlags = 0b10
	// I18nParamValueFlagsOpenTag - the opening of a tag
	I18nParamValueFlagsOpenTag I18nParamValueFlags = 0b0100
	// I18nParamValueFlagsCloseTag - the closing of a tag
	I18nParamValueFlagsCloseTag I18nParamValueFlags = 0b1000
	// I18nParamValueFlagsExpressionIndex - an i18n expression index
	I18nParamValueFlagsExpressionIndex I18nParamValueFlags = 0b10000
)

// Namespace is the active element namespace
type Namespace int

const (
	// NamespaceHTML - HTML namespace
	NamespaceHTML Namespace = iota
	// NamespaceSVG - SVG namespace
	NamespaceSVG
	// NamespaceMath - MathML namespace
	NamespaceMath
)

// DeferTriggerKind is the type of a `@defer` trigger
type DeferTriggerKind int

const (
	DeferTriggerKindIdle DeferTriggerKind = iota
	DeferTriggerKindImmediate
	DeferTriggerKindTimer
	DeferTriggerKindHover
	DeferTriggerKindInteraction
	DeferTriggerKindViewport
	DeferTriggerKindNever
)

// I18nContextKind is the kind of an i18n context
type I18nContextKind int

const (
	// I18nContextKindRootI18n - the message of an i18n block
	I18nContextKindRootI18n I18nContextKind = iota
	// I18nContextKindIcu - the message of an ICU outside any i18n block
	I18nContextKindIcu
	// I18nContextKindAttr - the message of an i18n attribute
	I18nContextKindAttr
)

// TemplateKind is the kind of an embedded view declaration
type TemplateKind int

const (
	// TemplateKindNgTemplate - an explicit `<ng-template>`
	TemplateKindNgTemplate TemplateKind = iota
	// TemplateKindStructural - an element with a structural directive
	TemplateKindStructural
	// TemplateKindBlock - a control flow block
	TemplateKindBlock
)

// DeferOpModifierKind is the modifier of a `@defer` trigger
type DeferOpModifierKind int

const (
	DeferOpModifierKindNone DeferOpModifierKind = iota
	DeferOpModifierKindPrefetch
	DeferOpModifierKindHydrate
)

// TDeferDetailsFlags are flags of a `@defer` block passed to the runtime
type TDeferDetailsFlags int

const (
	TDeferDetailsFlagsDefault TDeferDetailsFlags = 0
	// TDeferDetailsFlagsHasHydrateTriggers - the block has hydrate triggers
	TDeferDetailsFlagsHasHydrateTriggers TDeferDetailsFlags = 1 << 0
)
