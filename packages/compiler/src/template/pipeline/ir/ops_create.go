package ir

import (
	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/util"
)

// LocalRef is a `#name="target"` reference on an element or template
type LocalRef struct {
	Name   string
	Target string
}

// ElementOrContainerOpBase is shared by ops that create elements, containers and templates
type ElementOrContainerOpBase struct {
	OpBase
	ConsumesSlotOpTrait

	// Attributes is the index of the element's attribute array in the consts, once collected
	Attributes *ConstIndex

	// LocalRefs are collected during ingestion and replaced by LocalRefsIndex when lifted
	LocalRefs      []LocalRef
	LocalRefsIndex *ConstIndex

	NonBindable     bool
	StartSourceSpan *util.ParseSourceSpan
	WholeSourceSpan *util.ParseSourceSpan
}

func newElementOrContainerOpBase(xref XrefId, startSpan, wholeSpan *util.ParseSourceSpan) ElementOrContainerOpBase {
	return ElementOrContainerOpBase{
		OpBase:              OpBase{SourceSpan: startSpan},
		ConsumesSlotOpTrait: NewConsumesSlotOpTrait(xref),
		StartSourceSpan:     startSpan,
		WholeSourceSpan:     wholeSpan,
	}
}

// GetElementOrContainerBase gives phases uniform access to element-like ops
func (b *ElementOrContainerOpBase) GetElementOrContainerBase() *ElementOrContainerOpBase { return b }

// ElementOrContainerOp is implemented by every op embedding ElementOrContainerOpBase
type ElementOrContainerOp interface {
	ConsumesSlotOp
	GetElementOrContainerBase() *ElementOrContainerOpBase
}

// ElementStartOp begins an element. When it has no children it is collapsed into an Element op
// by switching Kind.
type ElementStartOp struct {
	ElementOrContainerOpBase
	Kind            OpKind
	Tag             string
	Namespace       Namespace
	I18nPlaceholder *i18n.TagPlaceholder
}

func NewElementStartOp(tag string, xref XrefId, namespace Namespace, i18nPlaceholder *i18n.TagPlaceholder, startSpan, wholeSpan *util.ParseSourceSpan) *ElementStartOp {
	return &ElementStartOp{
		ElementOrContainerOpBase: newElementOrContainerOpBase(xref, startSpan, wholeSpan),
		Kind:                     OpKindElementStart,
		Tag:                      tag,
		Namespace:                namespace,
		I18nPlaceholder:          i18nPlaceholder,
	}
}

func (o *ElementStartOp) GetKind() OpKind { return o.Kind }

// ElementEndOp ends the element Xref
type ElementEndOp struct {
	OpBase
	Xref XrefId
}

func NewElementEndOp(xref XrefId, span *util.ParseSourceSpan) *ElementEndOp {
	return &ElementEndOp{OpBase: OpBase{SourceSpan: span}, Xref: xref}
}

func (*ElementEndOp) GetKind() OpKind { return OpKindElementEnd }

// ContainerStartOp begins an `ng-container`, collapsed into a Container op when empty
type ContainerStartOp struct {
	ElementOrContainerOpBase
	Kind OpKind
}

func NewContainerStartOp(xref XrefId, startSpan, wholeSpan *util.ParseSourceSpan) *ContainerStartOp {
	return &ContainerStartOp{
		ElementOrContainerOpBase: newElementOrContainerOpBase(xref, startSpan, wholeSpan),
		Kind:                     OpKindContainerStart,
	}
}

func (o *ContainerStartOp) GetKind() OpKind { return o.Kind }

// ContainerEndOp ends the container Xref
type ContainerEndOp struct {
	OpBase
	Xref XrefId
}

func NewContainerEndOp(xref XrefId, span *util.ParseSourceSpan) *ContainerEndOp {
	return &ContainerEndOp{OpBase: OpBase{SourceSpan: span}, Xref: xref}
}

func (*ContainerEndOp) GetKind() OpKind { return OpKindContainerEnd }

// TemplateOp declares an embedded view. The same payload serves `ng-template`, structural
// directives, and the branches of `@if`/`@switch` (ConditionalCreate, ConditionalBranchCreate).
type TemplateOp struct {
	ElementOrContainerOpBase
	Kind               OpKind
	TemplateKind       TemplateKind
	Tag                string
	FunctionNameSuffix string
	Namespace          Namespace

	// Decls and Vars are filled from the embedded view once counted
	Decls *int
	Vars  *int

	// I18nPlaceholder is a *i18n.TagPlaceholder or *i18n.BlockPlaceholder
	I18nPlaceholder i18n.Node
}

func NewTemplateOp(xref XrefId, templateKind TemplateKind, tag, functionNameSuffix string, namespace Namespace, i18nPlaceholder i18n.Node, startSpan, wholeSpan *util.ParseSourceSpan) *TemplateOp {
	return &TemplateOp{
		ElementOrContainerOpBase: newElementOrContainerOpBase(xref, startSpan, wholeSpan),
		Kind:                     OpKindTemplate,
		TemplateKind:             templateKind,
		Tag:                      tag,
		FunctionNameSuffix:       functionNameSuffix,
		Namespace:                namespace,
		I18nPlaceholder:          i18nPlaceholder,
	}
}

// NewConditionalCreateOp declares the view of a conditional branch. The first branch of a
// block uses ConditionalCreate, later ones ConditionalBranchCreate.
func NewConditionalCreateOp(xref XrefId, first bool, tag, functionNameSuffix string, i18nPlaceholder i18n.Node, startSpan, wholeSpan *util.ParseSourceSpan) *TemplateOp {
	op := NewTemplateOp(xref, TemplateKindBlock, tag, functionNameSuffix, NamespaceHTML, i18nPlaceholder, startSpan, wholeSpan)
	op.Kind = OpKindConditionalBranchCreate
	if first {
		op.Kind = OpKindConditionalCreate
	}
	return op
}

func (o *TemplateOp) GetKind() OpKind { return o.Kind }

// RepeaterVarNames are the identifiers a `@for` view exposes
type RepeaterVarNames struct {
	DollarIndex    []string
	DollarImplicit string
}

// RepeaterCreateOp declares the item view of a `@for` block and its optional empty view
type RepeaterCreateOp struct {
	ElementOrContainerOpBase
	ConsumesVarsTrait
	Tag string

	Decls *int
	Vars  *int

	EmptyView XrefId
	Track     output.OutputExpression

	// TrackByOps holds the statements of a non-trivial track function
	TrackByOps *OpList
	TrackByFn  output.OutputExpression

	VarNames              RepeaterVarNames
	UsesComponentInstance bool
	FunctionNameSuffix    string

	EmptyTag             string
	EmptyAttributes      *ConstIndex
	I18nPlaceholder      *i18n.BlockPlaceholder
	EmptyI18nPlaceholder *i18n.BlockPlaceholder
}

func NewRepeaterCreateOp(primaryView, emptyView XrefId, tag string, track output.OutputExpression, varNames RepeaterVarNames, emptyTag string, i18nPlaceholder, emptyI18nPlaceholder *i18n.BlockPlaceholder, startSpan, wholeSpan *util.ParseSourceSpan) *RepeaterCreateOp {
	op := &RepeaterCreateOp{
		ElementOrContainerOpBase: newElementOrContainerOpBase(primaryView, startSpan, wholeSpan),
		Tag:                      tag,
		EmptyView:                emptyView,
		Track:                    track,
		VarNames:                 varNames,
		FunctionNameSuffix:       "For",
		EmptyTag:                 emptyTag,
		I18nPlaceholder:          i18nPlaceholder,
		EmptyI18nPlaceholder:     emptyI18nPlaceholder,
	}
	// The repeater keeps its view and its LContainer, plus one more slot for the empty view.
	op.NumSlotsUsed = 2
	if emptyView != NoXref {
		op.NumSlotsUsed = 3
	}
	return op
}

func (*RepeaterCreateOp) GetKind() OpKind { return OpKindRepeaterCreate }

// TextOp creates a text node with a static initial value
type TextOp struct {
	OpBase
	ConsumesSlotOpTrait
	InitialValue   string
	IcuPlaceholder string
}

func NewTextOp(xref XrefId, initialValue, icuPlaceholder string, span *util.ParseSourceSpan) *TextOp {
	return &TextOp{
		OpBase:              OpBase{SourceSpan: span},
		ConsumesSlotOpTrait: NewConsumesSlotOpTrait(xref),
		InitialValue:        initialValue,
		IcuPlaceholder:      icuPlaceholder,
	}
}

func (*TextOp) GetKind() OpKind { return OpKindText }

// ListenerOp declares an event listener. Its body is a separate op list.
type ListenerOp struct {
	OpBase
	Target              XrefId
	TargetSlot          *SlotHandle
	Tag                 string
	HostListener        bool
	Name                string
	HandlerOps          *OpList
	HandlerFnName       string
	ConsumesDollarEvent bool

	// EventTarget is `window`, `document` or `body` for global listeners
	EventTarget string
}

func NewListenerOp(target XrefId, targetSlot *SlotHandle, name, tag string, handlerOps []Op, eventTarget string, hostListener bool, span *util.ParseSourceSpan) *ListenerOp {
	list := NewOpList(OpFamilyUpdate)
	list.Push(handlerOps...)
	return &ListenerOp{
		OpBase:       OpBase{SourceSpan: span},
		Target:       target,
		TargetSlot:   targetSlot,
		Tag:          tag,
		HostListener: hostListener,
		Name:         name,
		HandlerOps:   list,
		EventTarget:  eventTarget,
	}
}

func (*ListenerOp) GetKind() OpKind { return OpKindListener }

// TwoWayListenerOp is the event side of a `[(prop)]` binding
type TwoWayListenerOp struct {
	OpBase
	Target        XrefId
	TargetSlot    *SlotHandle
	Tag           string
	Name          string
	HandlerOps    *OpList
	HandlerFnName string
}

func NewTwoWayListenerOp(target XrefId, targetSlot *SlotHandle, name, tag string, handlerOps []Op, span *util.ParseSourceSpan) *TwoWayListenerOp {
	list := NewOpList(OpFamilyUpdate)
	list.Push(handlerOps...)
	return &TwoWayListenerOp{
		OpBase:     OpBase{SourceSpan: span},
		Target:     target,
		TargetSlot: targetSlot,
		Tag:        tag,
		Name:       name,
		HandlerOps: list,
	}
}

func (*TwoWayListenerOp) GetKind() OpKind { return OpKindTwoWayListener }

// PipeOp instantiates the pipe Name
type PipeOp struct {
	OpBase
	ConsumesSlotOpTrait
	Name string
}

func NewPipeOp(xref XrefId, slot *SlotHandle, name string) *PipeOp {
	return &PipeOp{
		OpBase:              OpBase{},
		ConsumesSlotOpTrait: ConsumesSlotOpTrait{Handle: slot, NumSlotsUsed: 1, Xref: xref},
		Name:                name,
	}
}

func (*PipeOp) GetKind() OpKind { return OpKindPipe }

// ExtractedAttributeOp records an attribute of Target for the consts array. Expression is nil
// for names that only matter for directive matching.
type ExtractedAttributeOp struct {
	OpBase
	Target          XrefId
	BindingKind     BindingKind
	Namespace       string
	Name            string
	Expression      output.OutputExpression
	I18nContext     XrefId
	I18nMessage     *i18n.Message
	SecurityContext []core.SecurityContext
	TrustedValueFn  output.OutputExpression
}

func NewExtractedAttributeOp(target XrefId, bindingKind BindingKind, namespace, name string, expression output.OutputExpression, i18nContext XrefId, i18nMessage *i18n.Message, securityContext []core.SecurityContext) *ExtractedAttributeOp {
	return &ExtractedAttributeOp{
		Target:          target,
		BindingKind:     bindingKind,
		Namespace:       namespace,
		Name:            name,
		Expression:      expression,
		I18nContext:     i18nContext,
		I18nMessage:     i18nMessage,
		SecurityContext: securityContext,
	}
}

func (*ExtractedAttributeOp) GetKind() OpKind { return OpKindExtractedAttribute }

// DeferOp configures a `@defer` block. The block's views are declared by TemplateOps right
// before it.
type DeferOp struct {
	OpBase
	ConsumesSlotOpTrait

	MainView        XrefId
	MainSlot        *SlotHandle
	LoadingView     XrefId
	LoadingSlot     *SlotHandle
	PlaceholderView XrefId
	PlaceholderSlot *SlotHandle
	ErrorView       XrefId
	ErrorSlot       *SlotHandle

	PlaceholderMinimumTime *int
	LoadingMinimumTime     *int
	LoadingAfterTime       *int

	PlaceholderConfig output.OutputExpression
	LoadingConfig     output.OutputExpression

	// OwnResolverFn is the dependency loader of this block, ResolverFn its shared replacement
	OwnResolverFn output.OutputExpression
	ResolverFn    output.OutputExpression

	Flags TDeferDetailsFlags
}

func NewDeferOp(xref, mainView XrefId, mainSlot *SlotHandle, ownResolverFn output.OutputExpression, span *util.ParseSourceSpan) *DeferOp {
	op := &DeferOp{
		OpBase:              OpBase{SourceSpan: span},
		ConsumesSlotOpTrait: NewConsumesSlotOpTrait(xref),
		MainView:            mainView,
		MainSlot:            mainSlot,
		LoadingView:         NoXref,
		PlaceholderView:     NoXref,
		ErrorView:           NoXref,
		OwnResolverFn:       ownResolverFn,
	}
	// The block itself and its runtime details.
	op.NumSlotsUsed = 2
	return op
}

func (*DeferOp) GetKind() OpKind { return OpKindDefer }

// DeferTrigger is the trigger of a DeferOnOp. Element triggers name a local reference
// resolved into TargetXref, TargetView and TargetSlotViewSteps.
type DeferTrigger struct {
	Kind DeferTriggerKind

	TargetName          string
	TargetXref          XrefId
	TargetSlot          *SlotHandle
	TargetView          XrefId
	TargetSlotViewSteps *int

	Delay int
}

// IsElementTrigger reports whether the trigger refers to an element
func (t *DeferTrigger) IsElementTrigger() bool {
	switch t.Kind {
	case DeferTriggerKindHover, DeferTriggerKindInteraction, DeferTriggerKindViewport:
		return true
	}
	return false
}

// DeferOnOp is an `on` trigger of the block Defer
type DeferOnOp struct {
	OpBase
	Defer    XrefId
	Trigger  *DeferTrigger
	Modifier DeferOpModifierKind
}

func NewDeferOnOp(deferXref XrefId, trigger *DeferTrigger, modifier DeferOpModifierKind, span *util.ParseSourceSpan) *DeferOnOp {
	if trigger.IsElementTrigger() {
		trigger.TargetXref = NoXref
		trigger.TargetView = NoXref
	}
	return &DeferOnOp{OpBase: OpBase{SourceSpan: span}, Defer: deferXref, Trigger: trigger, Modifier: modifier}
}

func (*DeferOnOp) GetKind() OpKind { return OpKindDeferOn }

// I18nStartOp begins an i18n block. Kind becomes I18n when the block is collapsed.
type I18nStartOp struct {
	OpBase
	ConsumesSlotOpTrait
	Kind OpKind

	// Root is the outermost block of a message split across views
	Root    XrefId
	Message *i18n.Message

	MessageIndex     *ConstIndex
	SubTemplateIndex *int
	Context          XrefId
}

func NewI18nStartOp(xref XrefId, message *i18n.Message, root XrefId, span *util.ParseSourceSpan) *I18nStartOp {
	if root == NoXref {
		root = xref
	}
	return &I18nStartOp{
		OpBase:              OpBase{SourceSpan: span},
		ConsumesSlotOpTrait: NewConsumesSlotOpTrait(xref),
		Kind:                OpKindI18nStart,
		Root:                root,
		Message:             message,
		Context:             NoXref,
	}
}

func (o *I18nStartOp) GetKind() OpKind { return o.Kind }

// I18nEndOp ends the i18n block Xref
type I18nEndOp struct {
	OpBase
	Xref XrefId
}

func NewI18nEndOp(xref XrefId, span *util.ParseSourceSpan) *I18nEndOp {
	return &I18nEndOp{OpBase: OpBase{SourceSpan: span}, Xref: xref}
}

func (*I18nEndOp) GetKind() OpKind { return OpKindI18nEnd }

// IcuStartOp begins an ICU expression
type IcuStartOp struct {
	OpBase
	Xref               XrefId
	Message            *i18n.Message
	MessagePlaceholder string
	Context            XrefId
}

func NewIcuStartOp(xref XrefId, message *i18n.Message, messagePlaceholder string, span *util.ParseSourceSpan) *IcuStartOp {
	return &IcuStartOp{OpBase: OpBase{SourceSpan: span}, Xref: xref, Message: message, MessagePlaceholder: messagePlaceholder, Context: NoXref}
}

func (*IcuStartOp) GetKind() OpKind { return OpKindIcuStart }

// IcuEndOp ends the ICU Xref
type IcuEndOp struct {
	OpBase
	Xref XrefId
}

func NewIcuEndOp(xref XrefId) *IcuEndOp {
	return &IcuEndOp{Xref: xref}
}

func (*IcuEndOp) GetKind() OpKind { return OpKindIcuEnd }

// IcuPlaceholderOp is a text placeholder inside an ICU. Strings interleave with the
// ExpressionPlaceholders, which are filled in by the i18n expressions of the placeholder.
type IcuPlaceholderOp struct {
	OpBase
	Xref                   XrefId
	Name                   string
	Strings                []string
	ExpressionPlaceholders []I18nParamValue
}

func NewIcuPlaceholderOp(xref XrefId, name string, strs []string) *IcuPlaceholderOp {
	return &IcuPlaceholderOp{Xref: xref, Name: name, Strings: strs}
}

func (*IcuPlaceholderOp) GetKind() OpKind { return OpKindIcuPlaceholder }

// I18nParamValue is one value of an i18n placeholder. Value is an int (slot or expression
// index), a string (sub-placeholder), or an I18nElementTemplateValue.
type I18nParamValue struct {
	Value            interface{}
	SubTemplateIndex *int
	Flags            I18nParamValueFlags
}

// I18nElementTemplateValue is the value of a placeholder standing for both an element and the
// template around it
type I18nElementTemplateValue struct {
	Element  int
	Template int
}

// I18nParamMap maps placeholder names to values, keeping insertion order
type I18nParamMap struct {
	keys   []string
	values map[string][]I18nParamValue
}

func NewI18nParamMap() *I18nParamMap {
	return &I18nParamMap{values: make(map[string][]I18nParamValue)}
}

// Add appends a value to a placeholder
func (m *I18nParamMap) Add(name string, value I18nParamValue) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = append(m.values[name], value)
}

// Get returns the values of a placeholder
func (m *I18nParamMap) Get(name string) []I18nParamValue { return m.values[name] }

// Keys returns placeholder names in insertion order
func (m *I18nParamMap) Keys() []string { return m.keys }

// Len returns the number of placeholders
func (m *I18nParamMap) Len() int { return len(m.keys) }

// I18nContextOp collects the params of one message: a root i18n block, an ICU outside i18n
// blocks, or an i18n attribute
type I18nContextOp struct {
	OpBase
	ContextKind            I18nContextKind
	Xref                   XrefId
	I18nBlock              XrefId
	Message                *i18n.Message
	Params                 *I18nParamMap
	PostprocessingParams   *I18nParamMap
	IcuPlaceholderLiterals map[string]output.OutputExpression
}

func NewI18nContextOp(kind I18nContextKind, xref, i18nBlock XrefId, message *i18n.Message, span *util.ParseSourceSpan) *I18nContextOp {
	if i18nBlock == NoXref && kind == I18nContextKindRootI18n {
		Assertf("i18n context of kind root must have an i18n block")
	}
	return &I18nContextOp{
		OpBase:                 OpBase{SourceSpan: span},
		ContextKind:            kind,
		Xref:                   xref,
		I18nBlock:              i18nBlock,
		Message:                message,
		Params:                 NewI18nParamMap(),
		PostprocessingParams:   NewI18nParamMap(),
		IcuPlaceholderLiterals: make(map[string]output.OutputExpression),
	}
}

func (*I18nContextOp) GetKind() OpKind { return OpKindI18nContext }

// I18nMessageParams are the formatted params of a message, in insertion order
type I18nMessageParams struct {
	Keys   []string
	Values map[string]output.OutputExpression
}

// Set assigns a param
func (p *I18nMessageParams) Set(name string, value output.OutputExpression) {
	if p.Values == nil {
		p.Values = make(map[string]output.OutputExpression)
	}
	if _, ok := p.Values[name]; !ok {
		p.Keys = append(p.Keys, name)
	}
	p.Values[name] = value
}

// I18nMessageOp is a message extracted into the consts array
type I18nMessageOp struct {
	OpBase
	Xref                 XrefId
	I18nContext          XrefId
	I18nBlock            XrefId
	Message              *i18n.Message
	MessagePlaceholder   string
	Params               I18nMessageParams
	PostprocessingParams I18nMessageParams
	NeedsPostprocessing  bool
	SubMessages          []XrefId
}

func NewI18nMessageOp(xref, i18nContext, i18nBlock XrefId, message *i18n.Message, messagePlaceholder string, params, postprocessingParams I18nMessageParams, needsPostprocessing bool) *I18nMessageOp {
	return &I18nMessageOp{
		Xref:                 xref,
		I18nContext:          i18nContext,
		I18nBlock:            i18nBlock,
		Message:              message,
		MessagePlaceholder:   messagePlaceholder,
		Params:               params,
		PostprocessingParams: postprocessingParams,
		NeedsPostprocessing:  needsPostprocessing,
	}
}

func (*I18nMessageOp) GetKind() OpKind { return OpKindI18nMessage }

// I18nAttributesOp configures the i18n attributes of the element Target
type I18nAttributesOp struct {
	OpBase
	ConsumesSlotOpTrait
	Target               XrefId
	I18nAttributesConfig *ConstIndex
}

func NewI18nAttributesOp(xref XrefId, handle *SlotHandle, target XrefId) *I18nAttributesOp {
	return &I18nAttributesOp{
		ConsumesSlotOpTrait: ConsumesSlotOpTrait{Handle: handle, NumSlotsUsed: 1, Xref: xref},
		Target:              target,
	}
}

func (*I18nAttributesOp) GetKind() OpKind { return OpKindI18nAttributes }

// NamespaceOp switches the namespace of the elements that follow
type NamespaceOp struct {
	OpBase
	Active Namespace
}

func NewNamespaceOp(active Namespace) *NamespaceOp {
	return &NamespaceOp{Active: active}
}

func (*NamespaceOp) GetKind() OpKind { return OpKindNamespace }

// ProjectionDefOp declares the projection slots of the component
type ProjectionDefOp struct {
	OpBase
	Def output.OutputExpression
}

func NewProjectionDefOp(def output.OutputExpression) *ProjectionDefOp {
	return &ProjectionDefOp{Def: def}
}

func (*ProjectionDefOp) GetKind() OpKind { return OpKindProjectionDef }

// ProjectionOp creates an `ng-content` slot, with an optional fallback view
type ProjectionOp struct {
	OpBase
	ConsumesSlotOpTrait
	ProjectionSlotIndex         int
	Attributes                  output.OutputExpression
	LocalRefs                   []string
	Selector                    string
	I18nPlaceholder             *i18n.TagPlaceholder
	FallbackView                XrefId
	FallbackViewI18nPlaceholder *i18n.BlockPlaceholder
}

func NewProjectionOp(xref XrefId, selector string, i18nPlaceholder *i18n.TagPlaceholder, fallbackView XrefId, span *util.ParseSourceSpan) *ProjectionOp {
	op := &ProjectionOp{
		OpBase:              OpBase{SourceSpan: span},
		ConsumesSlotOpTrait: NewConsumesSlotOpTrait(xref),
		Selector:            selector,
		I18nPlaceholder:     i18nPlaceholder,
		FallbackView:        fallbackView,
	}
	if fallbackView != NoXref {
		op.NumSlotsUsed = 2
	}
	return op
}

func (*ProjectionOp) GetKind() OpKind { return OpKindProjection }

// DeclareLetOp reserves the slot of a `@let` declaration
type DeclareLetOp struct {
	OpBase
	ConsumesSlotOpTrait
	DeclaredName string
}

func NewDeclareLetOp(xref XrefId, declaredName string, span *util.ParseSourceSpan) *DeclareLetOp {
	return &DeclareLetOp{
		OpBase:              OpBase{SourceSpan: span},
		ConsumesSlotOpTrait: NewConsumesSlotOpTrait(xref),
		DeclaredName:        declaredName,
	}
}

func (*DeclareLetOp) GetKind() OpKind { return OpKindDeclareLet }

// ElementSourceLocation is the template position of the element in slot TargetSlot
type ElementSourceLocation struct {
	TargetSlot *SlotHandle
	Offset     int
	Line       int
	Column     int
}

// SourceLocationOp attaches template locations to the elements of a view
type SourceLocationOp struct {
	OpBase
	TemplatePath string
	Locations    []ElementSourceLocation
}

func NewSourceLocationOp(templatePath string, locations []ElementSourceLocation) *SourceLocationOp {
	return &SourceLocationOp{TemplatePath: templatePath, Locations: locations}
}

func (*SourceLocationOp) GetKind() OpKind { return OpKindSourceLocation }

// DisableBindingsOp starts an `ngNonBindable` region
type DisableBindingsOp struct {
	OpBase
	Xref XrefId
}

func NewDisableBindingsOp(xref XrefId) *DisableBindingsOp {
	return &DisableBindingsOp{Xref: xref}
}

func (*DisableBindingsOp) GetKind() OpKind { return OpKindDisableBindings }

// EnableBindingsOp ends an `ngNonBindable` region
type EnableBindingsOp struct {
	OpBase
	Xref XrefId
}

func NewEnableBindingsOp(xref XrefId) *EnableBindingsOp {
	return &EnableBindingsOp{Xref: xref}
}

func (*EnableBindingsOp) GetKind() OpKind { return OpKindEnableBindings }
