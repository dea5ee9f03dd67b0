package pipeline

import (
	"fmt"
	"strings"

	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/expression_parser"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/pool"
	"ngc-ir/packages/compiler/src/render3"
	"ngc-ir/packages/compiler/src/schema"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/template/pipeline/src/conversion"
	"ngc-ir/packages/compiler/src/util"
)

// ngTemplateTagName is the tag name of the `ng-template` element
const ngTemplateTagName = "ng-template"

// animatePrefix marks animation attributes, which never take part in content projection
const animatePrefix = "animate."

// IngestOptions are the per-component settings of an ingestion
type IngestOptions struct {
	Compatibility        ir.CompatibilityMode
	Mode                 compilation.TemplateCompilationMode
	I18nUseExternalIds   bool
	DeferMeta            compilation.DeferMeta
	RelativeTemplatePath string
	EnableDebugLocations bool
}

// IngestComponent converts a bound template into a ComponentCompilationJob in the intermediate
// representation
func IngestComponent(componentName string, template []render3.Node, constantPool *pool.ConstantPool, opts IngestOptions) *compilation.ComponentCompilationJob {
	job := compilation.NewComponentCompilationJob(
		componentName,
		constantPool,
		opts.Compatibility,
		opts.Mode,
		opts.I18nUseExternalIds,
		opts.DeferMeta,
		opts.RelativeTemplatePath,
		opts.EnableDebugLocations,
	)
	ingestNodes(job.Root, template)
	return job
}

// HostProperty is a host property binding. Names carry their `attr.`, `class.` or `style.`
// prefix.
type HostProperty struct {
	Name       string
	Value      expression_parser.AST
	SourceSpan *util.ParseSourceSpan
}

// HostAttribute is a static host attribute
type HostAttribute struct {
	Name  string
	Value output.OutputExpression
}

// HostBindingInput describes the host bindings of a component or directive
type HostBindingInput struct {
	ComponentName     string
	ComponentSelector string
	Properties        []*HostProperty
	Attributes        []*HostAttribute
	Events            []*render3.BoundEvent
}

// IngestHostBinding converts the host bindings of a component into a HostBindingCompilationJob
func IngestHostBinding(input *HostBindingInput, constantPool *pool.ConstantPool, compatibility ir.CompatibilityMode) *compilation.HostBindingCompilationJob {
	job := compilation.NewHostBindingCompilationJob(input.ComponentName, constantPool, compatibility, compilation.TemplateCompilationModeDomOnly)
	for _, property := range input.Properties {
		bindingKind := ir.BindingKindProperty
		name := property.Name
		if strings.HasPrefix(name, "attr.") {
			name = name[len("attr."):]
			bindingKind = ir.BindingKindAttribute
		}
		securityContexts := hostSecurityContexts(name, bindingKind == ir.BindingKindAttribute)
		ingestHostProperty(job, property, name, bindingKind, securityContexts)
	}
	for _, attr := range input.Attributes {
		securityContexts := hostSecurityContexts(attr.Name, true)
		// Host attributes are always extracted into the host attrs, even when they are not
		// strictly text literals.
		job.Root.GetUpdate().Push(ir.NewBindingOp(
			job.Root.Xref,
			ir.BindingKindAttribute,
			attr.Name,
			attr.Value,
			"",
			securityContexts,
			true,
			false,
			nil,
			nil,
			attr.Value.GetSourceSpan(),
		))
	}
	for _, event := range input.Events {
		job.Root.GetCreate().Push(ir.NewListenerOp(
			job.Root.Xref,
			ir.NewSlotHandle(),
			event.Name,
			"",
			makeListenerHandlerOps(job, event.Handler, event.HandlerSpan),
			event.Target,
			true,
			event.SourceSpan,
		))
	}
	return job
}

// hostSecurityContexts lists the contexts a host binding may write into. The host element is
// not known at compile time, so every element defining the property counts.
func hostSecurityContexts(name string, isAttribute bool) []core.SecurityContext {
	var contexts []core.SecurityContext
	for _, ctx := range schema.PossibleSecurityContexts(name, isAttribute) {
		if ctx != core.SecurityContextNONE {
			contexts = append(contexts, ctx)
		}
	}
	return contexts
}

func ingestHostProperty(job *compilation.HostBindingCompilationJob, property *HostProperty, name string, bindingKind ir.BindingKind, securityContexts []core.SecurityContext) {
	var expression output.OutputExpression
	if interpolation, ok := property.Value.(*expression_parser.Interpolation); ok {
		expression = ir.NewInterpolation(interpolation.Strings, convertExpressions(job, interpolation.Expressions), nil)
	} else {
		expression = convertAst(job, property.Value)
	}
	job.Root.GetUpdate().Push(ir.NewBindingOp(
		job.Root.Xref,
		bindingKind,
		name,
		expression,
		"",
		securityContexts,
		false,
		false,
		nil,
		nil,
		property.SourceSpan,
	))
}

// ingestNodes ingests the nodes of a template AST into the given ViewCompilationUnit
func ingestNodes(unit *compilation.ViewCompilationUnit, template []render3.Node) {
	for _, node := range template {
		switch n := node.(type) {
		case *render3.Element:
			ingestElement(unit, n)
		case *render3.Template:
			ingestTemplate(unit, n)
		case *render3.Content:
			ingestContent(unit, n)
		case *render3.Text:
			ingestText(unit, n, "")
		case *render3.BoundText:
			ingestBoundText(unit, n, "")
		case *render3.IfBlock:
			ingestIfBlock(unit, n)
		case *render3.SwitchBlock:
			ingestSwitchBlock(unit, n)
		case *render3.DeferredBlock:
			ingestDeferBlock(unit, n)
		case *render3.Icu:
			ingestIcu(unit, n)
		case *render3.ForLoopBlock:
			ingestForBlock(unit, n)
		case *render3.LetDeclaration:
			ingestLetDeclaration(unit, n)
		case *render3.Comment:
			// Comments produce no instructions.
		default:
			ir.Assertf("unsupported template node: %T", node)
		}
	}
}

// ingestElement ingests an element AST from the template into the given ViewCompilationUnit
func ingestElement(unit *compilation.ViewCompilationUnit, element *render3.Element) {
	switch element.I18n.(type) {
	case nil, *i18n.Message, *i18n.TagPlaceholder:
	default:
		ir.Assertf("unhandled i18n metadata type for element: %T", element.I18n)
	}

	id := unit.Job.AllocateXrefId()
	namespaceKey, elementName := conversion.SplitNsName(element.Name)

	placeholder, _ := element.I18n.(*i18n.TagPlaceholder)
	startOp := ir.NewElementStartOp(
		elementName,
		id,
		conversion.NamespaceForKey(namespaceKey),
		placeholder,
		element.StartSourceSpan,
		element.SourceSpan,
	)
	unit.GetCreate().Push(startOp)

	ingestElementBindings(unit, startOp, element)
	ingestReferences(&startOp.ElementOrContainerOpBase, element.References)

	// Start i18n, if needed, goes after the element create and bindings, but before the nodes
	i18nBlockID := ir.NoXref
	if msg, ok := element.I18n.(*i18n.Message); ok {
		i18nBlockID = unit.Job.AllocateXrefId()
		unit.GetCreate().Push(ir.NewI18nStartOp(i18nBlockID, msg, ir.NoXref, element.StartSourceSpan))
	}

	ingestNodes(unit, element.Children)

	// Void elements such as `<input>` have no closing tag, so the start span stands in for it.
	endSourceSpan := element.EndSourceSpan
	if endSourceSpan == nil {
		endSourceSpan = element.StartSourceSpan
	}
	endOp := ir.NewElementEndOp(id, endSourceSpan)
	unit.GetCreate().Push(endOp)

	if i18nBlockID != ir.NoXref {
		unit.GetCreate().InsertBefore(ir.NewI18nEndOp(i18nBlockID, endSourceSpan), endOp)
	}
}

// ingestTemplate ingests an `ng-template` node from the AST into the given ViewCompilationUnit
func ingestTemplate(unit *compilation.ViewCompilationUnit, tmpl *render3.Template) {
	switch tmpl.I18n.(type) {
	case nil, *i18n.Message, *i18n.TagPlaceholder:
	default:
		ir.Assertf("unhandled i18n metadata type for template: %T", tmpl.I18n)
	}

	childView := unit.Job.AllocateView(unit.Xref)

	namespacePrefix, tagNameWithoutNamespace := conversion.SplitNsName(tmpl.TagName)
	namespace := conversion.NamespaceForKey(namespacePrefix)

	functionNameSuffix := ""
	if tagNameWithoutNamespace != "" {
		functionNameSuffix = conversion.PrefixWithNamespace(tagNameWithoutNamespace, namespace)
	}

	templateKind := ir.TemplateKindStructural
	if isPlainTemplate(tmpl) {
		templateKind = ir.TemplateKindNgTemplate
	}

	var i18nPlaceholder i18n.Node
	if placeholder, ok := tmpl.I18n.(*i18n.TagPlaceholder); ok {
		i18nPlaceholder = placeholder
	}

	templateOp := ir.NewTemplateOp(
		childView.Xref,
		templateKind,
		tagNameWithoutNamespace,
		functionNameSuffix,
		namespace,
		i18nPlaceholder,
		tmpl.StartSourceSpan,
		tmpl.SourceSpan,
	)
	unit.GetCreate().Push(templateOp)

	ingestTemplateBindings(unit, templateOp, tmpl, templateKind)
	ingestReferences(&templateOp.ElementOrContainerOpBase, tmpl.References)
	ingestNodes(childView, tmpl.Children)

	for _, variable := range tmpl.Variables {
		value := variable.Value
		if value == "" {
			value = "$implicit"
		}
		childView.SetContextVariable(variable.Name, value)
	}

	// Structural templates get their i18n ops from the element the directive is placed on.
	if msg, ok := tmpl.I18n.(*i18n.Message); ok && templateKind == ir.TemplateKindNgTemplate {
		id := unit.Job.AllocateXrefId()
		endSpan := tmpl.EndSourceSpan
		if endSpan == nil {
			endSpan = tmpl.StartSourceSpan
		}
		childView.GetCreate().Prepend([]ir.Op{ir.NewI18nStartOp(id, msg, ir.NoXref, tmpl.StartSourceSpan)})
		childView.GetCreate().Push(ir.NewI18nEndOp(id, endSpan))
	}
}

// ingestContent ingests an `ng-content` node into the given ViewCompilationUnit
func ingestContent(unit *compilation.ViewCompilationUnit, content *render3.Content) {
	switch content.I18n.(type) {
	case nil, *i18n.TagPlaceholder:
	default:
		ir.Assertf("unhandled i18n metadata type for ng-content: %T", content.I18n)
	}

	// Fallback content made only of blank text and comments is not captured. The fallback view
	// is ingested before the projection to match the runtime insertion order.
	fallbackXref := ir.NoXref
	if hasNonEmptyContent(content.Children) {
		fallbackView := unit.Job.AllocateView(unit.Xref)
		ingestNodes(fallbackView, content.Children)
		fallbackXref = fallbackView.Xref
	}

	placeholder, _ := content.I18n.(*i18n.TagPlaceholder)
	op := ir.NewProjectionOp(unit.Job.AllocateXrefId(), content.Selector, placeholder, fallbackXref, content.SourceSpan)
	for _, attr := range content.Attributes {
		securityContext := schema.SecurityContextFor("ng-content", attr.Name, true)
		unit.GetUpdate().Push(ir.NewBindingOp(
			op.Xref,
			ir.BindingKindAttribute,
			attr.Name,
			output.NewLiteralExpr(attr.Value, nil),
			"",
			[]core.SecurityContext{securityContext},
			true,
			false,
			nil,
			asMessage(attr.I18n),
			attr.SourceSpan,
		))
	}
	unit.GetCreate().Push(op)
}

func hasNonEmptyContent(children []render3.Node) bool {
	for _, child := range children {
		switch c := child.(type) {
		case *render3.Comment:
		case *render3.Text:
			if strings.TrimSpace(c.Value) != "" {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// ingestText ingests a literal text node from the AST into the given ViewCompilationUnit
func ingestText(unit *compilation.ViewCompilationUnit, text *render3.Text, icuPlaceholder string) {
	unit.GetCreate().Push(ir.NewTextOp(unit.Job.AllocateXrefId(), text.Value, icuPlaceholder, text.SourceSpan))
}

// ingestBoundText ingests an interpolated text node from the AST into the given ViewCompilationUnit
func ingestBoundText(unit *compilation.ViewCompilationUnit, text *render3.BoundText, icuPlaceholder string) {
	interpolation, ok := text.Value.(*expression_parser.Interpolation)
	if !ok {
		ir.Assertf("expected Interpolation for BoundText node, got %T", text.Value)
	}

	var i18nPlaceholders []string
	switch meta := text.I18n.(type) {
	case nil:
	case *i18n.Container:
		for _, node := range meta.Children {
			if placeholder, ok := node.(*i18n.Placeholder); ok {
				i18nPlaceholders = append(i18nPlaceholders, placeholder.Name)
			}
		}
	default:
		ir.Assertf("unhandled i18n metadata type for text interpolation: %T", text.I18n)
	}

	if len(i18nPlaceholders) > 0 && len(i18nPlaceholders) != len(interpolation.Expressions) {
		ir.Assertf("unexpected number of i18n placeholders (%d) for BoundText with %d expressions", len(i18nPlaceholders), len(interpolation.Expressions))
	}

	textXref := unit.Job.AllocateXrefId()
	unit.GetCreate().Push(ir.NewTextOp(textXref, "", icuPlaceholder, text.SourceSpan))
	unit.GetUpdate().Push(ir.NewInterpolateTextOp(
		textXref,
		ir.NewInterpolation(interpolation.Strings, convertExpressions(unit.Job, interpolation.Expressions), i18nPlaceholders),
		text.SourceSpan,
	))
}

// ingestIfBlock ingests an `@if` block into the given ViewCompilationUnit
func ingestIfBlock(unit *compilation.ViewCompilationUnit, ifBlock *render3.IfBlock) {
	firstXref := ir.NoXref
	var conditions []*ir.ConditionalCaseExpr

	for i, ifCase := range ifBlock.Branches {
		cView := unit.Job.AllocateView(unit.Xref)
		tagName := ingestControlFlowInsertionPoint(unit, cView.Xref, ifCase.Children)

		var alias *ir.IdentifierVariable
		if ifCase.ExpressionAlias != nil {
			cView.SetContextVariable(ifCase.ExpressionAlias.Name, ir.CtxRef)
			alias = ir.NewIdentifierVariable(ifCase.ExpressionAlias.Name, false)
		}

		createOp := ir.NewConditionalCreateOp(cView.Xref, i == 0, tagName, "Conditional", blockPlaceholder(ifCase.I18n, "@if"), ifCase.SourceSpan, ifCase.SourceSpan)
		unit.GetCreate().Push(createOp)

		if firstXref == ir.NoXref {
			firstXref = cView.Xref
		}

		var caseExpr output.OutputExpression
		if ifCase.Expression != nil {
			caseExpr = convertAst(unit.Job, ifCase.Expression)
		}
		conditions = append(conditions, ir.NewConditionalCaseExpr(caseExpr, createOp.Xref, createOp.Handle, alias))
		ingestNodes(cView, ifCase.Children)
	}

	if firstXref == ir.NoXref {
		return
	}
	unit.GetUpdate().Push(ir.NewConditionalOp(firstXref, nil, conditions, ifBlock.SourceSpan))
}

// ingestSwitchBlock ingests a `@switch` block into the given ViewCompilationUnit
func ingestSwitchBlock(unit *compilation.ViewCompilationUnit, switchBlock *render3.SwitchBlock) {
	// Empty switches render nothing.
	if len(switchBlock.Cases) == 0 {
		return
	}

	firstXref := ir.NoXref
	var conditions []*ir.ConditionalCaseExpr

	for i, switchCase := range switchBlock.Cases {
		cView := unit.Job.AllocateView(unit.Xref)
		tagName := ingestControlFlowInsertionPoint(unit, cView.Xref, switchCase.Children)

		createOp := ir.NewConditionalCreateOp(cView.Xref, i == 0, tagName, "Case", blockPlaceholder(switchCase.I18n, "@switch"), switchCase.SourceSpan, switchCase.SourceSpan)
		unit.GetCreate().Push(createOp)

		if firstXref == ir.NoXref {
			firstXref = cView.Xref
		}

		var caseExpr output.OutputExpression
		if switchCase.Expression != nil {
			caseExpr = convertAst(unit.Job, switchCase.Expression)
		}
		conditions = append(conditions, ir.NewConditionalCaseExpr(caseExpr, createOp.Xref, createOp.Handle, nil))
		ingestNodes(cView, switchCase.Children)
	}

	unit.GetUpdate().Push(ir.NewConditionalOp(firstXref, convertAst(unit.Job, switchBlock.Expression), conditions, switchBlock.SourceSpan))
}

// blockPlaceholder checks the i18n metadata of a control flow block, which can only stand for
// the block inside an enclosing message
func blockPlaceholder(meta i18n.I18nMeta, block string) i18n.Node {
	switch m := meta.(type) {
	case nil:
		return nil
	case *i18n.BlockPlaceholder:
		return m
	}
	ir.Assertf("unhandled i18n metadata type for %s: %T", block, meta)
	return nil
}

// ingestControlFlowInsertionPoint copies the tag name and static attributes of the single root
// element of a control flow block onto the block's template, so that content projection can
// match it. It returns the tag name, or an empty string when there is no single root.
func ingestControlFlowInsertionPoint(unit *compilation.ViewCompilationUnit, xref ir.XrefId, children []render3.Node) string {
	var root render3.Node
	for _, child := range children {
		// Comments and `@let` declarations don't end up in the DOM.
		switch child.(type) {
		case *render3.Comment, *render3.LetDeclaration:
			continue
		}
		if root != nil {
			return ""
		}
		switch c := child.(type) {
		case *render3.Element:
			root = c
		case *render3.Template:
			if c.TagName == "" {
				return ""
			}
			root = c
		default:
			return ""
		}
	}
	if root == nil {
		return ""
	}

	var tagName string
	var attributes []*render3.TextAttribute
	var inputs []*render3.BoundAttribute
	switch r := root.(type) {
	case *render3.Element:
		tagName, attributes, inputs = r.Name, r.Attributes, r.Inputs
	case *render3.Template:
		tagName, attributes, inputs = r.TagName, r.Attributes, r.Inputs
	}

	for _, attr := range attributes {
		if strings.HasPrefix(attr.Name, animatePrefix) {
			continue
		}
		securityContext := schema.SecurityContextFor(ngTemplateTagName, attr.Name, true)
		unit.GetUpdate().Push(ir.NewBindingOp(
			xref,
			ir.BindingKindAttribute,
			attr.Name,
			output.NewLiteralExpr(attr.Value, nil),
			"",
			[]core.SecurityContext{securityContext},
			true,
			false,
			nil,
			asMessage(attr.I18n),
			attr.SourceSpan,
		))
	}

	// Inputs take part in content projection as well.
	for _, input := range inputs {
		if input.Type == expression_parser.BindingTypeAttribute {
			continue
		}
		securityContext := schema.SecurityContextFor(ngTemplateTagName, input.Name, true)
		unit.GetCreate().Push(ir.NewExtractedAttributeOp(
			xref,
			ir.BindingKindProperty,
			"",
			input.Name,
			nil,
			ir.NoXref,
			nil,
			[]core.SecurityContext{securityContext},
		))
	}

	// The `ng-template` tag name would enable directive matching.
	if tagName == ngTemplateTagName {
		return ""
	}
	return tagName
}

// ingestDeferView creates the view of one part of a `@defer` block. It returns nil when the
// part is absent.
func ingestDeferView(unit *compilation.ViewCompilationUnit, suffix string, i18nMeta i18n.I18nMeta, children []render3.Node, sourceSpan *util.ParseSourceSpan) *ir.TemplateOp {
	placeholder := blockPlaceholder(i18nMeta, "@defer")
	if children == nil {
		return nil
	}
	secondaryView := unit.Job.AllocateView(unit.Xref)
	ingestNodes(secondaryView, children)
	templateOp := ir.NewTemplateOp(
		secondaryView.Xref,
		ir.TemplateKindBlock,
		"",
		"Defer"+suffix,
		ir.NamespaceHTML,
		placeholder,
		sourceSpan,
		sourceSpan,
	)
	unit.GetCreate().Push(templateOp)
	return templateOp
}

func hasTriggers(triggers render3.DeferredBlockTriggers) bool {
	return triggers.When != nil || triggers.Idle != nil || triggers.Immediate != nil ||
		triggers.Hover != nil || triggers.Timer != nil || triggers.Interaction != nil ||
		triggers.Viewport != nil || triggers.Never != nil
}

// ingestDeferBlock ingests a `@defer` block into the given ViewCompilationUnit
func ingestDeferBlock(unit *compilation.ViewCompilationUnit, deferBlock *render3.DeferredBlock) {
	job := unit.Job

	var ownResolverFn output.OutputExpression
	if job.DeferMeta.Mode == compilation.DeferMetaModePerBlock && job.DeferMeta.ResolveBlockDependencyFn != nil {
		ownResolverFn = job.DeferMeta.ResolveBlockDependencyFn(deferBlock)
	}

	children := deferBlock.Children
	if children == nil {
		children = []render3.Node{}
	}
	main := ingestDeferView(unit, "", deferBlock.I18n, children, deferBlock.SourceSpan)

	var loading, placeholder, errorView *ir.TemplateOp
	if deferBlock.Loading != nil {
		loading = ingestDeferView(unit, "Loading", deferBlock.Loading.I18n, nonNil(deferBlock.Loading.Children), deferBlock.Loading.SourceSpan)
	}
	if deferBlock.Placeholder != nil {
		placeholder = ingestDeferView(unit, "Placeholder", deferBlock.Placeholder.I18n, nonNil(deferBlock.Placeholder.Children), deferBlock.Placeholder.SourceSpan)
	}
	if deferBlock.Error != nil {
		errorView = ingestDeferView(unit, "Error", deferBlock.Error.I18n, nonNil(deferBlock.Error.Children), deferBlock.Error.SourceSpan)
	}

	deferXref := job.AllocateXrefId()
	deferOp := ir.NewDeferOp(deferXref, main.Xref, main.Handle, ownResolverFn, deferBlock.SourceSpan)
	if job.DeferMeta.Mode == compilation.DeferMetaModePerComponent {
		deferOp.ResolverFn = job.DeferMeta.AllDeferrableDepsFn
	}
	if placeholder != nil {
		deferOp.PlaceholderView = placeholder.Xref
		deferOp.PlaceholderSlot = placeholder.Handle
		deferOp.PlaceholderMinimumTime = deferBlock.Placeholder.MinimumTime
	}
	if loading != nil {
		deferOp.LoadingView = loading.Xref
		deferOp.LoadingSlot = loading.Handle
		deferOp.LoadingMinimumTime = deferBlock.Loading.MinimumTime
		deferOp.LoadingAfterTime = deferBlock.Loading.AfterTime
	}
	if errorView != nil {
		deferOp.ErrorView = errorView.Xref
		deferOp.ErrorSlot = errorView.Handle
	}
	if hasTriggers(deferBlock.HydrateTriggers) {
		deferOp.Flags = ir.TDeferDetailsFlagsHasHydrateTriggers
	}
	unit.GetCreate().Push(deferOp)

	// Hydrate triggers come first since they set up all the other triggers during SSR.
	var onOps, whenOps []ir.Op
	onOps, whenOps = ingestDeferTriggers(job, ir.DeferOpModifierKindHydrate, deferBlock.HydrateTriggers, onOps, whenOps, deferXref)
	onOps, whenOps = ingestDeferTriggers(job, ir.DeferOpModifierKindNone, deferBlock.Triggers, onOps, whenOps, deferXref)
	onOps, whenOps = ingestDeferTriggers(job, ir.DeferOpModifierKindPrefetch, deferBlock.PrefetchTriggers, onOps, whenOps, deferXref)

	// Without a plain trigger the block loads on idle.
	hasConcreteTrigger := false
	for _, op := range onOps {
		if op.(*ir.DeferOnOp).Modifier == ir.DeferOpModifierKindNone {
			hasConcreteTrigger = true
		}
	}
	for _, op := range whenOps {
		if op.(*ir.DeferWhenOp).Modifier == ir.DeferOpModifierKindNone {
			hasConcreteTrigger = true
		}
	}
	if !hasConcreteTrigger {
		onOps = append(onOps, ir.NewDeferOnOp(deferXref, &ir.DeferTrigger{Kind: ir.DeferTriggerKindIdle}, ir.DeferOpModifierKindNone, nil))
	}

	unit.GetCreate().Push(onOps...)
	unit.GetUpdate().Push(whenOps...)
}

func nonNil(children []render3.Node) []render3.Node {
	if children == nil {
		return []render3.Node{}
	}
	return children
}

func ingestDeferTriggers(job *compilation.ComponentCompilationJob, modifier ir.DeferOpModifierKind, triggers render3.DeferredBlockTriggers, onOps, whenOps []ir.Op, deferXref ir.XrefId) ([]ir.Op, []ir.Op) {
	on := func(trigger *ir.DeferTrigger, span *util.ParseSourceSpan) {
		onOps = append(onOps, ir.NewDeferOnOp(deferXref, trigger, modifier, span))
	}
	if t := triggers.Idle; t != nil {
		on(&ir.DeferTrigger{Kind: ir.DeferTriggerKindIdle}, t.SourceSpan)
	}
	if t := triggers.Immediate; t != nil {
		on(&ir.DeferTrigger{Kind: ir.DeferTriggerKindImmediate}, t.SourceSpan)
	}
	if t := triggers.Timer; t != nil {
		on(&ir.DeferTrigger{Kind: ir.DeferTriggerKindTimer, Delay: t.Delay}, t.SourceSpan)
	}
	if t := triggers.Hover; t != nil {
		on(&ir.DeferTrigger{Kind: ir.DeferTriggerKindHover, TargetName: t.Reference}, t.SourceSpan)
	}
	if t := triggers.Interaction; t != nil {
		on(&ir.DeferTrigger{Kind: ir.DeferTriggerKindInteraction, TargetName: t.Reference}, t.SourceSpan)
	}
	if t := triggers.Viewport; t != nil {
		on(&ir.DeferTrigger{Kind: ir.DeferTriggerKindViewport, TargetName: t.Reference}, t.SourceSpan)
	}
	if t := triggers.Never; t != nil {
		on(&ir.DeferTrigger{Kind: ir.DeferTriggerKindNever}, t.SourceSpan)
	}
	if t := triggers.When; t != nil {
		if _, ok := t.Value.(*expression_parser.Interpolation); ok {
			ir.Assertf("unexpected interpolation in defer block when trigger")
		}
		whenOps = append(whenOps, ir.NewDeferWhenOp(deferXref, convertAst(job, t.Value), modifier, t.SourceSpan))
	}
	return onOps, whenOps
}

// ingestIcu ingests an ICU that is a message of its own. ICUs nested in a larger message are
// handled by the enclosing i18n block.
func ingestIcu(unit *compilation.ViewCompilationUnit, icu *render3.Icu) {
	msg, ok := icu.I18n.(*i18n.Message)
	if !ok || !isSingleI18nIcu(msg) {
		ir.Assertf("unhandled i18n metadata type for ICU: %T", icu.I18n)
	}
	xref := unit.Job.AllocateXrefId()
	icuPlaceholder := msg.Nodes[0].(*i18n.IcuPlaceholder)
	unit.GetCreate().Push(ir.NewIcuStartOp(xref, msg, icuPlaceholder.Name, nil))
	for _, entries := range [][]render3.IcuEntry{icu.Vars, icu.Placeholders} {
		for _, entry := range entries {
			switch text := entry.Node.(type) {
			case *render3.BoundText:
				ingestBoundText(unit, text, entry.Name)
			case *render3.Text:
				ingestText(unit, text, entry.Name)
			default:
				ir.Assertf("unexpected node in ICU placeholder: %T", entry.Node)
			}
		}
	}
	unit.GetCreate().Push(ir.NewIcuEndOp(xref))
}

// isSingleI18nIcu reports whether the message is made of a single ICU
func isSingleI18nIcu(msg *i18n.Message) bool {
	if len(msg.Nodes) != 1 {
		return false
	}
	_, ok := msg.Nodes[0].(*i18n.IcuPlaceholder)
	return ok
}

// forLoopVariableExpression computes a context variable of an `@for` view from the loop's
// index and count
func forLoopVariableExpression(variable *render3.Variable, indexName, countName string) output.OutputExpression {
	index := func() output.OutputExpression { return ir.NewLexicalReadExpr(indexName, nil) }
	switch variable.Value {
	case "$index":
		return index()
	case "$count":
		return ir.NewLexicalReadExpr(countName, nil)
	case "$first":
		return output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, index(), output.Literal(0), nil)
	case "$last":
		countMinusOne := output.NewBinaryOperatorExpr(output.BinaryOperatorMinus, ir.NewLexicalReadExpr(countName, nil), output.Literal(1), nil)
		return output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, index(), countMinusOne, nil)
	case "$even":
		modulo := output.NewBinaryOperatorExpr(output.BinaryOperatorModulo, index(), output.Literal(2), nil)
		return output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, modulo, output.Literal(0), nil)
	case "$odd":
		modulo := output.NewBinaryOperatorExpr(output.BinaryOperatorModulo, index(), output.Literal(2), nil)
		return output.NewBinaryOperatorExpr(output.BinaryOperatorNotIdentical, modulo, output.Literal(0), nil)
	}
	ir.Assertf("unknown @for loop variable %s", variable.Value)
	return nil
}

// ingestForBlock ingests an `@for` block into the given ViewCompilationUnit
func ingestForBlock(unit *compilation.ViewCompilationUnit, forBlock *render3.ForLoopBlock) {
	repeaterView := unit.Job.AllocateView(unit.Xref)

	// `$index` and `$count` get names suffixed with the view, telling nested loops apart.
	indexName := fmt.Sprintf("ɵ$index_%d", repeaterView.Xref)
	countName := fmt.Sprintf("ɵ$count_%d", repeaterView.Xref)
	var indexVarNames []string
	seenIndexNames := map[string]bool{}

	itemName := ""
	if forBlock.Item != nil {
		itemName = forBlock.Item.Name
		value := forBlock.Item.Value
		if value == "" {
			value = "$implicit"
		}
		repeaterView.SetContextVariable(itemName, value)
	}

	for _, variable := range forBlock.ContextVariables {
		if variable.Value == "$index" && !seenIndexNames[variable.Name] {
			seenIndexNames[variable.Name] = true
			indexVarNames = append(indexVarNames, variable.Name)
		}
		switch variable.Name {
		case "$index":
			repeaterView.SetContextVariable("$index", variable.Value)
			repeaterView.SetContextVariable(indexName, variable.Value)
		case "$count":
			repeaterView.SetContextVariable("$count", variable.Value)
			repeaterView.SetContextVariable(countName, variable.Value)
		default:
			repeaterView.Aliases = append(repeaterView.Aliases, ir.NewAliasVariable(
				variable.Name,
				forLoopVariableExpression(variable, indexName, countName),
			))
		}
	}

	track := convertAst(unit.Job, forBlock.TrackBy)
	ingestNodes(repeaterView, forBlock.Children)

	emptyXref := ir.NoXref
	emptyTagName := ""
	var emptyI18nPlaceholder *i18n.BlockPlaceholder
	if forBlock.Empty != nil {
		emptyView := unit.Job.AllocateView(unit.Xref)
		ingestNodes(emptyView, forBlock.Empty.Children)
		emptyTagName = ingestControlFlowInsertionPoint(unit, emptyView.Xref, forBlock.Empty.Children)
		emptyXref = emptyView.Xref
		if p := blockPlaceholder(forBlock.Empty.I18n, "@empty"); p != nil {
			emptyI18nPlaceholder = p.(*i18n.BlockPlaceholder)
		}
	}

	var i18nPlaceholder *i18n.BlockPlaceholder
	if p := blockPlaceholder(forBlock.I18n, "@for"); p != nil {
		i18nPlaceholder = p.(*i18n.BlockPlaceholder)
	}

	tagName := ingestControlFlowInsertionPoint(unit, repeaterView.Xref, forBlock.Children)
	repeaterCreate := ir.NewRepeaterCreateOp(
		repeaterView.Xref,
		emptyXref,
		tagName,
		track,
		ir.RepeaterVarNames{DollarIndex: indexVarNames, DollarImplicit: itemName},
		emptyTagName,
		i18nPlaceholder,
		emptyI18nPlaceholder,
		forBlock.SourceSpan,
		forBlock.SourceSpan,
	)
	unit.GetCreate().Push(repeaterCreate)

	unit.GetUpdate().Push(ir.NewRepeaterOp(
		repeaterCreate.Xref,
		repeaterCreate.Handle,
		convertAst(unit.Job, forBlock.Expression),
		forBlock.SourceSpan,
	))
}

func ingestLetDeclaration(unit *compilation.ViewCompilationUnit, node *render3.LetDeclaration) {
	target := unit.Job.AllocateXrefId()
	unit.GetCreate().Push(ir.NewDeclareLetOp(target, node.Name, node.SourceSpan))
	unit.GetUpdate().Push(ir.NewStoreLetOp(target, node.Name, convertAst(unit.Job, node.Value), node.SourceSpan))
}

// makeListenerHandlerOps turns a handler into statements: every expression of a chain is
// evaluated and the last one is returned
func makeListenerHandlerOps(job compilation.CompilationJob, handler expression_parser.AST, handlerSpan *util.ParseSourceSpan) []ir.Op {
	handlerExprs := []expression_parser.AST{handler}
	if chain, ok := handler.(*expression_parser.Chain); ok {
		handlerExprs = chain.Expressions
	}
	if len(handlerExprs) == 0 {
		ir.Assertf("expected listener to have non-empty expression list")
	}

	expressions := convertExpressions(job, handlerExprs)
	returnExpr := expressions[len(expressions)-1]
	var handlerOps []ir.Op
	for _, expr := range expressions[:len(expressions)-1] {
		handlerOps = append(handlerOps, ir.NewStatementOp(output.NewExpressionStatement(expr, expr.GetSourceSpan())))
	}
	span := returnExpr.GetSourceSpan()
	if span == nil {
		span = handlerSpan
	}
	handlerOps = append(handlerOps, ir.NewStatementOp(output.NewReturnStatement(returnExpr, span)))
	return handlerOps
}

// makeTwoWayListenerHandlerOps assigns `$event` to the bound expression and returns it
func makeTwoWayListenerHandlerOps(job compilation.CompilationJob, handler expression_parser.AST, handlerSpan *util.ParseSourceSpan) []ir.Op {
	if chain, ok := handler.(*expression_parser.Chain); ok {
		if len(chain.Expressions) != 1 {
			ir.Assertf("expected two-way listener to have a single expression")
		}
		handler = chain.Expressions[0]
	}

	handlerExpr := convertAst(job, handler)
	eventReference := ir.NewLexicalReadExpr("$event", nil)
	twoWaySetExpr := ir.NewTwoWayBindingSetExpr(handlerExpr, eventReference)
	return []ir.Op{
		ir.NewStatementOp(output.NewExpressionStatement(twoWaySetExpr, handlerSpan)),
		ir.NewStatementOp(output.NewReturnStatement(eventReference, handlerSpan)),
	}
}

// bindingKinds maps the parsed binding types to IR binding kinds
var bindingKinds = map[expression_parser.BindingType]ir.BindingKind{
	expression_parser.BindingTypeProperty:  ir.BindingKindProperty,
	expression_parser.BindingTypeTwoWay:    ir.BindingKindTwoWayProperty,
	expression_parser.BindingTypeAttribute: ir.BindingKindAttribute,
	expression_parser.BindingTypeClass:     ir.BindingKindClassName,
	expression_parser.BindingTypeStyle:     ir.BindingKindStyleProperty,
}

// ingestElementBindings converts the attributes, inputs and outputs of an element
func ingestElementBindings(unit *compilation.ViewCompilationUnit, op *ir.ElementStartOp, element *render3.Element) {
	var bindings []*ir.BindingOp
	i18nAttributeBindingNames := map[string]bool{}

	for _, attr := range element.Attributes {
		securityContext := schema.SecurityContextFor(element.Name, attr.Name, true)
		bindings = append(bindings, ir.NewBindingOp(
			op.Xref,
			ir.BindingKindAttribute,
			attr.Name,
			convertTextWithInterpolation(attr.Value),
			"",
			[]core.SecurityContext{securityContext},
			true,
			false,
			nil,
			asMessage(attr.I18n),
			attr.SourceSpan,
		))
		if attr.I18n != nil {
			i18nAttributeBindingNames[attr.Name] = true
		}
	}

	for _, input := range element.Inputs {
		if i18nAttributeBindingNames[input.Name] {
			unit.Job.AddWarning(util.NewParseWarning(input.SourceSpan, fmt.Sprintf(
				"On component %s, the binding %s is both an i18n attribute and a property. You may want to remove the property binding.",
				unit.Job.ComponentName, input.Name,
			)))
		}
		bindings = append(bindings, ir.NewBindingOp(
			op.Xref,
			bindingKinds[input.Type],
			input.Name,
			convertAstWithInterpolation(unit.Job, input.Value, input.I18n),
			input.Unit,
			[]core.SecurityContext{input.SecurityContext},
			false,
			false,
			nil,
			asMessage(input.I18n),
			input.SourceSpan,
		))
	}

	hasI18nMessage := false
	for _, binding := range bindings {
		unit.GetUpdate().Push(binding)
		if binding.I18nMessage != nil {
			hasI18nMessage = true
		}
	}

	for _, out := range element.Outputs {
		ingestListener(unit, op.Xref, op.Handle, op.Tag, out)
	}

	// i18n attributes need a configuration op of their own.
	if hasI18nMessage {
		unit.GetCreate().Push(ir.NewI18nAttributesOp(unit.Job.AllocateXrefId(), ir.NewSlotHandle(), op.Xref))
	}
}

func ingestListener(unit *compilation.ViewCompilationUnit, target ir.XrefId, handle *ir.SlotHandle, tag string, event *render3.BoundEvent) {
	if event.Type == expression_parser.ParsedEventTypeTwoWay {
		unit.GetCreate().Push(ir.NewTwoWayListenerOp(
			target,
			handle,
			event.Name,
			tag,
			makeTwoWayListenerHandlerOps(unit.Job, event.Handler, event.HandlerSpan),
			event.SourceSpan,
		))
		return
	}
	unit.GetCreate().Push(ir.NewListenerOp(
		target,
		handle,
		event.Name,
		tag,
		makeListenerHandlerOps(unit.Job, event.Handler, event.HandlerSpan),
		event.Target,
		false,
		event.SourceSpan,
	))
}

// ingestTemplateBindings converts the bindings of a template. Bindings of a structural template
// belong to the element inside it, so most only reach the consts for directive matching.
func ingestTemplateBindings(unit *compilation.ViewCompilationUnit, op *ir.TemplateOp, template *render3.Template, templateKind ir.TemplateKind) {
	var bindings []ir.Op

	add := func(binding ir.Op) {
		if binding != nil {
			bindings = append(bindings, binding)
		}
	}

	for _, attr := range template.TemplateAttrs {
		switch a := attr.(type) {
		case *render3.TextAttribute:
			securityContext := schema.SecurityContextFor(ngTemplateTagName, a.Name, true)
			add(createTemplateBinding(unit, op.Xref, expression_parser.BindingTypeAttribute, a.Name, nil, a.Value, "", securityContext, true, templateKind, asMessage(a.I18n), a.SourceSpan))
		case *render3.BoundAttribute:
			add(createTemplateBinding(unit, op.Xref, a.Type, a.Name, a.Value, "", a.Unit, a.SecurityContext, true, templateKind, asMessage(a.I18n), a.SourceSpan))
		default:
			ir.Assertf("unexpected template attribute: %T", attr)
		}
	}

	for _, attr := range template.Attributes {
		securityContext := schema.SecurityContextFor(ngTemplateTagName, attr.Name, true)
		add(createTemplateBinding(unit, op.Xref, expression_parser.BindingTypeAttribute, attr.Name, nil, attr.Value, "", securityContext, false, templateKind, asMessage(attr.I18n), attr.SourceSpan))
	}

	for _, input := range template.Inputs {
		add(createTemplateBinding(unit, op.Xref, input.Type, input.Name, input.Value, "", input.Unit, input.SecurityContext, false, templateKind, asMessage(input.I18n), input.SourceSpan))
	}

	hasI18nMessage := false
	for _, binding := range bindings {
		switch b := binding.(type) {
		case *ir.ExtractedAttributeOp:
			unit.GetCreate().Push(b)
			hasI18nMessage = hasI18nMessage || b.I18nMessage != nil
		case *ir.BindingOp:
			unit.GetUpdate().Push(b)
			hasI18nMessage = hasI18nMessage || b.I18nMessage != nil
		}
	}

	for _, out := range template.Outputs {
		if templateKind == ir.TemplateKindNgTemplate {
			ingestListener(unit, op.Xref, op.Handle, op.Tag, out)
			continue
		}
		// Outputs of a structural template belong to the inner element; the template only
		// records their names for directive matching.
		securityContext := schema.SecurityContextFor(ngTemplateTagName, out.Name, false)
		unit.GetCreate().Push(ir.NewExtractedAttributeOp(op.Xref, ir.BindingKindProperty, "", out.Name, nil, ir.NoXref, nil, []core.SecurityContext{securityContext}))
	}

	if hasI18nMessage {
		unit.GetCreate().Push(ir.NewI18nAttributesOp(unit.Job.AllocateXrefId(), ir.NewSlotHandle(), op.Xref))
	}
}

// createTemplateBinding creates the op for one binding of a template. value is used for bound
// attributes and text for static ones. It returns nil when the binding produces nothing.
func createTemplateBinding(
	view *compilation.ViewCompilationUnit,
	xref ir.XrefId,
	bindingType expression_parser.BindingType,
	name string,
	value expression_parser.AST,
	text string,
	unit string,
	securityContext core.SecurityContext,
	isStructuralTemplateAttribute bool,
	templateKind ir.TemplateKind,
	i18nMessage *i18n.Message,
	sourceSpan *util.ParseSourceSpan,
) ir.Op {
	isTextBinding := value == nil
	securityContexts := []core.SecurityContext{securityContext}

	if templateKind == ir.TemplateKindStructural {
		if !isStructuralTemplateAttribute {
			switch bindingType {
			case expression_parser.BindingTypeProperty, expression_parser.BindingTypeClass, expression_parser.BindingTypeStyle:
				// The binding targets an inner node of the structural template. It must still
				// appear in the template's consts for directive matching, without an update
				// instruction.
				return ir.NewExtractedAttributeOp(xref, ir.BindingKindProperty, "", name, nil, ir.NoXref, i18nMessage, securityContexts)
			case expression_parser.BindingTypeTwoWay:
				return ir.NewExtractedAttributeOp(xref, ir.BindingKindTwoWayProperty, "", name, nil, ir.NoXref, i18nMessage, securityContexts)
			}
		}
		// Non-text attributes of the inner element don't show up on the template at all.
		if !isTextBinding && bindingType == expression_parser.BindingTypeAttribute {
			return nil
		}
	}

	bindingKind := bindingKinds[bindingType]
	if templateKind == ir.TemplateKindNgTemplate {
		// Class, style and dynamic attribute bindings make little sense on an explicit
		// `ng-template`; they are emitted as properties.
		if bindingType == expression_parser.BindingTypeClass || bindingType == expression_parser.BindingTypeStyle ||
			(bindingType == expression_parser.BindingTypeAttribute && !isTextBinding) {
			bindingKind = ir.BindingKindProperty
		}
	}

	var expression output.OutputExpression
	if isTextBinding {
		expression = convertTextWithInterpolation(text)
	} else {
		expression = convertAstWithInterpolation(view.Job, value, i18nMessage)
	}

	kind := templateKind
	return ir.NewBindingOp(
		xref,
		bindingKind,
		name,
		expression,
		unit,
		securityContexts,
		isTextBinding,
		isStructuralTemplateAttribute,
		&kind,
		i18nMessage,
		sourceSpan,
	)
}

func ingestReferences(op *ir.ElementOrContainerOpBase, references []*render3.Reference) {
	for _, ref := range references {
		op.LocalRefs = append(op.LocalRefs, ir.LocalRef{Name: ref.Name, Target: ref.Value})
	}
}

// asMessage returns the i18n metadata of an attribute, which is either absent or a message
func asMessage(meta i18n.I18nMeta) *i18n.Message {
	if meta == nil {
		return nil
	}
	msg, ok := meta.(*i18n.Message)
	if !ok {
		ir.Assertf("expected i18n meta to be a Message, got %T", meta)
	}
	return msg
}

func isPlainTemplate(tmpl *render3.Template) bool {
	_, name := conversion.SplitNsName(tmpl.TagName)
	return name == ngTemplateTagName
}

func convertExpressions(job compilation.CompilationJob, expressions []expression_parser.AST) []output.OutputExpression {
	result := make([]output.OutputExpression, len(expressions))
	for i, expr := range expressions {
		result[i] = convertAst(job, expr)
	}
	return result
}

// convertTextWithInterpolation converts the value of a static attribute
func convertTextWithInterpolation(value string) output.OutputExpression {
	return output.NewLiteralExpr(value, nil)
}

// convertAstWithInterpolation converts a bound value, which may be an interpolation whose
// parts are named by the placeholders of the attribute's message
func convertAstWithInterpolation(job compilation.CompilationJob, value expression_parser.AST, meta i18n.I18nMeta) output.OutputExpression {
	interpolation, ok := value.(*expression_parser.Interpolation)
	if !ok {
		return convertAst(job, value)
	}
	var placeholders []string
	if msg := asMessage(meta); msg != nil {
		placeholders = messagePlaceholderNames(msg.Nodes, map[string]bool{})
	}
	return ir.NewInterpolation(interpolation.Strings, convertExpressions(job, interpolation.Expressions), placeholders)
}

// messagePlaceholderNames lists the expression placeholders of a message in source order
func messagePlaceholderNames(nodes []i18n.Node, seen map[string]bool) []string {
	var names []string
	for _, node := range nodes {
		switch n := node.(type) {
		case *i18n.Placeholder:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *i18n.Container:
			names = append(names, messagePlaceholderNames(n.Children, seen)...)
		case *i18n.TagPlaceholder:
			names = append(names, messagePlaceholderNames(n.Children, seen)...)
		case *i18n.BlockPlaceholder:
			names = append(names, messagePlaceholderNames(n.Children, seen)...)
		}
	}
	return names
}

// convertAst converts a bound expression into an output expression. Reads through the implicit
// receiver become lexical reads, resolved later against the view's scope.
func convertAst(job compilation.CompilationJob, ast expression_parser.AST) output.OutputExpression {
	span := ast.GetSourceSpan()
	switch a := ast.(type) {
	case *expression_parser.PropertyRead:
		if _, ok := a.Receiver.(*expression_parser.ImplicitReceiver); ok {
			return ir.NewLexicalReadExpr(a.Name, span)
		}
		return output.NewReadPropExpr(convertAst(job, a.Receiver), a.Name, span)
	case *expression_parser.Call:
		if _, ok := a.Receiver.(*expression_parser.ImplicitReceiver); ok {
			ir.Assertf("unexpected ImplicitReceiver")
		}
		return output.NewInvokeFunctionExpr(convertAst(job, a.Receiver), convertExpressions(job, a.Args), span, false)
	case *expression_parser.LiteralPrimitive:
		return output.NewLiteralExpr(a.Value, span)
	case *expression_parser.Unary:
		switch a.Operator {
		case "+":
			return output.NewUnaryOperatorExpr(output.UnaryOperatorPlus, convertAst(job, a.Expr), span)
		case "-":
			return output.NewUnaryOperatorExpr(output.UnaryOperatorMinus, convertAst(job, a.Expr), span)
		}
		ir.Assertf("unknown unary operator %s", a.Operator)
	case *expression_parser.Binary:
		operator, ok := conversion.BinaryOperators[a.Operation]
		if !ok {
			ir.Assertf("unknown binary operator %s", a.Operation)
		}
		return output.NewBinaryOperatorExpr(operator, convertAst(job, a.Left), convertAst(job, a.Right), span)
	case *expression_parser.ThisReceiver:
		return ir.NewContextExpr(job.GetRoot().GetXref())
	case *expression_parser.ImplicitReceiver:
		return ir.NewContextExpr(job.GetRoot().GetXref())
	case *expression_parser.KeyedRead:
		return output.NewReadKeyExpr(convertAst(job, a.Receiver), convertAst(job, a.Key), span)
	case *expression_parser.Chain:
		ir.Assertf("chain in unknown context")
	case *expression_parser.LiteralMap:
		entries := make([]*output.LiteralMapEntry, len(a.Keys))
		for i, key := range a.Keys {
			entries[i] = output.NewLiteralMapEntry(key.Key, convertAst(job, a.Values[i]), key.Quoted)
		}
		return output.NewLiteralMapExpr(entries, span)
	case *expression_parser.LiteralArray:
		return output.NewLiteralArrayExpr(convertExpressions(job, a.Expressions), span)
	case *expression_parser.Conditional:
		return output.NewConditionalExpr(convertAst(job, a.Condition), convertAst(job, a.TrueExp), convertAst(job, a.FalseExp), span)
	case *expression_parser.NonNullAssert:
		// A non-null assertion doesn't change the generated instructions.
		return convertAst(job, a.Expression)
	case *expression_parser.BindingPipe:
		args := append([]output.OutputExpression{convertAst(job, a.Exp)}, convertExpressions(job, a.Args)...)
		return ir.NewPipeBindingExpr(job.AllocateXrefId(), ir.NewSlotHandle(), a.Name, args)
	case *expression_parser.SafeKeyedRead:
		return ir.NewSafeKeyedReadExpr(convertAst(job, a.Receiver), convertAst(job, a.Key), span)
	case *expression_parser.SafePropertyRead:
		return ir.NewSafePropertyReadExpr(convertAst(job, a.Receiver), a.Name, span)
	case *expression_parser.SafeCall:
		return ir.NewSafeInvokeFunctionExpr(convertAst(job, a.Receiver), convertExpressions(job, a.Args))
	case *expression_parser.EmptyExpr:
		return ir.NewEmptyExpr(span)
	case *expression_parser.PrefixNot:
		return output.NewNotExpr(convertAst(job, a.Expression), span)
	case *expression_parser.TypeofExpression:
		return output.NewTypeofExpr(convertAst(job, a.Expression), span)
	case *expression_parser.ParenthesizedExpression:
		// The printer parenthesizes by precedence.
		return convertAst(job, a.Expression)
	case *expression_parser.Interpolation:
		ir.Assertf("interpolation in unknown context")
	default:
		ir.Assertf("unhandled expression type %T at %s", ast, span)
	}
	return nil
}
