package pipeline

import (
	"fmt"

	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/pool"
	"ngc-ir/packages/compiler/src/render3"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/util"
)

// ComponentMetadata holds the per-component inputs of a compilation
type ComponentMetadata struct {
	Name                 string
	// HostBindingsOnly marks a component without a template. Compile then produces no template
	// function and rejects any nodes it is given.
	HostBindingsOnly     bool
	RelativeTemplatePath string
	EnableDebugLocations bool
	Compatibility        ir.CompatibilityMode
	Mode                 compilation.TemplateCompilationMode
	I18nUseExternalIds   bool

	// Translations replaces extracted messages when set, following its strategy for messages
	// without a translation
	Translations *i18n.TranslationBundle

	DeferMeta compilation.DeferMeta
}

// SlotMetadata describes the data slots allocated to one op of a compiled view. The op owns
// the contiguous range [Slot, Slot+Size).
type SlotMetadata struct {
	Unit       ir.XrefId
	Xref       ir.XrefId
	Kind       string
	Name       string
	Slot       int
	Size       int
	SourceSpan *util.ParseSourceSpan
}

// CompileResult is the output of compiling one component
type CompileResult struct {
	TemplateFn     *output.FunctionExpr
	HostBindingsFn *output.FunctionExpr
	HostAttrs      *output.LiteralArrayExpr

	ContentSelectors   output.OutputExpression
	Consts             []output.OutputExpression
	ConstsInitializers []output.OutputStatement
	Decls              int
	Vars               int

	// Statements are the shared declarations of the constant pool, embedded view functions
	// included
	Statements []output.OutputStatement
	Slots      []SlotMetadata
	Warnings   []*util.ParseError
}

// Compile lowers a bound template into its template function. Internal consistency failures
// are returned as errors naming the component.
func Compile(nodes []render3.Node, meta ComponentMetadata) (result *CompileResult, err error) {
	defer recoverAssertion(meta.Name, &err)

	if meta.HostBindingsOnly {
		if len(nodes) > 0 {
			return nil, fmt.Errorf("compiling %s: component has host bindings only but a template of %d nodes", meta.Name, len(nodes))
		}
		return &CompileResult{}, nil
	}

	constantPool := pool.NewConstantPool()
	job := IngestComponent(meta.Name, nodes, constantPool, IngestOptions{
		Compatibility:        meta.Compatibility,
		Mode:                 meta.Mode,
		I18nUseExternalIds:   meta.I18nUseExternalIds,
		DeferMeta:            meta.DeferMeta,
		RelativeTemplatePath: meta.RelativeTemplatePath,
		EnableDebugLocations: meta.EnableDebugLocations,
	})
	job.Translations = meta.Translations

	var slots []SlotMetadata
	if err := transform(job, func() { slots = collectSlots(job) }); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", meta.Name, err)
	}

	result = &CompileResult{
		TemplateFn:         EmitTemplateFn(job),
		ContentSelectors:   job.ContentSelectors,
		Consts:             job.Consts,
		ConstsInitializers: job.ConstsInitializers,
		Slots:              slots,
		Warnings:           job.GetWarnings(),
	}
	if job.Root.Decls != nil {
		result.Decls = *job.Root.Decls
	}
	if vars := job.Root.GetVars(); vars != nil {
		result.Vars = *vars
	}
	result.Statements = constantPool.Statements()
	return result, nil
}

// CompileHostBindings lowers the host bindings of a component into its host binding function
func CompileHostBindings(input *HostBindingInput, meta ComponentMetadata) (result *CompileResult, err error) {
	defer recoverAssertion(meta.Name, &err)

	constantPool := pool.NewConstantPool()
	job := IngestHostBinding(input, constantPool, meta.Compatibility)
	if err := Transform(job); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", meta.Name, err)
	}

	result = &CompileResult{
		HostBindingsFn: EmitHostBindingFunction(job),
		HostAttrs:      job.Root.Attributes,
		Warnings:       job.GetWarnings(),
		Statements:     constantPool.Statements(),
	}
	if vars := job.Root.GetVars(); vars != nil {
		result.Vars = *vars
	}
	return result, nil
}

// recoverAssertion turns an assertion panic into an error. Other panics propagate.
func recoverAssertion(name string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	assertion, ok := r.(*ir.AssertionError)
	if !ok {
		panic(r)
	}
	*err = fmt.Errorf("compiling %s: %w", name, assertion)
}

func collectSlots(job *compilation.ComponentCompilationJob) []SlotMetadata {
	var slots []SlotMetadata
	for _, view := range job.ViewUnits() {
		for _, op := range view.GetCreate().All() {
			consumer, ok := op.(ir.ConsumesSlotOp)
			if !ok {
				continue
			}
			trait := consumer.GetConsumesSlotTrait()
			slots = append(slots, SlotMetadata{
				Unit:       view.Xref,
				Xref:       trait.Xref,
				Kind:       op.GetKind().String(),
				Name:       slotName(op),
				Slot:       trait.Handle.Slot(),
				Size:       trait.NumSlotsUsed,
				SourceSpan: op.GetSourceSpan(),
			})
		}
	}
	return slots
}

func slotName(op ir.Op) string {
	switch o := op.(type) {
	case *ir.ElementStartOp:
		return o.Tag
	case *ir.TemplateOp:
		return o.Tag
	case *ir.RepeaterCreateOp:
		return o.Tag
	case *ir.PipeOp:
		return o.Name
	case *ir.DeclareLetOp:
		return o.DeclaredName
	case *ir.ProjectionOp:
		return o.Selector
	}
	return ""
}
