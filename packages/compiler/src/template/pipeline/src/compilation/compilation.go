package compilation

import (
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/pool"
	"ngc-ir/packages/compiler/src/render3"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/util"
)

// CompilationJobKind represents the kind of compilation job
type CompilationJobKind int

const (
	// CompilationJobKindTmpl - Template compilation
	CompilationJobKindTmpl CompilationJobKind = iota
	// CompilationJobKindHost - Host binding compilation
	CompilationJobKindHost
	// CompilationJobKindBoth - A special value used to indicate that some logic applies to both compilation types
	CompilationJobKindBoth
)

// TemplateCompilationMode represents possible modes in which a component's template can be compiled
type TemplateCompilationMode int

const (
	// TemplateCompilationModeFull - Supports the full instruction set, including directives
	TemplateCompilationModeFull TemplateCompilationMode = iota
	// TemplateCompilationModeDomOnly - Uses a narrower instruction set that doesn't support directives and allows optimizations
	TemplateCompilationModeDomOnly
)

// CompilationJob is an entire ongoing compilation, which will result in one or more template functions when complete.
// Contains one or more corresponding compilation units.
type CompilationJob interface {
	GetKind() CompilationJobKind
	GetComponentName() string
	GetPool() *pool.ConstantPool
	GetCompatibility() ir.CompatibilityMode
	GetMode() TemplateCompilationMode
	AllocateXrefId() ir.XrefId
	GetUnits() []CompilationUnit
	GetRoot() CompilationUnit
	GetFnSuffix() string
	AddWarning(warning *util.ParseError)
	GetWarnings() []*util.ParseError
	// Fail records a policy failure that stops the job after the current phase
	Fail(err error)
	Err() error
}

// JobBase holds the state shared by every kind of job. It is owned by exactly one job and
// never shared, so no locking is needed.
type JobBase struct {
	ComponentName string
	Pool          *pool.ConstantPool
	Compatibility ir.CompatibilityMode
	Mode          TemplateCompilationMode
	Kind          CompilationJobKind
	Warnings      []*util.ParseError
	nextXrefId    ir.XrefId
	err           error
}

func (j *JobBase) GetKind() CompilationJobKind { return j.Kind }

func (j *JobBase) GetComponentName() string { return j.ComponentName }

func (j *JobBase) GetPool() *pool.ConstantPool { return j.Pool }

func (j *JobBase) GetCompatibility() ir.CompatibilityMode { return j.Compatibility }

func (j *JobBase) GetMode() TemplateCompilationMode { return j.Mode }

// AllocateXrefId generates a new unique `ir.XrefId` in this job
func (j *JobBase) AllocateXrefId() ir.XrefId {
	id := j.nextXrefId
	j.nextXrefId++
	return id
}

// NextXrefId returns the id the next allocation will return, bounding every id in the job
func (j *JobBase) NextXrefId() ir.XrefId { return j.nextXrefId }

func (j *JobBase) AddWarning(warning *util.ParseError) { j.Warnings = append(j.Warnings, warning) }

func (j *JobBase) GetWarnings() []*util.ParseError { return j.Warnings }

// Fail keeps the first failure of the job
func (j *JobBase) Fail(err error) {
	if j.err == nil {
		j.err = err
	}
}

func (j *JobBase) Err() error { return j.err }

// DeferMetaMode tells how the dependencies of `@defer` blocks are resolved
type DeferMetaMode int

const (
	// DeferMetaModePerBlock - each block has its own dependency function
	DeferMetaModePerBlock DeferMetaMode = iota
	// DeferMetaModePerComponent - all blocks share one dependency function of the component
	DeferMetaModePerComponent
)

// DeferMeta describes the deferred dependencies of a component
type DeferMeta struct {
	Mode DeferMetaMode

	// ResolveBlockDependencyFn returns the dependency loader of a block, or nil if the block has
	// no deferred dependencies
	ResolveBlockDependencyFn func(block *render3.DeferredBlock) output.OutputExpression

	// AllDeferrableDepsFn is used in per-component mode
	AllDeferrableDepsFn output.OutputExpression
}

// ComponentCompilationJob is compilation-in-progress of a whole component's template,
// including the main template and any embedded views or host bindings.
type ComponentCompilationJob struct {
	JobBase
	Root      *ViewCompilationUnit
	Views     map[ir.XrefId]*ViewCompilationUnit
	viewOrder []ir.XrefId

	ContentSelectors   output.OutputExpression
	Consts             []output.OutputExpression
	ConstsInitializers []output.OutputStatement

	I18nUseExternalIds   bool
	Translations         *i18n.TranslationBundle
	DeferMeta            DeferMeta
	RelativeTemplatePath string
	EnableDebugLocations bool
}

// NewComponentCompilationJob creates a new ComponentCompilationJob
func NewComponentCompilationJob(
	componentName string,
	constantPool *pool.ConstantPool,
	compatibility ir.CompatibilityMode,
	mode TemplateCompilationMode,
	i18nUseExternalIds bool,
	deferMeta DeferMeta,
	relativeTemplatePath string,
	enableDebugLocations bool,
) *ComponentCompilationJob {
	job := &ComponentCompilationJob{
		JobBase: JobBase{
			ComponentName: componentName,
			Pool:          constantPool,
			Compatibility: compatibility,
			Mode:          mode,
			Kind:          CompilationJobKindTmpl,
		},
		Views:                make(map[ir.XrefId]*ViewCompilationUnit),
		I18nUseExternalIds:   i18nUseExternalIds,
		DeferMeta:            deferMeta,
		RelativeTemplatePath: relativeTemplatePath,
		EnableDebugLocations: enableDebugLocations,
	}
	job.Root = job.newView(nil)
	return job
}

func (j *ComponentCompilationJob) newView(parent *ir.XrefId) *ViewCompilationUnit {
	view := NewViewCompilationUnit(j, j.AllocateXrefId(), parent)
	j.Views[view.Xref] = view
	j.viewOrder = append(j.viewOrder, view.Xref)
	return view
}

// AllocateView adds a `ViewCompilationUnit` for a new embedded view to this compilation
func (j *ComponentCompilationJob) AllocateView(parent ir.XrefId) *ViewCompilationUnit {
	return j.newView(&parent)
}

// View returns the view with the given xref and panics if there is none
func (j *ComponentCompilationJob) View(xref ir.XrefId) *ViewCompilationUnit {
	view, ok := j.Views[xref]
	if !ok {
		ir.Assertf("unknown view xref %d", xref)
	}
	return view
}

// GetUnits returns all view compilation units in creation order
func (j *ComponentCompilationJob) GetUnits() []CompilationUnit {
	units := make([]CompilationUnit, 0, len(j.viewOrder))
	for _, xref := range j.viewOrder {
		units = append(units, j.Views[xref])
	}
	return units
}

// ViewUnits returns the views in creation order
func (j *ComponentCompilationJob) ViewUnits() []*ViewCompilationUnit {
	views := make([]*ViewCompilationUnit, 0, len(j.viewOrder))
	for _, xref := range j.viewOrder {
		views = append(views, j.Views[xref])
	}
	return views
}

// GetRoot returns the root view compilation unit
func (j *ComponentCompilationJob) GetRoot() CompilationUnit {
	return j.Root
}

// GetFnSuffix returns the function suffix for template compilation
func (j *ComponentCompilationJob) GetFnSuffix() string {
	return "Template"
}

// AddConst adds a constant `o.Expression` to the compilation and returns its index in the `consts` array.
// Equivalent constants share an index.
func (j *ComponentCompilationJob) AddConst(newConst output.OutputExpression, initializers []output.OutputStatement) ir.ConstIndex {
	for idx := 0; idx < len(j.Consts); idx++ {
		if j.Consts[idx].IsEquivalent(newConst) {
			return ir.ConstIndex(idx)
		}
	}
	idx := len(j.Consts)
	j.Consts = append(j.Consts, newConst)
	j.ConstsInitializers = append(j.ConstsInitializers, initializers...)
	return ir.ConstIndex(idx)
}

// CompilationUnit is compiled into a template function. Some example units are views and host bindings.
type CompilationUnit interface {
	GetXref() ir.XrefId
	GetJob() CompilationJob
	GetCreate() *ir.OpList
	GetUpdate() *ir.OpList
	GetFnName() string
	SetFnName(name string)
	GetVars() *int
	SetVars(vars int)
	// Ops lists every op of the unit, including listener and track function bodies
	Ops() []ir.Op
}

type unitBase struct {
	Xref   ir.XrefId
	create *ir.OpList
	update *ir.OpList
	fnName string
	vars   *int
}

func newUnitBase(xref ir.XrefId) unitBase {
	return unitBase{
		Xref:   xref,
		create: ir.NewOpList(ir.OpFamilyCreate),
		update: ir.NewOpList(ir.OpFamilyUpdate),
	}
}

func (u *unitBase) GetXref() ir.XrefId { return u.Xref }

func (u *unitBase) GetCreate() *ir.OpList { return u.create }

func (u *unitBase) GetUpdate() *ir.OpList { return u.update }

func (u *unitBase) GetFnName() string { return u.fnName }

func (u *unitBase) SetFnName(name string) { u.fnName = name }

func (u *unitBase) GetVars() *int { return u.vars }

func (u *unitBase) SetVars(vars int) { u.vars = &vars }

func (u *unitBase) Ops() []ir.Op {
	var ops []ir.Op
	for _, op := range u.create.All() {
		ops = append(ops, op)
		switch o := op.(type) {
		case *ir.ListenerOp:
			ops = append(ops, o.HandlerOps.All()...)
		case *ir.TwoWayListenerOp:
			ops = append(ops, o.HandlerOps.All()...)
		case *ir.RepeaterCreateOp:
			if o.TrackByOps != nil {
				ops = append(ops, o.TrackByOps.All()...)
			}
		}
	}
	return append(ops, u.update.All()...)
}

// ContextVariable maps an identifier of a view to a property of its context
type ContextVariable struct {
	Name  string
	Value string
}

// ViewCompilationUnit is the compilation of a single view of a component: the root template or
// an embedded view.
type ViewCompilationUnit struct {
	unitBase
	Job    *ComponentCompilationJob
	Parent *ir.XrefId

	// ContextVariables are the identifiers the view reads from its context, in declaration order
	ContextVariables []ContextVariable

	// Aliases are inlined at every use, e.g. `$first` in a `@for` view
	Aliases []*ir.AliasVariable

	Decls *int
}

// NewViewCompilationUnit creates a new ViewCompilationUnit
func NewViewCompilationUnit(job *ComponentCompilationJob, xref ir.XrefId, parent *ir.XrefId) *ViewCompilationUnit {
	return &ViewCompilationUnit{unitBase: newUnitBase(xref), Job: job, Parent: parent}
}

func (v *ViewCompilationUnit) GetJob() CompilationJob { return v.Job }

// SetContextVariable declares or overrides a context variable
func (v *ViewCompilationUnit) SetContextVariable(name, value string) {
	for i := range v.ContextVariables {
		if v.ContextVariables[i].Name == name {
			v.ContextVariables[i].Value = value
			return
		}
	}
	v.ContextVariables = append(v.ContextVariables, ContextVariable{Name: name, Value: value})
}

// HostBindingCompilationJob compiles the host bindings of a component or directive
type HostBindingCompilationJob struct {
	JobBase
	Root *HostBindingCompilationUnit
}

// NewHostBindingCompilationJob creates a new HostBindingCompilationJob
func NewHostBindingCompilationJob(componentName string, constantPool *pool.ConstantPool, compatibility ir.CompatibilityMode, mode TemplateCompilationMode) *HostBindingCompilationJob {
	job := &HostBindingCompilationJob{
		JobBase: JobBase{
			ComponentName: componentName,
			Pool:          constantPool,
			Compatibility: compatibility,
			Mode:          mode,
			Kind:          CompilationJobKindHost,
		},
	}
	job.Root = &HostBindingCompilationUnit{unitBase: newUnitBase(0), Job: job}
	job.AllocateXrefId()
	return job
}

func (j *HostBindingCompilationJob) GetUnits() []CompilationUnit {
	return []CompilationUnit{j.Root}
}

func (j *HostBindingCompilationJob) GetRoot() CompilationUnit {
	return j.Root
}

func (j *HostBindingCompilationJob) GetFnSuffix() string {
	return "HostBindings"
}

// HostBindingCompilationUnit is the single unit of a host binding job. Attributes holds the
// static host attributes once extracted.
type HostBindingCompilationUnit struct {
	unitBase
	Job        *HostBindingCompilationJob
	Attributes *output.LiteralArrayExpr
}

func (h *HostBindingCompilationUnit) GetJob() CompilationJob { return h.Job }
