package pipeline

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/template/pipeline/src/phases"
)

// Phase is one transformation of the pipeline, run for the jobs of Kind
type Phase struct {
	Kind compilation.CompilationJobKind
	Name string
	Fn   func(job compilation.CompilationJob)
}

// tmpl adapts a phase that only applies to component templates
func tmpl(fn func(*compilation.ComponentCompilationJob)) func(compilation.CompilationJob) {
	return func(job compilation.CompilationJob) {
		fn(job.(*compilation.ComponentCompilationJob))
	}
}

// host adapts a phase that only applies to host bindings
func host(fn func(*compilation.HostBindingCompilationJob)) func(compilation.CompilationJob) {
	return func(job compilation.CompilationJob) {
		fn(job.(*compilation.HostBindingCompilationJob))
	}
}

const (
	kindTmpl = compilation.CompilationJobKindTmpl
	kindHost = compilation.CompilationJobKindHost
	kindBoth = compilation.CompilationJobKindBoth
)

// Phases lists every transformation in the order it runs. The order is load-bearing.
var Phases = []Phase{
	{kindTmpl, "RemoveContentSelectors", tmpl(phases.RemoveContentSelectors)},
	{kindHost, "ParseHostStyleProperties", host(phases.ParseHostStyleProperties)},
	{kindTmpl, "EmitNamespaceChanges", tmpl(phases.EmitNamespaceChanges)},
	{kindTmpl, "PropagateI18nBlocks", tmpl(phases.PropagateI18nBlocks)},
	{kindTmpl, "WrapI18nIcus", tmpl(phases.WrapI18nIcus)},
	{kindBoth, "DeduplicateTextBindings", phases.DeduplicateTextBindings},
	{kindBoth, "SpecializeStyleBindings", phases.SpecializeStyleBindings},
	{kindBoth, "SpecializeBindings", phases.SpecializeBindings},
	{kindBoth, "ExtractAttributes", phases.ExtractAttributes},
	{kindTmpl, "CreateI18nContexts", phases.CreateI18nContexts},
	{kindBoth, "ParseExtractedStyles", phases.ParseExtractedStyles},
	{kindTmpl, "RemoveEmptyBindings", phases.RemoveEmptyBindings},
	{kindBoth, "CollapseSingletonInterpolations", phases.CollapseSingletonInterpolations},
	{kindBoth, "OrderOps", phases.OrderOps},
	{kindTmpl, "GenerateConditionalExpressions", tmpl(phases.GenerateConditionalExpressions)},
	{kindTmpl, "CreatePipes", phases.CreatePipes},
	{kindTmpl, "ConfigureDeferInstructions", tmpl(phases.ConfigureDeferInstructions)},
	{kindTmpl, "CreateVariadicPipes", phases.CreateVariadicPipes},
	{kindBoth, "GeneratePureLiteralStructures", phases.GeneratePureLiteralStructures},
	{kindTmpl, "GenerateProjectionDefs", tmpl(phases.GenerateProjectionDefs)},
	{kindTmpl, "GenerateLocalLetReferences", tmpl(phases.GenerateLocalLetReferences)},
	{kindTmpl, "GenerateVariables", tmpl(phases.GenerateVariables)},
	{kindTmpl, "SaveAndRestoreView", tmpl(phases.SaveAndRestoreView)},
	{kindBoth, "ResolveDollarEvent", phases.ResolveDollarEvent},
	{kindTmpl, "GenerateTrackVariables", phases.GenerateTrackVariables},
	{kindTmpl, "RemoveIllegalLetReferences", tmpl(phases.RemoveIllegalLetReferences)},
	{kindBoth, "ResolveNames", phases.ResolveNames},
	{kindTmpl, "ResolveDeferTargetNames", tmpl(phases.ResolveDeferTargetNames)},
	{kindTmpl, "TransformTwoWayBindingSet", phases.TransformTwoWayBindingSet},
	{kindTmpl, "OptimizeTrackFns", tmpl(phases.OptimizeTrackFns)},
	{kindBoth, "ResolveContexts", phases.ResolveContexts},
	{kindBoth, "ResolveSanitizers", phases.ResolveSanitizers},
	{kindTmpl, "LiftLocalRefs", tmpl(phases.LiftLocalRefs)},
	{kindBoth, "ExpandSafeReads", phases.ExpandSafeReads},
	{kindBoth, "GenerateTemporaryVariables", phases.GenerateTemporaryVariables},
	{kindBoth, "OptimizeVariables", phases.OptimizeVariables},
	{kindBoth, "OptimizeStoreLet", phases.OptimizeStoreLet},
	{kindTmpl, "ConvertI18nText", tmpl(phases.ConvertI18nText)},
	{kindTmpl, "ConvertI18nBindings", phases.ConvertI18nBindings},
	{kindBoth, "RemoveUnusedI18nAttributesOps", phases.RemoveUnusedI18nAttributesOps},
	{kindTmpl, "AssignI18nSlotDependencies", tmpl(phases.AssignI18nSlotDependencies)},
	{kindTmpl, "ApplyI18nExpressions", tmpl(phases.ApplyI18nExpressions)},
	{kindTmpl, "AllocateSlots", tmpl(phases.AllocateSlots)},
	{kindTmpl, "ResolveI18nElementPlaceholders", tmpl(phases.ResolveI18nElementPlaceholders)},
	{kindTmpl, "ResolveI18nExpressionPlaceholders", tmpl(phases.ResolveI18nExpressionPlaceholders)},
	{kindTmpl, "ExtractI18nMessages", tmpl(phases.ExtractI18nMessages)},
	{kindTmpl, "CollectI18nConsts", tmpl(phases.CollectI18nConsts)},
	{kindTmpl, "CollectConstExpressions", tmpl(phases.CollectConstExpressions)},
	{kindBoth, "CollectElementConsts", phases.CollectElementConsts},
	{kindTmpl, "RemoveI18nContexts", tmpl(phases.RemoveI18nContexts)},
	{kindBoth, "CountVariables", phases.CountVariables},
	{kindTmpl, "GenerateAdvance", tmpl(phases.GenerateAdvance)},
	{kindBoth, "NameFunctionsAndVariables", phases.NameFunctionsAndVariables},
	{kindTmpl, "ResolveDeferDepsFns", tmpl(phases.ResolveDeferDepsFns)},
	{kindTmpl, "MergeNextContextExpressions", tmpl(phases.MergeNextContextExpressions)},
	{kindTmpl, "GenerateNgContainerOps", tmpl(phases.GenerateNgContainerOps)},
	{kindTmpl, "CollapseEmptyInstructions", tmpl(phases.CollapseEmptyInstructions)},
	{kindTmpl, "AttachSourceLocations", tmpl(phases.AttachSourceLocations)},
	{kindTmpl, "DisableBindings", tmpl(phases.DisableBindings)},
	{kindBoth, "ExtractPureFunctions", phases.ExtractPureFunctions},
	{kindBoth, "Reify", phases.Reify},
	{kindBoth, "Chain", phases.Chain},
}

// Transform runs all transformation phases in order against a compilation job. After this
// processing the job is ready to be emitted. It stops at the first phase that fails the job.
func Transform(job compilation.CompilationJob) error {
	return transform(job, nil)
}

// transform runs the phases and calls afterAllocation, when set, once slots are assigned
func transform(job compilation.CompilationJob, afterAllocation func()) error {
	kind := job.GetKind()
	for _, phase := range Phases {
		if phase.Kind != kind && phase.Kind != kindBoth {
			continue
		}
		phase.Fn(job)
		if err := job.Err(); err != nil {
			return err
		}
		if phase.Name == "AllocateSlots" {
			assertSlotsAllocated(job)
			if afterAllocation != nil {
				afterAllocation()
			}
		}
	}
	return nil
}

// assertSlotsAllocated checks that every slot-consuming op has been given its slot
func assertSlotsAllocated(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		for _, op := range unit.GetCreate().All() {
			consumer, ok := op.(ir.ConsumesSlotOp)
			if !ok {
				continue
			}
			if !consumer.GetConsumesSlotTrait().Handle.IsAssigned() {
				ir.Assertf("op %s (xref %d) has no slot after allocation", op.GetKind(), consumer.GetConsumesSlotTrait().Xref)
			}
		}
	}
}

// EmitTemplateFn compiles all views in the given ComponentCompilationJob into the final template
// function. Embedded views are declared as statements of the job's constant pool.
func EmitTemplateFn(job *compilation.ComponentCompilationJob) *output.FunctionExpr {
	rootFn := emitView(job.Root)
	emitChildViews(job.Root)
	return rootFn
}

func emitChildViews(parent *compilation.ViewCompilationUnit) {
	for _, view := range parent.Job.ViewUnits() {
		if view.Parent == nil || *view.Parent != parent.Xref {
			continue
		}

		// Child views are emitted depth-first.
		emitChildViews(view)

		viewFn := emitView(view)
		parent.Job.Pool.AddStatement(output.NewDeclareFunctionStmt(viewFn.Name, viewFn.Params, viewFn.Statements, nil))
	}
}

// emitView emits a template function for an individual ViewCompilationUnit, which may be either
// the root view or an embedded view
func emitView(view *compilation.ViewCompilationUnit) *output.FunctionExpr {
	if view.GetFnName() == "" {
		ir.Assertf("view %d is unnamed", view.Xref)
	}
	createStatements := opStatements(view.GetCreate(), "create")
	updateStatements := opStatements(view.GetUpdate(), "update")
	return templateFunction(view.GetFnName(), createStatements, updateStatements)
}

func opStatements(ops *ir.OpList, kind string) []output.OutputStatement {
	var statements []output.OutputStatement
	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		stmtOp, ok := op.(*ir.StatementOp)
		if !ok {
			ir.Assertf("expected all %s ops to have been compiled, but got %s", kind, op.GetKind())
		}
		statements = append(statements, stmtOp.Statement)
	}
	return statements
}

func templateFunction(name string, createStatements, updateStatements []output.OutputStatement) *output.FunctionExpr {
	var statements []output.OutputStatement
	statements = append(statements, maybeGenerateRfBlock(1, createStatements)...)
	statements = append(statements, maybeGenerateRfBlock(2, updateStatements)...)
	return output.NewFunctionExpr(
		[]*output.FnParam{output.NewFnParam("rf"), output.NewFnParam("ctx")},
		statements,
		nil,
		name,
	)
}

func maybeGenerateRfBlock(flag int, statements []output.OutputStatement) []output.OutputStatement {
	if len(statements) == 0 {
		return nil
	}
	condition := output.NewBinaryOperatorExpr(
		output.BinaryOperatorBitwiseAnd,
		output.NewReadVarExpr("rf", nil),
		output.NewLiteralExpr(flag, nil),
		nil,
	)
	return []output.OutputStatement{output.NewIfStmt(condition, statements, nil, nil)}
}

// EmitHostBindingFunction emits the host binding function, or nil when the host has no
// instructions
func EmitHostBindingFunction(job *compilation.HostBindingCompilationJob) *output.FunctionExpr {
	if job.Root.GetFnName() == "" {
		ir.Assertf("host binding function is unnamed")
	}
	createStatements := opStatements(job.Root.GetCreate(), "create")
	updateStatements := opStatements(job.Root.GetUpdate(), "update")
	if len(createStatements) == 0 && len(updateStatements) == 0 {
		return nil
	}
	return templateFunction(job.Root.GetFnName(), createStatements, updateStatements)
}
