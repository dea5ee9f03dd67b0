package phases

import (
	"ngc-ir/packages/compiler/src/output"
	r3_identifiers "ngc-ir/packages/compiler/src/render3/r3_identifiers"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	ng "ngc-ir/packages/compiler/src/template/pipeline/src/instruction"
)

// globalTargetResolvers resolve the `window:`, `document:` and `body:` event targets
var globalTargetResolvers = map[string]*output.ExternalReference{
	"window":   r3_identifiers.ResolveWindow,
	"document": r3_identifiers.ResolveDocument,
	"body":     r3_identifiers.ResolveBody,
}

// domPropertyRemapping must stay in sync with the runtime mapping of the same name.
var domPropertyRemapping = map[string]string{
	"class":      "className",
	"for":        "htmlFor",
	"formaction": "formAction",
	"innerHtml":  "innerHTML",
	"readonly":   "readOnly",
	"tabindex":   "tabIndex",
}

// Reify replaces the semantic ops of every unit with statements calling runtime instructions.
// Afterwards the create and update lists contain only StatementOps.
func Reify(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		reifyCreateOperations(unit, unit.GetCreate())
		reifyUpdateOperations(unit, unit.GetUpdate())
	}
}

func reifyCreateOperations(unit compilation.CompilationUnit, ops *ir.OpList) {
	domOnly := unit.GetJob().GetMode() == compilation.TemplateCompilationModeDomOnly
	for _, op := range ops.All() {
		ir.TransformExpressionsInOp(op, reifyIrExpression, ir.VisitorContextFlagNone)

		switch o := op.(type) {
		case *ir.TextOp:
			ops.Replace(op, ng.Text(o.Handle.Slot(), o.InitialValue, o.SourceSpan))
		case *ir.ElementStartOp:
			if o.Kind == ir.OpKindElement {
				ops.Replace(op, ng.Element(o.Handle.Slot(), o.Tag, o.Attributes, o.LocalRefsIndex, domOnly, o.WholeSourceSpan))
			} else {
				ops.Replace(op, ng.ElementStart(o.Handle.Slot(), o.Tag, o.Attributes, o.LocalRefsIndex, domOnly, o.StartSourceSpan))
			}
		case *ir.ElementEndOp:
			ops.Replace(op, ng.ElementEnd(domOnly, o.SourceSpan))
		case *ir.ContainerStartOp:
			if o.Kind == ir.OpKindContainer {
				ops.Replace(op, ng.ElementContainer(o.Handle.Slot(), o.Attributes, o.LocalRefsIndex, domOnly, o.WholeSourceSpan))
			} else {
				ops.Replace(op, ng.ElementContainerStart(o.Handle.Slot(), o.Attributes, o.LocalRefsIndex, domOnly, o.StartSourceSpan))
			}
		case *ir.ContainerEndOp:
			ops.Replace(op, ng.ElementContainerEnd(domOnly))
		case *ir.I18nStartOp:
			if o.MessageIndex == nil {
				ir.Assertf("i18n block %d has no message index", o.Xref)
			}
			if o.Kind == ir.OpKindI18n {
				ops.Replace(op, ng.I18n(o.Handle.Slot(), *o.MessageIndex, o.SubTemplateIndex, o.SourceSpan))
			} else {
				ops.Replace(op, ng.I18nStart(o.Handle.Slot(), *o.MessageIndex, o.SubTemplateIndex, o.SourceSpan))
			}
		case *ir.I18nEndOp:
			ops.Replace(op, ng.I18nEnd(o.SourceSpan))
		case *ir.I18nAttributesOp:
			if o.I18nAttributesConfig == nil {
				ir.Assertf("i18n attributes of %d were not collected", o.Target)
			}
			ops.Replace(op, ng.I18nAttributes(o.Handle.Slot(), *o.I18nAttributesConfig))
		case *ir.TemplateOp:
			ops.Replace(op, reifyTemplate(unit, o, domOnly))
		case *ir.DisableBindingsOp:
			ops.Replace(op, ng.DisableBindings())
		case *ir.EnableBindingsOp:
			ops.Replace(op, ng.EnableBindings())
		case *ir.PipeOp:
			ops.Replace(op, ng.Pipe(o.Handle.Slot(), o.Name))
		case *ir.DeclareLetOp:
			ops.Replace(op, ng.DeclareLet(o.Handle.Slot(), o.SourceSpan))
		case *ir.ListenerOp:
			handler := reifyListenerHandler(unit, o.HandlerFnName, o.HandlerOps, o.ConsumesDollarEvent)
			var resolver *output.ExternalReference
			if o.EventTarget != "" {
				var ok bool
				resolver, ok = globalTargetResolvers[o.EventTarget]
				if !ok {
					ir.Assertf("unexpected global target %q defined for %q event, supported targets are window, document and body", o.EventTarget, o.Name)
				}
			}
			ops.Replace(op, ng.Listener(o.Name, handler, resolver, domOnly && !o.HostListener, o.SourceSpan))
		case *ir.TwoWayListenerOp:
			ops.Replace(op, ng.TwoWayListener(o.Name, reifyListenerHandler(unit, o.HandlerFnName, o.HandlerOps, true), o.SourceSpan))
		case *ir.VariableOp:
			ops.Replace(op, reifyVariable(o))
		case *ir.NamespaceOp:
			ops.Replace(op, ng.Namespace(o.Active))
		case *ir.DeferOp:
			timerScheduling := o.LoadingMinimumTime != nil || o.LoadingAfterTime != nil || o.PlaceholderMinimumTime != nil
			ops.Replace(op, ng.Defer(
				o.Handle.Slot(),
				o.MainSlot.Slot(),
				o.ResolverFn,
				optionalSlot(o.LoadingSlot),
				optionalSlot(o.PlaceholderSlot),
				optionalSlot(o.ErrorSlot),
				o.LoadingConfig,
				o.PlaceholderConfig,
				timerScheduling,
				o.Flags,
				o.SourceSpan,
			))
		case *ir.DeferOnOp:
			ops.Replace(op, ng.DeferOn(o.Trigger.Kind, deferTriggerArgs(o), o.Modifier, o.SourceSpan))
		case *ir.ProjectionDefOp:
			ops.Replace(op, ng.ProjectionDef(o.Def))
		case *ir.ProjectionOp:
			fallbackFnName, fallbackDecls, fallbackVars := "", 0, 0
			if o.FallbackView != ir.NoXref {
				fallback := viewUnitOf(unit).Job.View(o.FallbackView)
				fallbackFnName, fallbackDecls, fallbackVars = countedView(fallback)
			}
			ops.Replace(op, ng.Projection(o.Handle.Slot(), o.ProjectionSlotIndex, o.Attributes, fallbackFnName, fallbackDecls, fallbackVars, o.SourceSpan))
		case *ir.RepeaterCreateOp:
			ops.Replace(op, reifyRepeaterCreate(unit, o))
		case *ir.SourceLocationOp:
			locations := make([]output.OutputExpression, len(o.Locations))
			for i, loc := range o.Locations {
				locations[i] = output.LiteralArr(
					output.Literal(loc.TargetSlot.Slot()),
					output.Literal(loc.Offset),
					output.Literal(loc.Line),
					output.Literal(loc.Column),
				)
			}
			ops.Replace(op, ng.AttachSourceLocation(o.TemplatePath, output.NewLiteralArrayExpr(locations, nil)))
		case *ir.StatementOp:
			// Already reified.
		default:
			ir.Assertf("unsupported reification of create op %s", op.GetKind())
		}
	}
}

func reifyUpdateOperations(unit compilation.CompilationUnit, ops *ir.OpList) {
	domOnly := unit.GetJob().GetMode() == compilation.TemplateCompilationModeDomOnly
	for _, op := range ops.All() {
		ir.TransformExpressionsInOp(op, reifyIrExpression, ir.VisitorContextFlagNone)

		switch o := op.(type) {
		case *ir.AdvanceOp:
			ops.Replace(op, ng.Advance(o.Delta, o.SourceSpan))
		case *ir.PropertyOp:
			switch {
			case domOnly:
				ops.Replace(op, ng.DomProperty(remapDomProperty(o.Name), o.Expression, o.Sanitizer, o.SourceSpan))
			case isAriaAttribute(o.Name):
				ops.Replace(op, ng.AriaProperty(o.Name, o.Expression, o.SourceSpan))
			default:
				ops.Replace(op, ng.Property(o.Name, o.Expression, o.Sanitizer, o.SourceSpan))
			}
		case *ir.TwoWayPropertyOp:
			ops.Replace(op, ng.TwoWayProperty(o.Name, o.Expression, o.Sanitizer, o.SourceSpan))
		case *ir.StylePropOp:
			ops.Replace(op, ng.StyleProp(o.Name, o.Expression, o.Unit, o.SourceSpan))
		case *ir.ClassPropOp:
			ops.Replace(op, ng.ClassProp(o.Name, o.Expression, o.SourceSpan))
		case *ir.StyleMapOp:
			ops.Replace(op, ng.StyleMap(o.Expression, o.SourceSpan))
		case *ir.ClassMapOp:
			ops.Replace(op, ng.ClassMap(o.Expression, o.SourceSpan))
		case *ir.I18nExpressionOp:
			ops.Replace(op, ng.I18nExp(o.Expression, o.SourceSpan))
		case *ir.I18nApplyOp:
			ops.Replace(op, ng.I18nApply(o.Handle.Slot(), o.SourceSpan))
		case *ir.InterpolateTextOp:
			ops.Replace(op, ng.TextInterpolate(o.Interpolation.Strings, o.Interpolation.Expressions, o.SourceSpan))
		case *ir.AttributeOp:
			ops.Replace(op, ng.Attribute(o.Name, o.Expression, o.Sanitizer, o.Namespace, o.SourceSpan))
		case *ir.DomPropertyOp:
			ops.Replace(op, ng.DomProperty(remapDomProperty(o.Name), o.Expression, o.Sanitizer, o.SourceSpan))
		case *ir.VariableOp:
			ops.Replace(op, reifyVariable(o))
		case *ir.ConditionalOp:
			if o.Processed == nil {
				ir.Assertf("conditional test was not set")
			}
			ops.Replace(op, ng.Conditional(o.Processed, o.ContextValue, o.SourceSpan))
		case *ir.RepeaterOp:
			ops.Replace(op, ng.Repeater(o.Collection, o.SourceSpan))
		case *ir.DeferWhenOp:
			ops.Replace(op, ng.DeferWhen(o.Modifier, o.Expr, o.SourceSpan))
		case *ir.StoreLetOp:
			ir.Assertf("unexpected storeLet of %s", o.DeclaredName)
		case *ir.StatementOp:
			// Already reified.
		default:
			ir.Assertf("unsupported reification of update op %s", op.GetKind())
		}
	}
}

func reifyIrExpression(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
	if !ir.IsIrExpression(expr) {
		return expr
	}

	switch e := expr.(type) {
	case *ir.Interpolation:
		// Expanded by the instruction that owns it.
		return expr
	case *ir.NextContextExpr:
		return ng.NextContext(e.Steps)
	case *ir.ReferenceExpr:
		return ng.Reference(e.TargetSlot.Slot() + 1 + e.Offset)
	case *ir.LexicalReadExpr:
		ir.Assertf("unresolved LexicalRead of %s", e.Name)
	case *ir.TwoWayBindingSetExpr:
		ir.Assertf("unresolved TwoWayBindingSet")
	case *ir.RestoreViewExpr:
		if e.ViewExpr == nil {
			ir.Assertf("unresolved RestoreView of view %d", e.View)
		}
		return ng.RestoreView(e.ViewExpr)
	case *ir.ResetViewExpr:
		return ng.ResetView(e.Expr)
	case *ir.GetCurrentViewExpr:
		return ng.GetCurrentView()
	case *ir.ReadVariableExpr:
		if e.Name == "" {
			ir.Assertf("read of unnamed variable %d", e.Xref)
		}
		return output.Variable(e.Name)
	case *ir.ReadTemporaryExpr:
		if e.Name == "" {
			ir.Assertf("read of unnamed temporary %d", e.Xref)
		}
		return output.Variable(e.Name)
	case *ir.AssignTemporaryExpr:
		if e.Name == "" {
			ir.Assertf("assign of unnamed temporary %d", e.Xref)
		}
		return output.Set(output.Variable(e.Name), e.Expr, nil)
	case *ir.PureFunctionExpr:
		if e.Fn == nil {
			ir.Assertf("pure function was not extracted")
		}
		if e.VarOffset == nil {
			ir.Assertf("pure function has no var offset")
		}
		return ng.PureFunction(*e.VarOffset, e.Fn, e.Args)
	case *ir.PureFunctionParameterExpr:
		ir.Assertf("pure function parameter %d outside of its function", e.Index)
	case *ir.PipeBindingExpr:
		if e.VarOffset == nil {
			ir.Assertf("pipe %s has no var offset", e.Name)
		}
		return ng.PipeBind(e.TargetSlot.Slot(), *e.VarOffset, e.Args)
	case *ir.PipeBindingVariadicExpr:
		if e.VarOffset == nil {
			ir.Assertf("pipe %s has no var offset", e.Name)
		}
		return ng.PipeBindV(e.TargetSlot.Slot(), *e.VarOffset, e.Args)
	case *ir.SlotLiteralExpr:
		return output.Literal(e.Slot.Slot())
	case *ir.ContextLetReferenceExpr:
		return ng.ReadContextLet(e.TargetSlot.Slot())
	case *ir.StoreLetExpr:
		return ng.StoreLet(e.Value, e.GetSourceSpan())
	case *ir.TrackContextExpr:
		return output.Variable("this")
	}
	ir.Assertf("unsupported reification of expression %T", expr)
	return nil
}

func reifyVariable(op *ir.VariableOp) *ir.StatementOp {
	name := op.Variable.GetName()
	if name == "" {
		ir.Assertf("unnamed variable %d", op.Xref)
	}
	return ir.NewStatementOp(output.NewDeclareVarStmt(name, op.Initializer, output.StmtModifierFinal, nil))
}

func reifyTemplate(unit compilation.CompilationUnit, op *ir.TemplateOp, domOnly bool) *ir.StatementOp {
	fnName, decls, vars := countedView(viewUnitOf(unit).Job.View(op.Xref))
	fnRef := output.Variable(fnName)
	var tag *string
	if op.Tag != "" {
		tag = &op.Tag
	}
	switch op.Kind {
	case ir.OpKindConditionalCreate:
		return ng.ConditionalCreate(op.Handle.Slot(), fnRef, decls, vars, tag, op.Attributes, op.LocalRefsIndex, op.StartSourceSpan)
	case ir.OpKindConditionalBranchCreate:
		return ng.ConditionalBranchCreate(op.Handle.Slot(), fnRef, decls, vars, tag, op.Attributes, op.LocalRefsIndex, op.StartSourceSpan)
	}
	return ng.Template(op.Handle.Slot(), fnRef, decls, vars, tag, op.Attributes, op.LocalRefsIndex, domOnly, op.StartSourceSpan)
}

func reifyRepeaterCreate(unit compilation.CompilationUnit, op *ir.RepeaterCreateOp) *ir.StatementOp {
	job := viewUnitOf(unit).Job
	fnName := job.View(op.Xref).GetFnName()
	if fnName == "" {
		ir.Assertf("repeater view %d was not named", op.Xref)
	}
	if op.Decls == nil || op.Vars == nil {
		ir.Assertf("repeater %d was not counted", op.Xref)
	}

	var tag *string
	if op.Tag != "" {
		tag = &op.Tag
	}
	emptyFnName, emptyDecls, emptyVars := "", 0, 0
	var emptyTag *string
	if op.EmptyView != ir.NoXref {
		emptyFnName, emptyDecls, emptyVars = countedView(job.View(op.EmptyView))
		if op.EmptyTag != "" {
			emptyTag = &op.EmptyTag
		}
	}
	return ng.RepeaterCreate(
		op.Handle.Slot(),
		fnName,
		*op.Decls,
		*op.Vars,
		tag,
		op.Attributes,
		reifyTrackBy(unit, op),
		op.UsesComponentInstance,
		emptyFnName,
		emptyDecls,
		emptyVars,
		emptyTag,
		op.EmptyAttributes,
		op.WholeSourceSpan,
	)
}

// reifyListenerHandler turns the handler ops of a listener into a named function expression,
// taking `$event` when the handler reads it.
func reifyListenerHandler(unit compilation.CompilationUnit, name string, handlerOps *ir.OpList, consumesDollarEvent bool) output.OutputExpression {
	reifyUpdateOperations(unit, handlerOps)
	var params []*output.FnParam
	if consumesDollarEvent {
		params = output.Params("$event")
	}
	return output.NewFunctionExpr(params, reifiedStatements(handlerOps), nil, name)
}

// reifyTrackBy builds the track function of a repeater and shares it through the pool.
func reifyTrackBy(unit compilation.CompilationUnit, op *ir.RepeaterCreateOp) output.OutputExpression {
	if op.TrackByFn != nil {
		return op.TrackByFn
	}

	params := output.Params("$index", "$item")
	var fn output.OutputExpression
	if op.TrackByOps == nil {
		if op.UsesComponentInstance {
			fn = output.Fn(params, []output.OutputStatement{output.NewReturnStatement(op.Track, nil)}, "")
		} else {
			fn = output.ArrowFn(params, op.Track)
		}
	} else {
		reifyUpdateOperations(unit, op.TrackByOps)
		statements := reifiedStatements(op.TrackByOps)
		ret, single := singleReturn(statements)
		if op.UsesComponentInstance || !single {
			fn = output.Fn(params, statements, "")
		} else {
			fn = output.ArrowFn(params, ret.Value)
		}
	}
	op.TrackByFn = unit.GetJob().GetPool().GetSharedFunctionReference(fn, "_forTrack", true)
	return op.TrackByFn
}

func singleReturn(statements []output.OutputStatement) (*output.ReturnStatement, bool) {
	if len(statements) != 1 {
		return nil, false
	}
	ret, ok := statements[0].(*output.ReturnStatement)
	return ret, ok
}

func reifiedStatements(ops *ir.OpList) []output.OutputStatement {
	var statements []output.OutputStatement
	for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
		stmt, ok := op.(*ir.StatementOp)
		if !ok {
			ir.Assertf("expected reified statements, but found op %s", op.GetKind())
		}
		statements = append(statements, stmt.Statement)
	}
	return statements
}

func deferTriggerArgs(op *ir.DeferOnOp) []output.OutputExpression {
	trigger := op.Trigger
	switch trigger.Kind {
	case ir.DeferTriggerKindNever, ir.DeferTriggerKindIdle, ir.DeferTriggerKindImmediate:
		return nil
	case ir.DeferTriggerKindTimer:
		return []output.OutputExpression{output.Literal(trigger.Delay)}
	case ir.DeferTriggerKindInteraction, ir.DeferTriggerKindHover, ir.DeferTriggerKindViewport:
		// Hydration triggers have no target element.
		if op.Modifier == ir.DeferOpModifierKindHydrate {
			return nil
		}
		if trigger.TargetSlot == nil || !trigger.TargetSlot.IsAssigned() || trigger.TargetSlotViewSteps == nil {
			ir.Assertf("slot or view steps not set in trigger reification for trigger %q of kind %d", trigger.TargetName, trigger.Kind)
		}
		args := []output.OutputExpression{output.Literal(trigger.TargetSlot.Slot())}
		if *trigger.TargetSlotViewSteps != 0 {
			args = append(args, output.Literal(*trigger.TargetSlotViewSteps))
		}
		return args
	}
	ir.Assertf("unsupported reification of defer trigger kind %d", trigger.Kind)
	return nil
}

func optionalSlot(handle *ir.SlotHandle) *int {
	if handle == nil {
		return nil
	}
	slot := handle.Slot()
	return &slot
}

func countedView(view *compilation.ViewCompilationUnit) (string, int, int) {
	fnName := view.GetFnName()
	if fnName == "" || view.Decls == nil || view.GetVars() == nil {
		ir.Assertf("view %d was not named and counted", view.Xref)
	}
	return fnName, *view.Decls, *view.GetVars()
}

func viewUnitOf(unit compilation.CompilationUnit) *compilation.ViewCompilationUnit {
	view, ok := unit.(*compilation.ViewCompilationUnit)
	if !ok {
		ir.Assertf("must be compiling a component")
	}
	return view
}

func remapDomProperty(name string) string {
	if remapped, ok := domPropertyRemapping[name]; ok {
		return remapped
	}
	return name
}
