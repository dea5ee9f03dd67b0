package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/render3/r3_identifiers"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// OptimizeTrackFns replaces `@for` track expressions with a function reference where one exists:
// `$index` and `$item` use the runtime's built-in track functions and `fn($index, $item)` on the
// component passes the method directly. Any other expression gets its own track function body.
func OptimizeTrackFns(job *compilation.ComponentCompilationJob) {
	rootXref := job.Root.Xref
	for _, unit := range job.GetUnits() {
		for op := unit.GetCreate().Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
			repeater, ok := op.(*ir.RepeaterCreateOp)
			if !ok {
				continue
			}

			if read, ok := repeater.Track.(*output.ReadVarExpr); ok && read.Name == "$index" {
				repeater.TrackByFn = output.ImportExpr(r3_identifiers.RepeaterTrackByIndex)
			} else if ok && read.Name == "$item" {
				repeater.TrackByFn = output.ImportExpr(r3_identifiers.RepeaterTrackByIdentity)
			} else if method, ok := trackByMethod(rootXref, repeater.Track); ok {
				// The method may use `this`.
				repeater.UsesComponentInstance = true
				if method.Receiver.(*ir.ContextExpr).View == unit.GetXref() {
					repeater.TrackByFn = method
				} else {
					repeater.TrackByFn = output.Prop(output.Call(output.ImportExpr(r3_identifiers.ComponentInstance), nil, nil), method.Name)
					// The original expression would need the component context, which is not
					// reachable from an embedded view.
					repeater.Track = repeater.TrackByFn
				}
			} else {
				repeater.Track = ir.TransformExpressionsInExpression(repeater.Track, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
					switch e := expr.(type) {
					case *ir.PipeBindingExpr, *ir.PipeBindingVariadicExpr:
						ir.Assertf("pipes are not allowed in track expressions")
					case *ir.ContextExpr:
						repeater.UsesComponentInstance = true
						return ir.NewTrackContextExpr(e.View)
					}
					return expr
				}, ir.VisitorContextFlagNone)

				// The body may still need ops of its own, e.g. temporaries.
				repeater.TrackByOps = ir.NewOpList(ir.OpFamilyUpdate)
				repeater.TrackByOps.Push(ir.NewStatementOp(output.NewReturnStatement(repeater.Track, repeater.Track.GetSourceSpan())))
			}
		}
	}
}

// trackByMethod matches `ctx.fn($index)` and `ctx.fn($index, $item)` where ctx is the component
// context, returning the `ctx.fn` read.
func trackByMethod(rootView ir.XrefId, expr output.OutputExpression) (*output.ReadPropExpr, bool) {
	call, ok := expr.(*output.InvokeFunctionExpr)
	if !ok || len(call.Args) == 0 || len(call.Args) > 2 {
		return nil, false
	}
	method, ok := call.Fn.(*output.ReadPropExpr)
	if !ok {
		return nil, false
	}
	if ctx, ok := method.Receiver.(*ir.ContextExpr); !ok || ctx.View != rootView {
		return nil, false
	}
	if !isReadVar(call.Args[0], "$index") {
		return nil, false
	}
	if len(call.Args) == 2 && !isReadVar(call.Args[1], "$item") {
		return nil, false
	}
	return method, true
}

func isReadVar(expr output.OutputExpression, name string) bool {
	read, ok := expr.(*output.ReadVarExpr)
	return ok && read.Name == name
}
