package phases

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// ExpandSafeReads lowers safe reads such as `a?.b` into null-guarded conditionals. Template safe
// navigation yields `null` rather than `undefined`, so `a?.b` becomes `a == null ? null : a.b`.
// Receivers with side effects are evaluated once through a temporary.
func ExpandSafeReads(job compilation.CompilationJob) {
	safe := func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
		return safeTransform(job, expr)
	}
	for _, unit := range job.GetUnits() {
		for _, ops := range []*ir.OpList{unit.GetCreate(), unit.GetUpdate()} {
			for op := ops.Head(); op.GetKind() != ir.OpKindListEnd; op = op.Next() {
				ir.TransformExpressionsInOp(op, safe, ir.VisitorContextFlagNone)
				ir.TransformExpressionsInOp(op, ternaryTransform, ir.VisitorContextFlagNone)
			}
		}
	}
}

// needsTemporaryInSafeAccess reports whether evaluating e twice could be observable or costly.
func needsTemporaryInSafeAccess(e output.OutputExpression) bool {
	switch expr := e.(type) {
	case *output.UnaryOperatorExpr:
		return needsTemporaryInSafeAccess(expr.Expr)
	case *output.BinaryOperatorExpr:
		return needsTemporaryInSafeAccess(expr.Lhs) || needsTemporaryInSafeAccess(expr.Rhs)
	case *output.ConditionalExpr:
		if expr.FalseCase != nil && needsTemporaryInSafeAccess(expr.FalseCase) {
			return true
		}
		return needsTemporaryInSafeAccess(expr.Condition) || needsTemporaryInSafeAccess(expr.TrueCase)
	case *output.NotExpr:
		return needsTemporaryInSafeAccess(expr.Condition)
	case *ir.AssignTemporaryExpr:
		return needsTemporaryInSafeAccess(expr.Expr)
	case *output.ReadPropExpr:
		return needsTemporaryInSafeAccess(expr.Receiver)
	case *output.ReadKeyExpr:
		return needsTemporaryInSafeAccess(expr.Receiver) || needsTemporaryInSafeAccess(expr.Index)
	case *output.InvokeFunctionExpr, *output.LiteralArrayExpr, *output.LiteralMapExpr,
		*ir.SafeInvokeFunctionExpr, *ir.PipeBindingExpr:
		return true
	}
	return false
}

func temporariesIn(e output.OutputExpression) map[ir.XrefId]bool {
	temporaries := make(map[ir.XrefId]bool)
	ir.TransformExpressionsInExpression(e, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
		if assign, ok := expr.(*ir.AssignTemporaryExpr); ok {
			temporaries[assign.Xref] = true
		}
		return expr
	}, ir.VisitorContextFlagNone)
	return temporaries
}

// eliminateTemporaryAssignments turns assignments to tmps into reads, since the guard side of a
// safe ternary already performs them.
func eliminateTemporaryAssignments(job compilation.CompilationJob, e output.OutputExpression, tmps map[ir.XrefId]bool) output.OutputExpression {
	return ir.TransformExpressionsInExpression(e, func(expr output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
		assign, ok := expr.(*ir.AssignTemporaryExpr)
		if !ok || !tmps[assign.Xref] {
			return expr
		}
		read := ir.NewReadTemporaryExpr(assign.Xref)
		if job.GetCompatibility() == ir.CompatibilityModeTemplateDefinitionBuilder {
			// The legacy output re-assigns the temporary to itself.
			return ir.NewAssignTemporaryExpr(read, read.Xref)
		}
		return read
	}, ir.VisitorContextFlagNone)
}

// safeTernaryWithTemporary builds `guard == null ? null : body(guard)`, moving guard into a
// temporary when it must not be evaluated twice.
func safeTernaryWithTemporary(job compilation.CompilationJob, guard output.OutputExpression, body func(output.OutputExpression) output.OutputExpression) *ir.SafeTernaryExpr {
	if needsTemporaryInSafeAccess(guard) {
		xref := job.AllocateXrefId()
		return ir.NewSafeTernaryExpr(ir.NewAssignTemporaryExpr(guard, xref), body(ir.NewReadTemporaryExpr(xref)))
	}
	// In `a?.[b?.c()]?.d` the key of the inner read already assigns a temporary, which would
	// otherwise be duplicated into both sides.
	read := eliminateTemporaryAssignments(job, guard.Clone(), temporariesIn(guard))
	return ir.NewSafeTernaryExpr(guard, body(read))
}

// deepestSafeTernary finds the innermost safe ternary in the receiver chain of an access.
func deepestSafeTernary(e output.OutputExpression) *ir.SafeTernaryExpr {
	var receiver output.OutputExpression
	switch expr := e.(type) {
	case *output.ReadPropExpr:
		receiver = expr.Receiver
	case *output.ReadKeyExpr:
		receiver = expr.Receiver
	case *output.InvokeFunctionExpr:
		receiver = expr.Fn
	case *ir.SafePropertyReadExpr:
		receiver = expr.Receiver
	case *ir.SafeKeyedReadExpr:
		receiver = expr.Receiver
	case *ir.SafeInvokeFunctionExpr:
		receiver = expr.Receiver
	default:
		return nil
	}
	st, ok := receiver.(*ir.SafeTernaryExpr)
	if !ok {
		return nil
	}
	for {
		inner, ok := st.Expr.(*ir.SafeTernaryExpr)
		if !ok {
			return st
		}
		st = inner
	}
}

// safeTransform pushes accesses on a safe ternary into its body, so `a?.b.c` guards the whole
// chain: `a == null ? null : a.b.c`.
func safeTransform(job compilation.CompilationJob, e output.OutputExpression) output.OutputExpression {
	if dst := deepestSafeTernary(e); dst != nil {
		switch expr := e.(type) {
		case *output.InvokeFunctionExpr:
			dst.Expr = output.Call(dst.Expr, expr.Args, nil)
			return expr.Fn
		case *output.ReadPropExpr:
			dst.Expr = output.Prop(dst.Expr, expr.Name)
			return expr.Receiver
		case *output.ReadKeyExpr:
			dst.Expr = output.Key(dst.Expr, expr.Index)
			return expr.Receiver
		case *ir.SafeInvokeFunctionExpr:
			dst.Expr = safeTernaryWithTemporary(job, dst.Expr, func(r output.OutputExpression) output.OutputExpression {
				return output.Call(r, expr.Args, nil)
			})
			return expr.Receiver
		case *ir.SafePropertyReadExpr:
			dst.Expr = safeTernaryWithTemporary(job, dst.Expr, func(r output.OutputExpression) output.OutputExpression {
				return output.Prop(r, expr.Name)
			})
			return expr.Receiver
		case *ir.SafeKeyedReadExpr:
			dst.Expr = safeTernaryWithTemporary(job, dst.Expr, func(r output.OutputExpression) output.OutputExpression {
				return output.Key(r, expr.Index)
			})
			return expr.Receiver
		}
		return e
	}

	switch expr := e.(type) {
	case *ir.SafeInvokeFunctionExpr:
		return safeTernaryWithTemporary(job, expr.Receiver, func(r output.OutputExpression) output.OutputExpression {
			return output.Call(r, expr.Args, nil)
		})
	case *ir.SafePropertyReadExpr:
		return safeTernaryWithTemporary(job, expr.Receiver, func(r output.OutputExpression) output.OutputExpression {
			return output.Prop(r, expr.Name)
		})
	case *ir.SafeKeyedReadExpr:
		return safeTernaryWithTemporary(job, expr.Receiver, func(r output.OutputExpression) output.OutputExpression {
			return output.Key(r, expr.Index)
		})
	}
	return e
}

func ternaryTransform(e output.OutputExpression, _ ir.VisitorContextFlag) output.OutputExpression {
	st, ok := e.(*ir.SafeTernaryExpr)
	if !ok {
		return e
	}
	return output.NewConditionalExpr(
		output.NewBinaryOperatorExpr(output.BinaryOperatorEquals, st.Guard, output.NullExpr, nil),
		output.NullExpr,
		st.Expr,
		nil,
	)
}
