package ir

import (
	"fmt"

	"ngc-ir/packages/compiler/src/output"
)

// VisitExpressionsInOp calls visitor on every expression of op, including nested ones
func VisitExpressionsInOp(op Op, visitor func(expr output.OutputExpression, flags VisitorContextFlag)) {
	TransformExpressionsInOp(op, func(expr output.OutputExpression, flags VisitorContextFlag) output.OutputExpression {
		visitor(expr, flags)
		return expr
	}, VisitorContextFlagNone)
}

func transformOptional(expr output.OutputExpression, transform ExpressionTransform, flags VisitorContextFlag) output.OutputExpression {
	if expr == nil {
		return nil
	}
	return TransformExpressionsInExpression(expr, transform, flags)
}

// TransformExpressionsInOp rewrites every expression held by op in place
func TransformExpressionsInOp(op Op, transform ExpressionTransform, flags VisitorContextFlag) {
	switch o := op.(type) {
	case *StylePropOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *ClassPropOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *StyleMapOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *ClassMapOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *PropertyOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *TwoWayPropertyOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *DomPropertyOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *AttributeOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *BindingOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *I18nExpressionOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *InterpolateTextOp:
		o.Interpolation.TransformInternalExpressions(transform, flags)
	case *StatementOp:
		TransformExpressionsInStatement(o.Statement, transform, flags)
	case *VariableOp:
		o.Initializer = TransformExpressionsInExpression(o.Initializer, transform, flags)
	case *ConditionalOp:
		for _, condition := range o.Conditions {
			if condition.Expr != nil {
				condition.Expr = TransformExpressionsInExpression(condition.Expr, transform, flags)
			}
		}
		o.Processed = transformOptional(o.Processed, transform, flags)
		o.ContextValue = transformOptional(o.ContextValue, transform, flags)
		o.Test = transformOptional(o.Test, transform, flags)
	case *ListenerOp:
		for _, inner := range o.HandlerOps.All() {
			TransformExpressionsInOp(inner, transform, flags|VisitorContextFlagInChildOperation)
		}
	case *TwoWayListenerOp:
		for _, inner := range o.HandlerOps.All() {
			TransformExpressionsInOp(inner, transform, flags|VisitorContextFlagInChildOperation)
		}
	case *ExtractedAttributeOp:
		o.Expression = transformOptional(o.Expression, transform, flags)
		o.TrustedValueFn = transformOptional(o.TrustedValueFn, transform, flags)
	case *RepeaterCreateOp:
		if o.TrackByOps == nil {
			o.Track = TransformExpressionsInExpression(o.Track, transform, flags)
		} else {
			for _, inner := range o.TrackByOps.All() {
				TransformExpressionsInOp(inner, transform, flags|VisitorContextFlagInChildOperation)
			}
		}
		o.TrackByFn = transformOptional(o.TrackByFn, transform, flags)
	case *RepeaterOp:
		o.Collection = TransformExpressionsInExpression(o.Collection, transform, flags)
	case *DeferOp:
		o.LoadingConfig = transformOptional(o.LoadingConfig, transform, flags)
		o.PlaceholderConfig = transformOptional(o.PlaceholderConfig, transform, flags)
		o.ResolverFn = transformOptional(o.ResolverFn, transform, flags)
	case *I18nMessageOp:
		for _, key := range o.Params.Keys {
			o.Params.Values[key] = TransformExpressionsInExpression(o.Params.Values[key], transform, flags)
		}
		for _, key := range o.PostprocessingParams.Keys {
			o.PostprocessingParams.Values[key] = TransformExpressionsInExpression(o.PostprocessingParams.Values[key], transform, flags)
		}
	case *DeferWhenOp:
		o.Expr = TransformExpressionsInExpression(o.Expr, transform, flags)
	case *StoreLetOp:
		o.Value = TransformExpressionsInExpression(o.Value, transform, flags)
	case *ProjectionOp:
		o.Attributes = transformOptional(o.Attributes, transform, flags)
	case *ProjectionDefOp:
		o.Def = transformOptional(o.Def, transform, flags)
	case *AdvanceOp, *ContainerEndOp, *ContainerStartOp, *DeferOnOp, *DisableBindingsOp,
		*ElementEndOp, *ElementStartOp, *EnableBindingsOp, *I18nEndOp, *I18nStartOp,
		*IcuEndOp, *IcuStartOp, *NamespaceOp, *PipeOp, *TemplateOp, *TextOp,
		*I18nApplyOp, *I18nContextOp, *I18nAttributesOp, *IcuPlaceholderOp,
		*DeclareLetOp, *SourceLocationOp, *ListEndOp:
		// These ops contain no expressions.
	default:
		panic(fmt.Sprintf("AssertionError: TransformExpressionsInOp doesn't handle %s", op.GetKind()))
	}
}

// TransformExpressionsInExpression rewrites expr bottom-up: children are transformed before the
// expression itself is passed to transform.
func TransformExpressionsInExpression(expr output.OutputExpression, transform ExpressionTransform, flags VisitorContextFlag) output.OutputExpression {
	switch e := expr.(type) {
	case Expression:
		e.TransformInternalExpressions(transform, flags)
	case *output.BinaryOperatorExpr:
		e.Lhs = TransformExpressionsInExpression(e.Lhs, transform, flags)
		e.Rhs = TransformExpressionsInExpression(e.Rhs, transform, flags)
	case *output.UnaryOperatorExpr:
		e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
	case *output.ReadPropExpr:
		e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
	case *output.ReadKeyExpr:
		e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
		e.Index = TransformExpressionsInExpression(e.Index, transform, flags)
	case *output.InvokeFunctionExpr:
		e.Fn = TransformExpressionsInExpression(e.Fn, transform, flags)
		for i, arg := range e.Args {
			e.Args[i] = TransformExpressionsInExpression(arg, transform, flags)
		}
	case *output.LiteralArrayExpr:
		for i, entry := range e.Entries {
			e.Entries[i] = TransformExpressionsInExpression(entry, transform, flags)
		}
	case *output.LiteralMapExpr:
		for _, entry := range e.Entries {
			entry.Value = TransformExpressionsInExpression(entry.Value, transform, flags)
		}
	case *output.ConditionalExpr:
		e.Condition = TransformExpressionsInExpression(e.Condition, transform, flags)
		e.TrueCase = TransformExpressionsInExpression(e.TrueCase, transform, flags)
		if e.FalseCase != nil {
			e.FalseCase = TransformExpressionsInExpression(e.FalseCase, transform, flags)
		}
	case *output.TypeofExpr:
		e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
	case *output.NotExpr:
		e.Condition = TransformExpressionsInExpression(e.Condition, transform, flags)
	case *output.ArrowFunctionExpr:
		if e.Body != nil {
			e.Body = TransformExpressionsInExpression(e.Body, transform, flags|VisitorContextFlagInChildOperation)
		} else {
			for _, stmt := range e.Statements {
				TransformExpressionsInStatement(stmt, transform, flags|VisitorContextFlagInChildOperation)
			}
		}
	case *output.FunctionExpr:
		for _, stmt := range e.Statements {
			TransformExpressionsInStatement(stmt, transform, flags|VisitorContextFlagInChildOperation)
		}
	case *output.LocalizedString:
		for i, sub := range e.Expressions {
			e.Expressions[i] = TransformExpressionsInExpression(sub, transform, flags)
		}
	case *output.ReadVarExpr, *output.ExternalExpr, *output.LiteralExpr, output.Wrapper:
		// Leaf expressions.
	default:
		panic(fmt.Sprintf("AssertionError: TransformExpressionsInExpression doesn't handle %T", expr))
	}
	return transform(expr, flags)
}

// TransformExpressionsInStatement rewrites the expressions of stmt in place
func TransformExpressionsInStatement(stmt output.OutputStatement, transform ExpressionTransform, flags VisitorContextFlag) {
	switch s := stmt.(type) {
	case *output.ExpressionStatement:
		s.Expr = TransformExpressionsInExpression(s.Expr, transform, flags)
	case *output.ReturnStatement:
		s.Value = TransformExpressionsInExpression(s.Value, transform, flags)
	case *output.DeclareVarStmt:
		if s.Value != nil {
			s.Value = TransformExpressionsInExpression(s.Value, transform, flags)
		}
	case *output.IfStmt:
		s.Condition = TransformExpressionsInExpression(s.Condition, transform, flags)
		for _, inner := range s.TrueCase {
			TransformExpressionsInStatement(inner, transform, flags)
		}
		for _, inner := range s.FalseCase {
			TransformExpressionsInStatement(inner, transform, flags)
		}
	case *output.DeclareFunctionStmt:
		for _, inner := range s.Statements {
			TransformExpressionsInStatement(inner, transform, flags|VisitorContextFlagInChildOperation)
		}
	default:
		panic(fmt.Sprintf("AssertionError: TransformExpressionsInStatement doesn't handle %T", stmt))
	}
}
