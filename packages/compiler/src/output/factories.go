package output

import (
	"ngc-ir/packages/compiler/src/util"
)

// NullExpr is the `null` literal
var NullExpr = NewLiteralExpr(nil, nil)

// Variable reads a named variable
func Variable(name string) *ReadVarExpr {
	return NewReadVarExpr(name, nil)
}

// Literal creates a primitive literal
func Literal(value interface{}) *LiteralExpr {
	return NewLiteralExpr(value, nil)
}

// LiteralArr creates an array literal
func LiteralArr(values ...OutputExpression) *LiteralArrayExpr {
	return NewLiteralArrayExpr(values, nil)
}

// LiteralMap creates an object literal from ordered entries
func LiteralMap(entries ...*LiteralMapEntry) *LiteralMapExpr {
	return NewLiteralMapExpr(entries, nil)
}

// ImportExpr refers to an external symbol
func ImportExpr(ref *ExternalReference) *ExternalExpr {
	return NewExternalExpr(ref, nil)
}

// Prop reads a property of a receiver
func Prop(receiver OutputExpression, name string) *ReadPropExpr {
	return NewReadPropExpr(receiver, name, nil)
}

// Key reads a keyed property of a receiver
func Key(receiver, index OutputExpression) *ReadKeyExpr {
	return NewReadKeyExpr(receiver, index, nil)
}

// Call invokes fn with args
func Call(fn OutputExpression, args []OutputExpression, sourceSpan *util.ParseSourceSpan) *InvokeFunctionExpr {
	return NewInvokeFunctionExpr(fn, args, sourceSpan, false)
}

// Set assigns value to target
func Set(target, value OutputExpression, sourceSpan *util.ParseSourceSpan) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, target, value, sourceSpan)
}

// Not negates an expression
func Not(expr OutputExpression) *NotExpr {
	return NewNotExpr(expr, nil)
}

// Fn creates an anonymous function
func Fn(params []*FnParam, body []OutputStatement, name string) *FunctionExpr {
	return NewFunctionExpr(params, body, nil, name)
}

// ArrowFn creates an arrow function with an expression body
func ArrowFn(params []*FnParam, body OutputExpression) *ArrowFunctionExpr {
	return NewArrowFunctionExpr(params, body, nil)
}

// Stmt wraps an expression in a statement
func Stmt(expr OutputExpression) *ExpressionStatement {
	return NewExpressionStatement(expr, expr.GetSourceSpan())
}

// Params creates a parameter list from names
func Params(names ...string) []*FnParam {
	params := make([]*FnParam, len(names))
	for i, name := range names {
		params[i] = NewFnParam(name)
	}
	return params
}
