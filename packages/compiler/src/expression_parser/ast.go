package expression_parser

import (
	"ngc-ir/packages/compiler/src/util"
)

// AST is a node of a bound template expression. Expressions arrive already parsed and
// scope-resolved: reads through ImplicitReceiver are not yet known to be locals or
// component members.
type AST interface {
	GetSourceSpan() *util.ParseSourceSpan
}

type astBase struct {
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the source span of the node
func (a *astBase) GetSourceSpan() *util.ParseSourceSpan {
	return a.SourceSpan
}

func base(span *util.ParseSourceSpan) astBase {
	return astBase{SourceSpan: span}
}

// EmptyExpr is an expression with no content, e.g. `(click)=""`
type EmptyExpr struct{ astBase }

// NewEmptyExpr creates a new EmptyExpr
func NewEmptyExpr(span *util.ParseSourceSpan) *EmptyExpr {
	return &EmptyExpr{base(span)}
}

// ImplicitReceiver is the receiver of a bare identifier such as `name`
type ImplicitReceiver struct{ astBase }

// NewImplicitReceiver creates a new ImplicitReceiver
func NewImplicitReceiver(span *util.ParseSourceSpan) *ImplicitReceiver {
	return &ImplicitReceiver{base(span)}
}

// ThisReceiver is an explicit `this`
type ThisReceiver struct{ astBase }

// NewThisReceiver creates a new ThisReceiver
func NewThisReceiver(span *util.ParseSourceSpan) *ThisReceiver {
	return &ThisReceiver{base(span)}
}

// Chain is a sequence of expressions, only legal in event handlers
type Chain struct {
	astBase
	Expressions []AST
}

// NewChain creates a new Chain
func NewChain(span *util.ParseSourceSpan, expressions []AST) *Chain {
	return &Chain{base(span), expressions}
}

// Conditional is `cond ? a : b`
type Conditional struct {
	astBase
	Condition AST
	TrueExp   AST
	FalseExp  AST
}

// NewConditional creates a new Conditional
func NewConditional(span *util.ParseSourceSpan, condition, trueExp, falseExp AST) *Conditional {
	return &Conditional{base(span), condition, trueExp, falseExp}
}

// PropertyRead is `receiver.name`
type PropertyRead struct {
	astBase
	Receiver AST
	Name     string
}

// NewPropertyRead creates a new PropertyRead
func NewPropertyRead(span *util.ParseSourceSpan, receiver AST, name string) *PropertyRead {
	return &PropertyRead{base(span), receiver, name}
}

// SafePropertyRead is `receiver?.name`
type SafePropertyRead struct {
	astBase
	Receiver AST
	Name     string
}

// NewSafePropertyRead creates a new SafePropertyRead
func NewSafePropertyRead(span *util.ParseSourceSpan, receiver AST, name string) *SafePropertyRead {
	return &SafePropertyRead{base(span), receiver, name}
}

// KeyedRead is `receiver[key]`
type KeyedRead struct {
	astBase
	Receiver AST
	Key      AST
}

// NewKeyedRead creates a new KeyedRead
func NewKeyedRead(span *util.ParseSourceSpan, receiver, key AST) *KeyedRead {
	return &KeyedRead{base(span), receiver, key}
}

// SafeKeyedRead is `receiver?.[key]`
type SafeKeyedRead struct {
	astBase
	Receiver AST
	Key      AST
}

// NewSafeKeyedRead creates a new SafeKeyedRead
func NewSafeKeyedRead(span *util.ParseSourceSpan, receiver, key AST) *SafeKeyedRead {
	return &SafeKeyedRead{base(span), receiver, key}
}

// BindingPipe is `exp | name:arg1:arg2`
type BindingPipe struct {
	astBase
	Exp  AST
	Name string
	Args []AST
}

// NewBindingPipe creates a new BindingPipe
func NewBindingPipe(span *util.ParseSourceSpan, exp AST, name string, args []AST) *BindingPipe {
	return &BindingPipe{base(span), exp, name, args}
}

// LiteralPrimitive is a primitive literal: nil, bool, int, float64 or string
type LiteralPrimitive struct {
	astBase
	Value interface{}
}

// NewLiteralPrimitive creates a new LiteralPrimitive
func NewLiteralPrimitive(span *util.ParseSourceSpan, value interface{}) *LiteralPrimitive {
	return &LiteralPrimitive{base(span), value}
}

// LiteralArray is `[a, b]`
type LiteralArray struct {
	astBase
	Expressions []AST
}

// NewLiteralArray creates a new LiteralArray
func NewLiteralArray(span *util.ParseSourceSpan, expressions []AST) *LiteralArray {
	return &LiteralArray{base(span), expressions}
}

// LiteralMapKey is a key of a LiteralMap
type LiteralMapKey struct {
	Key    string
	Quoted bool
}

// LiteralMap is `{a: 1, 'b': 2}`
type LiteralMap struct {
	astBase
	Keys   []LiteralMapKey
	Values []AST
}

// NewLiteralMap creates a new LiteralMap
func NewLiteralMap(span *util.ParseSourceSpan, keys []LiteralMapKey, values []AST) *LiteralMap {
	return &LiteralMap{base(span), keys, values}
}

// Interpolation is `a{{x}}b{{y}}c`. len(Strings) == len(Expressions)+1.
type Interpolation struct {
	astBase
	Strings     []string
	Expressions []AST
}

// NewInterpolation creates a new Interpolation
func NewInterpolation(span *util.ParseSourceSpan, strings []string, expressions []AST) *Interpolation {
	return &Interpolation{base(span), strings, expressions}
}

// Binary is `left <op> right`, with Operation in source form (`+`, `===`, `&&`, `=`...)
type Binary struct {
	astBase
	Operation string
	Left      AST
	Right     AST
}

// NewBinary creates a new Binary
func NewBinary(span *util.ParseSourceSpan, operation string, left, right AST) *Binary {
	return &Binary{base(span), operation, left, right}
}

// Unary is `-x` or `+x`
type Unary struct {
	astBase
	Operator string
	Expr     AST
}

// NewUnary creates a new Unary
func NewUnary(span *util.ParseSourceSpan, operator string, expr AST) *Unary {
	return &Unary{base(span), operator, expr}
}

// PrefixNot is `!x`
type PrefixNot struct {
	astBase
	Expression AST
}

// NewPrefixNot creates a new PrefixNot
func NewPrefixNot(span *util.ParseSourceSpan, expression AST) *PrefixNot {
	return &PrefixNot{base(span), expression}
}

// TypeofExpression is `typeof x`
type TypeofExpression struct {
	astBase
	Expression AST
}

// NewTypeofExpression creates a new TypeofExpression
func NewTypeofExpression(span *util.ParseSourceSpan, expression AST) *TypeofExpression {
	return &TypeofExpression{base(span), expression}
}

// NonNullAssert is `x!`
type NonNullAssert struct {
	astBase
	Expression AST
}

// NewNonNullAssert creates a new NonNullAssert
func NewNonNullAssert(span *util.ParseSourceSpan, expression AST) *NonNullAssert {
	return &NonNullAssert{base(span), expression}
}

// Call is `receiver(args)`
type Call struct {
	astBase
	Receiver AST
	Args     []AST
}

// NewCall creates a new Call
func NewCall(span *util.ParseSourceSpan, receiver AST, args []AST) *Call {
	return &Call{base(span), receiver, args}
}

// SafeCall is `receiver?.(args)`
type SafeCall struct {
	astBase
	Receiver AST
	Args     []AST
}

// NewSafeCall creates a new SafeCall
func NewSafeCall(span *util.ParseSourceSpan, receiver AST, args []AST) *SafeCall {
	return &SafeCall{base(span), receiver, args}
}

// ParenthesizedExpression is `(x)`
type ParenthesizedExpression struct {
	astBase
	Expression AST
}

// NewParenthesizedExpression creates a new ParenthesizedExpression
func NewParenthesizedExpression(span *util.ParseSourceSpan, expression AST) *ParenthesizedExpression {
	return &ParenthesizedExpression{base(span), expression}
}
