package output

import (
	"ngc-ir/packages/compiler/src/util"
)

// OutputExpression is a node of the output expression tree produced by the compiler
type OutputExpression interface {
	GetSourceSpan() *util.ParseSourceSpan
	// IsEquivalent reports whether two expressions are structurally the same, ignoring spans
	IsEquivalent(e OutputExpression) bool
	// IsConstant reports whether the expression can be evaluated at module load time
	IsConstant() bool
	Clone() OutputExpression
}

// OutputStatement is a node of the output statement tree
type OutputStatement interface {
	GetSourceSpan() *util.ParseSourceSpan
	IsEquivalent(stmt OutputStatement) bool
}

// ExpressionBase holds the fields shared by every expression
type ExpressionBase struct {
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the source span of the expression
func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan {
	return e.SourceSpan
}

// BinaryOperator is an operator of a BinaryOperatorExpr
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorAssign
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorMinus
	BinaryOperatorPlus
	BinaryOperatorDivide
	BinaryOperatorMultiply
	BinaryOperatorModulo
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorBitwiseOr
	BinaryOperatorBitwiseAnd
	BinaryOperatorLower
	BinaryOperatorLowerEquals
	BinaryOperatorBigger
	BinaryOperatorBiggerEquals
	BinaryOperatorNullishCoalesce
	BinaryOperatorExponentiation
	BinaryOperatorIn
)

// UnaryOperator is an operator of a UnaryOperatorExpr
type UnaryOperator int

const (
	UnaryOperatorMinus UnaryOperator = iota
	UnaryOperatorPlus
)

// StmtModifier is a bit set of declaration modifiers
type StmtModifier int

const (
	StmtModifierNone  StmtModifier = 0
	StmtModifierFinal StmtModifier = 1 << 0
)

// ExternalReference names a symbol imported from another module
type ExternalReference struct {
	ModuleName string
	Name       string
}

// ReadVarExpr reads a variable by name
type ReadVarExpr struct {
	ExpressionBase
	Name string
}

// NewReadVarExpr creates a new ReadVarExpr
func NewReadVarExpr(name string, sourceSpan *util.ParseSourceSpan) *ReadVarExpr {
	return &ReadVarExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Name: name}
}

func (e *ReadVarExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ReadVarExpr)
	return ok && e.Name == o.Name
}

func (e *ReadVarExpr) IsConstant() bool { return false }

func (e *ReadVarExpr) Clone() OutputExpression {
	return NewReadVarExpr(e.Name, e.SourceSpan)
}

// LiteralExpr is a primitive literal: nil, bool, int, float64 or string
type LiteralExpr struct {
	ExpressionBase
	Value interface{}
}

// NewLiteralExpr creates a new LiteralExpr
func NewLiteralExpr(value interface{}, sourceSpan *util.ParseSourceSpan) *LiteralExpr {
	return &LiteralExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Value: value}
}

func (e *LiteralExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralExpr)
	return ok && e.Value == o.Value
}

func (e *LiteralExpr) IsConstant() bool { return true }

func (e *LiteralExpr) Clone() OutputExpression {
	return NewLiteralExpr(e.Value, e.SourceSpan)
}

// ExternalExpr refers to an imported symbol
type ExternalExpr struct {
	ExpressionBase
	Value *ExternalReference
}

// NewExternalExpr creates a new ExternalExpr
func NewExternalExpr(value *ExternalReference, sourceSpan *util.ParseSourceSpan) *ExternalExpr {
	return &ExternalExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Value: value}
}

func (e *ExternalExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ExternalExpr)
	return ok && e.Value.Name == o.Value.Name && e.Value.ModuleName == o.Value.ModuleName
}

func (e *ExternalExpr) IsConstant() bool { return false }

func (e *ExternalExpr) Clone() OutputExpression {
	return NewExternalExpr(e.Value, e.SourceSpan)
}

// BinaryOperatorExpr applies a binary operator
type BinaryOperatorExpr struct {
	ExpressionBase
	Operator BinaryOperator
	Lhs      OutputExpression
	Rhs      OutputExpression
}

// NewBinaryOperatorExpr creates a new BinaryOperatorExpr
func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs OutputExpression, sourceSpan *util.ParseSourceSpan) *BinaryOperatorExpr {
	return &BinaryOperatorExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Operator: operator, Lhs: lhs, Rhs: rhs}
}

func (e *BinaryOperatorExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*BinaryOperatorExpr)
	return ok && e.Operator == o.Operator && e.Lhs.IsEquivalent(o.Lhs) && e.Rhs.IsEquivalent(o.Rhs)
}

func (e *BinaryOperatorExpr) IsConstant() bool { return false }

func (e *BinaryOperatorExpr) Clone() OutputExpression {
	return NewBinaryOperatorExpr(e.Operator, e.Lhs.Clone(), e.Rhs.Clone(), e.SourceSpan)
}

// IsAssignment reports whether the expression writes its left-hand side
func (e *BinaryOperatorExpr) IsAssignment() bool {
	return e.Operator == BinaryOperatorAssign
}

// UnaryOperatorExpr applies a unary operator
type UnaryOperatorExpr struct {
	ExpressionBase
	Operator UnaryOperator
	Expr     OutputExpression
}

// NewUnaryOperatorExpr creates a new UnaryOperatorExpr
func NewUnaryOperatorExpr(operator UnaryOperator, expr OutputExpression, sourceSpan *util.ParseSourceSpan) *UnaryOperatorExpr {
	return &UnaryOperatorExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Operator: operator, Expr: expr}
}

func (e *UnaryOperatorExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*UnaryOperatorExpr)
	return ok && e.Operator == o.Operator && e.Expr.IsEquivalent(o.Expr)
}

func (e *UnaryOperatorExpr) IsConstant() bool { return false }

func (e *UnaryOperatorExpr) Clone() OutputExpression {
	return NewUnaryOperatorExpr(e.Operator, e.Expr.Clone(), e.SourceSpan)
}

// NotExpr negates a condition
type NotExpr struct {
	ExpressionBase
	Condition OutputExpression
}

// NewNotExpr creates a new NotExpr
func NewNotExpr(condition OutputExpression, sourceSpan *util.ParseSourceSpan) *NotExpr {
	return &NotExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Condition: condition}
}

func (e *NotExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*NotExpr)
	return ok && e.Condition.IsEquivalent(o.Condition)
}

func (e *NotExpr) IsConstant() bool { return false }

func (e *NotExpr) Clone() OutputExpression {
	return NewNotExpr(e.Condition.Clone(), e.SourceSpan)
}

// TypeofExpr is a `typeof` expression
type TypeofExpr struct {
	ExpressionBase
	Expr OutputExpression
}

// NewTypeofExpr creates a new TypeofExpr
func NewTypeofExpr(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *TypeofExpr {
	return &TypeofExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Expr: expr}
}

func (e *TypeofExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*TypeofExpr)
	return ok && e.Expr.IsEquivalent(o.Expr)
}

func (e *TypeofExpr) IsConstant() bool { return e.Expr.IsConstant() }

func (e *TypeofExpr) Clone() OutputExpression {
	return NewTypeofExpr(e.Expr.Clone(), e.SourceSpan)
}

// ConditionalExpr is a ternary expression. A nil FalseCase renders as `null`.
type ConditionalExpr struct {
	ExpressionBase
	Condition OutputExpression
	TrueCase  OutputExpression
	FalseCase OutputExpression
}

// NewConditionalExpr creates a new ConditionalExpr
func NewConditionalExpr(condition, trueCase, falseCase OutputExpression, sourceSpan *util.ParseSourceSpan) *ConditionalExpr {
	return &ConditionalExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Condition:      condition,
		TrueCase:       trueCase,
		FalseCase:      falseCase,
	}
}

func (e *ConditionalExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ConditionalExpr)
	return ok &&
		e.Condition.IsEquivalent(o.Condition) &&
		e.TrueCase.IsEquivalent(o.TrueCase) &&
		NullSafeIsEquivalent(e.FalseCase, o.FalseCase)
}

func (e *ConditionalExpr) IsConstant() bool { return false }

func (e *ConditionalExpr) Clone() OutputExpression {
	var falseCase OutputExpression
	if e.FalseCase != nil {
		falseCase = e.FalseCase.Clone()
	}
	return NewConditionalExpr(e.Condition.Clone(), e.TrueCase.Clone(), falseCase, e.SourceSpan)
}

// ReadPropExpr reads a named property of a receiver
type ReadPropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
}

// NewReadPropExpr creates a new ReadPropExpr
func NewReadPropExpr(receiver OutputExpression, name string, sourceSpan *util.ParseSourceSpan) *ReadPropExpr {
	return &ReadPropExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Receiver: receiver, Name: name}
}

func (e *ReadPropExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ReadPropExpr)
	return ok && e.Name == o.Name && e.Receiver.IsEquivalent(o.Receiver)
}

func (e *ReadPropExpr) IsConstant() bool { return false }

func (e *ReadPropExpr) Clone() OutputExpression {
	return NewReadPropExpr(e.Receiver.Clone(), e.Name, e.SourceSpan)
}

// ReadKeyExpr reads a keyed property of a receiver
type ReadKeyExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Index    OutputExpression
}

// NewReadKeyExpr creates a new ReadKeyExpr
func NewReadKeyExpr(receiver, index OutputExpression, sourceSpan *util.ParseSourceSpan) *ReadKeyExpr {
	return &ReadKeyExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Receiver: receiver, Index: index}
}

func (e *ReadKeyExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ReadKeyExpr)
	return ok && e.Receiver.IsEquivalent(o.Receiver) && e.Index.IsEquivalent(o.Index)
}

func (e *ReadKeyExpr) IsConstant() bool { return false }

func (e *ReadKeyExpr) Clone() OutputExpression {
	return NewReadKeyExpr(e.Receiver.Clone(), e.Index.Clone(), e.SourceSpan)
}

// InvokeFunctionExpr calls a function
type InvokeFunctionExpr struct {
	ExpressionBase
	Fn   OutputExpression
	Args []OutputExpression
	Pure bool
}

// NewInvokeFunctionExpr creates a new InvokeFunctionExpr
func NewInvokeFunctionExpr(fn OutputExpression, args []OutputExpression, sourceSpan *util.ParseSourceSpan, pure bool) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Fn: fn, Args: args, Pure: pure}
}

func (e *InvokeFunctionExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*InvokeFunctionExpr)
	return ok && e.Pure == o.Pure && e.Fn.IsEquivalent(o.Fn) && AreAllEquivalent(e.Args, o.Args)
}

func (e *InvokeFunctionExpr) IsConstant() bool { return false }

func (e *InvokeFunctionExpr) Clone() OutputExpression {
	return NewInvokeFunctionExpr(e.Fn.Clone(), CloneAll(e.Args), e.SourceSpan, e.Pure)
}

// LiteralArrayExpr is an array literal
type LiteralArrayExpr struct {
	ExpressionBase
	Entries []OutputExpression
}

// NewLiteralArrayExpr creates a new LiteralArrayExpr
func NewLiteralArrayExpr(entries []OutputExpression, sourceSpan *util.ParseSourceSpan) *LiteralArrayExpr {
	return &LiteralArrayExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Entries: entries}
}

func (e *LiteralArrayExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralArrayExpr)
	return ok && AreAllEquivalent(e.Entries, o.Entries)
}

func (e *LiteralArrayExpr) IsConstant() bool {
	for _, entry := range e.Entries {
		if !entry.IsConstant() {
			return false
		}
	}
	return true
}

func (e *LiteralArrayExpr) Clone() OutputExpression {
	return NewLiteralArrayExpr(CloneAll(e.Entries), e.SourceSpan)
}

// LiteralMapEntry is a single key of a LiteralMapExpr
type LiteralMapEntry struct {
	Key    string
	Value  OutputExpression
	Quoted bool
}

// NewLiteralMapEntry creates a new LiteralMapEntry
func NewLiteralMapEntry(key string, value OutputExpression, quoted bool) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: quoted}
}

// LiteralMapExpr is an object literal
type LiteralMapExpr struct {
	ExpressionBase
	Entries []*LiteralMapEntry
}

// NewLiteralMapExpr creates a new LiteralMapExpr
func NewLiteralMapExpr(entries []*LiteralMapEntry, sourceSpan *util.ParseSourceSpan) *LiteralMapExpr {
	return &LiteralMapExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Entries: entries}
}

func (e *LiteralMapExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralMapExpr)
	if !ok || len(e.Entries) != len(o.Entries) {
		return false
	}
	for i, entry := range e.Entries {
		oe := o.Entries[i]
		if entry.Key != oe.Key || entry.Quoted != oe.Quoted || !entry.Value.IsEquivalent(oe.Value) {
			return false
		}
	}
	return true
}

func (e *LiteralMapExpr) IsConstant() bool {
	for _, entry := range e.Entries {
		if !entry.Value.IsConstant() {
			return false
		}
	}
	return true
}

func (e *LiteralMapExpr) Clone() OutputExpression {
	entries := make([]*LiteralMapEntry, len(e.Entries))
	for i, entry := range e.Entries {
		entries[i] = NewLiteralMapEntry(entry.Key, entry.Value.Clone(), entry.Quoted)
	}
	return NewLiteralMapExpr(entries, e.SourceSpan)
}

// FnParam is a function parameter
type FnParam struct {
	Name string
}

// NewFnParam creates a new FnParam
func NewFnParam(name string) *FnParam {
	return &FnParam{Name: name}
}

// FunctionExpr is a `function` expression. Name is empty for anonymous functions.
type FunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Statements []OutputStatement
	Name       string
}

// NewFunctionExpr creates a new FunctionExpr
func NewFunctionExpr(params []*FnParam, statements []OutputStatement, sourceSpan *util.ParseSourceSpan, name string) *FunctionExpr {
	return &FunctionExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Params:         params,
		Statements:     statements,
		Name:           name,
	}
}

func (e *FunctionExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*FunctionExpr)
	return ok && areParamsEquivalent(e.Params, o.Params) && AreAllStatementsEquivalent(e.Statements, o.Statements)
}

func (e *FunctionExpr) IsConstant() bool { return false }

func (e *FunctionExpr) Clone() OutputExpression {
	params := append([]*FnParam(nil), e.Params...)
	return NewFunctionExpr(params, append([]OutputStatement(nil), e.Statements...), e.SourceSpan, e.Name)
}

// IsEquivalentToStmt compares the function with a function declaration
func (e *FunctionExpr) IsEquivalentToStmt(stmt *DeclareFunctionStmt) bool {
	return areParamsEquivalent(e.Params, stmt.Params) && AreAllStatementsEquivalent(e.Statements, stmt.Statements)
}

// ToDeclStmt converts the function into a named declaration
func (e *FunctionExpr) ToDeclStmt(name string) *DeclareFunctionStmt {
	return NewDeclareFunctionStmt(name, e.Params, e.Statements, e.SourceSpan)
}

// ArrowFunctionExpr is an arrow function. Exactly one of Body or Statements is set.
type ArrowFunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Body       OutputExpression
	Statements []OutputStatement
}

// NewArrowFunctionExpr creates an arrow function with an expression body
func NewArrowFunctionExpr(params []*FnParam, body OutputExpression, sourceSpan *util.ParseSourceSpan) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Params: params, Body: body}
}

// NewArrowFunctionWithStatements creates an arrow function with a block body
func NewArrowFunctionWithStatements(params []*FnParam, statements []OutputStatement, sourceSpan *util.ParseSourceSpan) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Params: params, Statements: statements}
}

func (e *ArrowFunctionExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ArrowFunctionExpr)
	if !ok || !areParamsEquivalent(e.Params, o.Params) {
		return false
	}
	if e.Body != nil || o.Body != nil {
		return NullSafeIsEquivalent(e.Body, o.Body)
	}
	return AreAllStatementsEquivalent(e.Statements, o.Statements)
}

func (e *ArrowFunctionExpr) IsConstant() bool { return false }

func (e *ArrowFunctionExpr) Clone() OutputExpression {
	params := append([]*FnParam(nil), e.Params...)
	if e.Body != nil {
		return NewArrowFunctionExpr(params, e.Body.Clone(), e.SourceSpan)
	}
	return NewArrowFunctionWithStatements(params, append([]OutputStatement(nil), e.Statements...), e.SourceSpan)
}

// LocalizedString is a `$localize` tagged template for an i18n message.
// len(MessageParts) == len(PlaceholderNames)+1 == len(Expressions)+1.
type LocalizedString struct {
	ExpressionBase
	MetaBlock        string
	MessageParts     []string
	PlaceholderNames []string
	Expressions      []OutputExpression
}

// NewLocalizedString creates a new LocalizedString
func NewLocalizedString(metaBlock string, messageParts, placeholderNames []string, expressions []OutputExpression, sourceSpan *util.ParseSourceSpan) *LocalizedString {
	return &LocalizedString{
		ExpressionBase:   ExpressionBase{SourceSpan: sourceSpan},
		MetaBlock:        metaBlock,
		MessageParts:     messageParts,
		PlaceholderNames: placeholderNames,
		Expressions:      expressions,
	}
}

func (e *LocalizedString) IsEquivalent(other OutputExpression) bool {
	// Localized strings are never deduplicated.
	return false
}

func (e *LocalizedString) IsConstant() bool { return false }

func (e *LocalizedString) Clone() OutputExpression {
	return NewLocalizedString(e.MetaBlock, e.MessageParts, e.PlaceholderNames, CloneAll(e.Expressions), e.SourceSpan)
}

// DeclareVarStmt declares a variable
type DeclareVarStmt struct {
	SourceSpan *util.ParseSourceSpan
	Name       string
	Value      OutputExpression
	Modifiers  StmtModifier
}

// NewDeclareVarStmt creates a new DeclareVarStmt
func NewDeclareVarStmt(name string, value OutputExpression, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareVarStmt {
	return &DeclareVarStmt{SourceSpan: sourceSpan, Name: name, Value: value, Modifiers: modifiers}
}

func (s *DeclareVarStmt) GetSourceSpan() *util.ParseSourceSpan { return s.SourceSpan }

func (s *DeclareVarStmt) IsEquivalent(other OutputStatement) bool {
	o, ok := other.(*DeclareVarStmt)
	return ok && s.Name == o.Name && NullSafeIsEquivalent(s.Value, o.Value)
}

// HasModifier reports whether the declaration carries the given modifier
func (s *DeclareVarStmt) HasModifier(modifier StmtModifier) bool {
	return s.Modifiers&modifier != 0
}

// DeclareFunctionStmt declares a named function
type DeclareFunctionStmt struct {
	SourceSpan *util.ParseSourceSpan
	Name       string
	Params     []*FnParam
	Statements []OutputStatement
}

// NewDeclareFunctionStmt creates a new DeclareFunctionStmt
func NewDeclareFunctionStmt(name string, params []*FnParam, statements []OutputStatement, sourceSpan *util.ParseSourceSpan) *DeclareFunctionStmt {
	return &DeclareFunctionStmt{SourceSpan: sourceSpan, Name: name, Params: params, Statements: statements}
}

func (s *DeclareFunctionStmt) GetSourceSpan() *util.ParseSourceSpan { return s.SourceSpan }

func (s *DeclareFunctionStmt) IsEquivalent(other OutputStatement) bool {
	o, ok := other.(*DeclareFunctionStmt)
	return ok && areParamsEquivalent(s.Params, o.Params) && AreAllStatementsEquivalent(s.Statements, o.Statements)
}

// ExpressionStatement evaluates an expression for its side effects
type ExpressionStatement struct {
	SourceSpan *util.ParseSourceSpan
	Expr       OutputExpression
}

// NewExpressionStatement creates a new ExpressionStatement
func NewExpressionStatement(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *ExpressionStatement {
	return &ExpressionStatement{SourceSpan: sourceSpan, Expr: expr}
}

func (s *ExpressionStatement) GetSourceSpan() *util.ParseSourceSpan { return s.SourceSpan }

func (s *ExpressionStatement) IsEquivalent(other OutputStatement) bool {
	o, ok := other.(*ExpressionStatement)
	return ok && s.Expr.IsEquivalent(o.Expr)
}

// ReturnStatement returns a value
type ReturnStatement struct {
	SourceSpan *util.ParseSourceSpan
	Value      OutputExpression
}

// NewReturnStatement creates a new ReturnStatement
func NewReturnStatement(value OutputExpression, sourceSpan *util.ParseSourceSpan) *ReturnStatement {
	return &ReturnStatement{SourceSpan: sourceSpan, Value: value}
}

func (s *ReturnStatement) GetSourceSpan() *util.ParseSourceSpan { return s.SourceSpan }

func (s *ReturnStatement) IsEquivalent(other OutputStatement) bool {
	o, ok := other.(*ReturnStatement)
	return ok && s.Value.IsEquivalent(o.Value)
}

// IfStmt is an `if` statement with an optional else block
type IfStmt struct {
	SourceSpan *util.ParseSourceSpan
	Condition  OutputExpression
	TrueCase   []OutputStatement
	FalseCase  []OutputStatement
}

// NewIfStmt creates a new IfStmt
func NewIfStmt(condition OutputExpression, trueCase, falseCase []OutputStatement, sourceSpan *util.ParseSourceSpan) *IfStmt {
	return &IfStmt{SourceSpan: sourceSpan, Condition: condition, TrueCase: trueCase, FalseCase: falseCase}
}

func (s *IfStmt) GetSourceSpan() *util.ParseSourceSpan { return s.SourceSpan }

func (s *IfStmt) IsEquivalent(other OutputStatement) bool {
	o, ok := other.(*IfStmt)
	return ok &&
		s.Condition.IsEquivalent(o.Condition) &&
		AreAllStatementsEquivalent(s.TrueCase, o.TrueCase) &&
		AreAllStatementsEquivalent(s.FalseCase, o.FalseCase)
}

// NullSafeIsEquivalent compares two possibly nil expressions
func NullSafeIsEquivalent(base, other OutputExpression) bool {
	if base == nil || other == nil {
		return base == nil && other == nil
	}
	return base.IsEquivalent(other)
}

// AreAllEquivalent compares two expression lists element-wise
func AreAllEquivalent(base, other []OutputExpression) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !NullSafeIsEquivalent(base[i], other[i]) {
			return false
		}
	}
	return true
}

// AreAllStatementsEquivalent compares two statement lists element-wise
func AreAllStatementsEquivalent(base, other []OutputStatement) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}

// CloneAll clones every expression of a list
func CloneAll(exprs []OutputExpression) []OutputExpression {
	if exprs == nil {
		return nil
	}
	result := make([]OutputExpression, len(exprs))
	for i, e := range exprs {
		result[i] = e.Clone()
	}
	return result
}

func areParamsEquivalent(a, b []*FnParam) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
