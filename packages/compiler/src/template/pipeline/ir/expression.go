package ir

import (
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/util"
)

// ExpressionTransform converts an expression into another, or returns it unchanged
type ExpressionTransform func(expr output.OutputExpression, flags VisitorContextFlag) output.OutputExpression

// VisitorContextFlag describes where a visited expression sits
type VisitorContextFlag int

const (
	// VisitorContextFlagNone - no flags
	VisitorContextFlagNone VisitorContextFlag = 0
	// VisitorContextFlagInChildOperation - inside a nested op list, such as a listener handler
	VisitorContextFlagInChildOperation VisitorContextFlag = 0b0001
)

// Expression is a logical IR expression. It must be lowered before reification.
type Expression interface {
	output.OutputExpression
	GetExpressionKind() ExpressionKind
	TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag)
}

// IsIrExpression checks whether an output expression is a logical IR expression
func IsIrExpression(expr output.OutputExpression) bool {
	_, ok := expr.(Expression)
	return ok
}

type expressionBase struct {
	output.ExpressionBase
}

func (*expressionBase) IsConstant() bool { return false }

func (*expressionBase) TransformInternalExpressions(ExpressionTransform, VisitorContextFlag) {}

// LexicalReadExpr reads a name from the lexical scope, before name resolution
type LexicalReadExpr struct {
	expressionBase
	Name string
}

func NewLexicalReadExpr(name string, span *util.ParseSourceSpan) *LexicalReadExpr {
	e := &LexicalReadExpr{Name: name}
	e.SourceSpan = span
	return e
}

func (*LexicalReadExpr) GetExpressionKind() ExpressionKind { return ExpressionKindLexicalRead }

func (e *LexicalReadExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*LexicalReadExpr)
	return ok && o.Name == e.Name
}

func (e *LexicalReadExpr) Clone() output.OutputExpression { return NewLexicalReadExpr(e.Name, e.SourceSpan) }

// ReferenceExpr retrieves the value of a local reference
type ReferenceExpr struct {
	expressionBase
	Target     XrefId
	TargetSlot *SlotHandle
	Offset     int
}

func NewReferenceExpr(target XrefId, targetSlot *SlotHandle, offset int) *ReferenceExpr {
	return &ReferenceExpr{Target: target, TargetSlot: targetSlot, Offset: offset}
}

func (*ReferenceExpr) GetExpressionKind() ExpressionKind { return ExpressionKindReference }

func (e *ReferenceExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ReferenceExpr)
	return ok && o.Target == e.Target && o.Offset == e.Offset
}

func (e *ReferenceExpr) Clone() output.OutputExpression {
	return NewReferenceExpr(e.Target, e.TargetSlot, e.Offset)
}

// StoreLetExpr stores the value of a `@let` declaration so other views can read it
type StoreLetExpr struct {
	expressionBase
	ConsumesVarsTrait
	DependsOnSlotContextOpTrait
	Value output.OutputExpression
}

func NewStoreLetExpr(target XrefId, value output.OutputExpression, span *util.ParseSourceSpan) *StoreLetExpr {
	e := &StoreLetExpr{DependsOnSlotContextOpTrait: DependsOnSlotContextOpTrait{Target: target}, Value: value}
	e.SourceSpan = span
	return e
}

func (*StoreLetExpr) GetExpressionKind() ExpressionKind { return ExpressionKindStoreLet }

func (e *StoreLetExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*StoreLetExpr)
	return ok && o.Target == e.Target && o.Value.IsEquivalent(e.Value)
}

func (e *StoreLetExpr) Clone() output.OutputExpression {
	return NewStoreLetExpr(e.Target, e.Value.Clone(), e.SourceSpan)
}

func (e *StoreLetExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Value = TransformExpressionsInExpression(e.Value, transform, flags)
}

// ContextLetReferenceExpr reads a `@let` declaration stored by another view
type ContextLetReferenceExpr struct {
	expressionBase
	Target     XrefId
	TargetSlot *SlotHandle
}

func NewContextLetReferenceExpr(target XrefId, targetSlot *SlotHandle) *ContextLetReferenceExpr {
	return &ContextLetReferenceExpr{Target: target, TargetSlot: targetSlot}
}

func (*ContextLetReferenceExpr) GetExpressionKind() ExpressionKind {
	return ExpressionKindContextLetReference
}

func (e *ContextLetReferenceExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ContextLetReferenceExpr)
	return ok && o.Target == e.Target
}

func (e *ContextLetReferenceExpr) Clone() output.OutputExpression {
	return NewContextLetReferenceExpr(e.Target, e.TargetSlot)
}

// ContextExpr is a reference to the context of a view
type ContextExpr struct {
	expressionBase
	View XrefId
}

func NewContextExpr(view XrefId) *ContextExpr {
	return &ContextExpr{View: view}
}

func (*ContextExpr) GetExpressionKind() ExpressionKind { return ExpressionKindContext }

func (e *ContextExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ContextExpr)
	return ok && o.View == e.View
}

func (e *ContextExpr) Clone() output.OutputExpression { return NewContextExpr(e.View) }

// TrackContextExpr is the component context inside a track function
type TrackContextExpr struct {
	expressionBase
	View XrefId
}

func NewTrackContextExpr(view XrefId) *TrackContextExpr {
	return &TrackContextExpr{View: view}
}

func (*TrackContextExpr) GetExpressionKind() ExpressionKind { return ExpressionKindTrackContext }

func (e *TrackContextExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*TrackContextExpr)
	return ok && o.View == e.View
}

func (e *TrackContextExpr) Clone() output.OutputExpression { return NewTrackContextExpr(e.View) }

// NextContextExpr walks Steps views up from the current one
type NextContextExpr struct {
	expressionBase
	Steps int
}

func NewNextContextExpr() *NextContextExpr {
	return &NextContextExpr{Steps: 1}
}

func (*NextContextExpr) GetExpressionKind() ExpressionKind { return ExpressionKindNextContext }

func (e *NextContextExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*NextContextExpr)
	return ok && o.Steps == e.Steps
}

func (e *NextContextExpr) Clone() output.OutputExpression {
	return &NextContextExpr{Steps: e.Steps}
}

// GetCurrentViewExpr snapshots the current view so a listener can restore it
type GetCurrentViewExpr struct {
	expressionBase
}

func NewGetCurrentViewExpr() *GetCurrentViewExpr { return &GetCurrentViewExpr{} }

func (*GetCurrentViewExpr) GetExpressionKind() ExpressionKind { return ExpressionKindGetCurrentView }

func (*GetCurrentViewExpr) IsEquivalent(other output.OutputExpression) bool {
	_, ok := other.(*GetCurrentViewExpr)
	return ok
}

func (*GetCurrentViewExpr) Clone() output.OutputExpression { return NewGetCurrentViewExpr() }

// RestoreViewExpr restores a snapshotted view. It names the view by xref until variables are
// generated, then carries the expression reading the saved view.
type RestoreViewExpr struct {
	expressionBase
	View     XrefId
	ViewExpr output.OutputExpression
}

func NewRestoreViewExpr(view XrefId) *RestoreViewExpr {
	return &RestoreViewExpr{View: view}
}

func (*RestoreViewExpr) GetExpressionKind() ExpressionKind { return ExpressionKindRestoreView }

func (e *RestoreViewExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*RestoreViewExpr)
	if !ok {
		return false
	}
	if e.ViewExpr != nil || o.ViewExpr != nil {
		return output.NullSafeIsEquivalent(e.ViewExpr, o.ViewExpr)
	}
	return e.View == o.View
}

func (e *RestoreViewExpr) Clone() output.OutputExpression {
	c := NewRestoreViewExpr(e.View)
	if e.ViewExpr != nil {
		c.ViewExpr = e.ViewExpr.Clone()
	}
	return c
}

func (e *RestoreViewExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	if e.ViewExpr != nil {
		e.ViewExpr = TransformExpressionsInExpression(e.ViewExpr, transform, flags)
	}
}

// ResetViewExpr resets the current view after a RestoreViewExpr and yields Expr
type ResetViewExpr struct {
	expressionBase
	Expr output.OutputExpression
}

func NewResetViewExpr(expr output.OutputExpression) *ResetViewExpr {
	return &ResetViewExpr{Expr: expr}
}

func (*ResetViewExpr) GetExpressionKind() ExpressionKind { return ExpressionKindResetView }

func (e *ResetViewExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ResetViewExpr)
	return ok && e.Expr.IsEquivalent(o.Expr)
}

func (e *ResetViewExpr) Clone() output.OutputExpression { return NewResetViewExpr(e.Expr.Clone()) }

func (e *ResetViewExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
}

// TwoWayBindingSetExpr writes the event value back to the target of a two-way binding
type TwoWayBindingSetExpr struct {
	expressionBase
	Target output.OutputExpression
	Value  output.OutputExpression
}

func NewTwoWayBindingSetExpr(target, value output.OutputExpression) *TwoWayBindingSetExpr {
	return &TwoWayBindingSetExpr{Target: target, Value: value}
}

func (*TwoWayBindingSetExpr) GetExpressionKind() ExpressionKind { return ExpressionKindTwoWayBindingSet }

func (e *TwoWayBindingSetExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*TwoWayBindingSetExpr)
	return ok && e.Target.IsEquivalent(o.Target) && e.Value.IsEquivalent(o.Value)
}

func (e *TwoWayBindingSetExpr) Clone() output.OutputExpression {
	return NewTwoWayBindingSetExpr(e.Target.Clone(), e.Value.Clone())
}

func (e *TwoWayBindingSetExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Target = TransformExpressionsInExpression(e.Target, transform, flags)
	e.Value = TransformExpressionsInExpression(e.Value, transform, flags)
}

// ReadVariableExpr reads a variable declared by a VariableOp
type ReadVariableExpr struct {
	expressionBase
	Xref XrefId
	Name string
}

func NewReadVariableExpr(xref XrefId) *ReadVariableExpr {
	return &ReadVariableExpr{Xref: xref}
}

func (*ReadVariableExpr) GetExpressionKind() ExpressionKind { return ExpressionKindReadVariable }

func (e *ReadVariableExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ReadVariableExpr)
	return ok && o.Xref == e.Xref
}

func (e *ReadVariableExpr) Clone() output.OutputExpression {
	return &ReadVariableExpr{Xref: e.Xref, Name: e.Name}
}

// PureFunctionExpr is a memoized computation over its Args. Body refers to the arguments through
// PureFunctionParameterExpr. Once extracted, Fn holds the reference to the shared function.
type PureFunctionExpr struct {
	expressionBase
	ConsumesVarsTrait
	UsesVarOffsetTrait
	Body output.OutputExpression
	Args []output.OutputExpression
	Fn   output.OutputExpression
}

func NewPureFunctionExpr(body output.OutputExpression, args []output.OutputExpression) *PureFunctionExpr {
	return &PureFunctionExpr{Body: body, Args: args}
}

func (*PureFunctionExpr) GetExpressionKind() ExpressionKind { return ExpressionKindPureFunctionExpr }

func (e *PureFunctionExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*PureFunctionExpr)
	if !ok || len(o.Args) != len(e.Args) {
		return false
	}
	return output.NullSafeIsEquivalent(e.Body, o.Body) && output.AreAllEquivalent(e.Args, o.Args)
}

func (e *PureFunctionExpr) Clone() output.OutputExpression {
	c := &PureFunctionExpr{Args: output.CloneAll(e.Args), Fn: e.Fn}
	if e.Body != nil {
		c.Body = e.Body.Clone()
	}
	c.VarOffset = e.VarOffset
	return c
}

// The body is visited as a child operation since it runs inside the extracted function.
func (e *PureFunctionExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	if e.Body != nil {
		e.Body = TransformExpressionsInExpression(e.Body, transform, flags|VisitorContextFlagInChildOperation)
	} else if e.Fn != nil {
		e.Fn = TransformExpressionsInExpression(e.Fn, transform, flags)
	}
	for i, arg := range e.Args {
		e.Args[i] = TransformExpressionsInExpression(arg, transform, flags)
	}
}

// PureFunctionParameterExpr is the Index-th argument inside a pure function body
type PureFunctionParameterExpr struct {
	expressionBase
	Index int
}

func NewPureFunctionParameterExpr(index int) *PureFunctionParameterExpr {
	return &PureFunctionParameterExpr{Index: index}
}

func (*PureFunctionParameterExpr) GetExpressionKind() ExpressionKind {
	return ExpressionKindPureFunctionParameterExpr
}

func (e *PureFunctionParameterExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*PureFunctionParameterExpr)
	return ok && o.Index == e.Index
}

func (e *PureFunctionParameterExpr) Clone() output.OutputExpression {
	return NewPureFunctionParameterExpr(e.Index)
}

// PipeBindingExpr applies the pipe instantiated by the op Target to Args
type PipeBindingExpr struct {
	expressionBase
	ConsumesVarsTrait
	UsesVarOffsetTrait
	Target     XrefId
	TargetSlot *SlotHandle
	Name       string
	Args       []output.OutputExpression
}

func NewPipeBindingExpr(target XrefId, targetSlot *SlotHandle, name string, args []output.OutputExpression) *PipeBindingExpr {
	return &PipeBindingExpr{Target: target, TargetSlot: targetSlot, Name: name, Args: args}
}

func (*PipeBindingExpr) GetExpressionKind() ExpressionKind { return ExpressionKindPipeBinding }

func (e *PipeBindingExpr) IsEquivalent(output.OutputExpression) bool { return false }

func (e *PipeBindingExpr) Clone() output.OutputExpression {
	c := NewPipeBindingExpr(e.Target, e.TargetSlot, e.Name, output.CloneAll(e.Args))
	c.VarOffset = e.VarOffset
	return c
}

func (e *PipeBindingExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	for i, arg := range e.Args {
		e.Args[i] = TransformExpressionsInExpression(arg, transform, flags)
	}
}

// PipeBindingVariadicExpr applies a pipe to arguments packed into one array
type PipeBindingVariadicExpr struct {
	expressionBase
	ConsumesVarsTrait
	UsesVarOffsetTrait
	Target     XrefId
	TargetSlot *SlotHandle
	Name       string
	Args       output.OutputExpression
	NumArgs    int
}

func NewPipeBindingVariadicExpr(target XrefId, targetSlot *SlotHandle, name string, args output.OutputExpression, numArgs int) *PipeBindingVariadicExpr {
	return &PipeBindingVariadicExpr{Target: target, TargetSlot: targetSlot, Name: name, Args: args, NumArgs: numArgs}
}

func (*PipeBindingVariadicExpr) GetExpressionKind() ExpressionKind {
	return ExpressionKindPipeBindingVariadic
}

func (e *PipeBindingVariadicExpr) IsEquivalent(output.OutputExpression) bool { return false }

func (e *PipeBindingVariadicExpr) Clone() output.OutputExpression {
	c := NewPipeBindingVariadicExpr(e.Target, e.TargetSlot, e.Name, e.Args.Clone(), e.NumArgs)
	c.VarOffset = e.VarOffset
	return c
}

func (e *PipeBindingVariadicExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Args = TransformExpressionsInExpression(e.Args, transform, flags)
}

// SafePropertyReadExpr is `receiver?.name`
type SafePropertyReadExpr struct {
	expressionBase
	Receiver output.OutputExpression
	Name     string
}

func NewSafePropertyReadExpr(receiver output.OutputExpression, name string, span *util.ParseSourceSpan) *SafePropertyReadExpr {
	e := &SafePropertyReadExpr{Receiver: receiver, Name: name}
	e.SourceSpan = span
	return e
}

func (*SafePropertyReadExpr) GetExpressionKind() ExpressionKind { return ExpressionKindSafePropertyRead }

func (e *SafePropertyReadExpr) IsEquivalent(output.OutputExpression) bool { return false }

func (e *SafePropertyReadExpr) Clone() output.OutputExpression {
	return NewSafePropertyReadExpr(e.Receiver.Clone(), e.Name, e.SourceSpan)
}

func (e *SafePropertyReadExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
}

// SafeKeyedReadExpr is `receiver?.[index]`
type SafeKeyedReadExpr struct {
	expressionBase
	Receiver output.OutputExpression
	Index    output.OutputExpression
}

func NewSafeKeyedReadExpr(receiver, index output.OutputExpression, span *util.ParseSourceSpan) *SafeKeyedReadExpr {
	e := &SafeKeyedReadExpr{Receiver: receiver, Index: index}
	e.SourceSpan = span
	return e
}

func (*SafeKeyedReadExpr) GetExpressionKind() ExpressionKind { return ExpressionKindSafeKeyedRead }

func (e *SafeKeyedReadExpr) IsEquivalent(output.OutputExpression) bool { return false }

func (e *SafeKeyedReadExpr) Clone() output.OutputExpression {
	return NewSafeKeyedReadExpr(e.Receiver.Clone(), e.Index.Clone(), e.SourceSpan)
}

func (e *SafeKeyedReadExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
	e.Index = TransformExpressionsInExpression(e.Index, transform, flags)
}

// SafeInvokeFunctionExpr is `receiver?.(args)`
type SafeInvokeFunctionExpr struct {
	expressionBase
	Receiver output.OutputExpression
	Args     []output.OutputExpression
}

func NewSafeInvokeFunctionExpr(receiver output.OutputExpression, args []output.OutputExpression) *SafeInvokeFunctionExpr {
	return &SafeInvokeFunctionExpr{Receiver: receiver, Args: args}
}

func (*SafeInvokeFunctionExpr) GetExpressionKind() ExpressionKind {
	return ExpressionKindSafeInvokeFunction
}

func (e *SafeInvokeFunctionExpr) IsEquivalent(output.OutputExpression) bool { return false }

func (e *SafeInvokeFunctionExpr) Clone() output.OutputExpression {
	return NewSafeInvokeFunctionExpr(e.Receiver.Clone(), output.CloneAll(e.Args))
}

func (e *SafeInvokeFunctionExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
	for i, arg := range e.Args {
		e.Args[i] = TransformExpressionsInExpression(arg, transform, flags)
	}
}

// SafeTernaryExpr evaluates Expr unless Guard is null or undefined
type SafeTernaryExpr struct {
	expressionBase
	Guard output.OutputExpression
	Expr  output.OutputExpression
}

func NewSafeTernaryExpr(guard, expr output.OutputExpression) *SafeTernaryExpr {
	return &SafeTernaryExpr{Guard: guard, Expr: expr}
}

func (*SafeTernaryExpr) GetExpressionKind() ExpressionKind { return ExpressionKindSafeTernaryExpr }

func (e *SafeTernaryExpr) IsEquivalent(output.OutputExpression) bool { return false }

func (e *SafeTernaryExpr) Clone() output.OutputExpression {
	return NewSafeTernaryExpr(e.Guard.Clone(), e.Expr.Clone())
}

func (e *SafeTernaryExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Guard = TransformExpressionsInExpression(e.Guard, transform, flags)
	e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
}

// EmptyExpr stands for an empty binding expression
type EmptyExpr struct {
	expressionBase
}

func NewEmptyExpr(span *util.ParseSourceSpan) *EmptyExpr {
	e := &EmptyExpr{}
	e.SourceSpan = span
	return e
}

func (*EmptyExpr) GetExpressionKind() ExpressionKind { return ExpressionKindEmptyExpr }

func (*EmptyExpr) IsEquivalent(other output.OutputExpression) bool {
	_, ok := other.(*EmptyExpr)
	return ok
}

func (e *EmptyExpr) Clone() output.OutputExpression { return NewEmptyExpr(e.SourceSpan) }

// AssignTemporaryExpr assigns Expr to the temporary Xref and yields it
type AssignTemporaryExpr struct {
	expressionBase
	Expr output.OutputExpression
	Xref XrefId
	Name string
}

func NewAssignTemporaryExpr(expr output.OutputExpression, xref XrefId) *AssignTemporaryExpr {
	return &AssignTemporaryExpr{Expr: expr, Xref: xref}
}

func (*AssignTemporaryExpr) GetExpressionKind() ExpressionKind {
	return ExpressionKindAssignTemporaryExpr
}

func (e *AssignTemporaryExpr) IsEquivalent(output.OutputExpression) bool { return false }

func (e *AssignTemporaryExpr) Clone() output.OutputExpression {
	return &AssignTemporaryExpr{Expr: e.Expr.Clone(), Xref: e.Xref, Name: e.Name}
}

func (e *AssignTemporaryExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
}

// ReadTemporaryExpr reads the temporary Xref
type ReadTemporaryExpr struct {
	expressionBase
	Xref XrefId
	Name string
}

func NewReadTemporaryExpr(xref XrefId) *ReadTemporaryExpr {
	return &ReadTemporaryExpr{Xref: xref}
}

func (*ReadTemporaryExpr) GetExpressionKind() ExpressionKind { return ExpressionKindReadTemporaryExpr }

func (e *ReadTemporaryExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ReadTemporaryExpr)
	return ok && o.Xref == e.Xref
}

func (e *ReadTemporaryExpr) Clone() output.OutputExpression {
	return &ReadTemporaryExpr{Xref: e.Xref, Name: e.Name}
}

// SlotLiteralExpr emits the slot of Slot as a number literal
type SlotLiteralExpr struct {
	expressionBase
	Slot *SlotHandle
}

func NewSlotLiteralExpr(slot *SlotHandle) *SlotLiteralExpr {
	return &SlotLiteralExpr{Slot: slot}
}

func (*SlotLiteralExpr) GetExpressionKind() ExpressionKind { return ExpressionKindSlotLiteralExpr }

func (e *SlotLiteralExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*SlotLiteralExpr)
	return ok && o.Slot == e.Slot
}

func (e *SlotLiteralExpr) Clone() output.OutputExpression { return NewSlotLiteralExpr(e.Slot) }

// ConditionalCaseExpr is one branch of a conditional. A nil Expr is the default branch. Alias
// names the value of the test inside the branch view (`@if (x; as y)`).
type ConditionalCaseExpr struct {
	expressionBase
	Expr       output.OutputExpression
	Target     XrefId
	TargetSlot *SlotHandle
	Alias      *IdentifierVariable
}

func NewConditionalCaseExpr(expr output.OutputExpression, target XrefId, targetSlot *SlotHandle, alias *IdentifierVariable) *ConditionalCaseExpr {
	return &ConditionalCaseExpr{Expr: expr, Target: target, TargetSlot: targetSlot, Alias: alias}
}

func (*ConditionalCaseExpr) GetExpressionKind() ExpressionKind { return ExpressionKindConditionalCase }

func (e *ConditionalCaseExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ConditionalCaseExpr)
	return ok && o.Target == e.Target && output.NullSafeIsEquivalent(e.Expr, o.Expr)
}

func (e *ConditionalCaseExpr) Clone() output.OutputExpression {
	var expr output.OutputExpression
	if e.Expr != nil {
		expr = e.Expr.Clone()
	}
	return NewConditionalCaseExpr(expr, e.Target, e.TargetSlot, e.Alias)
}

func (e *ConditionalCaseExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	if e.Expr != nil {
		e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
	}
}

// ConstCollectedExpr is replaced by a reference into the consts array during const collection
type ConstCollectedExpr struct {
	expressionBase
	Expr output.OutputExpression
}

func NewConstCollectedExpr(expr output.OutputExpression) *ConstCollectedExpr {
	return &ConstCollectedExpr{Expr: expr}
}

func (*ConstCollectedExpr) GetExpressionKind() ExpressionKind { return ExpressionKindConstCollected }

func (e *ConstCollectedExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ConstCollectedExpr)
	return ok && e.Expr.IsEquivalent(o.Expr)
}

func (e *ConstCollectedExpr) Clone() output.OutputExpression {
	return NewConstCollectedExpr(e.Expr.Clone())
}

func (e *ConstCollectedExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
}

// Interpolation is the string and expression parts of an interpolated binding. Strings has
// one more entry than Expressions.
type Interpolation struct {
	expressionBase
	Strings          []string
	Expressions      []output.OutputExpression
	I18nPlaceholders []string
}

func NewInterpolation(strs []string, exprs []output.OutputExpression, i18nPlaceholders []string) *Interpolation {
	if len(i18nPlaceholders) != 0 && len(i18nPlaceholders) != len(exprs) {
		Assertf("expected %d placeholders, got %d", len(exprs), len(i18nPlaceholders))
	}
	return &Interpolation{Strings: strs, Expressions: exprs, I18nPlaceholders: i18nPlaceholders}
}

func (*Interpolation) GetExpressionKind() ExpressionKind { return ExpressionKindInterpolation }

func (e *Interpolation) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*Interpolation)
	if !ok || len(o.Strings) != len(e.Strings) {
		return false
	}
	for i := range e.Strings {
		if e.Strings[i] != o.Strings[i] {
			return false
		}
	}
	return output.AreAllEquivalent(e.Expressions, o.Expressions)
}

func (e *Interpolation) Clone() output.OutputExpression {
	return NewInterpolation(append([]string(nil), e.Strings...), output.CloneAll(e.Expressions), e.I18nPlaceholders)
}

func (e *Interpolation) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	for i, expr := range e.Expressions {
		e.Expressions[i] = TransformExpressionsInExpression(expr, transform, flags)
	}
}
