package ir

import (
	"ngc-ir/packages/compiler/src/output"
)

// StatementOp wraps an output statement. Listener bodies and reified units are made of these.
type StatementOp struct {
	OpBase
	Statement output.OutputStatement
}

func NewStatementOp(statement output.OutputStatement) *StatementOp {
	return &StatementOp{Statement: statement}
}

func (*StatementOp) GetKind() OpKind { return OpKindStatement }

// VariableOp declares the semantic variable Variable, initialized with Initializer
type VariableOp struct {
	OpBase
	Xref        XrefId
	Variable    SemanticVariable
	Initializer output.OutputExpression
	Flags       VariableFlags
}

func NewVariableOp(xref XrefId, variable SemanticVariable, initializer output.OutputExpression, flags VariableFlags) *VariableOp {
	return &VariableOp{Xref: xref, Variable: variable, Initializer: initializer, Flags: flags}
}

func (*VariableOp) GetKind() OpKind { return OpKindVariable }
