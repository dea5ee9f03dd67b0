package ir

import "ngc-ir/packages/compiler/src/output"

// CtxRef is the identifier under which a view's own context is known in the scope
const CtxRef = "CTX_REF_MARKER"

// SemanticVariable is a variable with a particular meaning in the template, named by a later phase
type SemanticVariable interface {
	GetKind() SemanticVariableKind
	GetName() string
	SetName(name string)
}

// SemanticVariableBase holds the kind and the assigned name. An empty name means not yet named.
type SemanticVariableBase struct {
	Kind SemanticVariableKind
	Name string
}

func (s *SemanticVariableBase) GetKind() SemanticVariableKind { return s.Kind }

func (s *SemanticVariableBase) GetName() string { return s.Name }

func (s *SemanticVariableBase) SetName(name string) { s.Name = name }

// ContextVariable is the context of a particular view
type ContextVariable struct {
	SemanticVariableBase
	View XrefId
}

func NewContextVariable(view XrefId) *ContextVariable {
	return &ContextVariable{SemanticVariableBase: SemanticVariableBase{Kind: SemanticVariableKindContext}, View: view}
}

// IdentifierVariable is a named identifier in the lexical scope of a view. Local identifiers
// (`@let`) are not visible in child views through the context.
type IdentifierVariable struct {
	SemanticVariableBase
	Identifier string
	Local      bool
}

func NewIdentifierVariable(identifier string, local bool) *IdentifierVariable {
	return &IdentifierVariable{
		SemanticVariableBase: SemanticVariableBase{Kind: SemanticVariableKindIdentifier},
		Identifier:           identifier,
		Local:                local,
	}
}

// SavedViewVariable is a snapshot of a view, restored inside listeners
type SavedViewVariable struct {
	SemanticVariableBase
	View XrefId
}

func NewSavedViewVariable(view XrefId) *SavedViewVariable {
	return &SavedViewVariable{SemanticVariableBase: SemanticVariableBase{Kind: SemanticVariableKindSavedView}, View: view}
}

// AliasVariable is inlined at every use, such as `$first` in a `@for` body
type AliasVariable struct {
	SemanticVariableBase
	Identifier string
	Expression output.OutputExpression
}

func NewAliasVariable(identifier string, expression output.OutputExpression) *AliasVariable {
	return &AliasVariable{
		SemanticVariableBase: SemanticVariableBase{Kind: SemanticVariableKindAlias},
		Identifier:           identifier,
		Expression:           expression,
	}
}
