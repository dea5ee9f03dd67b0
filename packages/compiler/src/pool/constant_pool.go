package pool

import (
	"fmt"
	"strconv"
	"strings"

	"ngc-ir/packages/compiler/src/output"
)

const (
	constantPrefix = "_c"
	// PoolInclusionLengthThresholdForStrings is the length from which string literals are
	// pooled. Shorter primitives are always inlined.
	PoolInclusionLengthThresholdForStrings = 50
)

// unknownValueKey replaces dynamic expressions which can't be converted into a key, so
// `{foo: bar()}` is keyed as `{foo: <unknown>}`.
var unknownValueKey = output.NewReadVarExpr("<unknown>", nil)

// FixupExpression is a placeholder for a literal that may later be turned into a reference
// to a shared constant. The first use of a literal gets the literal itself; once a second
// use is seen every FixupExpression for it is redirected to the same constant.
type FixupExpression struct {
	output.ExpressionBase
	original output.OutputExpression
	resolved output.OutputExpression
	shared   bool
}

// NewFixupExpression creates a new FixupExpression
func NewFixupExpression(resolved output.OutputExpression) *FixupExpression {
	return &FixupExpression{
		ExpressionBase: output.ExpressionBase{SourceSpan: resolved.GetSourceSpan()},
		original:       resolved,
		resolved:       resolved,
	}
}

func (f *FixupExpression) IsEquivalent(e output.OutputExpression) bool {
	other, ok := e.(*FixupExpression)
	return ok && f.resolved.IsEquivalent(other.resolved)
}

func (f *FixupExpression) IsConstant() bool { return true }

func (f *FixupExpression) Clone() output.OutputExpression {
	panic("FixupExpression cannot be cloned")
}

// Unwrap returns the expression the fixup currently stands for
func (f *FixupExpression) Unwrap() output.OutputExpression {
	return f.resolved
}

// Shared reports whether the fixup was redirected to a shared constant
func (f *FixupExpression) Shared() bool {
	return f.shared
}

// Fixup redirects the expression to a shared constant reference
func (f *FixupExpression) Fixup(expression output.OutputExpression) {
	f.resolved = expression
	f.shared = true
}

// ConstantPool collects module-level constants for one compilation job. Keys are content
// addressed, so structurally identical literals share one declaration. A pool belongs to a
// single job and is not safe for concurrent use.
type ConstantPool struct {
	statements       []output.OutputStatement
	literals         map[string]*FixupExpression
	literalFactories map[string]output.OutputExpression
	sharedConstants  map[string]output.OutputExpression
	claimedNames     map[string]int
}

// NewConstantPool creates a new ConstantPool
func NewConstantPool() *ConstantPool {
	return &ConstantPool{
		literals:         make(map[string]*FixupExpression),
		literalFactories: make(map[string]output.OutputExpression),
		sharedConstants:  make(map[string]output.OutputExpression),
		claimedNames:     make(map[string]int),
	}
}

// GetConstLiteral returns an expression for a constant literal. Short primitives are
// returned unchanged. Other literals are declared as `_cN` the second time they are seen,
// or immediately when forceShared is set.
func (cp *ConstantPool) GetConstLiteral(literal output.OutputExpression, forceShared bool) output.OutputExpression {
	if _, isFixup := literal.(*FixupExpression); isFixup {
		return literal
	}
	if _, isLiteral := literal.(*output.LiteralExpr); isLiteral && !isLongStringLiteral(literal) {
		return literal
	}
	key := GenericKeyFnInstance.KeyOf(literal)
	fixup, exists := cp.literals[key]
	if !exists {
		fixup = NewFixupExpression(literal)
		cp.literals[key] = fixup
	}

	if (exists && !fixup.shared) || (!exists && forceShared) {
		name := cp.freshName()
		cp.statements = append(cp.statements, output.NewDeclareVarStmt(name, literal, output.StmtModifierFinal, nil))
		fixup.Fixup(output.NewReadVarExpr(name, nil))
	}
	return fixup
}

// GetSharedConstant declares a constant described by def once per key and returns a
// reference to it.
func (cp *ConstantPool) GetSharedConstant(def SharedConstantDefinition, expr output.OutputExpression) output.OutputExpression {
	key := def.KeyOf(expr)
	if ref, exists := cp.sharedConstants[key]; exists {
		return ref
	}
	name := cp.freshName()
	ref := output.NewReadVarExpr(name, nil)
	cp.sharedConstants[key] = ref
	cp.statements = append(cp.statements, def.ToSharedConstantDeclaration(name, expr))
	return ref
}

// GetLiteralFactory returns a shared pure factory for an array or map literal with dynamic
// entries, along with the dynamic entries to pass to it.
func (cp *ConstantPool) GetLiteralFactory(literal output.OutputExpression) (output.OutputExpression, []output.OutputExpression) {
	switch lit := literal.(type) {
	case *output.LiteralArrayExpr:
		keyEntries := make([]output.OutputExpression, len(lit.Entries))
		for i, e := range lit.Entries {
			keyEntries[i] = keyableOrUnknown(e)
		}
		key := GenericKeyFnInstance.KeyOf(output.NewLiteralArrayExpr(keyEntries, nil))
		return cp.getLiteralFactory(key, lit.Entries, func(entries []output.OutputExpression) output.OutputExpression {
			return output.NewLiteralArrayExpr(entries, nil)
		})
	case *output.LiteralMapExpr:
		keyEntries := make([]*output.LiteralMapEntry, len(lit.Entries))
		values := make([]output.OutputExpression, len(lit.Entries))
		for i, e := range lit.Entries {
			keyEntries[i] = output.NewLiteralMapEntry(e.Key, keyableOrUnknown(e.Value), e.Quoted)
			values[i] = e.Value
		}
		key := GenericKeyFnInstance.KeyOf(output.NewLiteralMapExpr(keyEntries, nil))
		return cp.getLiteralFactory(key, values, func(entries []output.OutputExpression) output.OutputExpression {
			mapEntries := make([]*output.LiteralMapEntry, len(entries))
			for i, value := range entries {
				mapEntries[i] = output.NewLiteralMapEntry(lit.Entries[i].Key, value, lit.Entries[i].Quoted)
			}
			return output.NewLiteralMapExpr(mapEntries, nil)
		})
	}
	panic(fmt.Sprintf("GetLiteralFactory only supports array and map literals, got %T", literal))
}

func keyableOrUnknown(e output.OutputExpression) output.OutputExpression {
	if e.IsConstant() {
		return e
	}
	return unknownValueKey
}

func (cp *ConstantPool) getLiteralFactory(
	key string,
	values []output.OutputExpression,
	resultMap func([]output.OutputExpression) output.OutputExpression,
) (output.OutputExpression, []output.OutputExpression) {
	var args []output.OutputExpression
	for _, e := range values {
		if !e.IsConstant() {
			args = append(args, e)
		}
	}
	if factory, exists := cp.literalFactories[key]; exists {
		return factory, args
	}

	resultExpressions := make([]output.OutputExpression, len(values))
	var params []*output.FnParam
	for i, e := range values {
		if e.IsConstant() {
			resultExpressions[i] = cp.GetConstLiteral(e, true)
			continue
		}
		name := fmt.Sprintf("a%d", i)
		resultExpressions[i] = output.NewReadVarExpr(name, nil)
		params = append(params, output.NewFnParam(name))
	}
	name := cp.freshName()
	cp.statements = append(cp.statements, output.NewDeclareVarStmt(
		name,
		output.NewArrowFunctionExpr(params, resultMap(resultExpressions), nil),
		output.StmtModifierFinal,
		nil,
	))
	factory := output.NewReadVarExpr(name, nil)
	cp.literalFactories[key] = factory
	return factory, args
}

// GetSharedFunctionReference returns a reference to a module-level function equivalent to
// fn, declaring it under prefix if no equivalent function exists yet.
func (cp *ConstantPool) GetSharedFunctionReference(fn output.OutputExpression, prefix string, useUniqueName bool) output.OutputExpression {
	_, isArrow := fn.(*output.ArrowFunctionExpr)
	for _, current := range cp.statements {
		switch stmt := current.(type) {
		case *output.DeclareVarStmt:
			if isArrow && stmt.Value != nil && stmt.Value.IsEquivalent(fn) {
				return output.NewReadVarExpr(stmt.Name, nil)
			}
		case *output.DeclareFunctionStmt:
			if fnExpr, ok := fn.(*output.FunctionExpr); ok && fnExpr.IsEquivalentToStmt(stmt) {
				return output.NewReadVarExpr(stmt.Name, nil)
			}
		}
	}

	name := prefix
	if useUniqueName {
		name = cp.UniqueName(prefix, true)
	}
	if fnExpr, ok := fn.(*output.FunctionExpr); ok {
		cp.statements = append(cp.statements, fnExpr.ToDeclStmt(name))
	} else {
		cp.statements = append(cp.statements, output.NewDeclareVarStmt(name, fn, output.StmtModifierFinal, fn.GetSourceSpan()))
	}
	return output.NewReadVarExpr(name, nil)
}

// UniqueName produces a name unique within this pool. Prefixes must not end in a digit,
// otherwise names of different prefixes may collide.
func (cp *ConstantPool) UniqueName(name string, alwaysIncludeSuffix bool) string {
	count := cp.claimedNames[name]
	cp.claimedNames[name] = count + 1
	if count == 0 && !alwaysIncludeSuffix {
		return name
	}
	return fmt.Sprintf("%s%d", name, count)
}

func (cp *ConstantPool) freshName() string {
	return cp.UniqueName(constantPrefix, true)
}

// Statements returns the declarations collected so far
func (cp *ConstantPool) Statements() []output.OutputStatement {
	return cp.statements
}

// AddStatement appends a declaration to the pool
func (cp *ConstantPool) AddStatement(stmt output.OutputStatement) {
	cp.statements = append(cp.statements, stmt)
}

// ExpressionKeyFn computes the deduplication key of an expression
type ExpressionKeyFn interface {
	KeyOf(expr output.OutputExpression) string
}

// SharedConstantDefinition describes a family of shared constants
type SharedConstantDefinition interface {
	ExpressionKeyFn
	ToSharedConstantDeclaration(declName string, keyExpr output.OutputExpression) output.OutputStatement
}

// GenericKeyFn keys literal expression trees by their content
type GenericKeyFn struct{}

// GenericKeyFnInstance is the shared GenericKeyFn
var GenericKeyFnInstance = &GenericKeyFn{}

// KeyOf returns the content key of expr. It panics on expressions that cannot be keyed.
func (g *GenericKeyFn) KeyOf(expr output.OutputExpression) string {
	switch e := expr.(type) {
	case *FixupExpression:
		// Key the constant, not the variable referring to it.
		return g.KeyOf(e.original)
	case *output.LiteralExpr:
		if str, ok := e.Value.(string); ok {
			return strconv.Quote(str)
		}
		return fmt.Sprintf("%v", e.Value)
	case *output.LiteralArrayExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = g.KeyOf(entry)
		}
		return "[" + strings.Join(entries, ",") + "]"
	case *output.LiteralMapExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			key := entry.Key
			if entry.Quoted {
				key = strconv.Quote(key)
			}
			entries[i] = key + ":" + g.KeyOf(entry.Value)
		}
		return "{" + strings.Join(entries, ",") + "}"
	case *output.ExternalExpr:
		return fmt.Sprintf("import(%q, %q)", e.Value.ModuleName, e.Value.Name)
	case *output.ReadVarExpr:
		return "read(" + e.Name + ")"
	case *output.TypeofExpr:
		return "typeof(" + g.KeyOf(e.Expr) + ")"
	}
	panic(fmt.Sprintf("GenericKeyFn does not handle expressions of type %T", expr))
}

func isLongStringLiteral(expr output.OutputExpression) bool {
	if lit, ok := expr.(*output.LiteralExpr); ok {
		if str, ok := lit.Value.(string); ok {
			return len(str) >= PoolInclusionLengthThresholdForStrings
		}
	}
	return false
}

var _ output.Wrapper = (*FixupExpression)(nil)
