package phases

import (
	"ngc-ir/packages/compiler/src/output"
	r3 "ngc-ir/packages/compiler/src/render3/r3_identifiers"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// chainCompatibility maps each chainable instruction to the instruction its chain is keyed
// by. A conditionalCreate can start a chain of conditionalBranchCreate calls.
var chainCompatibility = map[output.ExternalReference]output.ExternalReference{
	*r3.AriaProperty:             *r3.AriaProperty,
	*r3.Attribute:                *r3.Attribute,
	*r3.ClassProp:                *r3.ClassProp,
	*r3.Element:                  *r3.Element,
	*r3.ElementContainer:         *r3.ElementContainer,
	*r3.ElementContainerEnd:      *r3.ElementContainerEnd,
	*r3.ElementContainerStart:    *r3.ElementContainerStart,
	*r3.ElementEnd:               *r3.ElementEnd,
	*r3.ElementStart:             *r3.ElementStart,
	*r3.DomProperty:              *r3.DomProperty,
	*r3.I18nExp:                  *r3.I18nExp,
	*r3.Listener:                 *r3.Listener,
	*r3.Property:                 *r3.Property,
	*r3.StyleProp:                *r3.StyleProp,
	*r3.TemplateCreate:           *r3.TemplateCreate,
	*r3.TwoWayProperty:           *r3.TwoWayProperty,
	*r3.TwoWayListener:           *r3.TwoWayListener,
	*r3.DeclareLet:               *r3.DeclareLet,
	*r3.ConditionalCreate:        *r3.ConditionalBranchCreate,
	*r3.ConditionalBranchCreate:  *r3.ConditionalBranchCreate,
	*r3.DomElement:               *r3.DomElement,
	*r3.DomElementStart:          *r3.DomElementStart,
	*r3.DomElementEnd:            *r3.DomElementEnd,
	*r3.DomElementContainer:      *r3.DomElementContainer,
	*r3.DomElementContainerStart: *r3.DomElementContainerStart,
	*r3.DomElementContainerEnd:   *r3.DomElementContainerEnd,
	*r3.DomListener:              *r3.DomListener,
	*r3.DomTemplate:              *r3.DomTemplate,
}

// maxChainLength bounds chains so the generated call nesting stays within stack limits
const maxChainLength = 256

// Chain folds runs of compatible instruction calls into one chained call, so that
// `elementStart(0, 'div'); elementStart(1, 'span');` becomes
// `elementStart(0, 'div')(1, 'span');`.
func Chain(job compilation.CompilationJob) {
	for _, unit := range job.GetUnits() {
		chainOperationsInList(unit.GetCreate())
		chainOperationsInList(unit.GetUpdate())
	}
}

type instructionChain struct {
	op          *ir.StatementOp
	instruction output.ExternalReference
	expression  output.OutputExpression
	length      int
}

func chainOperationsInList(ops *ir.OpList) {
	var current *instructionChain
	for _, op := range ops.All() {
		call, instruction, ok := chainableCall(op)
		if !ok {
			current = nil
			continue
		}
		key := chainCompatibility[instruction]

		if current != nil && chainCompatibility[current.instruction] == key && current.length < maxChainLength {
			current.expression = output.NewInvokeFunctionExpr(current.expression, call.Args, call.GetSourceSpan(), call.Pure)
			current.op.Statement = output.NewExpressionStatement(current.expression, current.op.Statement.GetSourceSpan())
			current.length++
			ops.Remove(op)
			continue
		}
		current = &instructionChain{op: op.(*ir.StatementOp), instruction: instruction, expression: call, length: 1}
	}
}

func chainableCall(op ir.Op) (*output.InvokeFunctionExpr, output.ExternalReference, bool) {
	stmtOp, ok := op.(*ir.StatementOp)
	if !ok {
		return nil, output.ExternalReference{}, false
	}
	stmt, ok := stmtOp.Statement.(*output.ExpressionStatement)
	if !ok {
		return nil, output.ExternalReference{}, false
	}
	call, ok := stmt.Expr.(*output.InvokeFunctionExpr)
	if !ok {
		return nil, output.ExternalReference{}, false
	}
	external, ok := call.Fn.(*output.ExternalExpr)
	if !ok {
		return nil, output.ExternalReference{}, false
	}
	if _, ok := chainCompatibility[*external.Value]; !ok {
		return nil, output.ExternalReference{}, false
	}
	return call, *external.Value, true
}
