package output

import (
	"fmt"
	"strconv"
	"strings"
)

// Wrapper is implemented by expressions that stand in for another expression, such as
// constant pool fixups. The printer renders the wrapped expression.
type Wrapper interface {
	Unwrap() OutputExpression
}

var binaryOperators = map[BinaryOperator]string{
	BinaryOperatorEquals:          "==",
	BinaryOperatorNotEquals:       "!=",
	BinaryOperatorAssign:          "=",
	BinaryOperatorIdentical:       "===",
	BinaryOperatorNotIdentical:    "!==",
	BinaryOperatorMinus:           "-",
	BinaryOperatorPlus:            "+",
	BinaryOperatorDivide:          "/",
	BinaryOperatorMultiply:        "*",
	BinaryOperatorModulo:          "%",
	BinaryOperatorAnd:             "&&",
	BinaryOperatorOr:              "||",
	BinaryOperatorBitwiseOr:       "|",
	BinaryOperatorBitwiseAnd:      "&",
	BinaryOperatorLower:           "<",
	BinaryOperatorLowerEquals:     "<=",
	BinaryOperatorBigger:          ">",
	BinaryOperatorBiggerEquals:    ">=",
	BinaryOperatorNullishCoalesce: "??",
	BinaryOperatorExponentiation:  "**",
	BinaryOperatorIn:              "in",
}

// BinaryOperatorString returns the source form of a binary operator
func BinaryOperatorString(op BinaryOperator) string {
	return binaryOperators[op]
}

// PrintExpression renders an expression as JavaScript-like source text. It is used for
// debug dumps and tests, not for emitting production code.
func PrintExpression(expr OutputExpression) string {
	p := &printer{}
	p.expr(expr)
	return p.sb.String()
}

// PrintStatements renders a statement list, one statement per line
func PrintStatements(stmts []OutputStatement) string {
	p := &printer{}
	for _, stmt := range stmts {
		p.stmt(stmt)
	}
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

func (p *printer) line(s string) {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	p.sb.WriteString(s)
}

func (p *printer) exprList(exprs []OutputExpression) {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.expr(e)
	}
}

func (p *printer) operand(expr OutputExpression) {
	switch expr.(type) {
	case *BinaryOperatorExpr, *ConditionalExpr:
		p.write("(")
		p.expr(expr)
		p.write(")")
	default:
		p.expr(expr)
	}
}

func (p *printer) params(params []*FnParam) {
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.Name
	}
	p.write("(" + strings.Join(names, ", ") + ")")
}

func (p *printer) block(stmts []OutputStatement) {
	p.write("{\n")
	p.indent++
	for _, s := range stmts {
		p.stmt(s)
	}
	p.indent--
	p.line("}")
}

func (p *printer) expr(expr OutputExpression) {
	switch e := expr.(type) {
	case nil:
		p.write("null")
	case Wrapper:
		p.expr(e.Unwrap())
	case *ReadVarExpr:
		p.write(e.Name)
	case *LiteralExpr:
		p.write(literalString(e.Value))
	case *ExternalExpr:
		p.write(e.Value.Name)
	case *BinaryOperatorExpr:
		p.operand(e.Lhs)
		p.write(" " + binaryOperators[e.Operator] + " ")
		p.operand(e.Rhs)
	case *UnaryOperatorExpr:
		if e.Operator == UnaryOperatorMinus {
			p.write("-")
		} else {
			p.write("+")
		}
		p.operand(e.Expr)
	case *NotExpr:
		p.write("!")
		p.operand(e.Condition)
	case *TypeofExpr:
		p.write("typeof ")
		p.operand(e.Expr)
	case *ConditionalExpr:
		p.operand(e.Condition)
		p.write(" ? ")
		p.operand(e.TrueCase)
		p.write(" : ")
		if e.FalseCase == nil {
			p.write("null")
		} else {
			p.operand(e.FalseCase)
		}
	case *ReadPropExpr:
		p.operand(e.Receiver)
		p.write("." + e.Name)
	case *ReadKeyExpr:
		p.operand(e.Receiver)
		p.write("[")
		p.expr(e.Index)
		p.write("]")
	case *InvokeFunctionExpr:
		switch e.Fn.(type) {
		case *FunctionExpr, *ArrowFunctionExpr:
			p.write("(")
			p.expr(e.Fn)
			p.write(")")
		default:
			p.operand(e.Fn)
		}
		p.write("(")
		p.exprList(e.Args)
		p.write(")")
	case *LiteralArrayExpr:
		p.write("[")
		p.exprList(e.Entries)
		p.write("]")
	case *LiteralMapExpr:
		p.write("{")
		for i, entry := range e.Entries {
			if i > 0 {
				p.write(", ")
			}
			if entry.Quoted {
				p.write(strconv.Quote(entry.Key))
			} else {
				p.write(entry.Key)
			}
			p.write(": ")
			p.expr(entry.Value)
		}
		p.write("}")
	case *FunctionExpr:
		p.write("function ")
		p.write(e.Name)
		p.params(e.Params)
		p.write(" ")
		p.block(e.Statements)
	case *ArrowFunctionExpr:
		p.params(e.Params)
		p.write(" => ")
		if e.Body != nil {
			if _, isMap := e.Body.(*LiteralMapExpr); isMap {
				p.write("(")
				p.expr(e.Body)
				p.write(")")
			} else {
				p.expr(e.Body)
			}
		} else {
			p.block(e.Statements)
		}
	case *LocalizedString:
		p.write("$localize `")
		if e.MetaBlock != "" {
			p.write(":" + e.MetaBlock + ":")
		}
		for i, part := range e.MessageParts {
			p.write(part)
			if i < len(e.Expressions) {
				p.write("${")
				p.expr(e.Expressions[i])
				p.write("}:" + e.PlaceholderNames[i] + ":")
			}
		}
		p.write("`")
	default:
		p.write(fmt.Sprintf("<%T>", expr))
	}
}

func (p *printer) stmt(stmt OutputStatement) {
	switch s := stmt.(type) {
	case *DeclareVarStmt:
		keyword := "let"
		if s.HasModifier(StmtModifierFinal) {
			keyword = "const"
		}
		if s.Value == nil {
			p.line(fmt.Sprintf("%s %s;\n", keyword, s.Name))
			return
		}
		p.line(fmt.Sprintf("%s %s = ", keyword, s.Name))
		p.expr(s.Value)
		p.write(";\n")
	case *DeclareFunctionStmt:
		p.line("function " + s.Name)
		p.params(s.Params)
		p.write(" ")
		p.block(s.Statements)
		p.write("\n")
	case *ExpressionStatement:
		p.line("")
		p.expr(s.Expr)
		p.write(";\n")
	case *ReturnStatement:
		p.line("return ")
		p.expr(s.Value)
		p.write(";\n")
	case *IfStmt:
		p.line("if (")
		p.expr(s.Condition)
		p.write(") ")
		p.block(s.TrueCase)
		if len(s.FalseCase) > 0 {
			p.write(" else ")
			p.block(s.FalseCase)
		}
		p.write("\n")
	default:
		p.line(fmt.Sprintf("<%T>\n", stmt))
	}
}

func literalString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprintf("%v", value)
}
