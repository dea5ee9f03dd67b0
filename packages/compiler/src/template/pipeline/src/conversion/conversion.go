package conversion

import (
	"strings"

	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
)

// BinaryOperators maps binary operator strings to their corresponding output.BinaryOperator values
var BinaryOperators = map[string]output.BinaryOperator{
	"&&":  output.BinaryOperatorAnd,
	">":   output.BinaryOperatorBigger,
	">=":  output.BinaryOperatorBiggerEquals,
	"|":   output.BinaryOperatorBitwiseOr,
	"&":   output.BinaryOperatorBitwiseAnd,
	"/":   output.BinaryOperatorDivide,
	"=":   output.BinaryOperatorAssign,
	"==":  output.BinaryOperatorEquals,
	"===": output.BinaryOperatorIdentical,
	"<":   output.BinaryOperatorLower,
	"<=":  output.BinaryOperatorLowerEquals,
	"-":   output.BinaryOperatorMinus,
	"%":   output.BinaryOperatorModulo,
	"**":  output.BinaryOperatorExponentiation,
	"*":   output.BinaryOperatorMultiply,
	"!=":  output.BinaryOperatorNotEquals,
	"!==": output.BinaryOperatorNotIdentical,
	"??":  output.BinaryOperatorNullishCoalesce,
	"||":  output.BinaryOperatorOr,
	"+":   output.BinaryOperatorPlus,
	"in":  output.BinaryOperatorIn,
}

var namespaces = map[string]ir.Namespace{
	"svg":  ir.NamespaceSVG,
	"math": ir.NamespaceMath,
}

// NamespaceForKey converts a namespace prefix key to an ir.Namespace
func NamespaceForKey(namespacePrefixKey string) ir.Namespace {
	if ns, ok := namespaces[namespacePrefixKey]; ok {
		return ns
	}
	return ir.NamespaceHTML
}

// KeyForNamespace converts an ir.Namespace to a namespace prefix key. HTML has no key.
func KeyForNamespace(namespace ir.Namespace) string {
	switch namespace {
	case ir.NamespaceSVG:
		return "svg"
	case ir.NamespaceMath:
		return "math"
	}
	return ""
}

// PrefixWithNamespace prefixes a tag name with its namespace
func PrefixWithNamespace(strippedTag string, namespace ir.Namespace) string {
	if namespace == ir.NamespaceHTML {
		return strippedTag
	}
	return ":" + KeyForNamespace(namespace) + ":" + strippedTag
}

// SplitNsName splits a `:ns:name` element or attribute name into its namespace prefix and
// local name. Names without a prefix return an empty namespace.
func SplitNsName(elementName string) (string, string) {
	if !strings.HasPrefix(elementName, ":") {
		return "", elementName
	}
	colonIndex := strings.Index(elementName[1:], ":")
	if colonIndex == -1 {
		ir.Assertf("unsupported format %q expecting \":namespace:name\"", elementName)
	}
	return elementName[1 : colonIndex+1], elementName[colonIndex+2:]
}

// LiteralOrArrayLiteral converts a literal value or array of literals to an output expression
func LiteralOrArrayLiteral(value interface{}) output.OutputExpression {
	switch v := value.(type) {
	case []interface{}:
		entries := make([]output.OutputExpression, len(v))
		for i, item := range v {
			entries[i] = LiteralOrArrayLiteral(item)
		}
		return output.NewLiteralArrayExpr(entries, nil)
	case []string:
		entries := make([]output.OutputExpression, len(v))
		for i, item := range v {
			entries[i] = output.NewLiteralExpr(item, nil)
		}
		return output.NewLiteralArrayExpr(entries, nil)
	}
	return output.NewLiteralExpr(value, nil)
}
