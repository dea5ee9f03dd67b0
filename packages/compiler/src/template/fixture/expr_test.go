package fixture

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"ngc-ir/packages/compiler/src/expression_parser"
	"ngc-ir/packages/compiler/src/util"
)

// unparse renders a template expression in template syntax
func unparse(ast expression_parser.AST) string {
	list := func(items []expression_parser.AST, sep string) string {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = unparse(item)
		}
		return strings.Join(parts, sep)
	}
	receiver := func(r expression_parser.AST) string {
		if _, ok := r.(*expression_parser.ImplicitReceiver); ok {
			return ""
		}
		return unparse(r)
	}

	switch a := ast.(type) {
	case *expression_parser.EmptyExpr:
		return "<empty>"
	case *expression_parser.ImplicitReceiver:
		return ""
	case *expression_parser.ThisReceiver:
		return "this"
	case *expression_parser.PropertyRead:
		if r := receiver(a.Receiver); r != "" {
			return r + "." + a.Name
		}
		return a.Name
	case *expression_parser.SafePropertyRead:
		return receiver(a.Receiver) + "?." + a.Name
	case *expression_parser.KeyedRead:
		return unparse(a.Receiver) + "[" + unparse(a.Key) + "]"
	case *expression_parser.SafeKeyedRead:
		return unparse(a.Receiver) + "?.[" + unparse(a.Key) + "]"
	case *expression_parser.Call:
		return unparse(a.Receiver) + "(" + list(a.Args, ", ") + ")"
	case *expression_parser.SafeCall:
		return unparse(a.Receiver) + "?.(" + list(a.Args, ", ") + ")"
	case *expression_parser.LiteralPrimitive:
		switch v := a.Value.(type) {
		case nil:
			return "null"
		case string:
			return fmt.Sprintf("%q", v)
		default:
			return fmt.Sprint(v)
		}
	case *expression_parser.LiteralArray:
		return "[" + list(a.Expressions, ", ") + "]"
	case *expression_parser.LiteralMap:
		parts := make([]string, len(a.Keys))
		for i, key := range a.Keys {
			k := key.Key
			if key.Quoted {
				k = "'" + k + "'"
			}
			parts[i] = k + ": " + unparse(a.Values[i])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *expression_parser.Binary:
		return unparse(a.Left) + " " + a.Operation + " " + unparse(a.Right)
	case *expression_parser.Unary:
		return a.Operator + unparse(a.Expr)
	case *expression_parser.PrefixNot:
		return "!" + unparse(a.Expression)
	case *expression_parser.Conditional:
		return unparse(a.Condition) + " ? " + unparse(a.TrueExp) + " : " + unparse(a.FalseExp)
	case *expression_parser.ParenthesizedExpression:
		return "(" + unparse(a.Expression) + ")"
	case *expression_parser.BindingPipe:
		out := "(" + unparse(a.Exp) + " | " + a.Name
		for _, arg := range a.Args {
			out += ":" + unparse(arg)
		}
		return out + ")"
	case *expression_parser.Chain:
		return list(a.Expressions, "; ")
	case *expression_parser.TypeofExpression:
		return "typeof " + unparse(a.Expression)
	case *expression_parser.NonNullAssert:
		return unparse(a.Expression) + "!"
	case *expression_parser.Interpolation:
		var sb strings.Builder
		for i, s := range a.Strings {
			sb.WriteString(s)
			if i < len(a.Expressions) {
				sb.WriteString("{{" + unparse(a.Expressions[i]) + "}}")
			}
		}
		return sb.String()
	}
	return fmt.Sprintf("<%T>", ast)
}

func convertExpr(t *testing.T, src string, binding bool) (string, hcl.Diagnostics) {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "expr.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		t.Fatalf("invalid test expression %q: %s", src, diags)
	}
	c := &converter{file: util.NewParseSourceFile(src, "expr.hcl")}
	var ast expression_parser.AST
	if binding {
		ast = c.bindingValue(expr)
	} else {
		ast = c.expr(expr)
	}
	return unparse(ast), c.diags
}

func TestExpr(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "should read properties", src: "user.name", want: "user.name"},
		{name: "should map a leading underscore to a dollar", src: "_event.target", want: "$event.target"},
		{name: "should read constant indexes", src: "items[0]", want: "items[0]"},
		{name: "should read computed indexes", src: "items[key]", want: "items[key]"},
		{name: "should read through this", src: "this.value", want: "this.value"},
		{name: "should convert operators", src: "a == b && !c", want: "a == b && !c"},
		{name: "should negate", src: "-x", want: "-x"},
		{name: "should convert conditionals", src: `ok ? "yes" : "no"`, want: `ok ? "yes" : "no"`},
		{name: "should keep parentheses", src: "(a + b) * 2", want: "(a + b) * 2"},
		{name: "should convert arrays", src: `[1, "two", true, null, 1.5]`, want: `[1, "two", true, null, 1.5]`},
		{name: "should convert maps", src: `{ a = 1, "b-c" = x }`, want: `{a: 1, 'b-c': x}`},
		{name: "should convert pipes", src: `pipe("date", when, "short")`, want: `(when | date:"short")`},
		{name: "should convert safe reads", src: "safe(user.name)", want: "user?.name"},
		{name: "should convert safe keyed reads", src: "safe(items[i])", want: "items?.[i]"},
		{name: "should convert safe calls", src: "safe(load())", want: "load?.()"},
		{name: "should call functions", src: "save(x, 1)", want: "save(x, 1)"},
		{name: "should call methods", src: "user::save(x)", want: "user.save(x)"},
		{name: "should call methods of this", src: "this::reset()", want: "this.reset()"},
		{name: "should fold identical", src: "identical(a, b, c)", want: "a === b === c"},
		{name: "should convert coalesce", src: `coalesce(a, "x")`, want: `a ?? "x"`},
		{name: "should convert chains of assignments", src: "chain(set(a, 1), go())", want: "a = 1; go()"},
		{name: "should convert typeof", src: "typeof(x)", want: "typeof x"},
		{name: "should convert non-null assertions", src: "non_null(x)", want: "x!"},
		{name: "should convert unary plus", src: "plus(x)", want: "+x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := convertExpr(t, tt.src, false)
			if diags.HasErrors() {
				t.Fatalf("unexpected diagnostics: %s", diags)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("expr mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBindingValue(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "should interpolate templates", src: `"Hello ${name}!"`, want: "Hello {{name}}!"},
		{name: "should interpolate a wrapped expression", src: `"${count}"`, want: "{{count}}"},
		{name: "should keep plain strings literal", src: `"plain"`, want: `"plain"`},
		{name: "should convert expressions", src: "a.b", want: "a.b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := convertExpr(t, tt.src, true)
			if diags.HasErrors() {
				t.Fatalf("unexpected diagnostics: %s", diags)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("binding mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExprErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		summary string
	}{
		{name: "should reject for expressions", src: "[for x in xs: x]", summary: "Unsupported expression"},
		{name: "should reject splats", src: "items[*].id", summary: "Unsupported expression"},
		{name: "should reject short pipes", src: `pipe("date")`, summary: "Not enough arguments"},
		{name: "should reject interpolation inside expressions", src: `a == "x${b}"`, summary: "Unexpected interpolation"},
		{name: "should reject safe() on other expressions", src: "safe(a + b)", summary: "Invalid safe navigation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := convertExpr(t, tt.src, false)
			if !diags.HasErrors() {
				t.Fatalf("expected diagnostics for %q", tt.src)
			}
			if diff := cmp.Diff(tt.summary, diags[0].Summary); diff != "" {
				t.Errorf("summary mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMillis(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "500ms", want: 500},
		{in: "2s", want: 2000},
		{in: "1.5s", want: 1500},
		{in: "300", want: 300},
		{in: "soon", wantErr: true},
		{in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("should parse "+tt.in, func(t *testing.T) {
			got, err := parseMillis(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMillis(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseMillis(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
