package output

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrintExpression(t *testing.T) {
	ctx := Variable("ctx")
	tests := []struct {
		name string
		expr OutputExpression
		want string
	}{
		{name: "null", expr: NullExpr, want: "null"},
		{name: "string literal", expr: Literal(`say "hi"`), want: `"say \"hi\""`},
		{name: "number literal", expr: Literal(1.5), want: "1.5"},
		{name: "external reference", expr: ImportExpr(&ExternalReference{ModuleName: "@angular/core", Name: "ɵɵtext"}), want: "ɵɵtext"},
		{name: "property read", expr: Prop(ctx, "name"), want: "ctx.name"},
		{name: "keyed read", expr: Key(ctx, Literal("a")), want: `ctx["a"]`},
		{
			name: "nested binary operands",
			expr: NewBinaryOperatorExpr(BinaryOperatorMultiply, NewBinaryOperatorExpr(BinaryOperatorPlus, Literal(1), Literal(2), nil), Literal(3), nil),
			want: "(1 + 2) * 3",
		},
		{name: "negation", expr: Not(Prop(ctx, "ok")), want: "!ctx.ok"},
		{name: "conditional", expr: NewConditionalExpr(Prop(ctx, "a"), Literal(1), nil, nil), want: "ctx.a ? 1 : null"},
		{name: "call", expr: Call(Prop(ctx, "save"), []OutputExpression{Variable("$event")}, nil), want: "ctx.save($event)"},
		{name: "array", expr: LiteralArr(Literal("a"), Literal(true)), want: `["a", true]`},
		{
			name: "map",
			expr: LiteralMap(NewLiteralMapEntry("a", Literal(1), false), NewLiteralMapEntry("b-c", Literal(2), true)),
			want: `{a: 1, "b-c": 2}`,
		},
		{name: "arrow returning a map", expr: ArrowFn(Params("a0"), LiteralMap(NewLiteralMapEntry("v", Variable("a0"), false))), want: "(a0) => ({v: a0})"},
		{
			name: "localized string",
			expr: NewLocalizedString("site|greeting", []string{"Hello ", "!"}, []string{"INTERPOLATION"}, []OutputExpression{Literal("�0�")}, nil),
			want: "$localize `:site|greeting:Hello ${\"�0�\"}:INTERPOLATION:!`",
		},
	}
	for _, tt := range tests {
		t.Run("should print "+tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, PrintExpression(tt.expr)); diff != "" {
				t.Errorf("PrintExpression() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrintStatements(t *testing.T) {
	t.Run("should print declarations and blocks", func(t *testing.T) {
		stmts := []OutputStatement{
			NewDeclareVarStmt("_c0", LiteralArr(Literal("title")), StmtModifierFinal, nil),
			NewDeclareVarStmt("tmp", nil, 0, nil),
			NewIfStmt(Variable("rf"), []OutputStatement{
				NewReturnStatement(Literal(1), nil),
			}, []OutputStatement{
				Stmt(Call(Variable("done"), nil, nil)),
			}, nil),
		}
		want := "const _c0 = [\"title\"];\n" +
			"let tmp;\n" +
			"if (rf) {\n" +
			"  return 1;\n" +
			"} else {\n" +
			"  done();\n" +
			"}\n"
		if diff := cmp.Diff(want, PrintStatements(stmts)); diff != "" {
			t.Errorf("PrintStatements() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should print function declarations", func(t *testing.T) {
		stmts := []OutputStatement{
			NewDeclareFunctionStmt("f", Params("a", "b"), []OutputStatement{
				NewReturnStatement(NewBinaryOperatorExpr(BinaryOperatorPlus, Variable("a"), Variable("b"), nil), nil),
			}, nil),
		}
		want := "function f(a, b) {\n  return a + b;\n}\n"
		if diff := cmp.Diff(want, PrintStatements(stmts)); diff != "" {
			t.Errorf("PrintStatements() mismatch (-want +got):\n%s", diff)
		}
	})
}
