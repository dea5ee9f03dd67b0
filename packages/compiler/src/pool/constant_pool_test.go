package pool

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-ir/packages/compiler/src/output"
)

func TestGetConstLiteral(t *testing.T) {
	t.Run("should inline short primitives", func(t *testing.T) {
		cp := NewConstantPool()
		literal := output.Literal("short")
		if got := cp.GetConstLiteral(literal, true); got != output.OutputExpression(literal) {
			t.Errorf("expected the literal itself, got %s", output.PrintExpression(got))
		}
		if len(cp.Statements()) != 0 {
			t.Errorf("expected no declarations")
		}
	})

	t.Run("should share a literal on second use", func(t *testing.T) {
		cp := NewConstantPool()
		first := cp.GetConstLiteral(output.LiteralArr(output.Literal(1), output.Literal("a")), false)
		if diff := cmp.Diff(`[1, "a"]`, output.PrintExpression(first)); diff != "" {
			t.Errorf("first use mismatch (-want +got):\n%s", diff)
		}

		second := cp.GetConstLiteral(output.LiteralArr(output.Literal(1), output.Literal("a")), false)
		if diff := cmp.Diff("_c0", output.PrintExpression(second)); diff != "" {
			t.Errorf("second use mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff("_c0", output.PrintExpression(first)); diff != "" {
			t.Errorf("first use was not redirected (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff("const _c0 = [1, \"a\"];\n", output.PrintStatements(cp.Statements())); diff != "" {
			t.Errorf("declarations mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should pool long strings", func(t *testing.T) {
		cp := NewConstantPool()
		long := strings.Repeat("x", PoolInclusionLengthThresholdForStrings)
		got := cp.GetConstLiteral(output.Literal(long), true)
		if diff := cmp.Diff("_c0", output.PrintExpression(got)); diff != "" {
			t.Errorf("long string mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestGetLiteralFactory(t *testing.T) {
	t.Run("should share a factory between literals of the same shape", func(t *testing.T) {
		cp := NewConstantPool()
		factory, args := cp.GetLiteralFactory(output.LiteralArr(output.Literal(1), output.Variable("a")))
		again, againArgs := cp.GetLiteralFactory(output.LiteralArr(output.Literal(1), output.Variable("b")))

		if diff := cmp.Diff(output.PrintExpression(factory), output.PrintExpression(again)); diff != "" {
			t.Errorf("factories differ (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff("a", output.PrintExpression(args[0])); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff("b", output.PrintExpression(againArgs[0])); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff("const _c0 = (a1) => [1, a1];\n", output.PrintStatements(cp.Statements())); diff != "" {
			t.Errorf("declarations mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestUniqueName(t *testing.T) {
	cp := NewConstantPool()
	got := []string{
		cp.UniqueName("Cmp_Template", false),
		cp.UniqueName("Cmp_Template", false),
		cp.UniqueName("_c", true),
	}
	if diff := cmp.Diff([]string{"Cmp_Template", "Cmp_Template1", "_c0"}, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
