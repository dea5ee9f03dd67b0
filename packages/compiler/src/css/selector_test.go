package css

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSelectorToR3Selector(t *testing.T) {
	t.Run("should parse an element with classes and a negated attribute", func(t *testing.T) {
		got, err := ParseSelectorToR3Selector("a.b:not([c])")
		if err != nil {
			t.Fatal(err)
		}
		want := []interface{}{[]interface{}{"a", 8, "b", 3, "c", ""}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("selector mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should parse a selector list", func(t *testing.T) {
		got, err := ParseSelectorToR3Selector("[title=Foo], #main")
		if err != nil {
			t.Fatal(err)
		}
		want := []interface{}{
			[]interface{}{"", "title", "foo"},
			[]interface{}{"", "id", "main"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("selector mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should use the wildcard element for pure negations", func(t *testing.T) {
		selectors, err := ParseCssSelector(":not(span)")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff("*:not(span)", selectors[0].String()); diff != "" {
			t.Errorf("selector mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject nested negations", func(t *testing.T) {
		if _, err := ParseCssSelector(":not(:not(a))"); err == nil {
			t.Error("expected an error for nested :not")
		}
	})
}
