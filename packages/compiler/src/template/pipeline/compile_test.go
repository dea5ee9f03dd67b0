package pipeline_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/pool"
	"ngc-ir/packages/compiler/src/render3"
	"ngc-ir/packages/compiler/src/template/fixture"
	"ngc-ir/packages/compiler/src/template/pipeline"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-ir/packages/compiler/src/template/pipeline/src/phases"
)

func compileFixture(t *testing.T, src string, meta pipeline.ComponentMetadata) *pipeline.CompileResult {
	t.Helper()
	components, err := fixture.Parse([]byte(src), "test.hcl")
	if err != nil {
		t.Fatal(err)
	}
	if len(components) != 1 {
		t.Fatalf("expected one component, got %d", len(components))
	}
	meta.Name = components[0].Name
	if components[0].Host != nil {
		result, err := pipeline.CompileHostBindings(components[0].Host, meta)
		if err != nil {
			t.Fatal(err)
		}
		return result
	}
	result, err := pipeline.Compile(components[0].Template, meta)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

// rangesFixture mixes ops that reserve more than one slot: local refs, a repeater with an
// empty view and a defer block with a placeholder
const rangesFixture = `
component "Ranges" {
  template {
    element "input" {
      refs = { first = "", second = "" }
    }
    for {
      item  = "row"
      of    = rows
      track = row.id
      vars  = { i = "$index" }
      element "span" {
        on = { click = pick(row, i) }
      }
      empty {
        text "none" {}
      }
    }
    defer {
      on = ["viewport(anchor)", "timer(500ms)"]
      interpolation { value = "${pipe("upper", label)}" }
      placeholder {
        element "div" {
          refs = { anchor = "" }
        }
      }
    }
    let "total" {
      value = a + b
    }
    interpolation { value = "${total} ${first.value}" }
  }
}
`

func countFunctions(stmts []output.OutputStatement) int {
	n := 0
	for _, stmt := range stmts {
		if _, ok := stmt.(*output.DeclareFunctionStmt); ok {
			n++
		}
	}
	return n
}

func TestCompile(t *testing.T) {
	t.Run("should compile an interpolated element", func(t *testing.T) {
		result := compileFixture(t, `
component "Greet" {
  template {
    element "div" {
      interpolation { value = "Hello ${name}" }
    }
  }
}
`, pipeline.ComponentMetadata{})

		want := `function Greet_Template(rf, ctx) {
  if (rf & 1) {
    ɵɵelementStart(0, "div");
    ɵɵtext(1);
    ɵɵelementEnd();
  }
  if (rf & 2) {
    ɵɵadvance();
    ɵɵtextInterpolate1("Hello ", ctx.name);
  }
}`
		if diff := cmp.Diff(want, output.PrintExpression(result.TemplateFn)); diff != "" {
			t.Errorf("template mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(2, result.Decls); diff != "" {
			t.Errorf("decls mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(1, result.Vars); diff != "" {
			t.Errorf("vars mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should allocate increasing slots per view", func(t *testing.T) {
		result := compileFixture(t, `
component "Slots" {
  template {
    element "ul" {
      element "li" {
        text "a" {}
      }
      element "li" {
        text "b" {}
      }
    }
    if {
      branch {
        when = show
        element "span" {}
        text "c" {}
      }
    }
  }
}
`, pipeline.ComponentMetadata{})

		last := map[ir.XrefId]int{}
		xrefs := map[ir.XrefId]bool{}
		for _, slot := range result.Slots {
			if prev, ok := last[slot.Unit]; ok && slot.Slot <= prev {
				t.Errorf("slot %d of %s does not follow slot %d in view %d", slot.Slot, slot.Kind, prev, slot.Unit)
			}
			last[slot.Unit] = slot.Slot
			if xrefs[slot.Xref] {
				t.Errorf("xref %d is used by more than one op", slot.Xref)
			}
			xrefs[slot.Xref] = true
		}
		if diff := cmp.Diff(2, len(last)); diff != "" {
			t.Errorf("view count mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reserve contiguous slot ranges from zero", func(t *testing.T) {
		result := compileFixture(t, rangesFixture, pipeline.ComponentMetadata{})

		next := map[ir.XrefId]int{}
		multi := 0
		for _, slot := range result.Slots {
			if slot.Size < 1 {
				t.Errorf("%s %q reserves %d slots", slot.Kind, slot.Name, slot.Size)
			}
			if slot.Size > 1 {
				multi++
			}
			if diff := cmp.Diff(next[slot.Unit], slot.Slot); diff != "" {
				t.Errorf("%s %q in view %d does not start where the previous range ended (-want +got):\n%s", slot.Kind, slot.Name, slot.Unit, diff)
			}
			next[slot.Unit] = slot.Slot + slot.Size
		}
		if multi < 3 {
			t.Errorf("expected the element, repeater and defer ranges to span several slots, got %d", multi)
		}
		if diff := cmp.Diff(result.Decls, next[0]); diff != "" {
			t.Errorf("root decls mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should share identical consts", func(t *testing.T) {
		result := compileFixture(t, `
component "Consts" {
  template {
    element "div" {
      attrs = { title = "x" }
    }
    element "div" {
      attrs = { title = "x" }
    }
  }
}
`, pipeline.ComponentMetadata{})

		if len(result.Consts) != 1 {
			t.Fatalf("expected one const, got %d", len(result.Consts))
		}
		if diff := cmp.Diff(`["title", "x"]`, output.PrintExpression(result.Consts[0])); diff != "" {
			t.Errorf("const mismatch (-want +got):\n%s", diff)
		}
		if got := output.PrintExpression(result.TemplateFn); !strings.Contains(got, `ɵɵelement(0, "div", 0)(1, "div", 0);`) {
			t.Errorf("expected chained elements sharing const 0, got:\n%s", got)
		}
	})

	t.Run("should keep the first duplicate attribute", func(t *testing.T) {
		src := `
component "Dupes" {
  template {
    element "div" {
      attrs = { title = "first", title = "last" }
    }
  }
}
`
		normal := compileFixture(t, src, pipeline.ComponentMetadata{})
		if diff := cmp.Diff(`["title", "first"]`, output.PrintExpression(normal.Consts[0])); diff != "" {
			t.Errorf("normal const mismatch (-want +got):\n%s", diff)
		}

		legacy := compileFixture(t, src, pipeline.ComponentMetadata{Compatibility: ir.CompatibilityModeTemplateDefinitionBuilder})
		if diff := cmp.Diff(`["title", "last"]`, output.PrintExpression(legacy.Consts[0])); diff != "" {
			t.Errorf("legacy const mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should merge or replace duplicate class and style attributes", func(t *testing.T) {
		tests := []struct {
			name   string
			attrs  string
			normal string
			legacy string
		}{
			{
				name:   "class",
				attrs:  `{ class = "cls1", class = "cls2" }`,
				normal: `[1, "cls1", "cls2"]`,
				legacy: `[1, "cls2"]`,
			},
			{
				name:   "style",
				attrs:  `{ style = "color: red", style = "color: blue; width: 1px" }`,
				normal: `[2, "color", "red", "width", "1px"]`,
				legacy: `[2, "color", "blue", "width", "1px"]`,
			},
		}
		for _, tt := range tests {
			src := `
component "Dupes" {
  template {
    element "div" {
      attrs = ` + tt.attrs + `
    }
  }
}
`
			normal := compileFixture(t, src, pipeline.ComponentMetadata{})
			if diff := cmp.Diff(tt.normal, output.PrintExpression(normal.Consts[0])); diff != "" {
				t.Errorf("%s: normal const mismatch (-want +got):\n%s", tt.name, diff)
			}
			legacy := compileFixture(t, src, pipeline.ComponentMetadata{Compatibility: ir.CompatibilityModeTemplateDefinitionBuilder})
			if diff := cmp.Diff(tt.legacy, output.PrintExpression(legacy.Consts[0])); diff != "" {
				t.Errorf("%s: legacy const mismatch (-want +got):\n%s", tt.name, diff)
			}
		}
	})

	t.Run("should emit one function per embedded view", func(t *testing.T) {
		result := compileFixture(t, `
component "Nested" {
  template {
    if {
      branch {
        when = outer
        if {
          branch {
            when = inner
            text "deep" {}
          }
        }
      }
    }
  }
}
`, pipeline.ComponentMetadata{})

		if diff := cmp.Diff(2, countFunctions(result.Statements)); diff != "" {
			t.Errorf("embedded view functions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should use the variadic pipe binding past four arguments", func(t *testing.T) {
		result := compileFixture(t, `
component "Pipes" {
  template {
    interpolation { value = "${pipe("fmt", v, a, b, c, d)}" }
    interpolation { value = "${pipe("fmt", v, a)}" }
  }
}
`, pipeline.ComponentMetadata{})

		got := output.PrintExpression(result.TemplateFn)
		for _, want := range []string{`ɵɵpipe(`, `ɵɵpipeBindV(`, `ɵɵpipeBind2(`} {
			if !strings.Contains(got, want) {
				t.Errorf("expected %s in:\n%s", want, got)
			}
		}
	})

	t.Run("should compile listeners", func(t *testing.T) {
		result := compileFixture(t, `
component "Listen" {
  template {
    element "button" {
      on = { click = save(_event) }
    }
  }
}
`, pipeline.ComponentMetadata{})

		got := output.PrintExpression(result.TemplateFn)
		if !strings.Contains(got, `ɵɵlistener("click"`) {
			t.Errorf("expected a click listener in:\n%s", got)
		}
		if !strings.Contains(got, "ctx.save($event)") {
			t.Errorf("expected the handler to call save with $event in:\n%s", got)
		}
	})
}

func TestCompileHostBindings(t *testing.T) {
	t.Run("should emit no function for static hosts", func(t *testing.T) {
		result := compileFixture(t, `
component "Static" {
  host {
    attributes = { role = "button" }
  }
}
`, pipeline.ComponentMetadata{})

		if result.HostBindingsFn != nil {
			t.Errorf("expected no host bindings function, got:\n%s", output.PrintExpression(result.HostBindingsFn))
		}
		if diff := cmp.Diff(`["role", "button"]`, output.PrintExpression(result.HostAttrs)); diff != "" {
			t.Errorf("host attrs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should split static host class and style attributes", func(t *testing.T) {
		result := compileFixture(t, `
component "Styled" {
  host {
    attributes = { class = "foo", style = "color: red" }
  }
}
`, pipeline.ComponentMetadata{})

		if result.HostBindingsFn != nil {
			t.Errorf("expected no host bindings function, got:\n%s", output.PrintExpression(result.HostBindingsFn))
		}
		if diff := cmp.Diff(`[1, "foo", 2, "color", "red"]`, output.PrintExpression(result.HostAttrs)); diff != "" {
			t.Errorf("host attrs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should bind host properties", func(t *testing.T) {
		result := compileFixture(t, `
component "Dynamic" {
  host {
    properties = { id = ident }
  }
}
`, pipeline.ComponentMetadata{})

		if result.HostBindingsFn == nil {
			t.Fatal("expected a host bindings function")
		}
		got := output.PrintExpression(result.HostBindingsFn)
		if !strings.Contains(got, `ɵɵdomProperty("id", ctx.ident)`) {
			t.Errorf("expected a dom property binding in:\n%s", got)
		}
		if diff := cmp.Diff("Dynamic_HostBindings", result.HostBindingsFn.Name); diff != "" {
			t.Errorf("function name mismatch (-want +got):\n%s", diff)
		}
	})
}

func printConsts(result *pipeline.CompileResult) []string {
	consts := make([]string, len(result.Consts))
	for i, c := range result.Consts {
		consts[i] = output.PrintExpression(c)
	}
	return consts
}

func TestCompileBindings(t *testing.T) {
	t.Run("should sanitize url properties", func(t *testing.T) {
		result := compileFixture(t, `
component "Link" {
  template {
    element "a" {
      bind = { href = url }
    }
  }
}
`, pipeline.ComponentMetadata{})

		want := `function Link_Template(rf, ctx) {
  if (rf & 1) {
    ɵɵelement(0, "a", 0);
  }
  if (rf & 2) {
    ɵɵproperty("href", ctx.url, ɵɵsanitizeUrl);
  }
}`
		if diff := cmp.Diff(want, output.PrintExpression(result.TemplateFn)); diff != "" {
			t.Errorf("template mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{`[3, "href"]`}, printConsts(result)); diff != "" {
			t.Errorf("consts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should switch namespace for svg elements", func(t *testing.T) {
		result := compileFixture(t, `
component "Icon" {
  template {
    element ":svg:svg" {
      element ":svg:circle" {}
    }
  }
}
`, pipeline.ComponentMetadata{})

		got := output.PrintExpression(result.TemplateFn)
		if diff := cmp.Diff(1, strings.Count(got, "ɵɵnamespaceSVG()")); diff != "" {
			t.Errorf("namespace instruction count mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(got, `"circle"`) {
			t.Errorf("expected the circle element without its namespace prefix in:\n%s", got)
		}
	})

	t.Run("should extract literal arrays into pure functions", func(t *testing.T) {
		result := compileFixture(t, `
component "Pure" {
  template {
    element "div" {
      bind = { items = [a, 1] }
    }
  }
}
`, pipeline.ComponentMetadata{})

		got := output.PrintExpression(result.TemplateFn)
		if !strings.Contains(got, "ɵɵpureFunction1(") || !strings.Contains(got, "ctx.a)") {
			t.Errorf("expected a pure function over ctx.a in:\n%s", got)
		}
		if len(result.Statements) == 0 {
			t.Error("expected the pure function to be declared in the pool")
		}
	})
}

const helloFixture = `
component "Hello" {
  template {
    element "p" {
      i18n = "@@hello"
      text "Hi " {}
      interpolation { value = "${name}" }
      element "b" {}
    }
  }
}
`

func TestCompileI18n(t *testing.T) {
	t.Run("should lower a translated element", func(t *testing.T) {
		result := compileFixture(t, helloFixture, pipeline.ComponentMetadata{})

		got := output.PrintExpression(result.TemplateFn)
		for _, want := range []string{`ɵɵi18nStart(1, 0)`, `ɵɵi18nExp(ctx.name)`, `ɵɵi18nApply(1)`} {
			if !strings.Contains(got, want) {
				t.Errorf("expected %s in:\n%s", want, got)
			}
		}
		if diff := cmp.Diff([]string{"i18n_0"}, printConsts(result)); diff != "" {
			t.Errorf("consts mismatch (-want +got):\n%s", diff)
		}
		initializers := output.PrintStatements(result.ConstsInitializers)
		if !strings.Contains(initializers, "$localize `:@@hello:Hi ${") {
			t.Errorf("expected the source message in:\n%s", initializers)
		}
	})

	translations := map[string]string{
		"hello": "Salut {$INTERPOLATION}{$START_BOLD_TEXT}{$CLOSE_BOLD_TEXT}",
	}

	t.Run("should use the translated text", func(t *testing.T) {
		result := compileFixture(t, helloFixture, pipeline.ComponentMetadata{
			Translations: i18n.NewTranslationBundle(translations, i18n.MissingTranslationStrategyError),
		})

		initializers := output.PrintStatements(result.ConstsInitializers)
		if !strings.Contains(initializers, "$localize `:@@hello:Salut ${") {
			t.Errorf("expected the translated message in:\n%s", initializers)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", result.Warnings)
		}
	})

	t.Run("should fail on a missing translation under the error strategy", func(t *testing.T) {
		components, err := fixture.Parse([]byte(helloFixture), "test.hcl")
		if err != nil {
			t.Fatal(err)
		}
		_, err = pipeline.Compile(components[0].Template, pipeline.ComponentMetadata{
			Name:         "Hello",
			Translations: i18n.NewTranslationBundle(map[string]string{}, i18n.MissingTranslationStrategyError),
		})
		var missing *i18n.MissingTranslationError
		if !errors.As(err, &missing) {
			t.Fatalf("expected a missing translation error, got %v", err)
		}
		if diff := cmp.Diff("hello", missing.ID); diff != "" {
			t.Errorf("message id mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should warn on a missing translation under the warning strategy", func(t *testing.T) {
		result := compileFixture(t, helloFixture, pipeline.ComponentMetadata{
			Translations: i18n.NewTranslationBundle(map[string]string{}, i18n.MissingTranslationStrategyWarning),
		})

		if diff := cmp.Diff(1, len(result.Warnings)); diff != "" {
			t.Fatalf("warning count mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(result.Warnings[0].Msg, `"hello"`) {
			t.Errorf("expected the warning to name the message, got %q", result.Warnings[0].Msg)
		}
		if initializers := output.PrintStatements(result.ConstsInitializers); !strings.Contains(initializers, ":@@hello:Hi ") {
			t.Errorf("expected the source text to be kept in:\n%s", initializers)
		}
	})

	t.Run("should keep the source text silently under the ignore strategy", func(t *testing.T) {
		result := compileFixture(t, helloFixture, pipeline.ComponentMetadata{
			Translations: i18n.NewTranslationBundle(map[string]string{}, i18n.MissingTranslationStrategyIgnore),
		})

		if len(result.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", result.Warnings)
		}
		if initializers := output.PrintStatements(result.ConstsInitializers); !strings.Contains(initializers, ":@@hello:Hi ") {
			t.Errorf("expected the source text to be kept in:\n%s", initializers)
		}
	})
}

var depsFnName = regexp.MustCompile(`Lazy_Defer_\d+_DepsFn`)

func TestCompileDefer(t *testing.T) {
	src := `
component "Lazy" {
  template {
    defer {
      on = ["viewport(anchor)", "timer(500ms)"]
      element "heavy-widget" {}
      placeholder {
        minimum = "1s"
        element "div" {
          refs = { anchor = "" }
        }
      }
      loading {
        after   = 100
        minimum = "2s"
        text "loading" {}
      }
    }
    defer {
      on = ["idle"]
      element "heavy-widget" {}
    }
  }
}
`
	meta := pipeline.ComponentMetadata{
		DeferMeta: compilation.DeferMeta{
			Mode: compilation.DeferMetaModePerBlock,
			ResolveBlockDependencyFn: func(*render3.DeferredBlock) output.OutputExpression {
				return output.ArrowFn(nil, output.LiteralArr(output.Variable("HeavyWidget")))
			},
		},
	}
	result := compileFixture(t, src, meta)
	got := output.PrintExpression(result.TemplateFn)

	t.Run("should emit triggers with their target slots", func(t *testing.T) {
		for _, want := range []string{`ɵɵdeferOnViewport(0, -1)`, `ɵɵdeferOnTimer(500)`, `ɵɵdeferOnIdle()`} {
			if !strings.Contains(got, want) {
				t.Errorf("expected %s in:\n%s", want, got)
			}
		}
	})

	t.Run("should collect timing configs as consts", func(t *testing.T) {
		consts := printConsts(result)
		for _, want := range []string{`[1000]`, `[2000, 100]`} {
			found := false
			for _, c := range consts {
				found = found || c == want
			}
			if !found {
				t.Errorf("expected const %s in %v", want, consts)
			}
		}
	})

	t.Run("should share one dependency function between blocks", func(t *testing.T) {
		names := depsFnName.FindAllString(got, -1)
		if diff := cmp.Diff(2, len(names)); diff != "" {
			t.Fatalf("dependency function reference count mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(names[0], names[1]); diff != "" {
			t.Errorf("blocks use different dependency functions (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(1, strings.Count(output.PrintStatements(result.Statements), names[0])); diff != "" {
			t.Errorf("dependency function declaration count mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCompileFailures(t *testing.T) {
	t.Run("should return an assertion error for an unresolved trigger target", func(t *testing.T) {
		components, err := fixture.Parse([]byte(`
component "Lazy" {
  template {
    defer {
      on = ["viewport(missing)"]
      element "heavy-widget" {}
    }
  }
}
`), "test.hcl")
		if err != nil {
			t.Fatal(err)
		}
		_, err = pipeline.Compile(components[0].Template, pipeline.ComponentMetadata{Name: "Lazy"})
		var assertion *ir.AssertionError
		if !errors.As(err, &assertion) {
			t.Fatalf("expected an assertion error, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "compiling Lazy: AssertionError: slot or view steps not set") {
			t.Errorf("unexpected error %q", err.Error())
		}
	})

	t.Run("should reject a binding that was never specialized", func(t *testing.T) {
		components, err := fixture.Parse([]byte(`
component "Bare" {
  template {
    element "div" {}
  }
}
`), "test.hcl")
		if err != nil {
			t.Fatal(err)
		}
		job := pipeline.IngestComponent("Bare", components[0].Template, pool.NewConstantPool(), pipeline.IngestOptions{})
		transformUntil(t, job, "Reify")
		job.Root.GetUpdate().Push(ir.NewBindingOp(job.Root.Xref, ir.BindingKindProperty, "title", output.Literal("x"), "", nil, false, false, nil, nil, nil))

		assertion := reifyAssertion(job)
		if assertion == nil {
			t.Fatal("expected reification to fail")
		}
		if !strings.Contains(assertion.Msg, "unsupported reification of update op") {
			t.Errorf("unexpected assertion %q", assertion.Msg)
		}
	})

	t.Run("should compile no template for host-only components", func(t *testing.T) {
		result, err := pipeline.Compile(nil, pipeline.ComponentMetadata{Name: "Badge", HostBindingsOnly: true})
		if err != nil {
			t.Fatal(err)
		}
		if result.TemplateFn != nil {
			t.Errorf("expected no template function, got:\n%s", output.PrintExpression(result.TemplateFn))
		}
	})

	t.Run("should reject a template on a host-only component", func(t *testing.T) {
		components, err := fixture.Parse([]byte(`
component "Badge" {
  template {
    text "x" {}
  }
}
`), "test.hcl")
		if err != nil {
			t.Fatal(err)
		}
		_, err = pipeline.Compile(components[0].Template, pipeline.ComponentMetadata{Name: "Badge", HostBindingsOnly: true})
		if err == nil || !strings.Contains(err.Error(), "host bindings only") {
			t.Errorf("expected a host bindings only error, got %v", err)
		}
	})
}

func reifyAssertion(job *compilation.ComponentCompilationJob) (assertion *ir.AssertionError) {
	defer func() {
		if r := recover(); r != nil {
			assertion, _ = r.(*ir.AssertionError)
		}
	}()
	phases.Reify(job)
	return nil
}
