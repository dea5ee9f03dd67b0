package fixture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ngc-ir/packages/compiler/src/core"
	"ngc-ir/packages/compiler/src/expression_parser"
	"ngc-ir/packages/compiler/src/i18n"
	"ngc-ir/packages/compiler/src/render3"
)

func parseOne(t *testing.T, src string) *Component {
	t.Helper()
	components, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)
	require.Len(t, components, 1)
	return components[0]
}

func TestParseComponents(t *testing.T) {
	t.Run("should read components in order", func(t *testing.T) {
		components, err := Parse([]byte(`
component "First" {
  template {}
}
component "Second" {
  host {
    selector = "app-second"
  }
}
`), "test.hcl")
		require.NoError(t, err)
		require.Len(t, components, 2)
		require.Equal(t, "First", components[0].Name)
		require.Nil(t, components[0].Host)
		require.False(t, components[0].HostBindingsOnly)
		require.Equal(t, "Second", components[1].Name)
		require.True(t, components[1].HostBindingsOnly)
		require.Equal(t, "app-second", components[1].Host.ComponentSelector)
		require.Equal(t, "Second", components[1].Host.ComponentName)
	})

	t.Run("should report syntax errors", func(t *testing.T) {
		_, err := Parse([]byte(`component "A" {`), "broken.hcl")
		require.ErrorContains(t, err, "failed to parse HCL file broken.hcl")
	})
}

func TestParseElement(t *testing.T) {
	component := parseOne(t, `
component "Form" {
  template {
    element "input" {
      attrs   = { type = "text", "data-x" = "1" }
      bind    = { value = name, "attr.role" = role, "class.active" = on, "style.width.px" = width }
      two_way = { checked = done }
      on      = { input = update(_event), "window:resize" = resize() }
      refs    = { field = "" }
    }
  }
}
`)
	require.Len(t, component.Template, 1)
	element, ok := component.Template[0].(*render3.Element)
	require.True(t, ok)
	require.Equal(t, "input", element.Name)

	t.Run("should keep attribute order", func(t *testing.T) {
		require.Len(t, element.Attributes, 2)
		require.Equal(t, "type", element.Attributes[0].Name)
		require.Equal(t, "text", element.Attributes[0].Value)
		require.Equal(t, "data-x", element.Attributes[1].Name)
	})

	t.Run("should split binding names", func(t *testing.T) {
		require.Len(t, element.Inputs, 5)
		require.Equal(t, expression_parser.BindingTypeProperty, element.Inputs[0].Type)
		require.Equal(t, "value", element.Inputs[0].Name)
		require.Equal(t, expression_parser.BindingTypeAttribute, element.Inputs[1].Type)
		require.Equal(t, "role", element.Inputs[1].Name)
		require.Equal(t, expression_parser.BindingTypeClass, element.Inputs[2].Type)
		require.Equal(t, core.SecurityContextNONE, element.Inputs[2].SecurityContext)
		require.Equal(t, expression_parser.BindingTypeStyle, element.Inputs[3].Type)
		require.Equal(t, "width", element.Inputs[3].Name)
		require.Equal(t, "px", element.Inputs[3].Unit)
		require.Equal(t, core.SecurityContextSTYLE, element.Inputs[3].SecurityContext)
		require.Equal(t, expression_parser.BindingTypeTwoWay, element.Inputs[4].Type)
		require.Equal(t, "checked", element.Inputs[4].Name)
	})

	t.Run("should add the change event of two-way bindings", func(t *testing.T) {
		require.Len(t, element.Outputs, 3)
		require.Equal(t, "input", element.Outputs[0].Name)
		require.Equal(t, "$event", unparse(element.Outputs[0].Handler.(*expression_parser.Call).Args[0]))
		require.Equal(t, "resize", element.Outputs[1].Name)
		require.Equal(t, "window", element.Outputs[1].Target)
		require.Equal(t, "checkedChange", element.Outputs[2].Name)
		require.Equal(t, expression_parser.ParsedEventTypeTwoWay, element.Outputs[2].Type)
	})

	t.Run("should read references", func(t *testing.T) {
		require.Len(t, element.References, 1)
		require.Equal(t, "field", element.References[0].Name)
	})

	t.Run("should span the element source", func(t *testing.T) {
		require.Equal(t, 3, element.SourceSpan.Start.Line)
		require.Equal(t, 4, element.SourceSpan.Start.Col)
		require.Equal(t, "}", element.EndSourceSpan.String())
	})
}

func TestParseTemplate(t *testing.T) {
	component := parseOne(t, `
component "List" {
  template {
    template "li" {
      template_attrs = { ngFor = "", ngForOf = items }
      vars           = { item = "$implicit" }
      element "li" {
        interpolation { value = "${item}" }
      }
    }
  }
}
`)
	tmpl, ok := component.Template[0].(*render3.Template)
	require.True(t, ok)
	require.Equal(t, "li", tmpl.TagName)
	require.Len(t, tmpl.TemplateAttrs, 2)
	_, isText := tmpl.TemplateAttrs[0].(*render3.TextAttribute)
	require.True(t, isText)
	bound, isBound := tmpl.TemplateAttrs[1].(*render3.BoundAttribute)
	require.True(t, isBound)
	require.Equal(t, "items", unparse(bound.Value))
	require.Equal(t, []*render3.Variable{{Name: "item", Value: "$implicit", SourceSpan: tmpl.Variables[0].SourceSpan}}, tmpl.Variables)
	require.Len(t, tmpl.Children, 1)
}

func TestParseControlFlow(t *testing.T) {
	component := parseOne(t, `
component "Flow" {
  template {
    if {
      branch {
        when = user
        as   = "u"
        text "user" {}
      }
      branch {
        when = guest
      }
      branch {
        text "nobody" {}
      }
    }
    switch {
      value = mode
      case {
        when = "a"
      }
      case {}
    }
    for {
      item  = "row"
      of    = rows
      track = row.id
      vars  = { i = "$index" }
      text "row" {}
      empty {
        text "none" {}
      }
    }
    let "total" {
      value = a + b
    }
    content {
      select = "header"
    }
  }
}
`)
	require.Len(t, component.Template, 5)

	t.Run("should read if branches", func(t *testing.T) {
		ifBlock := component.Template[0].(*render3.IfBlock)
		require.Len(t, ifBlock.Branches, 3)
		require.Equal(t, "user", unparse(ifBlock.Branches[0].Expression))
		require.Equal(t, "u", ifBlock.Branches[0].ExpressionAlias.Name)
		require.Nil(t, ifBlock.Branches[2].Expression)
		require.Len(t, ifBlock.Branches[2].Children, 1)
	})

	t.Run("should read switch cases", func(t *testing.T) {
		switchBlock := component.Template[1].(*render3.SwitchBlock)
		require.Equal(t, "mode", unparse(switchBlock.Expression))
		require.Len(t, switchBlock.Cases, 2)
		require.Equal(t, `"a"`, unparse(switchBlock.Cases[0].Expression))
		require.Nil(t, switchBlock.Cases[1].Expression)
	})

	t.Run("should declare the loop variables", func(t *testing.T) {
		forBlock := component.Template[2].(*render3.ForLoopBlock)
		require.Equal(t, "row", forBlock.Item.Name)
		require.Equal(t, "$implicit", forBlock.Item.Value)
		require.Equal(t, "row.id", unparse(forBlock.TrackBy))
		require.Len(t, forBlock.ContextVariables, 7)
		require.Equal(t, "$count", forBlock.ContextVariables[5].Name)
		require.Equal(t, "i", forBlock.ContextVariables[6].Name)
		require.Equal(t, "$index", forBlock.ContextVariables[6].Value)
		require.Len(t, forBlock.Children, 1)
		require.NotNil(t, forBlock.Empty)
		require.Len(t, forBlock.Empty.Children, 1)
	})

	t.Run("should read let declarations", func(t *testing.T) {
		let := component.Template[3].(*render3.LetDeclaration)
		require.Equal(t, "total", let.Name)
		require.Equal(t, "a + b", unparse(let.Value))
	})

	t.Run("should read content projection", func(t *testing.T) {
		content := component.Template[4].(*render3.Content)
		require.Equal(t, "header", content.Selector)
		require.Len(t, content.Attributes, 1)
		require.Equal(t, "select", content.Attributes[0].Name)
	})
}

func TestParseDefer(t *testing.T) {
	component := parseOne(t, `
component "Lazy" {
  template {
    defer {
      on            = ["viewport(anchor)", "timer(500ms)"]
      when          = ready
      prefetch_on   = ["idle"]
      hydrate_on    = ["never"]
      element "heavy-widget" {}
      placeholder {
        minimum = "1s"
        text "placeholder" {}
      }
      loading {
        after   = 100
        minimum = "2s"
      }
      error {}
    }
  }
}
`)
	deferBlock := component.Template[0].(*render3.DeferredBlock)

	t.Run("should read triggers", func(t *testing.T) {
		require.Equal(t, "anchor", deferBlock.Triggers.Viewport.Reference)
		require.Equal(t, 500, deferBlock.Triggers.Timer.Delay)
		require.Equal(t, "ready", unparse(deferBlock.Triggers.When.Value))
		require.NotNil(t, deferBlock.PrefetchTriggers.Idle)
		require.NotNil(t, deferBlock.HydrateTriggers.Never)
	})

	t.Run("should read the secondary blocks", func(t *testing.T) {
		require.Len(t, deferBlock.Children, 1)
		require.Equal(t, 1000, *deferBlock.Placeholder.MinimumTime)
		require.Len(t, deferBlock.Placeholder.Children, 1)
		require.Equal(t, 100, *deferBlock.Loading.AfterTime)
		require.Equal(t, 2000, *deferBlock.Loading.MinimumTime)
		require.Empty(t, deferBlock.Loading.Children)
		require.NotNil(t, deferBlock.Error)
	})
}

func TestParseI18n(t *testing.T) {
	t.Run("should build the message of a translated element", func(t *testing.T) {
		component := parseOne(t, `
component "Hello" {
  template {
    element "p" {
      i18n = "greeting|Says hello@@hello"
      text "Hi " {}
      element "b" {
        interpolation { value = "${name}" }
      }
    }
  }
}
`)
		element := component.Template[0].(*render3.Element)
		message, ok := element.I18n.(*i18n.Message)
		require.True(t, ok)
		require.Equal(t, "greeting", message.Meaning)
		require.Equal(t, "Says hello", message.Description)
		require.Equal(t, "hello", message.CustomID)

		parts, placeholders := i18n.SerializeForLocalize(message)
		require.Equal(t, []string{"Hi ", "", "", ""}, parts)
		require.Equal(t, []string{"START_BOLD_TEXT", "INTERPOLATION", "CLOSE_BOLD_TEXT"}, placeholders)

		bold := element.Children[1].(*render3.Element)
		tag, ok := bold.I18n.(*i18n.TagPlaceholder)
		require.True(t, ok)
		require.Equal(t, "START_BOLD_TEXT", tag.StartName)
	})

	t.Run("should name repeated tags by content", func(t *testing.T) {
		component := parseOne(t, `
component "Tags" {
  template {
    element "div" {
      i18n = ""
      element "span" {}
      element "span" {}
      element "span" {
        attrs = { class = "x" }
      }
    }
  }
}
`)
		message := component.Template[0].(*render3.Element).I18n.(*i18n.Message)
		_, placeholders := i18n.SerializeForLocalize(message)
		require.Equal(t, []string{
			"START_TAG_SPAN", "CLOSE_TAG_SPAN",
			"START_TAG_SPAN", "CLOSE_TAG_SPAN",
			"START_TAG_SPAN_1", "CLOSE_TAG_SPAN",
		}, placeholders)
	})

	t.Run("should wrap control flow into block placeholders", func(t *testing.T) {
		component := parseOne(t, `
component "Blocks" {
  template {
    element "div" {
      i18n = ""
      if {
        branch {
          when = ok
          text "yes" {}
        }
      }
    }
  }
}
`)
		message := component.Template[0].(*render3.Element).I18n.(*i18n.Message)
		parts, placeholders := i18n.SerializeForLocalize(message)
		require.Equal(t, []string{"", "yes", ""}, parts)
		require.Equal(t, []string{"START_BLOCK_IF", "CLOSE_BLOCK_IF"}, placeholders)
	})

	t.Run("should give an ICU its own message", func(t *testing.T) {
		component := parseOne(t, `
component "Count" {
  template {
    icu "plural" {
      value = count
      case "=0" { value = "none" }
      case "other" { value = "${count} items" }
    }
  }
}
`)
		icu := component.Template[0].(*render3.Icu)
		require.Len(t, icu.Vars, 1)
		require.Equal(t, "VAR_PLURAL", icu.Vars[0].Name)
		require.Len(t, icu.Placeholders, 1)
		require.Equal(t, "INTERPOLATION", icu.Placeholders[0].Name)

		parts, placeholders := i18n.SerializeForLocalize(icu.I18n.(*i18n.Message))
		require.Equal(t, []string{"{VAR_PLURAL, plural, =0 {none} other {{INTERPOLATION} items}}"}, parts)
		require.Empty(t, placeholders)
	})

	t.Run("should translate attributes", func(t *testing.T) {
		component := parseOne(t, `
component "Title" {
  template {
    element "img" {
      attrs      = { alt = "A cat" }
      bind       = { title = "Hello ${name}" }
      i18n_attrs = { alt = "animal", title = "" }
    }
  }
}
`)
		element := component.Template[0].(*render3.Element)
		alt := element.Attributes[0].I18n.(*i18n.Message)
		require.Equal(t, "animal", alt.Description)
		parts, _ := i18n.SerializeForLocalize(alt)
		require.Equal(t, []string{"A cat"}, parts)

		title := element.Inputs[0].I18n.(*i18n.Message)
		parts, placeholders := i18n.SerializeForLocalize(title)
		require.Equal(t, []string{"Hello ", ""}, parts)
		require.Equal(t, []string{"INTERPOLATION"}, placeholders)
	})
}

func TestParseHost(t *testing.T) {
	component := parseOne(t, `
component "Button" {
  host {
    selector   = "app-button"
    properties = { "class.active" = active, title = "Hi ${name}" }
    attributes = { role = "button", tabindex = 0 }
    listeners  = { click = press(_event), "document:keydown" = key() }
  }
}
`)
	host := component.Host
	require.True(t, component.HostBindingsOnly)
	require.Len(t, host.Properties, 2)
	require.Equal(t, "class.active", host.Properties[0].Name)
	require.Equal(t, "active", unparse(host.Properties[0].Value))
	require.Equal(t, "Hi {{name}}", unparse(host.Properties[1].Value))
	require.Len(t, host.Attributes, 2)
	require.Equal(t, "tabindex", host.Attributes[1].Name)
	require.Len(t, host.Events, 2)
	require.Equal(t, "keydown", host.Events[1].Name)
	require.Equal(t, "document", host.Events[1].Target)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{
			name:    "should reject duplicate components",
			src:     `component "A" {}` + "\n" + `component "A" {}`,
			message: "Duplicate component",
		},
		{
			name:    "should reject unknown blocks",
			src:     "component \"A\" {\n template {\n widget {}\n }\n}",
			message: "Unsupported block type",
		},
		{
			name:    "should reject unknown arguments",
			src:     "component \"A\" {\n template {\n element \"div\" {\n color = \"red\"\n }\n }\n}",
			message: "Unsupported argument",
		},
		{
			name:    "should require else to come last",
			src:     "component \"A\" {\n template {\n if {\n branch {}\n branch {\n when = x\n }\n }\n }\n}",
			message: "Misplaced else",
		},
		{
			name:    "should require a track expression",
			src:     "component \"A\" {\n template {\n for {\n item = \"x\"\n of = xs\n }\n }\n}",
			message: "Incomplete for block",
		},
		{
			name:    "should reject unknown triggers",
			src:     "component \"A\" {\n template {\n defer {\n on = [\"soon\"]\n }\n }\n}",
			message: "unrecognized trigger type \"soon\"",
		},
		{
			name:    "should reject never outside hydration",
			src:     "component \"A\" {\n template {\n defer {\n on = [\"never\"]\n }\n }\n}",
			message: "never is only supported as a hydrate trigger",
		},
		{
			name:    "should reject duplicate triggers",
			src:     "component \"A\" {\n template {\n defer {\n on = [\"idle\", \"idle\"]\n }\n }\n}",
			message: "duplicate \"idle\" trigger is not allowed",
		},
		{
			name:    "should reject nested i18n sections",
			src:     "component \"A\" {\n template {\n element \"div\" {\n i18n = \"\"\n element \"span\" {\n i18n = \"\"\n }\n }\n }\n}",
			message: "Nested i18n section",
		},
		{
			name:    "should reject unknown loop variables",
			src:     "component \"A\" {\n template {\n for {\n item = \"x\"\n of = xs\n track = x\n vars = { i = \"$position\" }\n }\n }\n}",
			message: "Invalid loop variable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid fixture test.hcl")
			require.Contains(t, err.Error(), tt.message)
		})
	}
}
