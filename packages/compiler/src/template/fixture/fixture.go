// Package fixture reads component templates written in HCL into bound template nodes.
//
// A fixture file holds one or more components:
//
//	component "TodoList" {
//	  template {
//	    element "ul" {
//	      for {
//	        item  = "todo"
//	        of    = todos
//	        track = todo.id
//	        element "li" {
//	          interpolation { value = "${todo.title}" }
//	        }
//	      }
//	    }
//	  }
//	  host {
//	    properties = { "class.empty" = todos.length == 0 }
//	    listeners  = { "window:resize" = onResize() }
//	  }
//	}
//
// Expressions are written in HCL syntax and map onto template expressions. Identifiers with
// a leading underscore read the `$`-prefixed name, so `_event` reads `$event`.
package fixture

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"ngc-ir/packages/compiler/src/render3"
	"ngc-ir/packages/compiler/src/template/pipeline"
	"ngc-ir/packages/compiler/src/util"
)

// Component is one component read from a fixture
type Component struct {
	Name     string
	Template []render3.Node

	// Host is nil when the component declares no host block
	Host *pipeline.HostBindingInput

	// HostBindingsOnly is set when the component has a host block but no template
	HostBindingsOnly bool
}

// Load reads and parses the fixture file at path
func Load(path string) ([]*Component, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse parses fixture source. filename is used in source spans and diagnostics.
func Parse(src []byte, filename string) ([]*Component, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse HCL file %s: unexpected body type %T", filename, file.Body)
	}

	c := &converter{file: util.NewParseSourceFile(string(src), filename)}
	c.checkAttributes(body)

	var components []*Component
	seen := map[string]bool{}
	for _, block := range body.Blocks {
		if block.Type != "component" {
			c.errorf(block.TypeRange, "Unsupported block type", "expected a component block, got %q", block.Type)
			continue
		}
		if !c.labels(block, 1) {
			continue
		}
		name := block.Labels[0]
		if seen[name] {
			c.errorf(block.LabelRanges[0], "Duplicate component", "component %q is declared twice", name)
			continue
		}
		seen[name] = true
		components = append(components, c.component(name, block.Body))
	}

	if c.diags.HasErrors() {
		return nil, fmt.Errorf("invalid fixture %s: %w", filename, c.diags)
	}
	return components, nil
}

// converter accumulates diagnostics while it builds the nodes of a fixture
type converter struct {
	file  *util.ParseSourceFile
	diags hcl.Diagnostics
}

func (c *converter) errorf(rng hcl.Range, summary, format string, args ...interface{}) {
	subject := rng
	c.diags = append(c.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  &subject,
	})
}

// labels checks that block carries exactly n labels
func (c *converter) labels(block *hclsyntax.Block, n int) bool {
	if len(block.Labels) == n {
		return true
	}
	c.errorf(block.TypeRange, "Wrong number of labels", "%s block expects %d label(s), got %d", block.Type, n, len(block.Labels))
	return false
}

// checkAttributes reports every attribute of body not named in allowed
func (c *converter) checkAttributes(body *hclsyntax.Body, allowed ...string) {
	for name, attr := range body.Attributes {
		ok := false
		for _, a := range allowed {
			if a == name {
				ok = true
				break
			}
		}
		if !ok {
			c.errorf(attr.NameRange, "Unsupported argument", "an argument named %q is not expected here", name)
		}
	}
}

// span converts an HCL range into a source span of the fixture file
func (c *converter) span(rng hcl.Range) *util.ParseSourceSpan {
	start := util.NewParseLocation(c.file, rng.Start.Byte, rng.Start.Line-1, rng.Start.Column-1)
	end := util.NewParseLocation(c.file, rng.End.Byte, rng.End.Line-1, rng.End.Column-1)
	return util.NewParseSourceSpan(start, end, nil, "")
}

// source returns the fixture text covered by rng
func (c *converter) source(rng hcl.Range) string {
	content := c.file.Content
	if rng.Start.Byte < 0 || rng.End.Byte > len(content) || rng.Start.Byte > rng.End.Byte {
		return ""
	}
	return content[rng.Start.Byte:rng.End.Byte]
}

func (c *converter) component(name string, body *hclsyntax.Body) *Component {
	c.checkAttributes(body)
	component := &Component{Name: name}

	var hasTemplate bool
	for _, block := range body.Blocks {
		switch block.Type {
		case "template":
			if hasTemplate {
				c.errorf(block.TypeRange, "Duplicate template", "component %q has more than one template block", name)
				continue
			}
			hasTemplate = true
			c.checkAttributes(block.Body)
			component.Template, _ = c.nodes(block.Body, nil)
		case "host":
			if component.Host != nil {
				c.errorf(block.TypeRange, "Duplicate host", "component %q has more than one host block", name)
				continue
			}
			component.Host = c.host(name, block.Body)
		default:
			c.errorf(block.TypeRange, "Unsupported block type", "blocks of type %q are not expected in a component", block.Type)
		}
	}
	component.HostBindingsOnly = !hasTemplate && component.Host != nil
	return component
}

// host reads the host bindings of a component
func (c *converter) host(componentName string, body *hclsyntax.Body) *pipeline.HostBindingInput {
	c.checkAttributes(body, "selector", "properties", "attributes", "listeners")
	for _, block := range body.Blocks {
		c.errorf(block.TypeRange, "Unsupported block type", "blocks of type %q are not expected in a host block", block.Type)
	}

	input := &pipeline.HostBindingInput{ComponentName: componentName}
	if attr, ok := body.Attributes["selector"]; ok {
		input.ComponentSelector = c.stringValue(attr.Expr)
	}
	if attr, ok := body.Attributes["properties"]; ok {
		for _, entry := range c.entries(attr.Expr) {
			input.Properties = append(input.Properties, &pipeline.HostProperty{
				Name:       entry.key,
				Value:      c.bindingValue(entry.value),
				SourceSpan: c.span(hcl.RangeBetween(entry.keyRange, entry.value.Range())),
			})
		}
	}
	if attr, ok := body.Attributes["attributes"]; ok {
		for _, entry := range c.entries(attr.Expr) {
			input.Attributes = append(input.Attributes, &pipeline.HostAttribute{
				Name:  entry.key,
				Value: c.outputLiteral(entry.value),
			})
		}
	}
	if attr, ok := body.Attributes["listeners"]; ok {
		for _, entry := range c.entries(attr.Expr) {
			input.Events = append(input.Events, c.event(entry))
		}
	}
	return input
}
