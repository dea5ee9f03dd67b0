package pipeline_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-ir/packages/compiler/src/pool"
	"ngc-ir/packages/compiler/src/template/fixture"
	"ngc-ir/packages/compiler/src/template/pipeline"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

// unitShape is the part of a view unit the ingestion tests compare
type unitShape struct {
	Parent    ir.XrefId
	Elements  []string
	Templates []ir.XrefId
}

func shapeOf(view *compilation.ViewCompilationUnit) unitShape {
	shape := unitShape{Parent: ir.NoXref}
	if view.Parent != nil {
		shape.Parent = *view.Parent
	}
	for _, op := range view.GetCreate().All() {
		switch o := op.(type) {
		case *ir.ElementStartOp:
			shape.Elements = append(shape.Elements, o.Tag)
		case *ir.TemplateOp:
			shape.Templates = append(shape.Templates, o.GetConsumesSlotTrait().Xref)
		}
	}
	return shape
}

func TestIngestComponent(t *testing.T) {
	t.Run("should create one unit per structural template", func(t *testing.T) {
		components, err := fixture.Parse([]byte(`
component "Items" {
  template {
    template "div" {
      template_attrs = { ngFor = "", ngForOf = items }
      vars           = { item = "$implicit" }
      element "div" {
        template "span" {
          template_attrs = { ngIf = item }
          element "span" {}
        }
      }
    }
  }
}
`), "test.hcl")
		if err != nil {
			t.Fatal(err)
		}

		job := pipeline.IngestComponent("Items", components[0].Template, pool.NewConstantPool(), pipeline.IngestOptions{})
		views := job.ViewUnits()
		if len(views) != 3 {
			t.Fatalf("expected 3 units, got %d", len(views))
		}
		root, forView, ifView := views[0], views[1], views[2]

		want := []unitShape{
			{Parent: ir.NoXref, Templates: []ir.XrefId{forView.Xref}},
			{Parent: root.Xref, Elements: []string{"div"}, Templates: []ir.XrefId{ifView.Xref}},
			{Parent: forView.Xref, Elements: []string{"span"}},
		}
		got := []unitShape{shapeOf(root), shapeOf(forView), shapeOf(ifView)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("unit shapes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should allocate distinct xrefs", func(t *testing.T) {
		components, err := fixture.Parse([]byte(`
component "Many" {
  template {
    element "a" {}
    element "b" {}
    template "c" {
      element "c" {}
    }
  }
}
`), "test.hcl")
		if err != nil {
			t.Fatal(err)
		}

		job := pipeline.IngestComponent("Many", components[0].Template, pool.NewConstantPool(), pipeline.IngestOptions{})
		seen := map[ir.XrefId]bool{}
		for _, view := range job.ViewUnits() {
			for _, op := range view.GetCreate().All() {
				consumer, ok := op.(ir.ConsumesSlotOp)
				if !ok {
					continue
				}
				xref := consumer.GetConsumesSlotTrait().Xref
				if seen[xref] {
					t.Errorf("xref %d is used twice", xref)
				}
				seen[xref] = true
			}
		}
		if len(seen) != 4 {
			t.Errorf("expected 4 slot-consuming ops, got %d", len(seen))
		}
	})
}
