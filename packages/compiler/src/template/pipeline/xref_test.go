package pipeline_test

import (
	"fmt"
	"reflect"
	"testing"

	"ngc-ir/packages/compiler/src/output"
	"ngc-ir/packages/compiler/src/pool"
	"ngc-ir/packages/compiler/src/template/fixture"
	"ngc-ir/packages/compiler/src/template/pipeline"
	"ngc-ir/packages/compiler/src/template/pipeline/ir"
	"ngc-ir/packages/compiler/src/template/pipeline/src/compilation"
)

var (
	xrefType     = reflect.TypeOf(ir.XrefId(0))
	xrefListType = reflect.TypeOf([]ir.XrefId(nil))
	triggerType  = reflect.TypeOf((*ir.DeferTrigger)(nil))
)

// closingOps carry an Xref naming the op they close rather than declaring a new one
var closingOps = map[string]bool{
	"ElementEndOp":      true,
	"ContainerEndOp":    true,
	"I18nEndOp":         true,
	"IcuEndOp":          true,
	"DisableBindingsOp": true,
	"EnableBindingsOp":  true,
}

type xrefUse struct {
	owner string
	field string
	xref  ir.XrefId
}

// xrefIndex records every xref a job declares and every xref its ops and expressions point at
type xrefIndex struct {
	declared map[ir.XrefId]bool
	uses     []xrefUse
}

func indexXrefs(job *compilation.ComponentCompilationJob) *xrefIndex {
	idx := &xrefIndex{declared: map[ir.XrefId]bool{}}
	for _, view := range job.ViewUnits() {
		idx.declared[view.Xref] = true
		if view.Parent != nil {
			idx.uses = append(idx.uses, xrefUse{fmt.Sprintf("view %d", view.Xref), "Parent", *view.Parent})
		}
		for _, op := range view.GetCreate().All() {
			idx.op(op)
		}
		for _, op := range view.GetUpdate().All() {
			idx.op(op)
		}
	}
	return idx
}

func (idx *xrefIndex) op(op ir.Op) {
	value := reflect.ValueOf(op).Elem()
	owner := value.Type().Name()
	idx.fields(owner, value, !closingOps[owner])

	switch o := op.(type) {
	case *ir.VariableOp:
		switch v := o.Variable.(type) {
		case *ir.ContextVariable:
			idx.uses = append(idx.uses, xrefUse{owner, "Variable.View", v.View})
		case *ir.SavedViewVariable:
			idx.uses = append(idx.uses, xrefUse{owner, "Variable.View", v.View})
		}
	case *ir.ListenerOp:
		idx.opList(o.HandlerOps)
	case *ir.TwoWayListenerOp:
		idx.opList(o.HandlerOps)
	case *ir.RepeaterCreateOp:
		idx.opList(o.TrackByOps)
	}

	ir.VisitExpressionsInOp(op, func(expr output.OutputExpression, _ ir.VisitorContextFlag) {
		if _, ok := expr.(ir.Expression); !ok {
			return
		}
		value := reflect.ValueOf(expr)
		if value.Kind() != reflect.Ptr {
			return
		}
		value = value.Elem()
		_, assigns := expr.(*ir.AssignTemporaryExpr)
		idx.fields(value.Type().Name(), value, assigns)
	})
}

func (idx *xrefIndex) opList(list *ir.OpList) {
	if list == nil {
		return
	}
	for _, op := range list.All() {
		idx.op(op)
	}
}

// fields walks the XrefId fields of a struct and its embedded traits. A field named Xref
// declares when declares is set; every other field is a reference.
func (idx *xrefIndex) fields(owner string, value reflect.Value, declares bool) {
	if value.Kind() != reflect.Struct {
		return
	}
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldValue := value.Field(i)
		switch {
		case field.Anonymous && fieldValue.Kind() == reflect.Struct:
			idx.fields(owner, fieldValue, declares)
		case field.Type == xrefType:
			xref := ir.XrefId(fieldValue.Int())
			if declares && field.Name == "Xref" {
				idx.declared[xref] = true
			} else {
				idx.uses = append(idx.uses, xrefUse{owner, field.Name, xref})
			}
		case field.Type == xrefListType:
			for j := 0; j < fieldValue.Len(); j++ {
				idx.uses = append(idx.uses, xrefUse{owner, field.Name, ir.XrefId(fieldValue.Index(j).Int())})
			}
		case field.Type == triggerType && !fieldValue.IsNil():
			idx.fields(owner+"."+field.Name, fieldValue.Elem(), false)
		}
	}
}

func (idx *xrefIndex) dangling() []xrefUse {
	var out []xrefUse
	for _, use := range idx.uses {
		if use.xref != ir.NoXref && !idx.declared[use.xref] {
			out = append(out, use)
		}
	}
	return out
}

// transformUntil runs the template phases in order and stops before the named one
func transformUntil(t *testing.T, job *compilation.ComponentCompilationJob, stop string) {
	t.Helper()
	for _, phase := range pipeline.Phases {
		if phase.Name == stop {
			return
		}
		if phase.Kind != compilation.CompilationJobKindTmpl && phase.Kind != compilation.CompilationJobKindBoth {
			continue
		}
		phase.Fn(job)
		if err := job.Err(); err != nil {
			t.Fatalf("phase %s failed: %v", phase.Name, err)
		}
	}
	t.Fatalf("no phase named %s", stop)
}

func TestXrefResolution(t *testing.T) {
	t.Run("should leave no dangling references before reification", func(t *testing.T) {
		components, err := fixture.Parse([]byte(rangesFixture), "test.hcl")
		if err != nil {
			t.Fatal(err)
		}
		job := pipeline.IngestComponent("Ranges", components[0].Template, pool.NewConstantPool(), pipeline.IngestOptions{})
		transformUntil(t, job, "Reify")

		idx := indexXrefs(job)
		if len(idx.uses) == 0 {
			t.Fatal("expected ops to reference other xrefs")
		}
		for _, use := range idx.dangling() {
			t.Errorf("%s.%s refers to xref %d, which nothing declares", use.owner, use.field, use.xref)
		}
	})

	t.Run("should report a reference to a removed element", func(t *testing.T) {
		components, err := fixture.Parse([]byte(rangesFixture), "test.hcl")
		if err != nil {
			t.Fatal(err)
		}
		job := pipeline.IngestComponent("Ranges", components[0].Template, pool.NewConstantPool(), pipeline.IngestOptions{})
		transformUntil(t, job, "Reify")

		for _, op := range job.Root.GetCreate().All() {
			if element, ok := op.(*ir.ElementStartOp); ok && element.Tag == "input" {
				job.Root.GetCreate().Remove(element)
			}
		}
		if len(indexXrefs(job).dangling()) == 0 {
			t.Error("expected the local ref read of the removed element to dangle")
		}
	})
}
