package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(list *OpList) []OpKind {
	var out []OpKind
	for _, op := range list.All() {
		out = append(out, op.GetKind())
	}
	return out
}

func texts(list *OpList) []XrefId {
	var out []XrefId
	for _, op := range list.All() {
		if text, ok := op.(*TextOp); ok {
			out = append(out, text.Xref)
		}
	}
	return out
}

func expectAssertion(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		var assertion *AssertionError
		if !ok || !errors.As(err, &assertion) {
			t.Fatalf("expected an AssertionError panic, got %v", r)
		}
	}()
	fn()
}

func TestOpList(t *testing.T) {
	t.Run("should start empty", func(t *testing.T) {
		list := NewOpList(OpFamilyCreate)
		if !list.IsEmpty() || list.Len() != 0 {
			t.Fatalf("new list is not empty")
		}
		if list.Head() != list.Tail() {
			t.Errorf("head of an empty list should be the tail sentinel")
		}
	})

	t.Run("should keep insertion order", func(t *testing.T) {
		list := NewOpList(OpFamilyCreate)
		a, b, c := NewTextOp(1, "", "", nil), NewTextOp(2, "", "", nil), NewTextOp(3, "", "", nil)
		list.Push(b)
		list.Prepend([]Op{a})
		list.InsertBefore(c, list.Tail())

		if diff := cmp.Diff([]XrefId{1, 2, 3}, texts(list)); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		var reversed []XrefId
		for _, op := range list.Reversed() {
			reversed = append(reversed, op.(*TextOp).Xref)
		}
		if diff := cmp.Diff([]XrefId{3, 2, 1}, reversed); diff != "" {
			t.Errorf("reversed order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should replace and remove ops", func(t *testing.T) {
		list := NewOpList(OpFamilyCreate)
		a, b, c := NewTextOp(1, "", "", nil), NewTextOp(2, "", "", nil), NewTextOp(3, "", "", nil)
		list.Push(a, b, c)

		list.ReplaceWithMany(b, []Op{NewTextOp(4, "", "", nil), NewTextOp(5, "", "", nil)})
		list.Remove(a)
		list.InsertAfter(NewTextOp(6, "", "", nil), c)

		if diff := cmp.Diff([]XrefId{4, 5, 3, 6}, texts(list)); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		if list.Owns(a) || list.Owns(b) {
			t.Errorf("removed ops are still owned by the list")
		}
	})

	t.Run("should allow shared ops in any list", func(t *testing.T) {
		update := NewOpList(OpFamilyUpdate)
		update.Push(NewAdvanceOp(1, nil), NewStatementOp(nil))
		if diff := cmp.Diff([]OpKind{OpKindAdvance, OpKindStatement}, kinds(update)); diff != "" {
			t.Errorf("kinds mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject ops of another family", func(t *testing.T) {
		create := NewOpList(OpFamilyCreate)
		expectAssertion(t, func() { create.Push(NewAdvanceOp(1, nil)) })
	})

	t.Run("should reject ops owned by another list", func(t *testing.T) {
		first, second := NewOpList(OpFamilyCreate), NewOpList(OpFamilyCreate)
		op := NewTextOp(1, "", "", nil)
		first.Push(op)
		expectAssertion(t, func() { second.Push(op) })
		expectAssertion(t, func() { second.Remove(op) })
	})

	t.Run("should reject list ends as anchors", func(t *testing.T) {
		list := NewOpList(OpFamilyCreate)
		expectAssertion(t, func() { list.InsertAfter(NewTextOp(1, "", "", nil), list.Tail()) })
	})
}

func TestSlotHandle(t *testing.T) {
	t.Run("should share the assigned slot", func(t *testing.T) {
		handle := NewSlotHandle()
		if handle.IsAssigned() {
			t.Fatalf("new handle is assigned")
		}
		handle.Assign(3)
		if diff := cmp.Diff(3, handle.Slot()); diff != "" {
			t.Errorf("slot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should assign only once", func(t *testing.T) {
		handle := NewSlotHandle()
		handle.Assign(0)
		expectAssertion(t, func() { handle.Assign(1) })
	})

	t.Run("should not read an unassigned slot", func(t *testing.T) {
		expectAssertion(t, func() { NewSlotHandle().Slot() })
	})
}

func TestAdvanceOp(t *testing.T) {
	t.Run("should reject non-positive deltas", func(t *testing.T) {
		expectAssertion(t, func() { NewAdvanceOp(0, nil) })
	})
}
