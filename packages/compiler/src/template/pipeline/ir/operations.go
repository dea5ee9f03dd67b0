package ir

import (
	"sync/atomic"

	"ngc-ir/packages/compiler/src/util"
)

// Op is a semantic operation performed within a template
type Op interface {
	GetKind() OpKind
	GetSourceSpan() *util.ParseSourceSpan
	GetPrev() Op
	GetNext() Op
	// Next is a shorthand for GetNext
	Next() Op
	opBase() *OpBase
}

// OpBase carries the list links shared by every op
type OpBase struct {
	prev       Op
	next       Op
	listId     int64
	SourceSpan *util.ParseSourceSpan
}

func (o *OpBase) GetPrev() Op { return o.prev }

func (o *OpBase) GetNext() Op { return o.next }

func (o *OpBase) Next() Op { return o.next }

func (o *OpBase) GetSourceSpan() *util.ParseSourceSpan { return o.SourceSpan }

func (o *OpBase) opBase() *OpBase { return o }

// ListEndOp is the sentinel at both ends of an OpList
type ListEndOp struct {
	OpBase
}

func (*ListEndOp) GetKind() OpKind { return OpKindListEnd }

var nextListId atomic.Int64

// OpList is a doubly linked list of ops with sentinel ends. An op belongs to at most one list
// at a time, and a list only accepts ops of its own family (shared ops go anywhere).
type OpList struct {
	id     int64
	family OpFamily
	head   *ListEndOp
	tail   *ListEndOp
}

// NewOpList creates an empty list of the given family
func NewOpList(family OpFamily) *OpList {
	id := nextListId.Add(1)
	head := &ListEndOp{OpBase{listId: id}}
	tail := &ListEndOp{OpBase{listId: id}}
	head.next = tail
	tail.prev = head
	return &OpList{id: id, family: family, head: head, tail: tail}
}

// Family returns the op family accepted by the list
func (l *OpList) Family() OpFamily {
	return l.family
}

// Head returns the first op, or the tail sentinel when the list is empty
func (l *OpList) Head() Op {
	return l.head.next
}

// Tail returns the tail sentinel
func (l *OpList) Tail() Op {
	return l.tail
}

// IsEmpty reports whether the list has no ops
func (l *OpList) IsEmpty() bool {
	return l.head.next == Op(l.tail)
}

// Len counts the ops in the list
func (l *OpList) Len() int {
	n := 0
	for op := l.Head(); op.GetKind() != OpKindListEnd; op = op.Next() {
		n++
	}
	return n
}

// All returns a snapshot of the ops, safe to iterate while the list is mutated
func (l *OpList) All() []Op {
	var ops []Op
	for op := l.Head(); op.GetKind() != OpKindListEnd; op = op.Next() {
		ops = append(ops, op)
	}
	return ops
}

// Reversed returns a snapshot of the ops in reverse order
func (l *OpList) Reversed() []Op {
	var ops []Op
	for op := l.tail.prev; op.GetKind() != OpKindListEnd; op = op.GetPrev() {
		ops = append(ops, op)
	}
	return ops
}

// Owns reports whether op is linked into this list
func (l *OpList) Owns(op Op) bool {
	return op.opBase().listId == l.id
}

func (l *OpList) checkInsertable(op Op) {
	if op.GetKind() == OpKindListEnd {
		Assertf("cannot insert a list end node")
	}
	if op.opBase().listId != 0 {
		Assertf("%s op is already owned by list %d", op.GetKind(), op.opBase().listId)
	}
	if family := op.GetKind().Family(); family != OpFamilyShared && family != l.family {
		Assertf("%s op does not belong in this list", op.GetKind())
	}
}

func (l *OpList) checkOwned(op Op) {
	if op.GetKind() == OpKindListEnd {
		Assertf("cannot use a list end node as an anchor")
	}
	if op.opBase().listId != l.id {
		Assertf("%s op is not owned by this list", op.GetKind())
	}
}

func (l *OpList) link(newOp, prev, next Op) {
	b := newOp.opBase()
	b.listId = l.id
	b.prev = prev
	b.next = next
	prev.opBase().next = newOp
	next.opBase().prev = newOp
}

func unlink(op Op) {
	b := op.opBase()
	b.prev.opBase().next = b.next
	b.next.opBase().prev = b.prev
	b.prev = nil
	b.next = nil
	b.listId = 0
}

// Push appends ops to the end of the list
func (l *OpList) Push(ops ...Op) {
	for _, op := range ops {
		l.checkInsertable(op)
		l.link(op, l.tail.prev, l.tail)
	}
}

// Prepend inserts ops at the start of the list, keeping their order
func (l *OpList) Prepend(ops []Op) {
	for i := len(ops) - 1; i >= 0; i-- {
		l.checkInsertable(ops[i])
		l.link(ops[i], l.head, l.head.next)
	}
}

// InsertBefore inserts newOp before anchor. The anchor may be the tail sentinel.
func (l *OpList) InsertBefore(newOp Op, anchor Op) {
	if anchor != Op(l.tail) {
		l.checkOwned(anchor)
	}
	l.checkInsertable(newOp)
	l.link(newOp, anchor.GetPrev(), anchor)
}

// InsertAfter inserts newOp after anchor
func (l *OpList) InsertAfter(newOp Op, anchor Op) {
	l.checkOwned(anchor)
	l.checkInsertable(newOp)
	l.link(newOp, anchor, anchor.GetNext())
}

// Remove unlinks op from the list
func (l *OpList) Remove(op Op) {
	l.checkOwned(op)
	unlink(op)
}

// Replace swaps oldOp for newOp at the same position
func (l *OpList) Replace(oldOp, newOp Op) {
	l.ReplaceWithMany(oldOp, []Op{newOp})
}

// ReplaceWithMany replaces oldOp with a sequence of ops. An empty sequence removes oldOp.
func (l *OpList) ReplaceWithMany(oldOp Op, newOps []Op) {
	l.checkOwned(oldOp)
	next := oldOp.GetNext()
	unlink(oldOp)
	for _, op := range newOps {
		l.checkInsertable(op)
		l.link(op, next.GetPrev(), next)
	}
}
