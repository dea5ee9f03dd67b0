package ir

import "fmt"

// XrefId is a cross-reference id. Ops refer to each other through xrefs instead of pointers.
type XrefId int

// NoXref marks a reference that was deliberately cleared after its dependents consumed it
const NoXref XrefId = -1

// ConstIndex is an index into the consts array of a component
type ConstIndex int

// SlotHandle holds the data slot of a slot-consuming op. The same handle is shared with every
// expression that needs the slot, so assignment is visible everywhere at once.
type SlotHandle struct {
	slot *int
}

// NewSlotHandle creates an unassigned handle
func NewSlotHandle() *SlotHandle {
	return &SlotHandle{}
}

// Assign sets the slot. A handle can be assigned only once.
func (h *SlotHandle) Assign(slot int) {
	if h.slot != nil {
		Assertf("slot already assigned to %d", *h.slot)
	}
	if slot < 0 {
		Assertf("negative slot %d", slot)
	}
	h.slot = &slot
}

// IsAssigned reports whether slot allocation has reached this handle
func (h *SlotHandle) IsAssigned() bool {
	return h != nil && h.slot != nil
}

// Slot returns the assigned slot and panics if allocation has not run yet
func (h *SlotHandle) Slot() int {
	if !h.IsAssigned() {
		Assertf("slot read before allocation")
	}
	return *h.slot
}

// AssertionError is the panic value for internal-consistency failures of the pipeline
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return "AssertionError: " + e.Msg
}

// Assertf panics with an *AssertionError
func Assertf(format string, args ...interface{}) {
	panic(&AssertionError{Msg: fmt.Sprintf(format, args...)})
}
