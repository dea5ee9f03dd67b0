package ir

// ConsumesSlotOpTrait marks an op as requiring one or more data slots
type ConsumesSlotOpTrait struct {
	// Handle of the first assigned slot
	Handle *SlotHandle

	// NumSlotsUsed is the number of contiguous slots reserved, 1 by default
	NumSlotsUsed int

	// Xref of the op, linking it to consumers of its slot
	Xref XrefId
}

// NewConsumesSlotOpTrait creates the trait for a single-slot op
func NewConsumesSlotOpTrait(xref XrefId) ConsumesSlotOpTrait {
	return ConsumesSlotOpTrait{Handle: NewSlotHandle(), NumSlotsUsed: 1, Xref: xref}
}

func (t *ConsumesSlotOpTrait) GetConsumesSlotTrait() *ConsumesSlotOpTrait { return t }

// ConsumesSlotOp is implemented by ops embedding ConsumesSlotOpTrait
type ConsumesSlotOp interface {
	Op
	GetConsumesSlotTrait() *ConsumesSlotOpTrait
}

// DependsOnSlotContextOpTrait marks an op as requiring the runtime's implicit slot cursor to point
// at Target before it runs
type DependsOnSlotContextOpTrait struct {
	Target XrefId
}

func (t *DependsOnSlotContextOpTrait) GetDependsOnSlotContextTrait() *DependsOnSlotContextOpTrait {
	return t
}

// DependsOnSlotContext is implemented by ops and expressions embedding DependsOnSlotContextOpTrait
type DependsOnSlotContext interface {
	GetDependsOnSlotContextTrait() *DependsOnSlotContextOpTrait
}

// ConsumesVarsTrait marks an op or expression as consuming variable storage
type ConsumesVarsTrait struct{}

func (ConsumesVarsTrait) ConsumesVars() {}

// ConsumesVars is implemented by ops and expressions embedding ConsumesVarsTrait
type ConsumesVars interface {
	ConsumesVars()
}

// UsesVarOffsetTrait marks an expression as needing the number of variable slots used before it
type UsesVarOffsetTrait struct {
	VarOffset *int
}

func (t *UsesVarOffsetTrait) GetVarOffset() *int { return t.VarOffset }

func (t *UsesVarOffsetTrait) SetVarOffset(offset int) { t.VarOffset = &offset }

// UsesVarOffset is implemented by expressions embedding UsesVarOffsetTrait
type UsesVarOffset interface {
	GetVarOffset() *int
	SetVarOffset(offset int)
}

// HasConsumesSlotTrait tests whether an op implements ConsumesSlotOpTrait
func HasConsumesSlotTrait(op Op) bool {
	_, ok := op.(ConsumesSlotOp)
	return ok
}

// HasDependsOnSlotContextTrait tests whether an op or expression implements DependsOnSlotContextOpTrait
func HasDependsOnSlotContextTrait(value interface{}) bool {
	_, ok := value.(DependsOnSlotContext)
	return ok
}

// HasConsumesVarsTrait tests whether an op or expression implements ConsumesVarsTrait
func HasConsumesVarsTrait(value interface{}) bool {
	_, ok := value.(ConsumesVars)
	return ok
}

// HasUsesVarOffsetTrait tests whether an expression implements UsesVarOffsetTrait
func HasUsesVarOffsetTrait(value interface{}) bool {
	_, ok := value.(UsesVarOffset)
	return ok
}
