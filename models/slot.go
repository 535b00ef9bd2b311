package models

// SlotStatus classifies one hour mark of the booking grid.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotPast        SlotStatus = "past"
	SlotBookedSelf  SlotStatus = "booked-self"
	SlotBookedOther SlotStatus = "booked-other"
)

// Slot is one hour mark on the grid with its derived status. Slots are
// recomputed on every render and never persisted.
type Slot struct {
	Hour   int        `json:"hour"`
	Status SlotStatus `json:"status"`
}

// Selectable reports whether the slot can be clicked.
func (s Slot) Selectable() bool {
	return s.Status == SlotAvailable
}
