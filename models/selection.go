package models

// SelectionState is the state of the two-step range selection.
type SelectionState string

const (
	SelectionIdle        SelectionState = "idle"
	SelectionStartChosen SelectionState = "startChosen"
	SelectionRangeChosen SelectionState = "rangeChosen"
)

// Selection is the user's in-progress or committed candidate range,
// held in the booking session until submission or cancellation.
// StartHour/EndHour are meaningful only in the states that set them:
// StartHour in startChosen, both in rangeChosen ([StartHour, EndHour)).
type Selection struct {
	State     SelectionState `json:"state"`
	StartHour int            `json:"startHour,omitempty"`
	EndHour   int            `json:"endHour,omitempty"`
}

// NewSelection returns the initial idle selection.
func NewSelection() Selection {
	return Selection{State: SelectionIdle}
}
