package schedule

import "fieldbook/models"

// ClickSlot applies one slot-click event to a selection and returns the
// resulting selection. It is a pure transition function: the caller
// supplies the selectable predicate computed from the latest render,
// and clicks on non-selectable hours are ignored without error.
//
// Transitions:
//
//	idle        --click(h)-->  startChosen{h}
//	startChosen --click(start)--> idle                    (deselect)
//	startChosen --click(h)-->  rangeChosen[min, max+1)    (h != start)
//	rangeChosen --click(h)-->  startChosen{h}             (fresh selection)
func ClickSlot(sel models.Selection, hour int, selectable map[int]bool) models.Selection {
	if !selectable[hour] {
		return sel
	}

	switch sel.State {
	case models.SelectionStartChosen:
		if hour == sel.StartHour {
			return models.NewSelection()
		}
		start, end := sel.StartHour, hour
		if hour < sel.StartHour {
			start, end = hour, sel.StartHour
		}
		// The later click is included in the booking, so the exclusive
		// end boundary sits one hour above it.
		return models.Selection{
			State:     models.SelectionRangeChosen,
			StartHour: start,
			EndHour:   end + 1,
		}
	case models.SelectionRangeChosen:
		return models.Selection{State: models.SelectionStartChosen, StartHour: hour}
	default: // idle
		return models.Selection{State: models.SelectionStartChosen, StartHour: hour}
	}
}
