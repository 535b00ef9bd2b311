package schedule

import (
	"fmt"
	"time"

	"fieldbook/models"
)

// Overlaps is the single authoritative overlap test for two half-open
// hour intervals [s1, e1) and [s2, e2). The per-hour classifier and the
// per-range validator both reduce to it, so they cannot disagree.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// ValidateRange checks a committed selection against the active booking
// snapshot and prices it. Both checks are local, synchronous and
// side-effect-free; domain rejections come back as *RangeError with
// reason "past" or "overlap". A selection that is not rangeChosen or
// has an inverted interval is a programming error at the caller, not a
// domain rejection.
func ValidateRange(sel models.Selection, date string, now time.Time, bookings []models.Booking, pricePerHour float64) (models.Quote, error) {
	if sel.State != models.SelectionRangeChosen {
		return models.Quote{}, fmt.Errorf("selection is %s, expected %s", sel.State, models.SelectionRangeChosen)
	}
	if sel.EndHour <= sel.StartHour {
		return models.Quote{}, fmt.Errorf("malformed range [%d, %d)", sel.StartHour, sel.EndHour)
	}

	if hourIsPast(sel.StartHour, date, now) {
		return models.Quote{}, NewPastError()
	}

	for _, b := range bookings {
		if !b.IsActive {
			continue
		}
		if Overlaps(sel.StartHour, sel.EndHour, b.StartHour, b.EndHour) {
			return models.Quote{}, NewOverlapError()
		}
	}

	hours := sel.EndHour - sel.StartHour
	return models.Quote{
		StartHour:  sel.StartHour,
		EndHour:    sel.EndHour,
		Hours:      hours,
		TotalPrice: float64(hours) * pricePerHour,
	}, nil
}
