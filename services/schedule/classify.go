package schedule

import (
	"time"

	"fieldbook/models"
)

const dateLayout = "2006-01-02"

// Classify assigns each grid hour exactly one status from the active
// booking snapshot for one field+date and the current time.
//
// Rules, in order:
//   - past: the target date is over, or it is today and the hour has
//     already begun (the running hour is unbookable, no partial hours).
//   - booked-self: an active booking owned by userID covers the hour.
//   - booked-other: any other active booking covers the hour. If a
//     corrupt snapshot has overlapping bookings, self-ownership wins;
//     either way the hour is never shown as free.
//   - available: none of the above.
func Classify(grid []int, date string, now time.Time, userID string, bookings []models.Booking) []models.Slot {
	slots := make([]models.Slot, 0, len(grid))
	for _, h := range grid {
		slots = append(slots, models.Slot{Hour: h, Status: classifyHour(h, date, now, userID, bookings)})
	}
	return slots
}

func classifyHour(h int, date string, now time.Time, userID string, bookings []models.Booking) models.SlotStatus {
	if hourIsPast(h, date, now) {
		return models.SlotPast
	}

	var bookedSelf, bookedOther bool
	for _, b := range bookings {
		if !b.IsActive || !b.ContainsHour(h) {
			continue
		}
		if b.UserID == userID {
			bookedSelf = true
		} else {
			bookedOther = true
		}
	}
	switch {
	case bookedSelf:
		return models.SlotBookedSelf
	case bookedOther:
		return models.SlotBookedOther
	default:
		return models.SlotAvailable
	}
}

// hourIsPast reports whether hour h on the target date is no longer
// bookable. On the current day the current hour counts as past the
// moment it begins. Dates strictly before today block every hour.
func hourIsPast(h int, date string, now time.Time) bool {
	target, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		// Unparseable dates never reach here through the session
		// service; fail toward blocking rather than offering slots.
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if target.Before(today) {
		return true
	}
	if target.After(today) {
		return false
	}
	return h <= now.Hour()
}

// SelectableHours extracts the clickable predicate the selection state
// machine consumes at the moment of each click.
func SelectableHours(slots []models.Slot) map[int]bool {
	selectable := make(map[int]bool, len(slots))
	for _, s := range slots {
		if s.Selectable() {
			selectable[s.Hour] = true
		}
	}
	return selectable
}
