package models

// BookingSession holds the state of one scheduling session between the
// first render and submission: the field descriptor, the point-in-time
// snapshot of active bookings, and the current selection. Stored in
// Redis under SessionID with a TTL; the snapshot is re-fetched after
// every successful or rejected submission.
type BookingSession struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	FieldID   string    `json:"fieldId"`
	Date      string    `json:"date"`
	Field     Field     `json:"field"`
	Bookings  []Booking `json:"bookings"`
	Selection Selection `json:"selection"`
}
