package models

import "time"

// Booking represents a confirmed reservation of a field for a range of
// whole hours on a single day. The interval [StartHour, EndHour) is
// half-open: EndHour is the first hour no longer covered.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	FieldID    string    `bson:"fieldId" json:"fieldId"`
	UserID     string    `bson:"userId" json:"userId"`
	Date       string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartHour  int       `bson:"startHour" json:"startHour"`
	EndHour    int       `bson:"endHour" json:"endHour"`
	TotalPrice float64   `bson:"totalPrice" json:"totalPrice"`
	IsActive   bool      `bson:"isActive" json:"isActive"` // false once cancelled; inactive bookings never block slots
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ContainsHour reports whether the hour mark h falls inside the booking.
func (b Booking) ContainsHour(h int) bool {
	return h >= b.StartHour && h < b.EndHour
}
