package booking

import (
	"context"
	"time"

	bookingRepo "fieldbook/database/repository/booking"
	fieldRepo "fieldbook/database/repository/field"
	"fieldbook/models"
	"fieldbook/services/schedule"
)

// SessionResult is what every session operation hands back to the
// transport layer: the session, the freshly classified grid, and a
// price quote when a range is committed and valid.
type SessionResult struct {
	Session *models.BookingSession `json:"session"`
	Slots   []models.Slot          `json:"slots"`
	Quote   *models.Quote          `json:"quote,omitempty"`
}

// BookingSessionService drives one scheduling session from first render
// to submission.
type BookingSessionService interface {
	StartSession(ctx context.Context, userID, fieldID, date string) (*SessionResult, error)
	RenderSession(ctx context.Context, sessionID, userID string) (*SessionResult, error)
	SelectHour(ctx context.Context, sessionID, userID string, hour int) (*SessionResult, error)
	ConfirmBooking(ctx context.Context, sessionID, userID string) (*models.Booking, error)
	CancelSession(ctx context.Context, sessionID string) error

	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID string) (*models.Booking, error)
}

// TaskEnqueuer schedules the background refresh of a field's
// denormalized availability badge after a booking mutation.
type TaskEnqueuer interface {
	EnqueueFieldRefresh(fieldID, date string) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Fields       fieldRepo.FieldRepository
	Bookings     bookingRepo.BookingRepository
	Sessions     SessionStore
	Clock        schedule.Clock
	Tasks        TaskEnqueuer
	DefaultHours schedule.OperatingHours
	SessionTTL   time.Duration
}
