package bookingRepo

import (
	"context"

	"fieldbook/models"
)

// BookingRepository is the booking-query and booking-creation
// collaborator. GetActiveByFieldAndDate supplies the read-only
// snapshot the engine classifies against; CreateConflictFree is the
// atomic check-and-insert that is the sole arbiter of the overlap
// invariant under concurrent submitters.
type BookingRepository interface {
	GetActiveByFieldAndDate(ctx context.Context, fieldID, date string) ([]models.Booking, error)
	CreateConflictFree(ctx context.Context, booking *models.Booking) error
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	Cancel(ctx context.Context, id, userID string) (*models.Booking, error)
}
