package fieldRepo

import (
	"context"

	"fieldbook/models"
)

// FieldRepository is the field-lookup collaborator: it supplies the
// resource descriptors the scheduling engine reads.
type FieldRepository interface {
	Create(ctx context.Context, field *models.Field) error
	GetByID(ctx context.Context, id string) (*models.Field, error)
	List(ctx context.Context) ([]models.Field, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}
