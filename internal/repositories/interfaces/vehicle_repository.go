package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/models"
)

type VehicleRepository interface {
	// Create inserts a vehicle. The plate must be canonical; a concurrent
	// insert of the same plate loses with apperrors.ErrAlreadyRegisteredByOther
	// (or ...BySelf when the existing vehicle belongs to the same owner).
	Create(ctx context.Context, vehicle *models.Vehicle) error

	// GetByID and GetByPlate return (nil, nil) when no vehicle matches;
	// an absent plate is a normal search outcome, not an error.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error)

	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Delete returns apperrors.ErrVehicleNotFound when no vehicle has the id.
	Delete(ctx context.Context, id primitive.ObjectID) error

	GetTotalCount(ctx context.Context) (int64, error)
}
