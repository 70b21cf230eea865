package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetByID returns (nil, nil) when no user exists with the given ID.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}
