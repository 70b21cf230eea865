package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/models"
)

type ActivityRepository interface {
	// RecordSearch / RecordContactRequest increment the vehicle's counters
	// atomically; callers never read-modify-write stats themselves.
	RecordSearch(ctx context.Context, vehicleID primitive.ObjectID, at time.Time) error
	RecordContactRequest(ctx context.Context, vehicleID primitive.ObjectID) error

	// GetStats returns zeroed stats when the vehicle was never searched.
	GetStats(ctx context.Context, vehicleID primitive.ObjectID) (*models.VehicleStats, error)

	// DeleteStats removes the counters when a vehicle is deregistered.
	// Search events are history and are never deleted.
	DeleteStats(ctx context.Context, vehicleID primitive.ObjectID) error

	CreateEvent(ctx context.Context, event *models.SearchEvent) error
	ListEventsByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]*models.SearchEvent, error)
	// CountEventsByOwner returns lifetime totals (searches, reveals) across
	// all vehicles the owner ever held, including removed ones.
	CountEventsByOwner(ctx context.Context, ownerID primitive.ObjectID) (searches int64, reveals int64, err error)
}
