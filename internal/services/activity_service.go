package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/repositories/interfaces"
	"platelink/internal/utils"
)

type ActivityService interface {
	// GetVehicleStats is owner-only: counters for someone else's vehicle
	// yield ErrNotOwner.
	GetVehicleStats(ctx context.Context, ownerID, vehicleID primitive.ObjectID) (*models.VehicleStats, error)

	// GetOwnerActivity rolls up lifetime totals across every vehicle the
	// owner ever held, removed ones included, plus a recent-events feed.
	GetOwnerActivity(ctx context.Context, ownerID primitive.ObjectID, limit int64) (*models.OwnerActivity, error)
}

type activityService struct {
	activityRepo interfaces.ActivityRepository
	vehicleRepo  interfaces.VehicleRepository
}

func NewActivityService(activityRepo interfaces.ActivityRepository, vehicleRepo interfaces.VehicleRepository) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		vehicleRepo:  vehicleRepo,
	}
}

func (s *activityService) GetVehicleStats(ctx context.Context, ownerID, vehicleID primitive.ObjectID) (*models.VehicleStats, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.ErrVehicleNotFound
	}
	if vehicle.OwnerID != ownerID {
		return nil, apperrors.ErrNotOwner
	}

	return s.activityRepo.GetStats(ctx, vehicleID)
}

func (s *activityService) GetOwnerActivity(ctx context.Context, ownerID primitive.ObjectID, limit int64) (*models.OwnerActivity, error) {
	if limit <= 0 {
		limit = utils.DefaultHistoryLimit
	}
	if limit > utils.MaxHistoryLimit {
		limit = utils.MaxHistoryLimit
	}

	searches, reveals, err := s.activityRepo.CountEventsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	events, err := s.activityRepo.ListEventsByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}

	return &models.OwnerActivity{
		OwnerID:              ownerID,
		TotalSearches:        searches,
		TotalContactRequests: reveals,
		RecentEvents:         events,
	}, nil
}
