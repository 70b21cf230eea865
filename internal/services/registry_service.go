package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/plate"
	"platelink/internal/repositories/interfaces"
	"platelink/pkg/logger"
)

type RegistryService interface {
	// RegisterVehicle canonicalizes the raw plate and claims it for the
	// owner. A plate already registered yields ErrAlreadyRegisteredBySelf
	// or ErrAlreadyRegisteredByOther; the losing caller of a race gets the
	// same errors.
	RegisterVehicle(ctx context.Context, ownerID primitive.ObjectID, rawPlate string, category models.WheelCategory) (*models.Vehicle, error)

	FindByPlate(ctx context.Context, rawPlate string) (*models.Vehicle, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Vehicle, error)

	// RemoveVehicle is owner-only. It drops the vehicle and its stats
	// counters; ledger entries and search events are history and stay.
	RemoveVehicle(ctx context.Context, ownerID, vehicleID primitive.ObjectID) error
}

type registryService struct {
	vehicleRepo  interfaces.VehicleRepository
	userRepo     interfaces.UserRepository
	activityRepo interfaces.ActivityRepository
	logger       *logger.Logger
}

func NewRegistryService(
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	activityRepo interfaces.ActivityRepository,
	logger *logger.Logger,
) RegistryService {
	return &registryService{
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *registryService) RegisterVehicle(ctx context.Context, ownerID primitive.ObjectID, rawPlate string, category models.WheelCategory) (*models.Vehicle, error) {
	normalized, err := plate.Normalize(rawPlate)
	if err != nil {
		return nil, apperrors.NewValidation("INVALID_PLATE", err.Error(), err)
	}
	if !category.Valid() {
		return nil, apperrors.NewValidation("INVALID_WHEEL_CATEGORY", "unknown wheel category", nil)
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperrors.ErrOwnerNotFound
	}

	vehicle := &models.Vehicle{
		OwnerID:       ownerID,
		Plate:         normalized.Number,
		PlateFormat:   normalized.Format,
		WheelCategory: category,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.WithUserID(ownerID).WithPlate(vehicle.Plate).Info("vehicle registered")

	return vehicle, nil
}

func (s *registryService) FindByPlate(ctx context.Context, rawPlate string) (*models.Vehicle, error) {
	normalized, err := plate.Normalize(rawPlate)
	if err != nil {
		return nil, apperrors.NewValidation("INVALID_PLATE", err.Error(), err)
	}

	vehicle, err := s.vehicleRepo.GetByPlate(ctx, normalized.Number)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.ErrVehicleNotFound
	}

	return vehicle, nil
}

func (s *registryService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.ErrVehicleNotFound
	}

	return vehicle, nil
}

func (s *registryService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Vehicle, error) {
	return s.vehicleRepo.GetByOwnerID(ctx, ownerID)
}

func (s *registryService) RemoveVehicle(ctx context.Context, ownerID, vehicleID primitive.ObjectID) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return apperrors.ErrVehicleNotFound
	}
	if vehicle.OwnerID != ownerID {
		return apperrors.ErrNotOwner
	}

	if err := s.vehicleRepo.Delete(ctx, vehicleID); err != nil {
		return err
	}
	if err := s.activityRepo.DeleteStats(ctx, vehicleID); err != nil {
		// The vehicle is gone; orphaned counters are harmless and the
		// cleanup is retried on the next removal of the same id.
		s.logger.WithError(err).WithVehicleID(vehicleID).Warn("failed to drop vehicle stats")
	}

	s.logger.WithUserID(ownerID).WithPlate(vehicle.Plate).Info("vehicle removed")

	return nil
}
