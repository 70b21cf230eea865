package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/apperrors"
	"platelink/internal/config"
	"platelink/internal/models"
	"platelink/internal/plate"
	"platelink/internal/repositories/interfaces"
	"platelink/pkg/logger"
)

// SearchResult is the masked view returned to searchers. Found=false is a
// benign outcome, not an error.
type SearchResult struct {
	Found   bool                   `json:"found"`
	Vehicle *models.VehicleSummary `json:"vehicle,omitempty"`
}

// RevealedContact holds only the channels the owner enabled. Disabled
// channels are never serialized, even when the underlying values exist.
type RevealedContact struct {
	OwnerName       string                `json:"owner_name"`
	Phone           string                `json:"phone,omitempty"`
	Email           string                `json:"email,omitempty"`
	Methods         models.ContactMethods `json:"methods"`
	CreditsSpent    int64                 `json:"credits_spent"`
	AlreadyRevealed bool                  `json:"already_revealed"`
}

type SearchService interface {
	// Search canonicalizes the raw plate and looks it up. A miss returns
	// Found=false with nil error. A hit bumps the vehicle's search counters
	// and appends a search event before returning the masked summary.
	Search(ctx context.Context, searcherID *primitive.ObjectID, rawPlate string) (*SearchResult, error)

	// Reveal debits the reveal cost against the searcher's balance and
	// discloses the owner's enabled contact channels. The idempotency key
	// makes retried reveals free: a replay returns the contact again with
	// AlreadyRevealed=true and no second debit. Keys are scoped to the
	// searcher and vehicle, so the same key from another user or against
	// another vehicle is a new charge.
	Reveal(ctx context.Context, searcherID, vehicleID primitive.ObjectID, idempotencyKey string) (*RevealedContact, error)
}

type searchService struct {
	vehicleRepo  interfaces.VehicleRepository
	userRepo     interfaces.UserRepository
	ledgerRepo   interfaces.LedgerRepository
	activityRepo interfaces.ActivityRepository
	rewards      *config.RewardsConfig
	logger       *logger.Logger
	audit        *logger.AuditLogger
}

func NewSearchService(
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	ledgerRepo interfaces.LedgerRepository,
	activityRepo interfaces.ActivityRepository,
	rewards *config.RewardsConfig,
	log *logger.Logger,
	audit *logger.AuditLogger,
) SearchService {
	return &searchService{
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		ledgerRepo:   ledgerRepo,
		activityRepo: activityRepo,
		rewards:      rewards,
		logger:       log,
		audit:        audit,
	}
}

func (s *searchService) Search(ctx context.Context, searcherID *primitive.ObjectID, rawPlate string) (*SearchResult, error) {
	normalized, err := plate.Normalize(rawPlate)
	if err != nil {
		return nil, apperrors.NewValidation("INVALID_PLATE", err.Error(), err)
	}

	vehicle, err := s.vehicleRepo.GetByPlate(ctx, normalized.Number)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		s.logger.LogSearchEvent(normalized.Number, false, searcherID)
		return &SearchResult{Found: false}, nil
	}

	owner, err := s.userRepo.GetByID(ctx, vehicle.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		// Owner record vanished out from under the vehicle; treat the
		// plate as unlisted rather than leak a broken summary.
		s.logger.WithVehicleID(vehicle.ID).Warn("vehicle has no owner record")
		return &SearchResult{Found: false}, nil
	}

	now := time.Now()
	if err := s.activityRepo.RecordSearch(ctx, vehicle.ID, now); err != nil {
		s.logger.WithError(err).WithVehicleID(vehicle.ID).Warn("failed to record search counters")
	}
	if err := s.activityRepo.CreateEvent(ctx, &models.SearchEvent{
		VehicleID:  vehicle.ID,
		OwnerID:    vehicle.OwnerID,
		Plate:      vehicle.Plate,
		SearcherID: searcherID,
		Revealed:   false,
	}); err != nil {
		s.logger.WithError(err).WithVehicleID(vehicle.ID).Warn("failed to append search event")
	}

	s.logger.LogSearchEvent(normalized.Number, true, searcherID)

	return &SearchResult{
		Found: true,
		Vehicle: &models.VehicleSummary{
			VehicleID:     vehicle.ID,
			Plate:         vehicle.Plate,
			PlateFormat:   vehicle.PlateFormat,
			WheelCategory: vehicle.WheelCategory,
			Verified:      vehicle.Verified,
			OwnerName:     owner.MaskedName(),
			Contactable:   owner.IsContactable(),
		},
	}, nil
}

func (s *searchService) Reveal(ctx context.Context, searcherID, vehicleID primitive.ObjectID, idempotencyKey string) (*RevealedContact, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.ErrVehicleNotFound
	}

	owner, err := s.userRepo.GetByID(ctx, vehicle.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil || !owner.IsContactable() {
		return nil, apperrors.ErrNotContactable
	}

	// The client key is namespaced per searcher and vehicle before it
	// reaches the ledger. A key replayed by another user, or against
	// another vehicle, is a fresh charge, never a free replay.
	ledgerKey := searcherID.Hex() + ":" + vehicleID.Hex() + ":" + idempotencyKey

	entry, created, err := s.ledgerRepo.Debit(ctx, &models.LedgerEntry{
		UserID:           searcherID,
		Amount:           s.rewards.RevealCost,
		Reason:           models.EntryReasonContactReveal,
		IdempotencyKey:   ledgerKey,
		RelatedVehicleID: &vehicleID,
	})
	if err != nil {
		return nil, err
	}

	if created {
		if err := s.activityRepo.RecordContactRequest(ctx, vehicleID); err != nil {
			s.logger.WithError(err).WithVehicleID(vehicleID).Warn("failed to record contact request")
		}
		if err := s.activityRepo.CreateEvent(ctx, &models.SearchEvent{
			VehicleID:  vehicleID,
			OwnerID:    vehicle.OwnerID,
			Plate:      vehicle.Plate,
			SearcherID: &searcherID,
			Revealed:   true,
		}); err != nil {
			s.logger.WithError(err).WithVehicleID(vehicleID).Warn("failed to append reveal event")
		}
		s.audit.LogDisclosure(searcherID, vehicle.OwnerID, vehicleID, vehicle.Plate)
	}

	contact := &RevealedContact{
		OwnerName:       owner.FullName(),
		Methods:         owner.ContactMethods,
		CreditsSpent:    entry.Amount,
		AlreadyRevealed: !created,
	}
	if owner.ContactMethods.Phone || owner.ContactMethods.SMS || owner.ContactMethods.WhatsApp {
		contact.Phone = owner.Phone
	}
	if owner.ContactMethods.Email {
		contact.Email = owner.Email
	}

	return contact, nil
}
