package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/utils"
)

// userRepository

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	unlock := r.s.locks.Lock("phone:" + user.Phone)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Phone == user.Phone {
			return apperrors.NewConflict("PHONE_ALREADY_REGISTERED", "an account already exists for this phone number")
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	clone := *user
	r.s.users[user.ID] = &clone

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}

	clone := *user
	return &clone, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Phone == phone {
			clone := *user
			return &clone, nil
		}
	}

	return nil, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return apperrors.ErrOwnerNotFound
	}

	for key, value := range updates {
		switch key {
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "phone":
			user.Phone = value.(string)
		case "email":
			user.Email = value.(string)
		case "contact_methods":
			user.ContactMethods = value.(models.ContactMethods)
		case "status":
			user.Status = value.(models.UserStatus)
		}
	}
	user.UpdatedAt = time.Now()

	return nil
}

// vehicleRepository

type vehicleRepository struct {
	s *Store
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	// Serialize registration per plate so the uniqueness check and the
	// insert cannot interleave for racing owners.
	unlock := r.s.locks.Lock("plate:" + vehicle.Plate)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existingID, ok := r.s.plateIndex[vehicle.Plate]; ok {
		if existing := r.s.vehicles[existingID]; existing != nil && existing.OwnerID == vehicle.OwnerID {
			return apperrors.ErrAlreadyRegisteredBySelf
		}
		return apperrors.ErrAlreadyRegisteredByOther
	}

	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt

	clone := *vehicle
	r.s.vehicles[vehicle.ID] = &clone
	r.s.plateIndex[vehicle.Plate] = vehicle.ID

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	vehicle, ok := r.s.vehicles[id]
	if !ok {
		return nil, nil
	}

	clone := *vehicle
	return &clone, nil
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.plateIndex[plate]
	if !ok {
		return nil, nil
	}

	clone := *r.s.vehicles[id]
	return &clone, nil
}

func (r *vehicleRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var vehicles []*models.Vehicle
	for _, vehicle := range r.s.vehicles {
		if vehicle.OwnerID == ownerID {
			clone := *vehicle
			vehicles = append(vehicles, &clone)
		}
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	vehicle, ok := r.s.vehicles[id]
	if !ok {
		return apperrors.ErrVehicleNotFound
	}

	for key, value := range updates {
		switch key {
		case "verified":
			vehicle.Verified = value.(bool)
		case "wheel_category":
			vehicle.WheelCategory = value.(models.WheelCategory)
		}
	}
	vehicle.UpdatedAt = time.Now()

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	vehicle, ok := r.s.vehicles[id]
	if !ok {
		return apperrors.ErrVehicleNotFound
	}

	delete(r.s.plateIndex, vehicle.Plate)
	delete(r.s.vehicles, id)

	return nil
}

func (r *vehicleRepository) GetTotalCount(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.vehicles)), nil
}

// ledgerRepository

type ledgerRepository struct {
	s *Store
}

func (r *ledgerRepository) CreateAccount(ctx context.Context, account *models.LedgerAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[account.UserID]; ok {
		return apperrors.NewConflict("ACCOUNT_EXISTS", "ledger account already exists for this user")
	}

	account.ID = primitive.NewObjectID()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	for account.ReferralCode == "" {
		code := utils.GenerateReferralCode()
		if _, taken := r.s.codeIndex[code]; !taken {
			account.ReferralCode = code
		}
	}
	if _, taken := r.s.codeIndex[account.ReferralCode]; taken {
		return apperrors.NewConflict("REFERRAL_CODE_EXISTS", "referral code already in use")
	}

	clone := *account
	r.s.accounts[account.UserID] = &clone
	r.s.codeIndex[account.ReferralCode] = account.UserID

	return nil
}

func (r *ledgerRepository) GetAccountByUserID(ctx context.Context, userID primitive.ObjectID) (*models.LedgerAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, ok := r.s.accounts[userID]
	if !ok {
		return nil, nil
	}

	clone := *account
	return &clone, nil
}

func (r *ledgerRepository) GetAccountByReferralCode(ctx context.Context, code string) (*models.LedgerAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	userID, ok := r.s.codeIndex[code]
	if !ok {
		return nil, nil
	}

	clone := *r.s.accounts[userID]
	return &clone, nil
}

func (r *ledgerRepository) Credit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	unlock := r.s.locks.Lock("ledger:" + entry.UserID.Hex())
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.creditLocked(entry)
}

func (r *ledgerRepository) Debit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, bool, error) {
	unlock := r.s.locks.Lock("ledger:" + entry.UserID.Hex())
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if entry.IdempotencyKey != "" {
		if existing, ok := r.s.entriesByKey[entry.IdempotencyKey]; ok {
			clone := *existing
			return &clone, false, nil
		}
	}

	account, ok := r.s.accounts[entry.UserID]
	if !ok {
		return nil, false, apperrors.ErrAccountNotFound
	}
	if account.Balance < entry.Amount {
		return nil, false, apperrors.ErrInsufficientBalance
	}

	now := time.Now()
	account.Balance -= entry.Amount
	account.UpdatedAt = now

	entry.ID = primitive.NewObjectID()
	entry.Kind = models.EntryKindSpent
	entry.BalanceAfter = account.Balance
	entry.CreatedAt = now

	clone := *entry
	r.s.entries = append(r.s.entries, &clone)
	if entry.IdempotencyKey != "" {
		r.s.entriesByKey[entry.IdempotencyKey] = &clone
	}

	result := *entry
	return &result, true, nil
}

func (r *ledgerRepository) ListEntries(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.LedgerEntry, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Entries are appended in time order; walk backwards for
	// most-recent-first.
	var matched []*models.LedgerEntry
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		if r.s.entries[i].UserID == userID {
			clone := *r.s.entries[i]
			matched = append(matched, &clone)
		}
	}

	total := int64(len(matched))
	skip := params.GetSkip()
	if skip >= total {
		return nil, total, nil
	}

	end := skip + params.GetLimit()
	if end > total {
		end = total
	}

	return matched[skip:end], total, nil
}

// creditLocked appends an earned entry and bumps the balance. Callers hold
// s.mu.
func (s *Store) creditLocked(entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	account, ok := s.accounts[entry.UserID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}

	now := time.Now()
	account.Balance += entry.Amount
	account.UpdatedAt = now

	entry.ID = primitive.NewObjectID()
	entry.Kind = models.EntryKindEarned
	entry.BalanceAfter = account.Balance
	entry.CreatedAt = now

	clone := *entry
	s.entries = append(s.entries, &clone)

	result := *entry
	return &result, nil
}

// referralRepository

type referralRepository struct {
	s *Store
}

func (r *referralRepository) Apply(ctx context.Context, refereeID, referrerID primitive.ObjectID, code string, reward int64) (*models.ReferralApplication, error) {
	unlock := r.s.locks.Lock("referral:" + refereeID.Hex())
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	referee, ok := r.s.accounts[refereeID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if _, ok := r.s.accounts[referrerID]; !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if referee.ReferredBy != nil {
		return nil, apperrors.ErrReferralAlreadyUsed
	}
	if _, ok := r.s.applications[refereeID]; ok {
		return nil, apperrors.ErrReferralAlreadyUsed
	}

	// All checks passed; every write below happens under the same lock so
	// the flag, the application and both rewards land together.
	now := time.Now()
	referrer := referrerID
	referee.ReferredBy = &referrer
	referee.UpdatedAt = now

	application := &models.ReferralApplication{
		ID:           primitive.NewObjectID(),
		RefereeID:    refereeID,
		ReferrerID:   referrerID,
		ReferralCode: code,
		RewardAmount: reward,
		AppliedAt:    now,
	}
	r.s.applications[refereeID] = application

	if _, err := r.s.creditLocked(&models.LedgerEntry{
		UserID:                refereeID,
		Amount:                reward,
		Reason:                models.EntryReasonReferralReward,
		RelatedReferralUserID: &referrerID,
	}); err != nil {
		return nil, err
	}
	if _, err := r.s.creditLocked(&models.LedgerEntry{
		UserID:                referrerID,
		Amount:                reward,
		Reason:                models.EntryReasonReferralReward,
		RelatedReferralUserID: &refereeID,
	}); err != nil {
		return nil, err
	}

	clone := *application
	return &clone, nil
}

func (r *referralRepository) GetByRefereeID(ctx context.Context, refereeID primitive.ObjectID) (*models.ReferralApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	application, ok := r.s.applications[refereeID]
	if !ok {
		return nil, nil
	}

	clone := *application
	return &clone, nil
}

func (r *referralRepository) CountByReferrerID(ctx context.Context, referrerID primitive.ObjectID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, application := range r.s.applications {
		if application.ReferrerID == referrerID {
			count++
		}
	}

	return count, nil
}

// activityRepository

type activityRepository struct {
	s *Store
}

func (r *activityRepository) RecordSearch(ctx context.Context, vehicleID primitive.ObjectID, at time.Time) error {
	unlock := r.s.locks.Lock("stats:" + vehicleID.Hex())
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stats := r.s.statsLocked(vehicleID)
	stats.TotalSearches++
	stats.LastSearchedAt = &at

	return nil
}

func (r *activityRepository) RecordContactRequest(ctx context.Context, vehicleID primitive.ObjectID) error {
	unlock := r.s.locks.Lock("stats:" + vehicleID.Hex())
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stats := r.s.statsLocked(vehicleID)
	stats.ContactRequests++

	return nil
}

func (r *activityRepository) GetStats(ctx context.Context, vehicleID primitive.ObjectID) (*models.VehicleStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats, ok := r.s.stats[vehicleID]
	if !ok {
		return &models.VehicleStats{VehicleID: vehicleID}, nil
	}

	clone := *stats
	return &clone, nil
}

func (r *activityRepository) DeleteStats(ctx context.Context, vehicleID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.stats, vehicleID)

	return nil
}

func (r *activityRepository) CreateEvent(ctx context.Context, event *models.SearchEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()

	clone := *event
	r.s.events = append(r.s.events, &clone)

	return nil
}

func (r *activityRepository) ListEventsByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]*models.SearchEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var events []*models.SearchEvent
	for i := len(r.s.events) - 1; i >= 0 && int64(len(events)) < limit; i-- {
		if r.s.events[i].OwnerID == ownerID {
			clone := *r.s.events[i]
			events = append(events, &clone)
		}
	}

	return events, nil
}

func (r *activityRepository) CountEventsByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var searches, reveals int64
	for _, event := range r.s.events {
		if event.OwnerID == ownerID {
			searches++
			if event.Revealed {
				reveals++
			}
		}
	}

	return searches, reveals, nil
}

func (s *Store) statsLocked(vehicleID primitive.ObjectID) *models.VehicleStats {
	stats, ok := s.stats[vehicleID]
	if !ok {
		stats = &models.VehicleStats{VehicleID: vehicleID}
		s.stats[vehicleID] = stats
	}
	return stats
}
