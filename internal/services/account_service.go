package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/apperrors"
	"platelink/internal/config"
	"platelink/internal/models"
	"platelink/internal/repositories/interfaces"
	"platelink/internal/utils"
	"platelink/pkg/logger"
)

type CreateOwnerInput struct {
	FirstName      string                `json:"first_name" validate:"required,min=1,max=50"`
	LastName       string                `json:"last_name" validate:"max=50"`
	Phone          string                `json:"phone" validate:"required,phone"`
	Email          string                `json:"email" validate:"omitempty,email"`
	ContactMethods models.ContactMethods `json:"contact_methods"`
}

type UpdateContactProfileInput struct {
	FirstName      *string                `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName       *string                `json:"last_name" validate:"omitempty,max=50"`
	Email          *string                `json:"email" validate:"omitempty,email"`
	ContactMethods *models.ContactMethods `json:"contact_methods"`
}

// OwnerProfile bundles the pieces an owner sees about themselves.
type OwnerProfile struct {
	User    *models.User          `json:"user"`
	Account *models.LedgerAccount `json:"account"`
}

type AccountService interface {
	// CreateOwner registers the owner, provisions their ledger account with
	// a fresh referral code, credits the signup bonus and issues an access
	// token.
	CreateOwner(ctx context.Context, input *CreateOwnerInput) (*OwnerProfile, *utils.AccessToken, error)

	// Login issues a token for an existing phone number.
	Login(ctx context.Context, phone string) (*OwnerProfile, *utils.AccessToken, error)

	GetOwner(ctx context.Context, userID primitive.ObjectID) (*OwnerProfile, error)

	// UpdateContactProfile rejects an update that enables contactability
	// with no contact method to disclose.
	UpdateContactProfile(ctx context.Context, userID primitive.ObjectID, input *UpdateContactProfileInput) (*models.User, error)
}

type accountService struct {
	userRepo   interfaces.UserRepository
	ledgerRepo interfaces.LedgerRepository
	security   *config.SecurityConfig
	rewards    *config.RewardsConfig
	logger     *logger.Logger
}

func NewAccountService(
	userRepo interfaces.UserRepository,
	ledgerRepo interfaces.LedgerRepository,
	security *config.SecurityConfig,
	rewards *config.RewardsConfig,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		security:   security,
		rewards:    rewards,
		logger:     logger,
	}
}

func (s *accountService) CreateOwner(ctx context.Context, input *CreateOwnerInput) (*OwnerProfile, *utils.AccessToken, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, nil, apperrors.NewValidation("VALIDATION_FAILED", "invalid owner details", err)
	}

	user := &models.User{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Phone:          utils.NormalizePhone(input.Phone),
		Email:          input.Email,
		ContactMethods: input.ContactMethods,
		Status:         models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	account := &models.LedgerAccount{UserID: user.ID}
	if err := s.ledgerRepo.CreateAccount(ctx, account); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Error("failed to provision ledger account")
		return nil, nil, err
	}

	if s.rewards.SignupBonus > 0 {
		if _, err := s.ledgerRepo.Credit(ctx, &models.LedgerEntry{
			UserID: user.ID,
			Amount: s.rewards.SignupBonus,
			Reason: models.EntryReasonSignupBonus,
		}); err != nil {
			s.logger.WithError(err).WithUserID(user.ID).Error("failed to credit signup bonus")
			return nil, nil, err
		}
		s.logger.LogLedgerEvent(user.ID, string(models.EntryKindEarned), s.rewards.SignupBonus, string(models.EntryReasonSignupBonus))
		account.Balance += s.rewards.SignupBonus
	}

	token, err := utils.GenerateAccessToken(user.ID, s.security.JWTSecret)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithUserID(user.ID).Info("owner account created")

	return &OwnerProfile{User: user, Account: account}, token, nil
}

func (s *accountService) Login(ctx context.Context, phone string) (*OwnerProfile, *utils.AccessToken, error) {
	if !utils.IsValidPhone(utils.NormalizePhone(phone)) {
		return nil, nil, apperrors.NewValidation("INVALID_PHONE", "invalid phone number", nil)
	}

	user, err := s.userRepo.GetByPhone(ctx, utils.NormalizePhone(phone))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperrors.ErrOwnerNotFound
	}

	profile, err := s.GetOwner(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	token, err := utils.GenerateAccessToken(user.ID, s.security.JWTSecret)
	if err != nil {
		return nil, nil, err
	}

	return profile, token, nil
}

func (s *accountService) GetOwner(ctx context.Context, userID primitive.ObjectID) (*OwnerProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrOwnerNotFound
	}

	account, err := s.ledgerRepo.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrAccountNotFound
	}

	return &OwnerProfile{User: user, Account: account}, nil
}

func (s *accountService) UpdateContactProfile(ctx context.Context, userID primitive.ObjectID, input *UpdateContactProfileInput) (*models.User, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, apperrors.NewValidation("VALIDATION_FAILED", "invalid profile update", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrOwnerNotFound
	}

	updates := make(map[string]interface{})
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		updates["email"] = *input.Email
		user.Email = *input.Email
	}
	if input.ContactMethods != nil {
		if input.ContactMethods.Email && user.Email == "" && (input.Email == nil || *input.Email == "") {
			return nil, apperrors.NewValidation("EMAIL_REQUIRED", "email contact method requires an email address", nil)
		}
		updates["contact_methods"] = *input.ContactMethods
		user.ContactMethods = *input.ContactMethods
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}

	s.logger.WithUserID(userID).Info("contact profile updated")

	return user, nil
}
