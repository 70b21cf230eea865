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

// ReferralStatus is what an owner sees about their referral standing.
type ReferralStatus struct {
	ReferralCode  string                      `json:"referral_code"`
	ReferredBy    *models.ReferralApplication `json:"referred_by,omitempty"`
	ReferredCount int64                       `json:"referred_count"`
}

type ReferralService interface {
	// ValidateCode checks the 8-char uppercase alphanumeric shape, then
	// resolves the code to its owning account.
	ValidateCode(ctx context.Context, code string) (*models.LedgerAccount, error)

	// Apply redeems a code for the referee. The referred_by flag is
	// write-once: a second code, any code, ever, fails with
	// ErrReferralAlreadyUsed. Both sides earn the reward atomically.
	Apply(ctx context.Context, refereeID primitive.ObjectID, code string) (*models.ReferralResult, error)

	GetStatus(ctx context.Context, userID primitive.ObjectID) (*ReferralStatus, error)
}

type referralService struct {
	referralRepo interfaces.ReferralRepository
	ledgerRepo   interfaces.LedgerRepository
	rewards      *config.RewardsConfig
	logger       *logger.Logger
}

func NewReferralService(
	referralRepo interfaces.ReferralRepository,
	ledgerRepo interfaces.LedgerRepository,
	rewards *config.RewardsConfig,
	logger *logger.Logger,
) ReferralService {
	return &referralService{
		referralRepo: referralRepo,
		ledgerRepo:   ledgerRepo,
		rewards:      rewards,
		logger:       logger,
	}
}

func (s *referralService) ValidateCode(ctx context.Context, code string) (*models.LedgerAccount, error) {
	if !utils.IsValidReferralCode(code) {
		return nil, apperrors.ErrInvalidReferralCode
	}

	account, err := s.ledgerRepo.GetAccountByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrReferralCodeNotFound
	}

	return account, nil
}

func (s *referralService) Apply(ctx context.Context, refereeID primitive.ObjectID, code string) (*models.ReferralResult, error) {
	referrer, err := s.ValidateCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if referrer.UserID == refereeID {
		return nil, apperrors.ErrSelfReferral
	}

	application, err := s.referralRepo.Apply(ctx, refereeID, referrer.UserID, code, s.rewards.ReferralReward)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"referee_id":  refereeID.Hex(),
		"referrer_id": referrer.UserID.Hex(),
		"reward":      application.RewardAmount,
	}).Info("referral applied")

	return &models.ReferralResult{
		ReferrerID:   referrer.UserID,
		RewardAmount: application.RewardAmount,
	}, nil
}

func (s *referralService) GetStatus(ctx context.Context, userID primitive.ObjectID) (*ReferralStatus, error) {
	account, err := s.ledgerRepo.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrAccountNotFound
	}

	application, err := s.referralRepo.GetByRefereeID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.referralRepo.CountByReferrerID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ReferralStatus{
		ReferralCode:  account.ReferralCode,
		ReferredBy:    application,
		ReferredCount: count,
	}, nil
}
