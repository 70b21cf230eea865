package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/repositories/interfaces"
	"platelink/internal/utils"
	"platelink/pkg/logger"
)

type LedgerService interface {
	Credit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error)

	// Debit reports created=false when the idempotency key was seen before;
	// the returned entry is then the originally committed one.
	// ErrInsufficientBalance means nothing was written.
	Debit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, bool, error)

	GetBalance(ctx context.Context, userID primitive.ObjectID) (int64, error)
	GetAccount(ctx context.Context, userID primitive.ObjectID) (*models.LedgerAccount, error)
	History(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.LedgerEntry, *utils.PaginationMeta, error)
}

type ledgerService struct {
	ledgerRepo interfaces.LedgerRepository
	logger     *logger.Logger
}

func NewLedgerService(ledgerRepo interfaces.LedgerRepository, logger *logger.Logger) LedgerService {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

func (s *ledgerService) Credit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	if entry.Amount <= 0 {
		return nil, apperrors.NewValidation("INVALID_AMOUNT", "credit amount must be positive", nil)
	}

	result, err := s.ledgerRepo.Credit(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.logger.LogLedgerEvent(result.UserID, string(result.Kind), result.Amount, string(result.Reason))

	return result, nil
}

func (s *ledgerService) Debit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, bool, error) {
	if entry.Amount <= 0 {
		return nil, false, apperrors.NewValidation("INVALID_AMOUNT", "debit amount must be positive", nil)
	}

	result, created, err := s.ledgerRepo.Debit(ctx, entry)
	if err != nil {
		return nil, false, err
	}

	if created {
		s.logger.LogLedgerEvent(result.UserID, string(result.Kind), result.Amount, string(result.Reason))
	}

	return result, created, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	account, err := s.GetAccount(ctx, userID)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, userID primitive.ObjectID) (*models.LedgerAccount, error) {
	account, err := s.ledgerRepo.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrAccountNotFound
	}

	return account, nil
}

func (s *ledgerService) History(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.LedgerEntry, *utils.PaginationMeta, error) {
	if params == nil {
		params = utils.DefaultPaginationParams()
	}

	entries, total, err := s.ledgerRepo.ListEntries(ctx, userID, params)
	if err != nil {
		return nil, nil, err
	}

	return entries, utils.CalculatePaginationMeta(params, total), nil
}
