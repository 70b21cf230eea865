package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/models"
	"platelink/internal/utils"
)

type LedgerRepository interface {
	// CreateAccount provisions the per-user ledger account. The referral
	// code must be unique; implementations retry with a fresh code on
	// collision.
	CreateAccount(ctx context.Context, account *models.LedgerAccount) error

	// GetAccountByUserID returns (nil, nil) when the user has no account.
	GetAccountByUserID(ctx context.Context, userID primitive.ObjectID) (*models.LedgerAccount, error)
	GetAccountByReferralCode(ctx context.Context, code string) (*models.LedgerAccount, error)

	// Credit appends an earned entry and increments the balance atomically.
	Credit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error)

	// Debit atomically checks balance >= amount and decrements it while
	// appending a spent entry; on a failed check nothing is written and
	// apperrors.ErrInsufficientBalance is returned. When the entry carries
	// an idempotency key that was already committed, the prior entry is
	// returned with created=false and no new write happens.
	Debit(ctx context.Context, entry *models.LedgerEntry) (result *models.LedgerEntry, created bool, err error)

	// ListEntries returns the user's entries most-recent-first.
	ListEntries(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.LedgerEntry, int64, error)
}
