package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/repositories/interfaces"
	"platelink/internal/utils"
	"platelink/pkg/database"
)

// errIdempotentReplay aborts the debit transaction when another request with
// the same idempotency key committed first. The caller then returns that
// prior entry instead.
var errIdempotentReplay = errors.New("idempotency key already committed")

const createAccountAttempts = 3

type ledgerRepository struct {
	db       *database.MongoDB
	accounts *mongo.Collection
	entries  *mongo.Collection
}

func NewLedgerRepository(db *database.MongoDB) interfaces.LedgerRepository {
	return &ledgerRepository{
		db:       db,
		accounts: db.Collection("ledger_accounts"),
		entries:  db.Collection("ledger_entries"),
	}
}

func (r *ledgerRepository) CreateAccount(ctx context.Context, account *models.LedgerAccount) error {
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	var err error
	for attempt := 0; attempt < createAccountAttempts; attempt++ {
		account.ID = primitive.NewObjectID()
		if account.ReferralCode == "" || attempt > 0 {
			account.ReferralCode = utils.GenerateReferralCode()
		}

		_, err = r.accounts.InsertOne(ctx, account)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return apperrors.NewTransient("failed to create ledger account", err)
		}

		// A duplicate user_id is a real conflict; a duplicate referral
		// code just means regenerate and try again.
		existing, lookupErr := r.GetAccountByUserID(ctx, account.UserID)
		if lookupErr == nil && existing != nil {
			return apperrors.NewConflict("ACCOUNT_EXISTS", "ledger account already exists for this user")
		}
	}

	return apperrors.NewTransient("failed to allocate a unique referral code", err)
}

func (r *ledgerRepository) GetAccountByUserID(ctx context.Context, userID primitive.ObjectID) (*models.LedgerAccount, error) {
	var account models.LedgerAccount
	err := r.accounts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.NewTransient("failed to get ledger account", err)
	}

	return &account, nil
}

func (r *ledgerRepository) GetAccountByReferralCode(ctx context.Context, code string) (*models.LedgerAccount, error) {
	var account models.LedgerAccount
	err := r.accounts.FindOne(ctx, bson.M{"referral_code": code}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.NewTransient("failed to get account by referral code", err)
	}

	return &account, nil
}

func (r *ledgerRepository) Credit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	result, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return creditAccount(sc, r.accounts, r.entries, entry)
	})
	if err != nil {
		return nil, err
	}

	return result.(*models.LedgerEntry), nil
}

func (r *ledgerRepository) Debit(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, bool, error) {
	// Fast path: a retried request whose first attempt already committed.
	if entry.IdempotencyKey != "" {
		if existing, err := r.getEntryByKey(ctx, entry.IdempotencyKey); err != nil {
			return nil, false, err
		} else if existing != nil {
			return existing, false, nil
		}
	}

	result, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		var account models.LedgerAccount
		err := r.accounts.FindOneAndUpdate(sc,
			bson.M{"user_id": entry.UserID, "balance": bson.M{"$gte": entry.Amount}},
			bson.M{
				"$inc": bson.M{"balance": -entry.Amount},
				"$set": bson.M{"updated_at": now},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&account)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				return nil, apperrors.NewTransient("failed to debit account", err)
			}
			exists, countErr := r.accounts.CountDocuments(sc, bson.M{"user_id": entry.UserID})
			if countErr != nil {
				return nil, apperrors.NewTransient("failed to check account", countErr)
			}
			if exists == 0 {
				return nil, apperrors.ErrAccountNotFound
			}
			return nil, apperrors.ErrInsufficientBalance
		}

		entry.ID = primitive.NewObjectID()
		entry.Kind = models.EntryKindSpent
		entry.BalanceAfter = account.Balance
		entry.CreatedAt = now

		if _, err := r.entries.InsertOne(sc, entry); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Concurrent request with the same key won; abort so the
				// balance decrement above is rolled back.
				return nil, errIdempotentReplay
			}
			return nil, apperrors.NewTransient("failed to append ledger entry", err)
		}

		return entry, nil
	})
	if err != nil {
		if errors.Is(err, errIdempotentReplay) {
			existing, lookupErr := r.getEntryByKey(ctx, entry.IdempotencyKey)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return result.(*models.LedgerEntry), true, nil
}

func (r *ledgerRepository) ListEntries(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.LedgerEntry, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := r.entries.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewTransient("failed to count ledger entries", err)
	}

	cursor, err := r.entries.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, apperrors.NewTransient("failed to list ledger entries", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.LedgerEntry
	for cursor.Next(ctx) {
		var entry models.LedgerEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, 0, fmt.Errorf("failed to decode ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, total, nil
}

func (r *ledgerRepository) getEntryByKey(ctx context.Context, key string) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.entries.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.NewTransient("failed to look up idempotency key", err)
	}

	return &entry, nil
}

// creditAccount appends an earned entry and increments the balance within
// the caller's session. Shared with the referral repository, which credits
// both sides of a referral inside one transaction.
func creditAccount(sc mongo.SessionContext, accounts, entries *mongo.Collection, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	now := time.Now()

	var account models.LedgerAccount
	err := accounts.FindOneAndUpdate(sc,
		bson.M{"user_id": entry.UserID},
		bson.M{
			"$inc": bson.M{"balance": entry.Amount},
			"$set": bson.M{"updated_at": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.NewTransient("failed to credit account", err)
	}

	entry.ID = primitive.NewObjectID()
	entry.Kind = models.EntryKindEarned
	entry.BalanceAfter = account.Balance
	entry.CreatedAt = now

	if _, err := entries.InsertOne(sc, entry); err != nil {
		return nil, apperrors.NewTransient("failed to append ledger entry", err)
	}

	return entry, nil
}
