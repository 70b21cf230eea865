package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/repositories/interfaces"
	"platelink/pkg/database"
)

type referralRepository struct {
	db           *database.MongoDB
	applications *mongo.Collection
	accounts     *mongo.Collection
	entries      *mongo.Collection
}

func NewReferralRepository(db *database.MongoDB) interfaces.ReferralRepository {
	return &referralRepository{
		db:           db,
		applications: db.Collection("referral_applications"),
		accounts:     db.Collection("ledger_accounts"),
		entries:      db.Collection("ledger_entries"),
	}
}

func (r *referralRepository) Apply(ctx context.Context, refereeID, referrerID primitive.ObjectID, code string, reward int64) (*models.ReferralApplication, error) {
	result, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		// Write-once referred_by flag doubles as the at-most-once gate.
		update, err := r.accounts.UpdateOne(sc,
			bson.M{"user_id": refereeID, "referred_by": nil},
			bson.M{"$set": bson.M{"referred_by": referrerID, "updated_at": now}},
		)
		if err != nil {
			return nil, apperrors.NewTransient("failed to mark referee as referred", err)
		}
		if update.MatchedCount == 0 {
			exists, countErr := r.accounts.CountDocuments(sc, bson.M{"user_id": refereeID})
			if countErr != nil {
				return nil, apperrors.NewTransient("failed to check referee account", countErr)
			}
			if exists == 0 {
				return nil, apperrors.ErrAccountNotFound
			}
			return nil, apperrors.ErrReferralAlreadyUsed
		}

		application := &models.ReferralApplication{
			ID:           primitive.NewObjectID(),
			RefereeID:    refereeID,
			ReferrerID:   referrerID,
			ReferralCode: code,
			RewardAmount: reward,
			AppliedAt:    now,
		}
		if _, err := r.applications.InsertOne(sc, application); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperrors.ErrReferralAlreadyUsed
			}
			return nil, apperrors.NewTransient("failed to record referral application", err)
		}

		// Both rewards commit with the flag or not at all.
		refereeEntry := &models.LedgerEntry{
			UserID:                refereeID,
			Amount:                reward,
			Reason:                models.EntryReasonReferralReward,
			RelatedReferralUserID: &referrerID,
		}
		if _, err := creditAccount(sc, r.accounts, r.entries, refereeEntry); err != nil {
			return nil, err
		}

		referrerEntry := &models.LedgerEntry{
			UserID:                referrerID,
			Amount:                reward,
			Reason:                models.EntryReasonReferralReward,
			RelatedReferralUserID: &refereeID,
		}
		if _, err := creditAccount(sc, r.accounts, r.entries, referrerEntry); err != nil {
			return nil, err
		}

		return application, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*models.ReferralApplication), nil
}

func (r *referralRepository) GetByRefereeID(ctx context.Context, refereeID primitive.ObjectID) (*models.ReferralApplication, error) {
	var application models.ReferralApplication
	err := r.applications.FindOne(ctx, bson.M{"referee_id": refereeID}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.NewTransient("failed to get referral application", err)
	}

	return &application, nil
}

func (r *referralRepository) CountByReferrerID(ctx context.Context, referrerID primitive.ObjectID) (int64, error) {
	return r.applications.CountDocuments(ctx, bson.M{"referrer_id": referrerID})
}
