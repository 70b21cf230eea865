package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EntryKind string
type EntryReason string

const (
	EntryKindEarned EntryKind = "earned"
	EntryKindSpent  EntryKind = "spent"

	EntryReasonSignupBonus    EntryReason = "signup_bonus"
	EntryReasonReferralReward EntryReason = "referral_reward"
	EntryReasonContactReveal  EntryReason = "contact_reveal"
	EntryReasonAdjustment     EntryReason = "adjustment"
)

// LedgerAccount holds a user's spendable credit balance. The balance is kept
// denormalized for cheap reads but must always equal the signed sum of the
// user's ledger entries.
type LedgerAccount struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	Balance      int64               `json:"balance" bson:"balance" default:"0"`
	ReferralCode string              `json:"referral_code" bson:"referral_code" validate:"required"`
	ReferredBy   *primitive.ObjectID `json:"referred_by" bson:"referred_by"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}

// LedgerEntry is an immutable, append-only record of one balance movement.
// Amount is always the positive magnitude; Kind carries the sign.
type LedgerEntry struct {
	ID                    primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID                primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	Kind                  EntryKind           `json:"kind" bson:"kind" validate:"required"`
	Amount                int64               `json:"amount" bson:"amount" validate:"required,gt=0"`
	Reason                EntryReason         `json:"reason" bson:"reason" validate:"required"`
	IdempotencyKey        string              `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	RelatedVehicleID      *primitive.ObjectID `json:"related_vehicle_id,omitempty" bson:"related_vehicle_id,omitempty"`
	RelatedReferralUserID *primitive.ObjectID `json:"related_referral_user_id,omitempty" bson:"related_referral_user_id,omitempty"`
	BalanceAfter          int64               `json:"balance_after" bson:"balance_after"`
	CreatedAt             time.Time           `json:"created_at" bson:"created_at"`
}

// Signed returns the entry's contribution to the account balance.
func (e *LedgerEntry) Signed() int64 {
	if e.Kind == EntryKindSpent {
		return -e.Amount
	}
	return e.Amount
}
