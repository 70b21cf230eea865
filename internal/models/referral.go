package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferralApplication records that a referrer rewarded a referee. A referee
// may appear in at most one application for all time, enforced by a unique
// index on referee_id.
type ReferralApplication struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RefereeID    primitive.ObjectID `json:"referee_id" bson:"referee_id" validate:"required"`
	ReferrerID   primitive.ObjectID `json:"referrer_id" bson:"referrer_id" validate:"required"`
	ReferralCode string             `json:"referral_code" bson:"referral_code" validate:"required"`
	RewardAmount int64              `json:"reward_amount" bson:"reward_amount"`
	AppliedAt    time.Time          `json:"applied_at" bson:"applied_at"`
}

// ReferralResult is returned to the referee after a successful application.
type ReferralResult struct {
	ReferrerID   primitive.ObjectID `json:"referrer_id"`
	RewardAmount int64              `json:"reward_amount"`
}
