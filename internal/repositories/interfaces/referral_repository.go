package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/models"
)

type ReferralRepository interface {
	// Apply atomically marks the referee as referred (write-once), records
	// the application, and credits both parties the reward. Everything
	// rolls back together: no partial reward, no flag without reward.
	// Returns apperrors.ErrReferralAlreadyUsed when the referee was
	// referred before, by anyone, ever.
	Apply(ctx context.Context, refereeID, referrerID primitive.ObjectID, code string, reward int64) (*models.ReferralApplication, error)

	// GetByRefereeID returns (nil, nil) when the referee never applied a code.
	GetByRefereeID(ctx context.Context, refereeID primitive.ObjectID) (*models.ReferralApplication, error)
	CountByReferrerID(ctx context.Context, referrerID primitive.ObjectID) (int64, error)
}
