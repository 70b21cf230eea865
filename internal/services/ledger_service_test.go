package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/utils"
)

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	_, err := f.ledger.Credit(ctx, &models.LedgerEntry{UserID: owner.User.ID, Amount: 0, Reason: models.EntryReasonAdjustment})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CategoryValidation, appErr.Category)

	_, _, err = f.ledger.Debit(ctx, &models.LedgerEntry{UserID: owner.User.ID, Amount: -1, Reason: models.EntryReasonAdjustment})
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CategoryValidation, appErr.Category)
}

func TestLedgerUnknownAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.GetBalance(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestHistoryIsMostRecentFirstAndPaginated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	for i := int64(1); i <= 5; i++ {
		_, err := f.ledger.Credit(ctx, &models.LedgerEntry{
			UserID: owner.User.ID,
			Amount: i,
			Reason: models.EntryReasonAdjustment,
		})
		require.NoError(t, err)
	}

	params := utils.DefaultPaginationParams()
	params.PageSize = 3
	entries, meta, err := f.ledger.History(ctx, owner.User.ID, params)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.EqualValues(t, 6, meta.Total, "signup bonus plus five adjustments")
	require.True(t, meta.HasNext)
	require.EqualValues(t, 5, entries[0].Amount, "newest entry first")

	params.Page = 2
	entries, meta, err = f.ledger.History(ctx, owner.User.ID, params)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.False(t, meta.HasNext)
	require.Equal(t, models.EntryReasonSignupBonus, entries[2].Reason, "oldest entry last")
}
