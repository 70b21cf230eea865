package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"platelink/internal/apperrors"
	"platelink/internal/models"
)

func TestValidateCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	account, err := f.referral.ValidateCode(ctx, owner.Account.ReferralCode)
	require.NoError(t, err)
	require.Equal(t, owner.User.ID, account.UserID)

	for _, code := range []string{"", "abc", "abcd2345", "ABCD234", "ABCD2345X", "ABC-2345"} {
		_, err := f.referral.ValidateCode(ctx, code)
		require.ErrorIs(t, err, apperrors.ErrInvalidReferralCode, "code %q", code)
	}

	_, err = f.referral.ValidateCode(ctx, "ZZZZ9999")
	require.ErrorIs(t, err, apperrors.ErrReferralCodeNotFound)
}

func TestApplyRewardsBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	referrer := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	referee := f.createOwner(t, "Ravi", "Kumar", allContactMethods())

	result, err := f.referral.Apply(ctx, referee.User.ID, referrer.Account.ReferralCode)
	require.NoError(t, err)
	require.Equal(t, referrer.User.ID, result.ReferrerID)
	require.EqualValues(t, 5, result.RewardAmount)

	// Signup bonus 3 plus referral reward 5 on both sides.
	refereeBalance, err := f.ledger.GetBalance(ctx, referee.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 8, refereeBalance)

	referrerBalance, err := f.ledger.GetBalance(ctx, referrer.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 8, referrerBalance)

	status, err := f.referral.GetStatus(ctx, referee.User.ID)
	require.NoError(t, err)
	require.NotNil(t, status.ReferredBy)
	require.Equal(t, referrer.User.ID, status.ReferredBy.ReferrerID)
	require.EqualValues(t, 0, status.ReferredCount)

	status, err = f.referral.GetStatus(ctx, referrer.User.ID)
	require.NoError(t, err)
	require.Nil(t, status.ReferredBy)
	require.EqualValues(t, 1, status.ReferredCount)

	// The rewards are entries with the referral reason, cross-referencing
	// the counterparty.
	entries, _, err := f.ledger.History(ctx, referee.User.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.EntryReasonReferralReward, entries[0].Reason)
	require.Equal(t, referrer.User.ID, *entries[0].RelatedReferralUserID)
}

func TestApplySelfReferral(t *testing.T) {
	f := newFixture(t)
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	_, err := f.referral.Apply(context.Background(), owner.User.ID, owner.Account.ReferralCode)
	require.ErrorIs(t, err, apperrors.ErrSelfReferral)
}

func TestApplyIsWriteOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	second := f.createOwner(t, "Meera", "Iyer", allContactMethods())
	referee := f.createOwner(t, "Ravi", "Kumar", allContactMethods())

	_, err := f.referral.Apply(ctx, referee.User.ID, first.Account.ReferralCode)
	require.NoError(t, err)

	// A different code, the same code, any code: once referred, always
	// refused.
	_, err = f.referral.Apply(ctx, referee.User.ID, second.Account.ReferralCode)
	require.ErrorIs(t, err, apperrors.ErrReferralAlreadyUsed)
	_, err = f.referral.Apply(ctx, referee.User.ID, first.Account.ReferralCode)
	require.ErrorIs(t, err, apperrors.ErrReferralAlreadyUsed)

	balance, err := f.ledger.GetBalance(ctx, referee.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 8, balance, "refused applications credit nothing")
}
