package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/utils"
)

func TestCreateOwnerProvisionsLedgerAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profile, token, err := f.accounts.CreateOwner(ctx, &CreateOwnerInput{
		FirstName:      "Asha",
		LastName:       "Sharma",
		Phone:          "9876512345",
		ContactMethods: allContactMethods(),
	})
	require.NoError(t, err)
	require.Equal(t, "+919876512345", profile.User.Phone, "bare national numbers gain the country code")
	require.EqualValues(t, 3, profile.Account.Balance, "signup bonus is credited at creation")
	require.True(t, utils.IsValidReferralCode(profile.Account.ReferralCode))
	require.Nil(t, profile.Account.ReferredBy)

	userID, err := utils.ValidateAccessToken(token.Token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, profile.User.ID, userID)

	// The bonus exists as a ledger entry, not just a balance.
	entries, _, err := f.ledger.History(ctx, profile.User.ID, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, models.EntryReasonSignupBonus, entries[0].Reason)
	require.EqualValues(t, 3, entries[0].BalanceAfter)
}

func TestCreateOwnerDuplicatePhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	input := &CreateOwnerInput{FirstName: "Asha", Phone: "9876512345"}
	_, _, err := f.accounts.CreateOwner(ctx, input)
	require.NoError(t, err)

	_, _, err = f.accounts.CreateOwner(ctx, input)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CategoryConflict, appErr.Category)
}

func TestCreateOwnerValidation(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.accounts.CreateOwner(context.Background(), &CreateOwnerInput{
		FirstName: "",
		Phone:     "9876512345",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CategoryValidation, appErr.Category)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	profile, token, err := f.accounts.Login(ctx, owner.User.Phone)
	require.NoError(t, err)
	require.Equal(t, owner.User.ID, profile.User.ID)
	require.NotEmpty(t, token.Token)

	_, _, err = f.accounts.Login(ctx, "+919111111111")
	require.ErrorIs(t, err, apperrors.ErrOwnerNotFound)
}

func TestUpdateContactProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	// Email channel without an email address on file is refused.
	_, err := f.accounts.UpdateContactProfile(ctx, owner.User.ID, &UpdateContactProfileInput{
		ContactMethods: &models.ContactMethods{Email: true},
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CategoryValidation, appErr.Category)

	// Opting out entirely is allowed; the owner becomes unlisted.
	updated, err := f.accounts.UpdateContactProfile(ctx, owner.User.ID, &UpdateContactProfileInput{
		ContactMethods: &models.ContactMethods{},
	})
	require.NoError(t, err)
	require.False(t, updated.IsContactable())

	fetched, err := f.accounts.GetOwner(ctx, owner.User.ID)
	require.NoError(t, err)
	require.False(t, fetched.User.ContactMethods.AnyEnabled())
}
