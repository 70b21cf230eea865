package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/plate"
)

func TestSearchUnknownPlateIsBenign(t *testing.T) {
	f := newFixture(t)

	result, err := f.search.Search(context.Background(), nil, "MH12AB9999")
	require.NoError(t, err)
	require.False(t, result.Found)
	require.Nil(t, result.Vehicle)
}

func TestSearchRejectsInvalidPlate(t *testing.T) {
	f := newFixture(t)

	_, err := f.search.Search(context.Background(), nil, "NOT A PLATE")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CategoryValidation, appErr.Category)
}

func TestSearchMasksOwnerNameAndRecordsActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	vehicle := f.registerVehicle(t, owner, "mh 12 ab-1234")

	searcher := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})
	result, err := f.search.Search(ctx, &searcher.User.ID, "MH12AB1234")
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Equal(t, "Asha S.", result.Vehicle.OwnerName)
	require.Equal(t, "MH12AB1234", result.Vehicle.Plate)
	require.Equal(t, plate.FormatStandard, result.Vehicle.PlateFormat)
	require.True(t, result.Vehicle.Contactable)

	stats, err := f.activity.GetVehicleStats(ctx, owner.User.ID, vehicle.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.TotalSearches)
	require.EqualValues(t, 0, stats.ContactRequests)
	require.NotNil(t, stats.LastSearchedAt)

	feed, err := f.activity.GetOwnerActivity(ctx, owner.User.ID, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, feed.TotalSearches)
	require.Len(t, feed.RecentEvents, 1)
	require.False(t, feed.RecentEvents[0].Revealed)
	require.Equal(t, searcher.User.ID, *feed.RecentEvents[0].SearcherID)
}

func TestSearchSingleWordNameNotMasked(t *testing.T) {
	f := newFixture(t)

	owner := f.createOwner(t, "Rihanna", "", allContactMethods())
	f.registerVehicle(t, owner, "DL1CAB1234")

	result, err := f.search.Search(context.Background(), nil, "DL1CAB1234")
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Equal(t, "Rihanna", result.Vehicle.OwnerName)
}

func TestRevealDebitsOnceAndDisclosesEnabledChannels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", models.ContactMethods{Phone: true})
	vehicle := f.registerVehicle(t, owner, "MH12AB1234")
	searcher := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})

	key := uuid.New().String()
	contact, err := f.search.Reveal(ctx, searcher.User.ID, vehicle.ID, key)
	require.NoError(t, err)
	require.False(t, contact.AlreadyRevealed)
	require.Equal(t, "Asha Sharma", contact.OwnerName)
	require.Equal(t, owner.User.Phone, contact.Phone)
	require.Empty(t, contact.Email, "disabled channels are never disclosed")
	require.EqualValues(t, 1, contact.CreditsSpent)

	balance, err := f.ledger.GetBalance(ctx, searcher.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, balance)

	stats, err := f.activity.GetVehicleStats(ctx, owner.User.ID, vehicle.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.ContactRequests)

	// Replaying the same key is free and does not touch the counters.
	replay, err := f.search.Reveal(ctx, searcher.User.ID, vehicle.ID, key)
	require.NoError(t, err)
	require.True(t, replay.AlreadyRevealed)
	require.Equal(t, contact.Phone, replay.Phone)

	balance, err = f.ledger.GetBalance(ctx, searcher.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, balance)

	stats, err = f.activity.GetVehicleStats(ctx, owner.User.ID, vehicle.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.ContactRequests)
}

func TestRevealKeyIsScopedToSearcher(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", models.ContactMethods{Phone: true})
	vehicle := f.registerVehicle(t, owner, "MH12AB1234")
	payer := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})
	freeloader := f.createOwner(t, "Meera", "Iyer", models.ContactMethods{})

	_, err := f.search.Reveal(ctx, payer.User.ID, vehicle.ID, "shared-key")
	require.NoError(t, err)

	// Presenting someone else's committed key buys nothing for free: the
	// second searcher pays their own credit.
	contact, err := f.search.Reveal(ctx, freeloader.User.ID, vehicle.ID, "shared-key")
	require.NoError(t, err)
	require.False(t, contact.AlreadyRevealed)

	balance, err := f.ledger.GetBalance(ctx, freeloader.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, balance)

	stats, err := f.activity.GetVehicleStats(ctx, owner.User.ID, vehicle.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.ContactRequests)
}

func TestRevealKeyIsScopedToVehicle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", models.ContactMethods{Phone: true})
	first := f.registerVehicle(t, owner, "MH12AB1234")
	second := f.registerVehicle(t, owner, "DL1CAB1234")
	searcher := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})

	_, err := f.search.Reveal(ctx, searcher.User.ID, first.ID, "retry-key")
	require.NoError(t, err)

	// Reusing the key against a different vehicle is a second disclosure
	// and a second debit, not a replay.
	contact, err := f.search.Reveal(ctx, searcher.User.ID, second.ID, "retry-key")
	require.NoError(t, err)
	require.False(t, contact.AlreadyRevealed)

	balance, err := f.ledger.GetBalance(ctx, searcher.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, balance, "two vehicles, two charges")

	// The same key against the same vehicle still replays for free.
	replay, err := f.search.Reveal(ctx, searcher.User.ID, first.ID, "retry-key")
	require.NoError(t, err)
	require.True(t, replay.AlreadyRevealed)

	balance, err = f.ledger.GetBalance(ctx, searcher.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, balance)
}

func TestRevealInsufficientBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	vehicle := f.registerVehicle(t, owner, "MH12AB1234")
	searcher := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})

	// Signup bonus covers exactly three reveals.
	for i := 0; i < 3; i++ {
		_, err := f.search.Reveal(ctx, searcher.User.ID, vehicle.ID, uuid.New().String())
		require.NoError(t, err)
	}

	_, err := f.search.Reveal(ctx, searcher.User.ID, vehicle.ID, uuid.New().String())
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	balance, err := f.ledger.GetBalance(ctx, searcher.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, balance)

	stats, err := f.activity.GetVehicleStats(ctx, owner.User.ID, vehicle.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.ContactRequests, "the failed reveal leaves no trace")
}

func TestRevealNotContactable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", models.ContactMethods{})
	vehicle := f.registerVehicle(t, owner, "MH12AB1234")
	searcher := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})

	_, err := f.search.Reveal(ctx, searcher.User.ID, vehicle.ID, uuid.New().String())
	require.ErrorIs(t, err, apperrors.ErrNotContactable)

	// Nothing was charged for the refused reveal.
	balance, err := f.ledger.GetBalance(ctx, searcher.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, balance)
}

func TestRevealVehicleNotFound(t *testing.T) {
	f := newFixture(t)

	searcher := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})
	_, err := f.search.Reveal(context.Background(), searcher.User.ID, primitive.NewObjectID(), uuid.New().String())
	require.ErrorIs(t, err, apperrors.ErrVehicleNotFound)
}
