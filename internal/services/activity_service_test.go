package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"platelink/internal/apperrors"
	"platelink/internal/models"
)

func TestGetVehicleStatsIsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	stranger := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})
	vehicle := f.registerVehicle(t, owner, "MH12AB1234")

	_, err := f.activity.GetVehicleStats(ctx, stranger.User.ID, vehicle.ID)
	require.ErrorIs(t, err, apperrors.ErrNotOwner)

	stats, err := f.activity.GetVehicleStats(ctx, owner.User.ID, vehicle.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.TotalSearches)
	require.Nil(t, stats.LastSearchedAt)
}

func TestOwnerActivitySpansRemovedVehicles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	first := f.registerVehicle(t, owner, "MH12AB1234")
	f.registerVehicle(t, owner, "DL1CAB1234")

	for _, raw := range []string{"MH12AB1234", "DL1CAB1234", "MH12AB1234"} {
		_, err := f.search.Search(ctx, nil, raw)
		require.NoError(t, err)
	}

	require.NoError(t, f.registry.RemoveVehicle(ctx, owner.User.ID, first.ID))

	feed, err := f.activity.GetOwnerActivity(ctx, owner.User.ID, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, feed.TotalSearches, "removed vehicles still count")
	require.Len(t, feed.RecentEvents, 2, "feed honors the limit")
}
