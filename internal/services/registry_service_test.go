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

func TestRegisterVehicleCanonicalizesPlate(t *testing.T) {
	f := newFixture(t)
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	vehicle, err := f.registry.RegisterVehicle(context.Background(), owner.User.ID, "mh 12-ab 1234", models.WheelCategoryTwoWheeler)
	require.NoError(t, err)
	require.Equal(t, "MH12AB1234", vehicle.Plate)
	require.Equal(t, plate.FormatStandard, vehicle.PlateFormat)
	require.Equal(t, models.WheelCategoryTwoWheeler, vehicle.WheelCategory)
	require.False(t, vehicle.Verified)
}

func TestRegisterVehicleRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	_, err := f.registry.RegisterVehicle(ctx, owner.User.ID, "ZZ99", models.WheelCategoryTwoWheeler)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CategoryValidation, appErr.Category)

	_, err = f.registry.RegisterVehicle(ctx, owner.User.ID, "MH12AB1234", models.WheelCategory("rocket"))
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, "INVALID_WHEEL_CATEGORY", appErr.Code)

	_, err = f.registry.RegisterVehicle(ctx, primitive.NewObjectID(), "MH12AB1234", models.WheelCategoryTwoWheeler)
	require.ErrorIs(t, err, apperrors.ErrOwnerNotFound)
}

func TestRegisterVehicleConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	other := f.createOwner(t, "Ravi", "Kumar", allContactMethods())

	f.registerVehicle(t, owner, "MH12AB1234")

	// Different raw spellings of the same plate collide after
	// canonicalization.
	_, err := f.registry.RegisterVehicle(ctx, owner.User.ID, "mh-12-ab-1234", models.WheelCategoryFourWheeler)
	require.ErrorIs(t, err, apperrors.ErrAlreadyRegisteredBySelf)

	_, err = f.registry.RegisterVehicle(ctx, other.User.ID, "MH12AB1234", models.WheelCategoryFourWheeler)
	require.ErrorIs(t, err, apperrors.ErrAlreadyRegisteredByOther)
}

func TestFindByPlate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	vehicle := f.registerVehicle(t, owner, "26BH1234AA")

	found, err := f.registry.FindByPlate(ctx, "26 bh 1234 aa")
	require.NoError(t, err)
	require.Equal(t, vehicle.ID, found.ID)
	require.Equal(t, plate.FormatBharatSeries, found.PlateFormat)

	_, err = f.registry.FindByPlate(ctx, "MH12AB9999")
	require.ErrorIs(t, err, apperrors.ErrVehicleNotFound)
}

func TestRemoveVehicleOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	stranger := f.createOwner(t, "Ravi", "Kumar", allContactMethods())
	vehicle := f.registerVehicle(t, owner, "MH12AB1234")

	err := f.registry.RemoveVehicle(ctx, stranger.User.ID, vehicle.ID)
	require.ErrorIs(t, err, apperrors.ErrNotOwner)

	require.NoError(t, f.registry.RemoveVehicle(ctx, owner.User.ID, vehicle.ID))
	_, err = f.registry.FindByID(ctx, vehicle.ID)
	require.ErrorIs(t, err, apperrors.ErrVehicleNotFound)

	// The plate is free to register again once removed.
	again, err := f.registry.RegisterVehicle(ctx, stranger.User.ID, "MH12AB1234", models.WheelCategoryFourWheeler)
	require.NoError(t, err)
	require.NotEqual(t, vehicle.ID, again.ID)
}

func TestRemoveVehicleKeepsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())
	searcher := f.createOwner(t, "Ravi", "Kumar", models.ContactMethods{})
	vehicle := f.registerVehicle(t, owner, "MH12AB1234")

	_, err := f.search.Search(ctx, &searcher.User.ID, "MH12AB1234")
	require.NoError(t, err)
	_, err = f.search.Reveal(ctx, searcher.User.ID, vehicle.ID, uuid.New().String())
	require.NoError(t, err)

	require.NoError(t, f.registry.RemoveVehicle(ctx, owner.User.ID, vehicle.ID))

	// Ledger entries and activity events survive the removal.
	balance, err := f.ledger.GetBalance(ctx, searcher.User.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, balance)

	feed, err := f.activity.GetOwnerActivity(ctx, owner.User.ID, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, feed.TotalSearches)
	require.EqualValues(t, 1, feed.TotalContactRequests)
	require.Len(t, feed.RecentEvents, 2)
}

func TestListByOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.createOwner(t, "Asha", "Sharma", allContactMethods())

	f.registerVehicle(t, owner, "MH12AB1234")
	f.registerVehicle(t, owner, "DL1CAB1234")

	vehicles, err := f.registry.ListByOwner(context.Background(), owner.User.ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
}
