package services

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"platelink/internal/config"
	"platelink/internal/models"
	"platelink/internal/repositories/memory"
	"platelink/pkg/logger"
)

type fixture struct {
	store    *memory.Store
	rewards  *config.RewardsConfig
	accounts AccountService
	registry RegistryService
	ledger   LedgerService
	referral ReferralService
	search   SearchService
	activity ActivityService

	phoneSeq int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	require.NoError(t, err)
	log.SetOutput(io.Discard)

	audit, err := logger.NewAuditLogger(&logger.Config{Level: logger.InfoLevel, Output: "/dev/null"})
	require.NoError(t, err)

	security := &config.SecurityConfig{JWTSecret: "test-secret"}
	rewards := &config.RewardsConfig{SignupBonus: 3, ReferralReward: 5, RevealCost: 1}

	store := memory.NewStore()

	return &fixture{
		store:    store,
		rewards:  rewards,
		accounts: NewAccountService(store.Users(), store.Ledger(), security, rewards, log),
		registry: NewRegistryService(store.Vehicles(), store.Users(), store.Activity(), log),
		ledger:   NewLedgerService(store.Ledger(), log),
		referral: NewReferralService(store.Referrals(), store.Ledger(), rewards, log),
		search:   NewSearchService(store.Vehicles(), store.Users(), store.Ledger(), store.Activity(), rewards, log, audit),
		activity: NewActivityService(store.Activity(), store.Vehicles()),
	}
}

func (f *fixture) createOwner(t *testing.T, firstName, lastName string, methods models.ContactMethods) *OwnerProfile {
	t.Helper()

	f.phoneSeq++
	profile, _, err := f.accounts.CreateOwner(context.Background(), &CreateOwnerInput{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          fmt.Sprintf("+9198765%05d", f.phoneSeq),
		ContactMethods: methods,
	})
	require.NoError(t, err)

	return profile
}

func (f *fixture) registerVehicle(t *testing.T, profile *OwnerProfile, rawPlate string) *models.Vehicle {
	t.Helper()

	vehicle, err := f.registry.RegisterVehicle(context.Background(), profile.User.ID, rawPlate, models.WheelCategoryFourWheeler)
	require.NoError(t, err)

	return vehicle
}

func allContactMethods() models.ContactMethods {
	return models.ContactMethods{Phone: true, SMS: true, WhatsApp: true}
}
