// Package memory is the in-process implementation of the repository
// interfaces. It backs tests and local development; the mongodb package is
// the production twin. Per-entity keyed mutexes serialize read-modify-write
// sequences the same way document-level transactions do in Mongo: operations
// on the same key never interleave, operations on different keys do not
// block each other.
package memory

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/models"
	"platelink/internal/repositories/interfaces"
)

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Store owns all in-memory state. The coarse mu guards map structure;
// the keyed locks serialize multi-step operations per plate, per user and
// per referee.
type Store struct {
	mu    sync.RWMutex
	locks *keyedMutex

	users        map[primitive.ObjectID]*models.User
	vehicles     map[primitive.ObjectID]*models.Vehicle
	plateIndex   map[string]primitive.ObjectID
	accounts     map[primitive.ObjectID]*models.LedgerAccount
	codeIndex    map[string]primitive.ObjectID
	entries      []*models.LedgerEntry
	entriesByKey map[string]*models.LedgerEntry
	applications map[primitive.ObjectID]*models.ReferralApplication
	stats        map[primitive.ObjectID]*models.VehicleStats
	events       []*models.SearchEvent
}

func NewStore() *Store {
	return &Store{
		locks:        newKeyedMutex(),
		users:        make(map[primitive.ObjectID]*models.User),
		vehicles:     make(map[primitive.ObjectID]*models.Vehicle),
		plateIndex:   make(map[string]primitive.ObjectID),
		accounts:     make(map[primitive.ObjectID]*models.LedgerAccount),
		codeIndex:    make(map[string]primitive.ObjectID),
		entriesByKey: make(map[string]*models.LedgerEntry),
		applications: make(map[primitive.ObjectID]*models.ReferralApplication),
		stats:        make(map[primitive.ObjectID]*models.VehicleStats),
	}
}

func (s *Store) Users() interfaces.UserRepository {
	return &userRepository{s: s}
}

func (s *Store) Vehicles() interfaces.VehicleRepository {
	return &vehicleRepository{s: s}
}

func (s *Store) Ledger() interfaces.LedgerRepository {
	return &ledgerRepository{s: s}
}

func (s *Store) Referrals() interfaces.ReferralRepository {
	return &referralRepository{s: s}
}

func (s *Store) Activity() interfaces.ActivityRepository {
	return &activityRepository{s: s}
}
