package cart

import (
	"sync"
	"time"
)

// Manager hands out per-session cart stores. Each browsing session owns an
// independent store instance keyed by its cart id; the manager rehydrates a
// store from the persister the first time a session's id is seen.
//
// Stores for idle sessions are dropped by EvictIdle. Because every mutation
// is snapshotted through the persister, an evicted cart rehydrates with its
// full contents the next time the session comes back.
type Manager struct {
	mu        sync.Mutex
	policy    Policy
	persister Persister
	entries   map[string]*managerEntry
}

type managerEntry struct {
	store    *Store
	lastSeen time.Time
}

// NewManager creates a cart manager using the given pricing policy and
// snapshot storage.
func NewManager(policy Policy, persister Persister) *Manager {
	return &Manager{
		policy:    policy,
		persister: persister,
		entries:   make(map[string]*managerEntry),
	}
}

// Get returns the store for the given cart id, creating and rehydrating it
// on first use, and marks the session as recently seen.
func (m *Manager) Get(cartID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[cartID]; ok {
		entry.lastSeen = time.Now()
		return entry.store
	}

	store := NewStore(cartID, m.policy, m.persister)
	m.entries[cartID] = &managerEntry{store: store, lastSeen: time.Now()}
	return store
}

// EvictIdle drops stores that have not been requested for longer than
// maxIdle and returns how many were removed. Their snapshots stay in the
// persister, so returning sessions lose nothing.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for cartID, entry := range m.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(m.entries, cartID)
			evicted++
		}
	}
	return evicted
}

// Policy returns the pricing policy carts are created with.
func (m *Manager) Policy() Policy {
	return m.policy
}
