package repositories

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"pclstore/internal/cart"
)

// MockCartRepository is an in-memory implementation of cart.Persister. It
// stores marshaled JSON payloads so tests exercise the same serialization
// round-trip as the GORM implementation.
type MockCartRepository struct {
	snapshots map[string][]byte
	mu        sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		snapshots: make(map[string][]byte),
	}
}

// Save writes the cart snapshot, replacing any previous record.
func (r *MockCartRepository) Save(cartID string, snap cart.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot for %s: %w", cartID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[storageKey(cartID)] = payload
	return nil
}

// Load reads the cart snapshot. Absent and malformed records both yield an
// empty cart.
func (r *MockCartRepository) Load(cartID string) (cart.Snapshot, bool, error) {
	r.mu.RLock()
	payload, ok := r.snapshots[storageKey(cartID)]
	r.mu.RUnlock()
	if !ok {
		return cart.Snapshot{}, false, nil
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		log.Printf("Malformed cart snapshot for %s, treating as empty: %v", cartID, err)
		return cart.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Delete removes the persisted record for the given cart id.
func (r *MockCartRepository) Delete(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.snapshots, storageKey(cartID))
	return nil
}

// Corrupt overwrites a cart's payload with non-JSON bytes. Test helper.
func (r *MockCartRepository) Corrupt(cartID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[storageKey(cartID)] = []byte("{not json")
}
