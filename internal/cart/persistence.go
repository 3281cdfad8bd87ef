package cart

// Persister is the durable snapshot storage for carts. Implementations live
// in the repositories package; the store treats persistence as a best-effort
// side effect and never fails a mutation over it.
type Persister interface {
	// Save writes the snapshot for the given cart id, replacing any previous
	// record.
	Save(cartID string, snap Snapshot) error
	// Load reads the snapshot for the given cart id. An absent record is
	// reported as ok=false with a nil error, never as a failure.
	Load(cartID string) (snap Snapshot, ok bool, err error)
	// Delete removes the persisted record for the given cart id.
	Delete(cartID string) error
}
