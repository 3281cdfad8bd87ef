package repositories

import (
	"encoding/json"
	"fmt"
	"log"

	"pclstore/internal/cart"
	"pclstore/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartStorageKey is the fixed storage identifier family for persisted cart
// snapshots. Each cart's record id is this key suffixed with the cart id.
const CartStorageKey = "pcl-cart-storage"

// GORMCartRepository is a GORM implementation of cart.Persister. Each cart
// is stored as a single JSON record.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Save writes the cart snapshot, replacing any previous record.
func (r *GORMCartRepository) Save(cartID string, snap cart.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot for %s: %w", cartID, err)
	}

	record := models.CartSnapshotRecord{
		ID:      storageKey(cartID),
		Payload: string(payload),
	}
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to save cart snapshot for %s: %w", cartID, err)
	}
	return nil
}

// Load reads the cart snapshot. An absent record means "empty cart", not an
// error; a malformed payload is treated the same way so a bad snapshot can
// never wedge a session.
func (r *GORMCartRepository) Load(cartID string) (cart.Snapshot, bool, error) {
	var record models.CartSnapshotRecord
	if err := r.db.First(&record, "id = ?", storageKey(cartID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return cart.Snapshot{}, false, nil
		}
		return cart.Snapshot{}, false, fmt.Errorf("failed to load cart snapshot for %s: %w", cartID, err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal([]byte(record.Payload), &snap); err != nil {
		log.Printf("Malformed cart snapshot for %s, treating as empty: %v", cartID, err)
		return cart.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Delete removes the persisted record for the given cart id.
func (r *GORMCartRepository) Delete(cartID string) error {
	if err := r.db.Delete(&models.CartSnapshotRecord{}, "id = ?", storageKey(cartID)).Error; err != nil {
		return fmt.Errorf("failed to delete cart snapshot for %s: %w", cartID, err)
	}
	return nil
}

func storageKey(cartID string) string {
	return fmt.Sprintf("%s:%s", CartStorageKey, cartID)
}
