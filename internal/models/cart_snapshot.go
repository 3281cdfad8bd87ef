package models

import "time"

// CartSnapshotRecord is the durable client-cart snapshot: one JSON payload
// per cart, keyed by a fixed storage identifier. The payload is the
// serialized cart (line items, coupon, derived totals); derived totals are
// recomputed on rehydration rather than trusted from storage.
type CartSnapshotRecord struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(128)"`
	Payload   string    `json:"payload" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the snapshot table name stable regardless of pluralization.
func (CartSnapshotRecord) TableName() string {
	return "cart_snapshots"
}
