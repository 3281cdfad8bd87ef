package cart

import (
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// Observer is notified with a fresh snapshot after every committed mutation.
type Observer func(Snapshot)

// Store owns a single customer's prospective order: the line items, the
// active coupon and the derived totals. Every mutation recomputes the totals
// before it returns, so reads never observe stale money fields. The store is
// an explicit instance handed out by the Manager, not a process-wide global;
// UI layers subscribe via Subscribe rather than relying on ambient state.
type Store struct {
	mu        sync.RWMutex
	id        string
	policy    Policy
	persister Persister
	items     []LineItem
	coupon    *Coupon
	totals    Totals
	observers []Observer
}

// NewStore creates a cart store for the given cart id. If a persister is
// provided, a previously saved snapshot is rehydrated; an absent or
// unreadable snapshot yields an empty cart.
func NewStore(id string, policy Policy, persister Persister) *Store {
	s := &Store{
		id:        id,
		policy:    policy,
		persister: persister,
	}
	s.rehydrate()
	return s
}

// ID returns the cart's storage identifier.
func (s *Store) ID() string {
	return s.id
}

// Subscribe registers an observer that receives a snapshot after every
// mutation.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// AddItem appends a line item to the cart, or merges it into an existing row
// sharing the same (id, color, size) identity. Returns ErrInvalidLineItem
// for a missing id, a quantity below 1 or a negative unit price; the cart is
// left unchanged in that case.
func (s *Store) AddItem(item LineItem) error {
	if item.ID == "" || item.Quantity < 1 || item.UnitPrice.IsNegative() {
		return ErrInvalidLineItem
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].Key() == item.Key() {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, obs)
	return nil
}

// RemoveItem removes every line item whose product id matches. All variant
// rows sharing the id are affected. Returns false, without touching the
// cart, if no row matched.
func (s *Store) RemoveItem(id string) bool {
	s.mu.Lock()
	var kept []LineItem
	removed := false
	for _, item := range s.items {
		if item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		s.mu.Unlock()
		return false
	}
	s.items = kept
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, obs)
	return true
}

// UpdateItemQuantity sets the quantity of the line item(s) matching the
// product id. A quantity of zero or below removes the item entirely; a
// non-positive quantity is never stored. Returns false if no row matched.
func (s *Store) UpdateItemQuantity(id string, quantity int) bool {
	if quantity <= 0 {
		return s.RemoveItem(id)
	}

	s.mu.Lock()
	updated := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			updated = true
		}
	}
	if !updated {
		s.mu.Unlock()
		return false
	}
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, obs)
	return true
}

// Clear empties the cart: no items, no coupon, all derived fields zero.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.coupon = nil
	s.totals = Totals{
		Subtotal:       decimal.Zero,
		Shipping:       decimal.Zero,
		Tax:            decimal.Zero,
		DiscountAmount: decimal.Zero,
		Total:          decimal.Zero,
	}
	snap := s.snapshotLocked()
	obs := s.observerListLocked()
	s.mu.Unlock()

	s.publish(snap, obs)
}

// ApplyCoupon sets the single active coupon, replacing any previous one.
// Coupons never stack. The discount is an already-resolved absolute amount;
// an oversized discount is clamped during totals derivation, never stored
// as a negative subtotal.
func (s *Store) ApplyCoupon(code string, discountAmount decimal.Decimal) error {
	if code == "" || discountAmount.IsNegative() {
		return ErrInvalidCoupon
	}

	s.mu.Lock()
	s.coupon = &Coupon{Code: code, DiscountAmount: discountAmount}
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, obs)
	return nil
}

// RemoveCoupon clears the active coupon and its discount.
func (s *Store) RemoveCoupon() {
	s.mu.Lock()
	s.coupon = nil
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, obs)
}

// Snapshot returns a read-only copy of the cart state for display.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// commitLocked recomputes the derived totals and captures the snapshot and
// observer list. Callers must hold the write lock.
func (s *Store) commitLocked() (Snapshot, []Observer) {
	s.totals = CalculateTotals(s.items, s.coupon, s.policy)
	return s.snapshotLocked(), s.observerListLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)

	snap := Snapshot{
		Items:  items,
		Totals: s.totals,
	}
	if s.coupon != nil {
		snap.CouponCode = s.coupon.Code
	}
	return snap
}

func (s *Store) observerListLocked() []Observer {
	obs := make([]Observer, len(s.observers))
	copy(obs, s.observers)
	return obs
}

// publish persists the snapshot and notifies observers, outside the lock.
// Persistence is fire-and-forget: on failure the in-memory cart remains the
// source of truth for the session and only a fresh reload is affected.
func (s *Store) publish(snap Snapshot, observers []Observer) {
	if s.persister != nil {
		if err := s.persister.Save(s.id, snap); err != nil {
			log.Printf("Failed to persist cart %s: %v", s.id, err)
		}
	}
	for _, fn := range observers {
		fn(snap)
	}
}

// rehydrate restores a previously persisted snapshot. Derived totals are
// recomputed from the restored items and coupon rather than trusted from
// storage.
func (s *Store) rehydrate() {
	if s.persister == nil {
		return
	}
	snap, ok, err := s.persister.Load(s.id)
	if err != nil {
		log.Printf("Failed to load cart snapshot %s, starting empty: %v", s.id, err)
		return
	}
	if !ok {
		return
	}

	s.items = snap.Items
	if snap.CouponCode != "" {
		s.coupon = &Coupon{Code: snap.CouponCode, DiscountAmount: snap.DiscountAmount}
	}
	s.totals = CalculateTotals(s.items, s.coupon, s.policy)
}
