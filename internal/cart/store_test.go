package cart_test

import (
	"testing"
	"time"

	"pclstore/internal/cart"
	"pclstore/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestStore() *cart.Store {
	return cart.NewStore("cart-test", cart.DefaultPolicy(), nil)
}

func TestStore_AddItem_MergesSameIdentity(t *testing.T) {
	store := newTestStore()

	first := item("var-1", "25.00", 1)
	second := item("var-1", "25.00", 2)

	assert.NoError(t, store.AddItem(first))
	assert.NoError(t, store.AddItem(second))

	snap := store.Snapshot()
	assert.Len(t, snap.Items, 1, "same (id, color, size) must merge, never duplicate")
	assert.Equal(t, 3, snap.Items[0].Quantity)
	assert.True(t, dec("75.00").Equal(snap.Subtotal))
}

func TestStore_AddItem_DifferentVariantsStaySeparate(t *testing.T) {
	store := newTestStore()

	green := item("var-1", "25.00", 1)
	blue := item("var-1", "25.00", 1)
	blue.Color = "blu"

	assert.NoError(t, store.AddItem(green))
	assert.NoError(t, store.AddItem(blue))

	assert.Len(t, store.Snapshot().Items, 2)
}

func TestStore_AddItem_RejectsInvalidInput(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "25.00", 1)))
	before := store.Snapshot()

	missingID := item("", "25.00", 1)
	assert.ErrorIs(t, store.AddItem(missingID), cart.ErrInvalidLineItem)

	zeroQuantity := item("var-2", "25.00", 0)
	assert.ErrorIs(t, store.AddItem(zeroQuantity), cart.ErrInvalidLineItem)

	negativePrice := item("var-2", "-1.00", 1)
	assert.ErrorIs(t, store.AddItem(negativePrice), cart.ErrInvalidLineItem)

	// A rejected add leaves the cart unchanged.
	assert.Equal(t, before, store.Snapshot())
}

func TestStore_UpdateItemQuantity(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "25.00", 1)))

	assert.True(t, store.UpdateItemQuantity("var-1", 4))
	snap := store.Snapshot()
	assert.Equal(t, 4, snap.Items[0].Quantity)
	assert.True(t, dec("100.00").Equal(snap.Subtotal))

	// Unknown ids are a soft no-op.
	assert.False(t, store.UpdateItemQuantity("var-99", 2))
	assert.Equal(t, snap, store.Snapshot())
}

func TestStore_UpdateItemQuantity_NonPositiveRemoves(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		store := newTestStore()
		assert.NoError(t, store.AddItem(item("var-1", "25.00", 3)))

		assert.True(t, store.UpdateItemQuantity("var-1", quantity))
		assert.Empty(t, store.Snapshot().Items, "quantity %d must remove the line item", quantity)
	}
}

func TestStore_RemoveItem_AllVariantsWithID(t *testing.T) {
	store := newTestStore()

	green := item("var-1", "25.00", 1)
	blue := item("var-1", "25.00", 2)
	blue.Color = "blu"
	other := item("var-2", "32.00", 1)

	assert.NoError(t, store.AddItem(green))
	assert.NoError(t, store.AddItem(blue))
	assert.NoError(t, store.AddItem(other))

	// Removal matches by product id alone: both color rows go.
	assert.True(t, store.RemoveItem("var-1"))

	snap := store.Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, "var-2", snap.Items[0].ID)
}

func TestStore_RemoveItem_AbsentIDIsNoOp(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "25.00", 1)))
	before := store.Snapshot()

	assert.False(t, store.RemoveItem("var-99"))
	assert.Equal(t, before, store.Snapshot())
}

func TestStore_ApplyCoupon_ReplacesPrevious(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "50.00", 2)))

	assert.NoError(t, store.ApplyCoupon("SCONTO10", dec("10.00")))
	assert.NoError(t, store.ApplyCoupon("ESTATE20", dec("20.00")))

	snap := store.Snapshot()
	assert.Equal(t, "ESTATE20", snap.CouponCode, "the second coupon replaces the first")
	assert.True(t, dec("20.00").Equal(snap.DiscountAmount), "discounts never stack; got %s", snap.DiscountAmount)
	// 100 - 20 = 80 discounted, tax 17.60, free shipping, total 97.60.
	assert.True(t, dec("97.60").Equal(snap.Total), "total = %s", snap.Total)
}

func TestStore_ApplyCoupon_RejectsInvalid(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "50.00", 1)))

	assert.ErrorIs(t, store.ApplyCoupon("", dec("5.00")), cart.ErrInvalidCoupon)
	assert.ErrorIs(t, store.ApplyCoupon("NEG", dec("-5.00")), cart.ErrInvalidCoupon)
	assert.Empty(t, store.Snapshot().CouponCode)
}

func TestStore_RemoveCoupon(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "50.00", 2)))
	assert.NoError(t, store.ApplyCoupon("SCONTO10", dec("10.00")))

	store.RemoveCoupon()

	snap := store.Snapshot()
	assert.Empty(t, snap.CouponCode)
	assert.True(t, decimal.Zero.Equal(snap.DiscountAmount))
	assert.True(t, dec("122.00").Equal(snap.Total), "total = %s", snap.Total) // 100 + 22 tax
}

func TestStore_Clear_ResetsEverything(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "50.00", 2)))
	assert.NoError(t, store.ApplyCoupon("SCONTO10", dec("10.00")))

	store.Clear()

	snap := store.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.CouponCode)
	assert.True(t, decimal.Zero.Equal(snap.Subtotal))
	assert.True(t, decimal.Zero.Equal(snap.Shipping))
	assert.True(t, decimal.Zero.Equal(snap.Tax))
	assert.True(t, decimal.Zero.Equal(snap.DiscountAmount))
	assert.True(t, decimal.Zero.Equal(snap.Total))
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "25.00", 1)))

	snap := store.Snapshot()
	snap.Items[0].Quantity = 99

	assert.Equal(t, 1, store.Snapshot().Items[0].Quantity)
}

func TestStore_SnapshotIdempotentWithoutMutation(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.AddItem(item("var-1", "33.33", 3)))
	assert.NoError(t, store.ApplyCoupon("SCONTO10", dec("5.00")))

	assert.Equal(t, store.Snapshot(), store.Snapshot())
}

func TestStore_ObserversSeeEveryMutation(t *testing.T) {
	store := newTestStore()

	var seen []cart.Snapshot
	store.Subscribe(func(snap cart.Snapshot) {
		seen = append(seen, snap)
	})

	assert.NoError(t, store.AddItem(item("var-1", "25.00", 1)))
	assert.True(t, store.UpdateItemQuantity("var-1", 2))
	store.Clear()

	assert.Len(t, seen, 3)
	assert.True(t, dec("25.00").Equal(seen[0].Subtotal))
	assert.True(t, dec("50.00").Equal(seen[1].Subtotal))
	assert.Empty(t, seen[2].Items)
}

// memoryPersister is an in-memory cart.Persister for store tests.
type memoryPersister struct {
	saved    map[string]cart.Snapshot
	failNext bool
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{saved: make(map[string]cart.Snapshot)}
}

func (p *memoryPersister) Save(cartID string, snap cart.Snapshot) error {
	if p.failNext {
		p.failNext = false
		return assert.AnError
	}
	p.saved[cartID] = snap
	return nil
}

func (p *memoryPersister) Load(cartID string) (cart.Snapshot, bool, error) {
	snap, ok := p.saved[cartID]
	return snap, ok, nil
}

func (p *memoryPersister) Delete(cartID string) error {
	delete(p.saved, cartID)
	return nil
}

func TestStore_RehydratesFromPersistedSnapshot(t *testing.T) {
	persister := newMemoryPersister()

	original := cart.NewStore("cart-1", cart.DefaultPolicy(), persister)
	assert.NoError(t, original.AddItem(item("var-1", "25.00", 2)))
	assert.NoError(t, original.ApplyCoupon("SCONTO10", dec("5.00")))

	reloaded := cart.NewStore("cart-1", cart.DefaultPolicy(), persister)
	snap := reloaded.Snapshot()

	assert.Equal(t, original.Snapshot().Items, snap.Items)
	assert.Equal(t, "SCONTO10", snap.CouponCode)

	// Rehydrated totals must match a fresh derivation, not whatever was
	// stored.
	fresh := cart.CalculateTotals(snap.Items, &cart.Coupon{Code: "SCONTO10", DiscountAmount: dec("5.00")}, cart.DefaultPolicy())
	assert.Equal(t, fresh, snap.Totals)
}

func TestStore_MissingSnapshotStartsEmpty(t *testing.T) {
	store := cart.NewStore("never-seen", cart.DefaultPolicy(), newMemoryPersister())
	assert.Empty(t, store.Snapshot().Items)
}

func TestStore_PersistenceFailureKeepsInMemoryState(t *testing.T) {
	persister := newMemoryPersister()
	store := cart.NewStore("cart-1", cart.DefaultPolicy(), persister)

	persister.failNext = true
	assert.NoError(t, store.AddItem(item("var-1", "25.00", 1)), "a failed save must not fail the mutation")
	assert.Len(t, store.Snapshot().Items, 1)
}

func TestStore_JSONRoundTripThroughPersister(t *testing.T) {
	repo := repositories.NewMockCartRepository()

	original := cart.NewStore("cart-1", cart.DefaultPolicy(), repo)
	blue := item("var-1", "25.00", 2)
	blue.Color = "blu"
	blue.Size = "grande"
	assert.NoError(t, original.AddItem(item("var-1", "25.00", 1)))
	assert.NoError(t, original.AddItem(blue))
	assert.NoError(t, original.ApplyCoupon("SCONTO10", dec("7.50")))

	// The mock stores marshaled JSON, so this exercises the same
	// serialization round-trip as the database-backed persister.
	reloaded := cart.NewStore("cart-1", cart.DefaultPolicy(), repo)
	snap := reloaded.Snapshot()
	want := original.Snapshot()

	assert.Len(t, snap.Items, 2)
	assert.Equal(t, "grande", snap.Items[1].Size)
	assert.Equal(t, want.Items[1].Quantity, snap.Items[1].Quantity)
	assert.True(t, want.Items[0].UnitPrice.Equal(snap.Items[0].UnitPrice))
	assert.Equal(t, "SCONTO10", snap.CouponCode)
	assert.True(t, want.Subtotal.Equal(snap.Subtotal))
	assert.True(t, want.DiscountAmount.Equal(snap.DiscountAmount))
	assert.True(t, want.Tax.Equal(snap.Tax))
	assert.True(t, want.Total.Equal(snap.Total))
}

func TestStore_CorruptSnapshotStartsEmpty(t *testing.T) {
	repo := repositories.NewMockCartRepository()

	original := cart.NewStore("cart-1", cart.DefaultPolicy(), repo)
	assert.NoError(t, original.AddItem(item("var-1", "25.00", 1)))

	repo.Corrupt("cart-1")

	reloaded := cart.NewStore("cart-1", cart.DefaultPolicy(), repo)
	snap := reloaded.Snapshot()
	assert.Empty(t, snap.Items)
	assert.True(t, decimal.Zero.Equal(snap.Subtotal))
}

func TestManager_ReturnsSameStorePerCartID(t *testing.T) {
	manager := cart.NewManager(cart.DefaultPolicy(), newMemoryPersister())

	a := manager.Get("cart-a")
	b := manager.Get("cart-b")

	assert.Same(t, a, manager.Get("cart-a"))
	assert.NotSame(t, a, b)

	// Each session's cart is independent.
	assert.NoError(t, a.AddItem(item("var-1", "25.00", 1)))
	assert.Empty(t, b.Snapshot().Items)
}

func TestManager_EvictIdle(t *testing.T) {
	persister := newMemoryPersister()
	manager := cart.NewManager(cart.DefaultPolicy(), persister)

	store := manager.Get("cart-idle")
	assert.NoError(t, store.AddItem(item("var-1", "25.00", 2)))

	// Nothing has been idle for an hour yet.
	assert.Equal(t, 0, manager.EvictIdle(time.Hour))
	assert.Same(t, store, manager.Get("cart-idle"))

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, manager.EvictIdle(time.Millisecond))

	// The next request for the same session gets a fresh store rehydrated
	// from the persisted snapshot, so the cart contents survive eviction.
	revived := manager.Get("cart-idle")
	assert.NotSame(t, store, revived)
	snap := revived.Snapshot()
	if assert.Len(t, snap.Items, 1) {
		assert.Equal(t, 2, snap.Items[0].Quantity)
		assert.True(t, snap.Subtotal.Equal(dec("50.00")))
	}
}

func TestManager_GetRefreshesIdleClock(t *testing.T) {
	manager := cart.NewManager(cart.DefaultPolicy(), newMemoryPersister())

	store := manager.Get("cart-active")
	time.Sleep(200 * time.Millisecond)

	// Without this Get the entry would be 200ms idle and past the cutoff;
	// a recent request keeps the session alive.
	assert.Same(t, store, manager.Get("cart-active"))
	assert.Equal(t, 0, manager.EvictIdle(150*time.Millisecond))
}
