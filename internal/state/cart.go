package state

import (
	"sync"

	"stuma/internal/domain"
)

// CartEntry is one line of the cart snapshot published to observers.
type CartEntry struct {
	Item domain.Item
	Qty  int
}

// CartManager owns the quantity-per-item map. Entries are keyed by item
// identity, so a refetched snapshot of a listing maps onto the same
// line. Absence means zero; a quantity never reaches the map as 0.
type CartManager struct {
	mu    sync.Mutex
	qty   map[int]int
	items map[int]domain.Item // snapshot as of the last successful add
	order []int               // insertion order of keys
	cart  *Observable[[]CartEntry]
}

func NewCartManager() *CartManager {
	return &CartManager{
		qty:   map[int]int{},
		items: map[int]domain.Item{},
		cart:  newObservable[[]CartEntry](nil),
	}
}

// Cart is the observable snapshot, in insertion order.
func (m *CartManager) Cart() *Observable[[]CartEntry] { return m.cart }

// Add increments the quantity for item by one, bounded by the item's
// stock. At capacity it is a no-op; the UI disables the control, but
// the bound holds here regardless.
func (m *CartManager) Add(item domain.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := item.Key()
	cur := m.qty[k]
	if cur >= item.Stock {
		return
	}
	if cur == 0 {
		m.order = append(m.order, k)
	}
	m.qty[k] = cur + 1
	m.items[k] = item
	m.cart.publish(m.snapshotLocked())
}

// Remove decrements by one and deletes the entry when it hits zero.
// Absent items are a no-op.
func (m *CartManager) Remove(item domain.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := item.Key()
	cur, ok := m.qty[k]
	if !ok {
		return
	}
	if cur <= 1 {
		m.deleteLocked(k)
	} else {
		m.qty[k] = cur - 1
	}
	m.cart.publish(m.snapshotLocked())
}

// Clear empties the cart unconditionally.
func (m *CartManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qty = map[int]int{}
	m.items = map[int]domain.Item{}
	m.order = nil
	m.cart.publish(nil)
}

// Quantity returns the stored quantity for item, zero when absent.
func (m *CartManager) Quantity(item domain.Item) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.qty[item.Key()]
}

// Contains reports whether item is present with a positive quantity.
func (m *CartManager) Contains(item domain.Item) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.qty[item.Key()]
	return ok
}

// Entries returns the current snapshot in insertion order.
func (m *CartManager) Entries() []CartEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subtotal sums quantity times price over the cart.
func (m *CartManager) Subtotal() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0.0
	for k, q := range m.qty {
		total += float64(q) * m.items[k].Price
	}
	return total
}

func (m *CartManager) deleteLocked(k int) {
	delete(m.qty, k)
	delete(m.items, k)
	for i, key := range m.order {
		if key == k {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *CartManager) snapshotLocked() []CartEntry {
	out := make([]CartEntry, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, CartEntry{Item: m.items[k], Qty: m.qty[k]})
	}
	return out
}
