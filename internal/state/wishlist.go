package state

import (
	"slices"
	"sync"

	"stuma/internal/domain"
)

// WishlistManager owns an ordered, duplicate-free collection of items.
// Presence is binary; duplicates are decided by item identity, not by
// struct equality, so two snapshots of the same listing count once.
type WishlistManager struct {
	mu    sync.Mutex
	items []domain.Item
	list  *Observable[[]domain.Item]
}

func NewWishlistManager() *WishlistManager {
	return &WishlistManager{list: newObservable[[]domain.Item](nil)}
}

// Wishlist is the observable snapshot, in insertion order.
func (m *WishlistManager) Wishlist() *Observable[[]domain.Item] { return m.list }

// Add appends item unless one with the same identifier is present.
func (m *WishlistManager) Add(item domain.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexLocked(item) >= 0 {
		return
	}
	m.items = append(m.items, item)
	m.list.publish(slices.Clone(m.items))
}

// Remove deletes the entry matching item's identifier, if any.
func (m *WishlistManager) Remove(item domain.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(item)
	if i < 0 {
		return
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	m.list.publish(slices.Clone(m.items))
}

// Contains reports presence by identifier.
func (m *WishlistManager) Contains(item domain.Item) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexLocked(item) >= 0
}

// Items returns the current snapshot in insertion order.
func (m *WishlistManager) Items() []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items)
}

func (m *WishlistManager) indexLocked(item domain.Item) int {
	for i, it := range m.items {
		if domain.SameItem(it, item) {
			return i
		}
	}
	return -1
}
