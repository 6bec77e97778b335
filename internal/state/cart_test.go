package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"stuma/internal/domain"
	"stuma/internal/state"
)

func TestCartAddIsBoundedByStock(t *testing.T) {
	m := state.NewCartManager()

	m.Add(desk) // stock 2
	m.Add(desk)
	require.Equal(t, 2, m.Quantity(desk))

	m.Add(desk) // at capacity, no-op
	require.Equal(t, 2, m.Quantity(desk))
}

func TestCartRemoveDeletesEntryAtZero(t *testing.T) {
	m := state.NewCartManager()
	m.Add(desk)
	m.Add(desk)

	m.Remove(desk)
	require.Equal(t, 1, m.Quantity(desk))
	require.True(t, m.Contains(desk))

	m.Remove(desk)
	require.Zero(t, m.Quantity(desk))
	require.False(t, m.Contains(desk), "zero-quantity entries must be absent, not retained at 0")

	m.Remove(desk) // absent, no-op
	require.Zero(t, m.Quantity(desk))
}

func TestCartKeysByIdentityNotSnapshot(t *testing.T) {
	m := state.NewCartManager()
	m.Add(desk)

	// a refetched snapshot of the same listing, structurally different
	restocked := desk
	restocked.Stock = 5
	restocked.Name = "Desk (oak)"
	m.Add(restocked)

	require.Equal(t, 2, m.Quantity(desk))
	entries := m.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, 2, entries[0].Qty)
}

func TestCartOutOfStockItemNeverEnters(t *testing.T) {
	m := state.NewCartManager()
	gone := domain.Item{ID: 9, Name: "Sold out", Stock: 0}
	m.Add(gone)
	require.False(t, m.Contains(gone))
}

func TestCartClear(t *testing.T) {
	m := state.NewCartManager()
	m.Add(desk)
	m.Add(chair)
	m.Clear()
	require.Empty(t, m.Entries())
	require.Zero(t, m.Quantity(desk))
}

func TestCartSubtotalAndOrder(t *testing.T) {
	m := state.NewCartManager()
	m.Add(chair)
	m.Add(desk)
	m.Add(chair)

	entries := m.Entries()
	require.Equal(t, chair.ID, entries[0].Item.ID, "insertion order preserved")
	require.Equal(t, desk.ID, entries[1].Item.ID)
	require.Equal(t, 2*chair.Price+desk.Price, m.Subtotal())
}

func TestCartObserverSeesEachMutation(t *testing.T) {
	m := state.NewCartManager()
	var snapshots [][]state.CartEntry
	cancel := m.Cart().Subscribe(func(v []state.CartEntry) { snapshots = append(snapshots, v) })
	defer cancel()

	m.Add(desk)
	m.Remove(desk)
	require.Len(t, snapshots, 2)
	require.Equal(t, 1, snapshots[0][0].Qty)
	require.Empty(t, snapshots[1])
}

// Invariant: for every entry, 0 < qty <= stock, under any op sequence.
func TestCartInvariantHoldsUnderRandomOps(t *testing.T) {
	items := []domain.Item{
		{ID: 1, Name: "a", Stock: 1, Price: 10},
		{ID: 2, Name: "b", Stock: 3, Price: 20},
		{ID: 3, Name: "c", Stock: 0, Price: 30},
	}
	rapid.Check(t, func(t *rapid.T) {
		m := state.NewCartManager()
		ops := rapid.IntRange(0, 200).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			it := items[rapid.IntRange(0, len(items)-1).Draw(t, "item")]
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				m.Add(it)
			case 1:
				m.Remove(it)
			case 2:
				if rapid.Bool().Draw(t, "clear") {
					m.Clear()
				}
			}
			for _, e := range m.Entries() {
				if e.Qty <= 0 || e.Qty > e.Item.Stock {
					t.Fatalf("invariant broken: qty %d, stock %d", e.Qty, e.Item.Stock)
				}
			}
		}
	})
}
