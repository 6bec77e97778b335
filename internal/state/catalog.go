package state

import (
	"context"
	"slices"
	"strings"
	"sync"

	"stuma/internal/domain"
	"stuma/internal/log"
	"stuma/internal/result"
)

// ItemsFetcher is the slice of the gateway the catalog needs.
type ItemsFetcher interface {
	Items(ctx context.Context) ([]domain.Item, error)
}

// CatalogManager owns the item cache and its derived filtered view.
//
// The filtered view is recomputed from the last successful snapshot
// whenever the snapshot, the selected category, or the search query
// changes. Category filtering and search each rebuild the view from the
// raw snapshot on their own; they intentionally do not compose (the
// home screen only ever has one of the two active).
type CatalogManager struct {
	gw ItemsFetcher

	// seq fences overlapping fetches: a resolution carrying an older
	// sequence number than the latest issued fetch is dropped instead
	// of overwriting fresher data.
	seq uint64

	mu       sync.Mutex // serializes state mutations
	items    *Observable[*result.Result[[]domain.Item]]
	selected *Observable[string]
	query    *Observable[string]
	filtered *Observable[[]domain.Item]
}

func NewCatalogManager(gw ItemsFetcher) *CatalogManager {
	return &CatalogManager{
		gw:       gw,
		items:    newObservable[*result.Result[[]domain.Item]](nil),
		selected: newObservable(domain.CategoryAll),
		query:    newObservable(""),
		filtered: newObservable[[]domain.Item](nil),
	}
}

// ItemsState is the Result-wrapped snapshot; nil until the first Fetch.
func (m *CatalogManager) ItemsState() *Observable[*result.Result[[]domain.Item]] { return m.items }

// SelectedCategory is the active category filter, CategoryAll initially.
func (m *CatalogManager) SelectedCategory() *Observable[string] { return m.selected }

// Query is the active search string, empty initially.
func (m *CatalogManager) Query() *Observable[string] { return m.query }

// Filtered is the derived view. Never mutate the returned slice.
func (m *CatalogManager) Filtered() *Observable[[]domain.Item] { return m.filtered }

// Fetch loads the catalog through the gateway. The Loading state is
// published synchronously, before Fetch returns; resolution happens on
// its own goroutine and closes the returned channel. A fetch issued
// while another is in flight does not wait for it; the newest one wins.
// On success the currently selected category is reapplied, so a refetch
// under an active filter does not flash unfiltered results.
func (m *CatalogManager) Fetch(ctx context.Context) <-chan struct{} {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.items.publish(result.Loading[[]domain.Item]())
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		items, err := m.gw.Items(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()
		if seq != m.seq {
			log.Info("catalog.fetch.stale", map[string]any{"seq": seq, "latest": m.seq})
			return
		}
		if err != nil {
			log.Error("catalog.fetch", err, nil)
			m.items.publish(result.Failure[[]domain.Item](err))
			return
		}
		log.Info("catalog.fetch", map[string]any{"count": len(items)})
		m.items.publish(result.Success(items))
		m.applyCategoryLocked()
	}()
	return done
}

// FilterByCategory sets the active category and rebuilds the filtered
// view from the raw snapshot. CategoryAll keeps every item in order.
func (m *CatalogManager) FilterByCategory(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected.publish(category)
	m.applyCategoryLocked()
}

func (m *CatalogManager) applyCategoryLocked() {
	items, _ := m.items.Get().Value()
	category := m.selected.Get()
	if category == domain.CategoryAll {
		m.filtered.publish(slices.Clone(items))
		return
	}
	out := []domain.Item{}
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	m.filtered.publish(out)
}

// Search rebuilds the filtered view by case-insensitive substring match
// against item name or category. The empty query keeps every item.
func (m *CatalogManager) Search(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query.publish(query)

	items, _ := m.items.Get().Value()
	if query == "" {
		m.filtered.publish(slices.Clone(items))
		return
	}
	q := strings.ToLower(query)
	out := []domain.Item{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.Category), q) {
			out = append(out, it)
		}
	}
	m.filtered.publish(out)
}

// ItemByID looks the item up in the raw snapshot, not the filtered
// view. No side effects.
func (m *CatalogManager) ItemByID(id int) (domain.Item, bool) {
	items, _ := m.items.Get().Value()
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}
