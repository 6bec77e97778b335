package state

import (
	"context"
	"sync"

	"stuma/internal/domain"
	"stuma/internal/result"
)

// SellGateway is the slice of the gateway the sell flow needs.
type SellGateway interface {
	SellItem(ctx context.Context, req domain.SellRequest) error
}

// SellManager tracks the state of listing an item for sale. The created
// listing has no identifier yet, so success carries no payload.
type SellManager struct {
	mu   sync.Mutex
	gw   SellGateway
	sell *Observable[*result.Result[struct{}]]
}

func NewSellManager(gw SellGateway) *SellManager {
	return &SellManager{gw: gw, sell: newObservable[*result.Result[struct{}]](nil)}
}

func (m *SellManager) SellState() *Observable[*result.Result[struct{}]] { return m.sell }

func (m *SellManager) Sell(ctx context.Context, req domain.SellRequest) <-chan struct{} {
	return resolve(&m.mu, m.sell, "sell.item", func() (struct{}, error) {
		return struct{}{}, m.gw.SellItem(ctx, req)
	})
}

// Reset returns the sell state to untriggered after the confirmation
// screen has consumed the outcome.
func (m *SellManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sell.publish(nil)
}
