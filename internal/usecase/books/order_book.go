package books

import (
	"sync"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
)

// OrderBook is the per-instrument registry of orders resting in the paper
// venue. There is no price-level ordering; crossing is driven by ticks, not
// by book depth.
type OrderBook struct {
	mu     sync.RWMutex
	orders map[string]map[string]*marketv1.Order // symbol -> orderID -> order
}

// NewOrderBook creates an empty order book.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		orders: make(map[string]map[string]*marketv1.Order),
	}
}

// Add places an order in the book.
func (b *OrderBook) Add(order *marketv1.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	active, ok := b.orders[order.Symbol]
	if !ok {
		active = make(map[string]*marketv1.Order)
		b.orders[order.Symbol] = active
	}
	active[order.ID] = order
}

// Remove takes an order out of the book. It reports whether the order was
// resting, so a cancel for an already-filled or never-admitted id is a no-op
// for the caller.
func (b *OrderBook) Remove(symbol, orderID string) (*marketv1.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	active, ok := b.orders[symbol]
	if !ok {
		return nil, false
	}

	order, ok := active[orderID]
	if !ok {
		return nil, false
	}

	delete(active, orderID)
	return order, true
}

// Active returns a snapshot slice of the orders resting for the instrument.
// The caller may remove orders from the book while iterating the snapshot
// without skipping or double-visiting any order.
func (b *OrderBook) Active(symbol string) []*marketv1.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	active, ok := b.orders[symbol]
	if !ok {
		return nil
	}

	snapshot := make([]*marketv1.Order, 0, len(active))
	for _, order := range active {
		snapshot = append(snapshot, order)
	}
	return snapshot
}
