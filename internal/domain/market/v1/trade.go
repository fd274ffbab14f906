package marketv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Trade represents a simulated fill. A trade is an immutable fact once
// created and feeds the position ledger exactly once.
type Trade struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderID"`
	Symbol    string    `json:"symbol"`
	Direction Direction `json:"direction"`
	Offset    Offset    `json:"offset"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTrade creates a trade with a fresh id.
func NewTrade(orderID, symbol string, direction Direction, offset Offset, price, volume float64) *Trade {
	return &Trade{
		ID:        ulid.Make().String(),
		OrderID:   orderID,
		Symbol:    symbol,
		Direction: direction,
		Offset:    offset,
		Price:     price,
		Volume:    volume,
		Timestamp: time.Now(),
	}
}
