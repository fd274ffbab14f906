package marketv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Direction represents the side of an order, trade or position.
type Direction string

const (
	// DirectionLong represents a buy order or a long position.
	DirectionLong Direction = "long"
	// DirectionShort represents a sell order or a short position.
	DirectionShort Direction = "short"
	// DirectionNet represents the single signed position of an instrument
	// using net-position accounting.
	DirectionNet Direction = "net"
)

// Opposite returns the opposing trading direction. DirectionNet has no
// opposite and is returned unchanged.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionLong:
		return DirectionShort
	case DirectionShort:
		return DirectionLong
	}
	return d
}

// Offset represents whether an order opens new exposure or closes existing exposure.
type Offset string

const (
	// OffsetOpen opens new exposure.
	OffsetOpen Offset = "open"
	// OffsetClose closes existing exposure.
	OffsetClose Offset = "close"
)

// OrderType represents the type of order.
type OrderType string

const (
	// OrderTypeMarket represents a market order.
	OrderTypeMarket OrderType = "market"
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
	// OrderTypeStop represents a stop order.
	OrderTypeStop OrderType = "stop"
)

// Status represents the lifecycle state of an order or quote.
type Status string

const (
	// StatusSubmitted is the initial state before venue acknowledgement.
	StatusSubmitted Status = "submitted"
	// StatusNotTraded is an acknowledged, fully unfilled order or quote.
	StatusNotTraded Status = "not_traded"
	// StatusPartTraded is a partially filled order or quote.
	StatusPartTraded Status = "part_traded"
	// StatusAllTraded is a completely filled order or quote. Terminal.
	StatusAllTraded Status = "all_traded"
	// StatusCancelled is a cancelled order or quote. Terminal.
	StatusCancelled Status = "cancelled"
	// StatusRejected is an order or quote the venue refused. Terminal.
	StatusRejected Status = "rejected"
)

// IsActive reports whether the status still allows fills.
func (s Status) IsActive() bool {
	return s == StatusSubmitted || s == StatusNotTraded || s == StatusPartTraded
}

// Order represents a single order resting in the paper venue.
type Order struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Direction Direction `json:"direction"`
	Offset    Offset    `json:"offset"`
	Type      OrderType `json:"type"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Traded    float64   `json:"traded"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsActive reports whether the order can still fill.
func (o *Order) IsActive() bool {
	return o.Status.IsActive()
}

// OrderRequest represents a request to submit an order to the paper venue.
type OrderRequest struct {
	Symbol    string    `json:"symbol"`
	Direction Direction `json:"direction"`
	Offset    Offset    `json:"offset"`
	Type      OrderType `json:"type"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
}

// NewOrder creates an order from the request with a fresh id.
func (r OrderRequest) NewOrder() *Order {
	return &Order{
		ID:        ulid.Make().String(), // Generate a unique ID for the order
		Symbol:    r.Symbol,
		Direction: r.Direction,
		Offset:    r.Offset,
		Type:      r.Type,
		Price:     r.Price,
		Volume:    r.Volume,
		Status:    StatusSubmitted,
		CreatedAt: time.Now(),
	}
}

// CancelRequest represents a request to cancel an active order or quote.
type CancelRequest struct {
	Symbol  string `json:"symbol"`
	OrderID string `json:"orderID"`
}
