package marketv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Quote represents a single two-sided maker quote. At most one quote is
// active per instrument; each side is fillable at most once.
type Quote struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	BidPrice  float64   `json:"bidPrice"`
	BidVolume float64   `json:"bidVolume"`
	AskPrice  float64   `json:"askPrice"`
	AskVolume float64   `json:"askVolume"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsActive reports whether the quote can still fill.
func (q *Quote) IsActive() bool {
	return q.Status.IsActive()
}

// QuoteRequest represents a request to submit a two-sided quote.
type QuoteRequest struct {
	Symbol    string  `json:"symbol"`
	BidPrice  float64 `json:"bidPrice"`
	BidVolume float64 `json:"bidVolume"`
	AskPrice  float64 `json:"askPrice"`
	AskVolume float64 `json:"askVolume"`
}

// NewQuote creates a quote from the request with a fresh id.
func (r QuoteRequest) NewQuote() *Quote {
	return &Quote{
		ID:        ulid.Make().String(),
		Symbol:    r.Symbol,
		BidPrice:  r.BidPrice,
		BidVolume: r.BidVolume,
		AskPrice:  r.AskPrice,
		AskVolume: r.AskVolume,
		Status:    StatusSubmitted,
		CreatedAt: time.Now(),
	}
}
