package books

import (
	"sync"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
)

// QuoteBook holds at most one active two-sided quote per instrument.
type QuoteBook struct {
	mu     sync.RWMutex
	quotes map[string]*marketv1.Quote
}

// NewQuoteBook creates an empty quote book.
func NewQuoteBook() *QuoteBook {
	return &QuoteBook{
		quotes: make(map[string]*marketv1.Quote),
	}
}

// Replace installs the quote as the active quote for its instrument and
// returns the displaced quote, if any.
func (b *QuoteBook) Replace(quote *marketv1.Quote) *marketv1.Quote {
	b.mu.Lock()
	defer b.mu.Unlock()

	prior := b.quotes[quote.Symbol]
	b.quotes[quote.Symbol] = quote
	return prior
}

// Get returns the active quote for the instrument, if any.
func (b *QuoteBook) Get(symbol string) (*marketv1.Quote, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	quote, ok := b.quotes[symbol]
	return quote, ok
}

// Remove takes the active quote for the instrument out of the book.
func (b *QuoteBook) Remove(symbol string) (*marketv1.Quote, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	quote, ok := b.quotes[symbol]
	if !ok {
		return nil, false
	}

	delete(b.quotes, symbol)
	return quote, true
}
