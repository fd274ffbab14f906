package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
)

func newBookOrder(symbol string) *marketv1.Order {
	order := marketv1.OrderRequest{
		Symbol:    symbol,
		Direction: marketv1.DirectionLong,
		Offset:    marketv1.OffsetOpen,
		Type:      marketv1.OrderTypeLimit,
		Price:     100,
		Volume:    1,
	}.NewOrder()
	order.Status = marketv1.StatusNotTraded
	return order
}

func TestOrderBookAddRemove(t *testing.T) {
	book := NewOrderBook()
	order := newBookOrder("IF2609")

	book.Add(order)

	removed, ok := book.Remove("IF2609", order.ID)
	require.True(t, ok)
	assert.Same(t, order, removed)

	// A second remove of the same id is a miss.
	_, ok = book.Remove("IF2609", order.ID)
	assert.False(t, ok)
}

func TestOrderBookRemoveUnknown(t *testing.T) {
	book := NewOrderBook()

	_, ok := book.Remove("IF2609", "no-such-order")
	assert.False(t, ok)
}

func TestOrderBookActiveSnapshotSurvivesRemoval(t *testing.T) {
	book := NewOrderBook()
	first := newBookOrder("IF2609")
	second := newBookOrder("IF2609")
	other := newBookOrder("rb2610")
	book.Add(first)
	book.Add(second)
	book.Add(other)

	snapshot := book.Active("IF2609")
	require.Len(t, snapshot, 2)

	// Removing while iterating the snapshot visits every order exactly once.
	seen := map[string]bool{}
	for _, order := range snapshot {
		book.Remove(order.Symbol, order.ID)
		seen[order.ID] = true
	}
	assert.Len(t, seen, 2)
	assert.Empty(t, book.Active("IF2609"))
	assert.Len(t, book.Active("rb2610"), 1)
}

func TestOrderBookActiveUnknownSymbol(t *testing.T) {
	book := NewOrderBook()
	assert.Empty(t, book.Active("IF2609"))
}

func newBookQuote(symbol string) *marketv1.Quote {
	quote := marketv1.QuoteRequest{
		Symbol:    symbol,
		BidPrice:  99,
		BidVolume: 5,
		AskPrice:  101,
		AskVolume: 5,
	}.NewQuote()
	quote.Status = marketv1.StatusNotTraded
	return quote
}

func TestQuoteBookReplaceReturnsDisplaced(t *testing.T) {
	book := NewQuoteBook()
	first := newBookQuote("IF2609")
	second := newBookQuote("IF2609")

	assert.Nil(t, book.Replace(first))
	assert.Same(t, first, book.Replace(second))

	active, ok := book.Get("IF2609")
	require.True(t, ok)
	assert.Same(t, second, active)
}

func TestQuoteBookRemove(t *testing.T) {
	book := NewQuoteBook()
	quote := newBookQuote("IF2609")
	book.Replace(quote)

	removed, ok := book.Remove("IF2609")
	require.True(t, ok)
	assert.Same(t, quote, removed)

	_, ok = book.Get("IF2609")
	assert.False(t, ok)

	_, ok = book.Remove("IF2609")
	assert.False(t, ok)
}

func TestTickCachePutGet(t *testing.T) {
	cache := NewTickCache()

	_, ok := cache.Get("IF2609")
	assert.False(t, ok)

	cache.Put(marketv1.Tick{Symbol: "IF2609", LastPrice: 100})
	cache.Put(marketv1.Tick{Symbol: "IF2609", LastPrice: 101})

	tick, ok := cache.Get("IF2609")
	require.True(t, ok)
	assert.Equal(t, 101.0, tick.LastPrice)
}
