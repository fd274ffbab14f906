package eventpublisherv1

import (
	"context"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
)

// Publisher defines the interface for broadcasting engine state changes to
// subscribers. Payloads are passed by value; the engine keeps ownership of
// the originals.
type Publisher interface {
	PublishOrder(ctx context.Context, order marketv1.Order) error
	PublishTrade(ctx context.Context, trade marketv1.Trade) error
	PublishQuote(ctx context.Context, quote marketv1.Quote) error
	PublishPosition(ctx context.Context, position marketv1.Position) error
	PublishLog(ctx context.Context, message string) error
}
