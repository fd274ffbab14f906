package tickreaderv1

import (
	"context"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	"github.com/segmentio/kafka-go"
)

// TickReader defines the interface for consuming market ticks from a stream.
type TickReader interface {
	// ReadTick reads a message and returns the parsed tick
	ReadTick(ctx context.Context) (kafka.Message, marketv1.Tick, error)
	// Close closes the reader
	Close() error
}
