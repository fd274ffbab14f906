package tickreader

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	"github.com/papersim/paperbroker/pkg/config"
	"github.com/papersim/paperbroker/pkg/logger"
)

// Reader represents a Kafka reader consuming market ticks.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Logger
}

// NewReader creates a new Kafka reader for consuming market ticks.
// It returns an implementation of the TickReader interface.
func NewReader(cfg config.KafkaConfig, log logger.Logger) Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// ReadTick reads a message from the Kafka topic and parses it as a Tick.
func (r Reader) ReadTick(ctx context.Context) (kafka.Message, marketv1.Tick, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadTick")
		return kafka.Message{}, marketv1.Tick{}, err
	}

	var tick marketv1.Tick
	if err := json.Unmarshal(msg.Value, &tick); err != nil {
		r.logError(err, "UnmarshalTick")
		return kafka.Message{}, marketv1.Tick{}, err
	}

	r.logger.Debug("ReadTick",
		logger.Field{Key: "symbol", Value: tick.Symbol},
		logger.Field{Key: "bidPrice", Value: tick.BidPrice},
		logger.Field{Key: "askPrice", Value: tick.AskPrice},
		logger.Field{Key: "lastPrice", Value: tick.LastPrice},
	)

	return msg, tick, nil
}

// Close properly closes the Kafka reader.
func (r Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// logError is a helper method to log errors consistently
func (r Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}
