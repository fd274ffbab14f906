package eventpublisher

import (
	"context"

	"github.com/segmentio/kafka-go"

	eventpublisherv1 "github.com/papersim/paperbroker/internal/domain/event-publisher/v1"
	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	"github.com/papersim/paperbroker/pkg/config"
	"github.com/papersim/paperbroker/pkg/errors"
	"github.com/papersim/paperbroker/pkg/logger"
)

// Publisher fans every engine event out to a Kafka topic.
type Publisher struct {
	gateway     string
	kafkaWriter *kafka.Writer
	logger      logger.Logger
}

// NewPublisher creates a Kafka publisher for engine events.
func NewPublisher(gateway string, cfg config.KafkaConfig, log logger.Logger) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		gateway:     gateway,
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishOrder publishes an order state change.
func (p *Publisher) PublishOrder(ctx context.Context, order marketv1.Order) error {
	return p.publish(ctx, eventpublisherv1.NewOrderEvent(p.gateway, order))
}

// PublishTrade publishes an executed trade.
func (p *Publisher) PublishTrade(ctx context.Context, trade marketv1.Trade) error {
	return p.publish(ctx, eventpublisherv1.NewTradeEvent(p.gateway, trade))
}

// PublishQuote publishes a quote state change.
func (p *Publisher) PublishQuote(ctx context.Context, quote marketv1.Quote) error {
	return p.publish(ctx, eventpublisherv1.NewQuoteEvent(p.gateway, quote))
}

// PublishPosition publishes a position update.
func (p *Publisher) PublishPosition(ctx context.Context, position marketv1.Position) error {
	return p.publish(ctx, eventpublisherv1.NewPositionEvent(p.gateway, position))
}

// PublishLog publishes a human-readable log line.
func (p *Publisher) PublishLog(ctx context.Context, message string) error {
	return p.publish(ctx, eventpublisherv1.NewLogEvent(p.gateway, message))
}

func (p *Publisher) publish(ctx context.Context, event *eventpublisherv1.Event) error {
	msg := kafka.Message{
		Value: eventpublisherv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "eventType", Value: event.Type},
		)
		return errors.NewTracer(string(errors.EventPublishError)).Wrap(err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
