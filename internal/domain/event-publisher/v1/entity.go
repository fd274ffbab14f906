package eventpublisherv1

import (
	"encoding/json"
	"time"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
)

// EventType discriminates the payload carried by an Event.
type EventType string

const (
	// EventTypeOrder carries an order state change.
	EventTypeOrder EventType = "order"
	// EventTypeTrade carries an executed trade.
	EventTypeTrade EventType = "trade"
	// EventTypeQuote carries a quote state change.
	EventTypeQuote EventType = "quote"
	// EventTypePosition carries a position update.
	EventTypePosition EventType = "position"
	// EventTypeLog carries a human-readable log line.
	EventTypeLog EventType = "log"
)

// Event is the wire envelope for every published engine event.
type Event struct {
	Type      EventType          `json:"type"`
	Gateway   string             `json:"gateway"`
	Timestamp time.Time          `json:"timestamp"`
	Order     *marketv1.Order    `json:"order,omitempty"`
	Trade     *marketv1.Trade    `json:"trade,omitempty"`
	Quote     *marketv1.Quote    `json:"quote,omitempty"`
	Position  *marketv1.Position `json:"position,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// NewOrderEvent creates an order event envelope.
func NewOrderEvent(gateway string, order marketv1.Order) *Event {
	return &Event{Type: EventTypeOrder, Gateway: gateway, Timestamp: time.Now(), Order: &order}
}

// NewTradeEvent creates a trade event envelope.
func NewTradeEvent(gateway string, trade marketv1.Trade) *Event {
	return &Event{Type: EventTypeTrade, Gateway: gateway, Timestamp: time.Now(), Trade: &trade}
}

// NewQuoteEvent creates a quote event envelope.
func NewQuoteEvent(gateway string, quote marketv1.Quote) *Event {
	return &Event{Type: EventTypeQuote, Gateway: gateway, Timestamp: time.Now(), Quote: &quote}
}

// NewPositionEvent creates a position event envelope.
func NewPositionEvent(gateway string, position marketv1.Position) *Event {
	return &Event{Type: EventTypePosition, Gateway: gateway, Timestamp: time.Now(), Position: &position}
}

// NewLogEvent creates a log event envelope.
func NewLogEvent(gateway, message string) *Event {
	return &Event{Type: EventTypeLog, Gateway: gateway, Timestamp: time.Now(), Message: message}
}

// ToBytes converts the event to a byte array.
func ToBytes(event *Event) []byte {
	buf, err := json.Marshal(event)
	if err != nil {
		return nil
	}

	return buf
}

// FromBytes converts a byte array to an event.
func FromBytes(data []byte) *Event {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
