package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/robomart/toystore/pkg/kafka"
)

// Analytics event names. These are the external reporting interface and must
// not change without coordinating with the analytics consumers.
const (
	AddToCart         = "addToCart"
	RemoveCartItem    = "removeCartItem"
	RemoveOneFromCart = "removeOneFromCart"
	GoToCheckout      = "goToCheckout"
	ContactFormSubmit = "contactFormSubmit"
)

// Topic all storefront analytics events are published to. The event name
// travels in the envelope's event_type field.
const TopicAnalytics = "toystore.analytics"

// Source identifier for events originating from this service.
const SourceStorefront = "toystore-storefront"

// Aggregate type constant.
const AggregateTypeCart = "cart"

// Payload is an analytics event payload. Key returns the partition key for
// the event, usually the session ID it belongs to.
type Payload interface {
	Key() string
}

// ItemPayload is a single cart line item within analytics events.
type ItemPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// CartPayload describes a cart mutation: the acting item plus the running
// cart totals after the mutation.
type CartPayload struct {
	SessionID   string        `json:"session_id"`
	Item        *ItemPayload  `json:"item,omitempty"`
	Items       []ItemPayload `json:"items,omitempty"`
	ItemCount   int           `json:"item_count"`
	TotalAmount int64         `json:"total_amount"`
}

// Key implements Payload.
func (p CartPayload) Key() string { return p.SessionID }

// ContactPayload describes a contact form submission.
type ContactPayload struct {
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Key implements Payload.
func (p ContactPayload) Key() string { return p.MessageID }

// Emitter publishes analytics events describing storefront actions. Calls
// are best-effort: the storefront reports failures but never lets them
// affect cart correctness.
type Emitter interface {
	Emit(ctx context.Context, name string, payload Payload) error
}

// KafkaEmitter publishes analytics events to Kafka.
type KafkaEmitter struct {
	producer *pkgkafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaEmitter creates an analytics emitter backed by the given producer.
func NewKafkaEmitter(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *KafkaEmitter {
	return &KafkaEmitter{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Emit publishes one analytics event wrapped in the standard envelope.
func (e *KafkaEmitter) Emit(ctx context.Context, name string, payload Payload) error {
	ev, err := pkgkafka.NewEvent(name, payload.Key(), AggregateTypeCart, SourceStorefront, payload)
	if err != nil {
		return fmt.Errorf("create %s event: %w", name, err)
	}

	if err := e.producer.Publish(ctx, e.topic, ev); err != nil {
		return fmt.Errorf("publish %s event: %w", name, err)
	}

	e.logger.DebugContext(ctx, "analytics event emitted",
		slog.String("event", name),
		slog.String("key", payload.Key()),
	)

	return nil
}

// NopEmitter discards all events. Used when analytics is disabled and in
// tests that don't care about emission.
type NopEmitter struct{}

// Emit implements Emitter.
func (NopEmitter) Emit(context.Context, string, Payload) error { return nil }
