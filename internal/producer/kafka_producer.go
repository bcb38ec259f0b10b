package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated       = "order.created"
	EventComandaItemsAdded  = "comanda.items_added"
	EventOrderStatusChanged = "order.status_changed"
	headerEventType         = "event_type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderProducer publishes order lifecycle events keyed by order id, so that every event of one order lands
// on the same partition.
type OrderProducer struct {
	writer messageWriter
}

var _ service.EventBus = (*OrderProducer)(nil)

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *OrderProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.send(ctx, EventOrderCreated, e.OrderID.String(), e)
}

func (p *OrderProducer) PublishComandaItemsAdded(ctx context.Context, e service.ComandaItemsAddedEvent) error {
	return p.send(ctx, EventComandaItemsAdded, e.OrderID.String(), e)
}

func (p *OrderProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.send(ctx, EventOrderStatusChanged, e.OrderID.String(), e)
}

func (p *OrderProducer) send(ctx context.Context, eventType, key string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(eventType)},
		},
	})
}

func (p *OrderProducer) Close() error {
	return p.writer.Close()
}
