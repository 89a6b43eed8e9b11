package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// TopicOrderEvents: топик событий жизненного цикла заказов по умолчанию.
const TopicOrderEvents = "orders.events"

// HeaderEventType дублирует тип события в заголовке, чтобы подписчики могли фильтровать без разбора тела.
const HeaderEventType = "x-event-type"

// OrderEvent: сообщение о событии заказа.
type OrderEvent struct {
	EventType  domain.EventType `json:"event_type"`
	OrderID    string           `json:"order_id"`
	Status     string           `json:"status"`
	TotalItems int              `json:"total_items"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewOrderEvent переводит доменное событие в сообщение Kafka.
func NewOrderEvent(event domain.OrderEvent) *OrderEvent {
	timestamp := event.Occurred
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	return &OrderEvent{
		EventType:  event.Type,
		OrderID:    event.OrderID,
		Status:     string(event.Status),
		TotalItems: event.TotalItems,
		Timestamp:  timestamp,
	}
}

// EventSender: минимальный контракт producer'а для публикации.
type EventSender interface {
	PublishEvent(topic string, key string, event any, headers ...sarama.RecordHeader) error
}

// OrderEventPublisher публикует события заказов, ключ сообщения: идентификатор заказа.
type OrderEventPublisher struct {
	sender EventSender
	topic  string
}

// NewOrderEventPublisher создаёт publisher; пустой topic заменяется на TopicOrderEvents.
func NewOrderEventPublisher(sender EventSender, topic string) *OrderEventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventPublisher{sender: sender, topic: topic}
}

// Publish отправляет событие. Отмена ctx проверяется до отправки.
func (p *OrderEventPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.sender.PublishEvent(p.topic, event.OrderID, NewOrderEvent(event), sarama.RecordHeader{
		Key:   []byte(HeaderEventType),
		Value: []byte(event.Type),
	})
}

var _ domain.EventPublisher = (*OrderEventPublisher)(nil)
