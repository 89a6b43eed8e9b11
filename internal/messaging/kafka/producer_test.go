package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, log.WithField("component", "kafka-producer-test"))

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicOrderEvents {
			t.Errorf("unexpected topic %s", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "order-123" {
			t.Errorf("unexpected key %s", key)
		}
		return nil
	})

	event := NewOrderEvent(domain.OrderEvent{
		Type:       domain.EventOrderCreated,
		OrderID:    "order-123",
		Status:     domain.OrderStatusPending,
		TotalItems: 3,
	})

	if err := producer.PublishEvent(TopicOrderEvents, "order-123", event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, log.WithField("component", "kafka-producer-test"))

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishEvent(TopicOrderEvents, "order-123", NewOrderEvent(domain.OrderEvent{OrderID: "order-123"}))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_MarshalError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, log.WithField("component", "kafka-producer-test"))

	if err := producer.PublishEvent(TopicOrderEvents, "k", map[string]any{"bad": make(chan int)}); err == nil {
		t.Fatal("expected marshal error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOrderEventPublisher_Publish(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, log.WithField("component", "kafka-producer-test"))
	publisher := NewOrderEventPublisher(producer, "custom.orders")

	occurred := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "custom.orders" {
			t.Errorf("unexpected topic %s", msg.Topic)
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != HeaderEventType || string(msg.Headers[0].Value) != "order.status_changed" {
			t.Errorf("unexpected headers %+v", msg.Headers)
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var decoded OrderEvent
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		if decoded.EventType != domain.EventOrderStatusChanged || decoded.Status != "DELIVERED" || !decoded.Timestamp.Equal(occurred) {
			t.Errorf("unexpected payload %+v", decoded)
		}
		return nil
	})

	err := publisher.Publish(context.Background(), domain.OrderEvent{
		Type:     domain.EventOrderStatusChanged,
		OrderID:  "order-1",
		Status:   domain.OrderStatusDelivered,
		Occurred: occurred,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOrderEventPublisher_CanceledContext(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	publisher := NewOrderEventPublisher(newProducer(mockProducer, log.WithField("component", "test")), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := publisher.Publish(ctx, domain.OrderEvent{OrderID: "order-1"}); err == nil {
		t.Fatal("expected context error")
	}
	if publisher.topic != TopicOrderEvents {
		t.Fatalf("expected default topic, got %s", publisher.topic)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderEvent_DefaultsTimestamp(t *testing.T) {
	event := NewOrderEvent(domain.OrderEvent{Type: domain.EventOrderCreated, OrderID: "order-1"})

	if event.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}
	if time.Since(event.Timestamp) > time.Second {
		t.Error("timestamp should be close to current time")
	}
}
