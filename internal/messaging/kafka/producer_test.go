package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

func newMockedProducer(t *testing.T) (*Producer, *mocks.SyncProducer) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}
	return producer, mockProducer
}

func TestProducer_PublishEvent(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	// Проверяем, что тело сообщения — валидный JSON события.
	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event domain.OrderEvent
		return json.Unmarshal(value, &event)
	})

	event := domain.NewOrderStatusChangedEvent(uuid.New(), "Completed")
	if err := producer.PublishEvent(TopicOrderEvents, event.OrderID.String(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	event := domain.NewOrderStatusChangedEvent(uuid.New(), "Completed")
	if err := producer.PublishEvent(TopicOrderEvents, event.OrderID.String(), event); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOrderEventPublisher_KeyAndTopic(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	detail := domain.OrderDetail{
		ID:         uuid.New(),
		ResellerID: uuid.New(),
		CustomerID: uuid.New(),
		StatusName: "Created",
	}

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicOrderEvents {
			t.Errorf("expected topic %s, got %s", TopicOrderEvents, msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != detail.ID.String() {
			t.Errorf("expected key %s, got %s", detail.ID, key)
		}
		return nil
	})

	publisher := NewOrderEventPublisher(producer, "")
	if err := publisher.Publish(domain.NewOrderCreatedEvent(detail)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOrderEventPublisher_NilProducer(t *testing.T) {
	publisher := &OrderEventPublisher{}

	if err := publisher.Publish(domain.NewOrderStatusChangedEvent(uuid.New(), "Completed")); err == nil {
		t.Fatal("expected error for uninitialized publisher")
	}
}

func TestNewOrderCreatedEvent(t *testing.T) {
	detail := domain.OrderDetail{
		ID:         uuid.New(),
		ResellerID: uuid.New(),
		CustomerID: uuid.New(),
		StatusName: "Created",
	}

	event := domain.NewOrderCreatedEvent(detail)

	if event.EventType != domain.EventTypeOrderCreated {
		t.Errorf("expected event type %s, got %s", domain.EventTypeOrderCreated, event.EventType)
	}
	if event.OrderID != detail.ID {
		t.Errorf("expected order id %s, got %s", detail.ID, event.OrderID)
	}
	if event.Status != "Created" {
		t.Errorf("expected status Created, got %s", event.Status)
	}
	if event.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}
	if time.Since(event.Timestamp) > time.Second {
		t.Error("timestamp should be close to current time")
	}
}
