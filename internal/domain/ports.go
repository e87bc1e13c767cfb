package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderEventType определяет тип доменного события заказа.
type OrderEventType string

const (
	EventTypeOrderCreated       OrderEventType = "order.created"
	EventTypeOrderStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent — событие жизненного цикла заказа, публикуемое во внешнюю шину.
type OrderEvent struct {
	EventType  OrderEventType `json:"event_type"`
	OrderID    uuid.UUID      `json:"order_id"`
	ResellerID uuid.UUID      `json:"reseller_id,omitempty"`
	CustomerID uuid.UUID      `json:"customer_id,omitempty"`
	Status     string         `json:"status"`
	Timestamp  time.Time      `json:"timestamp"`
}

// NewOrderCreatedEvent создаёт событие о новом заказе.
func NewOrderCreatedEvent(detail OrderDetail) OrderEvent {
	return OrderEvent{
		EventType:  EventTypeOrderCreated,
		OrderID:    detail.ID,
		ResellerID: detail.ResellerID,
		CustomerID: detail.CustomerID,
		Status:     detail.StatusName,
		Timestamp:  time.Now().UTC(),
	}
}

// NewOrderStatusChangedEvent создаёт событие о смене статуса заказа.
func NewOrderStatusChangedEvent(orderID uuid.UUID, status string) OrderEvent {
	return OrderEvent{
		EventType: EventTypeOrderStatusChanged,
		OrderID:   orderID,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}

// EventPublisher публикует события заказов наружу. Публикация — best-effort:
// сервис логирует сбой, но не превращает его в отказ бизнес-операции.
type EventPublisher interface {
	Publish(event OrderEvent) error
}
