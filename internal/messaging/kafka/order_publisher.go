package kafka

import (
	"fmt"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

// OrderEventPublisher публикует доменные события заказов в Kafka.
// Ключом сообщения служит id заказа, чтобы события одного заказа
// попадали в одну партицию и сохраняли порядок.
type OrderEventPublisher struct {
	producer *Producer
	topic    string
}

// NewOrderEventPublisher создаёт паблишер; пустой topic заменяется дефолтным.
func NewOrderEventPublisher(producer *Producer, topic string) domain.EventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventPublisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *OrderEventPublisher) Publish(event domain.OrderEvent) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka order publisher is not initialized")
	}
	return p.producer.PublishEvent(p.topic, event.OrderID.String(), event)
}

var _ domain.EventPublisher = (*OrderEventPublisher)(nil)
