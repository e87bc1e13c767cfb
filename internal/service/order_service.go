package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/metrics"
)

// OrderService — тонкий слой валидации и оркестрации над репозиторием.
// Ожидаемые нарушения бизнес-правил возвращаются как Result-отказ;
// инфраструктурные сбои — отдельной ошибкой, без заворачивания в Result.
type OrderService struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// NewOrderService конструирует сервис. Publisher и metrics опциональны.
func NewOrderService(repo domain.OrderRepository, publisher domain.EventPublisher, m *metrics.OrderMetrics, logger *log.Entry) *OrderService {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &OrderService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// GetOrders возвращает все заказы без дополнительной валидации.
func (s *OrderService) GetOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrderByID возвращает деталь заказа; nil означает "не найден"
// и обрабатывается вызывающей стороной.
func (s *OrderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error) {
	detail, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return detail, nil
}

// GetByStatus возвращает заказы с указанным статусом.
// Пустой или пробельный статус отклоняется до обращения к хранилищу.
func (s *OrderService) GetByStatus(ctx context.Context, status string) (domain.Result[[]domain.OrderSummary], error) {
	if strings.TrimSpace(status) == "" {
		return domain.Fail[[]domain.OrderSummary]("Status is required"), nil
	}

	orders, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return domain.Result[[]domain.OrderSummary]{}, fmt.Errorf("list orders by status: %w", err)
	}
	return domain.Ok(orders), nil
}

// UpdateStatus переводит заказ в новый статус.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (domain.Result[struct{}], error) {
	if orderID == uuid.Nil {
		return domain.Fail[struct{}]("Order id is required"), nil
	}
	if strings.TrimSpace(status) == "" {
		return domain.Fail[struct{}]("Status is required"), nil
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		if domain.IsNotFound(err) {
			return domain.Fail[struct{}](err.Error()), nil
		}
		return domain.Result[struct{}]{}, fmt.Errorf("update order status: %w", err)
	}

	s.metrics.IncStatusUpdated()
	s.publish(domain.NewOrderStatusChangedEvent(orderID, strings.TrimSpace(status)))

	return domain.Ok(struct{}{}), nil
}

// CreateOrder создаёт заказ. Проверки идут в фиксированном порядке:
// реселлер, клиент, позиции и их содержимое — затем репозиторий.
func (s *OrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Result[*domain.OrderDetail], error) {
	if req.ResellerID == uuid.Nil {
		return domain.Fail[*domain.OrderDetail]("ResellerId id is required"), nil
	}
	if req.CustomerID == uuid.Nil {
		return domain.Fail[*domain.OrderDetail]("CustomerId id is required"), nil
	}
	if len(req.Items) == 0 {
		return domain.Fail[*domain.OrderDetail]("At least one order item is required"), nil
	}
	for _, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return domain.Fail[*domain.OrderDetail]("ProductId is required"), nil
		}
		if item.Quantity <= 0 {
			return domain.Fail[*domain.OrderDetail]("Quantity must be greater than 0"), nil
		}
	}

	detail, err := s.repo.CreateOrder(ctx, req)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Fail[*domain.OrderDetail](err.Error()), nil
		}
		return domain.Result[*domain.OrderDetail]{}, fmt.Errorf("create order: %w", err)
	}
	if detail == nil {
		return domain.Result[*domain.OrderDetail]{}, fmt.Errorf("create order: repository returned no detail")
	}

	s.metrics.IncOrderCreated()
	s.publish(domain.NewOrderCreatedEvent(*detail))

	s.logger.WithFields(log.Fields{
		"order_id":    detail.ID,
		"reseller_id": detail.ResellerID,
		"customer_id": detail.CustomerID,
		"items":       len(detail.Items),
	}).Info("order created")

	return domain.Ok(detail), nil
}

// MonthlyProfit возвращает помесячную прибыль по завершённым заказам.
// Бизнес-отказов у операции нет, результат всегда успешный.
func (s *OrderService) MonthlyProfit(ctx context.Context) (domain.Result[[]domain.MonthlyProfit], error) {
	profits, err := s.repo.MonthlyProfit(ctx)
	if err != nil {
		return domain.Result[[]domain.MonthlyProfit]{}, fmt.Errorf("monthly profit: %w", err)
	}
	return domain.Ok(profits), nil
}

// publish отправляет событие best-effort: сбой шины не влияет на исход операции.
func (s *OrderService) publish(event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.EventType).Warn("failed to publish order event")
	}
}
