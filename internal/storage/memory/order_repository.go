package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

// OrderRepository — in-memory реализация domain.OrderRepository для тестов
// и локальной разработки. Семантика (сортировка, сбор отсутствующих
// идентификаторов, порядок проверок) повторяет Postgres-реализацию.
type OrderRepository struct {
	mu       sync.RWMutex
	orders   map[uuid.UUID]domain.Order
	statuses map[uuid.UUID]domain.OrderStatus
	products map[uuid.UUID]domain.Product
	services map[uuid.UUID]domain.Service
}

// NewOrderRepository возвращает пустой репозиторий без справочных данных.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:   make(map[uuid.UUID]domain.Order),
		statuses: make(map[uuid.UUID]domain.OrderStatus),
		products: make(map[uuid.UUID]domain.Product),
		services: make(map[uuid.UUID]domain.Service),
	}
}

// SeedStatus добавляет статус в справочник и возвращает его.
func (r *OrderRepository) SeedStatus(name string) domain.OrderStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := domain.OrderStatus{ID: uuid.New(), Name: name}
	r.statuses[status.ID] = status
	return status
}

// SeedService добавляет услугу в справочник и возвращает её.
func (r *OrderRepository) SeedService(name string) domain.Service {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc := domain.Service{ID: uuid.New(), Name: name}
	r.services[svc.ID] = svc
	return svc
}

// SeedProduct добавляет товар в справочник и возвращает его.
func (r *OrderRepository) SeedProduct(name string, unitCost, unitPrice decimal.Decimal, serviceID uuid.UUID) domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	product := domain.Product{
		ID:        uuid.New(),
		Name:      name,
		UnitCost:  unitCost,
		UnitPrice: unitPrice,
		ServiceID: serviceID,
	}
	r.products[product.ID] = product
	return product
}

// AddOrder кладёт заказ как есть, без генерации идентификаторов.
// Нужен тестам, которым важно управлять датой создания.
func (r *OrderRepository) AddOrder(order domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
}

// ListOrders возвращает проекции всех заказов, новые первыми.
func (r *OrderRepository) ListOrders(_ context.Context) ([]domain.OrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderSummary, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, r.summarize(order))
	}
	sortSummaries(result)

	return result, nil
}

// GetOrderByID возвращает деталь заказа или nil, если заказа нет.
func (r *OrderRepository) GetOrderByID(_ context.Context, orderID uuid.UUID) (*domain.OrderDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.detail(orderID), nil
}

// ListByStatus возвращает заказы с указанным именем статуса, новые первыми.
func (r *OrderRepository) ListByStatus(_ context.Context, status string) ([]domain.OrderSummary, error) {
	trimmed := strings.TrimSpace(status)

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderSummary, 0)
	for _, order := range r.orders {
		if s, ok := r.statuses[order.StatusID]; ok && s.Name == trimmed {
			result = append(result, r.summarize(order))
		}
	}
	sortSummaries(result)

	return result, nil
}

// UpdateStatus переводит заказ в статус с указанным именем.
// Проверка статуса идёт раньше проверки заказа.
func (r *OrderRepository) UpdateStatus(_ context.Context, orderID uuid.UUID, status string) error {
	trimmed := strings.TrimSpace(status)

	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.statusByName(trimmed)
	if !ok {
		return &domain.StatusNotFoundError{Status: trimmed}
	}

	order, ok := r.orders[orderID]
	if !ok {
		return &domain.OrderNotFoundError{OrderID: orderID}
	}

	order.StatusID = target.ID
	r.orders[orderID] = order
	return nil
}

// CreateOrder создаёт заказ со статусом "Created" и возвращает свежую деталь.
func (r *OrderRepository) CreateOrder(_ context.Context, req domain.CreateOrderRequest) (*domain.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created, ok := r.statusByName(domain.StatusCreated)
	if !ok {
		return nil, &domain.StatusNotFoundError{Status: domain.StatusCreated}
	}

	if missing := r.missingProducts(req.Items); len(missing) > 0 {
		return nil, &domain.ProductNotFoundError{ProductIDs: missing}
	}
	if missing := r.missingServices(req.Items); len(missing) > 0 {
		return nil, &domain.ServiceNotFoundError{ServiceIDs: missing}
	}

	order := domain.Order{
		ID:         uuid.New(),
		ResellerID: req.ResellerID,
		CustomerID: req.CustomerID,
		StatusID:   created.ID,
		CreatedAt:  time.Now().UTC(),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
		})
	}
	r.orders[order.ID] = order

	return r.detail(order.ID), nil
}

// MonthlyProfit агрегирует завершённые заказы по (год, месяц) даты создания.
func (r *OrderRepository) MonthlyProfit(_ context.Context) ([]domain.MonthlyProfit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type bucket struct {
		year, month int
	}
	buckets := make(map[bucket]*domain.MonthlyProfit)

	for _, order := range r.orders {
		status, ok := r.statuses[order.StatusID]
		if !ok || status.Name != domain.StatusCompleted {
			continue
		}

		key := bucket{year: order.CreatedAt.Year(), month: int(order.CreatedAt.Month())}
		agg, ok := buckets[key]
		if !ok {
			agg = &domain.MonthlyProfit{
				Year:       key.year,
				Month:      key.month,
				TotalCost:  decimal.Zero,
				TotalPrice: decimal.Zero,
				Profit:     decimal.Zero,
			}
			buckets[key] = agg
		}

		cost, price := r.orderTotals(order)
		agg.TotalCost = agg.TotalCost.Add(cost)
		agg.TotalPrice = agg.TotalPrice.Add(price)
		agg.Profit = agg.Profit.Add(price.Sub(cost))
		agg.OrderCount++
	}

	result := make([]domain.MonthlyProfit, 0, len(buckets))
	for _, agg := range buckets {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Month > result[j].Month
	})

	return result, nil
}

func (r *OrderRepository) statusByName(name string) (domain.OrderStatus, bool) {
	for _, status := range r.statuses {
		if status.Name == name {
			return status, true
		}
	}
	return domain.OrderStatus{}, false
}

// missingProducts возвращает отсутствующие в справочнике товары запроса,
// без дублей, в порядке первого упоминания.
func (r *OrderRepository) missingProducts(items []domain.CreateOrderItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	missing := make([]uuid.UUID, 0)
	for _, item := range items {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		if _, ok := r.products[item.ProductID]; !ok {
			missing = append(missing, item.ProductID)
		}
	}
	return missing
}

func (r *OrderRepository) missingServices(items []domain.CreateOrderItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	missing := make([]uuid.UUID, 0)
	for _, item := range items {
		if seen[item.ServiceID] {
			continue
		}
		seen[item.ServiceID] = true
		if _, ok := r.services[item.ServiceID]; !ok {
			missing = append(missing, item.ServiceID)
		}
	}
	return missing
}

func (r *OrderRepository) summarize(order domain.Order) domain.OrderSummary {
	cost, price := r.orderTotals(order)
	return domain.OrderSummary{
		ID:         order.ID,
		ResellerID: order.ResellerID,
		CustomerID: order.CustomerID,
		StatusID:   order.StatusID,
		StatusName: r.statuses[order.StatusID].Name,
		ItemCount:  len(order.Items),
		TotalCost:  cost,
		TotalPrice: price,
		CreatedAt:  order.CreatedAt,
	}
}

func (r *OrderRepository) detail(orderID uuid.UUID) *domain.OrderDetail {
	order, ok := r.orders[orderID]
	if !ok {
		return nil
	}

	cost, price := r.orderTotals(order)
	detail := &domain.OrderDetail{
		ID:         order.ID,
		ResellerID: order.ResellerID,
		CustomerID: order.CustomerID,
		StatusID:   order.StatusID,
		StatusName: r.statuses[order.StatusID].Name,
		TotalCost:  cost,
		TotalPrice: price,
		CreatedAt:  order.CreatedAt,
		Items:      make([]domain.OrderDetailItem, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		product := r.products[item.ProductID]
		qty := decimal.NewFromInt32(item.Quantity)
		detail.Items = append(detail.Items, domain.OrderDetailItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: product.Name,
			ServiceID:   item.ServiceID,
			ServiceName: r.services[item.ServiceID].Name,
			Quantity:    item.Quantity,
			UnitCost:    product.UnitCost,
			UnitPrice:   product.UnitPrice,
			TotalCost:   product.UnitCost.Mul(qty),
			TotalPrice:  product.UnitPrice.Mul(qty),
		})
	}

	return detail
}

// orderTotals считает итоги заказа точной десятичной арифметикой.
// Заказ без позиций даёт нулевые итоги.
func (r *OrderRepository) orderTotals(order domain.Order) (cost, price decimal.Decimal) {
	cost, price = decimal.Zero, decimal.Zero
	for _, item := range order.Items {
		product, ok := r.products[item.ProductID]
		if !ok {
			continue
		}
		qty := decimal.NewFromInt32(item.Quantity)
		cost = cost.Add(product.UnitCost.Mul(qty))
		price = price.Add(product.UnitPrice.Mul(qty))
	}
	return cost, price
}

func sortSummaries(summaries []domain.OrderSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
		return summaries[i].ID.String() < summaries[j].ID.String()
	})
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
