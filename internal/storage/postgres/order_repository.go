package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

const opTimeout = 5 * time.Second

// Итоги заказа считаются на стороне базы: NUMERIC даёт точную десятичную
// арифметику, заказ без позиций получает нулевые суммы через COALESCE.
const summarySelect = `
	SELECT o.id, o.reseller_id, o.customer_id, o.status_id, s.name,
	       COUNT(i.id),
	       COALESCE(SUM(i.quantity * p.unit_cost), 0),
	       COALESCE(SUM(i.quantity * p.unit_price), 0),
	       o.created_at
	FROM orders o
	JOIN order_statuses s ON s.id = o.status_id
	LEFT JOIN order_items i ON i.order_id = o.id
	LEFT JOIN products p ON p.id = i.product_id
`

const summaryGroupBy = `
	GROUP BY o.id, o.reseller_id, o.customer_id, o.status_id, s.name, o.created_at
	ORDER BY o.created_at DESC, o.id
`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию domain.OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, summarySelect+summaryGroupBy)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (r *orderRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var detail domain.OrderDetail
	var itemCount int
	err := r.db.QueryRowContext(ctx, summarySelect+` WHERE o.id = $1 `+summaryGroupBy, orderID).Scan(
		&detail.ID, &detail.ResellerID, &detail.CustomerID, &detail.StatusID, &detail.StatusName,
		&itemCount, &detail.TotalCost, &detail.TotalPrice, &detail.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Отсутствие заказа — валидный исход, не ошибка.
			return nil, nil
		}
		return nil, fmt.Errorf("select order %s: %w", orderID, err)
	}

	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	detail.Items = items

	return &detail, nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, status string) ([]domain.OrderSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	trimmed := strings.TrimSpace(status)

	rows, err := r.db.QueryContext(ctx, summarySelect+` WHERE s.name = $1 `+summaryGroupBy, trimmed)
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// UpdateStatus сначала проверяет существование статуса, затем заказа:
// при двух промахах наружу уходит именно "status not found".
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	trimmed := strings.TrimSpace(status)

	var statusID uuid.UUID
	err := r.db.QueryRowContext(ctx, `SELECT id FROM order_statuses WHERE name = $1`, trimmed).Scan(&statusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.StatusNotFoundError{Status: trimmed}
		}
		return fmt.Errorf("select status %q: %w", trimmed, err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status_id = $1 WHERE id = $2`, statusID, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.OrderNotFoundError{OrderID: orderID}
	}

	return nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var createdStatusID uuid.UUID
	err := r.db.QueryRowContext(ctx, `SELECT id FROM order_statuses WHERE name = $1`, domain.StatusCreated).Scan(&createdStatusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.StatusNotFoundError{Status: domain.StatusCreated}
		}
		return nil, fmt.Errorf("select created status: %w", err)
	}

	missingProducts, err := r.missingIDs(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productIDs(req.Items))
	if err != nil {
		return nil, err
	}
	if len(missingProducts) > 0 {
		return nil, &domain.ProductNotFoundError{ProductIDs: missingProducts}
	}

	missingServices, err := r.missingIDs(ctx, `SELECT EXISTS (SELECT 1 FROM services WHERE id = $1)`, serviceIDs(req.Items))
	if err != nil {
		return nil, err
	}
	if len(missingServices) > 0 {
		return nil, &domain.ServiceNotFoundError{ServiceIDs: missingServices}
	}

	orderID := uuid.New()
	createdAt := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, reseller_id, customer_id, status_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, orderID, req.ResellerID, req.CustomerID, createdStatusID, createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range req.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, service_id, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), orderID, item.ProductID, item.ServiceID, item.Quantity); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create order: %w", err)
	}

	return r.GetOrderByID(ctx, orderID)
}

func (r *orderRepository) MonthlyProfit(ctx context.Context) ([]domain.MonthlyProfit, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(YEAR FROM o.created_at AT TIME ZONE 'UTC')::INT,
		       EXTRACT(MONTH FROM o.created_at AT TIME ZONE 'UTC')::INT,
		       COALESCE(SUM(i.quantity * p.unit_cost), 0),
		       COALESCE(SUM(i.quantity * p.unit_price), 0),
		       COALESCE(SUM(i.quantity * (p.unit_price - p.unit_cost)), 0),
		       COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_statuses s ON s.id = o.status_id AND s.name = $1
		LEFT JOIN order_items i ON i.order_id = o.id
		LEFT JOIN products p ON p.id = i.product_id
		GROUP BY 1, 2
		ORDER BY 1 DESC, 2 DESC
	`, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("monthly profit: %w", err)
	}
	defer rows.Close()

	result := make([]domain.MonthlyProfit, 0)
	for rows.Next() {
		var mp domain.MonthlyProfit
		if err := rows.Scan(&mp.Year, &mp.Month, &mp.TotalCost, &mp.TotalPrice, &mp.Profit, &mp.OrderCount); err != nil {
			return nil, fmt.Errorf("scan monthly profit row: %w", err)
		}
		result = append(result, mp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly profit rows: %w", err)
	}

	return result, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderDetailItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, i.product_id, p.name, i.service_id, sv.name,
		       i.quantity, p.unit_cost, p.unit_price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		JOIN services sv ON sv.id = i.service_id
		WHERE i.order_id = $1
		ORDER BY i.id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderDetailItem, 0)
	for rows.Next() {
		var item domain.OrderDetailItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ServiceID, &item.ServiceName, &item.Quantity,
			&item.UnitCost, &item.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		qty := decimal.NewFromInt32(item.Quantity)
		item.TotalCost = item.UnitCost.Mul(qty)
		item.TotalPrice = item.UnitPrice.Mul(qty)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

// missingIDs проверяет существование каждого уникального идентификатора
// и возвращает отсутствующие в порядке первого упоминания.
func (r *orderRepository) missingIDs(ctx context.Context, existsQuery string, ids []uuid.UUID) ([]uuid.UUID, error) {
	missing := make([]uuid.UUID, 0)
	for _, id := range ids {
		var exists bool
		if err := r.db.QueryRowContext(ctx, existsQuery, id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check reference %s: %w", id, err)
		}
		if !exists {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func productIDs(items []domain.CreateOrderItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}
	return ids
}

func serviceIDs(items []domain.CreateOrderItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if seen[item.ServiceID] {
			continue
		}
		seen[item.ServiceID] = true
		ids = append(ids, item.ServiceID)
	}
	return ids
}

func scanSummaries(rows *sql.Rows) ([]domain.OrderSummary, error) {
	result := make([]domain.OrderSummary, 0)
	for rows.Next() {
		var summary domain.OrderSummary
		if err := rows.Scan(
			&summary.ID, &summary.ResellerID, &summary.CustomerID,
			&summary.StatusID, &summary.StatusName, &summary.ItemCount,
			&summary.TotalCost, &summary.TotalPrice, &summary.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order summaries: %w", err)
	}

	return result, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
