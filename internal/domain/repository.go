package domain

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository описывает требования к хранилищу заказов.
// Вся денежная агрегация (итоги заказов, помесячная прибыль) — обязанность
// реализации; ядро не держит состояние в памяти между вызовами.
type OrderRepository interface {
	// ListOrders возвращает проекции всех заказов, отсортированные по дате
	// создания по убыванию. Заказ без позиций даёт нулевые итоги.
	ListOrders(ctx context.Context) ([]OrderSummary, error)
	// GetOrderByID возвращает деталь заказа или nil, если заказа нет.
	// Отсутствие заказа — валидный исход, а не ошибка.
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error)
	// ListByStatus возвращает заказы с указанным именем статуса.
	// Имя очищается от пробелов по краям и сравнивается с учётом регистра;
	// отсутствие совпадений даёт пустой срез.
	ListByStatus(ctx context.Context, status string) ([]OrderSummary, error)
	// UpdateStatus переводит заказ в статус с указанным именем.
	// Существование статуса проверяется раньше существования заказа.
	// Возвращает *StatusNotFoundError или *OrderNotFoundError.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
	// CreateOrder создаёт заказ со статусом "Created" и возвращает свежую
	// деталь. Отсутствующие товары и услуги собираются целиком в
	// *ProductNotFoundError / *ServiceNotFoundError; товары проверяются первыми.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderDetail, error)
	// MonthlyProfit агрегирует завершённые заказы по (год, месяц) даты
	// создания; результат упорядочен по году и месяцу по убыванию.
	MonthlyProfit(ctx context.Context) ([]MonthlyProfit, error)
}
