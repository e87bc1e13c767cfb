package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusCreated — имя статуса, который получает каждый новый заказ.
// Статус обязан существовать в справочнике (заполняется seed-миграцией).
const StatusCreated = "Created"

// StatusCompleted — имя статуса завершённого заказа; только такие заказы
// участвуют в расчёте месячной прибыли.
const StatusCompleted = "Completed"

// Order — заказ клиента у реселлера. Позиции создаются вместе с заказом
// и после этого не изменяются.
type Order struct {
	ID         uuid.UUID
	ResellerID uuid.UUID
	CustomerID uuid.UUID
	StatusID   uuid.UUID
	CreatedAt  time.Time
	Items      []OrderItem
}

// OrderItem — одна позиция заказа. Живёт только внутри своего заказа.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	ServiceID uuid.UUID
	Quantity  int32
}

// OrderStatus — справочный статус заказа; ищется по уникальному имени.
type OrderStatus struct {
	ID   uuid.UUID
	Name string
}

// Product — справочный товар с закупочной и продажной ценой за единицу.
type Product struct {
	ID        uuid.UUID
	Name      string
	UnitCost  decimal.Decimal
	UnitPrice decimal.Decimal
	ServiceID uuid.UUID
}

// Service — справочная услуга, к которой относится товар.
type Service struct {
	ID   uuid.UUID
	Name string
}

// OrderSummary — проекция заказа для списков. Вычисляется при чтении,
// никогда не сохраняется.
type OrderSummary struct {
	ID         uuid.UUID       `json:"id"`
	ResellerID uuid.UUID       `json:"resellerId"`
	CustomerID uuid.UUID       `json:"customerId"`
	StatusID   uuid.UUID       `json:"statusId"`
	StatusName string          `json:"statusName"`
	ItemCount  int             `json:"itemCount"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdDate"`
}

// OrderDetail — полная проекция заказа с раскрытым списком позиций.
type OrderDetail struct {
	ID         uuid.UUID         `json:"id"`
	ResellerID uuid.UUID         `json:"resellerId"`
	CustomerID uuid.UUID         `json:"customerId"`
	StatusID   uuid.UUID         `json:"statusId"`
	StatusName string            `json:"statusName"`
	TotalCost  decimal.Decimal   `json:"totalCost"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	CreatedAt  time.Time         `json:"createdDate"`
	Items      []OrderDetailItem `json:"items"`
}

// OrderDetailItem — позиция в OrderDetail с именами товара/услуги
// и итогами по строке (unit × quantity).
type OrderDetailItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"orderId"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	ServiceID   uuid.UUID       `json:"serviceId"`
	ServiceName string          `json:"serviceName"`
	Quantity    int32           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// MonthlyProfit — агрегат прибыли за месяц по завершённым заказам.
type MonthlyProfit struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Profit     decimal.Decimal `json:"profit"`
	OrderCount int             `json:"orderCount"`
}

// CreateOrderRequest — входные данные для создания заказа.
type CreateOrderRequest struct {
	ResellerID uuid.UUID              `json:"resellerId"`
	CustomerID uuid.UUID              `json:"customerId"`
	Items      []CreateOrderItemInput `json:"items"`
}

// CreateOrderItemInput — позиция в запросе на создание заказа.
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"productId"`
	ServiceID uuid.UUID `json:"serviceId"`
	Quantity  int32     `json:"quantity"`
}
