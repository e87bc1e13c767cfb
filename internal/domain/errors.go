package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OrderNotFoundError возвращается, когда заказ с указанным ID отсутствует.
type OrderNotFoundError struct {
	OrderID uuid.UUID
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("Order '%s' not found", e.OrderID)
}

// StatusNotFoundError возвращается, когда статус с указанным именем
// отсутствует в справочнике.
type StatusNotFoundError struct {
	Status string
}

func (e *StatusNotFoundError) Error() string {
	return fmt.Sprintf("Status '%s' not found", e.Status)
}

// ProductNotFoundError собирает все отсутствующие товары запроса в одну ошибку.
type ProductNotFoundError struct {
	ProductIDs []uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Products '%s' not found", joinIDs(e.ProductIDs))
}

// ServiceNotFoundError собирает все отсутствующие услуги запроса в одну ошибку.
type ServiceNotFoundError struct {
	ServiceIDs []uuid.UUID
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("Services '%s' not found", joinIDs(e.ServiceIDs))
}

// IsNotFound сообщает, является ли ошибка одной из доменных "not found".
// Сервисный слой переводит такие ошибки в Result-отказ, всё остальное
// считается инфраструктурным сбоем и пробрасывается дальше.
func IsNotFound(err error) bool {
	var orderErr *OrderNotFoundError
	var statusErr *StatusNotFoundError
	var productErr *ProductNotFoundError
	var serviceErr *ServiceNotFoundError

	return errors.As(err, &orderErr) ||
		errors.As(err, &statusErr) ||
		errors.As(err, &productErr) ||
		errors.As(err, &serviceErr)
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}
