package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/metrics"
	"github.com/vladislavdragonenkov/reseller-orders/internal/service"
)

// OrderHandler — тонкий HTTP-адаптер над OrderService: разбор запросов,
// маппинг Result-отказов в 4xx и отсутствующих сущностей в 404.
// Бизнес-логики здесь нет.
type OrderHandler struct {
	svc     *service.OrderService
	metrics *metrics.OrderMetrics
	logger  *log.Entry
}

// NewOrderHandler создаёт обработчик HTTP-запросов заказов.
func NewOrderHandler(svc *service.OrderService, m *metrics.OrderMetrics, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	return &OrderHandler{svc: svc, metrics: m, logger: logger}
}

type errorResponse struct {
	Message string `json:"message"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// ListOrders обрабатывает GET /orders.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	defer h.observe("list_orders", time.Now())

	orders, err := h.svc.GetOrders(r.Context())
	if err != nil {
		h.serverError(w, err, "failed to list orders")
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// GetOrderByID обрабатывает GET /orders/{orderID}.
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	defer h.observe("get_order", time.Now())

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	detail, err := h.svc.GetOrderByID(r.Context(), orderID)
	if err != nil {
		h.serverError(w, err, "failed to get order")
		return
	}
	if detail == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.writeJSON(w, http.StatusOK, detail)
}

// FilterOrders обрабатывает GET /orders/filter?status=...
func (h *OrderHandler) FilterOrders(w http.ResponseWriter, r *http.Request) {
	defer h.observe("filter_orders", time.Now())

	result, err := h.svc.GetByStatus(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.serverError(w, err, "failed to filter orders")
		return
	}
	if !result.IsSuccess() {
		h.writeError(w, http.StatusBadRequest, result.ErrorMessage())
		return
	}

	h.writeJSON(w, http.StatusOK, result.Value())
}

// CreateOrder обрабатывает POST /orders.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	defer h.observe("create_order", time.Now())

	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateOrder(r.Context(), req)
	if err != nil {
		h.serverError(w, err, "failed to create order")
		return
	}
	if !result.IsSuccess() {
		h.writeError(w, http.StatusBadRequest, result.ErrorMessage())
		return
	}

	h.writeJSON(w, http.StatusCreated, result.Value())
}

// UpdateStatus обрабатывает PUT /orders/{orderID}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	defer h.observe("update_status", time.Now())

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		h.serverError(w, err, "failed to update order status")
		return
	}
	if !result.IsSuccess() {
		h.writeError(w, http.StatusBadRequest, result.ErrorMessage())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MonthlyProfit обрабатывает GET /orders/profit/monthly.
func (h *OrderHandler) MonthlyProfit(w http.ResponseWriter, r *http.Request) {
	defer h.observe("monthly_profit", time.Now())

	result, err := h.svc.MonthlyProfit(r.Context())
	if err != nil {
		h.serverError(w, err, "failed to compute monthly profit")
		return
	}

	h.writeJSON(w, http.StatusOK, result.Value())
}

func (h *OrderHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.WithError(err).Warn("failed to encode response")
	}
}

func (h *OrderHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Message: message})
}

// serverError скрывает детали инфраструктурного сбоя от клиента.
func (h *OrderHandler) serverError(w http.ResponseWriter, err error, message string) {
	h.logger.WithError(err).Error(message)
	h.writeError(w, http.StatusInternalServerError, "internal server error")
}

func (h *OrderHandler) observe(operation string, start time.Time) {
	h.metrics.ObserveRequest(operation, time.Since(start))
}
