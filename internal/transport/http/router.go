package httpapi

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter собирает маршруты order API поверх chi.
// Служебные endpoint'ы (/metrics, /healthz) живут на отдельном ops-сервере.
func NewRouter(h *OrderHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/filter", h.FilterOrders)
		r.Get("/profit/monthly", h.MonthlyProfit)
		r.Get("/{orderID}", h.GetOrderByID)
		r.Put("/{orderID}/status", h.UpdateStatus)
	})

	return r
}
