package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Get("/api/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/sync", h.sync)
		r.Get("/sync/time", h.getServerTime)

		r.Get("/transactions", h.listTransactions)
		r.Post("/transactions", h.createTransaction)
		r.Post("/transactions/transfer", h.createTransfer)
		r.Get("/transactions/{id}", h.getTransaction)
		r.Put("/transactions/{id}", h.updateTransaction)
		r.Delete("/transactions/{id}", h.deleteTransaction)

		r.Get("/reports/monthly", h.getMonthlySummary)
		r.Get("/reports/categories", h.getCategoryBreakdown)
		r.Get("/reports/budget-vs-actual", h.getBudgetVsActual)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
