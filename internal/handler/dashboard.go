package handler

import (
	"net/http"
	"time"

	"garagebook-api/internal/service"
	"garagebook-api/pkg/response"
)

// DashboardHandler serves the read-only dashboard aggregates.
type DashboardHandler struct {
	store *service.Store
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store *service.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Get handles GET /api/v1/dashboard?date=YYYY-MM-DD (defaults to today).
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	response.OK(w, map[string]interface{}{
		"summary":  h.store.DailySummary(date),
		"lowStock": h.store.LowStockItems(),
	})
}
