package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"garagebook-api/internal/model"
	"garagebook-api/internal/service"
	"garagebook-api/pkg/apierror"
	"garagebook-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// InventoryHandler handles inventory-related HTTP requests.
type InventoryHandler struct {
	store *service.Store
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(store *service.Store) *InventoryHandler {
	return &InventoryHandler{store: store}
}

// Create handles POST /api/v1/inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item model.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if item.Name == "" {
		response.Error(w, apierror.BadRequest("name is required"))
		return
	}

	response.Created(w, h.store.AddInventoryItem(r.Context(), item))
}

// List handles GET /api/v1/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.ListInventory())
}

// LowStock handles GET /api/v1/inventory/low-stock
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.LowStockItems())
}

// Update handles PUT /api/v1/inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var item model.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	item.ID = chi.URLParam(r, "id")
	if err := h.store.UpdateInventoryItem(r.Context(), item); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(w, apierror.NotFound("inventory item not found"))
			return
		}
		response.Error(w, apierror.InternalError("failed to update inventory item"))
		return
	}
	response.OK(w, item)
}

// Delete handles DELETE /api/v1/inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteInventoryItem(r.Context(), chi.URLParam(r, "id"))
	response.NoContent(w)
}
