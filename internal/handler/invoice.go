package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"garagebook-api/internal/service"
	"garagebook-api/pkg/apierror"
	"garagebook-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// InvoiceHandler handles invoice-related HTTP requests.
type InvoiceHandler struct {
	store *service.Store
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(store *service.Store) *InvoiceHandler {
	return &InvoiceHandler{store: store}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft service.InvoiceDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	inv, err := h.store.AddInvoice(r.Context(), draft)
	if err != nil {
		if errors.Is(err, service.ErrEmptyInvoice) {
			response.Error(w, apierror.BadRequest("invoice has no billable items"))
			return
		}
		response.Error(w, apierror.InternalError("failed to create invoice"))
		return
	}

	response.Created(w, inv)
}

// List handles GET /api/v1/invoices?q=term
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.SearchInvoices(r.URL.Query().Get("q")))
}

// NextNumber handles GET /api/v1/invoices/next-number. Preview only;
// nothing is allocated.
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"invoiceNumber": h.store.NextInvoiceNumber()})
}

// Get handles GET /api/v1/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inv, err := h.store.GetInvoiceByID(id)
	if err != nil {
		response.Error(w, apierror.NotFound("invoice not found"))
		return
	}
	response.OK(w, inv)
}

// Delete handles DELETE /api/v1/invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteInvoice(r.Context(), chi.URLParam(r, "id"))
	response.NoContent(w)
}
