package handler

import (
	"errors"
	"io"
	"net/http"

	"garagebook-api/internal/service"
	"garagebook-api/pkg/apierror"
	"garagebook-api/pkg/response"
)

// BackupHandler handles export and import of the full data snapshot.
type BackupHandler struct {
	store *service.Store
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(store *service.Store) *BackupHandler {
	return &BackupHandler{store: store}
}

// Export handles GET /api/v1/backup/export. The body is the backup
// document itself, not the response envelope, so the file can be
// re-imported byte for byte.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.ExportSnapshot()
	if err != nil {
		response.Error(w, apierror.InternalError("failed to export snapshot"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="garagebook-backup.json"`)
	w.Write(data)
}

// Import handles POST /api/v1/backup/import. A successful import
// replaces every collection and ends the active session; the caller
// must log in again.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, apierror.BadRequest("failed to read request body"))
		return
	}
	defer r.Body.Close()

	if err := h.store.ImportSnapshot(r.Context(), data); err != nil {
		if errors.Is(err, service.ErrMalformedSnapshot) {
			response.Error(w, apierror.BadRequest(err.Error()))
			return
		}
		response.Error(w, apierror.InternalError("failed to import snapshot"))
		return
	}

	response.OK(w, map[string]string{"status": "imported"})
}
