package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"garagebook-api/internal/handler"
	"garagebook-api/internal/middleware"
	"garagebook-api/internal/model"
	"garagebook-api/internal/router"
	"garagebook-api/internal/service"
	"garagebook-api/internal/storage"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	st, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	domain, err := service.New(context.Background(), service.Config{Storage: st})
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}

	return router.New(router.Config{
		Handler:          handler.New("test"),
		AuthHandler:      handler.NewAuthHandler(domain),
		InvoiceHandler:   handler.NewInvoiceHandler(domain),
		InventoryHandler: handler.NewInventoryHandler(domain),
		BackupHandler:    handler.NewBackupHandler(domain),
		DashboardHandler: handler.NewDashboardHandler(domain),
		AuthMiddleware:   middleware.NewAuthMiddleware(domain),
	})
}

func do(t *testing.T, api http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

func TestAPIFlow(t *testing.T) {
	api := newTestAPI(t)

	// Protected routes reject requests before login.
	if rec := do(t, api, http.MethodGet, "/api/v1/invoices", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("pre-login invoices: got %d, want 401", rec.Code)
	}

	if rec := do(t, api, http.MethodPost, "/api/v1/auth/register", `{"username":"asha","password":"pw"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register: got %d: %s", rec.Code, rec.Body)
	}
	if rec := do(t, api, http.MethodPost, "/api/v1/auth/register", `{"username":"asha","password":"pw"}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: got %d, want 409", rec.Code)
	}
	if rec := do(t, api, http.MethodPost, "/api/v1/auth/login", `{"username":"asha","password":"nope"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: got %d, want 401", rec.Code)
	}
	if rec := do(t, api, http.MethodPost, "/api/v1/auth/login", `{"username":"asha","password":"pw"}`); rec.Code != http.StatusOK {
		t.Fatalf("login: got %d: %s", rec.Code, rec.Body)
	}

	if rec := do(t, api, http.MethodGet, "/api/v1/invoices/next-number", ""); !strings.Contains(rec.Body.String(), "SJIV000001") {
		t.Fatalf("next-number: %d %s", rec.Code, rec.Body)
	}

	draft := `{"date":"2024-06-01","customerName":"Ravi","items":[{"description":"Alignment","qty":2,"rate":250}]}`
	rec := do(t, api, http.MethodPost, "/api/v1/invoices", draft)
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), "SJIV000001") {
		t.Fatalf("create invoice: %d %s", rec.Code, rec.Body)
	}

	if rec := do(t, api, http.MethodGet, "/api/v1/invoices?q=ravi", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Ravi") {
		t.Fatalf("search invoices: %d %s", rec.Code, rec.Body)
	}
	if rec := do(t, api, http.MethodGet, "/api/v1/invoices/no-such-id", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing invoice: got %d, want 404", rec.Code)
	}

	if rec := do(t, api, http.MethodGet, "/api/v1/dashboard?date=2024-06-01", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"sales":500`) {
		t.Fatalf("dashboard: %d %s", rec.Code, rec.Body)
	}

	// The export body is the backup document itself.
	rec = do(t, api, http.MethodGet, "/api/v1/backup/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export: got %d", rec.Code)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("export body: %v", err)
	}
	if len(snap.Users) != 1 || len(snap.Invoices) != 1 {
		t.Fatalf("unexpected snapshot: %d users, %d invoices", len(snap.Users), len(snap.Invoices))
	}

	if rec := do(t, api, http.MethodPost, "/api/v1/backup/import", `{"bad":true}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed import: got %d, want 400", rec.Code)
	}

	if rec := do(t, api, http.MethodPost, "/api/v1/auth/logout", ""); rec.Code != http.StatusOK {
		t.Fatalf("logout: got %d", rec.Code)
	}
	if rec := do(t, api, http.MethodGet, "/api/v1/invoices", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout invoices: got %d, want 401", rec.Code)
	}
}

func TestPublicEndpoints(t *testing.T) {
	api := newTestAPI(t)

	if rec := do(t, api, http.MethodGet, "/api/status", ""); rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if rec := do(t, api, http.MethodGet, "/api/v1/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: got %d", rec.Code)
	}
}
