package router

import (
	"net/http"

	"garagebook-api/internal/handler"
	"garagebook-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	AuthHandler      *handler.AuthHandler
	InvoiceHandler   *handler.InvoiceHandler
	InventoryHandler *handler.InventoryHandler
	BackupHandler    *handler.BackupHandler
	DashboardHandler *handler.DashboardHandler
	AuthMiddleware   func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no session required)
	r.Get("/api/status", cfg.Handler.Status)
	r.Get("/api/v1/health", cfg.Handler.Health)
	r.Post("/api/v1/auth/register", cfg.AuthHandler.Register)
	r.Post("/api/v1/auth/login", cfg.AuthHandler.Login)

	// SESSION-GATED routes
	r.Group(func(r chi.Router) {
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		r.Post("/api/v1/auth/logout", cfg.AuthHandler.Logout)
		r.Get("/api/v1/auth/me", cfg.AuthHandler.Me)

		r.Route("/api/v1/invoices", func(r chi.Router) {
			r.Get("/", cfg.InvoiceHandler.List)
			r.Post("/", cfg.InvoiceHandler.Create)
			r.Get("/next-number", cfg.InvoiceHandler.NextNumber)
			r.Get("/{id}", cfg.InvoiceHandler.Get)
			r.Delete("/{id}", cfg.InvoiceHandler.Delete)
		})

		r.Route("/api/v1/inventory", func(r chi.Router) {
			r.Get("/", cfg.InventoryHandler.List)
			r.Post("/", cfg.InventoryHandler.Create)
			r.Get("/low-stock", cfg.InventoryHandler.LowStock)
			r.Put("/{id}", cfg.InventoryHandler.Update)
			r.Delete("/{id}", cfg.InventoryHandler.Delete)
		})

		r.Route("/api/v1/backup", func(r chi.Router) {
			r.Get("/export", cfg.BackupHandler.Export)
			r.Post("/import", cfg.BackupHandler.Import)
		})

		r.Get("/api/v1/dashboard", cfg.DashboardHandler.Get)
	})

	return r
}
