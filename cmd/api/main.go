package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garagebook-api/internal/config"
	"garagebook-api/internal/handler"
	"garagebook-api/internal/middleware"
	"garagebook-api/internal/router"
	"garagebook-api/internal/service"
	"garagebook-api/internal/storage"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting GarageBook API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize storage backend based on config
	var store storage.Store
	switch cfg.Storage.Type {
	case "sqlite":
		sqliteStore, err := storage.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		store = sqliteStore
		log.Println("SQLite storage initialized")
	case "mysql":
		db, err := sql.Open("mysql", cfg.Storage.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to open MySQL: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping MySQL: %v", err)
		}
		mysqlStore, err := storage.NewMySQLStore(db)
		if err != nil {
			log.Fatalf("Failed to initialize MySQL storage: %v", err)
		}
		store = mysqlStore
		log.Println("MySQL storage initialized")
	case "redis":
		redisStore, err := storage.NewRedisStore(storage.RedisConfig{
			Addr:      cfg.Storage.RedisAddress(),
			Password:  cfg.Storage.RedisPassword,
			DB:        cfg.Storage.RedisDB,
			KeyPrefix: cfg.Storage.RedisPrefix,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Redis storage: %v", err)
		}
		store = redisStore
		log.Println("Redis storage initialized")
	default: // file
		fileStore, err := storage.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file storage: %v", err)
		}
		store = fileStore
		log.Println("File storage initialized")
	}
	defer store.Close()

	// Initialize the domain store
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	domain, err := service.New(loadCtx, service.Config{
		Storage:      store,
		NumberPrefix: cfg.Invoice.NumberPrefix,
		NumberWidth:  cfg.Invoice.NumberWidth,
		Seed:         service.DefaultInventory,
	})
	cancelLoad()
	if err != nil {
		log.Fatalf("Failed to initialize domain store: %v", err)
	}

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version)
	authHandler := handler.NewAuthHandler(domain)
	invoiceHandler := handler.NewInvoiceHandler(domain)
	inventoryHandler := handler.NewInventoryHandler(domain)
	backupHandler := handler.NewBackupHandler(domain)
	dashboardHandler := handler.NewDashboardHandler(domain)

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		AuthHandler:      authHandler,
		InvoiceHandler:   invoiceHandler,
		InventoryHandler: inventoryHandler,
		BackupHandler:    backupHandler,
		DashboardHandler: dashboardHandler,
		AuthMiddleware:   middleware.NewAuthMiddleware(domain),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
