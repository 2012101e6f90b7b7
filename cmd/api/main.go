package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"prizehouse-api/internal/config"
	"prizehouse-api/internal/handler"
	"prizehouse-api/internal/middleware"
	"prizehouse-api/internal/repository"
	"prizehouse-api/internal/router"
	"prizehouse-api/internal/service"
	"prizehouse-api/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Prize House API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	if cfg.App.AdminPassword == "" {
		log.Println("Warning: ADMIN_PASSWORD is not set, admin routes will reject all requests")
	}

	// Initialize snapshot repository based on config
	var repo repository.SnapshotRepository
	switch cfg.Store.Type {
	case "redis":
		redisRepo, err := repository.NewRedisSnapshotRepository(repository.RedisConfig{
			Addr:     cfg.Store.RedisAddress(),
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		}, cfg.Store.StorageKey)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		repo = redisRepo
		log.Println("Redis snapshot repository initialized")
	case "mysql":
		mysqlRepo, err := repository.NewMySQLSnapshotRepository(cfg.Store.MySQLDSN(), cfg.Store.StorageKey)
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		repo = mysqlRepo
		log.Println("MySQL snapshot repository initialized")
	case "memory":
		repo = repository.NewMemorySnapshotRepository()
		log.Println("Memory snapshot repository initialized (nothing will persist)")
	default: // sqlite
		if err := os.MkdirAll("./data", 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		sqliteRepo, err := repository.NewSQLiteSnapshotRepository(cfg.Store.Path, cfg.Store.StorageKey)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		repo = sqliteRepo
		log.Println("SQLite snapshot repository initialized")
	}
	defer repo.Close()

	// Load the entity store. Unreadable data is not fatal: the kiosk
	// restarts with an empty roster rather than refusing to boot.
	entityStore := store.New(repo)
	if err := entityStore.Load(context.Background()); err != nil {
		if errors.Is(err, repository.ErrParse) {
			log.Printf("Warning: stored snapshot was unreadable, starting empty: %v", err)
		} else {
			log.Printf("Warning: snapshot load failed, starting empty: %v", err)
		}
	}
	snap := entityStore.Snapshot()
	log.Printf("Snapshot loaded: %d students, %d prizes, %d log entries",
		len(snap.Students), len(snap.Prizes), len(snap.Logs))

	// Initialize services
	sessionService := service.NewSessionService(entityStore)
	exchangeService := service.NewExchangeService(entityStore, service.LogFeedbackSink{})
	catalogService := service.NewCatalogService(entityStore)

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version)
	sessionHandler := handler.NewSessionHandler(sessionService, entityStore)
	storefrontHandler := handler.NewStorefrontHandler(entityStore, sessionService, exchangeService)
	adminHandler := handler.NewAdminHandler(catalogService, entityStore, cfg.App.AdminPassword, cfg.Store.Type)

	adminAuth := middleware.NewAdminAuth(cfg.App.AdminPassword)

	// Create router
	r := router.New(router.Config{
		Handler:           healthHandler,
		SessionHandler:    sessionHandler,
		StorefrontHandler: storefrontHandler,
		AdminHandler:      adminHandler,
		AdminAuth:         adminAuth,
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
