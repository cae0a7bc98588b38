package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"flipdeck-api/internal/cache"
	"flipdeck-api/internal/config"
	"flipdeck-api/internal/handler"
	"flipdeck-api/internal/persist"
	"flipdeck-api/internal/router"
	"flipdeck-api/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting FlipDeck API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize snapshot store based on config
	var (
		snapStore persist.SnapshotStore
		err       error
	)
	switch cfg.Store.Type {
	case "postgres", "postgresql":
		snapStore, err = persist.NewPostgresSnapshotStore(cfg.Store.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		log.Println("PostgreSQL snapshot store initialized")
	case "mysql":
		snapStore, err = persist.NewMySQLSnapshotStore(cfg.Store.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		log.Println("MySQL snapshot store initialized")
	case "file", "json":
		snapStore, err = persist.NewFileSnapshotStore(cfg.Store.FilePath)
		if err != nil {
			log.Fatalf("Failed to initialize file store: %v", err)
		}
		log.Println("File snapshot store initialized")
	default: // sqlite
		if dir := filepath.Dir(cfg.Store.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("Failed to create data directory: %v", err)
			}
		}
		snapStore, err = persist.NewSQLiteSnapshotStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		log.Println("SQLite snapshot store initialized")
	}
	defer snapStore.Close()

	// Open the record store with the saved state
	recordStore := store.Open(context.Background(), snapStore)

	// Initialize cache (memory default, redis optional with fallback)
	var c cache.Cache
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, using memory cache: %v", err)
		} else {
			c = redisCache
		}
	}
	if c == nil {
		c = cache.NewMemoryCache()
		log.Println("Memory cache initialized")
	}
	defer c.Close()

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Name, cfg.App.Version)
	itemHandler := handler.NewItemHandler(recordStore)
	buildHandler := handler.NewBuildHandler(recordStore)
	saleHandler := handler.NewSaleHandler(recordStore)
	portfolioHandler := handler.NewPortfolioHandler(recordStore, c, cfg.Cache.TTL)
	dataHandler := handler.NewDataHandler(recordStore)

	// Every mutation drops the cached dashboard figures
	recordStore.SetOnMutate(portfolioHandler.Invalidate)

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		ItemHandler:      itemHandler,
		BuildHandler:     buildHandler,
		SaleHandler:      saleHandler,
		PortfolioHandler: portfolioHandler,
		DataHandler:      dataHandler,
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
