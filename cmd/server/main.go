package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biteflow/restaurant-service/internal/cache"
	"github.com/biteflow/restaurant-service/internal/config"
	"github.com/biteflow/restaurant-service/internal/db"
	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/events"
	"github.com/biteflow/restaurant-service/internal/router"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/biteflow/restaurant-service/internal/storage"
	"github.com/biteflow/restaurant-service/internal/websockets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run(ctx)

	publisher := events.Multi{hub}
	if len(cfg.Kafka.Brokers) > 0 {
		writer := events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer writer.Close()
		publisher = append(publisher, events.NewKafkaPublisher(writer))
		log.Printf("Publishing events to Kafka topic %s", cfg.Kafka.Topic)
	}

	var catalogCache service.CatalogCache = cache.Nop{}
	if cfg.Redis.Address != "" {
		rdb, err := cache.ConnectRedis(cfg.Redis)
		if err != nil {
			log.Printf("Catalog cache disabled: %v", err)
		} else {
			defer rdb.Close()
			catalogCache = cache.NewCatalogCache(rdb, time.Duration(cfg.Redis.TTL)*time.Second)
		}
	}

	var images service.ImageStore = storage.Disabled{}
	if store, err := storage.NewCloudinaryStoreFromConfig(cfg.Cloudinary); err != nil {
		log.Printf("Image uploads disabled: %v", err)
	} else {
		images = store
	}

	repos := repository.NewFactory(database.DB)
	services := router.Services{
		Auth:    service.NewAuthService(repos.User, cfg.JWT, cfg.Admin),
		Menu:    service.NewMenuService(repos.Category, repos.Menu, images, catalogCache, publisher),
		Cart:    service.NewCartService(repos.Cart, repos.Menu),
		Order:   service.NewOrderService(repos.Order, publisher),
		Booking: service.NewBookingService(repos.Booking, publisher, cfg.Server.PublicURL),
		Upload:  service.NewUploadService(images),
	}

	// Initialize router
	r := router.New(cfg.Server, services, hub, database)

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Closes the live feed connections
	stop()

	log.Println("Server exited properly")
}
