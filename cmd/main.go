package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JordaoGustavo/Whatsfood/internal/cart"
	"github.com/JordaoGustavo/Whatsfood/internal/config"
	"github.com/JordaoGustavo/Whatsfood/internal/database"
	"github.com/JordaoGustavo/Whatsfood/internal/logger"
	"github.com/JordaoGustavo/Whatsfood/internal/menu"
	"github.com/JordaoGustavo/Whatsfood/internal/messaging"
	"github.com/JordaoGustavo/Whatsfood/internal/metrics"
	"github.com/JordaoGustavo/Whatsfood/internal/services/storefront"
)

const defaultSessionTTL = 30 * time.Minute

func main() {
	// Parse command line flags
	var (
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		cartStore  = flag.String("cart-store", "", "Session store backend: memory or redis (overrides config)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *port == 0 {
		*port = cfg.Server.Port
	}
	if *port == 0 {
		*port = 3000
	}
	if *cartStore == "" {
		*cartStore = cfg.Cart.Store
	}
	if *cartStore == "" {
		*cartStore = "memory"
	}

	// Create logger
	log := logger.New("storefront")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting storefront", requestID, map[string]interface{}{
		"port":       *port,
		"cart_store": *cartStore,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := runStorefront(ctx, cfg, log, *port, *cartStore); err != nil {
		log.Error("service_failed", "Storefront failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runStorefront wires the catalog, session store and publisher, then serves HTTP
func runStorefront(ctx context.Context, cfg *config.Config, log *logger.Logger, port int, cartStore string) error {
	requestID := logger.GenerateRequestID()

	// Catalog: PostgreSQL when configured, built-in menu otherwise
	var catalog menu.Repository
	if cfg.Database.Host != "" {
		db, err := database.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

		if err := db.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		catalog = menu.NewPostgresRepository(db)
	} else {
		log.Info("catalog_static", "No database configured, serving built-in menu", requestID, nil)
		catalog = menu.NewStaticRepository(menu.DefaultCatalog())
	}

	// Session store
	var sessions cart.Store
	switch cartStore {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		ttl := defaultSessionTTL
		if cfg.Redis.TTLSeconds > 0 {
			ttl = time.Duration(cfg.Redis.TTLSeconds) * time.Second
		}
		sessions = cart.NewRedisStore(client, ttl)
		log.Info("redis_connected", "Using Redis session store", requestID, map[string]interface{}{
			"addr": cfg.RedisAddr(),
			"ttl":  ttl.String(),
		})
	case "memory":
		sessions = cart.NewMemoryStore()
	default:
		return fmt.Errorf("unknown cart store: %s", cartStore)
	}

	// Composed-order events: optional, the storefront works without a broker
	var publisher storefront.OrderPublisher
	if cfg.RabbitMQ.Host != "" {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		publisher = messaging.NewPublisher(conn, log)
	} else {
		log.Info("messaging_disabled", "No RabbitMQ configured, order events disabled", requestID, nil)
	}

	// Initialize service and handler
	service, err := storefront.NewService(ctx, catalog, sessions, publisher, metrics.New(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize storefront service: %w", err)
	}
	handler := storefront.NewHandler(service, log)

	// Setup HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.SetupRoutes(),
	}

	// Start HTTP server in goroutine
	go func() {
		log.Info("service_started", fmt.Sprintf("Storefront started on port %d", port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
