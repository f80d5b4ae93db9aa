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

	"restorder/internal/config"
	"restorder/internal/database"
	"restorder/internal/logger"
	"restorder/internal/messaging"
	"restorder/internal/services/catalog"
	"restorder/internal/services/employee"
	"restorder/internal/services/kitchen"
	"restorder/internal/services/order"
	"restorder/internal/session"
)

func main() {
	var (
		mode       = flag.String("mode", "server", "Run mode (server, kitchen-display)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count for kitchen-display")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "server":
		if err := runServer(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "kitchen-display":
		if err := runKitchenDisplay(ctx, cfg, log, *prefetch); err != nil && ctx.Err() == nil {
			log.Error("service_failed", "Kitchen display failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runServer runs the ordering HTTP server.
func runServer(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Messaging is optional; order events are skipped without a broker.
	var publisher order.Publisher
	if cfg.MessagingEnabled() {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		publisher = messaging.NewPublisher(conn, log)
	}

	sessions := session.NewStore(time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute)
	defer sessions.Close()

	catalogService := catalog.NewService(catalog.NewRepository(db), log)
	orderService := order.NewService(order.NewRepository(db), publisher, log)
	employeeService := employee.NewService(employee.NewRepository(db), log)

	mux := http.NewServeMux()
	order.NewHandler(catalogService, orderService, sessions, log).Register(mux)
	employee.NewHandler(employeeService, orderService, sessions, log).Register(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: withLogging(mux, log),
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("Ordering service listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runKitchenDisplay consumes order-created events and prints tickets.
func runKitchenDisplay(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	if !cfg.MessagingEnabled() {
		return fmt.Errorf("kitchen-display mode requires a rabbitmq host in config")
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.KitchenQueue, "kitchen-display", prefetch)
	display := kitchen.NewDisplay(consumer, log)

	return display.Start(ctx)
}

// withLogging logs every request with its duration and status code.
func withLogging(next http.Handler, log *logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
				"remote_addr": r.RemoteAddr,
			})
	})
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
