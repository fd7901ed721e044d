package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kkkkikiki/lukitas/internal/backend"
	"github.com/kkkkikiki/lukitas/internal/backend/rest"
	"github.com/kkkkikiki/lukitas/internal/config"
	"github.com/kkkkikiki/lukitas/internal/database"
	"github.com/kkkkikiki/lukitas/internal/logging"
	"github.com/kkkkikiki/lukitas/internal/repository"
	"github.com/kkkkikiki/lukitas/internal/service"
	"github.com/kkkkikiki/lukitas/internal/web"
)

// publicEnvAliases maps the frontend-style variable names onto ours.
var publicEnvAliases = map[string]string{
	"NEXT_PUBLIC_SUPABASE_URL":      "SUPABASE_URL",
	"NEXT_PUBLIC_SUPABASE_ANON_KEY": "SUPABASE_ANON_KEY",
}

func main() {
	ctx := context.Background()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env: %v", err)
	}
	for from, to := range publicEnvAliases {
		if _, ok := os.LookupEnv(to); !ok {
			if v, ok := os.LookupEnv(from); ok {
				os.Setenv(to, v)
			}
		}
	}

	// Load configuration from environment variables
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.App)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting lukitas admin",
		zap.String("backend", cfg.App.BackendDriver),
		zap.Int64("owner_user_id", cfg.App.OwnerUserID),
	)

	client, closeBackend, err := newBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up backend", zap.Error(err))
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logger.Warn("error closing backend", zap.Error(err))
		}
	}()

	dashboard := service.NewDashboardService(backend.Instrument(client), cfg.App.OwnerUserID, logger)

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddr(),
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
		// Use h2c so we can serve HTTP/2 without TLS
		Handler: h2c.NewHandler(web.NewHandler(dashboard, logger), &http2.Server{}),
	}

	// Start server in goroutine
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited gracefully")
}

// newBackend builds the configured data backend and a func releasing it.
func newBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (backend.Client, func() error, error) {
	switch cfg.App.BackendDriver {
	case config.DriverPostgres:
		db, err := database.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewStore(db.Postgres), db.Close, nil
	case config.DriverREST:
		client, err := rest.New(cfg.Supabase.URL, cfg.Supabase.AnonKey,
			rest.WithHTTPClient(&http.Client{Timeout: cfg.Supabase.RequestTimeout()}),
			rest.WithRateLimit(cfg.Supabase.RateLimit),
		)
		if err != nil {
			return nil, nil, err
		}
		return client, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend driver %q", cfg.App.BackendDriver)
	}
}
