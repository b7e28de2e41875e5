package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/iouledger/internal/audit"
	"github.com/mmynk/iouledger/internal/config"
	"github.com/mmynk/iouledger/internal/ledger"
	"github.com/mmynk/iouledger/internal/middleware"
	"github.com/mmynk/iouledger/internal/service"
	"github.com/mmynk/iouledger/internal/storage/sqlite"
	"github.com/mmynk/iouledger/pkg/api"
	"github.com/mmynk/iouledger/pkg/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("Server failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run serves the ledger until ctx is cancelled or the listener fails.
// Resources opened here are released before it returns.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// Initial ledger state
	l := ledger.New()
	if cfg.SeedPath != "" {
		var err error
		l, err = service.LoadSeed(cfg.SeedPath)
		if err != nil {
			return fmt.Errorf("failed to load seed %s: %w", cfg.SeedPath, err)
		}
		slog.Info("Ledger seeded", "path", cfg.SeedPath, "parties", l.Len())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []audit.Option{audit.WithLogger(logger)}
	if cfg.Metrics {
		opts = append(opts, audit.WithMetrics(audit.NewMetrics(reg)))
	}

	// Initialize SQLite journal
	if cfg.JournalPath != "" {
		journal, err := sqlite.New(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("failed to initialize journal: %w", err)
		}
		defer func() {
			if err := journal.Close(); err != nil {
				slog.Error("Failed to close journal", "error", err)
			}
		}()
		opts = append(opts, audit.WithJournal(journal))
		slog.Info("Journal initialized", "database", cfg.JournalPath)
	}

	rec := audit.New(l, opts...)

	mux := http.NewServeMux()

	// Register Connect service
	interceptors := []connect.Interceptor{middleware.LoggingInterceptor(logger)}
	if cfg.Metrics {
		interceptors = append(interceptors, middleware.MetricsInterceptor(reg))
	}
	ledgerPath, ledgerHandler := api.NewLedgerServiceHandler(
		service.NewLedgerService(rec),
		connect.WithInterceptors(interceptors...),
	)
	mux.Handle(ledgerPath, ledgerHandler)

	// Plain JSON routes
	rest := service.NewRESTHandler(rec)
	mux.Handle("/users", rest)
	mux.Handle("/add", rest)
	mux.Handle("/iou", rest)

	if cfg.Metrics {
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	server := &http.Server{
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}

	slog.Info("Ledger server starting", "address", ln.Addr().String(), "metrics", cfg.Metrics)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Ledger server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
