package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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
	"golang.org/x/sync/errgroup"

	"github.com/rai-ahmadfraz/split-it-api/internal/auth"
	"github.com/rai-ahmadfraz/split-it-api/internal/cache"
	"github.com/rai-ahmadfraz/split-it-api/internal/config"
	"github.com/rai-ahmadfraz/split-it-api/internal/events"
	"github.com/rai-ahmadfraz/split-it-api/internal/ledger"
	"github.com/rai-ahmadfraz/split-it-api/internal/metrics"
	"github.com/rai-ahmadfraz/split-it-api/internal/middleware"
	"github.com/rai-ahmadfraz/split-it-api/internal/service"
	"github.com/rai-ahmadfraz/split-it-api/internal/storage"
	"github.com/rai-ahmadfraz/split-it-api/internal/storage/sqlite"
	"github.com/rai-ahmadfraz/split-it-api/pkg/api"
	"github.com/rai-ahmadfraz/split-it-api/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts := []ledger.Option{
		ledger.WithMetrics(m),
		ledger.WithBalancedEqualSplit(cfg.BalancedEqualSplit),
	}

	if cfg.RedisAddr != "" {
		balanceCache, err := cache.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.BalanceCacheTTL)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer balanceCache.Close()
		opts = append(opts, ledger.WithCache(balanceCache))
		slog.Info("Balance cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.BalanceCacheTTL)
	}

	if cfg.AMQPURL != "" {
		publisher, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		defer publisher.Close()
		opts = append(opts, ledger.WithPublisher(publisher))
		slog.Info("Expense events enabled", "exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager, api.PublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, slog.Default())
	expenseSvc := service.NewExpenseService(ledger.New(store, opts...))

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(authSvc, interceptors))
	mux.Handle(api.NewExpenseServiceHandler(expenseSvc, interceptors))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("GET /healthz", healthHandler(store))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// healthHandler reports 200 while the store answers pings.
func healthHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Warn("Health check failed", "error", err)
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "ok")
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
