package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"logotherapy-booking/internal/auth"
	"logotherapy-booking/internal/booking"
	"logotherapy-booking/internal/config"
	"logotherapy-booking/internal/content"
	gweb "logotherapy-booking/internal/grpcweb"
	"logotherapy-booking/internal/handler"
	"logotherapy-booking/internal/kv"
	"logotherapy-booking/internal/logging"
	"logotherapy-booking/internal/metrics"
	mw "logotherapy-booking/internal/middleware"
	"logotherapy-booking/internal/rpc"
	"logotherapy-booking/internal/session"
	"logotherapy-booking/internal/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	backend, ping, closeBackend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBackend()

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	hasher, err := auth.NewHasher(cfg.PasswordHasher)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	st := store.New(backend, log)
	sess := session.NewManager(st)
	if u, err := sess.Init(ctx); err != nil {
		return fmt.Errorf("session: %w", err)
	} else if u != nil {
		log.Info("restored session", "email", u.Email)
	}
	defer sess.Close()

	authSvc := auth.NewService(st, sess, hasher, log, rec)
	eng := booking.NewEngine(st, sess,
		booking.WithLocation(loc),
		booking.WithLogger(log),
		booking.WithMetrics(rec),
	)
	prov, err := content.NewProvider(backend,
		content.WithQuoteURL(cfg.QuoteURL),
		content.WithHTTPClient(&http.Client{Timeout: cfg.QuoteTimeout}),
		content.WithLimiter(rate.NewLimiter(rate.Every(time.Second), 3)),
		content.WithLogger(log),
		content.WithMetrics(rec),
	)
	if err != nil {
		return err
	}
	h := handler.New(authSvc, eng, prov, sess, cfg.JWTSecret, log)

	// grpc server
	rl := mw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Close()
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			mw.RateLimit(rl),
			mw.Auth(cfg.JWTSecret, sess),
		),
	)
	rpc.RegisterBookingServiceServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	go func() {
		log.Info("grpc listening", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			log.Error("grpc", "error", err)
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, log)
	if err != nil {
		return err
	}
	defer bridge.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           newRouter(bridge.Handler(), reg, ping),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("grpc-web listening", "port", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http", "error", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	srv.GracefulStop()
	return nil
}

// newRouter mounts the grpc-web bridge next to the operational endpoints.
// RemoteAddr is left as the TCP peer; client headers never pick the
// rate-limit key.
func newRouter(bridge http.Handler, g prometheus.Gatherer, ping func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler(g))
	r.Handle("/"+rpc.ServiceName+"/*", bridge)
	return r
}

// openBackend selects the kv store named by STORE_BACKEND.
func openBackend(ctx context.Context, cfg config.Config, log *slog.Logger) (kv.Store, func(context.Context) error, func(), error) {
	switch cfg.StoreBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info("connected to redis", "addr", cfg.RedisAddr)
		ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return kv.NewRedis(client, cfg.RedisPrefix), ping, func() { client.Close() }, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("db ping: %w", err)
		}
		pg := kv.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("connected to postgres")
		return pg, pool.Ping, pool.Close, nil
	}

	mem := kv.NewMemory()
	log.Warn("using in-memory store; data is lost on restart")
	return mem, func(context.Context) error { return nil }, mem.Close, nil
}
