package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bgcafe/cafe-service/internal/config"
	"bgcafe/cafe-service/internal/httpapi"
	"bgcafe/cafe-service/internal/order"
	"bgcafe/cafe-service/internal/session"
	"bgcafe/cafe-service/internal/store/postgres"
	"bgcafe/cafe-service/internal/telemetry"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg := config.Load()
	shutdownTelemetry := telemetry.Setup(telemetry.Config{
		ServiceName: "cafe-service",
		Endpoint:    cfg.OTELEndpoint,
		Insecure:    cfg.OTELInsecure,
	})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	st := postgres.NewStore(pool)
	if !cfg.SkipMigrations {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := st.Migrate(ctx); err != nil {
			cancel()
			log.Fatalf("migrate: %v", err)
		}
		cancel()
	}

	sessions := session.NewManager(st, st)
	orders := order.NewManager(st, st, st)
	handler := httpapi.NewHandler(sessions, orders, st, httpapi.Options{
		Credentials: httpapi.Credentials{
			APIKey:            cfg.APIKey,
			AdminUsername:     cfg.AdminUsername,
			AdminPassword:     cfg.AdminPassword,
			AdminPasswordHash: cfg.AdminPasswordHash,
		},
		AllowOrigin: cfg.AllowOrigin,
	})
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		PerMinute: cfg.RateLimitPerMinute,
		Burst:     cfg.RateLimitBurst,
	})

	otelHandler := otelhttp.NewHandler(httpapi.LoggingMiddleware(limiter.Middleware(handler)), "cafe-service")
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("cafe-service listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
