package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/config"
	pg "github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/db/postgres"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/logging"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/metrics"
	red "github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/redis"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/sched"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/web"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	limiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	ticketRepo := pg.NewTicketRepo(pool)
	scanLogRepo := pg.NewScanLogRepo(pool)
	tierRepo := pg.NewTierRepo(pool)
	eventRepo := pg.NewEventRepoCacheDecorator(pg.NewEventRepo(pool), redisClient, cfg.Redis.TTL)
	tm := pg.NewTxManager(pool)

	// ---- Use cases ----
	validationUC := usecase.NewValidationUseCase(ticketRepo, scanLogRepo, logger)
	bookingUC := usecase.NewBookingUseCase(ticketRepo, tierRepo, eventRepo, tm, logger)
	eventUC := usecase.NewEventUseCase(eventRepo, tierRepo, logger)
	statsUC := usecase.NewStatsUseCase(eventRepo, tierRepo, ticketRepo)

	// ---- Auth ----
	secret := cfg.Security.JWTSecret
	if secret == "" {
		logger.Warn().Msg("security.jwt_secret not set; using dev secret (INSECURE)")
		secret = "dev-only-secret"
	}
	auth := web.NewAuthManager(secret, cfg.Security.TokenTTL)
	if cfg.Runtime.Dev {
		if tok, err := auth.Mint("dev-gate"); err == nil {
			logger.Info().Str("token", tok).Msg("dev gate token")
		}
	}

	// ---- HTTP server ----
	srv := web.NewServer(validationUC, bookingUC, eventUC, statsUC, auth, limiter, cfg.Scan, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Stats sweeper ----
	worker := sched.NewStatsWorker(cfg.Scheduler.StatsInterval, eventRepo, ticketRepo, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	_ = server.Shutdown(context.Background())
}
