package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collections-center/internal/accounts"
	"collections-center/internal/calls"
	"collections-center/internal/config"
	"collections-center/internal/flow"
	"collections-center/internal/httpapi"
	"collections-center/internal/journal"
	"collections-center/internal/media"
	"collections-center/internal/payments"
	"collections-center/pkg/logger"
	"collections-center/pkg/metrics"
	"collections-center/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.Registry("collections")

	// Journal is in-memory unless Postgres is configured.
	var journalRepo journal.Repository = journal.NewMemoryRepo()
	if cfg.DBEnabled() {
		db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		journalRepo = journal.NewPostgresRepo(db)
	}
	jrnl := journal.NewService(journalRepo)

	// Redis backs the per-number concurrent-call cap; without it the cap
	// is disabled.
	var limiter calls.CapLimiter
	if cfg.RedisEnabled() {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		limiter = calls.NewRedisCapLimiter(rdb, 1, 4*time.Hour)
	}

	// Media credentials may be absent; verification and payments still work.
	var (
		issuer  *media.TokenIssuer
		roomAPI calls.RoomAPI
	)
	if cfg.MediaConfigured() {
		issuer, err = media.NewTokenIssuer(cfg.LiveKit)
		if err != nil {
			log.Error("token issuer init failed", "err", err)
			os.Exit(1)
		}
		roomClient, err := media.NewRoomClient(cfg.LiveKit, issuer)
		if err != nil {
			log.Error("room client init failed", "err", err)
			os.Exit(1)
		}
		roomClient.Observe = func(method string, d time.Duration) {
			m.RoomAPILatency.WithLabelValues(method).Observe(d.Seconds())
		}
		roomAPI = roomClient
	} else {
		log.Warn("media credentials not set, call endpoints disabled")
	}

	h := httpapi.Handlers{
		Accounts: accounts.NewService(accounts.NewMemoryRepo(accounts.SeedAccounts())),
		Calls:    calls.NewService(roomAPI, limiter, jrnl),
		Payments: payments.NewSimulator(cfg.Payments.SimulatedDelay, jrnl),
		Flow:     flow.NewStore(),
		Tokens:   issuer,
		MediaURL: cfg.LiveKit.URL,
		Metrics:  m,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	registerRoutes(r, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
