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

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/commission"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/config"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/httpapi"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/metrics"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/rbac"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/reporting"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/settlement"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/logger"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// source is what the API needs from a data source: reads plus partner status writes.
type source interface {
	datasource.Source
	datasource.PartnerWriter
}

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

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	var db *pgxpool.Pool
	if cfg.NeedsPostgres() {
		db, err = utils.OpenPostgres(rootCtx, cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr(), Password: cfg.Redis.Password})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	src, err := openSource(cfg, db)
	if err != nil {
		log.Error("data source init failed", "err", err)
		os.Exit(1)
	}

	store, reader := openAuditStore(cfg, db, rdb)
	recorder := audit.NewRecorder(log, store,
		audit.WithPersistTimeout(cfg.Audit.PersistTimeout),
		audit.WithRetentionDays(cfg.Audit.RetentionDays),
	)

	tiers := commission.NewService(commission.NewMemoryRepo())

	var users []auth.StaticUser
	if cfg.Auth.AdminEmail != "" {
		users = append(users, auth.StaticUser{
			Identity:     auth.Identity{UserID: "admin", Email: cfg.Auth.AdminEmail, Role: rbac.RoleAdmin},
			PasswordHash: cfg.Auth.AdminPasswordHash,
		})
	} else {
		log.Warn("ADMIN_EMAIL not set; login is disabled")
	}

	h := &httpapi.Handlers{
		Auth:                  authManager,
		Credentials:           auth.NewStaticCredentials(users...),
		Attempts:              auth.NewRedisAttempts(rdb, cfg.Auth.LoginFailureWindow),
		LoginFailureThreshold: cfg.Auth.LoginFailureThreshold,
		Audit:                 recorder,
		AuditReader:           reader,
		Partners:              src,
		Statements:            settlement.NewService(src, settlement.WithTierResolver(tiers)),
		Reports:               reporting.NewService(src),
		Exports:               httpapi.NewRedisExportLimiter(rdb, cfg.Export.MaxConcurrent, cfg.Export.CapTTL),
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(metrics.Middleware())

	registerRoutes(r, h, healthChecks(db, rdb))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env,
			"data_source", cfg.Data.Source, "audit_sink", cfg.Audit.Sink)
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

func openSource(cfg config.Config, db *pgxpool.Pool) (source, error) {
	if cfg.Data.Source == "postgres" {
		return datasource.NewPostgresSource(db), nil
	}
	fs, err := datasource.NewFixtureSource()
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// openAuditStore returns the configured sink and, when it can be read back, its reader.
func openAuditStore(cfg config.Config, db *pgxpool.Pool, rdb audit.StreamAdder) (audit.Store, audit.Reader) {
	switch cfg.Audit.Sink {
	case "memory":
		s := audit.NewMemoryStore()
		return s, s
	case "postgres":
		s := audit.NewPostgresStore(db)
		return s, s
	case "redis":
		return audit.NewRedisStreamStore(rdb, cfg.Audit.Stream, cfg.Audit.StreamMaxLen), nil
	default:
		return nil, nil
	}
}
