package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/httpapi"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/metrics"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const healthTimeout = 2 * time.Second

// pingFunc adapts a ping closure to utils.Pinger.
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthChecks(db *pgxpool.Pool, rdb *redis.Client) map[string]utils.Pinger {
	checks := map[string]utils.Pinger{
		"redis": pingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
	}
	if db != nil {
		checks["postgres"] = db
	}
	return checks
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h *httpapi.Handlers, checks map[string]utils.Pinger) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		status := http.StatusOK
		deps := gin.H{}
		for name, p := range checks {
			if err := utils.HealthCheck(c.Request.Context(), p, healthTimeout); err != nil {
				status = http.StatusServiceUnavailable
				deps[name] = err.Error()
				continue
			}
			deps[name] = "ok"
		}
		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	h.Register(r)
}
