// Package health exposes liveness and readiness information, including
// basic host metrics for the detailed endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"showroom-backend/internal/cache"
	"showroom-backend/internal/timeutil"
	"showroom-backend/pkg/utils"
)

type Checker struct {
	db      *pgxpool.Pool
	cache   *cache.Client
	started time.Time
}

func NewChecker(db *pgxpool.Pool, cacheClient *cache.Client) *Checker {
	return &Checker{db: db, cache: cacheClient, started: timeutil.Now()}
}

// Basic is the liveness probe: cheap, no dependency checks.
func (c *Checker) Basic(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(c.started).String(),
	})
}

// Ready is the readiness probe: up only when the database answers.
func (c *Checker) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := c.db.Ping(ctx); err != nil {
		utils.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Detailed checks the database and cache and reports host resource usage.
// A failing database makes the whole endpoint report unhealthy with a 503.
func (c *Checker) Detailed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := c.db.Ping(ctx); err != nil {
		checks["database"] = "down: " + err.Error()
		healthy = false
	} else {
		checks["database"] = "up"
	}

	if !c.cache.Enabled() {
		checks["cache"] = "disabled"
	} else if err := c.cache.Ping(ctx); err != nil {
		// Cache is optional; a dead redis degrades performance, not health.
		checks["cache"] = "down: " + err.Error()
	} else {
		checks["cache"] = "up"
	}

	system := map[string]interface{}{}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		system["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		system["memory_percent"] = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		system["disk_percent"] = du.UsedPercent
	}

	status := http.StatusOK
	statusText := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		statusText = "degraded"
	}

	utils.JSON(w, status, map[string]interface{}{
		"status": statusText,
		"uptime": time.Since(c.started).String(),
		"checks": checks,
		"system": system,
	})
}
