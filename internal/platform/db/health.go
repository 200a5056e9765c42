package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats is the connection pool snapshot reported by /health/db.
type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
	AcquireCount  int64 `json:"acquire_count"`
}

// HealthReport is the /health/db response body.
type HealthReport struct {
	Status  string     `json:"status"`
	Error   string     `json:"error,omitempty"`
	Latency string     `json:"ping_latency"`
	Pool    *PoolStats `json:"pool"`
}

func GetPoolStats(pool *pgxpool.Pool) *PoolStats {
	stat := pool.Stat()
	return &PoolStats{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
		AcquireCount:  stat.AcquireCount(),
	}
}

func newHealthReport(pingErr error, latency time.Duration, stats *PoolStats) (int, HealthReport) {
	report := HealthReport{Status: "healthy", Latency: latency.String(), Pool: stats}
	if pingErr != nil {
		report.Status = "unhealthy"
		report.Error = pingErr.Error()
		return http.StatusServiceUnavailable, report
	}
	return http.StatusOK, report
}

// HealthHandler pings the store and reports pool statistics.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		start := time.Now()
		err := pool.Ping(ctx)
		code, report := newHealthReport(err, time.Since(start), GetPoolStats(pool))
		return c.JSON(code, report)
	}
}
