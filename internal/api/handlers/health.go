package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

const version = "1.0.0"

// SessionCounter reports live websocket sessions.
type SessionCounter interface {
	Count() int
}

// HealthCheck returns server health status. Database and Redis are optional;
// an unconfigured dependency reports "disabled".
func HealthCheck(db *sqlx.DB, rdb *redis.Client, sessions SessionCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "disabled"
		if db != nil {
			dbStatus = "ok"
			if err := db.PingContext(ctx); err != nil {
				dbStatus = "unreachable"
			}
		}
		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}
		live := 0
		if sessions != nil {
			live = sessions.Count()
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"service":       "shotsolver-api",
			"version":       version,
			"uptime":        time.Since(startTime).String(),
			"database":      dbStatus,
			"redis":         redisStatus,
			"live_sessions": live,
		})
	}
}
