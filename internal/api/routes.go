package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playpool/shotsolver/internal/api/handlers"
	"github.com/playpool/shotsolver/internal/config"
	"github.com/playpool/shotsolver/internal/middleware"
	"github.com/playpool/shotsolver/internal/planner"
	"github.com/playpool/shotsolver/internal/ws"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SetupRoutes configures all API routes. db and rdb may be nil when the
// service runs without persistence or caching.
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config, p *planner.Planner, hub *ws.Hub) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Next()
		})
		log.Info().Msg("[DEV MODE] no-cache headers enabled for all routes")
	}

	solveAuth := middleware.OptionalAuth(cfg.JWTSecret)
	if cfg.RequireAuth {
		solveAuth = middleware.AuthMiddleware(cfg.JWTSecret)
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(db, rdb, hub))
		v1.GET("/table", handlers.GetTable(p.Solver()))
		v1.POST("/auth/token", handlers.IssueToken(db, rdb, cfg))

		shots := v1.Group("/shots", solveAuth)
		{
			shots.POST("/solve", handlers.SolveShot(p))
			shots.GET("/ws", handlers.HandleShotWebSocket(hub))
		}

		hist := v1.Group("/history", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			hist.GET("", handlers.ListHistory(p.History()))
			hist.GET("/:id", handlers.GetHistory(p.History()))
		}
	}
}
