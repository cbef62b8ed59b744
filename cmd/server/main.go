package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playpool/shotsolver/internal/api"
	"github.com/playpool/shotsolver/internal/cache"
	"github.com/playpool/shotsolver/internal/config"
	"github.com/playpool/shotsolver/internal/database"
	"github.com/playpool/shotsolver/internal/history"
	"github.com/playpool/shotsolver/internal/logging"
	"github.com/playpool/shotsolver/internal/middleware"
	"github.com/playpool/shotsolver/internal/migrations"
	"github.com/playpool/shotsolver/internal/planner"
	"github.com/playpool/shotsolver/internal/redis"
	"github.com/playpool/shotsolver/internal/shot"
	"github.com/playpool/shotsolver/internal/ws"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	solver, err := shot.NewSolver(cfg.Table(), shot.WithWorkers(cfg.SolverWorkers))
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid table configuration")
	}
	table := solver.Table()
	log.Info().Msgf("[SOLVER] table %.1fx%.1f mm, ball radius %.3f mm, rail tolerance %.1f mm, workers %d",
		table.Width, table.Length, table.BallRadius, table.RailTolerance, cfg.SolverWorkers)

	// Solve history is optional
	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		if cfg.MigrateOnStart {
			log.Info().Msg("[MIGRATE] Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
				log.Fatal().Err(err).Msg("Failed to run migrations")
			}
		}
		db, err = database.Connect(cfg.DatabaseURL, cfg.SolverWorkers)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
	} else {
		log.Warn().Msg("[DB] DATABASE_URL not set - history and client tokens disabled")
	}

	// The result cache is optional
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redis.Connect(cfg.RedisURL, cfg.SolverWorkers)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
	} else {
		log.Warn().Msg("[CACHE] REDIS_URL not set - result cache disabled")
	}

	p := planner.New(solver,
		cache.New(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second),
		history.NewRecorder(db))

	hub := ws.NewHub(p, middleware.WebSocketOriginCheck(cfg))
	go hub.Run(ctx)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, db, rdb, cfg, p, hub)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("Starting shot solver on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
