package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/playpool/shotsolver/internal/shot"
)

type Config struct {
	// Environment
	Environment string
	LogLevel    string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL        string
	CacheTTLSeconds int

	// Server
	Port        string
	FrontendURL string

	// Security
	JWTSecret       string
	TokenTTLMinutes int
	RequireAuth     bool

	// Table geometry (millimeters)
	TableWidth    float64
	TableLength   float64
	BallRadius    float64
	RailTolerance float64
	OnTableMargin float64

	// Solver
	SolverWorkers int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),

		// Redis
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 300),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Security
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 60),
		RequireAuth:     getEnvBool("REQUIRE_AUTH", false),

		// Table geometry
		TableWidth:    getEnvFloat("TABLE_WIDTH_MM", shot.StandardWidth),
		TableLength:   getEnvFloat("TABLE_LENGTH_MM", shot.StandardLength),
		BallRadius:    getEnvFloat("BALL_RADIUS_MM", shot.StandardBallRadius),
		RailTolerance: getEnvFloat("RAIL_TOLERANCE_MM", shot.StandardRailTolerance),
		OnTableMargin: getEnvFloat("ON_TABLE_MARGIN_MM", shot.StandardBallRadius),

		// Solver
		SolverWorkers: getEnvInt("SOLVER_WORKERS", 1),
	}
}

// Table builds the solver geometry from the configured dimensions. Callers
// should Validate the result before use.
func (c *Config) Table() shot.Table {
	t := shot.NewStandardTable()
	t.Width = c.TableWidth
	t.Length = c.TableLength
	t.BallRadius = c.BallRadius
	t.RailTolerance = c.RailTolerance
	t.OnTableMargin = c.OnTableMargin
	return t
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
