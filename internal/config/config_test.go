package config

import (
	"testing"

	"github.com/playpool/shotsolver/internal/shot"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TABLE_WIDTH_MM", "")
	t.Setenv("RAIL_TOLERANCE_MM", "")
	cfg := Load()

	table := cfg.Table()
	if table != shot.NewStandardTable() {
		t.Errorf("default table = %+v, want standard", table)
	}
	if cfg.SolverWorkers != 1 {
		t.Errorf("SolverWorkers = %d, want 1", cfg.SolverWorkers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TABLE_WIDTH_MM", "1270")
	t.Setenv("TABLE_LENGTH_MM", "2540")
	t.Setenv("RAIL_TOLERANCE_MM", "35.5")
	t.Setenv("SOLVER_WORKERS", "4")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")
	cfg := Load()

	table := cfg.Table()
	if table.Width != 1270 || table.Length != 2540 {
		t.Errorf("dimensions = %.1fx%.1f, want 1270x2540", table.Width, table.Length)
	}
	if table.RailTolerance != 35.5 {
		t.Errorf("RailTolerance = %.2f, want 35.5", table.RailTolerance)
	}
	if err := table.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if cfg.SolverWorkers != 4 || !cfg.RequireAuth {
		t.Errorf("workers=%d requireAuth=%v", cfg.SolverWorkers, cfg.RequireAuth)
	}
	if cfg.CacheTTLSeconds != 300 {
		t.Errorf("CacheTTLSeconds = %d, want fallback 300", cfg.CacheTTLSeconds)
	}
}
