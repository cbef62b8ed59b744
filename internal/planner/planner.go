package planner

import (
	"context"
	"time"

	"github.com/playpool/shotsolver/internal/cache"
	"github.com/playpool/shotsolver/internal/history"
	"github.com/playpool/shotsolver/internal/shot"
	"github.com/rs/zerolog/log"
)

// Result is what API callers receive for one solve.
type Result struct {
	SolveID    string           `json:"solve_id"`
	Count      int              `json:"count"`
	Candidates []shot.Candidate `json:"candidates"`
	Cached     bool             `json:"cached"`
}

// Planner runs solves through the result cache and records them. Cache and
// history failures are logged and never fail a solve.
type Planner struct {
	solver  *shot.Solver
	cache   *cache.ShotCache
	history *history.Recorder
}

func New(solver *shot.Solver, c *cache.ShotCache, h *history.Recorder) *Planner {
	return &Planner{solver: solver, cache: c, history: h}
}

func (p *Planner) Solver() *shot.Solver {
	return p.solver
}

func (p *Planner) History() *history.Recorder {
	return p.history
}

// Plan solves req on behalf of clientID. Input errors from the solver are
// returned unchanged so callers can match them with errors.Is.
func (p *Planner) Plan(ctx context.Context, clientID string, req shot.Request) (Result, error) {
	if err := p.solver.Validate(req); err != nil {
		return Result{}, err
	}

	start := time.Now()
	key := cache.Key(p.solver.Table(), req)
	candidates, cached := p.cache.Get(ctx, key)
	if !cached {
		var err error
		candidates, err = p.solver.Solve(req)
		if err != nil {
			return Result{}, err
		}
		p.cache.Set(ctx, key, candidates)
	}

	res := Result{Count: len(candidates), Candidates: candidates, Cached: cached}
	rec, err := history.NewRecord(clientID, req, candidates)
	if err != nil {
		log.Error().Err(err).Msg("[SOLVER] failed to build history record")
		return res, nil
	}
	res.SolveID = rec.ID
	if err := p.history.Record(ctx, rec); err != nil {
		log.Warn().Err(err).Str("solve_id", rec.ID).Msg("[SOLVER] solve not recorded")
	}

	log.Debug().
		Str("solve_id", rec.ID).
		Str("pocket", req.Pocket).
		Int("max_cushions", req.MaxCushions).
		Int("candidates", len(candidates)).
		Bool("cached", cached).
		Dur("took", time.Since(start)).
		Msg("[SOLVER] solved")
	return res, nil
}
