package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/playpool/shotsolver/internal/models"
	"github.com/playpool/shotsolver/internal/shot"
	"github.com/rs/zerolog/log"
)

// Recorder persists solves to the shot_solves table. A Recorder with a nil DB
// records nothing.
type Recorder struct {
	db *sqlx.DB
}

func NewRecorder(db *sqlx.DB) *Recorder {
	return &Recorder{db: db}
}

// Enabled reports whether solves are being stored.
func (r *Recorder) Enabled() bool {
	return r != nil && r.db != nil
}

// NewRecord builds the row for one solve. The id is a fresh UUID.
func NewRecord(clientID string, req shot.Request, candidates []shot.Candidate) (models.ShotSolve, error) {
	result, err := json.Marshal(candidates)
	if err != nil {
		return models.ShotSolve{}, fmt.Errorf("failed to marshal candidates: %w", err)
	}

	rec := models.ShotSolve{
		ID:             uuid.NewString(),
		ClientID:       clientID,
		CueX:           req.Cue.X,
		CueY:           req.Cue.Y,
		ObjectX:        req.Object.X,
		ObjectY:        req.Object.Y,
		PocketSelector: req.Pocket,
		MaxCushions:    req.MaxCushions,
		CandidateCount: len(candidates),
		Result:         result,
	}
	if len(candidates) > 0 {
		best := candidates[0]
		rec.BestScore = sql.NullFloat64{Float64: best.DifficultyScore, Valid: true}
		rec.BestCategory = sql.NullString{String: string(best.Difficulty), Valid: true}
	}
	return rec, nil
}

// Record stores a solve. Storage failures are returned to
// the caller, who decides whether they matter.
func (r *Recorder) Record(ctx context.Context, rec models.ShotSolve) error {
	if !r.Enabled() {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shot_solves (id, client_id, cue_x, cue_y, object_x, object_y, pocket_selector,
			max_cushions, candidate_count, best_score, best_category, result, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12::jsonb,NOW())
	`, rec.ID, rec.ClientID, rec.CueX, rec.CueY, rec.ObjectX, rec.ObjectY, rec.PocketSelector,
		rec.MaxCushions, rec.CandidateCount, rec.BestScore, rec.BestCategory, string(rec.Result))
	if err != nil {
		log.Error().Err(err).Str("solve_id", rec.ID).Msg("[DB] Failed to record solve")
		return fmt.Errorf("failed to record solve: %w", err)
	}
	return nil
}

const selectColumns = `id, client_id, cue_x, cue_y, object_x, object_y, pocket_selector,
	max_cushions, candidate_count, best_score, best_category, result, created_at`

// List returns a client's most recent solves, newest first.
func (r *Recorder) List(ctx context.Context, clientID string, limit, offset int) ([]models.ShotSolve, error) {
	if !r.Enabled() {
		return []models.ShotSolve{}, nil
	}
	limit, offset = clampPage(limit, offset)

	solves := []models.ShotSolve{}
	err := r.db.SelectContext(ctx, &solves, `
		SELECT `+selectColumns+`
		FROM shot_solves
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, clientID, limit, offset)
	return solves, err
}

// Get returns one stored solve owned by clientID.
func (r *Recorder) Get(ctx context.Context, clientID, id string) (*models.ShotSolve, error) {
	if !r.Enabled() {
		return nil, sql.ErrNoRows
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}

	var s models.ShotSolve
	err := r.db.GetContext(ctx, &s, `SELECT `+selectColumns+` FROM shot_solves WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
