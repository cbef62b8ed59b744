package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// APIClient is a registered consumer of the solver API (a camera app, a
// renderer, a kiosk).
type APIClient struct {
	ClientID   string    `db:"client_id" json:"client_id"`
	Name       string    `db:"name" json:"name"`
	SecretHash string    `db:"secret_hash" json:"-"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ShotSolve is one stored solve request with its ranked result.
type ShotSolve struct {
	ID             string          `db:"id" json:"id"`
	ClientID       string          `db:"client_id" json:"client_id"`
	CueX           float64         `db:"cue_x" json:"cue_x"`
	CueY           float64         `db:"cue_y" json:"cue_y"`
	ObjectX        float64         `db:"object_x" json:"object_x"`
	ObjectY        float64         `db:"object_y" json:"object_y"`
	PocketSelector string          `db:"pocket_selector" json:"pocket_selector"`
	MaxCushions    int             `db:"max_cushions" json:"max_cushions"`
	CandidateCount int             `db:"candidate_count" json:"candidate_count"`
	BestScore      sql.NullFloat64 `db:"best_score" json:"best_score,omitempty"`
	BestCategory   sql.NullString  `db:"best_category" json:"best_category,omitempty"`
	Result         json.RawMessage `db:"result" json:"result"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}
