package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/playpool/shotsolver/internal/models"
	"github.com/playpool/shotsolver/internal/shot"
)

func TestNewRecord(t *testing.T) {
	s, err := shot.NewSolver(shot.NewStandardTable())
	if err != nil {
		t.Fatal(err)
	}
	req := shot.Request{Cue: shot.NewVec2(300, 1000), Object: shot.NewVec2(500, 500), Pocket: shot.PocketBottomRight}
	shots, err := s.Solve(req)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := NewRecord("kiosk-1", req, shots)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("id %q is not a uuid", rec.ID)
	}
	if rec.CandidateCount != 1 || !rec.BestScore.Valid || rec.BestCategory.String != "EASY" {
		t.Errorf("unexpected summary: %+v", rec)
	}

	var back []shot.Candidate
	if err := json.Unmarshal(rec.Result, &back); err != nil {
		t.Fatalf("result is not candidate JSON: %v", err)
	}
	if len(back) != 1 || back[0].Pocket.Name != shot.PocketBottomRight {
		t.Errorf("round-tripped result = %+v", back)
	}
}

func TestNewRecordEmpty(t *testing.T) {
	rec, err := NewRecord("", shot.Request{}, []shot.Candidate{})
	if err != nil {
		t.Fatal(err)
	}
	if rec.BestScore.Valid || rec.BestCategory.Valid {
		t.Error("empty solve should have no best score")
	}
	if string(rec.Result) != "[]" {
		t.Errorf("result = %s, want []", rec.Result)
	}
}

func TestDisabledRecorder(t *testing.T) {
	r := NewRecorder(nil)
	ctx := context.Background()
	if r.Enabled() {
		t.Error("nil db recorder should be disabled")
	}
	if err := r.Record(ctx, mustRecord(t)); err != nil {
		t.Errorf("Record: %v", err)
	}
	list, err := r.List(ctx, "x", 10, 0)
	if err != nil || len(list) != 0 {
		t.Errorf("List = %v, %v", list, err)
	}
	if _, err := r.Get(ctx, "x", uuid.NewString()); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Get err = %v, want sql.ErrNoRows", err)
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct{ limit, offset, wantLimit, wantOffset int }{
		{0, 0, 20, 0},
		{50, 10, 50, 10},
		{500, -3, 20, 0},
	}
	for _, c := range cases {
		l, o := clampPage(c.limit, c.offset)
		if l != c.wantLimit || o != c.wantOffset {
			t.Errorf("clampPage(%d,%d) = %d,%d", c.limit, c.offset, l, o)
		}
	}
}

func mustRecord(t *testing.T) models.ShotSolve {
	t.Helper()
	rec, err := NewRecord("x", shot.Request{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return rec
}
