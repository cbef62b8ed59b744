package shot

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// MaxCushions is the largest cushion count the solver enumerates.
const MaxCushions = 2

var (
	ErrUnknownPocket      = errors.New("unknown pocket")
	ErrInvalidMaxCushions = errors.New("max cushions must be 0, 1 or 2")
	ErrInvalidPosition    = errors.New("ball position must be finite")
)

// Kind is the shot class of a candidate.
type Kind string

const (
	KindDirect        Kind = "direct"
	KindSingleCushion Kind = "single_cushion"
	KindDoubleCushion Kind = "double_cushion"
)

// Request describes one solve. An empty Pocket selects all six pockets.
type Request struct {
	Cue         Vec2   `json:"cue"`
	Object      Vec2   `json:"object"`
	Pocket      string `json:"pocket,omitempty"`
	MaxCushions int    `json:"max_cushions"`
}

// Candidate is one way to pot the object ball. Every field is a value; a
// candidate is never modified after Solve returns it.
type Candidate struct {
	Kind            Kind       `json:"kind"`
	Cue             Vec2       `json:"cue"`
	Object          Vec2       `json:"object"`
	Pocket          Pocket     `json:"pocket"`
	AimPoint        Vec2       `json:"aim_point"`
	CushionPoints   []Vec2     `json:"cushion_points"`
	RailsUsed       []Rail     `json:"rails_used"`
	TotalDistance   float64    `json:"total_distance"`
	DifficultyScore float64    `json:"difficulty_score"`
	Difficulty      Difficulty `json:"difficulty"`
	PathSegments    []Segment  `json:"path_segments"`
}

// Solver enumerates and ranks shots on a fixed table. It holds no per-call
// state and is safe for concurrent use.
type Solver struct {
	table   Table
	workers int
}

type Option func(*Solver)

// WithWorkers evaluates up to n pockets in parallel. n <= 1 evaluates
// sequentially. Output does not depend on n.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		s.workers = n
	}
}

// NewSolver returns a solver for table.
func NewSolver(table Table, opts ...Option) (*Solver, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{table: table, workers: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Table returns the solver's table geometry.
func (s *Solver) Table() Table {
	return s.table
}

// Validate rejects structurally invalid requests.
func (s *Solver) Validate(req Request) error {
	if req.MaxCushions < 0 || req.MaxCushions > MaxCushions {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxCushions, req.MaxCushions)
	}
	if req.Pocket != "" {
		if _, ok := s.table.Pocket(req.Pocket); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPocket, req.Pocket)
		}
	}
	for _, p := range []Vec2{req.Cue, req.Object} {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return ErrInvalidPosition
		}
	}
	return nil
}

// Solve returns every feasible shot for req, ascending by difficulty score.
// An empty result means no shot is feasible under the request's constraints.
func (s *Solver) Solve(req Request) ([]Candidate, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	var pockets []Pocket
	if req.Pocket == "" {
		pockets = s.table.Pockets()
	} else {
		p, _ := s.table.Pocket(req.Pocket)
		pockets = []Pocket{p}
	}

	// One slot per pocket keeps the merge order fixed however the work is
	// scheduled.
	slots := make([][]Candidate, len(pockets))
	if s.workers <= 1 || len(pockets) == 1 {
		for i, p := range pockets {
			slots[i] = s.solvePocket(req, p)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for i, p := range pockets {
			g.Go(func() error {
				slots[i] = s.solvePocket(req, p)
				return nil
			})
		}
		_ = g.Wait()
	}

	out := lo.Flatten(slots)
	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(a.DifficultyScore, b.DifficultyScore)
	})
	return out, nil
}

func (s *Solver) solvePocket(req Request, p Pocket) []Candidate {
	var out []Candidate
	if c, ok := s.direct(req, p); ok {
		out = append(out, c)
	}
	if req.MaxCushions >= 1 {
		for _, r := range Rails {
			if c, ok := s.singleCushion(req, p, r); ok {
				out = append(out, c)
			}
		}
	}
	if req.MaxCushions >= 2 {
		for _, first := range Rails {
			for _, second := range Rails {
				if first == second {
					continue
				}
				if c, ok := s.doubleCushion(req, p, first, second); ok {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func (s *Solver) direct(req Request, p Pocket) (Candidate, bool) {
	aim, ok := s.table.ghostBall(req.Object, p.Position)
	if !ok {
		return Candidate{}, false
	}
	return s.candidate(KindDirect, req, p, aim, nil, nil), true
}

// singleCushion unfolds the path by mirroring the pocket across r; the
// straight line to the mirror image crosses r at the contact point.
func (s *Solver) singleCushion(req Request, p Pocket, r Rail) (Candidate, bool) {
	image := s.table.mirror(p.Position, r)
	hit, ok := s.table.intersectRail(req.Object, image, r)
	if !ok {
		return Candidate{}, false
	}
	aim, ok := s.table.ghostBall(req.Object, hit)
	if !ok {
		return Candidate{}, false
	}
	return s.candidate(KindSingleCushion, req, p, aim, []Vec2{hit}, []Rail{r}), true
}

// doubleCushion mirrors the innermost rail first: the pocket across second,
// then that image across first.
func (s *Solver) doubleCushion(req Request, p Pocket, first, second Rail) (Candidate, bool) {
	inner := s.table.mirror(p.Position, second)
	outer := s.table.mirror(inner, first)

	hit1, ok := s.table.intersectRail(req.Object, outer, first)
	if !ok {
		return Candidate{}, false
	}
	hit2, ok := s.table.intersectRail(hit1, inner, second)
	if !ok {
		return Candidate{}, false
	}
	aim, ok := s.table.ghostBall(req.Object, hit1)
	if !ok {
		return Candidate{}, false
	}
	return s.candidate(KindDoubleCushion, req, p, aim, []Vec2{hit1, hit2}, []Rail{first, second}), true
}

func (s *Solver) candidate(kind Kind, req Request, p Pocket, aim Vec2, cushions []Vec2, rails []Rail) Candidate {
	segments := make([]Segment, 0, len(cushions)+2)
	segments = append(segments, Segment{From: req.Cue, To: aim})

	from := req.Object
	for _, c := range cushions {
		segments = append(segments, Segment{From: from, To: c})
		from = c
	}
	segments = append(segments, Segment{From: from, To: p.Position})

	cueToAim := segments[0].Length()
	objectTravel := lo.SumBy(segments[1:], func(seg Segment) float64 {
		return seg.Length()
	})
	score := s.table.Score(cueToAim, objectTravel, len(cushions))

	return Candidate{
		Kind:            kind,
		Cue:             req.Cue,
		Object:          req.Object,
		Pocket:          p,
		AimPoint:        aim,
		CushionPoints:   append([]Vec2{}, cushions...),
		RailsUsed:       append([]Rail{}, rails...),
		TotalDistance:   cueToAim + objectTravel,
		DifficultyScore: score,
		Difficulty:      Categorize(score),
		PathSegments:    segments,
	}
}
