package shot

import (
	"errors"
	"fmt"
	"math"
)

// Standard 8-foot table values, all in millimeters. Origin is the bottom-left
// corner pocket, x runs along the short rail and y along the long rail.
const (
	StandardWidth         = 1118.0
	StandardLength        = 2235.0
	StandardBallRadius    = 28.575
	StandardRailTolerance = 50.0

	// Pocket mouths are informational only; the solver aims at pocket centers.
	CornerPocketOpening = 114.3
	SidePocketOpening   = 127.0
)

// Rail identifies one of the four cushions.
type Rail int

const (
	RailLeft Rail = iota
	RailRight
	RailBottom
	RailTop
)

// Rails lists every rail in enumeration order.
var Rails = [...]Rail{RailLeft, RailRight, RailBottom, RailTop}

func (r Rail) String() string {
	switch r {
	case RailLeft:
		return "LEFT"
	case RailRight:
		return "RIGHT"
	case RailBottom:
		return "BOTTOM"
	case RailTop:
		return "TOP"
	}
	return fmt.Sprintf("Rail(%d)", int(r))
}

func (r Rail) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rail) UnmarshalText(b []byte) error {
	for _, rail := range Rails {
		if rail.String() == string(b) {
			*r = rail
			return nil
		}
	}
	return fmt.Errorf("unknown rail %q", string(b))
}

// vertical reports whether the rail is a line of constant x.
func (r Rail) vertical() bool {
	return r == RailLeft || r == RailRight
}

// Pocket names accepted by Request.Pocket.
const (
	PocketBottomLeft  = "bottom_left"
	PocketBottomRight = "bottom_right"
	PocketSideLeft    = "side_left"
	PocketSideRight   = "side_right"
	PocketTopLeft     = "top_left"
	PocketTopRight    = "top_right"
)

// PocketNames lists every pocket in enumeration order.
var PocketNames = [...]string{
	PocketBottomLeft,
	PocketBottomRight,
	PocketSideLeft,
	PocketSideRight,
	PocketTopLeft,
	PocketTopRight,
}

// Pocket is a named pocket center.
type Pocket struct {
	Name     string `json:"name"`
	Position Vec2   `json:"position"`
}

// Table is the static playing-surface geometry. It is a plain value; copy it
// freely.
type Table struct {
	Width      float64 `json:"width"`
	Length     float64 `json:"length"`
	BallRadius float64 `json:"ball_radius"`

	// RailTolerance extends each rail past its physical ends when accepting a
	// cushion contact point.
	RailTolerance float64 `json:"rail_tolerance"`
	// OnTableMargin is how far outside the rail lines an aim point may sit.
	OnTableMargin float64 `json:"on_table_margin"`

	CornerPocketOpening float64 `json:"corner_pocket_opening"`
	SidePocketOpening   float64 `json:"side_pocket_opening"`
}

// NewStandardTable returns the standard 8-foot table.
func NewStandardTable() Table {
	return Table{
		Width:               StandardWidth,
		Length:              StandardLength,
		BallRadius:          StandardBallRadius,
		RailTolerance:       StandardRailTolerance,
		OnTableMargin:       StandardBallRadius,
		CornerPocketOpening: CornerPocketOpening,
		SidePocketOpening:   SidePocketOpening,
	}
}

var ErrInvalidTable = errors.New("invalid table geometry")

// Validate checks that the table can be solved against.
func (t Table) Validate() error {
	switch {
	case !(t.Width > 0) || !(t.Length > 0):
		return fmt.Errorf("%w: dimensions %.3fx%.3f must be positive", ErrInvalidTable, t.Width, t.Length)
	case !(t.BallRadius > 0):
		return fmt.Errorf("%w: ball radius %.3f must be positive", ErrInvalidTable, t.BallRadius)
	case t.RailTolerance < 0 || t.OnTableMargin < 0:
		return fmt.Errorf("%w: tolerances must not be negative", ErrInvalidTable)
	case 2*t.BallRadius >= math.Min(t.Width, t.Length):
		return fmt.Errorf("%w: ball diameter does not fit the table", ErrInvalidTable)
	}
	return nil
}

// Diagonal is the distance normalizer used by difficulty scoring.
func (t Table) Diagonal() float64 {
	return math.Hypot(t.Width, t.Length)
}

// RailOffset returns the constant coordinate of a rail line.
func (t Table) RailOffset(r Rail) float64 {
	switch r {
	case RailRight:
		return t.Width
	case RailTop:
		return t.Length
	}
	return 0
}

// Pocket looks up a pocket center by name.
func (t Table) Pocket(name string) (Pocket, bool) {
	var p Vec2
	switch name {
	case PocketBottomLeft:
		p = NewVec2(0, 0)
	case PocketBottomRight:
		p = NewVec2(t.Width, 0)
	case PocketSideLeft:
		p = NewVec2(0, t.Length/2)
	case PocketSideRight:
		p = NewVec2(t.Width, t.Length/2)
	case PocketTopLeft:
		p = NewVec2(0, t.Length)
	case PocketTopRight:
		p = NewVec2(t.Width, t.Length)
	default:
		return Pocket{}, false
	}
	return Pocket{Name: name, Position: p}, true
}

// Pockets returns all six pockets in enumeration order.
func (t Table) Pockets() []Pocket {
	out := make([]Pocket, 0, len(PocketNames))
	for _, name := range PocketNames {
		p, _ := t.Pocket(name)
		out = append(out, p)
	}
	return out
}

// OnTable reports whether a ball center at p is inside the rail lines
// extended by OnTableMargin.
func (t Table) OnTable(p Vec2) bool {
	m := t.OnTableMargin
	return p.X >= -m && p.X <= t.Width+m && p.Y >= -m && p.Y <= t.Length+m
}

// WithinRailSpan reports whether p lies on the finite extent of rail r,
// extended by RailTolerance past each end.
func (t Table) WithinRailSpan(r Rail, p Vec2) bool {
	tol := t.RailTolerance
	if r.vertical() {
		return p.Y >= -tol && p.Y <= t.Length+tol
	}
	return p.X >= -tol && p.X <= t.Width+tol
}
