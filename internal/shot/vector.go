package shot

import "math"

// Vec2 is a point or direction on the table plane, in millimeters.
// Components are never rounded; the ghost-ball offset must hold to well
// under a micron.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo returns the euclidean distance between two points.
func (v Vec2) DistanceTo(o Vec2) float64 {
	return o.Minus(v).Magnitude()
}

// Normalize returns the unit vector along v and false when v is too short
// to carry a direction.
func (v Vec2) Normalize() (Vec2, bool) {
	m := v.Magnitude()
	if m < degenerateEpsilon {
		return Vec2{}, false
	}
	return v.Times(1.0 / m), true
}

// Segment is a straight piece of a shot path, handed to renderers as-is.
type Segment struct {
	From Vec2 `json:"from"`
	To   Vec2 `json:"to"`
}

func (s Segment) Length() float64 {
	return s.From.DistanceTo(s.To)
}
