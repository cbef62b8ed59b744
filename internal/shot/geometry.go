package shot

import "math"

// degenerateEpsilon is the length below which a direction or a rail-axis
// displacement is treated as zero.
const degenerateEpsilon = 1e-9

// mirror reflects p across the line of rail r.
func (t Table) mirror(p Vec2, r Rail) Vec2 {
	c := t.RailOffset(r)
	if r.vertical() {
		return Vec2{X: 2*c - p.X, Y: p.Y}
	}
	return Vec2{X: p.X, Y: 2*c - p.Y}
}

// intersectRail walks from `from` toward `toward` and returns where that ray
// crosses rail r. It fails when the ray runs parallel to the rail, when the
// crossing lies behind `from`, or when the crossing is off the tolerant rail
// span.
func (t Table) intersectRail(from, toward Vec2, r Rail) (Vec2, bool) {
	c := t.RailOffset(r)
	d := toward.Minus(from)

	var param float64
	if r.vertical() {
		if math.Abs(d.X) < degenerateEpsilon {
			return Vec2{}, false
		}
		param = (c - from.X) / d.X
	} else {
		if math.Abs(d.Y) < degenerateEpsilon {
			return Vec2{}, false
		}
		param = (c - from.Y) / d.Y
	}
	if param < 0 {
		return Vec2{}, false
	}

	// The rail coordinate is pinned so contact points sit exactly on the rail.
	hit := from.Plus(d.Times(param))
	if r.vertical() {
		hit.X = c
	} else {
		hit.Y = c
	}
	if !t.WithinRailSpan(r, hit) {
		return Vec2{}, false
	}
	return hit, true
}

// ghostBall returns where the cue ball center must be at contact so that the
// object ball leaves toward target.
func (t Table) ghostBall(object, target Vec2) (Vec2, bool) {
	d, ok := target.Minus(object).Normalize()
	if !ok {
		return Vec2{}, false
	}
	aim := object.Minus(d.Times(2 * t.BallRadius))
	if !t.OnTable(aim) {
		return Vec2{}, false
	}
	return aim, true
}
