package game

import "math"

// segmentRectHitT returns the first segment parameter t in [0,1] where the
// segment a->b enters r. The bool is false when no hit exists. A segment
// starting inside r hits at t=0.
func segmentRectHitT(a, b Vec2, r Rect) (float64, bool) {
	d := b.Sub(a)

	tMin := 0.0
	tMax := 1.0

	// X slab
	if math.Abs(d.X) < 1e-12 {
		if a.X < r.X || a.X > r.MaxX() {
			return 0, false
		}
	} else {
		invD := 1.0 / d.X
		t1 := (r.X - a.X) * invD
		t2 := (r.MaxX() - a.X) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Y slab
	if math.Abs(d.Y) < 1e-12 {
		if a.Y < r.Y || a.Y > r.MaxY() {
			return 0, false
		}
	} else {
		invD := 1.0 / d.Y
		t1 := (r.Y - a.Y) * invD
		t2 := (r.MaxY() - a.Y) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	return tMin, true
}

// segmentCircleHitT returns the first segment parameter t in [0,1] where
// a->b touches the circle (c, radius).
func segmentCircleHitT(a, b, c Vec2, radius float64) (float64, bool) {
	d := b.Sub(a)
	f := a.Sub(c)
	qa := d.Dot(d)
	qc := f.Dot(f) - radius*radius
	if qc <= 0 {
		return 0, true // starts inside
	}
	if qa < 1e-12 {
		return 0, false
	}
	qb := 2 * f.Dot(d)
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, false
	}
	t := (-qb - math.Sqrt(disc)) / (2 * qa)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// HasLineOfSight reports whether the segment a->b crosses no building.
func HasLineOfSight(a, b Vec2, buildings []*Building) bool {
	for _, bd := range buildings {
		if _, hit := segmentRectHitT(a, b, bd.Bounds); hit {
			return false
		}
	}
	return true
}
