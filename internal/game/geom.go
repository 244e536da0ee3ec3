package game

import "math"

// Vec2 is a point or direction on the ground plane.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Normalize returns the unit vector of v, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rect is an axis-aligned box: X,Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

func (r Rect) Centre() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// ClosestPoint returns the point of r nearest to p.
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: math.Max(r.X, math.Min(p.X, r.MaxX())),
		Y: math.Max(r.Y, math.Min(p.Y, r.MaxY())),
	}
}

// ClosestOnPerimeter returns the point on r's outline nearest to p.
func (r Rect) ClosestOnPerimeter(p Vec2) Vec2 {
	c := r.ClosestPoint(p)
	if c != p {
		return c
	}
	left, right := p.X-r.X, r.MaxX()-p.X
	top, bottom := p.Y-r.Y, r.MaxY()-p.Y
	switch math.Min(math.Min(left, right), math.Min(top, bottom)) {
	case left:
		return Vec2{r.X, p.Y}
	case right:
		return Vec2{r.MaxX(), p.Y}
	case top:
		return Vec2{p.X, r.Y}
	default:
		return Vec2{p.X, r.MaxY()}
	}
}

// Corners returns r's corners clockwise from the top-left.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{{r.X, r.Y}, {r.MaxX(), r.Y}, {r.MaxX(), r.MaxY()}, {r.X, r.MaxY()}}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
