package game

import (
	"math"
	"testing"
)

func wall(x, y, w, h float64) *Building {
	return &Building{Bounds: Rect{X: x, Y: y, W: w, H: h}, Colour: ColourGrey}
}

func TestLOS_ClearLine(t *testing.T) {
	if !HasLineOfSight(Vec2{0, 0}, Vec2{100, 100}, nil) {
		t.Fatal("expected clear LOS with no buildings")
	}
}

func TestLOS_BlockedByBuilding(t *testing.T) {
	bs := []*Building{wall(40, 0, 20, 200)}
	if HasLineOfSight(Vec2{0, 100}, Vec2{200, 100}, bs) {
		t.Fatal("expected LOS blocked by building")
	}
}

func TestLOS_BuildingBeyondEndpoint_NotBlocked(t *testing.T) {
	bs := []*Building{wall(300, 0, 64, 64)}
	if !HasLineOfSight(Vec2{0, 32}, Vec2{200, 32}, bs) {
		t.Fatal("building beyond endpoint should not block LOS")
	}
}

func TestLOS_VerticalRay_Blocked(t *testing.T) {
	bs := []*Building{wall(0, 40, 200, 20)}
	if HasLineOfSight(Vec2{100, 0}, Vec2{100, 200}, bs) {
		t.Fatal("expected vertical ray blocked by horizontal building")
	}
}

func TestLOS_DiagonalRay_Blocked(t *testing.T) {
	bs := []*Building{wall(80, 80, 40, 40)}
	if HasLineOfSight(Vec2{0, 0}, Vec2{200, 200}, bs) {
		t.Fatal("diagonal ray should be blocked by building")
	}
}

func TestLOS_ZeroLength(t *testing.T) {
	bs := []*Building{wall(0, 0, 100, 100)}
	// Same start and end: should not panic.
	_ = HasLineOfSight(Vec2{50, 50}, Vec2{50, 50}, bs)
}

func TestSegmentRectHitT_EntryParameter(t *testing.T) {
	tt, hit := segmentRectHitT(Vec2{0, 5}, Vec2{100, 5}, Rect{X: 25, Y: 0, W: 10, H: 10})
	if !hit {
		t.Fatal("expected hit")
	}
	if math.Abs(tt-0.25) > 1e-9 {
		t.Fatalf("expected entry at t=0.25, got %v", tt)
	}
}

func TestSegmentCircleHitT(t *testing.T) {
	tt, hit := segmentCircleHitT(Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 0}, 1)
	if !hit {
		t.Fatal("expected hit on circle in path")
	}
	if math.Abs(tt-0.4) > 1e-9 {
		t.Fatalf("expected t=0.4, got %v", tt)
	}
	if _, hit := segmentCircleHitT(Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 3}, 1); hit {
		t.Fatal("circle off the segment should miss")
	}
	if _, hit := segmentCircleHitT(Vec2{0, 0}, Vec2{3, 0}, Vec2{5, 0}, 1); hit {
		t.Fatal("circle beyond the segment end should miss")
	}
}
