package main

import (
	"image/color"
	"math"
	"testing"

	"github.com/Kravenark/SplatterGameUnity/internal/game"
)

func TestViewRoundTrip(t *testing.T) {
	v := newView(4)
	x, y := v.toScreen(game.Vec2{X: 10, Y: 2.5})
	if x != 56 || y != 26 {
		t.Fatalf("toScreen: got (%v, %v), want (56, 26)", x, y)
	}
	if got := v.toWorld(56, 26); got != (game.Vec2{X: 10, Y: 2.5}) {
		t.Fatalf("toWorld: got %v", got)
	}
	if newView(0).scale != 4 {
		t.Fatal("non-positive scale should fall back to 4")
	}
}

func TestBlend(t *testing.T) {
	a := color.RGBA{R: 0, G: 100, B: 200, A: 255}
	b := color.RGBA{R: 200, G: 100, B: 0, A: 255}
	if blend(a, b, -1) != a || blend(a, b, 2) != b {
		t.Fatal("blend should clamp t")
	}
	mid := blend(a, b, 0.5)
	if mid.R != 100 || mid.G != 100 || mid.B != 100 || mid.A != 255 {
		t.Fatalf("unexpected midpoint %v", mid)
	}
}

func TestBuildingPaintFollowsTransition(t *testing.T) {
	stable := game.BuildingView{Colour: game.ColourRed, Target: game.ColourNone}
	if buildingRGBA(stable) != colourRGBA(game.ColourRed) {
		t.Fatal("stable building should paint its own colour")
	}
	half := game.BuildingView{Colour: game.ColourGrey, Target: game.ColourBlue, Progress: 0.5}
	want := blend(colourRGBA(game.ColourGrey), colourRGBA(game.ColourBlue), 0.5)
	if buildingRGBA(half) != want {
		t.Fatalf("got %v, want %v", buildingRGBA(half), want)
	}
	if tint(game.ColourGrey) != colPavement {
		t.Fatal("grey blocks keep plain pavement")
	}
}

func TestHumanIntent(t *testing.T) {
	pos := game.Vec2{X: 5, Y: 5}
	in := humanIntent(true, false, false, true, pos, game.Vec2{X: 5, Y: 9}, true)
	if math.Abs(in.Move.Len()-1) > 1e-9 || in.Move.X <= 0 || in.Move.Y >= 0 {
		t.Fatalf("diagonal move should be unit up-right, got %v", in.Move)
	}
	if in.Aim != (game.Vec2{X: 0, Y: 4}) || !in.Trigger {
		t.Fatalf("aim/trigger wrong: %+v", in)
	}
	in = humanIntent(true, true, true, true, pos, pos, true)
	if !in.Move.IsZero() || in.Trigger {
		t.Fatalf("opposing keys cancel and a zero aim cannot fire: %+v", in)
	}
}

func TestPushLineKeepsNewest(t *testing.T) {
	var feed []string
	for _, s := range []string{"a", "b", "c", "d"} {
		feed = pushLine(feed, s, 3)
	}
	if len(feed) != 3 || feed[0] != "b" || feed[2] != "d" {
		t.Fatalf("unexpected feed %v", feed)
	}
}

func TestDescribeAndLabels(t *testing.T) {
	e := game.Event{Tick: 12, Kind: game.EventBuildingColoured, Building: 3, From: game.ColourGrey, Colour: game.ColourRed, Attacker: 1}
	if got := describe(e); got != "   12 W03 grey->red P1" {
		t.Fatalf("describe: %q", got)
	}
	if blockName(game.PlayerView{}) != "street" {
		t.Fatal("player outside blocks should be on the street")
	}
	if playerState(game.PlayerView{Awaiting: true, RespawnIn: 2.5}) != "dead 2.5s" {
		t.Fatal("awaiting player should read as dead")
	}
	if leaderName(game.ColourNone) != "tie" {
		t.Fatal("no leader should read as tie")
	}
}
