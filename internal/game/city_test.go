package game

import (
	"errors"
	"testing"

	"github.com/Kravenark/SplatterGameUnity/internal/tuning"
)

func TestGenerateCity_Layout(t *testing.T) {
	g := tuning.Default().Grid
	city := GenerateCity(g)

	if got, want := len(city.Blocks), g.Cols*g.Rows; got != want {
		t.Fatalf("expected %d blocks, got %d", want, got)
	}
	if got, want := len(city.Buildings()), g.Cols*g.Rows*g.BuildingsPerBlock; got != want {
		t.Fatalf("expected %d buildings, got %d", want, got)
	}
	seen := map[BuildingID]bool{}
	for _, b := range city.Blocks {
		if len(b.Buildings) != g.BuildingsPerBlock {
			t.Errorf("B%02d has %d buildings", b.ID, len(b.Buildings))
		}
		if len(b.SpawnMarkers) != g.SpawnsPerBlock {
			t.Errorf("B%02d has %d spawn markers", b.ID, len(b.SpawnMarkers))
		}
		for _, bd := range b.Buildings {
			if seen[bd.ID] {
				t.Fatalf("building id %d reused", bd.ID)
			}
			seen[bd.ID] = true
			if bd.Block != b.ID {
				t.Errorf("W%02d back-reference %d, want %d", bd.ID, bd.Block, b.ID)
			}
			if !b.Bounds.Contains(bd.Bounds.Centre()) {
				t.Errorf("W%02d lies outside B%02d", bd.ID, b.ID)
			}
		}
		for _, m := range b.SpawnMarkers {
			if !b.Bounds.Contains(m) {
				t.Errorf("B%02d marker %v outside the block", b.ID, m)
			}
			if city.Blocked(m, tuning.Default().Player.Radius) {
				t.Errorf("B%02d marker %v is inside a building", b.ID, m)
			}
		}
	}
}

func TestGenerateCity_BuildingsDoNotOverlap(t *testing.T) {
	city := GenerateCity(tuning.Default().Grid)
	all := city.Buildings()
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i].Bounds, all[j].Bounds
			if a.X < b.MaxX() && b.X < a.MaxX() && a.Y < b.MaxY() && b.Y < a.MaxY() {
				t.Fatalf("W%02d overlaps W%02d", all[i].ID, all[j].ID)
			}
		}
	}
}

func TestCity_Lookups(t *testing.T) {
	city := GenerateCity(tuning.Default().Grid)

	if _, err := city.Block(999); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference for unknown block, got %v", err)
	}
	if _, err := city.Building(999); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference for unknown building, got %v", err)
	}
	b, err := city.Block(1)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := city.BlockAt(b.Centre())
	if !ok || got.ID != 1 {
		t.Fatalf("BlockAt(centre of B01) = %v, %t", got, ok)
	}
	if _, ok := city.BlockAt(Vec2{1, 1}); ok {
		t.Fatal("street corner should not be inside a block")
	}
}

func TestCity_ColourQueries(t *testing.T) {
	city := NewCity(100, 20, []*Block{
		spawnBlock(1, ColourRed, 0),
		spawnBlock(2, ColourGrey, 20),
		spawnBlock(3, ColourGrey, 60),
		spawnBlock(4, ColourBlue, 80),
	})

	if n := len(city.BlocksByColour(ColourGrey)); n != 2 {
		t.Fatalf("expected 2 grey blocks, got %d", n)
	}
	if n := len(city.BlocksExcluding(ColourRed)); n != 3 {
		t.Fatalf("expected 3 non-red blocks, got %d", n)
	}
	b, ok := city.NearestBlock(ColourGrey, Vec2{90, 5})
	if !ok || b.ID != 3 {
		t.Fatalf("expected B03 as nearest grey, got %v", b)
	}
	if _, ok := city.NearestBlock(ColourGreen, Vec2{}); ok {
		t.Fatal("no green block exists")
	}
}

func TestCity_Blocked(t *testing.T) {
	city := arena()
	cases := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"open street", Vec2{50, 50}, false},
		{"inside building", Vec2{105, 5}, true},
		{"touching building", Vec2{99, 5}, true},
		{"off map", Vec2{-1, 50}, true},
		{"map edge", Vec2{0.5, 50}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := city.Blocked(tc.p, 1.5); got != tc.want {
				t.Fatalf("Blocked(%v) = %t, want %t", tc.p, got, tc.want)
			}
		})
	}
}
