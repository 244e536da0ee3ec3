package game

import (
	"errors"
	"math/rand"
	"testing"
)

func spawnBlock(id BlockID, colour Colour, x float64, markers ...Vec2) *Block {
	return &Block{
		ID:           id,
		Colour:       colour,
		Bounds:       Rect{X: x, Y: 0, W: 10, H: 10},
		SpawnMarkers: markers,
	}
}

func TestSpawn_PrefersOwnColour(t *testing.T) {
	city := NewCity(100, 20, []*Block{
		spawnBlock(1, ColourGrey, 0, Vec2{1, 1}),
		spawnBlock(2, ColourRed, 20, Vec2{21, 1}, Vec2{29, 9}),
		spawnBlock(3, ColourBlue, 40, Vec2{41, 1}),
	})
	sel := NewSpawnSelector(rand.New(rand.NewSource(5)))
	for i := 0; i < 20; i++ {
		pl, err := sel.Select(city, ColourRed, Vec2{})
		if err != nil {
			t.Fatal(err)
		}
		if pl.Block != 2 || pl.Rule != SpawnOwnColour {
			t.Fatalf("expected own red block 2, got %+v", pl)
		}
		if pl.Point != (Vec2{21, 1}) && pl.Point != (Vec2{29, 9}) {
			t.Fatalf("point %v is not one of block 2's markers", pl.Point)
		}
	}
}

func TestSpawn_MarkersPickedUniformly(t *testing.T) {
	markers := []Vec2{{1, 1}, {2, 2}, {3, 3}, {4, 4}}
	city := NewCity(20, 20, []*Block{spawnBlock(1, ColourGreen, 0, markers...)})
	sel := NewSpawnSelector(rand.New(rand.NewSource(11)))
	counts := map[Vec2]int{}
	const n = 4000
	for i := 0; i < n; i++ {
		pl, err := sel.Select(city, ColourGreen, Vec2{})
		if err != nil {
			t.Fatal(err)
		}
		counts[pl.Point]++
	}
	for _, m := range markers {
		if c := counts[m]; c < n/4-200 || c > n/4+200 {
			t.Errorf("marker %v picked %d/%d times, expected about %d", m, c, n, n/4)
		}
	}
}

func TestSpawn_FallsBackToNearestGrey(t *testing.T) {
	city := NewCity(100, 20, []*Block{
		spawnBlock(1, ColourGrey, 0, Vec2{1, 1}),
		spawnBlock(2, ColourGrey, 60, Vec2{61, 1}),
		spawnBlock(3, ColourBlue, 30, Vec2{31, 1}),
	})
	sel := NewSpawnSelector(rand.New(rand.NewSource(1)))
	pl, err := sel.Select(city, ColourRed, Vec2{70, 5})
	if err != nil {
		t.Fatal(err)
	}
	if pl.Block != 2 || pl.Rule != SpawnNearestGrey {
		t.Fatalf("expected nearest grey block 2, got %+v", pl)
	}
}

func TestSpawn_FallsBackToOtherColour(t *testing.T) {
	city := NewCity(100, 20, []*Block{
		spawnBlock(1, ColourBlue, 0, Vec2{1, 1}),
		spawnBlock(2, ColourGreen, 20, Vec2{21, 1}),
	})
	sel := NewSpawnSelector(rand.New(rand.NewSource(1)))
	pl, err := sel.Select(city, ColourRed, Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	if pl.Rule != SpawnOtherColour {
		t.Fatalf("expected other-colour rule, got %s", pl.Rule)
	}
	if pl.Block != 1 && pl.Block != 2 {
		t.Fatalf("unexpected block %d", pl.Block)
	}
}

func TestSpawn_SkipsBlocksWithoutMarkers(t *testing.T) {
	city := NewCity(100, 20, []*Block{
		spawnBlock(1, ColourRed, 0),
		spawnBlock(2, ColourGrey, 20, Vec2{21, 1}),
	})
	sel := NewSpawnSelector(rand.New(rand.NewSource(1)))
	pl, err := sel.Select(city, ColourRed, Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	if pl.Block != 2 {
		t.Fatalf("expected marker-bearing grey block 2, got %+v", pl)
	}
}

func TestSpawn_Failures(t *testing.T) {
	sel := NewSpawnSelector(rand.New(rand.NewSource(1)))

	if _, err := sel.Select(NewCity(10, 10, nil), ColourRed, Vec2{}); !errors.Is(err, ErrEmptyCollection) {
		t.Fatalf("no blocks: expected ErrEmptyCollection, got %v", err)
	}
	bare := NewCity(10, 10, []*Block{spawnBlock(1, ColourRed, 0)})
	if _, err := sel.Select(bare, ColourRed, Vec2{}); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("no markers: expected ErrMissingReference, got %v", err)
	}
	if _, err := sel.Select(bare, ColourGrey, Vec2{}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("grey player: expected ErrInvalidState, got %v", err)
	}
}
