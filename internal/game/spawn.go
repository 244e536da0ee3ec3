package game

import (
	"fmt"
	"math/rand"
)

// SpawnRule records how a spawn block was chosen.
type SpawnRule int

const (
	SpawnOwnColour   SpawnRule = iota // a block of the player's colour
	SpawnNearestGrey                  // no own block: nearest grey block
	SpawnOtherColour                  // no grey block either: any block not of the player's colour
)

func (r SpawnRule) String() string {
	switch r {
	case SpawnOwnColour:
		return "own_colour"
	case SpawnNearestGrey:
		return "nearest_grey"
	case SpawnOtherColour:
		return "other_colour"
	default:
		return "unknown"
	}
}

// Placement is a chosen spawn point.
type Placement struct {
	Block BlockID
	Point Vec2
	Rule  SpawnRule
}

// SpawnSelector picks respawn and initial placement points.
type SpawnSelector struct {
	rng *rand.Rand
}

// NewSpawnSelector creates a selector drawing from rng.
func NewSpawnSelector(rng *rand.Rand) *SpawnSelector {
	return &SpawnSelector{rng: rng}
}

// Select picks a block for colour and a random spawn marker inside it.
// last is the player's last known position, used for the nearest-grey rule.
func (s *SpawnSelector) Select(city *City, colour Colour, last Vec2) (Placement, error) {
	if !colour.IsTeam() {
		return Placement{}, fmt.Errorf("spawn for colour %s: %w", colour, ErrInvalidState)
	}
	var (
		block *Block
		rule  SpawnRule
	)
	if own := withMarkers(city.BlocksByColour(colour)); len(own) > 0 {
		block, rule = own[s.rng.Intn(len(own))], SpawnOwnColour
	} else if grey, ok := nearestBlock(withMarkers(city.BlocksByColour(ColourGrey)), last); ok {
		block, rule = grey, SpawnNearestGrey
	} else if other := withMarkers(city.BlocksExcluding(colour)); len(other) > 0 {
		block, rule = other[s.rng.Intn(len(other))], SpawnOtherColour
	}
	if block == nil {
		if len(city.Blocks) == 0 {
			return Placement{}, fmt.Errorf("spawn for %s: no blocks: %w", colour, ErrEmptyCollection)
		}
		return Placement{}, fmt.Errorf("spawn for %s: no spawn markers: %w", colour, ErrMissingReference)
	}
	marker := block.SpawnMarkers[s.rng.Intn(len(block.SpawnMarkers))]
	return Placement{Block: block.ID, Point: marker, Rule: rule}, nil
}

func withMarkers(blocks []*Block) []*Block {
	out := blocks[:0:0]
	for _, b := range blocks {
		if len(b.SpawnMarkers) > 0 {
			out = append(out, b)
		}
	}
	return out
}
