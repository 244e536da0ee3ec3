package game

import (
	"fmt"
	"math/rand"
)

// TerritoryChange records a block whose committed colour flipped.
type TerritoryChange struct {
	Block    BlockID
	From, To Colour
}

// ResolveBlock recomputes a block's shares from its buildings and commits
// the block colour when one colour holds every building. It returns whether
// the committed colour changed. A block without buildings keeps its colour
// and reports ErrEmptyCollection the first time it is seen.
func ResolveBlock(b *Block) (TerritoryChange, bool, error) {
	b.shares = countShares(b.Buildings)
	b.resolution = ColourNone
	if b.shares.Total == 0 {
		if b.warnedEmpty {
			return TerritoryChange{}, false, nil
		}
		b.warnedEmpty = true
		return TerritoryChange{}, false, fmt.Errorf("block %d has no buildings: %w", b.ID, ErrEmptyCollection)
	}
	for _, c := range buildingColours {
		if b.shares.Count(c) == b.shares.Total {
			b.resolution = c
			break
		}
	}
	if b.resolution == ColourNone || b.resolution == b.Colour {
		return TerritoryChange{}, false, nil
	}
	ch := TerritoryChange{Block: b.ID, From: b.Colour, To: b.resolution}
	b.Colour = b.resolution
	return ch, true, nil
}

// initBlockColours gives three distinct random blocks the team colours and
// every other unset block grey; each block's buildings take the block colour.
func initBlockColours(blocks []*Block, rng *rand.Rand) error {
	var err error
	candidates := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Colour == ColourNone {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) < len(TeamColours) {
		err = fmt.Errorf("%d blocks for %d team colours: %w", len(candidates), len(TeamColours), ErrEmptyCollection)
	} else {
		rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
		for i, c := range TeamColours {
			candidates[i].Colour = c
		}
	}
	for _, b := range blocks {
		if b.Colour == ColourNone {
			b.Colour = ColourGrey
		}
		for _, bd := range b.Buildings {
			bd.setColour(b.Colour)
		}
		b.warnedEmpty = false
		b.shares = countShares(b.Buildings)
		b.resolution = ColourNone
		if b.shares.Total > 0 {
			b.resolution = b.Colour
		}
	}
	return err
}
