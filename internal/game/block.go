package game

// BlockID identifies a city block.
type BlockID int

// Block is one grid cell of the city. It exclusively owns its buildings and
// derives its colour from theirs.
type Block struct {
	ID       BlockID
	Col, Row int
	Bounds   Rect
	Colour   Colour // committed colour, sticky until another colour holds 100%

	Buildings    []*Building
	SpawnMarkers []Vec2

	shares      Shares
	resolution  Colour
	warnedEmpty bool
}

// Centre is the block's position for distance queries.
func (b *Block) Centre() Vec2 {
	return b.Bounds.Centre()
}

// Shares returns the last computed per-colour building shares.
func (b *Block) Shares() Shares {
	return b.shares
}

// Resolution is the colour holding 100% of the buildings at the last
// recomputation, or ColourNone when no colour does.
func (b *Block) Resolution() Colour {
	return b.resolution
}

// Shares is the fraction (0..1) of a block's buildings per colour.
type Shares struct {
	Total  int
	counts [colourCount]int
}

// Count returns how many buildings carry c.
func (s Shares) Count(c Colour) int {
	if c < 0 || c >= colourCount {
		return 0
	}
	return s.counts[c]
}

// Of returns the share of c in [0,1]; 0 when the block has no buildings.
func (s Shares) Of(c Colour) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Count(c)) / float64(s.Total)
}

// Percent returns the share of c in [0,100].
func (s Shares) Percent(c Colour) float64 {
	return s.Of(c) * 100
}

// Sum returns the total share across building colours: 1 when the block has
// buildings, 0 otherwise.
func (s Shares) Sum() float64 {
	sum := 0.0
	for _, c := range buildingColours {
		sum += s.Of(c)
	}
	return sum
}

// Dominant returns the team colour with the largest share. Ties and blocks
// with no team-coloured buildings yield ColourNone.
func (s Shares) Dominant() Colour {
	best := ColourNone
	bestN := 0
	tie := false
	for _, c := range TeamColours {
		n := s.Count(c)
		switch {
		case n > bestN:
			best, bestN, tie = c, n, false
		case n == bestN && n > 0:
			tie = true
		}
	}
	if tie {
		return ColourNone
	}
	return best
}

func countShares(buildings []*Building) Shares {
	var s Shares
	for _, b := range buildings {
		if b == nil {
			continue
		}
		s.Total++
		if b.Colour >= 0 && b.Colour < colourCount {
			s.counts[b.Colour]++
		}
	}
	return s
}
