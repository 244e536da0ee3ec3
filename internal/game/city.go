package game

import (
	"fmt"
	"math"

	"github.com/Kravenark/SplatterGameUnity/internal/tuning"
)

const (
	blockMarginFrac = 0.12 // ring of pavement between block edge and buildings
	alleyFrac       = 0.08 // gap between neighbouring buildings
)

// City is the indexed registry of blocks and buildings plus the topology
// queries the rest of the core needs.
type City struct {
	Width, Height float64
	Blocks        []*Block

	blocksByID    map[BlockID]*Block
	buildingsByID map[BuildingID]*Building
	buildings     []*Building
}

// NewCity indexes the given blocks. Building back-references are rewritten
// to point at the block that owns them.
func NewCity(width, height float64, blocks []*Block) *City {
	c := &City{
		Width:         width,
		Height:        height,
		Blocks:        blocks,
		blocksByID:    make(map[BlockID]*Block, len(blocks)),
		buildingsByID: make(map[BuildingID]*Building),
	}
	for _, b := range blocks {
		c.blocksByID[b.ID] = b
		for _, bd := range b.Buildings {
			bd.Block = b.ID
			c.buildingsByID[bd.ID] = bd
			c.buildings = append(c.buildings, bd)
		}
	}
	return c
}

// GenerateCity lays out a cols x rows grid of blocks separated by streets.
// Each block holds a grid of building lots inside a pavement ring; spawn
// markers sit on that ring.
func GenerateCity(g tuning.Grid) *City {
	pitch := g.BlockSize + g.StreetWidth
	width := float64(g.Cols)*pitch + g.StreetWidth
	height := float64(g.Rows)*pitch + g.StreetWidth

	blocks := make([]*Block, 0, g.Cols*g.Rows)
	nextBuilding := BuildingID(1)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			id := BlockID(row*g.Cols + col + 1)
			bounds := Rect{
				X: g.StreetWidth + float64(col)*pitch,
				Y: g.StreetWidth + float64(row)*pitch,
				W: g.BlockSize,
				H: g.BlockSize,
			}
			b := &Block{ID: id, Col: col, Row: row, Bounds: bounds}
			for _, lot := range buildingLots(bounds, g.BuildingsPerBlock) {
				b.Buildings = append(b.Buildings, &Building{ID: nextBuilding, Block: id, Bounds: lot})
				nextBuilding++
			}
			b.SpawnMarkers = spawnRing(bounds, g.SpawnsPerBlock)
			blocks = append(blocks, b)
		}
	}
	return NewCity(width, height, blocks)
}

// buildingLots splits the inner area of a block into n lots laid out on a
// near-square grid, filled row by row.
func buildingLots(bounds Rect, n int) []Rect {
	if n <= 0 {
		return nil
	}
	margin := bounds.W * blockMarginFrac
	gap := bounds.W * alleyFrac
	inner := Rect{X: bounds.X + margin, Y: bounds.Y + margin, W: bounds.W - 2*margin, H: bounds.H - 2*margin}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	lotW := (inner.W - float64(cols-1)*gap) / float64(cols)
	lotH := (inner.H - float64(rows-1)*gap) / float64(rows)

	lots := make([]Rect, 0, n)
	for i := 0; i < n; i++ {
		r, c := i/cols, i%cols
		lots = append(lots, Rect{
			X: inner.X + float64(c)*(lotW+gap),
			Y: inner.Y + float64(r)*(lotH+gap),
			W: lotW,
			H: lotH,
		})
	}
	return lots
}

// pavementRing is the rectangle running down the middle of the pavement
// between a block's edge and its buildings.
func pavementRing(bounds Rect) Rect {
	inset := bounds.W * blockMarginFrac / 2
	return Rect{X: bounds.X + inset, Y: bounds.Y + inset, W: bounds.W - 2*inset, H: bounds.H - 2*inset}
}

// spawnRing spreads n markers evenly around the pavement ring.
func spawnRing(bounds Rect, n int) []Vec2 {
	if n <= 0 {
		return nil
	}
	ring := pavementRing(bounds)
	perimeter := 2 * (ring.W + ring.H)
	out := make([]Vec2, 0, n)
	for i := 0; i < n; i++ {
		d := perimeter * float64(i) / float64(n)
		out = append(out, pointOnPerimeter(ring, d))
	}
	return out
}

// pointOnPerimeter walks d units clockwise from r's top-left corner.
func pointOnPerimeter(r Rect, d float64) Vec2 {
	switch {
	case d < r.W:
		return Vec2{r.X + d, r.Y}
	case d < r.W+r.H:
		return Vec2{r.MaxX(), r.Y + (d - r.W)}
	case d < 2*r.W+r.H:
		return Vec2{r.MaxX() - (d - r.W - r.H), r.MaxY()}
	default:
		return Vec2{r.X, r.MaxY() - (d - 2*r.W - r.H)}
	}
}

// Block looks a block up by id.
func (c *City) Block(id BlockID) (*Block, error) {
	b, ok := c.blocksByID[id]
	if !ok {
		return nil, fmt.Errorf("block %d: %w", id, ErrMissingReference)
	}
	return b, nil
}

// Building looks a building up by id.
func (c *City) Building(id BuildingID) (*Building, error) {
	b, ok := c.buildingsByID[id]
	if !ok {
		return nil, fmt.Errorf("building %d: %w", id, ErrMissingReference)
	}
	return b, nil
}

// Buildings returns every building in id order.
func (c *City) Buildings() []*Building {
	return c.buildings
}

// BlocksByColour returns the blocks whose committed colour is col.
func (c *City) BlocksByColour(col Colour) []*Block {
	var out []*Block
	for _, b := range c.Blocks {
		if b.Colour == col {
			out = append(out, b)
		}
	}
	return out
}

// BlocksExcluding returns the blocks whose committed colour is not col.
func (c *City) BlocksExcluding(col Colour) []*Block {
	var out []*Block
	for _, b := range c.Blocks {
		if b.Colour != col {
			out = append(out, b)
		}
	}
	return out
}

// NearestBlock returns the block of colour col whose centre is closest to p.
func (c *City) NearestBlock(col Colour, p Vec2) (*Block, bool) {
	return nearestBlock(c.BlocksByColour(col), p)
}

// BlockAt returns the block whose bounds contain p.
func (c *City) BlockAt(p Vec2) (*Block, bool) {
	for _, b := range c.Blocks {
		if b.Bounds.Contains(p) {
			return b, true
		}
	}
	return nil, false
}

// Blocked reports whether a circle of radius r at p overlaps a building or
// leaves the city.
func (c *City) Blocked(p Vec2, r float64) bool {
	if p.X < r || p.Y < r || p.X > c.Width-r || p.Y > c.Height-r {
		return true
	}
	for _, bd := range c.buildings {
		if bd.Bounds.Expand(r).Contains(p) {
			return true
		}
	}
	return false
}

func nearestBlock(blocks []*Block, p Vec2) (*Block, bool) {
	var best *Block
	bestD := math.Inf(1)
	for _, b := range blocks {
		if d := b.Centre().Dist(p); d < bestD {
			best, bestD = b, d
		}
	}
	return best, best != nil
}
