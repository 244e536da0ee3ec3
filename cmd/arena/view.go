package main

import (
	"image/color"

	"github.com/Kravenark/SplatterGameUnity/internal/game"
)

const (
	borderWidth  = 16
	panelWidth   = 300
	feedLines    = 14
	statusFrames = 180
	charW        = 7
	lineH        = 14
	hudLineH     = 12
	hudPadX      = 5
	hudPadY      = 4
)

// view maps world units to screen pixels. The world origin sits at the
// inner corner of the border.
type view struct {
	scale float64
	offX  float64
	offY  float64
}

func newView(scale float64) *view {
	if scale <= 0 {
		scale = 4
	}
	return &view{scale: scale, offX: borderWidth, offY: borderWidth}
}

func (v *view) toScreen(p game.Vec2) (float32, float32) {
	return float32(p.X*v.scale + v.offX), float32(p.Y*v.scale + v.offY)
}

func (v *view) length(d float64) float32 {
	return float32(d * v.scale)
}

func (v *view) toWorld(x, y int) game.Vec2 {
	return game.Vec2{
		X: (float64(x) - v.offX) / v.scale,
		Y: (float64(y) - v.offY) / v.scale,
	}
}

var (
	colBackground = color.RGBA{R: 18, G: 20, B: 22, A: 255}
	colStreet     = color.RGBA{R: 34, G: 36, B: 40, A: 255}
	colPavement   = color.RGBA{R: 70, G: 72, B: 76, A: 255}
	colOutline    = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colPanel      = color.RGBA{R: 10, G: 12, B: 14, A: 230}
	colPanelEdge  = color.RGBA{R: 70, G: 80, B: 90, A: 200}
	colText       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	colDim        = color.RGBA{R: 130, G: 130, B: 130, A: 255}
	colHealthBack = color.RGBA{R: 50, G: 10, B: 10, A: 220}
	colHealth     = color.RGBA{R: 90, G: 220, B: 90, A: 240}
)

// colourRGBA is the paint for an ownership colour.
func colourRGBA(c game.Colour) color.RGBA {
	switch c {
	case game.ColourGrey:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	case game.ColourRed:
		return color.RGBA{R: 220, G: 60, B: 50, A: 255}
	case game.ColourGreen:
		return color.RGBA{R: 60, G: 190, B: 80, A: 255}
	case game.ColourBlue:
		return color.RGBA{R: 60, G: 110, B: 230, A: 255}
	default:
		return color.RGBA{R: 90, G: 90, B: 90, A: 255}
	}
}

// blend linearly interpolates a toward b; t is clamped to [0,1].
func blend(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// tint washes a block's pavement toward its owner colour.
func tint(c game.Colour) color.RGBA {
	if !c.IsTeam() {
		return colPavement
	}
	return blend(colPavement, colourRGBA(c), 0.35)
}

// buildingRGBA is the paint for a building mid-transition.
func buildingRGBA(bv game.BuildingView) color.RGBA {
	from, to, t := bv.DisplayColour()
	return blend(colourRGBA(from), colourRGBA(to), t)
}

// pushLine appends to a bounded feed, dropping the oldest lines.
func pushLine(feed []string, line string, limit int) []string {
	feed = append(feed, line)
	if len(feed) > limit {
		feed = feed[len(feed)-limit:]
	}
	return feed
}
