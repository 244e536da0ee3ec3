package game

import "fmt"

// Colour is the ownership colour of a block, building or player.
type Colour int

const (
	ColourNone Colour = iota // block not yet initialised / unresolved
	ColourGrey               // neutral
	ColourRed
	ColourGreen
	ColourBlue
	colourCount
)

// TeamColours are the colours a player can carry, in assignment order.
var TeamColours = [...]Colour{ColourRed, ColourGreen, ColourBlue}

// buildingColours are the colours a building can hold.
var buildingColours = [...]Colour{ColourGrey, ColourRed, ColourGreen, ColourBlue}

func (c Colour) String() string {
	switch c {
	case ColourNone:
		return "none"
	case ColourGrey:
		return "grey"
	case ColourRed:
		return "red"
	case ColourGreen:
		return "green"
	case ColourBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// IsTeam reports whether c is a player colour.
func (c Colour) IsTeam() bool {
	return c == ColourRed || c == ColourGreen || c == ColourBlue
}

// ParseColour maps a colour name to its value. Unknown names fall back to
// grey with an ErrInvalidState.
func ParseColour(s string) (Colour, error) {
	switch s {
	case "none":
		return ColourNone, nil
	case "grey", "gray":
		return ColourGrey, nil
	case "red":
		return ColourRed, nil
	case "green":
		return ColourGreen, nil
	case "blue":
		return ColourBlue, nil
	}
	return ColourGrey, fmt.Errorf("colour %q: %w", s, ErrInvalidState)
}
