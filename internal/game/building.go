package game

import "fmt"

// timeEpsilon absorbs float drift when summing per-tick dt against a
// duration threshold.
const timeEpsilon = 1e-9

// BuildingID identifies a building within a city.
type BuildingID int

// Building is the smallest colourable unit. It converts to an attacker's
// colour after transitionDuration seconds of uninterrupted spray.
type Building struct {
	ID     BuildingID
	Block  BlockID // back-reference to the owning block
	Bounds Rect
	Colour Colour

	spray sprayState
}

// sprayState is the in-flight "transitioning -> target" sub-state. The zero
// value means stable.
type sprayState struct {
	active   bool
	attacker PlayerID
	target   Colour
	elapsed  float64
}

// SprayResult is what one tick of spray did to a building.
type SprayResult int

const (
	SprayNoop      SprayResult = iota // already the attacker's colour
	SprayProgress                     // transition advanced, not yet committed
	SprayCommitted                    // building now carries the attacker's colour
)

func (r SprayResult) String() string {
	switch r {
	case SprayNoop:
		return "noop"
	case SprayProgress:
		return "progress"
	case SprayCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Spray advances the transition toward colour by dt on behalf of attacker.
// A different attacker than the current one restarts the timer from zero.
func (b *Building) Spray(attacker PlayerID, colour Colour, dt, duration float64) (SprayResult, error) {
	if !colour.IsTeam() {
		return SprayNoop, fmt.Errorf("building %d sprayed with %s: %w", b.ID, colour, ErrInvalidState)
	}
	if b.spray.active && b.spray.attacker != attacker {
		b.spray = sprayState{}
	}
	if b.Colour == colour {
		b.spray = sprayState{}
		return SprayNoop, nil
	}
	if !b.spray.active {
		b.spray = sprayState{active: true, attacker: attacker, target: colour}
	}
	b.spray.elapsed += dt
	if b.spray.elapsed+timeEpsilon >= duration {
		b.Colour = colour
		b.spray = sprayState{}
		return SprayCommitted, nil
	}
	return SprayProgress, nil
}

// CancelSpray abandons attacker's in-flight transition. Progress is not
// kept. It reports whether anything was cancelled.
func (b *Building) CancelSpray(attacker PlayerID) bool {
	if !b.spray.active || b.spray.attacker != attacker {
		return false
	}
	b.spray = sprayState{}
	return true
}

// Sprayer returns the player currently converting the building.
func (b *Building) Sprayer() (PlayerID, bool) {
	return b.spray.attacker, b.spray.active
}

// Transitioning reports the in-flight target colour and elapsed seconds.
func (b *Building) Transitioning() (target Colour, elapsed float64, ok bool) {
	if !b.spray.active {
		return ColourNone, 0, false
	}
	return b.spray.target, b.spray.elapsed, true
}

// setColour is used by block initialisation only.
func (b *Building) setColour(c Colour) {
	b.Colour = c
	b.spray = sprayState{}
}
