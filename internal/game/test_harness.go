package game

import "fmt"

// RunTicks advances the match n ticks at the tuning tick rate.
func (m *Match) RunTicks(n int) {
	dt := m.Tuning.TickDuration()
	for i := 0; i < n && !m.over; i++ {
		m.Tick(dt)
	}
}

// RunFor advances the match by at least seconds of match time.
func (m *Match) RunFor(seconds float64) {
	dt := m.Tuning.TickDuration()
	end := m.now + seconds
	for m.now+timeEpsilon < end && !m.over {
		m.Tick(dt)
	}
}

// RunUntil advances the match up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (m *Match) RunUntil(predicate func(*Match) bool, maxTicks int) int {
	dt := m.Tuning.TickDuration()
	for i := 0; i < maxTicks && !m.over; i++ {
		m.Tick(dt)
		if predicate(m) {
			return m.tick
		}
	}
	return -1
}

// Script is a fixed controller: it walks along Move and fires at a point or
// at a player every tick.
type Script struct {
	Move     Vec2
	AtPoint  *Vec2
	AtPlayer PlayerID
	Hold     bool // trigger
}

// Intent implements Controller.
func (s *Script) Intent(m *Match, p *Player, _ float64) Intent {
	in := Intent{Move: s.Move, Trigger: s.Hold}
	switch {
	case s.AtPlayer != 0:
		if o, err := m.Player(s.AtPlayer); err == nil {
			in.Aim = o.Pos.Sub(p.Pos)
		}
	case s.AtPoint != nil:
		in.Aim = s.AtPoint.Sub(p.Pos)
	}
	return in
}

// FireAt scripts a stationary player holding the trigger toward pt.
func FireAt(pt Vec2) *Script {
	return &Script{AtPoint: &pt, Hold: true}
}

// FireAtPlayer scripts a stationary player holding the trigger toward id.
func FireAtPlayer(id PlayerID) *Script {
	return &Script{AtPlayer: id, Hold: true}
}

// BuildBlock assembles a block whose buildings carry the given colours, laid
// out by the city generator's lot grid.
func BuildBlock(id BlockID, bounds Rect, colour Colour, firstBuilding BuildingID, colours ...Colour) *Block {
	b := &Block{ID: id, Bounds: bounds, Colour: colour}
	for i, lot := range buildingLots(bounds, len(colours)) {
		b.Buildings = append(b.Buildings, &Building{
			ID:     firstBuilding + BuildingID(i),
			Block:  id,
			Bounds: lot,
			Colour: colours[i],
		})
	}
	b.SpawnMarkers = spawnRing(bounds, 4)
	return b
}

// StateLine is a one-line snapshot for t.Log output.
func (m *Match) StateLine() string {
	s := fmt.Sprintf("T=%03d t=%.2fs", m.tick, m.now)
	for _, p := range m.Players {
		s += fmt.Sprintf(" | %s %s hp=%.0f pos=(%.1f,%.1f) active=%t", p.Label, p.Colour, p.Health, p.Pos.X, p.Pos.Y, p.active)
	}
	return s
}
