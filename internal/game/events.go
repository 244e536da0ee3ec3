package game

import "fmt"

// EventKind classifies a match event.
type EventKind int

const (
	EventBuildingColoured EventKind = iota
	EventBlockColoured
	EventPlayerHit
	EventPlayerDied
	EventPlayerRespawned
	EventPlayerSpawned
)

func (k EventKind) String() string {
	switch k {
	case EventBuildingColoured:
		return "building_coloured"
	case EventBlockColoured:
		return "block_coloured"
	case EventPlayerHit:
		return "player_hit"
	case EventPlayerDied:
		return "player_died"
	case EventPlayerRespawned:
		return "player_respawned"
	case EventPlayerSpawned:
		return "player_spawned"
	default:
		return "unknown"
	}
}

// Event is one observable state change. Fields not relevant to Kind are
// zero.
type Event struct {
	Tick     int
	Kind     EventKind
	Player   PlayerID // subject: victim, spawned or respawned player
	Attacker PlayerID // shooter for hits and building conversions
	Building BuildingID
	Block    BlockID
	From     Colour
	Colour   Colour // new colour, or the subject player's colour
}

func (e Event) String() string {
	switch e.Kind {
	case EventBuildingColoured:
		return fmt.Sprintf("T=%d %s W%d %s→%s by P%d", e.Tick, e.Kind, e.Building, e.From, e.Colour, e.Attacker)
	case EventBlockColoured:
		return fmt.Sprintf("T=%d %s B%02d %s→%s", e.Tick, e.Kind, e.Block, e.From, e.Colour)
	case EventPlayerHit:
		return fmt.Sprintf("T=%d %s P%d by P%d", e.Tick, e.Kind, e.Player, e.Attacker)
	default:
		return fmt.Sprintf("T=%d %s P%d", e.Tick, e.Kind, e.Player)
	}
}

// BlockView is a read-only snapshot of a block for presentation.
type BlockView struct {
	ID         BlockID
	Bounds     Rect
	Colour     Colour
	Resolution Colour
	Shares     Shares
	Buildings  []BuildingView
}

// BuildingView is a read-only snapshot of a building.
type BuildingView struct {
	ID       BuildingID
	Bounds   Rect
	Colour   Colour
	Sprayer  PlayerID
	Target   Colour  // in-flight transition colour, ColourNone when stable
	Progress float64 // elapsed fraction of the transition, 0..1
}

// DisplayColour blends the building colour toward its transition target by
// progress, the way the spectator paints it.
func (v BuildingView) DisplayColour() (from, to Colour, t float64) {
	if v.Target == ColourNone {
		return v.Colour, v.Colour, 0
	}
	return v.Colour, v.Target, v.Progress
}

// PlayerView is a read-only snapshot of a player for presentation.
type PlayerView struct {
	ID        PlayerID
	Label     string
	Colour    Colour
	Health    float64
	MaxHealth float64
	Pos       Vec2
	Facing    Vec2
	Radius    float64
	Active    bool
	RespawnIn float64
	Awaiting  bool
	Block     BlockID
	InBlock   bool
	Progress  float64
	Target    Target
	Attackers []PlayerID
	Deaths    int
	Respawns  int
}
