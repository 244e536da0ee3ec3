package game

// PlayerID identifies a player for the lifetime of a match.
type PlayerID int

// Intent is one tick of player input: where to walk, where to aim and
// whether the trigger is held. Zero Aim means no attack ray.
type Intent struct {
	Move    Vec2
	Aim     Vec2
	Trigger bool
}

// Player is created at match start and never destroyed; death only
// deactivates it until the respawn timer runs out.
type Player struct {
	ID        PlayerID
	Label     string
	Colour    Colour
	Health    float64
	MaxHealth float64
	Pos       Vec2
	Facing    Vec2
	Radius    float64

	active          bool
	awaitingRespawn bool
	respawnIn       float64
	intent          Intent
	target          Target

	block    BlockID
	inBlock  bool
	progress float64

	Deaths   int
	Respawns int
}

func newPlayer(id PlayerID, label string, maxHealth, radius float64) *Player {
	return &Player{
		ID:        id,
		Label:     label,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Radius:    radius,
		Facing:    Vec2{X: 1},
	}
}

// Active reports whether the player can move, shoot and be shot.
func (p *Player) Active() bool {
	return p.active
}

// RespawnIn returns the seconds left before a dead player comes back.
func (p *Player) RespawnIn() (float64, bool) {
	return p.respawnIn, p.awaitingRespawn
}

// CurrentBlock returns the block the player stands in.
func (p *Player) CurrentBlock() (BlockID, bool) {
	return p.block, p.inBlock
}

// Progress is the player's own colour share of its current block.
func (p *Player) Progress() float64 {
	return p.progress
}

// Target is what the player's attack ray hit last tick.
func (p *Player) Target() Target {
	return p.target
}

// applyDamage removes amount health from an active player and reports
// whether this killed it.
func (p *Player) applyDamage(amount float64) bool {
	if !p.active || amount <= 0 {
		return false
	}
	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		return true
	}
	return false
}

// kill deactivates the player and schedules its respawn.
func (p *Player) kill(delay float64) {
	p.active = false
	p.awaitingRespawn = true
	p.respawnIn = delay
	p.intent = Intent{}
	p.target = Target{}
	p.Deaths++
}

// advanceRespawn ticks the respawn timer and reports when it has run out.
func (p *Player) advanceRespawn(dt float64) bool {
	if !p.awaitingRespawn {
		return false
	}
	p.respawnIn -= dt
	if p.respawnIn <= timeEpsilon {
		p.respawnIn = 0
		return true
	}
	return false
}

// revive restores full health and reactivates the player.
func (p *Player) revive() {
	p.Health = p.MaxHealth
	p.active = true
	p.awaitingRespawn = false
	p.respawnIn = 0
	p.Respawns++
}
