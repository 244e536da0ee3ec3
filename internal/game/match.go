package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/Kravenark/SplatterGameUnity/internal/tuning"
	"github.com/google/uuid"
)

// Match owns the city, the players and the tick loop. Players are kept in
// id order: index i holds PlayerID i+1. A Match is not safe for concurrent
// use.
type Match struct {
	ID      string
	Tuning  tuning.Tuning
	City    *City
	Players []*Player
	SimLog  *SimLog

	controllers map[PlayerID]Controller
	combat      *CombatResolver
	spawner     *SpawnSelector
	rng         *rand.Rand

	tick   int
	now    float64
	over   bool
	events []Event
	stats  matchStats

	// construction-time settings
	seed      int64
	presetMap bool
	positions map[PlayerID]Vec2
}

type matchStats struct {
	conversions [colourCount]int
	blockFlips  int
	hits        int
	misses      int
}

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra  optionKind = iota // seed, city, verbosity: applied before anything is built
	optPlayer                   // controllers, positions: applied once players exist
)

// Option configures a Match during construction.
type Option struct {
	kind optionKind
	fn   func(*Match)
}

// WithSeed overrides the tuning seed.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(m *Match) {
		m.seed = seed
	}}
}

// WithCity uses a prebuilt city instead of generating one. Block and
// building colours are taken as given.
func WithCity(c *City) Option {
	return Option{optInfra, func(m *Match) {
		m.City = c
		m.presetMap = true
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) Option {
	return Option{optInfra, func(m *Match) {
		m.SimLog = NewSimLog(v)
	}}
}

// WithController drives player id with c instead of the default AI.
func WithController(id PlayerID, c Controller) Option {
	return Option{optPlayer, func(m *Match) {
		m.controllers[id] = c
	}}
}

// WithPlayerPosition places player id at pos instead of a spawn marker.
func WithPlayerPosition(id PlayerID, pos Vec2) Option {
	return Option{optPlayer, func(m *Match) {
		m.positions[id] = pos
	}}
}

// NewMatch builds a match from t. Non-fatal setup problems are recorded in
// the sim log under "warn".
func NewMatch(t tuning.Tuning, opts ...Option) *Match {
	m := &Match{
		ID:          uuid.NewString(),
		Tuning:      t,
		SimLog:      NewSimLog(false),
		controllers: make(map[PlayerID]Controller),
		positions:   make(map[PlayerID]Vec2),
		seed:        t.Seed,
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(m)
		}
	}

	m.rng = rand.New(rand.NewSource(m.seed)) // #nosec G404 -- game only
	m.combat = NewCombatResolver(t.Combat, m.rng.Int63())
	m.spawner = NewSpawnSelector(m.rng)

	if m.City == nil {
		m.City = GenerateCity(t.Grid)
	}
	if !m.presetMap {
		if err := initBlockColours(m.City.Blocks, m.rng); err != nil {
			m.SimLog.Warn(0, "--", err)
		}
	}
	m.resolveTerritory(false)

	m.createPlayers()
	for _, o := range opts {
		if o.kind == optPlayer {
			o.fn(m)
		}
	}
	for _, p := range m.Players {
		if _, ok := m.controllers[p.ID]; !ok {
			m.controllers[p.ID] = NewAIController(t.AI.RetargetInterval)
		}
		if pos, ok := m.positions[p.ID]; ok && p.Colour.IsTeam() {
			p.Pos = pos
		}
	}
	m.updatePlayerBlocks()

	m.SimLog.Add(0, "--", "--", "match", "start",
		fmt.Sprintf("match %s seed=%d players=%d blocks=%d buildings=%d",
			m.ID, m.seed, len(m.Players), len(m.City.Blocks), len(m.City.Buildings())), float64(m.seed))
	return m
}

// createPlayers gives each player a distinct random team colour and an
// initial spawn point.
func (m *Match) createPlayers() {
	colours := append([]Colour(nil), TeamColours[:]...)
	m.rng.Shuffle(len(colours), func(i, j int) { colours[i], colours[j] = colours[j], colours[i] })

	centre := Vec2{m.City.Width / 2, m.City.Height / 2}
	for i := 0; i < m.Tuning.Players; i++ {
		id := PlayerID(i + 1)
		p := newPlayer(id, fmt.Sprintf("P%d", id), m.Tuning.Player.MaxHealth, m.Tuning.Player.Radius)
		p.Pos = centre
		m.Players = append(m.Players, p)
		if i >= len(colours) {
			p.Colour = ColourNone
			m.SimLog.Warn(0, p.Label, fmt.Errorf("%s: all %d team colours taken: %w", p.Label, len(colours), ErrEmptyCollection))
			continue
		}
		p.Colour = colours[i]
		p.active = true
		m.place(p, EventPlayerSpawned)
	}
}

// place moves p to a spawn point chosen for its colour and reports it as
// kind, EventPlayerSpawned or EventPlayerRespawned. A failed selection
// leaves p where it is.
func (m *Match) place(p *Player, kind EventKind) {
	pl, err := m.spawner.Select(m.City, p.Colour, p.Pos)
	if err != nil {
		m.SimLog.Warn(m.tick, p.Label, err)
		return
	}
	p.Pos = pl.Point
	m.emit(Event{Kind: kind, Player: p.ID, Block: pl.Block, Colour: p.Colour})
	m.SimLog.Add(m.tick, p.Label, p.Colour.String(), "spawn", spawnKey(kind),
		fmt.Sprintf("%s at B%02d (%.1f,%.1f) rule=%s", p.Label, pl.Block, pl.Point.X, pl.Point.Y, pl.Rule), float64(pl.Block))
}

// spawnKey is the sim log key for a placement event.
func spawnKey(kind EventKind) string {
	if kind == EventPlayerRespawned {
		return "respawned"
	}
	return "spawned"
}

// Player looks a player up by id.
func (m *Match) Player(id PlayerID) (*Player, error) {
	if id < 1 || int(id) > len(m.Players) {
		return nil, fmt.Errorf("player %d: %w", id, ErrMissingReference)
	}
	return m.Players[id-1], nil
}

// CurrentTick is the number of completed ticks.
func (m *Match) CurrentTick() int { return m.tick }

// Now is the match clock in seconds.
func (m *Match) Now() float64 { return m.now }

// Over reports whether the match duration has elapsed.
func (m *Match) Over() bool { return m.over }

// Seed is the seed the match RNG was built from.
func (m *Match) Seed() int64 { return m.seed }

// Attackers returns the players currently damaging id.
func (m *Match) Attackers(id PlayerID) []PlayerID {
	return m.combat.Attackers(id)
}

// Tick advances the match by dt seconds.
func (m *Match) Tick(dt float64) {
	if m.over || dt <= 0 {
		return
	}
	m.tick++

	for _, p := range m.Players {
		if !p.active {
			p.intent = Intent{}
			continue
		}
		p.intent = m.controllers[p.ID].Intent(m, p, dt)
	}

	m.movePlayers(dt)

	out := m.combat.Step(m.City, m.Players, dt)
	died := m.applyCombat(out)

	m.resolveTerritory(true)
	m.updatePlayerBlocks()

	for _, p := range m.Players {
		if died[p.ID] {
			continue
		}
		if p.advanceRespawn(dt) {
			p.revive()
			m.place(p, EventPlayerRespawned)
		}
	}

	if m.SimLog.verbose {
		for _, p := range m.Players {
			m.SimLog.AddVerbose(m.tick, p.Label, p.Colour.String(), "player", "state",
				fmt.Sprintf("pos=(%.1f,%.1f) hp=%.1f active=%t", p.Pos.X, p.Pos.Y, p.Health, p.active), p.Health)
		}
	}

	m.now += dt
	if d := m.Tuning.MatchDuration; d > 0 && m.now+timeEpsilon >= d {
		m.over = true
		m.SimLog.Add(m.tick, "--", "--", "match", "over",
			fmt.Sprintf("match over after %.1fs", m.now), m.now)
	}
}

// movePlayers walks each active player along its intent, sliding along
// buildings one axis at a time.
func (m *Match) movePlayers(dt float64) {
	for _, p := range m.Players {
		if !p.active || p.intent.Move.IsZero() {
			continue
		}
		move := p.intent.Move
		if move.Len() > 1 {
			move = move.Normalize()
		}
		step := move.Scale(m.Tuning.Player.Speed * dt)
		if nx := (Vec2{p.Pos.X + step.X, p.Pos.Y}); !m.City.Blocked(nx, p.Radius) {
			p.Pos = nx
		}
		if ny := (Vec2{p.Pos.X, p.Pos.Y + step.Y}); !m.City.Blocked(ny, p.Radius) {
			p.Pos = ny
		}
	}
}

// applyCombat turns a combat outcome into player state changes, events and
// log entries. It returns the players killed this tick.
func (m *Match) applyCombat(out CombatOutcome) map[PlayerID]bool {
	for _, pr := range out.Connected {
		m.stats.hits++
		a, v := m.label(pr.Attacker), m.label(pr.Target)
		m.emit(Event{Kind: EventPlayerHit, Player: pr.Target, Attacker: pr.Attacker})
		m.SimLog.Add(m.tick, a, m.colourOf(pr.Attacker), "combat", "connected",
			fmt.Sprintf("%s → %s", a, v), 0)
	}
	for _, pr := range out.Missed {
		m.stats.misses++
		a, v := m.label(pr.Attacker), m.label(pr.Target)
		m.SimLog.Add(m.tick, a, m.colourOf(pr.Attacker), "combat", "miss",
			fmt.Sprintf("%s ✗ %s", a, v), 0)
	}
	for _, pr := range out.Released {
		a, v := m.label(pr.Attacker), m.label(pr.Target)
		m.SimLog.Add(m.tick, a, m.colourOf(pr.Attacker), "combat", "released",
			fmt.Sprintf("%s lost %s", a, v), 0)
	}
	for _, id := range out.Interrupted {
		m.SimLog.Add(m.tick, fmt.Sprintf("W%02d", id), "--", "building", "interrupted",
			fmt.Sprintf("W%02d transition reset", id), 0)
	}
	for _, c := range out.Conversions {
		m.stats.conversions[c.To]++
		m.emit(Event{Kind: EventBuildingColoured, Attacker: c.Attacker, Building: c.Building, Block: c.Block, From: c.From, Colour: c.To})
		m.SimLog.Add(m.tick, fmt.Sprintf("W%02d", c.Building), c.To.String(), "building", "coloured",
			fmt.Sprintf("W%02d in B%02d %s→%s by %s", c.Building, c.Block, c.From, c.To, m.label(c.Attacker)), float64(c.Block))
	}
	if len(out.Damaged) > 0 && m.SimLog.verbose {
		for _, id := range out.Damaged {
			if p, err := m.Player(id); err == nil {
				m.SimLog.AddVerbose(m.tick, p.Label, p.Colour.String(), "combat", "damage",
					fmt.Sprintf("%s hp=%.1f", p.Label, p.Health), p.Health)
			}
		}
	}

	died := make(map[PlayerID]bool, len(out.Deaths))
	for _, d := range out.Deaths {
		p, err := m.Player(d.Victim)
		if err != nil {
			m.SimLog.Warn(m.tick, "--", err)
			continue
		}
		p.kill(m.Tuning.Combat.RespawnDelay)
		died[p.ID] = true
		by := make([]string, 0, len(d.Killers))
		for _, k := range d.Killers {
			by = append(by, m.label(k))
		}
		sort.Strings(by)
		m.emit(Event{Kind: EventPlayerDied, Player: p.ID, Colour: p.Colour})
		m.SimLog.Add(m.tick, p.Label, p.Colour.String(), "player", "died",
			fmt.Sprintf("%s killed by %v, respawn in %.1fs", p.Label, by, m.Tuning.Combat.RespawnDelay), m.Tuning.Combat.RespawnDelay)
	}
	for _, err := range out.Errors {
		m.SimLog.Warn(m.tick, "--", err)
	}
	return died
}

// resolveTerritory recomputes every block. Changes are only reported when
// emit is set; construction resolves silently.
func (m *Match) resolveTerritory(emit bool) {
	for _, b := range m.City.Blocks {
		ch, changed, err := ResolveBlock(b)
		if err != nil {
			m.SimLog.Warn(m.tick, fmt.Sprintf("B%02d", b.ID), err)
		}
		if !changed || !emit {
			continue
		}
		m.stats.blockFlips++
		m.emit(Event{Kind: EventBlockColoured, Block: ch.Block, From: ch.From, Colour: ch.To})
		m.SimLog.Add(m.tick, fmt.Sprintf("B%02d", ch.Block), ch.To.String(), "territory", "block_coloured",
			fmt.Sprintf("B%02d %s→%s", ch.Block, ch.From, ch.To), float64(ch.Block))
	}
}

func (m *Match) updatePlayerBlocks() {
	for _, p := range m.Players {
		b, ok := m.City.BlockAt(p.Pos)
		if !ok {
			p.block, p.inBlock, p.progress = 0, false, 0
			continue
		}
		p.block, p.inBlock = b.ID, true
		p.progress = b.Shares().Of(p.Colour)
	}
}

func (m *Match) emit(e Event) {
	e.Tick = m.tick
	m.events = append(m.events, e)
}

// DrainEvents returns the events recorded since the last drain.
func (m *Match) DrainEvents() []Event {
	out := m.events
	m.events = nil
	return out
}

func (m *Match) label(id PlayerID) string {
	if p, err := m.Player(id); err == nil {
		return p.Label
	}
	return fmt.Sprintf("P%d?", id)
}

func (m *Match) colourOf(id PlayerID) string {
	if p, err := m.Player(id); err == nil {
		return p.Colour.String()
	}
	return "--"
}

// BlockViews snapshots every block.
func (m *Match) BlockViews() []BlockView {
	out := make([]BlockView, 0, len(m.City.Blocks))
	for _, b := range m.City.Blocks {
		v := BlockView{
			ID:         b.ID,
			Bounds:     b.Bounds,
			Colour:     b.Colour,
			Resolution: b.Resolution(),
			Shares:     b.Shares(),
			Buildings:  make([]BuildingView, 0, len(b.Buildings)),
		}
		for _, bd := range b.Buildings {
			bv := BuildingView{ID: bd.ID, Bounds: bd.Bounds, Colour: bd.Colour, Target: ColourNone}
			if target, elapsed, ok := bd.Transitioning(); ok {
				bv.Target = target
				bv.Sprayer, _ = bd.Sprayer()
				bv.Progress = clamp01(elapsed / m.Tuning.Combat.TransitionDuration)
			}
			v.Buildings = append(v.Buildings, bv)
		}
		out = append(out, v)
	}
	return out
}

// PlayerViews snapshots every player.
func (m *Match) PlayerViews() []PlayerView {
	out := make([]PlayerView, 0, len(m.Players))
	for _, p := range m.Players {
		left, waiting := p.RespawnIn()
		out = append(out, PlayerView{
			ID:        p.ID,
			Label:     p.Label,
			Colour:    p.Colour,
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
			Pos:       p.Pos,
			Facing:    p.Facing,
			Radius:    p.Radius,
			Active:    p.active,
			RespawnIn: left,
			Awaiting:  waiting,
			Block:     p.block,
			InBlock:   p.inBlock,
			Progress:  p.progress,
			Target:    p.target,
			Attackers: m.combat.Attackers(p.ID),
			Deaths:    p.Deaths,
			Respawns:  p.Respawns,
		})
	}
	return out
}
