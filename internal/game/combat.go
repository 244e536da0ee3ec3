package game

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Kravenark/SplatterGameUnity/internal/tuning"
)

// TargetKind classifies what an attack ray hit.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetPlayer
	TargetBuilding
)

func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "none"
	case TargetPlayer:
		return "player"
	case TargetBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// Target is the nearest thing an attack ray hit.
type Target struct {
	Kind     TargetKind
	Player   PlayerID
	Building BuildingID
	Point    Vec2
	Dist     float64
}

// same reports whether a and b name the same entity.
func (t Target) same(o Target) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TargetPlayer:
		return t.Player == o.Player
	case TargetBuilding:
		return t.Building == o.Building
	default:
		return true
	}
}

// contact is one attacker's current attacker-target pair.
type contact struct {
	target    Target
	connected bool // player targets: hit roll succeeded, damage is flowing
}

// Pair names an attacker and the player it affects.
type Pair struct {
	Attacker PlayerID
	Target   PlayerID
}

// Conversion is a building that committed to an attacker's colour.
type Conversion struct {
	Building BuildingID
	Block    BlockID
	Attacker PlayerID
	From, To Colour
}

// Death is a player whose health reached zero this tick.
type Death struct {
	Victim  PlayerID
	Killers []PlayerID
}

// CombatOutcome lists what one Step did, for logging and events.
type CombatOutcome struct {
	Connected   []Pair
	Missed      []Pair
	Released    []Pair
	Interrupted []BuildingID
	Conversions []Conversion
	Damaged     []PlayerID
	Deaths      []Death
	Errors      []error
}

// CombatResolver resolves attack rays into damage-over-time on players and
// colour transitions on buildings. It owns every attacker-target pair and
// the per-target attacker sets.
type CombatResolver struct {
	cfg tuning.Combat
	rng *rand.Rand

	contacts  map[PlayerID]contact
	attackers map[PlayerID]map[PlayerID]struct{} // target -> attackers
	cooldown  map[PlayerID]float64               // seconds until the attacker's next hit roll
}

// NewCombatResolver creates a resolver with its own RNG.
func NewCombatResolver(cfg tuning.Combat, seed int64) *CombatResolver {
	return &CombatResolver{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		contacts:  make(map[PlayerID]contact),
		attackers: make(map[PlayerID]map[PlayerID]struct{}),
		cooldown:  make(map[PlayerID]float64),
	}
}

// Attackers returns the ids currently damaging target, sorted.
func (cr *CombatResolver) Attackers(target PlayerID) []PlayerID {
	set := cr.attackers[target]
	out := make([]PlayerID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CastRay finds the nearest building or other active player along the
// shooter's aim within shooting range.
func (cr *CombatResolver) CastRay(city *City, players []*Player, shooter *Player, aim Vec2) Target {
	dir := aim.Normalize()
	if dir.IsZero() {
		return Target{}
	}
	from := shooter.Pos
	to := from.Add(dir.Scale(cr.cfg.ShootingRange))

	best := Target{}
	bestT := math.Inf(1)
	for _, b := range city.Buildings() {
		if t, hit := segmentRectHitT(from, to, b.Bounds); hit && t < bestT {
			bestT = t
			best = Target{Kind: TargetBuilding, Building: b.ID}
		}
	}
	for _, p := range players {
		if p.ID == shooter.ID || !p.active || p.Colour == shooter.Colour {
			continue
		}
		if t, hit := segmentCircleHitT(from, to, p.Pos, p.Radius); hit && t < bestT {
			bestT = t
			best = Target{Kind: TargetPlayer, Player: p.ID}
		}
	}
	if best.Kind != TargetNone {
		best.Point = from.Add(to.Sub(from).Scale(bestT))
		best.Dist = bestT * cr.cfg.ShootingRange
	}
	return best
}

// Step runs one tick of combat for every player. Intents must already be
// set on the players.
func (cr *CombatResolver) Step(city *City, players []*Player, dt float64) CombatOutcome {
	var out CombatOutcome
	byID := make(map[PlayerID]*Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	for _, p := range players {
		if cd := cr.cooldown[p.ID]; cd > 0 {
			cr.cooldown[p.ID] = math.Max(0, cd-dt)
		}
	}

	for _, p := range players {
		if !p.active {
			cr.release(city, p.ID, &out)
			continue
		}
		if !p.intent.Aim.IsZero() {
			p.Facing = p.intent.Aim.Normalize()
		}
		if !p.intent.Trigger {
			cr.release(city, p.ID, &out)
			p.target = Target{}
			continue
		}
		tgt := cr.CastRay(city, players, p, p.intent.Aim)
		p.target = tgt
		prev, had := cr.contacts[p.ID]
		if had && !prev.target.same(tgt) {
			cr.release(city, p.ID, &out)
		}
		switch tgt.Kind {
		case TargetNone:
		case TargetBuilding:
			cr.sprayBuilding(city, p, tgt, dt, &out)
		case TargetPlayer:
			cr.shootPlayer(p, tgt, &out)
		}
	}

	cr.applyDamage(city, byID, dt, &out)
	return out
}

// applyDamage runs one damage-over-time per target while any attacker is
// connected. Every victim is damaged against the attacker sets as they stand
// before anyone is removed, so players that kill each other on the same tick
// both die.
func (cr *CombatResolver) applyDamage(city *City, byID map[PlayerID]*Player, dt float64, out *CombatOutcome) {
	ids := make([]PlayerID, 0, len(cr.attackers))
	for id := range cr.attackers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var dead []PlayerID
	for _, id := range ids {
		if len(cr.attackers[id]) == 0 {
			continue
		}
		victim, ok := byID[id]
		if !ok {
			delete(cr.attackers, id)
			continue
		}
		out.Damaged = append(out.Damaged, id)
		if victim.applyDamage(cr.cfg.DamagePerSecond * dt) {
			out.Deaths = append(out.Deaths, Death{Victim: id, Killers: cr.Attackers(id)})
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		cr.dropPlayer(city, id, out)
	}
}

func (cr *CombatResolver) sprayBuilding(city *City, p *Player, tgt Target, dt float64, out *CombatOutcome) {
	b, err := city.Building(tgt.Building)
	if err != nil {
		out.Errors = append(out.Errors, err)
		return
	}
	if holder, ok := b.Sprayer(); ok && holder != p.ID {
		out.Interrupted = append(out.Interrupted, b.ID)
	}
	from := b.Colour
	res, err := b.Spray(p.ID, p.Colour, dt, cr.cfg.TransitionDuration)
	if err != nil {
		out.Errors = append(out.Errors, err)
		return
	}
	cr.contacts[p.ID] = contact{target: tgt}
	if res == SprayCommitted {
		out.Conversions = append(out.Conversions, Conversion{
			Building: b.ID, Block: b.Block, Attacker: p.ID, From: from, To: b.Colour,
		})
	}
}

func (cr *CombatResolver) shootPlayer(p *Player, tgt Target, out *CombatOutcome) {
	c := cr.contacts[p.ID]
	c.target = tgt
	if !c.connected && cr.cooldown[p.ID] <= timeEpsilon {
		cr.cooldown[p.ID] = cr.cfg.ShotCooldown
		pair := Pair{Attacker: p.ID, Target: tgt.Player}
		if cr.rng.Float64()*100 < cr.cfg.HitChancePercent {
			c.connected = true
			set := cr.attackers[tgt.Player]
			if set == nil {
				set = make(map[PlayerID]struct{})
				cr.attackers[tgt.Player] = set
			}
			set[p.ID] = struct{}{}
			out.Connected = append(out.Connected, pair)
		} else {
			out.Missed = append(out.Missed, pair)
		}
	}
	cr.contacts[p.ID] = c
}

// release cancels attacker's current pair: a connected shot stops adding
// to its target's attacker set, a building transition is abandoned.
func (cr *CombatResolver) release(city *City, attacker PlayerID, out *CombatOutcome) {
	c, ok := cr.contacts[attacker]
	if !ok {
		return
	}
	delete(cr.contacts, attacker)
	switch c.target.Kind {
	case TargetPlayer:
		if set := cr.attackers[c.target.Player]; set != nil {
			if _, in := set[attacker]; in {
				delete(set, attacker)
				out.Released = append(out.Released, Pair{Attacker: attacker, Target: c.target.Player})
			}
		}
	case TargetBuilding:
		if b, err := city.Building(c.target.Building); err == nil {
			if b.CancelSpray(attacker) {
				out.Interrupted = append(out.Interrupted, b.ID)
			}
		}
	}
}

// dropPlayer removes a dead player from combat both as target and as
// attacker.
func (cr *CombatResolver) dropPlayer(city *City, id PlayerID, out *CombatOutcome) {
	for attacker := range cr.attackers[id] {
		delete(cr.contacts, attacker)
	}
	delete(cr.attackers, id)
	cr.release(city, id, out)
	cr.cooldown[id] = 0
}
