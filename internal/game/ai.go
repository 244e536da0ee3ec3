package game

import (
	"fmt"
	"math"
	"sort"
)

const (
	aiArriveDist   = 0.5 // a waypoint this close counts as reached
	aiStuckTime    = 0.5 // seconds without progress before side-stepping
	aiSidestepTime = 0.6
)

// Controller produces a player's intent for one tick.
type Controller interface {
	Intent(m *Match, p *Player, dt float64) Intent
}

// ControllerFunc adapts a plain function to Controller.
type ControllerFunc func(m *Match, p *Player, dt float64) Intent

// Intent calls f.
func (f ControllerFunc) Intent(m *Match, p *Player, dt float64) Intent {
	return f(m, p, dt)
}

// Idle is a controller that never moves or shoots.
var Idle = ControllerFunc(func(*Match, *Player, float64) Intent { return Intent{} })

// AIController walks toward a block it wants to take and sprays its
// buildings from the pavement ring, switching to any enemy player it can
// see in range.
type AIController struct {
	retarget float64

	timer     float64
	target    BlockID
	hasTarget bool

	lastPos  Vec2
	stuckFor float64
	sidestep float64
	sideSign float64
}

// NewAIController creates an AI that picks a new target block every
// retarget seconds.
func NewAIController(retarget float64) *AIController {
	return &AIController{retarget: retarget, sideSign: 1}
}

// TargetBlock returns the block the AI is currently heading for.
func (ai *AIController) TargetBlock() (BlockID, bool) {
	return ai.target, ai.hasTarget
}

// Intent implements Controller.
func (ai *AIController) Intent(m *Match, p *Player, dt float64) Intent {
	if !p.Active() {
		ai.stuckFor, ai.sidestep = 0, 0
		return Intent{}
	}
	ai.timer -= dt
	if !ai.hasTarget || ai.timer <= timeEpsilon {
		ai.pickTarget(m, p)
		ai.timer = ai.retarget
	}

	reach := m.Tuning.Combat.ShootingRange
	if enemy, ok := ai.visibleEnemy(m, p, reach); ok {
		ai.settle(p)
		return Intent{Aim: enemy.Pos.Sub(p.Pos), Trigger: true}
	}

	if !ai.hasTarget {
		ai.settle(p)
		return Intent{}
	}
	blk, err := m.City.Block(ai.target)
	if err != nil {
		m.SimLog.Warn(m.tick, p.Label, err)
		ai.hasTarget = false
		ai.settle(p)
		return Intent{}
	}

	candidates := ai.unowned(blk, p)
	for _, bd := range candidates {
		aim := bd.Bounds.Centre().Sub(p.Pos)
		if aim.Len() > reach {
			continue
		}
		hit := m.combat.CastRay(m.City, m.Players, p, aim)
		if hit.Kind != TargetBuilding {
			continue
		}
		if b, err := m.City.Building(hit.Building); err == nil && b.Colour != p.Colour {
			ai.settle(p)
			return Intent{Aim: aim, Trigger: true}
		}
	}

	goal := blk.Centre()
	if len(candidates) > 0 {
		goal = ai.waypoint(m, p, pavementRing(blk.Bounds), candidates[0])
	}
	return Intent{Move: ai.unstick(p, goal.Sub(p.Pos).Normalize(), dt)}
}

// unowned returns blk's buildings not in the player's colour, nearest
// first.
func (ai *AIController) unowned(blk *Block, p *Player) []*Building {
	var out []*Building
	for _, bd := range blk.Buildings {
		if bd.Colour != p.Colour {
			out = append(out, bd)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Bounds.ClosestPoint(p.Pos).Dist(p.Pos) < out[j].Bounds.ClosestPoint(p.Pos).Dist(p.Pos)
	})
	return out
}

// waypoint walks toward the point of the pavement ring facing bd. When
// buildings are in the way it heads for the visible ring corner closest to
// that point instead.
func (ai *AIController) waypoint(m *Match, p *Player, ring Rect, bd *Building) Vec2 {
	vantage := ring.ClosestOnPerimeter(bd.Bounds.Centre())
	walls := m.City.Buildings()
	if HasLineOfSight(p.Pos, vantage, walls) {
		return vantage
	}
	best := vantage
	bestD := math.Inf(1)
	for _, c := range ring.Corners() {
		if c.Dist(p.Pos) < aiArriveDist || !HasLineOfSight(p.Pos, c, walls) {
			continue
		}
		if d := c.Dist(vantage); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

// settle resets stuck tracking while the player stands still on purpose.
func (ai *AIController) settle(p *Player) {
	ai.stuckFor, ai.sidestep = 0, 0
	ai.lastPos = p.Pos
}

// pickTarget chooses the nearest grey block, otherwise the nearest block
// not of the player's colour.
func (ai *AIController) pickTarget(m *Match, p *Player) {
	b, ok := m.City.NearestBlock(ColourGrey, p.Pos)
	if !ok {
		b, ok = nearestBlock(m.City.BlocksExcluding(p.Colour), p.Pos)
	}
	if !ok {
		ai.hasTarget = false
		return
	}
	if !ai.hasTarget || ai.target != b.ID {
		m.SimLog.Add(m.tick, p.Label, p.Colour.String(), "ai", "retarget",
			fmt.Sprintf("%s → B%02d (%s)", p.Label, b.ID, b.Colour), float64(b.ID))
	}
	ai.target, ai.hasTarget = b.ID, true
}

// visibleEnemy returns the nearest active enemy within reach with a clear
// line of sight.
func (ai *AIController) visibleEnemy(m *Match, p *Player, reach float64) (*Player, bool) {
	var best *Player
	bestD := reach
	for _, o := range m.Players {
		if o.ID == p.ID || !o.Active() || o.Colour == p.Colour {
			continue
		}
		d := o.Pos.Dist(p.Pos)
		if d > bestD {
			continue
		}
		if !HasLineOfSight(p.Pos, o.Pos, m.City.Buildings()) {
			continue
		}
		best, bestD = o, d
	}
	return best, best != nil
}

// unstick swaps a blocked heading for a perpendicular one for a moment.
func (ai *AIController) unstick(p *Player, move Vec2, dt float64) Vec2 {
	if ai.sidestep > 0 {
		ai.sidestep -= dt
		ai.lastPos = p.Pos
		return Vec2{-move.Y * ai.sideSign, move.X * ai.sideSign}.Add(move.Scale(0.3)).Normalize()
	}
	if move.IsZero() {
		ai.stuckFor = 0
		ai.lastPos = p.Pos
		return move
	}
	if p.Pos.Dist(ai.lastPos) < 1e-3 {
		ai.stuckFor += dt
	} else {
		ai.stuckFor = 0
	}
	ai.lastPos = p.Pos
	if ai.stuckFor >= aiStuckTime {
		ai.stuckFor = 0
		ai.sidestep = aiSidestepTime
		ai.sideSign = -ai.sideSign
	}
	return move
}
