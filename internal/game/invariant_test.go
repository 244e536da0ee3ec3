package game

import (
	"fmt"
	"math"
	"testing"

	"github.com/Kravenark/SplatterGameUnity/internal/tuning"
)

// --- Invariant helpers ---

// checkShares verifies every block's shares sum to 1 (or 0 without
// buildings) and that Resolution is X exactly when every building is X.
func checkShares(m *Match) error {
	for _, b := range m.City.Blocks {
		s := b.Shares()
		want := 1.0
		if len(b.Buildings) == 0 {
			want = 0
		}
		if math.Abs(s.Sum()-want) > 1e-9 {
			return fmt.Errorf("B%02d shares sum to %.6f", b.ID, s.Sum())
		}
		uniform := ColourNone
		if len(b.Buildings) > 0 {
			uniform = b.Buildings[0].Colour
			for _, bd := range b.Buildings[1:] {
				if bd.Colour != uniform {
					uniform = ColourNone
					break
				}
			}
		}
		if b.Resolution() != uniform {
			return fmt.Errorf("B%02d resolution %s, buildings uniform=%s", b.ID, b.Resolution(), uniform)
		}
		if uniform != ColourNone && b.Colour != uniform {
			return fmt.Errorf("B%02d resolved to %s but committed %s", b.ID, uniform, b.Colour)
		}
	}
	return nil
}

// checkPlayers verifies health bounds, unique colours and that inactive
// players are nobody's target or attacker.
func checkPlayers(m *Match) error {
	colours := map[Colour]PlayerID{}
	for _, p := range m.Players {
		if p.Health < 0 || p.Health > p.MaxHealth {
			return fmt.Errorf("%s health %.3f outside [0,%.0f]", p.Label, p.Health, p.MaxHealth)
		}
		if p.Colour.IsTeam() {
			if other, dup := colours[p.Colour]; dup {
				return fmt.Errorf("%s and P%d share %s", p.Label, other, p.Colour)
			}
			colours[p.Colour] = p.ID
		}
		if p.Active() {
			continue
		}
		if a := m.Attackers(p.ID); len(a) != 0 {
			return fmt.Errorf("inactive %s still attacked by %v", p.Label, a)
		}
		for _, o := range m.Players {
			for _, a := range m.Attackers(o.ID) {
				if a == p.ID {
					return fmt.Errorf("inactive %s still attacking %s", p.Label, o.Label)
				}
			}
		}
	}
	return nil
}

// healthSnapshot records each active player's health before a tick.
func healthSnapshot(m *Match) map[PlayerID]float64 {
	hp := map[PlayerID]float64{}
	for _, p := range m.Players {
		if p.Active() {
			hp[p.ID] = p.Health
		}
	}
	return hp
}

// checkDamage verifies that a player active before the tick lost exactly
// dps*dt when it ended the tick still under attack, either nothing or one
// step otherwise (its attacker may have died this tick), and at most one
// step when it died.
func checkDamage(m *Match, before map[PlayerID]float64, dt float64) error {
	step := m.Tuning.Combat.DamagePerSecond * dt
	for _, p := range m.Players {
		hp, ok := before[p.ID]
		if !ok {
			continue
		}
		drop := hp - p.Health
		switch {
		case !p.Active():
			if p.Health != 0 || drop > step+1e-9 {
				return fmt.Errorf("%s died from %.3f to %.3f, step %.3f", p.Label, hp, p.Health, step)
			}
		case len(m.Attackers(p.ID)) > 0:
			if math.Abs(drop-step) > 1e-9 {
				return fmt.Errorf("%s attacked by %v lost %.6f, want %.6f", p.Label, m.Attackers(p.ID), drop, step)
			}
		case drop != 0 && math.Abs(drop-step) > 1e-9:
			return fmt.Errorf("%s lost %.6f, want 0 or %.6f", p.Label, drop, step)
		}
	}
	return nil
}

func TestInvariant_DefaultMatchEveryTick(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			tu := tuning.Default()
			tu.MatchDuration = 0
			m := NewMatch(tu, WithSeed(seed))
			dt := tu.TickDuration()
			for i := 0; i < 60*45; i++ {
				before := healthSnapshot(m)
				m.Tick(dt)
				if err := checkDamage(m, before, dt); err != nil {
					t.Fatalf("T=%d: %v", m.CurrentTick(), err)
				}
				if err := checkShares(m); err != nil {
					t.Fatalf("T=%d: %v", m.CurrentTick(), err)
				}
				if err := checkPlayers(m); err != nil {
					t.Fatalf("T=%d: %v\n%s", m.CurrentTick(), err, m.StateLine())
				}
			}
			t.Log(m.SimLog.Summary(m))
		})
	}
}

func TestInvariant_DeadPlayersStayPut(t *testing.T) {
	tu := tuning.Default()
	tu.Combat.HitChancePercent = 100
	m := NewMatch(tu, WithSeed(11), WithVerbose(true))
	dt := tu.TickDuration()

	deadAt := map[PlayerID]Vec2{}
	for i := 0; i < 60*60; i++ {
		before := healthSnapshot(m)
		m.Tick(dt)
		if err := checkDamage(m, before, dt); err != nil {
			t.Fatalf("T=%d: %v", m.CurrentTick(), err)
		}
		for _, p := range m.Players {
			if p.Active() {
				delete(deadAt, p.ID)
				continue
			}
			if pos, ok := deadAt[p.ID]; ok && pos != p.Pos {
				t.Fatalf("T=%d: dead %s moved %v → %v", m.CurrentTick(), p.Label, pos, p.Pos)
			}
			deadAt[p.ID] = p.Pos
		}
	}
	if m.SimLog.CountCategory("player", "state") == 0 {
		t.Fatal("verbose mode recorded no per-tick state")
	}
}

func TestInvariant_EventsMatchLog(t *testing.T) {
	m := NewMatch(tuning.Default(), WithSeed(4))
	m.DrainEvents()
	counts := map[EventKind]int{}
	for i := 0; i < 60*40; i++ {
		m.Tick(m.Tuning.TickDuration())
		for _, e := range m.DrainEvents() {
			if e.Tick != m.CurrentTick() {
				t.Fatalf("event %v stamped with the wrong tick", e)
			}
			counts[e.Kind]++
		}
	}
	if got, want := counts[EventBuildingColoured], m.SimLog.CountCategory("building", "coloured"); got != want {
		t.Fatalf("building events %d, log entries %d", got, want)
	}
	if got, want := counts[EventBlockColoured], m.SimLog.CountCategory("territory", "block_coloured"); got != want {
		t.Fatalf("block events %d, log entries %d", got, want)
	}
	if got, want := counts[EventPlayerDied], m.SimLog.CountCategory("player", "died"); got != want {
		t.Fatalf("death events %d, log entries %d", got, want)
	}
}

func TestInvariant_MutualDuelBothDie(t *testing.T) {
	m := NewMatch(testTuning(2), WithSeed(1), WithCity(duelCity()),
		WithPlayerPosition(1, Vec2{20, 55}),
		WithPlayerPosition(2, Vec2{50, 55}),
		WithController(1, FireAtPlayer(2)),
		WithController(2, FireAtPlayer(1)))
	p1, _ := m.Player(1)
	p2, _ := m.Player(2)
	dt := m.Tuning.TickDuration()
	for i := 0; i < 600 && p1.Active() && p2.Active(); i++ {
		before := healthSnapshot(m)
		m.Tick(dt)
		if err := checkDamage(m, before, dt); err != nil {
			t.Fatalf("T=%d: %v", m.CurrentTick(), err)
		}
	}
	if p1.Active() || p2.Active() {
		t.Fatalf("symmetric duel should kill both: p1 hp=%.3f p2 hp=%.3f", p1.Health, p2.Health)
	}
	if m.SimLog.CountCategory("player", "died") != 2 {
		t.Fatalf("expected two deaths on the same tick:\n%s", m.SimLog.Tail(20))
	}
}
