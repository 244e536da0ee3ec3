package game

import (
	"fmt"
	"strings"
)

// ColourStanding is one colour's line in a match report.
type ColourStanding struct {
	Colour        Colour
	Blocks        int
	Buildings     int
	BuildingShare float64 // of every building in the city, 0..1
	Conversions   int     // buildings converted to this colour
	Player        string  // label of the player carrying the colour, "" if none
	Deaths        int
	Respawns      int
}

// Report summarises a match at a point in time.
type Report struct {
	MatchID    string
	Seed       int64
	Tick       int
	Elapsed    float64
	Over       bool
	Standings  []ColourStanding // grey first, then team colours
	BlockFlips int
	Hits       int
	Misses     int
	Leader     Colour // team colour with most blocks, then most buildings; ColourNone on a tie
}

// Standing returns the line for c.
func (r Report) Standing(c Colour) (ColourStanding, bool) {
	for _, s := range r.Standings {
		if s.Colour == c {
			return s, true
		}
	}
	return ColourStanding{}, false
}

// BuildReport snapshots m.
func BuildReport(m *Match) Report {
	r := Report{
		MatchID:    m.ID,
		Seed:       m.seed,
		Tick:       m.tick,
		Elapsed:    m.now,
		Over:       m.over,
		BlockFlips: m.stats.blockFlips,
		Hits:       m.stats.hits,
		Misses:     m.stats.misses,
	}
	total := len(m.City.Buildings())
	for _, c := range buildingColours {
		s := ColourStanding{Colour: c, Blocks: len(m.City.BlocksByColour(c)), Conversions: m.stats.conversions[c]}
		for _, b := range m.City.Buildings() {
			if b.Colour == c {
				s.Buildings++
			}
		}
		if total > 0 {
			s.BuildingShare = float64(s.Buildings) / float64(total)
		}
		for _, p := range m.Players {
			if p.Colour == c {
				s.Player, s.Deaths, s.Respawns = p.Label, p.Deaths, p.Respawns
			}
		}
		r.Standings = append(r.Standings, s)
	}
	r.Leader = leader(r.Standings)
	return r
}

func leader(standings []ColourStanding) Colour {
	best := ColourNone
	var bestS ColourStanding
	tie := false
	for _, s := range standings {
		if !s.Colour.IsTeam() {
			continue
		}
		switch {
		case best == ColourNone && !tie,
			s.Blocks > bestS.Blocks,
			s.Blocks == bestS.Blocks && s.Buildings > bestS.Buildings:
			best, bestS, tie = s.Colour, s, false
		case s.Blocks == bestS.Blocks && s.Buildings == bestS.Buildings:
			tie = true
		}
	}
	if tie {
		return ColourNone
	}
	return best
}

// FormatReport renders r as a fixed-width text block.
func FormatReport(r Report) string {
	var sb strings.Builder
	state := "running"
	if r.Over {
		state = "over"
	}
	fmt.Fprintf(&sb, "Match %s  seed=%d  T=%d  %.1fs  %s\n", r.MatchID, r.Seed, r.Tick, r.Elapsed, state)
	fmt.Fprintf(&sb, "%-6s %-4s %6s %9s %7s %8s %6s %8s\n",
		"colour", "who", "blocks", "buildings", "share", "converts", "deaths", "respawns")
	for _, s := range r.Standings {
		who := s.Player
		if who == "" {
			who = "--"
		}
		fmt.Fprintf(&sb, "%-6s %-4s %6d %9d %6.1f%% %8d %6d %8d\n",
			s.Colour, who, s.Blocks, s.Buildings, s.BuildingShare*100, s.Conversions, s.Deaths, s.Respawns)
	}
	fmt.Fprintf(&sb, "block flips=%d  hits=%d  misses=%d\n", r.BlockFlips, r.Hits, r.Misses)
	if r.Leader == ColourNone {
		sb.WriteString("leader: tie\n")
	} else {
		fmt.Fprintf(&sb, "leader: %s\n", r.Leader)
	}
	return sb.String()
}
