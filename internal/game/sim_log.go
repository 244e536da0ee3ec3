package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a match.
type SimLogEntry struct {
	Tick     int     `json:"tick"`
	Actor    string  `json:"actor"`    // label e.g. "P1", "B07", "W12", or "--" for global events
	Colour   string  `json:"colour"`   // actor colour or "--"
	Category string  `json:"category"` // territory, building, combat, player, spawn, ai, warn, match
	Key      string  `json:"key"`      // specific event name within the category
	Value    string  `json:"value"`    // human-readable detail
	NumVal   float64 `json:"num"`      // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P1   combat    connected        P1 → P2
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured match events. It is unbounded and
// machine-readable; tests and the report tool read it back.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and
// health entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, colour, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Colour:   colour,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, colour, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, colour, category, key, value, numVal)
}

// Warn records a non-fatal failure under category "warn", keyed by its
// failure kind.
func (sl *SimLog) Warn(tick int, actor string, err error) {
	sl.Add(tick, actor, "--", "warn", errorKind(err), err.Error(), 0)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// matches reports whether e carries category and key and its value holds
// contains. Empty arguments match anything.
func (e SimLogEntry) matches(category, key, contains string) bool {
	return (category == "" || e.Category == category) &&
		(key == "" || e.Key == key) &&
		(contains == "" || strings.Contains(e.Value, contains))
}

// Filter returns entries matching category and key; "" matches any.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key, "") {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key, "") {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].matches(category, key, "") {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any entry matches category and key with a value
// containing contains.
func (sl *SimLog) HasEntry(category, key, contains string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key, contains) {
			return true
		}
	}
	return false
}

// Format renders the whole log, one line per entry, for t.Log output.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// Tail renders the last n entries.
func (sl *SimLog) Tail(n int) string {
	if n < len(sl.entries) {
		return formatEntries(sl.entries[len(sl.entries)-n:])
	}
	return formatEntries(sl.entries)
}

func formatEntries(entries []SimLogEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Summary returns a short human-readable snapshot of a match.
func (sl *SimLog) Summary(m *Match) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%.1fs) ---\n", m.CurrentTick(), m.Now())

	owned := map[Colour]int{}
	for _, b := range m.City.Blocks {
		owned[b.Colour]++
	}
	sb.WriteString("Blocks: ")
	for _, c := range buildingColours {
		fmt.Fprintf(&sb, "%s=%d  ", c, owned[c])
	}
	sb.WriteByte('\n')

	for _, p := range m.Players {
		state := "active"
		if left, waiting := p.RespawnIn(); waiting {
			state = fmt.Sprintf("respawn in %.1fs", left)
		} else if !p.Active() {
			state = "inactive"
		}
		fmt.Fprintf(&sb, "%s (%s): hp=%.0f/%.0f %s deaths=%d\n",
			p.Label, p.Colour, p.Health, p.MaxHealth, state, p.Deaths)
	}
	return sb.String()
}
