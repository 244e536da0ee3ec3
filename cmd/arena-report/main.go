package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/Kravenark/SplatterGameUnity/internal/eventlog"
	"github.com/Kravenark/SplatterGameUnity/internal/game"
	"github.com/Kravenark/SplatterGameUnity/internal/tuning"
)

type runStats struct {
	runIndex int
	seed     int64
	matchID  string
	ticks    int

	firstConversionTick int
	firstBlockFlipTick  int
	firstHitTick        int
	firstDeathTick      int

	conversions int
	blockFlips  int
	connects    int
	misses      int
	deaths      int
	respawns    int
	retargets   int
	warnings    map[string]int

	report game.Report
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var duration float64
	var tuningPath string
	var eventsPath string
	var readPath string
	var showReport bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&duration, "duration", 0, "match seconds per run (0 = tuning match_duration)")
	flag.StringVar(&tuningPath, "tuning", "", "YAML tuning file (default: built-in values)")
	flag.StringVar(&eventsPath, "events", "", "write the last run's sim log to this .jsonl.zst file")
	flag.StringVar(&readPath, "read", "", "summarise a .jsonl.zst sim log and exit")
	flag.BoolVar(&showReport, "report", false, "print the full match report for every run")
	flag.Parse()

	if readPath != "" {
		if err := summariseLog(readPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	tu := tuning.Default()
	if tuningPath != "" {
		var err error
		if tu, err = tuning.Load(tuningPath); err != nil {
			log.Fatal(err)
		}
	}
	if duration > 0 {
		tu.MatchDuration = duration
	}
	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if tu.MatchDuration <= 0 {
		fmt.Println("error: headless runs need a match duration (-duration or match_duration)")
		return
	}

	fmt.Printf("=== Headless Territory Report ===\n")
	fmt.Printf("runs=%d duration=%.0fs tick_rate=%dHz seed_base=%d seed_step=%d\n\n",
		runs, tu.MatchDuration, tu.TickRateHz, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	var last *game.Match
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		m := runMatch(tu, seed)
		stats := collectRun(i+1, m)
		all = append(all, stats)
		printRun(stats)
		if showReport {
			fmt.Print(game.FormatReport(stats.report))
			fmt.Println()
		}
		last = m
	}

	printAggregate(all)

	if eventsPath != "" && last != nil {
		if err := exportLog(eventsPath, last); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nsim log of run %d written to %s\n", len(all), eventsPath)
	}
}

func runMatch(tu tuning.Tuning, seed int64) *game.Match {
	m := game.NewMatch(tu, game.WithSeed(seed))
	dt := tu.TickDuration()
	for !m.Over() {
		m.Tick(dt)
	}
	return m
}

func collectRun(runIndex int, m *game.Match) runStats {
	entries := m.SimLog.Entries()
	warnings := map[string]int{}
	respawns := 0
	for _, e := range entries {
		switch e.Category {
		case "warn":
			warnings[e.Key]++
		case "spawn":
			if e.Key == "respawned" {
				respawns++
			}
		}
	}

	return runStats{
		runIndex:            runIndex,
		seed:                m.Seed(),
		matchID:             m.ID,
		ticks:               m.CurrentTick(),
		firstConversionTick: firstTick(entries, "building", "coloured", ""),
		firstBlockFlipTick:  firstTick(entries, "territory", "block_coloured", ""),
		firstHitTick:        firstTick(entries, "combat", "connected", ""),
		firstDeathTick:      firstTick(entries, "player", "died", ""),
		conversions:         m.SimLog.CountCategory("building", "coloured"),
		blockFlips:          m.SimLog.CountCategory("territory", "block_coloured"),
		connects:            m.SimLog.CountCategory("combat", "connected"),
		misses:              m.SimLog.CountCategory("combat", "miss"),
		deaths:              m.SimLog.CountCategory("player", "died"),
		respawns:            respawns,
		retargets:           m.SimLog.CountCategory("ai", "retarget"),
		warnings:            warnings,
		report:              game.BuildReport(m),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d match=%s) ---\n", rs.runIndex, rs.seed, rs.matchID)
	fmt.Printf("phase_markers: first_hit=%d first_conversion=%d first_block_flip=%d first_death=%d\n",
		rs.firstHitTick, rs.firstConversionTick, rs.firstBlockFlipTick, rs.firstDeathTick)
	fmt.Printf("event_totals: conversions=%d block_flips=%d connects=%d misses=%d deaths=%d respawns=%d retargets=%d\n",
		rs.conversions, rs.blockFlips, rs.connects, rs.misses, rs.deaths, rs.respawns, rs.retargets)
	fmt.Printf("blocks: %s\n", blockLine(rs.report))
	fmt.Printf("warnings: %s\n", joinCounts(rs.warnings))
	fmt.Printf("leader: %s\n", leaderName(rs.report.Leader))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalConversions := 0
	totalFlips := 0
	totalConnects := 0
	totalMisses := 0
	totalDeaths := 0
	totalRespawns := 0

	conversionTicks := make([]int, 0, len(all))
	flipTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	wins := map[string]int{}
	blocks := map[string]int{}

	for _, rs := range all {
		totalConversions += rs.conversions
		totalFlips += rs.blockFlips
		totalConnects += rs.connects
		totalMisses += rs.misses
		totalDeaths += rs.deaths
		totalRespawns += rs.respawns
		if rs.firstConversionTick >= 0 {
			conversionTicks = append(conversionTicks, rs.firstConversionTick)
		}
		if rs.firstBlockFlipTick >= 0 {
			flipTicks = append(flipTicks, rs.firstBlockFlipTick)
		}
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		wins[leaderName(rs.report.Leader)]++
		for _, s := range rs.report.Standings {
			blocks[s.Colour.String()] += s.Blocks
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", n)
	fmt.Printf("avg_events_per_run: conversions=%.1f block_flips=%.1f connects=%.1f misses=%.1f deaths=%.1f respawns=%.1f\n",
		avg(totalConversions, n), avg(totalFlips, n), avg(totalConnects, n), avg(totalMisses, n), avg(totalDeaths, n), avg(totalRespawns, n))
	fmt.Printf("phase_marker_avg_ticks: first_conversion=%s first_block_flip=%s first_death=%s\n",
		avgTickString(conversionTicks), avgTickString(flipTicks), avgTickString(deathTicks))
	fmt.Printf("hit_rate=%s\n", hitRate(totalConnects, totalMisses))
	fmt.Printf("avg_final_blocks: %s\n", avgCounts(blocks, n))
	fmt.Printf("leaders: %s\n", joinCounts(wins))
}

func exportLog(path string, m *game.Match) error {
	w, err := eventlog.Create(path)
	if err != nil {
		return err
	}
	if err := w.WriteMatch(m); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func summariseLog(path string) error {
	h, entries, err := eventlog.ReadFile(path)
	if err != nil {
		return err
	}
	cats := map[string]int{}
	for _, e := range entries {
		cats[e.Category+"/"+e.Key]++
	}
	fmt.Printf("=== Sim Log %s ===\n", path)
	fmt.Printf("match=%s seed=%d ticks=%d elapsed=%.1fs entries=%d (read %d)\n",
		h.MatchID, h.Seed, h.Ticks, h.Elapsed, h.Entries, len(entries))
	fmt.Printf("counts: %s\n", joinCounts(cats))
	return nil
}

func blockLine(r game.Report) string {
	parts := make([]string, 0, len(r.Standings))
	for _, s := range r.Standings {
		parts = append(parts, fmt.Sprintf("%s=%d(%.0f%%)", s.Colour, s.Blocks, s.BuildingShare*100))
	}
	return strings.Join(parts, " ")
}

func leaderName(c game.Colour) string {
	if c == game.ColourNone {
		return "tie"
	}
	return c.String()
}

func hitRate(connects, misses int) string {
	if connects+misses == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(connects)/float64(connects+misses)*100)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func avgCounts(counts map[string]int, n int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := sortedKeys(counts)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.1f", k, avg(counts[k], n)))
	}
	return strings.Join(parts, " ")
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := sortedKeys(counts)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
