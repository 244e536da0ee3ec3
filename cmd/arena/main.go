package main

import (
	"flag"
	"log"

	"github.com/Kravenark/SplatterGameUnity/internal/eventlog"
	"github.com/Kravenark/SplatterGameUnity/internal/game"
	"github.com/Kravenark/SplatterGameUnity/internal/tuning"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var tuningPath string
	var seed int64
	var human bool
	var verbose bool
	var scale float64
	var eventsPath string

	flag.StringVar(&tuningPath, "tuning", "", "YAML tuning file (default: built-in values)")
	flag.Int64Var(&seed, "seed", 0, "match seed (0 = tuning seed)")
	flag.BoolVar(&human, "human", false, "drive P1 with WASD, mouse aim and left button")
	flag.BoolVar(&verbose, "verbose", false, "record per-tick player state in the sim log")
	flag.Float64Var(&scale, "scale", 4, "screen pixels per world unit")
	flag.StringVar(&eventsPath, "events", "", "write the sim log to this .jsonl.zst file on exit")
	flag.Parse()

	tu := tuning.Default()
	if tuningPath != "" {
		var err error
		if tu, err = tuning.Load(tuningPath); err != nil {
			log.Fatal(err)
		}
	}

	v := newView(scale)
	opts := []game.Option{game.WithVerbose(verbose)}
	if seed != 0 {
		opts = append(opts, game.WithSeed(seed))
	}
	var hc *humanController
	if human {
		hc = &humanController{view: v}
		opts = append(opts, game.WithController(1, hc))
	}
	m := game.NewMatch(tu, opts...)
	s := newSpectator(m, v, hc)

	ebiten.SetWindowTitle("Splatter Arena")
	ebiten.SetWindowSize(s.width, s.height)
	ebiten.SetTPS(tu.TickRateHz)
	if err := ebiten.RunGame(s); err != nil {
		log.Fatal(err)
	}

	if eventsPath != "" {
		w, err := eventlog.Create(eventsPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := w.WriteMatch(m); err != nil {
			log.Fatal(err)
		}
		if err := w.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("sim log written to %s", eventsPath)
	}
}
