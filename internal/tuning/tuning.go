package tuning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed tuning.schema.json
var schemaSource string

// Tuning holds every number a match needs. Durations are in seconds,
// distances in world units.
type Tuning struct {
	TickRateHz    int     `yaml:"tick_rate_hz"`
	Seed          int64   `yaml:"seed"`
	Players       int     `yaml:"players"`
	MatchDuration float64 `yaml:"match_duration"` // 0 = endless

	Grid   Grid   `yaml:"grid"`
	Combat Combat `yaml:"combat"`
	Player Player `yaml:"player"`
	AI     AI     `yaml:"ai"`
}

// Grid describes the generated city.
type Grid struct {
	Cols              int     `yaml:"cols"`
	Rows              int     `yaml:"rows"`
	BlockSize         float64 `yaml:"block_size"`
	StreetWidth       float64 `yaml:"street_width"`
	BuildingsPerBlock int     `yaml:"buildings_per_block"`
	SpawnsPerBlock    int     `yaml:"spawns_per_block"`
}

// Combat holds hit, damage, spray and respawn timings.
type Combat struct {
	HitChancePercent   float64 `yaml:"hit_chance_percent"`
	DamagePerSecond    float64 `yaml:"damage_per_second"`
	ShootingRange      float64 `yaml:"shooting_range"`
	ShotCooldown       float64 `yaml:"shot_cooldown"`
	TransitionDuration float64 `yaml:"transition_duration"`
	RespawnDelay       float64 `yaml:"respawn_delay"`
}

// Player holds per-player health, walking speed and body size.
type Player struct {
	MaxHealth float64 `yaml:"max_health"`
	Speed     float64 `yaml:"speed"`
	Radius    float64 `yaml:"radius"`
}

// AI holds the computer players' decision cadence.
type AI struct {
	RetargetInterval float64 `yaml:"retarget_interval"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		TickRateHz:    60,
		Seed:          1,
		Players:       3,
		MatchDuration: 180,
		Grid: Grid{
			Cols:              4,
			Rows:              3,
			BlockSize:         40,
			StreetWidth:       12,
			BuildingsPerBlock: 5,
			SpawnsPerBlock:    4,
		},
		Combat: Combat{
			HitChancePercent:   50,
			DamagePerSecond:    20,
			ShootingRange:      50,
			ShotCooldown:       1,
			TransitionDuration: 2,
			RespawnDelay:       3,
		},
		Player: Player{
			MaxHealth: 100,
			Speed:     12,
			Radius:    1.5,
		},
		AI: AI{
			RetargetInterval: 1,
		},
	}
}

// TickDuration is the fixed dt of one tick in seconds.
func (t Tuning) TickDuration() float64 {
	if t.TickRateHz <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(t.TickRateHz)
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("tuning.schema.json", schemaSource)
	})
	return schema, schemaErr
}

// Load reads a tuning YAML file. Fields the file omits keep their defaults.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	t, err := Parse(raw)
	if err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse validates raw YAML against the tuning schema and decodes it over
// the defaults.
func Parse(raw []byte) (Tuning, error) {
	t := Default()
	if err := validate(raw); err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("tuning schema: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	if doc == nil {
		return nil
	}
	// The validator wants JSON-shaped values (float64 numbers).
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	var jsonDoc any
	if err := json.Unmarshal(b, &jsonDoc); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := s.Validate(jsonDoc); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	return nil
}
