package tuning

import (
	"path/filepath"
	"testing"
)

func TestLoad_SampleMatchesDefault(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "configs", "tuning.yaml"))
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if got != Default() {
		t.Fatalf("sample tuning drifted from Default():\n got=%+v\nwant=%+v", got, Default())
	}
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	got, err := Parse([]byte("combat:\n  hit_chance_percent: 100\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Combat.HitChancePercent != 100 {
		t.Fatalf("expected override 100, got %v", got.Combat.HitChancePercent)
	}
	def := Default()
	if got.Combat.DamagePerSecond != def.Combat.DamagePerSecond {
		t.Fatalf("damage_per_second should keep default %v, got %v", def.Combat.DamagePerSecond, got.Combat.DamagePerSecond)
	}
	if got.Grid != def.Grid {
		t.Fatalf("grid should keep defaults, got %+v", got.Grid)
	}
}

func TestParse_EmptyDocumentIsDefault(t *testing.T) {
	got, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if got != Default() {
		t.Fatalf("empty doc should yield defaults, got %+v", got)
	}
}

func TestParse_RejectsUnknownKey(t *testing.T) {
	if _, err := Parse([]byte("combat:\n  splash_radius: 3\n")); err == nil {
		t.Fatal("expected schema error for unknown key")
	}
}

func TestParse_RejectsOutOfRange(t *testing.T) {
	cases := []string{
		"combat:\n  hit_chance_percent: 150\n",
		"players: 4\n",
		"grid:\n  block_size: 0\n",
		"tick_rate_hz: 0\n",
	}
	for _, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected schema error for %q", doc)
		}
	}
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("grid: [1, 2\n")); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTickDuration(t *testing.T) {
	tn := Default()
	tn.TickRateHz = 50
	if got := tn.TickDuration(); got != 0.02 {
		t.Fatalf("expected 0.02, got %v", got)
	}
	tn.TickRateHz = 0
	if got := tn.TickDuration(); got != 1.0/60.0 {
		t.Fatalf("expected 1/60 fallback, got %v", got)
	}
}
