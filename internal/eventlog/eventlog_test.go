package eventlog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kravenark/SplatterGameUnity/internal/game"
	"github.com/Kravenark/SplatterGameUnity/internal/tuning"
)

func TestWriteMatchReadBack(t *testing.T) {
	m := game.NewMatch(tuning.Default(), game.WithSeed(3))
	m.RunTicks(600)

	path := filepath.Join(t.TempDir(), "logs", "run.jsonl.zst")
	w, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteMatch(m); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	h, entries, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if h.MatchID != m.ID || h.Seed != 3 || h.Ticks != 600 {
		t.Fatalf("header %+v does not describe the match", h)
	}
	want := m.SimLog.Entries()
	if h.Entries != len(want) || len(entries) != len(want) {
		t.Fatalf("entries: header=%d read=%d want=%d", h.Entries, len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestCloseTwiceAndWriteAfterClose(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "x.jsonl.zst"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := w.WriteEntry(game.SimLogEntry{Tick: 1}); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected os.ErrClosed, got %v", err)
	}
}

func TestReadFileRejectsGarbage(t *testing.T) {
	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "missing.jsonl.zst")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "plain.jsonl.zst")
	if err := os.WriteFile(path, []byte("not zstd\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadFile(path); err == nil {
		t.Fatal("expected an error for an uncompressed file")
	}
}
