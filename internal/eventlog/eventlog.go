// Package eventlog exports a match's sim log as zstd-compressed JSON lines:
// one header record followed by one record per log entry.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/Kravenark/SplatterGameUnity/internal/game"
)

const (
	typeHeader = "header"
	typeEntry  = "entry"
)

// Header describes the match a log was taken from.
type Header struct {
	MatchID string  `json:"match_id"`
	Seed    int64   `json:"seed"`
	Ticks   int     `json:"ticks"`
	Elapsed float64 `json:"elapsed"`
	Entries int     `json:"entries"`
}

type headerRecord struct {
	Type string `json:"type"`
	Header
}

type entryRecord struct {
	Type string `json:"type"`
	game.SimLogEntry
}

// line is the union of every record shape, used when reading back.
type line struct {
	Type string `json:"type"`
	Header
	game.SimLogEntry
}

// Writer appends records to one .jsonl.zst file.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create opens path for writing, truncating any existing file.
func Create(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

// WriteHeader writes a header record.
func (w *Writer) WriteHeader(h Header) error {
	return w.write(headerRecord{Type: typeHeader, Header: h})
}

// WriteEntry writes one sim log entry.
func (w *Writer) WriteEntry(e game.SimLogEntry) error {
	return w.write(entryRecord{Type: typeEntry, SimLogEntry: e})
}

// WriteMatch writes a header for m followed by its whole sim log.
func (w *Writer) WriteMatch(m *game.Match) error {
	entries := m.SimLog.Entries()
	err := w.WriteHeader(Header{
		MatchID: m.ID,
		Seed:    m.Seed(),
		Ticks:   m.CurrentTick(),
		Elapsed: m.Now(),
		Entries: len(entries),
	})
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.WriteEntry(e); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return os.ErrClosed
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes and closes the file. It is safe to call more than once.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var err1 error
	if w.w != nil {
		err1 = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if err := w.enc.Close(); err1 == nil {
			err1 = err
		}
		w.enc = nil
	}
	if w.f != nil {
		if err := w.f.Close(); err1 == nil {
			err1 = err
		}
		w.f = nil
	}
	return err1
}

// ReadFile loads a log written by Writer. The last header seen wins.
func ReadFile(path string) (Header, []game.SimLogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return Header{}, nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var (
		h       Header
		entries []game.SimLogEntry
		n       int
	)
	for sc.Scan() {
		n++
		var l line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			return h, entries, fmt.Errorf("%s line %d: %w", path, n, err)
		}
		switch l.Type {
		case typeHeader:
			h = l.Header
		case typeEntry:
			entries = append(entries, l.SimLogEntry)
		default:
			return h, entries, fmt.Errorf("%s line %d: unknown record type %q", path, n, l.Type)
		}
	}
	return h, entries, sc.Err()
}
