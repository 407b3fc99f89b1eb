package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"haul-and-hoard/server/logging"
)

func TestConsoleSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	err := sink.Write(logging.Event{
		Type:     "logistics.items_released",
		Tick:     12,
		Actor:    logging.EntityRef{ID: "structure-3", Kind: logging.EntityKindStructure},
		Severity: logging.SeverityDebug,
		Payload:  map[string]int{"quantity": 5},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	line := buf.String()
	for _, want := range []string{
		"[logistics.items_released]",
		"tick=12",
		"actor=structure:structure-3",
		"severity=debug",
		`payload={"quantity":5}`,
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("console line %q missing %q", line, want)
		}
	}
}

func TestJSONSinkEmitsNDJSON(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf, 0)

	for _, eventType := range []logging.EventType{"a", "b"} {
		if err := sink.Write(logging.Event{Type: eventType, Tick: 1}); err != nil {
			t.Fatalf("write %s: %v", eventType, err)
		}
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for i, line := range lines {
		var event logging.Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("line %d not valid JSON: %v", i, err)
		}
	}
}

func TestJSONSinkBufferedFlushOnClose(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf, time.Hour)

	if err := sink.Write(logging.Event{Type: "a"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.Contains(buf.String(), `"type":"a"`) {
		t.Fatalf("buffered event not flushed: %q", buf.String())
	}
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	for _, eventType := range []logging.EventType{"a", "b", "a"} {
		if err := sink.Write(logging.Event{Type: eventType}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	if got := len(sink.Events()); got != 3 {
		t.Fatalf("Events() = %d, want 3", got)
	}
	if got := len(sink.EventsOfType("a")); got != 2 {
		t.Fatalf("EventsOfType(a) = %d, want 2", got)
	}

	sink.Reset()
	if got := len(sink.Events()); got != 0 {
		t.Fatalf("Events() after reset = %d, want 0", got)
	}
}

func TestArchiveSinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink := NewArchiveSink(dir, "events")

	for tick := uint64(1); tick <= 3; tick++ {
		if err := sink.Write(logging.Event{Type: "logistics.items_absorbed", Tick: tick}); err != nil {
			t.Fatalf("write tick %d: %v", tick, err)
		}
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	day := time.Now().UTC().Format("2006-01-02")
	path := filepath.Join(dir, "events-"+day+".ndjson.zst")
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer file.Close()

	dec, err := zstd.NewReader(file)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("archived lines = %d, want 3", len(lines))
	}
	var event logging.Event
	if err := json.Unmarshal([]byte(lines[2]), &event); err != nil {
		t.Fatalf("decode archived event: %v", err)
	}
	if event.Tick != 3 {
		t.Fatalf("archived tick = %d, want 3", event.Tick)
	}
}
