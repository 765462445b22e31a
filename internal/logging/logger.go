// Package logging provides leveled logging and the per-run trace for panelsim.
//
// Operational output goes to a leveled slog.Logger on stderr. At debug level
// and below, every completed run is also appended to <output-dir>/runs.jsonl
// by a RunTrace.
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom level below Debug for the most verbose output.
const LevelTrace = slog.LevelDebug - 4

// TraceFileName is the run trace file written inside the output directory.
const TraceFileName = "runs.jsonl"

// ParseLevel maps "info", "debug" or "trace" (any case) to a slog.Level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s names a supported level. Empty is allowed
// and means info.
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", "info", "debug", "trace":
		return true
	}
	return false
}

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RunTrace appends one JSON object per completed run to a JSONL file.
// It is safe for concurrent use, and a nil *RunTrace ignores every call.
type RunTrace struct {
	mu         sync.Mutex
	file       *os.File
	invocation string
}

// NewRunTrace opens dir/runs.jsonl for append when level is debug or trace.
// At info level, or if the file cannot be opened, it returns nil.
func NewRunTrace(dir, level, invocation string) *RunTrace {
	if ParseLevel(level) >= slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil
	}

	f, err := os.OpenFile(filepath.Join(dir, TraceFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return &RunTrace{file: f, invocation: invocation}
}

// Record writes v as one JSONL line, wrapped with the invocation id and a
// UTC timestamp. Values that fail to marshal are dropped.
func (rt *RunTrace) Record(v any) {
	if rt == nil || rt.file == nil {
		return
	}

	entry := struct {
		Time       string `json:"time"`
		Invocation string `json:"invocation,omitempty"`
		Run        any    `json:"record"`
	}{
		Time:       time.Now().UTC().Format(time.RFC3339Nano),
		Invocation: rt.invocation,
		Run:        v,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')

	rt.mu.Lock()
	defer rt.mu.Unlock()
	_, _ = rt.file.Write(data)
}

// Close closes the trace file. Safe on a nil receiver.
func (rt *RunTrace) Close() error {
	if rt == nil || rt.file == nil {
		return nil
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	err := rt.file.Close()
	rt.file = nil
	return err
}
