// Package logging writes errors and the JSON trace stream to one log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "flyout.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	sink         io.Writer
	seq          uint64
)

// Entry is one line of the trace stream. Seq orders entries written by
// concurrent goroutines.
type Entry struct {
	Seq     uint64      `json:"seq"`
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Error appends err to the log.
func Error(err error) {
	if err == nil {
		return
	}
	write(func(w io.Writer) error {
		_, werr := fmt.Fprintf(w, "%s ERROR %v\n", time.Now().UTC().Format(time.RFC3339), err)
		return werr
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	write(func(w io.Writer) error {
		seq++
		return json.NewEncoder(w).Encode(Entry{
			Seq:     seq,
			Time:    time.Now().UTC(),
			Event:   event,
			Payload: payload,
		})
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput sends log and trace output to w instead of the log file. A nil
// w restores the file.
func SetOutput(w io.Writer) {
	mu.Lock()
	sink = w
	mu.Unlock()
}

func write(fn func(io.Writer) error) {
	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		if err := fn(sink); err != nil {
			fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		}
		return
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := fn(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}
