// Package logger provides the structured logger shared by services and
// adapters. The interactive UI owns the terminal, so logs normally go to a
// file under the data directory.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Log levels accepted by the log.level config key and --log-level flag.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// FileName is the log file created inside the data directory.
const FileName = "countdown.log"

// ValidLevel reports whether level is one of the known level strings.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return true
	}
	return false
}

// Open creates a logger that appends to <dataDir>/countdown.log. The returned
// close func flushes the logger and closes the file.
func Open(dataDir, level string) (*Logger, func() error, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := New(f, level)
	closeFn := func() error {
		_ = l.Sync()
		return f.Close()
	}
	return l, closeFn, nil
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level string) *Logger {
	return newZapLogger(w, level)
}
