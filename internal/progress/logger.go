package progress

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrorEntry represents a skipped file
type ErrorEntry struct {
	File      string
	Error     string
	Timestamp time.Time
}

// ErrorLogger records files that were not anonymized. When a log file is
// configured every entry is also appended to it as a JSON line; the file is
// rotated by size.
type ErrorLogger struct {
	mu      sync.Mutex
	logFile string
	errors  []ErrorEntry
	sink    *lumberjack.Logger
	out     zerolog.Logger
}

// NewErrorLogger creates a new error logger. An empty logFile keeps entries
// in memory only.
func NewErrorLogger(logFile string) (*ErrorLogger, error) {
	logger := &ErrorLogger{
		logFile: logFile,
		errors:  []ErrorEntry{},
		out:     zerolog.Nop(),
	}

	if logFile != "" {
		// Ensure parent directory exists
		dir := filepath.Dir(logFile)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create log directory: %w", err)
		}

		logger.sink = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
		}
		logger.out = zerolog.New(logger.sink)
	}

	return logger, nil
}

// Log logs a skipped file with the reason it was skipped.
func (l *ErrorLogger) Log(filePath, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := ErrorEntry{
		File:      filePath,
		Error:     reason,
		Timestamp: time.Now(),
	}
	l.errors = append(l.errors, entry)

	l.out.Log().
		Time("time", entry.Timestamp).
		Str("file", filePath).
		Str("reason", reason).
		Msg("skipped")
}

// Entries returns a copy of the logged entries.
func (l *ErrorLogger) Entries() []ErrorEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ErrorEntry(nil), l.errors...)
}

// Summary returns a summary of logged errors.
func (l *ErrorLogger) Summary() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case len(l.errors) == 0:
		return "No files skipped"
	case l.logFile == "":
		return fmt.Sprintf("%d files skipped", len(l.errors))
	default:
		return fmt.Sprintf("%d files skipped, see %s", len(l.errors), l.logFile)
	}
}

// ErrorCount returns the number of logged errors.
func (l *ErrorLogger) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

// Close closes the log file.
func (l *ErrorLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sink != nil {
		return l.sink.Close()
	}
	return nil
}
