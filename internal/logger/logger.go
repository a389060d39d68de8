// Package logger is the levelled stderr logger used across campusnav.
//
// Warnings and errors are always printed: a blocked corridor or a fallback
// to simulated drivers matters even in quiet mode. Debug and info lines and
// section headers only appear with --verbose. Timestamps with millisecond
// resolution can be switched on to line up motor commands with sensor reads.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

// Severities, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed in front of each line.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

const timestampLayout = "15:04:05.000"

var (
	mu         sync.RWMutex
	threshold            = LevelWarn
	output     io.Writer = os.Stderr
	timestamps bool
	now        = time.Now
)

// SetVerbose lowers the threshold to debug, or restores it to warnings.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelWarn)
}

// IsVerbose returns true when debug lines are printed.
func IsVerbose() bool {
	return Enabled(LevelDebug)
}

// SetLevel sets the lowest severity that is printed. Errors always print.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	threshold = min(l, LevelError)
}

// Enabled reports whether lines at l are printed.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= threshold
}

// SetOutput sets the writer for all lines. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetTimestamps prefixes each line with the local time when on.
func SetTimestamps(on bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = on
}

// Debug traces planning and motor detail.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info reports normal progress such as arrivals.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn reports a navigation that did not complete or a degraded driver.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Error reports a failure.
func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}

// Section prints a header before a block of verbose output.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if threshold > LevelDebug {
		return
	}
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

func logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < threshold {
		return
	}
	prefix := "[" + l.String() + "] "
	if timestamps {
		prefix = now().Format(timestampLayout) + " " + prefix
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
