// Package logging provides a small leveled logger with text and JSON output.
// Reports go to stdout; everything here goes to stderr so that piped report
// output stays clean.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents a log severity level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the uppercase name of the level.
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
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name (case-insensitive). "warning" is accepted
// as an alias for "warn". Returns LevelInfo and an error for unknown names.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	mu     sync.Mutex
	level  = LevelInfo
	format = "text"
	output io.Writer = os.Stderr
)

// SetLevel sets the minimum level that will be logged.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetFormat sets the output format: "text" or "json".
func SetFormat(f string) {
	mu.Lock()
	defer mu.Unlock()
	format = f
}

// SetOutput redirects log output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// Debug logs a message at debug level.
func Debug(msg string, args ...interface{}) { log(LevelDebug, msg, args...) }

// Info logs a message at info level.
func Info(msg string, args ...interface{}) { log(LevelInfo, msg, args...) }

// Warn logs a message at warn level.
func Warn(msg string, args ...interface{}) { log(LevelWarn, msg, args...) }

// Error logs a message at error level.
func Error(msg string, args ...interface{}) { log(LevelError, msg, args...) }

func log(l Level, msg string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if l < level {
		return
	}

	rendered := msg
	if len(args) > 0 {
		rendered = fmt.Sprintf(msg, args...)
	}

	if format == "json" {
		entry := map[string]string{
			"ts":    time.Now().Format(time.RFC3339),
			"level": strings.ToLower(l.String()),
			"msg":   rendered,
		}
		b, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(output, `{"level":"error","msg":"log marshal failed: %v"}`+"\n", err)
			return
		}
		fmt.Fprintln(output, string(b))
		return
	}

	fmt.Fprintf(output, "%s [%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), l, rendered)
}
