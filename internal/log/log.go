// Package log provides structured logging for rowedit.
// Entries carry a level, a category and key=value fields and go to a log file,
// never to the terminal the editor is drawing on. Logging is enabled via the
// --debug flag or the ROWEDIT_DEBUG env var.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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

// Category groups related log messages.
type Category string

const (
	CatEditor    Category = "editor"    // Cursor, viewport and edit operations
	CatInput     Category = "input"     // Byte decoding
	CatRender    Category = "render"    // Screen projection
	CatFile      Category = "file"      // Load and save
	CatConfig    Category = "config"    // Configuration loading/saving
	CatWatcher   Category = "watcher"   // File watcher events
	CatClipboard Category = "clipboard" // System clipboard access
	CatCache     Category = "cache"     // cache operations
	CatTerm      Category = "term"      // Raw mode, size and signals
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init opens path for appending and makes it the log sink. Only the first
// call opens a file. The returned function closes it.
func Init(path string) (func(), error) {
	var err error
	once.Do(func() {
		defaultLogger, err = newLogger(path)
	})
	switch {
	case err != nil:
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	case defaultLogger == nil:
		return nil, errors.New("logger initialization already failed")
	}
	l := defaultLogger
	return l.close, nil
}

// InitWithWriter installs a logger that writes to w. Used by tests and by
// callers that already own a sink.
func InitWithWriter(w io.Writer) {
	defaultLogger = &Logger{writer: w, enabled: true, minLevel: LevelDebug}
}

func newLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, err
	}
	return &Logger{file: f, writer: f, enabled: true, minLevel: LevelDebug}, nil
}

func (l *Logger) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file, l.writer = nil, nil
	}
}

func configure(apply func(*Logger)) {
	l := defaultLogger
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	apply(l)
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	configure(func(l *Logger) { l.enabled = enabled })
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	configure(func(l *Logger) { l.minLevel = level })
}

// ParseLevel resolves a level name such as "warn". Matching ignores case.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", name)
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	write(LevelError, cat, msg, append(fields, "error", errString(err)))
}

// Scope prefixes every entry with a fixed set of fields, such as a session id.
type Scope struct {
	fields []any
}

// With returns a scope that adds fields to every entry.
func With(fields ...any) Scope {
	return Scope{fields: fields}
}

// Debug logs at debug level.
func (s Scope) Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, s.merge(fields))
}

// Info logs at info level.
func (s Scope) Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, s.merge(fields))
}

// Warn logs at warning level.
func (s Scope) Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, s.merge(fields))
}

// ErrorErr logs an error with the error value.
func (s Scope) ErrorErr(cat Category, msg string, err error, fields ...any) {
	write(LevelError, cat, msg, append(s.merge(fields), "error", errString(err)))
}

func (s Scope) merge(fields []any) []any {
	out := make([]any, 0, len(s.fields)+len(fields))
	return append(append(out, s.fields...), fields...)
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

func write(level Level, cat Category, msg string, fields []any) {
	l := defaultLogger
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel || l.writer == nil {
		return
	}

	// 2026-01-02T15:04:05 [ERROR] [file] message key=value key2=value2
	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.writer, b.String())
}
