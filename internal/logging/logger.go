package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a level name in any case to a Level, defaulting to
// LevelInfo.
func ParseLevel(s string) Level {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i)
		}
	}
	return LevelInfo
}

// Logger writes timestamped lines at or above its level. A Logger with no
// output drops everything. All fields are guarded by mu.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	file    *os.File
	path    string
	level   Level
	enabled bool
}

// std is the package logger. It is never replaced, only redirected, so
// callers on other goroutines always see a consistent writer.
var std = &Logger{}

// redirect points l at w, closing any file l opened earlier. file is the
// handle l now owns, nil when the caller keeps ownership of w.
func (l *Logger) redirect(w io.Writer, file *os.File, path string, level Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	if l.file != nil {
		err = l.file.Close()
	}
	l.out = w
	l.file = file
	l.path = path
	l.level = level
	l.enabled = w != nil
	return err
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || l.out == nil || level < l.level {
		return
	}
	fmt.Fprintf(l.out, "[%s] %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"), level, fmt.Sprintf(format, args...))
}

// Initialize appends to a dated file under logDir. A file opened by an
// earlier Initialize is closed.
func Initialize(logDir string, level Level) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(logDir, fmt.Sprintf("pagescroll-%s.log", time.Now().Format("2006-01-02")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return std.redirect(file, file, path, level)
}

// SetOutput routes logging to w, e.g. stderr for --verbose. w stays owned
// by the caller; a nil w turns logging off.
func SetOutput(w io.Writer, level Level) {
	std.redirect(w, nil, "", level)
}

func SetEnabled(enabled bool) {
	std.mu.Lock()
	std.enabled = enabled && std.out != nil
	std.mu.Unlock()
}

func Debug(format string, args ...interface{}) { std.logf(LevelDebug, format, args...) }
func Info(format string, args ...interface{})  { std.logf(LevelInfo, format, args...) }
func Warn(format string, args ...interface{})  { std.logf(LevelWarn, format, args...) }
func Error(format string, args ...interface{}) { std.logf(LevelError, format, args...) }

// WithError logs err with context; nil errors are ignored.
func WithError(err error, context string) {
	if err != nil {
		std.logf(LevelError, "%s: %v", context, err)
	}
}

// Close closes the log file, if any, and stops logging.
func Close() error {
	return std.redirect(nil, nil, "", LevelInfo)
}

// GetLogPath returns the file Initialize opened, or "".
func GetLogPath() string {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.path
}
