// Package logging provides structured logging with file output and rotation.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Nomadcxx/jellydiff/internal/paths"
)

// Level represents a logging level
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

// ParseLevel converts a string to a Level
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (shorthand for structured logging)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	File       string // log file path (empty = ~/.config/jellydiff/logs/jellydiff.log)
	MaxSizeMB  int    // max size before rotation (default: 10)
	MaxBackups int    // number of backups to keep (default: 5)
	Console    bool   // mirror log lines to stderr
}

// DefaultConfig returns default logging configuration
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 5,
	}
}

// sink is the shared output state; loggers derived with With share one sink.
type sink struct {
	mu         sync.Mutex
	file       *os.File
	filePath   string
	maxSize    int64 // in bytes
	maxBackups int
	console    io.Writer
	now        func() time.Time
}

// Logger provides structured logging with file output
type Logger struct {
	level  Level
	sink   *sink
	fields []Field
}

// New creates a new Logger with the given configuration
func New(cfg Config) (*Logger, error) {
	s := &sink{
		maxSize:    int64(cfg.MaxSizeMB) * 1024 * 1024,
		maxBackups: cfg.MaxBackups,
		now:        time.Now,
	}
	if s.maxSize == 0 {
		s.maxSize = 10 * 1024 * 1024
	}
	if s.maxBackups == 0 {
		s.maxBackups = 5
	}
	if cfg.Console {
		s.console = os.Stderr
	}

	file := cfg.File
	if file == "" {
		p, err := paths.LogPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get log path: %w", err)
		}
		file = p
	}
	file, err := paths.ExpandHome(file)
	if err != nil {
		return nil, fmt.Errorf("unable to get home dir: %w", err)
	}
	s.filePath = file

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	if err := s.openFile(); err != nil {
		return nil, err
	}

	return &Logger{level: ParseLevel(cfg.Level), sink: s}, nil
}

// NewWriter returns a logger writing only to w, without rotation.
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		level: level,
		sink:  &sink{console: w, now: time.Now},
	}
}

// Nop returns a no-operation logger that discards all output
func Nop() *Logger {
	return &Logger{
		level: LevelError + 1,
		sink:  &sink{now: time.Now},
	}
}

// With returns a logger that adds fields to every line it writes.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{level: l.level, sink: l.sink, fields: merged}
}

func (s *sink) openFile() error {
	if s.filePath == "" {
		return nil
	}

	f, err := os.OpenFile(s.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	s.file = f
	return nil
}

func (s *sink) checkRotation() error {
	if s.file == nil {
		return nil
	}

	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < s.maxSize {
		return nil
	}

	s.file.Close()
	s.file = nil
	if err := rotateFiles(s.filePath, s.maxBackups); err != nil {
		return err
	}
	return s.openFile()
}

func (s *sink) write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRotation(); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation error: %v\n", err)
	}
	if s.file != nil {
		s.file.WriteString(line)
	}
	if s.console != nil {
		io.WriteString(s.console, line)
	}
}

func (l *Logger) log(level Level, component, msg string, err error, fields ...Field) {
	if level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString(l.sink.now().Format(time.RFC3339))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] [")
	sb.WriteString(component)
	sb.WriteString("] ")
	sb.WriteString(msg)

	if err != nil {
		sb.WriteString(" | error=")
		sb.WriteString(err.Error())
	}

	for _, f := range l.fields {
		writeField(&sb, f)
	}
	for _, f := range fields {
		writeField(&sb, f)
	}
	sb.WriteString("\n")

	l.sink.write(sb.String())
}

func writeField(sb *strings.Builder, f Field) {
	sb.WriteString(" | ")
	sb.WriteString(f.Key)
	sb.WriteString("=")
	sb.WriteString(fmt.Sprintf("%v", f.Value))
}

// Debug logs a debug message
func (l *Logger) Debug(component, msg string, fields ...Field) {
	l.log(LevelDebug, component, msg, nil, fields...)
}

// Info logs an info message
func (l *Logger) Info(component, msg string, fields ...Field) {
	l.log(LevelInfo, component, msg, nil, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(component, msg string, fields ...Field) {
	l.log(LevelWarn, component, msg, nil, fields...)
}

// Error logs an error message with an error
func (l *Logger) Error(component, msg string, err error, fields ...Field) {
	l.log(LevelError, component, msg, err, fields...)
}

// Close closes the log file
func (l *Logger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.file != nil {
		err := l.sink.file.Close()
		l.sink.file = nil
		return err
	}
	return nil
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	return l.level
}

// FilePath returns the log file path
func (l *Logger) FilePath() string {
	return l.sink.filePath
}
