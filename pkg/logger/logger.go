// Package logger provides structured JSON logging for the academic
// evolution services. One JSON object per line, fields flattened at the top
// level, safe for concurrent use.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEVELS
// ══════════════════════════════════════════════════════════════════════════════

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
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
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, defaulting to INFO on anything unknown.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "FATAL":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// FIELDS
// ══════════════════════════════════════════════════════════════════════════════

// Field is one key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field  { return Field{Key: key, Value: value} }
func Int(key string, value int) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Err attaches the error message under the "error" key.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration renders the value in Go duration notation ("1.5s").
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Domain logging helpers.
func NUSP(nusp string) Field         { return String("nusp", nusp) }
func CurriculoID(id string) Field    { return String("curriculo_id", id) }
func CursoID(id string) Field        { return String("curso_id", id) }
func Disciplina(codigo string) Field { return String("disciplina", codigo) }
func Semestre(semestre int) Field    { return Int("semestre", semestre) }
func Component(name string) Field    { return String("component", name) }
func Operation(name string) Field    { return String("operation", name) }
func Latency(d time.Duration) Field  { return Duration("latency", d) }

// ══════════════════════════════════════════════════════════════════════════════
// LOGGER
// ══════════════════════════════════════════════════════════════════════════════

// Options configures a Logger.
type Options struct {
	Output    io.Writer
	Level     Level
	AddCaller bool
}

// DefaultOptions logs INFO and above to stdout with caller annotation.
func DefaultOptions() Options {
	return Options{
		Output:    os.Stdout,
		Level:     LevelInfo,
		AddCaller: true,
	}
}

// Logger writes structured JSON log lines. The zero value is not usable;
// construct with New or Default.
type Logger struct {
	mu        *sync.Mutex
	output    io.Writer
	level     Level
	addCaller bool
	fields    []Field
}

// New creates a Logger with the given options.
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Logger{
		mu:        &sync.Mutex{},
		output:    opts.Output,
		level:     opts.Level,
		addCaller: opts.AddCaller,
	}
}

// Default creates a Logger with DefaultOptions.
func Default() *Logger {
	return New(DefaultOptions())
}

// With returns a child Logger that carries the extra fields on every entry.
// The child shares the parent's output and mutex.
func (l *Logger) With(fields ...Field) *Logger {
	child := *l
	child.fields = make([]Field, 0, len(l.fields)+len(fields))
	child.fields = append(child.fields, l.fields...)
	child.fields = append(child.fields, fields...)
	return &child
}

func (l *Logger) Debug(msg string, fields ...Field) { l.write(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.write(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.write(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.write(LevelError, msg, fields) }

// Fatal logs the message and terminates the process.
func (l *Logger) Fatal(msg string, fields ...Field) {
	l.write(LevelFatal, msg, fields)
	os.Exit(1)
}

func (l *Logger) write(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := make(map[string]any, len(l.fields)+len(fields)+4)
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg

	if l.addCaller {
		if _, file, line, ok := runtime.Caller(2); ok {
			if idx := strings.LastIndex(file, "/"); idx >= 0 {
				file = file[idx+1:]
			}
			entry["caller"] = fmt.Sprintf("%s:%d", file, line)
		}
	}

	// Per-entry fields override bound fields on key collision.
	for _, f := range l.fields {
		entry[f.Key] = f.Value
	}
	for _, f := range fields {
		entry[f.Key] = f.Value
	}

	data, err := json.Marshal(entry)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":%q,"msg":%q}`, level.String(), msg))
	}
	data = append(data, '\n')

	l.mu.Lock()
	l.output.Write(data)
	l.mu.Unlock()
}
