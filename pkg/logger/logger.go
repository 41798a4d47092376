// Package logger provides the shared zerolog setup every package in
// this module logs through.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level re-exports zerolog's level type so callers never import
// zerolog directly.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config controls the global logger's destination and format.
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig returns console logging to stdout at info level.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init sets up the global logger. Safe to call more than once; only
// the first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger, initializing it with defaults on
// first use if Init was never called.
func Get() *zerolog.Logger {
	Init(DefaultConfig())
	return &logger
}

// ctxKey avoids collisions with other packages' context values.
type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID attaches a request id to ctx for later retrieval by
// WithContext.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithContext returns a logger carrying any request id found on ctx.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		l = l.With().Str("request_id", reqID).Logger()
	}
	return &l
}

func Debug() *zerolog.Event { return Get().Debug() }
func Info() *zerolog.Event  { return Get().Info() }
func Warn() *zerolog.Event  { return Get().Warn() }
func Error() *zerolog.Event { return Get().Error() }
func Fatal() *zerolog.Event { return Get().Fatal() }

// WithError returns an error-level event with err attached.
func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

// WithField returns a logger carrying one structured field.
func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

// WithFields returns a logger carrying several structured fields.
func WithFields(fields map[string]interface{}) *zerolog.Logger {
	ctx := Get().With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &l
}

// InductionLogger is the domain-specific wrapper the Scheduler Façade
// logs through, so the event names and fields it emits stay consistent
// regardless of who calls it.
type InductionLogger struct {
	base *zerolog.Logger
}

// NewInductionLogger returns a logger tagged with component=scheduler.
func NewInductionLogger() *InductionLogger {
	l := Get().With().Str("component", "scheduler").Logger()
	return &InductionLogger{base: &l}
}

// StartOptimise logs the beginning of one Optimise invocation.
func (l *InductionLogger) StartOptimise(snapshot time.Time, fleetSize, rosterSize int) {
	l.base.Info().
		Time("snapshot", snapshot).
		Int("fleet_size", fleetSize).
		Int("roster_size", rosterSize).
		Msg("optimise started")
}

// ConstraintRelaxed logs that the eligibility gate had to extend into a
// further tier to reach the target roster size.
func (l *InductionLogger) ConstraintRelaxed(tier string, poolSize int) {
	l.base.Warn().
		Str("tier", tier).
		Int("pool_size", poolSize).
		Msg("eligibility relaxed")
}

// SolverFallback logs that the solver adapter's result was discarded in
// favour of the greedy fallback.
func (l *InductionLogger) SolverFallback(solverName string, reason string) {
	l.base.Warn().
		Str("solver", solverName).
		Str("reason", reason).
		Msg("solver fallback used")
}

// OptimiseComplete logs the outcome of one Optimise invocation.
func (l *InductionLogger) OptimiseComplete(status string, duration time.Duration, objective int) {
	l.base.Info().
		Str("status", status).
		Dur("duration", duration).
		Int("objective", objective).
		Msg("optimise complete")
}
