package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger writes to the configured output, stdout by default.
func NewZerologLogger(component string) Logger {
	_, _, out := global.snapshot()
	return NewZerologLoggerTo(out, component)
}

// NewZerologLoggerTo builds a logger writing to w, with every entry carrying
// the component field.
func NewZerologLoggerTo(w io.Writer, component string) *ZerologLogger {
	level, console, _ := global.snapshot()
	if env := os.Getenv("APP_ENV"); env != "" {
		console = strings.EqualFold(env, "dev")
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = parseLevel(env)
	}
	z := zerolog.New(w).
		Level(level).
		With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
