package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options are process-wide logging defaults. LOG_LEVEL and APP_ENV still
// take precedence when set.
type Options struct {
	Level  string
	Format string // "json" or "console"
	// File, when set, receives a copy of every entry with size-based rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type settings struct {
	mu      sync.RWMutex
	level   zerolog.Level
	console bool
	out     io.Writer
	file    *lumberjack.Logger
}

var global = &settings{level: zerolog.InfoLevel, out: os.Stdout}

// Configure installs o as the defaults for loggers created afterwards.
func Configure(o Options) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.level = parseLevel(o.Level)
	global.console = strings.EqualFold(o.Format, "console")
	if global.file != nil {
		_ = global.file.Close()
		global.file = nil
	}
	global.out = os.Stdout
	if o.File != "" {
		global.file = &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
		}
		global.out = io.MultiWriter(os.Stdout, global.file)
	}
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.file == nil {
		return nil
	}
	err := global.file.Close()
	global.file = nil
	global.out = os.Stdout
	return err
}

func (s *settings) snapshot() (zerolog.Level, bool, io.Writer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level, s.console, s.out
}
