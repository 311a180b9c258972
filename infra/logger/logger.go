package logger

import corelogger "github.com/kilianp07/berthplan/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// New returns a zerolog-backed Logger tagged with component, using the
// defaults installed by Configure. APP_ENV=dev switches to console output
// and LOG_LEVEL sets the minimum level.
func New(component string) Logger {
	return NewZerologLogger(component)
}
