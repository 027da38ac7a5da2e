package logger

import (
	"sync"
)

// Log levels accepted by the log.level setting.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger configured with the provided level.
// The first call initializes it; subsequent calls ignore the level and
// return the already initialized instance.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level)
	})
	return globalLogger
}

// Nop returns a Logger that drops every entry, for tests and optional collaborators.
func Nop() *Logger {
	return &Logger{SugaredLogger: nopSugar()}
}
