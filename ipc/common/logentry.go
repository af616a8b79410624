package common

import (
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Log Entry
// --------------------------------------------------------------------------

// Recognized log levels sent by the daemon
const (
	LogLevelTrace = "trace"
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// LogEntry is a daemon log notification delivered out-of-band before the
// terminal reply of a command. Entries are forwarded to a sink and then
// discarded, never retained.
type LogEntry struct {
	Source  string `json:"source"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// LogSink consumes log entries received during a command exchange.
// A sink returns an error only for unrecognized levels; that error aborts
// the in-flight request.
type LogSink func(entry LogEntry) error

// --------------------------------------------------------------------------
// Default Sink
// --------------------------------------------------------------------------

// sourceLoggers caches one named logger per daemon log source
var sourceLoggers = xsync.NewMapOf[string, logger.ILogger]()

// EmitLogEntry is the default LogSink. It forwards the entry to a logger
// named after the entry's source at the matching level.
func EmitLogEntry(entry LogEntry) error {
	l, _ := sourceLoggers.LoadOrCompute(entry.Source, func() logger.ILogger {
		return logger.GetLogger(entry.Source)
	})
	switch entry.Level {
	case LogLevelTrace, LogLevelDebug:
		l.Debugf("%s", entry.Message)
	case LogLevelInfo:
		l.Infof("%s", entry.Message)
	case LogLevelWarn:
		l.Warningf("%s", entry.Message)
	case LogLevelError:
		l.Errorf("%s", entry.Message)
	default:
		return &UnknownLogLevelError{Level: entry.Level}
	}
	return nil
}
