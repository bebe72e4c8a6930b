// Package routelog provides the minimal structured-logging interface
// consumed throughout the router, mirroring original_source's pervasive
// logger.debug/.warning/.error call sites at pathfinder failures,
// occupancy conflicts, and transition-generation skips.
package routelog

import (
	"fmt"
	"log"
)

// Logger is the logging surface every stateful component accepts via a
// WithLogger functional option. The zero value of NopLogger satisfies
// it and discards everything, so library consumers pay nothing unless
// they opt in.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards every call.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// StdLogger backs Logger with the standard library's log.Logger,
// prefixing each line with its severity.
type StdLogger struct {
	*log.Logger
}

// NewStdLogger wraps l, or the default std logger if l is nil.
func NewStdLogger(l *log.Logger) StdLogger {
	if l == nil {
		l = log.Default()
	}

	return StdLogger{Logger: l}
}

func (s StdLogger) Debugf(format string, args ...interface{}) {
	s.Logger.Print("DEBUG " + fmt.Sprintf(format, args...))
}

func (s StdLogger) Warnf(format string, args ...interface{}) {
	s.Logger.Print("WARN " + fmt.Sprintf(format, args...))
}

func (s StdLogger) Errorf(format string, args ...interface{}) {
	s.Logger.Print("ERROR " + fmt.Sprintf(format, args...))
}
