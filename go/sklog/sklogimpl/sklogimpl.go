// Package sklogimpl holds the pluggable logger behind package sklog. Only
// sklog and logger implementations should import it.
package sklogimpl

import (
	"sync"
)

// Severity of a log line.
type Severity int

// Severities in increasing order.
const (
	Debug Severity = iota
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// Logger is implemented by every log backend.
type Logger interface {
	// Log writes one line. depth is the number of stack frames between the
	// original sklog caller and this call. An empty format means the args are
	// formatted with fmt.Sprint.
	Log(depth int, severity Severity, format string, args ...interface{})

	// Flush any buffered output.
	Flush()
}

var (
	mtx         sync.RWMutex
	logger      Logger
	minSeverity = Info
)

// SetLogger replaces the current backend.
func SetLogger(l Logger) {
	mtx.Lock()
	defer mtx.Unlock()
	logger = l
}

// SetMinSeverity drops every line below s. Fatal lines are never dropped.
func SetMinSeverity(s Severity) {
	mtx.Lock()
	defer mtx.Unlock()
	if s > Fatal {
		s = Fatal
	}
	minSeverity = s
}

// Log forwards a line to the backend.
func Log(depth int, severity Severity, format string, args ...interface{}) {
	mtx.RLock()
	l, min := logger, minSeverity
	mtx.RUnlock()
	if l == nil || severity < min {
		return
	}
	l.Log(depth+1, severity, format, args...)
}

// Flush the backend.
func Flush() {
	mtx.RLock()
	l := logger
	mtx.RUnlock()
	if l != nil {
		l.Flush()
	}
}
