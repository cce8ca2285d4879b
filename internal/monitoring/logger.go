package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

var debugEnabled bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug toggles per-event debug output (truncation notices, absent
// optional attributes). Debug output goes through Logf.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// DebugEnabled reports whether Debugf emits anything.
func DebugEnabled() bool {
	return debugEnabled
}

// Debugf logs through Logf with a "[debug] " prefix when debug output is enabled.
func Debugf(format string, v ...interface{}) {
	if !debugEnabled {
		return
	}
	Logf("[debug] "+format, v...)
}
