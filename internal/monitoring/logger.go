// Package monitoring holds the module's diagnostic logging indirection.
package monitoring

import "log"

// Logf is the package-level diagnostic logger used to trace remote scan
// requests. It defaults to log.Printf; library consumers and tests may
// replace or mute it with SetLogger.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
