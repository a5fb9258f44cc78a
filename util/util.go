package util

import "log"

// Logging turns Logf on.
var Logging = false

// Logf calls log.Printf when Logging is true.  Crude but sufficient
// for the demo tools.
func Logf(format string, args ...interface{}) {
	if !Logging {
		return
	}
	log.Printf(format, args...)
}
