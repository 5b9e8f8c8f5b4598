package logging

import (
	"fmt"
	"io"
	"os"
)

// DebugEnv is the environment variable that switches on debug output.
const DebugEnv = "TE_DEBUG"

var debugOut io.Writer = os.Stderr

// DebugEnabled reports whether TE_DEBUG is set. It is read on every call so
// tests can toggle it.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Debugf writes one line to stderr when TE_DEBUG is set. It serves code that
// runs before a structured logger exists, such as schema migration.
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOut, format+"\n", args...)
	}
}
