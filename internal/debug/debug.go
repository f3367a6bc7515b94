// Package debug provides env-gated stderr tracing for troubleshooting
// import runs. Set GLC_DEBUG to any non-empty value to enable.
package debug

import (
	"fmt"
	"os"
)

var enabled = os.Getenv("GLC_DEBUG") != ""

func Enabled() bool {
	return enabled
}

func Logf(format string, args ...interface{}) {
	if enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
