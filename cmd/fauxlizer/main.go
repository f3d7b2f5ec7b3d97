// fauxlizer validates a fauxness data file and prints its summary.
//
// Usage:
//
//	fauxlizer FILE [-f JSON|CSV] [-l N]
//
// The summary is always printed as one JSON object. With -l, a successfully
// validated file also prints row N (0-based) in the -f format.
package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/fauxlizer/internal/core"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

// errorText formats err with its user message when it maps to one, and
// falls back to the raw error for usage mistakes.
func errorText(err error) string {
	if core.IsUserFacing(err) {
		return core.FormatUserError(err)
	}
	return err.Error()
}
