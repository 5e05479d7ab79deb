// Command impactctl runs the impact calculator offline. Geography comes from
// the built-in heuristics only, so no network access is needed.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
