// Command kauma is the CLI entry point wiring the action dispatcher and the
// reference padding-oracle server on top of the GCM cryptanalysis core.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
