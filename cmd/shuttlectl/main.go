// Command shuttlectl runs the FAQ search and ride tracker logic offline,
// against the bundled catalogs or YAML override files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
