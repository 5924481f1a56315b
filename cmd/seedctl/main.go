// Command seedctl is the operator CLI: it applies migrations, loads the demo
// catalog and previews what the chat search extracts from a prompt.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
