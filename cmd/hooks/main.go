// Command hooks runs the Counter demo on the hook-slot engine and inspects
// commit journals.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/hooks/cmd/hooks/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
