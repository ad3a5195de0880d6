// Command pdsync syncs a contact record into Pipedrive.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/pdsync/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
