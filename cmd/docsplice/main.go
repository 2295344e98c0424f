// Command docsplice generates Go documentation files from markdown.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/docsplice/internal/adapters/driving/cli"
	"github.com/custodia-labs/docsplice/internal/core/domain"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetWiring(newWiring())

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes out-of-date outputs from other failures so CI
// scripts can tell them apart.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrStale) {
		return 3
	}
	return 1
}
