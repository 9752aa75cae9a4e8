// Package main provides the entry point for the sigil CLI.
package main

import (
	"context"
	"os"

	"github.com/sigilhq/sigil/internal/cli"
)

// Build information, injected at build time via ldflags.
var (
	version = "dev"     //nolint:gochecknoglobals // Set via ldflags
	commit  = "none"    //nolint:gochecknoglobals // Set via ldflags
	date    = "unknown" //nolint:gochecknoglobals // Set via ldflags
)

func main() {
	ctx := context.Background()

	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	// os.Exit skips deferred calls, so flush the log file first.
	cli.CloseLogFile()
	os.Exit(cli.ExitCodeForError(err))
}
