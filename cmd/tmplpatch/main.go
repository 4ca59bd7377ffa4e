// Package main is the entry point for the tmplpatch CLI.
package main

import (
	"os"

	"github.com/yaklabco/tmplpatch/internal/cli"
	"github.com/yaklabco/tmplpatch/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	code := cli.ExitCode(err)
	if err != nil && code != cli.ExitFailure {
		logging.Default().Error("command failed", logging.FieldError, err)
	} else if err != nil {
		logging.Default().Warn(err.Error())
	}
	return code
}
