// Package cli provides the Cobra command structure for tmplpatch.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root tmplpatch command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var color string

	rootCmd := &cobra.Command{
		Use:   "tmplpatch",
		Short: "Inspect and patch HTML email templates by element",
		Long: `tmplpatch locates, removes and restyles elements of HTML and FreeMarker
email templates without disturbing the rest of the file.

Every element in the raw template gets a stable numeric id. Those ids can be
listed (index), found from a byte range (locate) and targeted by an edit file
that removes elements or injects inline styles (apply). Placeholders such as
{{name}} and ${name} are filled with sample data and directives such as
<#if> are stripped to produce a browsable preview whose elements map back to
the template (preview, resolve, watch).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().Bool("no-config", false, "ignore system, user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(
		newNamesCommand(),
		newDataCommand(),
		newResolveCommand(),
		newIndexCommand(),
		newLocateCommand(),
		newPreviewCommand(),
		newApplyCommand(),
		newWatchCommand(),
		newInitCommand(),
		newConfigCommand(),
		newVersionCommand(info),
	)

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
