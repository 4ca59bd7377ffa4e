package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tmplpatch/internal/configloader"
)

type configFlags struct {
	env   bool
	paths bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration tmplpatch would use in the current directory,
after merging system, user, project and explicit config files with
TMPLPATCH_* environment variables.

Examples:
  tmplpatch config            Print the merged configuration as YAML
  tmplpatch config --paths    Show which files were loaded
  tmplpatch config --env      List the supported environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")
	cmd.Flags().BoolVar(&flags.paths, "paths", false, "list the config files that were loaded")
	cmd.MarkFlagsMutuallyExclusive("env", "paths")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		vars := configloader.ListEnvVars()
		for _, name := range slices.Sorted(maps.Keys(vars)) {
			if _, err := fmt.Fprintf(out, "%-30s %s\n", name, vars[name]); err != nil {
				return err
			}
		}
		return nil
	}

	sess, err := newSession(cmd, nil)
	if err != nil {
		return err
	}

	if flags.paths {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		paths, err := configloader.DiscoverPaths(sess.ctx(), workDir)
		if err != nil {
			return err
		}
		styles := sess.styles()
		for _, entry := range []struct{ label, path string }{
			{"system", paths.System},
			{"user", paths.User},
			{"project", paths.Project},
		} {
			path := entry.path
			if path == "" {
				path = styles.Dim.Render("(none)")
			}
			if _, err := fmt.Fprintf(out, "%-8s %s\n", entry.label, path); err != nil {
				return err
			}
		}
		return nil
	}

	content, err := sess.cfg.ToYAMLWithHeader("# effective configuration")
	if err != nil {
		return err
	}
	_, err = out.Write(content)
	return err
}
