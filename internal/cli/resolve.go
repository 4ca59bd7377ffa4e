package cli

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/tmplpatch/pkg/fsutil"
	"github.com/yaklabco/tmplpatch/pkg/placeholder"
)

type resolveFlags struct {
	edits    string
	dataFile string
	lookup   string
	seed     uint64
	output   string
}

func newResolveCommand() *cobra.Command {
	flags := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve FILE",
		Short: "Fill placeholders with sample data and strip directives",
		Long: `Print a template with every resolvable placeholder replaced by sample
data and every directive tag (<#if>, </#list>, ...) removed. Placeholders
with no value are left verbatim.

With --edits the edit set is applied before resolving. With --data values
from a YAML file replace the generated ones, top-level key by key.

Examples:
  tmplpatch resolve mail.ftl
  tmplpatch resolve --edits edits.yaml mail.ftl
  tmplpatch resolve --data values.yaml -o mail.txt mail.ftl`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.edits, "edits", "", "edit file applied before resolving")
	cmd.Flags().StringVar(&flags.dataFile, "data", "", "YAML file with values overriding the sample data")
	cmd.Flags().StringVar(&flags.lookup, "lookup", "", "sample values: table or faker")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for the faker lookup")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func runResolve(cmd *cobra.Command, path string, flags *resolveFlags) error {
	overrides, err := sampleOverrides(cmd, flags.lookup, flags.seed)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd, overrides)
	if err != nil {
		return err
	}

	source, _, err := sess.readInput(path)
	if err != nil {
		return err
	}
	edits, err := sess.loadEdits(flags.edits)
	if err != nil {
		return err
	}

	snap := sess.snapshot(path, source, edits)
	resolved := snap.Resolved()

	if flags.dataFile != "" {
		data, err := loadData(sess, flags.dataFile)
		if err != nil {
			return err
		}
		merged := snap.Data().Clone()
		maps.Copy(merged, data)
		resolved = sess.stripper().Strip(sess.resolver().Resolve(snap.Patched(), merged))
	}

	return sess.writeOutput(flags.output, []byte(resolved))
}

func loadData(sess *session, path string) (placeholder.Data, error) {
	content, _, err := fsutil.ReadFile(sess.ctx(), path)
	if err != nil {
		return nil, err
	}
	var data placeholder.Data
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrConfig, path, err)
	}
	return data, nil
}
