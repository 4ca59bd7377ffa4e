package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/tmplpatch/internal/logging"
	"github.com/yaklabco/tmplpatch/pkg/config"
)

type previewFlags struct {
	edits  string
	minify bool
	output string
	lookup string
	seed   uint64
}

func newPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Render tagged preview markup for a template",
		Long: `Apply the edits, resolve placeholders with sample data, strip directives
and render the result as HTML in which every element carries a
data-node-id (its preview index) and a data-tag-name attribute.

Markup that cannot be parsed is shown escaped inside <pre>.

Examples:
  tmplpatch preview mail.ftl > preview.html
  tmplpatch preview --edits edits.yaml --minify -o preview.html mail.ftl`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], flags)
		},
	}

	addPreviewFlags(cmd, flags)

	return cmd
}

func addPreviewFlags(cmd *cobra.Command, flags *previewFlags) {
	cmd.Flags().StringVar(&flags.edits, "edits", "", "edit file applied before rendering")
	cmd.Flags().BoolVar(&flags.minify, "minify", false, "minify the preview markup")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&flags.lookup, "lookup", "", "sample values: table or faker")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for the faker lookup")
}

func previewOverrides(cmd *cobra.Command, flags *previewFlags) (*config.Config, error) {
	cfg, err := sampleOverrides(cmd, flags.lookup, flags.seed)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("minify") {
		cfg.Preview.Minify = config.Ptr(flags.minify)
	}
	return cfg, nil
}

func runPreview(cmd *cobra.Command, path string, flags *previewFlags) error {
	overrides, err := previewOverrides(cmd, flags)
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
	sess.logger.Debug("rendered preview",
		logging.FieldRecords, len(snap.Records()),
		logging.FieldBytes, len(snap.Preview()),
	)

	return sess.writeOutput(flags.output, []byte(snap.Preview()))
}
