package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tmplpatch/internal/logging"
	"github.com/yaklabco/tmplpatch/internal/ui/pretty"
	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
	"github.com/yaklabco/tmplpatch/pkg/patch"
)

type locateFlags struct {
	from   int
	to     int
	format string
}

// located is the structured output of locate.
type located struct {
	htmlpos.Record `yaml:",inline"`

	// PreviewIndex is the element's data-node-id in the preview, or -1.
	PreviewIndex int `json:"preview_index" yaml:"preview_index"`
}

func newLocateCommand() *cobra.Command {
	flags := &locateFlags{}

	cmd := &cobra.Command{
		Use:   "locate FILE --from N --to M",
		Short: "Find the smallest element containing a byte range",
		Long: `Find the smallest element whose span contains the byte range [from, to),
as an editor does when mapping a selection to an element. The element's
position in the preview is printed too.

Exits with status 1 when no element contains the range.

Examples:
  tmplpatch locate --from 120 --to 134 mail.ftl
  tmplpatch locate --from 5 --to 5 --format json mail.ftl`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.from, "from", 0, "start of the range (byte offset)")
	cmd.Flags().IntVar(&flags.to, "to", -1, "end of the range (defaults to --from)")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json, yaml")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func runLocate(cmd *cobra.Command, path string, flags *locateFlags) error {
	format, err := parseFormat(flags.format)
	if err != nil {
		return err
	}
	if flags.to < 0 {
		flags.to = flags.from
	}
	if flags.from < 0 || flags.to < flags.from {
		return fmt.Errorf("%w: invalid range [%d, %d)", ErrUsage, flags.from, flags.to)
	}

	sess, err := newSession(cmd, nil)
	if err != nil {
		return err
	}

	source, _, err := sess.readInput(path)
	if err != nil {
		return err
	}

	snap := sess.snapshot(path, source, patch.NewEditSet())
	if err := snap.IndexErr(); err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}

	id, ok := htmlpos.ContainingID(snap.Records(), flags.from, flags.to)
	if !ok {
		return fmt.Errorf("%w: [%d, %d) in %s", ErrNoElement, flags.from, flags.to, path)
	}
	rec, _ := htmlpos.Find(snap.Records(), id)

	previewIndex, found := snap.Selection(flags.from, flags.to)
	if !found {
		previewIndex = -1
	}
	sess.logger.Debug("located element", logging.FieldID, id, "preview_index", previewIndex)

	if format.IsStructured() {
		return printStructured(sess.out(), format, located{Record: rec, PreviewIndex: previewIndex})
	}

	_, err = fmt.Fprint(sess.out(), sess.tableFormatter().FormatRecords(source, []htmlpos.Record{rec}, pretty.RecordMarks{}))
	return err
}
