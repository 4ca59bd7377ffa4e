package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tmplpatch/internal/logging"
	"github.com/yaklabco/tmplpatch/internal/ui/pretty"
	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
)

type indexFlags struct {
	format string
	json   bool
	edits  string
}

func newIndexCommand() *cobra.Command {
	flags := &indexFlags{}

	cmd := &cobra.Command{
		Use:   "index FILE",
		Short: "List the elements of a template with their byte offsets",
		Long: `Index every element of a template. Ids are assigned in document order
from 0. Each record carries the element's start and end offsets and the
offset of the '>' closing its opening tag.

With --edits, removed and restyled elements are marked in the table.

Examples:
  tmplpatch index mail.ftl
  tmplpatch index --json mail.ftl
  tmplpatch index --edits edits.yaml mail.ftl`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json, yaml")
	cmd.Flags().BoolVar(&flags.json, "json", false, "shorthand for --format json")
	cmd.Flags().StringVar(&flags.edits, "edits", "", "edit file whose targets are marked")

	return cmd
}

func runIndex(cmd *cobra.Command, path string, flags *indexFlags) error {
	if flags.json {
		flags.format = "json"
	}
	format, err := parseFormat(flags.format)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd, nil)
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

	records, err := sess.indexOptions().Index(source)
	if err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}
	sess.logger.Debug("indexed input", logging.FieldPath, path, logging.FieldRecords, len(records))

	if format.IsStructured() {
		if records == nil {
			records = []htmlpos.Record{}
		}
		return printStructured(sess.out(), format, records)
	}

	marks := pretty.RecordMarks{Removed: map[int]bool{}, Styled: map[int]bool{}}
	for _, id := range edits.Removals() {
		marks.Removed[id] = true
	}
	for _, id := range edits.StyledIDs() {
		marks.Styled[id] = true
	}

	_, err = fmt.Fprint(sess.out(), sess.tableFormatter().FormatRecords(source, records, marks))
	return err
}
