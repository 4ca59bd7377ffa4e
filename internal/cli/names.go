package cli

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tmplpatch/internal/logging"
	"github.com/yaklabco/tmplpatch/pkg/directive"
	"github.com/yaklabco/tmplpatch/pkg/placeholder"
)

type namesFlags struct {
	positions bool
	format    string
}

// nameEntry is the structured form of one placeholder or directive.
type nameEntry struct {
	Kind  string `json:"kind" yaml:"kind"`
	Name  string `json:"name" yaml:"name"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

func newNamesCommand() *cobra.Command {
	flags := &namesFlags{}

	cmd := &cobra.Command{
		Use:   "names FILE",
		Short: "List the placeholder names used by a template",
		Long: `List the distinct placeholder names used by a template, {{name}} forms
first, then ${path} forms, each in order of first appearance.

With --positions every occurrence is listed with its byte span, together
with the directive tags that resolve would strip.

Examples:
  tmplpatch names mail.ftl
  tmplpatch names --positions mail.ftl
  cat mail.ftl | tmplpatch names --positions --format json -`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNames(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.positions, "positions", false, "list every occurrence and directive with its byte span")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json, yaml")

	return cmd
}

func runNames(cmd *cobra.Command, path string, flags *namesFlags) error {
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

	resolver := sess.resolver()
	if !flags.positions {
		names := resolver.CollectNames(source)
		sess.logger.Debug("collected names", logging.FieldNames, len(names))
		if format.IsStructured() {
			return printStructured(sess.out(), format, names)
		}
		for _, name := range names {
			fmt.Fprintln(sess.out(), name)
		}
		return nil
	}

	matches := resolver.Placeholders(source)
	tags := sess.stripper().Directives(source)
	sess.logger.Debug("collected positions",
		logging.FieldNames, len(matches),
		logging.FieldDirectives, len(tags),
	)

	if format.IsStructured() {
		return printStructured(sess.out(), format, nameEntries(matches, tags))
	}
	_, err = fmt.Fprint(sess.out(), sess.tableFormatter().FormatNames(matches, tags))
	return err
}

func nameEntries(matches []placeholder.Match, tags []directive.Tag) []nameEntry {
	entries := make([]nameEntry, 0, len(matches)+len(tags))
	for _, m := range matches {
		entries = append(entries, nameEntry{Kind: m.Syntax.String(), Name: m.Name, Start: m.Start, End: m.End})
	}
	for _, tag := range tags {
		entries = append(entries, nameEntry{Kind: "directive", Name: tag.Raw, Start: tag.Start, End: tag.End})
	}
	slices.SortStableFunc(entries, func(a, b nameEntry) int { return cmp.Compare(a.Start, b.Start) })
	return entries
}
