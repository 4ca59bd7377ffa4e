package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tmplpatch/internal/logging"
	"github.com/yaklabco/tmplpatch/pkg/config"
	"github.com/yaklabco/tmplpatch/pkg/fsutil"
	"github.com/yaklabco/tmplpatch/pkg/patch"
	"github.com/yaklabco/tmplpatch/pkg/splice"
)

type applyFlags struct {
	edits     string
	write     bool
	diff      bool
	explain   bool
	noBackups bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply FILE --edits EDITS",
		Short: "Apply an edit set to a template",
		Long: `Remove elements and inject inline styles as described by an edit file,
leaving every other byte of the template untouched.

An edit file lists element ids (as printed by 'tmplpatch index'):

  removals: [3, 7]
  styles:
    2: {padding: 8px, margin: 0 auto}

Files ending in .json or .jsonc are read as JSON.

By default the patched template is printed. --diff prints a unified diff
instead, --explain describes what each edit does and --write replaces the
file in place, keeping a .tmplpatch.bak backup unless backups are disabled.

Examples:
  tmplpatch apply --edits edits.yaml mail.ftl
  tmplpatch apply --edits edits.yaml --diff mail.ftl
  tmplpatch apply --edits edits.yaml --write mail.ftl`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.edits, "edits", "", "edit file to apply")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "replace the file in place")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff instead of the patched template")
	cmd.Flags().BoolVar(&flags.explain, "explain", false, "describe the removals, styles and skipped edits")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not keep a backup when writing")
	_ = cmd.MarkFlagRequired("edits")
	cmd.MarkFlagsMutuallyExclusive("diff", "explain")

	return cmd
}

func runApply(cmd *cobra.Command, path string, flags *applyFlags) error {
	overrides := &config.Config{}
	if flags.noBackups {
		overrides.Backups.Enabled = config.Ptr(false)
	}

	sess, err := newSession(cmd, overrides)
	if err != nil {
		return err
	}

	source, info, err := sess.readInput(path)
	if err != nil {
		return err
	}
	if flags.write && info.IsStdin() {
		return fmt.Errorf("%w: --write needs a file: %w", ErrUsage, fsutil.ErrStdin)
	}

	edits, err := sess.loadEdits(flags.edits)
	if err != nil {
		return err
	}

	records, err := sess.indexOptions().Index(source)
	if err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}

	plan := patch.NewPlan(source, records, edits)
	logPlan(sess, path, plan)
	planned, err := plan.Edits()
	if err != nil {
		return fmt.Errorf("plan %s: %w", path, err)
	}
	patched := splice.Apply(source, planned)

	styles := sess.styles()
	switch {
	case flags.explain:
		if _, err := fmt.Fprint(sess.out(), styles.FormatPlan(plan)); err != nil {
			return err
		}
	case flags.diff:
		if _, err := fmt.Fprint(sess.out(), styles.FormatDiff(splice.Unified(path, source, patched))); err != nil {
			return err
		}
	case !flags.write:
		if _, err := fmt.Fprint(sess.out(), patched); err != nil {
			return err
		}
	}

	if !flags.write {
		return nil
	}

	result, err := fsutil.Replace(sess.ctx(), info, []byte(patched), fsutil.BackupConfigFrom(sess.cfg))
	if err != nil {
		if errors.Is(err, fsutil.ErrModified) {
			sess.logger.Error("file changed while patching; not written", logging.FieldPath, path)
		}
		return err
	}
	if !result.Written {
		sess.logger.Info("already up to date", logging.FieldPath, path)
		return nil
	}
	sess.logger.Info("patched file",
		logging.FieldPath, path,
		logging.FieldBackup, result.BackupPath,
	)
	return nil
}

func logPlan(sess *session, path string, plan *patch.Plan) {
	sess.logger.Debug("planned edits",
		logging.FieldPath, path,
		logging.FieldRemovals, len(plan.Removals),
		logging.FieldStyles, len(plan.Insertions),
		logging.FieldSkipped, len(plan.Skipped),
	)
	for _, skip := range plan.Skipped {
		sess.logger.Debug("skipped edit",
			logging.FieldID, skip.ID,
			logging.FieldReason, skip.Reason.String(),
		)
	}
}
