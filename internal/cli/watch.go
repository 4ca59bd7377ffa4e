package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/tmplpatch/internal/logging"
	"github.com/yaklabco/tmplpatch/pkg/fsutil"
)

const defaultDebounce = 150 * time.Millisecond

type watchFlags struct {
	previewFlags

	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch FILE -o OUTPUT",
		Short: "Regenerate the preview whenever the template changes",
		Long: `Render the preview once, then re-render it every time FILE or the
edit file is written. Bursts of writes are collapsed into one render.
Stop with Ctrl-C.

Examples:
  tmplpatch watch -o preview.html mail.ftl
  tmplpatch watch --edits edits.yaml -o preview.html mail.ftl`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	addPreviewFlags(cmd, &flags.previewFlags)
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "quiet period before re-rendering")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, flags *watchFlags) error {
	if path == fsutil.StdinPath {
		return fmt.Errorf("%w: cannot watch stdin", ErrUsage)
	}
	if flags.output == "" || flags.output == fsutil.StdinPath {
		return fmt.Errorf("%w: watch needs an --output file", ErrUsage)
	}

	overrides, err := previewOverrides(cmd, &flags.previewFlags)
	if err != nil {
		return err
	}
	sess, err := newSession(cmd, overrides)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(sess.ctx(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	render := func(ctx context.Context) error {
		source, _, err := sess.readInput(path)
		if err != nil {
			return err
		}
		edits, err := sess.loadEdits(flags.edits)
		if err != nil {
			return err
		}
		snap := sess.snapshot(path, source, edits)
		written, err := fsutil.WriteIfChanged(ctx, flags.output, []byte(snap.Preview()), fsutil.DefaultFileMode)
		if err != nil {
			return err
		}
		if written {
			sess.logger.Info("rendered preview",
				logging.FieldOutput, flags.output,
				logging.FieldRecords, len(snap.Records()),
			)
		}
		return nil
	}

	if err := render(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	w := newWatcher(sess.logger, flags.debounce, render, path, flags.edits)
	for _, dir := range w.dirs() {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	sess.logger.Info("watching for changes", logging.FieldPath, path, logging.FieldOutput, flags.output)
	return w.run(ctx, fsw.Events, fsw.Errors)
}

// watcher re-renders after writes to any of its target files settle.
// Directories are watched rather than files so that editors which replace
// files by rename keep being observed.
type watcher struct {
	logger   *log.Logger
	debounce time.Duration
	render   func(context.Context) error
	targets  map[string]bool
}

func newWatcher(logger *log.Logger, debounce time.Duration, render func(context.Context) error, paths ...string) *watcher {
	w := &watcher{
		logger:   logger,
		debounce: debounce,
		render:   render,
		targets:  make(map[string]bool, len(paths)),
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		w.targets[filepath.Clean(p)] = true
	}
	return w
}

func (w *watcher) dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for target := range w.targets {
		dir := filepath.Dir(target)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (w *watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := event.Name
	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}
	return w.targets[filepath.Clean(name)]
}

// run consumes events until ctx is done or events is closed. Render
// failures are logged and do not stop the loop.
func (w *watcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch stopped")
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("change detected", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.Warn("watcher error", logging.FieldError, err)

		case <-fire:
			fire = nil
			start := time.Now()
			if err := w.render(ctx); err != nil {
				w.logger.Error("render failed", logging.FieldError, err)
				continue
			}
			w.logger.Debug("render finished", logging.FieldDuration, time.Since(start))
		}
	}
}
