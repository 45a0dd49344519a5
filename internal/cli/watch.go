package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-enry/go-enry/v2"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gridmark/internal/logging"
	"github.com/yaklabco/gridmark/internal/ui/gridstyle"
	"github.com/yaklabco/gridmark/pkg/doc"
	"github.com/yaklabco/gridmark/pkg/view"
)

func newWatchCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Watch a Markdown file and keep its grids synchronized",
		Long: `Watch renders a Markdown file's tables and re-renders them whenever the
file changes on disk. Each change is turned into a document transaction,
so table views keep their identity across edits that do not touch them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}
	return cmd
}

func runWatch(ctx context.Context, w io.Writer, path string, flags *rootFlags) error {
	logger := logging.FromContext(ctx)

	opts, err := loadOptions(flags)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if lang := enry.GetLanguage(filepath.Base(path), content); lang != "Markdown" {
		return fmt.Errorf("%s is not a Markdown file (detected %s)", path, orUnknown(lang))
	}

	state := doc.NewState(string(content), view.StateField(view.WithLogger(logger)))
	styles := gridstyle.NewStyles(gridstyle.ShouldColor(opts.Color, os.Stdout))
	maxColWidth := columnWidthLimit(opts)

	if reg, ok := view.RegistryOf(state); ok {
		writeRegistry(w, reg, styles, maxColWidth)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save, which
	// drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, watchErr)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !eventTouches(event, abs) {
				continue
			}
			state = applyFileChange(w, logger, state, path, styles, maxColWidth)
		}
	}
}

// eventTouches reports whether a filesystem event concerns the watched file.
func eventTouches(event fsnotify.Event, abs string) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	eventAbs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return eventAbs == abs
}

// applyFileChange turns the file's new content into a transaction against
// the current state and re-renders when the table set or content changed.
func applyFileChange(w io.Writer, logger *log.Logger, state *doc.State, path string, styles *gridstyle.Styles, maxColWidth int) *doc.State {
	content, err := os.ReadFile(path)
	if err != nil {
		// Transient: saves often appear as remove-then-create.
		logger.Debug("skipping unreadable file", logging.FieldPath, path, logging.FieldError, err)
		return state
	}

	changes := doc.Diff(state.Doc(), string(content))
	if changes.Empty() {
		return state
	}

	next, tx := state.Apply(changes, doc.UserEvent("file.write"))
	logger.Debug("applied file change",
		logging.FieldPath, path,
		logging.FieldEdits, changes.Len(),
		logging.FieldUserEvent, tx.UserEvent(),
	)

	if reg, ok := view.RegistryOf(next); ok {
		fmt.Fprintln(w)
		writeRegistry(w, reg, styles, maxColWidth)
	}
	return next
}

func orUnknown(lang string) string {
	if lang == "" {
		return "unknown"
	}
	return lang
}
