package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gridmark/internal/logging"
	"github.com/yaklabco/gridmark/internal/ui/gridstyle"
	"github.com/yaklabco/gridmark/pkg/config"
	"github.com/yaklabco/gridmark/pkg/doc"
	"github.com/yaklabco/gridmark/pkg/grid"
	"github.com/yaklabco/gridmark/pkg/view"
)

func newRenderCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render the tables of a Markdown file as grids",
		Long: `Render parses a Markdown file once and prints every table it contains
as a grid, in document order. A table that cannot be rendered shows up
as an inline error box; the remaining tables are unaffected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}
	return cmd
}

func runRender(ctx context.Context, w io.Writer, path string, flags *rootFlags) error {
	logger := logging.FromContext(ctx)

	opts, err := loadOptions(flags)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	state := doc.NewState(string(content), view.StateField(view.WithLogger(logger)))
	reg, ok := view.RegistryOf(state)
	if !ok {
		return fmt.Errorf("table view field missing from document state")
	}

	logger.Debug("rendered document",
		logging.FieldPath, path,
		logging.FieldDocBytes, state.Len(),
		logging.FieldTables, reg.Len(),
	)

	styles := gridstyle.NewStyles(gridstyle.ShouldColor(opts.Color, os.Stdout))
	writeRegistry(w, reg, styles, columnWidthLimit(opts))
	return nil
}

// writeRegistry prints each registered grid in span order.
func writeRegistry(w io.Writer, reg *view.Registry, styles *gridstyle.Styles, maxColWidth int) {
	for i, e := range reg.Entries() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styles.Dim.Render(fmt.Sprintf("table %d %s", i+1, e.Span)))
		fmt.Fprintln(w, renderTarget(e.View, styles, maxColWidth))
	}
	if reg.Len() == 0 {
		fmt.Fprintln(w, styles.Dim.Render("no tables found"))
	}
}

// renderTarget draws a view's current rendering target.
func renderTarget(v *view.TableView, styles *gridstyle.Styles, maxColWidth int) string {
	target := v.Target()
	if target == nil {
		return styles.Dim.Render("(unrendered)")
	}
	return grid.Render(target, styles.RenderStyles(), maxColWidth)
}

// loadOptions resolves configuration: explicit --config path, then
// discovery from the working directory, then defaults. The --color flag
// overrides the configured value, and --debug overrides the configured
// log level.
func loadOptions(flags *rootFlags) (config.Options, error) {
	path := flags.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path, _ = config.Discover(wd)
		}
	}
	opts, err := config.Load(path)
	if err != nil {
		return opts, err
	}
	if flags.color != "" {
		opts.Color = flags.color
		if err := opts.Validate(); err != nil {
			return opts, err
		}
	}
	if !flags.debug {
		logging.SetLevel(opts.LogLevel)
	}
	return opts, nil
}

// columnWidthLimit clamps the configured column width to the terminal.
func columnWidthLimit(opts config.Options) int {
	limit := opts.MaxColumnWidth
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 4 {
		if limit == 0 || limit > width-4 {
			limit = width - 4
		}
	}
	return limit
}
