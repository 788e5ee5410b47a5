package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinigrid/clinigrid/pkg/export"
	"github.com/clinigrid/clinigrid/pkg/pipeline"
	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// renderCommand creates the render command for chart artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [subject]",
		Short: "Render a chart artifact from a pivot matrix",
		Long: `Render a chart artifact from a pivot matrix.

The render command fetches the subject's pivot, ranks and scales it, and
renders the selected chart as one or more artifacts. Image formats (png, svg)
draw the chart directly; html produces an interactive page; json emits the
chart model; dot emits a co-occurrence graph for graphviz.

With no subject argument, the previous run is repeated.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			c.applyConfig(&opts)
			if err := c.resolveSubject(cmd.Context(), args, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for a single format (default: canonical name in the output dir)")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "directory for artifacts (default: current directory)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "comma-separated formats: png (default), svg, html, json, dot")

	// Chart flags
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "pivot category: symptom (default), diagnosis, category, hrsn")
	cmd.Flags().StringVarP(&opts.Chart, "chart", "t", "", "chart kind: heatmap (default), bubble, scatter, table, network")
	cmd.Flags().StringVar(&opts.Curve, "curve", "", "scaling curve: linear (default), log")
	cmd.Flags().BoolVar(&opts.AllRows, "all-rows", false, "rank every row instead of the top window")
	cmd.Flags().IntVar(&opts.Supersample, "supersample", 0, "pixel density multiplier for png output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute everything")

	return cmd
}

// runRender executes the pipeline and writes the rendered artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	if err := opts.ValidateForFetch(); err != nil {
		return err
	}
	setCLIDefaults(&opts)
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, err := c.newSource(ctx)
	if err != nil {
		return fmt.Errorf("initialize source: %w", err)
	}
	defer src.Close(ctx)
	opts.Source = src
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s for %s...", opts.Chart, opts.Subject))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", opts.Chart, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := c.writeArtifacts(result, opts, output)
	if err != nil {
		return err
	}

	c.rememberRun(ctx, opts)

	printSuccess("Rendered %s for %s", opts.Chart, opts.Subject)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.RowCount, result.Stats.ColumnCount, result.CacheInfo.PivotHit)
	printNewline()
	printNextStep("Export documents", "clinigrid export "+opts.Subject)

	return nil
}

// writeArtifacts writes rendered artifacts to disk and returns their paths.
// A single artifact with an explicit output path goes exactly there; every
// other artifact gets its canonical name in the output directory.
func (c *CLI) writeArtifacts(result *pipeline.Result, opts pipeline.Options, output string) ([]string, error) {
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}

		path := output
		if path == "" || len(opts.Formats) > 1 {
			name := export.ArtifactName(format, opts.Subject, pivot.Category(opts.Category), opts.GeneratedAt)
			path = filepath.Join(dir, name)
		}
		if err := export.WriteFile(path, data); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
