package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinigrid/clinigrid/pkg/pipeline"
)

// exportCommand creates the export command for deliverable documents.
func (c *CLI) exportCommand() *cobra.Command {
	var formats string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export [subject]",
		Short: "Export spreadsheet and document deliverables",
		Long: `Export spreadsheet and document deliverables for a subject.

The export command runs the same pipeline as render but targets the document
formats: a formatted spreadsheet (xlsx) and a paginated chart document (pdf)
by default. Wide matrices are tiled into pages along the date axis; the page
geometry can be overridden for other paper sizes.

Files are written into the output directory under canonical names, e.g.
patient_042_symptom_2024-03-01.xlsx.

With no subject argument, the previous run is repeated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			c.applyConfig(&opts)
			if err := c.resolveSubject(cmd.Context(), args, &opts); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "directory for exported files (default: current directory)")
	cmd.Flags().StringVarP(&formats, "format", "f", "xlsx,pdf", "comma-separated formats: xlsx, pdf, png, html")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "pivot category: symptom (default), diagnosis, category, hrsn")
	cmd.Flags().StringVar(&opts.Curve, "curve", "", "scaling curve: linear (default), log")
	cmd.Flags().BoolVar(&opts.AllRows, "all-rows", false, "rank every row instead of the top window")
	cmd.Flags().Float64Var(&opts.PageWidth, "page-width", 0, "document page width in points (default: A4 landscape)")
	cmd.Flags().Float64Var(&opts.PageHeight, "page-height", 0, "document page height in points (default: A4 landscape)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute everything")

	return cmd
}

// runExport executes the pipeline and writes the deliverables.
func (c *CLI) runExport(ctx context.Context, opts pipeline.Options) error {
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s...", opts.Subject))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return fmt.Errorf("export %s: %w", opts.Subject, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := c.writeArtifacts(result, opts, "")
	if err != nil {
		return err
	}

	c.rememberRun(ctx, opts)

	printSuccess("Exported %s", opts.Subject)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.RowCount, result.Stats.ColumnCount, result.CacheInfo.PivotHit)
	if result.Stats.PageCount > 1 {
		printDetail("%d document pages", result.Stats.PageCount)
	}

	return nil
}
