package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	matrixio "github.com/clinigrid/clinigrid/pkg/io"
	"github.com/clinigrid/clinigrid/pkg/pipeline"
)

// fetchCommand creates the fetch command for pulling pivot matrices.
func (c *CLI) fetchCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "fetch [subject]",
		Short: "Fetch a pivot matrix and write it as JSON",
		Long: `Fetch a pivot matrix for a subject and write it as JSON.

The fetch command pulls the encounter pivot for a subject from the configured
source (file, http, or mongo) and writes it as a canonical matrix JSON file.
The default file name, <subject>_<category>.json, is the name a file source
reads back, so fetched matrices can feed later runs directly.

With no subject argument, the subject from the previous run is reused.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(&opts)
			if err := c.resolveSubject(cmd.Context(), args, &opts); err != nil {
				return err
			}
			return c.runFetch(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (default: <subject>_<category>.json, "-" for stdout)`)
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "pivot category: symptom (default), diagnosis, category, hrsn")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and fetch fresh data")

	return cmd
}

// runFetch pulls the matrix and writes it to the output target.
func (c *CLI) runFetch(ctx context.Context, opts pipeline.Options, output string) error {
	if err := opts.ValidateForFetch(); err != nil {
		return err
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %s pivot for %s...", opts.Category, opts.Subject))
	spinner.Start()

	m, cacheHit, err := runner.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return fmt.Errorf("fetch pivot: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// "-" streams the matrix to stdout for piping; status lines would
	// corrupt the stream, so the celebration is skipped.
	if output == "-" {
		return matrixio.WriteMatrix(m, os.Stdout)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s_%s.json", opts.Subject, opts.Category)
	}
	if err := matrixio.ExportMatrix(m, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	c.rememberRun(ctx, opts)

	printSuccess("Fetched %s pivot for %s", opts.Category, opts.Subject)
	printFile(outputPath)
	printStats(len(m.Rows), len(m.Columns), cacheHit)
	printNewline()
	printNextStep("Render", "clinigrid render "+opts.Subject)

	return nil
}
