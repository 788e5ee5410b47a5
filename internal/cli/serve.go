package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinigrid/clinigrid/internal/server"
	"github.com/clinigrid/clinigrid/pkg/pipeline"
)

// defaultServeAddr is the listen address when neither the flag nor the
// config file sets one.
const defaultServeAddr = ":8787"

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualization pipeline over HTTP",
		Long: `Serve the visualization pipeline over HTTP.

The serve command exposes the fetch, model, and render stages as a JSON API
backed by the same cache the CLI uses. Chart images and export downloads are
available per subject:

  GET /healthz
  GET /api/pivot?subject=patient-042
  GET /api/model?subject=patient-042&chart=bubble
  GET /api/chart/heatmap.png?subject=patient-042
  GET /api/export/xlsx?subject=patient-042

The server stops cleanly on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8787)")

	return cmd
}

// runServe starts the HTTP server and blocks until shutdown.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	if addr == "" && c.Config != nil {
		addr = c.Config.Serve.Addr
	}
	if addr == "" {
		addr = defaultServeAddr
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
	defer src.Close(context.Background())

	defaults := pipeline.Options{}
	c.applyConfig(&defaults)

	srv := server.New(runner, src,
		server.WithLogger(c.Logger),
		server.WithDefaults(defaults),
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	prog := newProgress(c.Logger)
	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	printDetail("Press Ctrl+C to stop")

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			printError("Shutdown failed: %v", err)
			return err
		}
		prog.done("Server stopped")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve on %s: %w", addr, err)
		}
		prog.done("Server stopped")
		return nil
	}
}

// displayAddr turns a listen address into something a browser accepts.
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
