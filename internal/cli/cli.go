// Package cli implements the clinigrid command-line interface.
//
// This package provides commands for fetching clinical pivot matrices from
// configured sources, rendering them as ranked chart artifacts, exporting
// paginated documents, and serving the same pipeline over HTTP. The CLI is
// built using cobra and supports verbose logging and response caching.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/clinigrid/clinigrid/pkg/buildinfo"
	"github.com/clinigrid/clinigrid/pkg/cache"
	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/httputil"
	"github.com/clinigrid/clinigrid/pkg/pipeline"
	"github.com/clinigrid/clinigrid/pkg/pivot/source"
	"github.com/clinigrid/clinigrid/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "clinigrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	configPath string
	noCache    bool
	verbose    bool
	quiet      bool
	theme      string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: &Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "clinigrid",
		Short:        "Clinigrid visualizes clinical pivot matrices",
		Long:         `Clinigrid is a CLI tool for turning clinical encounter pivots into ranked heatmaps and bubble charts, exported as spreadsheets, images, and paginated documents.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case c.verbose:
				c.SetLogLevel(log.DebugLevel)
			case c.quiet:
				c.SetLogLevel(log.WarnLevel)
			}
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "only log warnings and errors")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "bypass all caching")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/clinigrid/config.toml)")
	root.PersistentFlags().StringVar(&c.theme, "theme", "", "color theme (heat, viridis, ocean, slate)")

	// Register all subcommands
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner honoring the configured cache backend.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	var cfg CacheConfig
	if c.Config != nil {
		cfg = c.Config.Cache
	}
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be file, redis, or none)", cfg.Backend)
	}
}

// newSource builds the pivot source from config. The default is a file
// source rooted in the working directory, which reads the same
// <subject>_<category>.json files that fetch writes.
func (c *CLI) newSource(ctx context.Context) (source.Source, error) {
	var cfg SourceConfig
	if c.Config != nil {
		cfg = c.Config.Source
	}
	switch cfg.Kind {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			dir = "."
		}
		return source.NewFileSource(dir), nil
	case "http":
		var hc *httputil.Cache
		if !c.noCache {
			ttl := cache.TTLPivot
			if c.Config != nil && c.Config.Cache.TTL.Duration > 0 {
				ttl = c.Config.Cache.TTL.Duration
			}
			if dir, err := cacheDir(); err == nil {
				hc, _ = httputil.NewCache(filepath.Join(dir, "http"), ttl)
			}
		}
		return source.NewHTTPSource(cfg.BaseURL, hc, cfg.Headers)
	case "mongo":
		return source.NewMongoSource(ctx, cfg.MongoURI, cfg.Database)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown source kind %q (must be file, http, or mongo)", cfg.Kind)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/clinigrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfig fills options the flags left unset from the persistent theme
// flag and the config file. Flag values always win; config only supplies
// missing values.
func (c *CLI) applyConfig(opts *pipeline.Options) {
	if opts.Theme == "" {
		opts.Theme = c.theme
	}
	if c.Config == nil {
		return
	}
	if opts.Theme == "" {
		opts.Theme = c.Config.Export.Theme
	}
	if opts.Curve == "" {
		opts.Curve = c.Config.Export.Curve
	}
	if opts.Supersample == 0 {
		opts.Supersample = c.Config.Export.Supersample
	}
	if opts.PageWidth == 0 {
		opts.PageWidth = c.Config.Page.Width
	}
	if opts.PageHeight == 0 {
		opts.PageHeight = c.Config.Page.Height
	}
	if opts.OutputDir == "" {
		opts.OutputDir = c.Config.Export.OutputDir
	}
}

// resolveSubject fills the subject from the positional argument, falling
// back to the state saved by the previous run. Display options the flags
// and config left unset also come from the saved state, so a bare
// "clinigrid render" repeats the last run.
func (c *CLI) resolveSubject(ctx context.Context, args []string, opts *pipeline.Options) error {
	if len(args) > 0 {
		opts.Subject = args[0]
		return nil
	}
	state := c.loadState(ctx)
	if state == nil || state.Subject == "" {
		return errors.New(errors.ErrCodeInvalidSubject,
			"no subject given and no previous run to reuse")
	}
	opts.Subject = state.Subject
	if opts.Category == "" {
		opts.Category = state.Category
	}
	if opts.Chart == "" {
		opts.Chart = state.Chart
	}
	if opts.Theme == "" {
		opts.Theme = state.Theme
	}
	if opts.Curve == "" {
		opts.Curve = state.Curve
	}
	c.Logger.Debug("reusing previous session", "subject", opts.Subject)
	return nil
}

func (c *CLI) loadState(ctx context.Context) *session.State {
	store, err := session.NewFileStore("")
	if err != nil {
		return nil
	}
	state, err := store.Load(ctx)
	if err != nil {
		return nil
	}
	return state
}

// rememberRun persists the run parameters so the next invocation can omit
// them. Values this run never set keep their saved state, so a fetch does
// not forget the chart used by the last render. Best effort: a failed save
// never fails the command.
func (c *CLI) rememberRun(ctx context.Context, opts pipeline.Options) {
	store, err := session.NewFileStore("")
	if err != nil {
		return
	}
	state, _ := store.Load(ctx)
	if state == nil {
		state = &session.State{}
	}
	state.Subject = opts.Subject
	state.Category = opts.Category
	if opts.Chart != "" {
		state.Chart = opts.Chart
	}
	if opts.Theme != "" {
		state.Theme = opts.Theme
	}
	if opts.Curve != "" {
		state.Curve = opts.Curve
	}
	_ = store.Save(ctx, state)
}

// setCLIDefaults applies pipeline defaults up front so spinner text and
// artifact names see the effective values.
func setCLIDefaults(opts *pipeline.Options) {
	if opts.Category == "" {
		opts.Category = pipeline.DefaultCategory
	}
	opts.SetModelDefaults()
	opts.SetRenderDefaults()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}
