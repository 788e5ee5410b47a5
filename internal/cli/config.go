package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/pipeline"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// =============================================================================
// Config - TOML Configuration File
// =============================================================================

// Config holds settings loaded from the TOML config file. Every field is
// optional; flags override anything set here.
type Config struct {
	Source SourceConfig `toml:"source"`
	Cache  CacheConfig  `toml:"cache"`
	Export ExportConfig `toml:"export"`
	Page   PageConfig   `toml:"page"`
	Serve  ServeConfig  `toml:"serve"`
}

// SourceConfig selects where pivot matrices are fetched from.
type SourceConfig struct {
	Kind     string            `toml:"kind"`      // file, http, or mongo
	Dir      string            `toml:"dir"`       // file source root
	BaseURL  string            `toml:"base_url"`  // http source base URL
	Headers  map[string]string `toml:"headers"`   // extra http request headers
	MongoURI string            `toml:"mongo_uri"` // mongodb connection string
	Database string            `toml:"database"`  // mongodb database name
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"`   // file, redis, or none
	Dir      string   `toml:"dir"`       // file backend directory
	TTL      Duration `toml:"ttl"`       // http response cache lifetime
	RedisURL string   `toml:"redis_url"` // redis backend connection URL
}

// ExportConfig sets default rendering options.
type ExportConfig struct {
	OutputDir   string `toml:"output_dir"`
	Theme       string `toml:"theme"`
	Curve       string `toml:"curve"`
	Supersample int    `toml:"supersample"`
}

// PageConfig sets the document page geometry in points.
type PageConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// ServeConfig sets the HTTP server listen address.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Duration wraps time.Duration so TOML can decode values like "15m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// =============================================================================
// Loading
// =============================================================================

// LoadConfig reads the TOML config file. An empty path means the default
// location, where a missing file yields an empty config; an explicitly
// given path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeConfigNotFound, err,
					"config file %s not found", path)
			}
			return &Config{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline would choke on later. Empty fields
// are fine; they fall through to defaults.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case "", "file", "http", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown source kind %q (must be file, http, or mongo)", c.Source.Kind)
	}
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.Export.Theme != "" {
		if _, err := scale.Lookup(c.Export.Theme); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config theme")
		}
	}
	if c.Export.Curve != "" {
		if err := pipeline.ValidateCurve(c.Export.Curve); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config curve")
		}
	}
	if c.Export.Supersample < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "supersample must not be negative")
	}
	if c.Page.Width < 0 || c.Page.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "page dimensions must not be negative")
	}
	return nil
}

// defaultConfigPath returns the config file location using XDG standard
// (~/.config/clinigrid/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
