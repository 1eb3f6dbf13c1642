// Package config loads the mindmap configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/mindmap/config.toml
// (~/.config/mindmap/config.toml when XDG_CONFIG_HOME is unset). The
// MINDMAP_CONFIG environment variable or the --config flag point elsewhere.
// A missing file is not an error: every field has a default.
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "24h"
//	namespace = "staging:"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[render]
//	scale = 2.0
//	default_theme = "default"
//
//	[themes.ocean]
//	label = "Ocean"
//	node = "#0050b3"
//	line = "#91d5ff"
//	background = "#e6f7ff"
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// appName is the directory name used under the XDG config and cache roots.
const appName = "mindmap"

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "MINDMAP_CONFIG"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds the mindmap configuration.
type Config struct {
	Server ServerConfig           `toml:"server"`
	Cache  CacheConfig            `toml:"cache"`
	Render RenderConfig           `toml:"render"`
	Themes map[string]ThemeConfig `toml:"themes"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string      `toml:"backend"`
	Dir       string      `toml:"dir"`
	TTL       string      `toml:"ttl"`       // Go duration; empty keeps the per-entry defaults
	Namespace string      `toml:"namespace"` // key prefix, e.g. "staging:"
	Redis     RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Scale        float64 `toml:"scale"`
	EmbedFonts   bool    `toml:"embed_fonts"`
	DefaultTheme string  `toml:"default_theme"`
}

// ThemeConfig is a user-defined palette.
type ThemeConfig struct {
	Label      string `toml:"label"`
	Node       string `toml:"node"`
	Line       string `toml:"line"`
	Background string `toml:"background"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: appName + ":"},
		},
		Render: RenderConfig{Scale: 2, DefaultTheme: mindmap.DefaultTheme},
	}
}

// Dir returns the mindmap config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the config file path, honoring MINDMAP_CONFIG.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the default file cache directory using the XDG standard
// (~/.cache/mindmap/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path, or at [Path] when path is empty.
// A missing file yields the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names, durations and theme colors.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if _, err := c.Cache.Lifetime(); err != nil {
		return err
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.scale must not be negative")
	}
	_, err := c.ThemeSet()
	return err
}

// Lifetime parses the configured TTL; zero means the per-entry defaults.
func (c CacheConfig) Lifetime() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache.ttl must be a positive duration like 24h, got %q", c.TTL)
	}
	return d, nil
}

// ThemeSet returns the built-in themes plus the configured ones. Configured
// themes are registered in name order and may replace built-ins.
func (c *Config) ThemeSet() (*mindmap.ThemeSet, error) {
	set := mindmap.DefaultThemes()
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		t := c.Themes[name]
		err := set.Register(mindmap.Theme{
			Name:  name,
			Label: t.Label,
			Palette: mindmap.Style{
				NodeColor:       t.Node,
				LineColor:       t.Line,
				BackgroundColor: t.Background,
			},
		})
		if err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Keyer returns the cache keyer, scoped to Namespace when one is set.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Namespace)
}

// Open connects the configured backend. The file backend falls back to the
// XDG cache directory when no dir is set.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		})
	default:
		dir := c.Dir
		if dir == "" {
			d, err := CacheDir()
			if err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}
