package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/internal/config"
	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "mindmap"

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

	// ConfigPath overrides the config file location (--config).
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mindmap lays out outlines as radial mind maps",
		Long:         `Mindmap turns indented outlines into radial mind maps: the title sits in a circle at the top and every level of the outline fans out around its parent. Maps render to PNG, SVG, PDF or a JSON display list, from the command line or over HTTP.`,
		Version:      buildinfo.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/mindmap/config.toml)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the config file selected by --config or MINDMAP_CONFIG.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use, with the configured cache
// backend and themes.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	themes, err := cfg.ThemeSet()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.Cache.Lifetime()
	if err != nil {
		return nil, err
	}

	runner := pipeline.NewRunner(c.newCache(ctx, cfg, noCache), cfg.Cache.Keyer(), c.Logger)
	runner.Themes = themes
	runner.TTL = ttl
	return runner, nil
}

// newCache opens the configured backend. The CLI keeps working without a
// cache, so failures are logged and caching is disabled.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	cc, err := cfg.Cache.Open(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "error", err)
		return cache.NewNullCache()
	}
	return cc
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderFlags are the render options shared by generate and render.
type renderFlags struct {
	formats    string
	vizType    string
	scale      float64
	embedFonts bool
	detailed   bool
}

func (f *renderFlags) register(cmd *cobra.Command, defaultFormats string) {
	f.formats = defaultFormats
	cmd.Flags().StringVarP(&f.formats, "format", "f", f.formats, "output format(s): png, svg, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&f.vizType, "type", "t", "", "visualization type: radial (default), tree, horizontal, vertical, nodelink")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG pixel ratio (default from config, 2)")
	cmd.Flags().BoolVar(&f.embedFonts, "embed-fonts", false, "embed fonts in SVG and PDF output")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show depth, ID and child count in node-link labels")
}

// options builds pipeline options, filling unset values from the config.
func (f *renderFlags) options(cfg *config.Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		VizType:    f.vizType,
		Formats:    parseFormats(f.formats),
		Scale:      f.scale,
		EmbedFonts: f.embedFonts || cfg.Render.EmbedFonts,
		Detailed:   f.detailed,
	}
	if opts.Scale == 0 {
		opts.Scale = cfg.Render.Scale
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
// Empty entries are dropped; nothing at all means PNG.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{pipeline.FormatPNG}
	}
	return out
}
