package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	mmio "github.com/matzehuels/mindmap/pkg/io"
)

// renderCommand creates the render command: document → artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [document.json|document.yaml]",
		Short: "Render a mind map document to PNG, SVG, PDF or JSON",
		Long: `Render a mind map document to PNG, SVG, PDF or JSON.

The radial view paints an 800×600 canvas: the title and description at the
top, the title circle below them and every level of nodes fanned out around
its parent. The nodelink view lays the same tree out top-down with Graphviz.

JSON output is the recorded display list plus the geometry of every node.
PDF output requires rsvg-convert.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, noCache, refresh, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")
	flags.register(cmd, "png")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache, refresh bool, flags *renderFlags) error {
	doc, err := mmio.ImportDocument(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded document", "title", doc.Title, "nodes", doc.NodeCount())

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts, err := flags.options(cfg)
	if err != nil {
		return err
	}
	opts.Refresh = refresh

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		nodeCount: doc.NodeCount(),
		drawn:     doc.DrawableCount(),
		depth:     doc.Depth(),
	})
}
