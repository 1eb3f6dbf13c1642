package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	mmio "github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// generateCommand creates the generate command: outline → document (→ artifacts).
func (c *CLI) generateCommand() *cobra.Command {
	var (
		req     outline.Request
		output  string
		render  bool
		noCache bool
		refresh bool
		flags   renderFlags
	)

	cmd := &cobra.Command{
		Use:   "generate [outline.txt|-]",
		Short: "Build a mind map document from an indented outline",
		Long: `Build a mind map document from an indented outline.

Each non-blank line becomes a node. Leading list markers (-, *, •, +, 1.)
are stripped and indentation (a tab or two spaces per level) nests lines
under the nearest shallower one. The document is written as JSON, or YAML
when the output ends in .yaml or .yml.

With --render, the document is also rendered in the requested formats.
Identical outlines reuse the cached document, node IDs included.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], req, output, render, noCache, refresh, &flags)
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "map title (default: the input file name)")
	cmd.Flags().StringVar(&req.Description, "description", "", "subtitle painted under the title")
	cmd.Flags().StringVar(&req.Theme, "theme", "", "theme name (default from config)")
	cmd.Flags().StringVar(&req.Layout, "layout", "", "layout hint: radial (default), tree, horizontal, vertical, nodelink")
	cmd.Flags().StringVarP(&output, "output", "o", "", "document file (default: <input>.json)")
	cmd.Flags().BoolVarP(&render, "render", "r", false, "also render the document")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "regenerate even if cached")
	flags.register(cmd, "png")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input string, req outline.Request, output string, render, noCache, refresh bool, flags *renderFlags) error {
	content, err := readInput(input)
	if err != nil {
		return err
	}
	req.Content = content
	if req.Title == "" && input != "-" {
		req.Title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if req.Theme == "" {
		req.Theme = cfg.Render.DefaultTheme
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	doc, cacheHit, err := runner.GenerateWithCacheInfo(ctx, req, refresh)
	if err != nil {
		return err
	}
	prog.done("Generated document", "nodes", doc.NodeCount())

	if input == "-" && output == "" {
		output = "mindmap.json"
	}
	docPath := output
	if docPath == "" {
		docPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	}
	if err := mmio.ExportDocument(doc, docPath); err != nil {
		return err
	}

	printSuccess("Document generated")
	printFile(docPath)
	printStats(doc.NodeCount(), doc.Depth(), cacheHit)

	if !render {
		printNewline()
		printNextStep("Render", appName+" render "+docPath)
		return nil
	}

	opts, err := flags.options(cfg)
	if err != nil {
		return err
	}
	opts.Refresh = refresh

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     docPath,
		cacheHit:  renderHit,
		nodeCount: doc.NodeCount(),
		drawn:     doc.DrawableCount(),
		depth:     doc.Depth(),
	})
}

// readInput reads a file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
