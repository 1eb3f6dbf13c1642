package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // source file; its base name is used when output is empty. Never overwritten.
	output    string // exact path for a single format, base path otherwise
	cacheHit  bool
	nodeCount int
	drawn     int // nodes painted; unlabeled nodes hide their subtrees
	depth     int
}

// writeArtifacts writes each artifact and prints the written paths.
func writeArtifacts(p artifactWriteParams) error {
	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(p.output, p.input, format, len(p.formats) == 1)
		if path == p.input {
			path = basePath("", p.input) + ".render." + format
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d file(s)", len(written))
	for _, path := range written {
		printFile(path)
	}
	printStats(p.nodeCount, p.depth, p.cacheHit)
	if hidden := p.nodeCount - p.drawn; hidden > 0 {
		printWarning("%d node(s) not drawn: unlabeled nodes hide their subtrees", hidden)
	}
	return nil
}

// artifactPath derives the output file for format. A single format uses the
// output path as given; otherwise a known format extension is stripped and
// the format appended.
func artifactPath(output, input, format string, single bool) string {
	if output != "" && single {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
