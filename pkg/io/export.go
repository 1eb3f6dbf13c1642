package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// WriteJSON encodes a document as indented JSON.
// This format can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(doc *mindmap.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes a document as YAML.
func WriteYAML(doc *mindmap.Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteDocument encodes a document in the given format.
func WriteDocument(doc *mindmap.Document, w io.Writer, format Format) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(doc, w)
	case FormatYAML:
		return WriteYAML(doc, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format: %s", format)
	}
}

// ExportDocument writes a document to path, choosing the format from its
// extension.
func ExportDocument(doc *mindmap.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDocument(doc, f, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
