package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// Format is a document serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension. Anything other than
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// envelope matches both a bare document and an API response that wraps the
// document in "data".
type envelope struct {
	mindmap.Document
	Data *mindmap.Document `json:"data"`
}

// ReadJSON decodes a document from r.
//
// Both a bare document and a generate response are accepted:
//
//	{"title": "Plan", "nodes": [{"id": "1", "text": "Goals"}]}
//	{"success": true, "data": {"title": "Plan", "nodes": [...]}}
//
// Nodes may use "label" instead of "text". ReadJSON does not close r.
func ReadJSON(r io.Reader) (*mindmap.Document, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode JSON document")
	}
	if env.Data != nil {
		return env.Data, nil
	}
	doc := env.Document
	return &doc, nil
}

// ReadYAML decodes a document from r. Field names match the JSON form.
func ReadYAML(r io.Reader) (*mindmap.Document, error) {
	var doc mindmap.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode YAML document")
	}
	return &doc, nil
}

// ReadDocument decodes a document in the given format.
func ReadDocument(r io.Reader, format Format) (*mindmap.Document, error) {
	switch format {
	case FormatJSON, "":
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format: %s", format)
	}
}

// ImportDocument reads a document file, choosing the format from its
// extension.
func ImportDocument(path string) (*mindmap.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f, FormatFromPath(path))
}
