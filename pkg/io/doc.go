// Package io reads and writes mind-map documents as JSON or YAML.
//
// # JSON Format
//
// A document is an object with a title, an optional description and the
// top-level nodes. Each node has a display text, an optional ID and
// optional children:
//
//	{
//	  "title": "Product launch",
//	  "description": "Q3 plan",
//	  "theme": "business",
//	  "nodes": [
//	    {"id": "1", "text": "Design", "children": [{"id": "2", "text": "Mockups"}]},
//	    {"id": "3", "text": "Marketing"}
//	  ],
//	  "style": {"nodeColor": "#52c41a"}
//	}
//
// "label" is accepted as an alias for "text". A generate API response,
// which wraps the document in a "data" field, can be read directly.
//
// # YAML Format
//
// YAML uses the same field names, which makes hand-written outlines easy to
// keep under version control:
//
//	title: Product launch
//	nodes:
//	  - text: Design
//	    children:
//	      - text: Mockups
//
// # Import and Export
//
// [ImportDocument] and [ExportDocument] pick the format from the file
// extension (.yaml and .yml are YAML, anything else JSON). [ReadDocument] and
// [WriteDocument] work on any reader or writer.
//
// Decoding does not validate the document; call [mindmap.Document.Validate]
// where user input must be rejected. Renderers accept any decoded document.
package io
