// Package fonts provides the font faces used to measure and paint labels.
//
// The Go Regular and Go Bold TrueType fonts ship inside golang.org/x/image,
// so they are compiled into the binary and available without any system
// font lookup. Raster and SVG output measure text with the same faces, which
// keeps wrapping decisions identical across formats.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name used when the fonts are embedded in SVG.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font stack for SVG output without embedded fonts.
const FallbackFontFamily = `'Go', 'Arial', 'Helvetica', sans-serif`

// Parsed fonts (computed once on first access). *opentype.Font is safe for
// concurrent use; faces created from it are not.
var (
	regular, bold *opentype.Font
	parseErr      error
	parseOnce     sync.Once
)

func parse() error {
	parseOnce.Do(func() {
		if regular, parseErr = opentype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		bold, parseErr = opentype.Parse(gobold.TTF)
	})
	return parseErr
}

// NewFace returns a new face of the given pixel size. Each caller gets its
// own face; do not share one face between goroutines.
func NewFace(size float64, isBold bool) (font.Face, error) {
	if err := parse(); err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f := regular
	if isBold {
		f = bold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// RegularTTF returns the Go Regular font data.
func RegularTTF() []byte { return goregular.TTF }

// BoldTTF returns the Go Bold font data.
func BoldTTF() []byte { return gobold.TTF }

// Cache for base64-encoded fonts (computed once on first access).
var (
	regularBase64, boldBase64 string
	base64Once                sync.Once
)

// Base64 returns the regular and bold font data as base64 strings for
// @font-face embedding. The result is cached after first computation.
func Base64() (regularTTF, boldTTF string) {
	base64Once.Do(func() {
		regularBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
		boldBase64 = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return regularBase64, boldBase64
}
