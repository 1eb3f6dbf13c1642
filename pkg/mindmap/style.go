package mindmap

import (
	"slices"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// Fallback colors used when neither the document nor its theme provide a
// usable value.
const (
	DefaultNodeColor       = "#1890ff"
	DefaultLineColor       = "#d9d9d9"
	DefaultBackgroundColor = "#ffffff"
)

// DefaultTheme is the theme applied when a document names none or an unknown one.
const DefaultTheme = "default"

// Style holds optional color overrides. Any field may be empty.
type Style struct {
	NodeColor       string `json:"nodeColor,omitempty" yaml:"nodeColor,omitempty" toml:"node"`
	LineColor       string `json:"lineColor,omitempty" yaml:"lineColor,omitempty" toml:"line"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty" toml:"background"`
}

// Validate reports the first field that is set but not a hex color.
func (s Style) Validate() error {
	if err := errors.ValidateHexColor("nodeColor", s.NodeColor); err != nil {
		return err
	}
	if err := errors.ValidateHexColor("lineColor", s.LineColor); err != nil {
		return err
	}
	return errors.ValidateHexColor("backgroundColor", s.BackgroundColor)
}

// EffectiveStyle is a fully resolved style: every field holds a valid hex
// color. It is computed once per render pass by [Resolve].
type EffectiveStyle struct {
	NodeColor       string `json:"nodeColor"`
	LineColor       string `json:"lineColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// Theme is a named palette.
type Theme struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Palette Style  `json:"palette"`
}

var builtinThemes = []Theme{
	{Name: "default", Label: "Default", Palette: Style{NodeColor: DefaultNodeColor, LineColor: DefaultLineColor, BackgroundColor: DefaultBackgroundColor}},
	{Name: "business", Label: "Business", Palette: Style{NodeColor: "#52c41a", LineColor: "#8c8c8c", BackgroundColor: "#fafafa"}},
	{Name: "creative", Label: "Creative", Palette: Style{NodeColor: "#722ed1", LineColor: "#d3adf7", BackgroundColor: "#f9f0ff"}},
	{Name: "education", Label: "Education", Palette: Style{NodeColor: "#fa8c16", LineColor: "#ffd591", BackgroundColor: "#fff7e6"}},
	{Name: "technology", Label: "Technology", Palette: Style{NodeColor: "#13c2c2", LineColor: "#87e8de", BackgroundColor: "#e6fffb"}},
}

// ThemeSet is an ordered registry of themes. The zero value is empty; use
// [DefaultThemes] for the built-in set. A ThemeSet is not safe for
// concurrent Register calls; register everything at startup.
type ThemeSet struct {
	themes []Theme
}

// DefaultThemes returns a new set holding the built-in themes.
func DefaultThemes() *ThemeSet {
	return &ThemeSet{themes: slices.Clone(builtinThemes)}
}

// Register adds a theme or replaces one with the same name.
func (s *ThemeSet) Register(t Theme) error {
	if t.Name == "" {
		return errors.New(errors.ErrCodeInvalidTheme, "theme name cannot be empty")
	}
	if err := t.Palette.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme %q", t.Name)
	}
	if t.Label == "" {
		t.Label = t.Name
	}
	if i := s.index(t.Name); i >= 0 {
		s.themes[i] = t
		return nil
	}
	s.themes = append(s.themes, t)
	return nil
}

// Lookup returns the theme with the given name.
func (s *ThemeSet) Lookup(name string) (Theme, bool) {
	if s == nil {
		return Theme{}, false
	}
	if i := s.index(name); i >= 0 {
		return s.themes[i], true
	}
	return Theme{}, false
}

// All returns the themes in registration order.
func (s *ThemeSet) All() []Theme {
	if s == nil {
		return nil
	}
	return slices.Clone(s.themes)
}

// Names returns the theme names in registration order.
func (s *ThemeSet) Names() []string {
	names := make([]string, 0, len(s.All()))
	for _, t := range s.All() {
		names = append(names, t.Name)
	}
	return names
}

func (s *ThemeSet) index(name string) int {
	return slices.IndexFunc(s.themes, func(t Theme) bool { return t.Name == name })
}

// Resolve computes the effective style of a document.
//
// Each color is taken from the first valid source of: the document's own
// style, the document's theme (or the default theme), the fixed fallback.
// A nil themes argument means [DefaultThemes].
func Resolve(doc *Document, themes *ThemeSet) EffectiveStyle {
	if themes == nil {
		themes = DefaultThemes()
	}

	var own Style
	theme := DefaultTheme
	if doc != nil {
		if doc.Style != nil {
			own = *doc.Style
		}
		if doc.Theme != "" {
			theme = doc.Theme
		}
	}

	palette, ok := themes.Lookup(theme)
	if !ok {
		palette, _ = themes.Lookup(DefaultTheme)
	}

	return EffectiveStyle{
		NodeColor:       firstColor(own.NodeColor, palette.Palette.NodeColor, DefaultNodeColor),
		LineColor:       firstColor(own.LineColor, palette.Palette.LineColor, DefaultLineColor),
		BackgroundColor: firstColor(own.BackgroundColor, palette.Palette.BackgroundColor, DefaultBackgroundColor),
	}
}

func firstColor(candidates ...string) string {
	for _, c := range candidates {
		if IsHexColor(c) {
			return c
		}
	}
	return ""
}

// IsHexColor reports whether s is a #rgb or #rrggbb color.
func IsHexColor(s string) bool {
	return s != "" && errors.ValidateHexColor("color", s) == nil
}
