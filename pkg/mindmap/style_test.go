package mindmap

import (
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
)

func TestResolveFallbacks(t *testing.T) {
	want := EffectiveStyle{
		NodeColor:       DefaultNodeColor,
		LineColor:       DefaultLineColor,
		BackgroundColor: DefaultBackgroundColor,
	}

	tests := []struct {
		name string
		doc  *Document
	}{
		{"nil document", nil},
		{"no style", &Document{}},
		{"empty style", &Document{Style: &Style{}}},
		{"unknown theme", &Document{Theme: "neon"}},
		{"invalid colors", &Document{Style: &Style{NodeColor: "blue", LineColor: "#12", BackgroundColor: "fff"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.doc, nil); got != want {
				t.Errorf("Resolve() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	doc := &Document{
		Theme: "business",
		Style: &Style{NodeColor: "#ff0000"},
	}

	got := Resolve(doc, DefaultThemes())
	if got.NodeColor != "#ff0000" {
		t.Errorf("NodeColor = %q, want document override", got.NodeColor)
	}
	if got.LineColor != "#8c8c8c" {
		t.Errorf("LineColor = %q, want business theme", got.LineColor)
	}
	if got.BackgroundColor != "#fafafa" {
		t.Errorf("BackgroundColor = %q, want business theme", got.BackgroundColor)
	}
}

func TestResolveDoesNotMutate(t *testing.T) {
	style := &Style{NodeColor: "bogus"}
	doc := &Document{Theme: "creative", Style: style}

	Resolve(doc, nil)

	if doc.Style != style || style.NodeColor != "bogus" || doc.Theme != "creative" {
		t.Error("Resolve should not modify the document")
	}
}

func TestThemeSetRegister(t *testing.T) {
	set := DefaultThemes()
	if len(set.All()) != 5 {
		t.Fatalf("built-in themes = %d, want 5", len(set.All()))
	}

	if err := set.Register(Theme{Name: "mono", Palette: Style{NodeColor: "#000", LineColor: "#888", BackgroundColor: "#fff"}}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	mono, ok := set.Lookup("mono")
	if !ok {
		t.Fatal("Lookup(mono) not found after Register")
	}
	if mono.Label != "mono" {
		t.Errorf("Label = %q, want name as default label", mono.Label)
	}

	// Replacing keeps the position.
	if err := set.Register(Theme{Name: "default", Label: "Plain", Palette: Style{NodeColor: "#111"}}); err != nil {
		t.Fatalf("Register replace: %v", err)
	}
	if names := set.Names(); names[0] != "default" || len(names) != 6 {
		t.Errorf("Names() = %v", names)
	}
	got := Resolve(&Document{}, set)
	if got.NodeColor != "#111" || got.LineColor != DefaultLineColor {
		t.Errorf("Resolve with partial default theme = %+v", got)
	}

	if err := set.Register(Theme{Name: ""}); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("empty name error = %v, want INVALID_THEME", err)
	}
	if err := set.Register(Theme{Name: "bad", Palette: Style{LineColor: "red"}}); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("bad palette error = %v, want INVALID_THEME", err)
	}

	// Built-ins are copied, not shared.
	if _, ok := DefaultThemes().Lookup("mono"); ok {
		t.Error("DefaultThemes() should not see themes registered on another set")
	}
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#fff", true},
		{"#1890ff", true},
		{"", false},
		{"fff", false},
		{"#ggg", false},
	}
	for _, tt := range tests {
		if got := IsHexColor(tt.in); got != tt.want {
			t.Errorf("IsHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
