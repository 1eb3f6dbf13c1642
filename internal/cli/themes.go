package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// themesCommand lists the built-in and configured themes.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Long: `List available color themes.

Built-in themes can be extended or replaced in the config file:

  [themes.ocean]
  label = "Ocean"
  node = "#0050b3"
  line = "#91d5ff"
  background = "#e6f7ff"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			set, err := cfg.ThemeSet()
			if err != nil {
				return err
			}
			printBlock(themesTable(set.All(), cfg.Render.DefaultTheme))
			return nil
		},
	}
}

// themesTable renders themes with a color swatch per palette entry.
func themesTable(themes []mindmap.Theme, defaultTheme string) string {
	rows := make([][]string, 0, len(themes))
	for _, t := range themes {
		name := t.Name
		if t.Name == defaultTheme {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			t.Label,
			swatch(t.Palette.NodeColor),
			swatch(t.Palette.LineColor),
			swatch(t.Palette.BackgroundColor),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Label", "Node", "Line", "Background").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// swatch renders a small colored block followed by the hex value.
func swatch(hex string) string {
	if hex == "" {
		return StyleDim.Render("—")
	}
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	return block + " " + hex
}
