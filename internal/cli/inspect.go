package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	mmio "github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/render/radial"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand shows the computed radial geometry of a document.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [document.json|document.yaml]",
		Short: "Browse the computed node placements of a document",
		Long: `Browse the computed node placements of a document.

Shows, for every drawn node, its depth, slot in the parent's fan, angle,
fan radius, node radius and center. Unlabeled nodes are not drawn, but
their slots stay reserved, which is visible as gaps in the index column.

Use --plain for a static table (also used when stdout is not a terminal).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := mmio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			themes, err := cfg.ThemeSet()
			if err != nil {
				return err
			}

			scene := pipeline.Layout(doc, themes)
			if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
				printKeyValue("Title", doc.Title)
				printKeyValue("Nodes", fmt.Sprintf("%d drawn of %d", doc.DrawableCount(), doc.NodeCount()))
				printKeyValue("Node color", scene.Style.NodeColor)
				printBlock(placementTable(scene.Placements, -1, 0, len(scene.Placements)))
				return nil
			}

			_, err = tea.NewProgram(newInspectModel(doc.Title, scene.Placements)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table instead of the interactive browser")
	return cmd
}

// =============================================================================
// inspectModel - Interactive placement browser
// =============================================================================

// inspectModel is the bubbletea model for browsing placements.
type inspectModel struct {
	title      string
	placements []radial.Placement
	cursor     int
	offset     int
	height     int
}

func newInspectModel(title string, placements []radial.Placement) inspectModel {
	return inspectModel{title: title, placements: placements, height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.placements)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "home", "g":
			m.cursor, m.offset = 0, 0
		case "end", "G":
			if n := len(m.placements); n > 0 {
				m.cursor = n - 1
				m.offset = max(0, n-m.height)
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-10)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.placements) == 0 {
		b.WriteString(listDimStyle.Render("  no drawn nodes"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.placements))
	b.WriteString(placementTable(m.placements, m.cursor, m.offset, end))
	b.WriteString("\n")

	p := m.placements[m.cursor]
	b.WriteString(listNormalStyle.Render(fmt.Sprintf("  %s", p.Label)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  parent (%.1f, %.1f) → center (%.1f, %.1f)  id %s",
		p.ParentX, p.ParentY, p.X, p.Y, p.ID)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.placements))))

	return b.String()
}

// placementTable renders placements[start:end]; the row at cursor (an
// absolute index, -1 for none) is highlighted.
func placementTable(placements []radial.Placement, cursor, start, end int) string {
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		p := placements[i]
		rows = append(rows, []string{
			strings.Repeat("  ", p.Depth-1) + truncate(p.Label, 32),
			fmt.Sprintf("%d", p.Depth),
			fmt.Sprintf("%d/%d", p.Index, p.FanSize),
			fmt.Sprintf("%.1f°", p.Angle*180/math.Pi),
			fmt.Sprintf("%.0f", p.FanRadius),
			fmt.Sprintf("%.1f", p.NodeRadius),
			fmt.Sprintf("%.1f, %.1f", p.X, p.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Label", "Depth", "Slot", "Angle", "Fan", "Radius", "Center").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if start+row == cursor {
				return listSelectedStyle
			}
			if col == 0 {
				return listNormalStyle
			}
			return StyleNumber
		}).
		Render()
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
