package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/strataviz/harris/pkg/strata"
	"github.com/strataviz/harris/pkg/strata/transform"
)

// inspectCommand creates the inspect command for browsing a matrix in the
// terminal.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [matrix.json]",
		Short: "Browse a stratigraphic matrix tier by tier",
		Long: `Browse a stratigraphic matrix interactively.

The inspect command derives the reduced graph and depth tiers, then opens a
terminal browser: one row per depth tier, youngest at the top. Selecting a
unit shows its type, description, and the units directly above and below it
after reduction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := strata.ReadMatrixFile(args[0])
			if err != nil {
				return fmt.Errorf("load matrix %s: %w", args[0], err)
			}

			model := newInspectModel(m)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// InspectModel - Tier browser
// =============================================================================

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tier is one depth level of the browser, units sorted by ID.
type tier struct {
	rank  int
	units []string
}

// inspectModel is the bubbletea model for the tier browser.
type inspectModel struct {
	graph *strata.Graph
	ranks map[string]int
	tiers []tier

	row    int // selected tier index
	col    int // selected unit within the tier
	height int
	offset int // first visible tier
}

func newInspectModel(m strata.Matrix) inspectModel {
	g := transform.Build(m.Units, m.Relations)
	transform.Reduce(g)
	ranks := transform.AssignRanks(g)

	byRank := make(map[int][]string)
	maxRank := 0
	for id, r := range ranks {
		byRank[r] = append(byRank[r], id)
		if r > maxRank {
			maxRank = r
		}
	}

	var tiers []tier
	for r := 0; r <= maxRank; r++ {
		units := byRank[r]
		if len(units) == 0 {
			continue
		}
		sort.Strings(units)
		tiers = append(tiers, tier{rank: r, units: units})
	}

	return inspectModel{
		graph:  g,
		ranks:  ranks,
		tiers:  tiers,
		height: 15,
	}
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
			if m.row > 0 {
				m.row--
				m.col = 0
				if m.row < m.offset {
					m.offset = m.row
				}
			}
		case "down", "j":
			if m.row < len(m.tiers)-1 {
				m.row++
				m.col = 0
				if m.row >= m.offset+m.height {
					m.offset = m.row - m.height + 1
				}
			}
		case "left", "h":
			if m.col > 0 {
				m.col--
			}
		case "right", "l":
			if m.col < len(m.tiers[m.row].units)-1 {
				m.col++
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Stratigraphic Sequence"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ tier  ←/→ unit  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.tiers) {
		end = len(m.tiers)
	}

	for i := m.offset; i < end; i++ {
		t := m.tiers[i]

		cursor := "  "
		if i == m.row {
			cursor = "▸ "
		}
		b.WriteString(cursor)
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%2d ", t.rank)))

		for j, id := range t.units {
			label := " " + id + " "
			switch {
			case i == m.row && j == m.col:
				b.WriteString(listSelectedStyle.Render(label))
			case i == m.row:
				b.WriteString(listNormalStyle.Render(label))
			default:
				b.WriteString(listDimStyle.Render(label))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	return b.String()
}

// detailView renders the selected unit's record and its direct neighbors.
func (m inspectModel) detailView() string {
	if len(m.tiers) == 0 {
		return listDimStyle.Render("empty matrix")
	}
	id := m.tiers[m.row].units[m.col]
	u, ok := m.graph.Unit(id)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render(u.ID))
	if u.Type != "" {
		b.WriteString(listDimStyle.Render("  " + string(u.Type)))
	}
	b.WriteString("\n")
	if u.Description != "" {
		b.WriteString(StyleValue.Render(u.Description))
		b.WriteString("\n")
	}

	if above := m.graph.Parents(id); len(above) > 0 {
		b.WriteString(listDimStyle.Render("above: ") + StyleValue.Render(strings.Join(above, ", ")))
		b.WriteString("\n")
	}
	if below := m.graph.Children(id); len(below) > 0 {
		b.WriteString(listDimStyle.Render("below: ") + StyleValue.Render(strings.Join(below, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}
