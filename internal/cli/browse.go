package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mgeier/knotwork/pkg/store"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the "browse" command: an interactive catalog viewer.
func (c *CLI) browseCommand() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			q, err := flags.build()
			if err != nil {
				return err
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.Query(ctx, q)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("no matching diagrams")
				return nil
			}

			model := newKnotListModel(records)
			_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// knotListModel - Interactive catalog browsing
// =============================================================================

// knotListModel is the bubbletea model for browsing stored diagrams.
type knotListModel struct {
	Records    []store.KnotRecord
	Cursor     int
	Height     int
	Offset     int
	ShowDetail bool
}

func newKnotListModel(records []store.KnotRecord) knotListModel {
	return knotListModel{Records: records, Height: 15}
}

func (m knotListModel) Init() tea.Cmd {
	return nil
}

func (m knotListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.ShowDetail = !m.ShowDetail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m knotListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Knot Catalog"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Records) {
		end = len(m.Records)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		rec := m.Records[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := "✓"
		if !rec.Code.WellFormed() {
			status = "!"
		}

		code := rec.Code.String()
		if len(code) > 32 {
			code = code[:29] + "..."
		}

		rows = append(rows, []string{
			cursor, rec.Name,
			fmt.Sprintf("%d", rec.Crossings),
			fmt.Sprintf("%+d", rec.Writhe),
			status, code,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Crossings", "Writhe", "OK", "Code").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Records) {
				return lipgloss.NewStyle()
			}
			rec := m.Records[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				base = base.Bold(true)
				if rec.Code.WellFormed() {
					base = base.Foreground(colorGreen)
				} else {
					base = base.Foreground(colorYellow)
				}
				return base
			}
			if !rec.Code.WellFormed() {
				return base.Foreground(colorDim)
			}
			if col == 5 {
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.ShowDetail && m.Cursor < len(m.Records) {
		b.WriteString(m.detailView(m.Records[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))

	return b.String()
}

// detailView renders the expanded panel for the selected record.
func (m knotListModel) detailView(rec store.KnotRecord) string {
	var b strings.Builder

	label := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	value := lipgloss.NewStyle().Foreground(colorWhite)

	b.WriteString("\n")
	b.WriteString("  " + label.Render("code") + value.Render(rec.Code.String()) + "\n")
	b.WriteString("  " + label.Render("canonical") + value.Render(rec.Code.Canonical().String()) + "\n")
	b.WriteString("  " + label.Render("hash") + listDimStyle.Render(rec.Hash[:16]+"...") + "\n")
	for k, v := range rec.Metadata {
		b.WriteString("  " + label.Render(k) + listDimStyle.Render(v) + "\n")
	}
	return b.String()
}
