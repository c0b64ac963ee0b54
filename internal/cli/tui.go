package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arborpm/arbor/pkg/deps"
	"github.com/arborpm/arbor/pkg/gitvcs"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DepListModel - Interactive dependency selection
// =============================================================================

// depItem pairs a dependency record with its sync status for display.
type depItem struct {
	Dep    deps.Dependency
	Result gitvcs.Result
}

// DepListModel is the bubbletea model for interactive dependency selection.
type DepListModel struct {
	Items    []depItem
	Cursor   int
	Selected *depItem
	Height   int
	Offset   int
}

// NewDepListModel creates a new dependency list model.
func NewDepListModel(items []depItem) DepListModel {
	return DepListModel{
		Items:  items,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m DepListModel) Init() tea.Cmd {
	return nil
}

func (m DepListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			item := m.Items[m.Cursor]
			m.Selected = &item
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DepListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dependency"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%-24s %s", cursor, item.Dep.Name,
			statusStyle(item.Result.Status).Render(string(item.Result.Status)))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// runDepPicker opens the interactive picker and prints the details of the
// selected dependency.
func runDepPicker(list deps.List, results []gitvcs.Result) error {
	byName := make(map[string]gitvcs.Result, len(results))
	for _, res := range results {
		byName[res.Name] = res
	}

	items := make([]depItem, 0, len(list))
	for _, dep := range list {
		items = append(items, depItem{Dep: dep, Result: byName[dep.Name]})
	}

	final, err := tea.NewProgram(NewDepListModel(items)).Run()
	if err != nil {
		return err
	}

	model, ok := final.(DepListModel)
	if !ok || model.Selected == nil {
		return nil
	}

	sel := model.Selected
	fmt.Println(StyleTitle.Render(sel.Dep.Name))
	printDetail("url:      %s", sel.Dep.URL)
	printDetail("branch:   %s", orDash(sel.Dep.Branch))
	printDetail("folder:   %s", sel.Dep.Folder)
	printDetail("pin:      %s", orDash(sel.Dep.Pin))
	printDetail("version:  %s", orDash(sel.Dep.Version))
	printDetail("status:   %s", sel.Result.Status)
	printDetail("revision: %s", orDash(sel.Result.Revision))
	return nil
}
