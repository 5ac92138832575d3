package browse

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/tally/pkg/render"
	"github.com/dkoosis/tally/pkg/rollup"
)

// Run opens the browser on r and blocks until the user quits. The returned
// exit code is 1 when the build failed.
func Run(ctx context.Context, r *rollup.Report, theme render.Theme) (int, error) {
	program := tea.NewProgram(New(r, theme), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return 1, err
	}
	if !r.Totals.BuildPassed() {
		return 1, nil
	}
	return 0, nil
}

// Model is the bubbletea model of the browser.
type Model struct {
	entries     []Entry
	theme       render.Theme
	selected    int
	viewport    viewport.Model
	ready       bool
	width       int
	height      int
	listWidth   int
	detailWidth int
}

// New returns a browser model over r.
func New(r *rollup.Report, theme render.Theme) Model {
	vp := viewport.New(0, 0)
	m := Model{entries: Entries(r), theme: theme, viewport: vp}
	m.refreshViewport()
	return m
}

// Selected returns the highlighted entry.
func (m Model) Selected() (Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return Entry{}, false
	}
	return m.entries[m.selected], true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshViewport()
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
				m.refreshViewport()
			}
			return m, nil
		case "home", "g":
			m.selected = 0
			m.refreshViewport()
			return m, nil
		case "end", "G":
			m.selected = max(0, len(m.entries)-1)
			m.refreshViewport()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listWidth = min(max(m.calculateListWidth(), 22), m.width/2)
		m.detailWidth = max(m.width-m.listWidth-1, 10)
		m.viewport.Width = max(m.detailWidth-4, 1)
		m.viewport.Height = max(m.height-6, 3)
		m.ready = true
		m.refreshViewport()
		return m, nil
	}

	// Scrolling keys and mouse wheel go to the detail pane.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) calculateListWidth() int {
	widest := 0
	for _, e := range m.entries {
		widest = max(widest, runewidth.StringWidth(e.Group)+2, runewidth.StringWidth(e.Name)+4)
	}
	return widest + 4
}

func (m *Model) refreshViewport() {
	e, ok := m.Selected()
	if !ok {
		m.viewport.SetContent("Nothing to browse")
		return
	}
	m.viewport.SetContent(e.Detail)
	m.viewport.GotoTop()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading report..."
	}
	contentHeight := max(m.height-4, 3)

	listPanel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(m.listWidth).
		Render(fit(m.renderList(), contentHeight))

	detail := "Nothing to browse"
	if e, ok := m.Selected(); ok {
		detail = m.theme.Bold.Render(e.Name) + "\n\n" + m.viewport.View()
	}
	detailPanel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(m.detailWidth).
		Render(fit(detail, contentHeight))

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)
	help := m.theme.Muted.Render("↑/↓ select • pgup/pgdn scroll • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, panels, help)
}

func (m Model) renderList() string {
	var lines []string
	group := ""
	nameWidth := max(m.listWidth-6, 8)
	for i, e := range m.entries {
		if e.Group != group {
			if group != "" {
				lines = append(lines, "")
			}
			group = e.Group
			lines = append(lines, m.theme.Bold.Render(group))
		}
		icon, style := m.theme.Icons.Pass, m.theme.Success
		if e.Failed() {
			icon, style = m.theme.Icons.Fail, m.theme.Error
		}
		name := runewidth.Truncate(e.Name, nameWidth, "…")
		if i == m.selected {
			lines = append(lines, m.theme.Primary.Bold(true).Render("▶ "+icon+" "+name))
			continue
		}
		lines = append(lines, "  "+style.Render(icon)+" "+name)
	}
	return strings.Join(lines, "\n")
}

// fit pads or truncates s to exactly n lines.
func fit(s string, n int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines[:n], "\n")
}
