package review

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/applydraft/applydraft/internal/model"
)

var (
	viewerBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39"))

	viewerHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(0, 1)

	viewerStatusStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236"))

	viewerBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

type viewerModel struct {
	title    string
	result   *model.GenerationResult
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-5)
			m.viewport.SetContent(viewerBodyStyle.Render(m.result.Text))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - 5
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewerModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := viewerHeaderStyle.Render(m.title)
	status := viewerStatusStyle.Render(fmt.Sprintf(
		"%s · %s · %d%%  (↑/↓ scroll, q quit)",
		m.result.Provider, m.result.Model, int(m.viewport.ScrollPercent()*100),
	))
	body := viewerBorderStyle.Width(m.width - 2).Render(m.viewport.View())

	return header + "\n" + body + "\n" + status
}

// RunViewer shows a generated document in a scrollable viewport.
func RunViewer(title string, result *model.GenerationResult) error {
	m := viewerModel{title: title, result: result}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
