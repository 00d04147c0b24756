// Package review holds the interactive terminal surfaces: a provider
// picker for the connection test and a scrollable viewer for generated
// documents.
package review

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/applydraft/applydraft/internal/model"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerNoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 0, 0, 4)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

// PickerItem is one selectable provider with its availability note.
type PickerItem struct {
	Provider  model.ProviderID
	Available bool
	Active    bool
}

type pickerModel struct {
	items  []PickerItem
	cursor int
	chosen int // -1 = no choice yet, -2 = quit
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.chosen = -2
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render("Test connection — select a provider")
	s += "\n"

	for i, item := range m.items {
		label := string(item.Provider)
		if item.Active {
			label += " (active)"
		}
		note := "configured"
		if !item.Available {
			note = "no credential"
		}
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+label) + pickerNoteStyle.Render(note) + "\n"
		} else {
			s += pickerItemStyle.Render(label) + pickerNoteStyle.Render(note) + "\n"
		}
	}

	s += pickerHintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

// RunProviderPicker shows an interactive provider selector. Returns the
// chosen provider, or an empty id if the user quit.
func RunProviderPicker(items []PickerItem) (model.ProviderID, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no providers to pick from")
	}

	m := pickerModel{items: items, chosen: -1}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return "", err
	}

	final := result.(pickerModel)
	if final.chosen < 0 {
		return "", nil
	}
	return items[final.chosen].Provider, nil
}
