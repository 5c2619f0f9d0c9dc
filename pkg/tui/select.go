package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// selectModel lets the user pick one option from a list.
type selectModel struct {
	styles    *Styles
	title     string
	options   []string
	cursor    int
	chosen    int
	cancelled bool
}

func newSelectModel(s *Styles, title string, options []string) selectModel {
	return selectModel{
		styles:  s,
		title:   title,
		options: options,
		chosen:  -1,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.options)-1, 0)
	case "enter":
		if len(m.options) > 0 {
			m.chosen = m.cursor
		} else {
			m.cancelled = true
		}
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m selectModel) View() string {
	if m.chosen >= 0 || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")

	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString("> " + m.styles.Selected.Render(option))
		} else {
			b.WriteString("  " + m.styles.Normal.Render(option))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("[j/k] Navigate  [Enter] Select  [Esc] Cancel"))
	b.WriteString("\n")

	return b.String()
}
