package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	styles    *Styles
	question  string
	value     bool
	done      bool
	cancelled bool
}

func newConfirmModel(s *Styles, question string, def bool) confirmModel {
	return confirmModel{styles: s, question: question, value: def}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	case "enter":
		m.done = true
		return m, tea.Quit
	case "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	yes, no := m.styles.Muted.Render("Yes"), m.styles.Muted.Render("No")
	if m.value {
		yes = m.styles.Selected.Render("[Yes]")
	} else {
		no = m.styles.Selected.Render("[No]")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.question))
	b.WriteString("  ")
	b.WriteString(yes + " / " + no)
	b.WriteString("\n")

	return b.String()
}
