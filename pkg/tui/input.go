package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputOptions configures a text prompt.
type InputOptions struct {
	Placeholder string
	Default     string

	// Secret masks the typed characters.
	Secret bool

	// Validate is run on enter; a non-nil error keeps the prompt open.
	Validate func(string) error
}

type inputModel struct {
	styles    *Styles
	title     string
	input     textinput.Model
	validate  func(string) error
	err       error
	done      bool
	cancelled bool
}

func newInputModel(s *Styles, title string, opts InputOptions) inputModel {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 2048
	ti.Width = 60
	if opts.Default != "" {
		ti.SetValue(opts.Default)
	}
	if opts.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	ti.Focus()

	return inputModel{
		styles:   s,
		title:    title,
		input:    ti,
		validate: opts.Validate,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.Value()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
	}
	return m, cmd
}

// Value returns the trimmed input.
func (m inputModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}
