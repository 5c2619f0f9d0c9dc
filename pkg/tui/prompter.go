package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter asks the user questions. The menu and the auth manager only talk
// to this interface so tests can script the answers.
type Prompter interface {
	// Select returns the index of the chosen option.
	Select(title string, options []string) (int, error)
	Input(title string, opts InputOptions) (string, error)
	Confirm(question string, def bool) (bool, error)
}

// TeaPrompter runs each prompt as a short-lived bubbletea program.
type TeaPrompter struct {
	in     io.Reader
	out    io.Writer
	styles *Styles
}

// NewTeaPrompter creates a prompter reading keys from in and drawing to out.
func NewTeaPrompter(in io.Reader, out io.Writer, styles *Styles) *TeaPrompter {
	if styles == nil {
		styles = NewStyles(out, false)
	}
	return &TeaPrompter{in: in, out: out, styles: styles}
}

func (p *TeaPrompter) run(m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m,
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithoutSignalHandler(),
	)
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	return final, nil
}

func (p *TeaPrompter) Select(title string, options []string) (int, error) {
	final, err := p.run(newSelectModel(p.styles, title, options))
	if err != nil {
		return -1, err
	}

	m := final.(selectModel)
	if m.cancelled || m.chosen < 0 {
		return -1, ErrCancelled
	}
	return m.chosen, nil
}

func (p *TeaPrompter) Input(title string, opts InputOptions) (string, error) {
	final, err := p.run(newInputModel(p.styles, title, opts))
	if err != nil {
		return "", err
	}

	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

func (p *TeaPrompter) Confirm(question string, def bool) (bool, error) {
	final, err := p.run(newConfirmModel(p.styles, question, def))
	if err != nil {
		return false, err
	}

	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.value, nil
}
