// Package tuitest provides a scripted tui.Prompter for tests.
package tuitest

import (
	"fmt"
	"slices"
	"sync"

	"github.com/alexvdvalk/directus-auth-manager/pkg/tui"
)

// Answer is one scripted reply. Exactly one of the value fields is read,
// depending on which prompt consumes it.
type Answer struct {
	// Choice is an option label for Select. It is matched exactly.
	Choice string
	Text   string
	Yes    bool

	// Err is returned instead of a value, e.g. tui.ErrCancelled.
	Err error
}

// Choose answers a Select prompt with the option labelled label.
func Choose(label string) Answer { return Answer{Choice: label} }

// Type answers an Input prompt.
func Type(text string) Answer { return Answer{Text: text} }

// Confirm answers a Confirm prompt.
func Confirm(yes bool) Answer { return Answer{Yes: yes} }

// Cancel aborts whichever prompt consumes it.
func Cancel() Answer { return Answer{Err: tui.ErrCancelled} }

// Prompter replays answers in order and records every prompt it was shown.
type Prompter struct {
	mu      sync.Mutex
	answers []Answer
	Prompts []string
}

// NewPrompter creates a Prompter that replays answers.
func NewPrompter(answers ...Answer) *Prompter {
	return &Prompter{answers: answers}
}

// Remaining returns how many answers have not been consumed.
func (p *Prompter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}

func (p *Prompter) next(prompt string) (Answer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Prompts = append(p.Prompts, prompt)
	if len(p.answers) == 0 {
		return Answer{}, fmt.Errorf("no scripted answer for prompt %q", prompt)
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *Prompter) Select(title string, options []string) (int, error) {
	a, err := p.next(title)
	if err != nil {
		return -1, err
	}
	if a.Err != nil {
		return -1, a.Err
	}

	idx := slices.Index(options, a.Choice)
	if idx < 0 {
		return -1, fmt.Errorf("option %q not offered for %q (have %v)", a.Choice, title, options)
	}
	return idx, nil
}

func (p *Prompter) Input(title string, opts tui.InputOptions) (string, error) {
	a, err := p.next(title)
	if err != nil {
		return "", err
	}
	if a.Err != nil {
		return "", a.Err
	}

	value := a.Text
	if value == "" {
		value = opts.Default
	}
	if opts.Validate != nil {
		if err := opts.Validate(value); err != nil {
			return "", fmt.Errorf("scripted input %q rejected: %w", value, err)
		}
	}
	return value, nil
}

func (p *Prompter) Confirm(question string, _ bool) (bool, error) {
	a, err := p.next(question)
	if err != nil {
		return false, err
	}
	if a.Err != nil {
		return false, a.Err
	}
	return a.Yes, nil
}

var _ tui.Prompter = (*Prompter)(nil)
