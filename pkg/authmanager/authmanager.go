// Package authmanager is the surface other tools embed to pick and check
// Directus credentials without reimplementing the store or the prompts.
package authmanager

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
	"github.com/alexvdvalk/directus-auth-manager/pkg/dotdir"
	"github.com/alexvdvalk/directus-auth-manager/pkg/tui"
	"github.com/alexvdvalk/directus-auth-manager/pkg/validator"
)

var (
	// ErrNoCredentials means the store holds no credential sets.
	ErrNoCredentials = errors.New("no credentials stored")

	// ErrNoActive means no credential set is active.
	ErrNoActive = errors.New("no active credentials")

	// ErrNotFound means the named credential set does not exist.
	ErrNotFound = errors.New("credentials not found")
)

// Config configures a Manager. Store and Validator are required; Prompter is
// only needed by SelectCredentials.
type Config struct {
	Store     *credentials.Store
	Validator *validator.Validator
	Prompter  tui.Prompter
	Logger    *zap.Logger
}

// Manager selects, looks up and validates stored credential sets.
type Manager struct {
	store     *credentials.Store
	validator *validator.Validator
	prompter  tui.Prompter
	logger    *zap.Logger
}

// New creates a Manager.
func New(cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("authmanager: store is required")
	}
	if cfg.Validator == nil {
		return nil, errors.New("authmanager: validator is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		store:     cfg.Store,
		validator: cfg.Validator,
		prompter:  cfg.Prompter,
		logger:    logger,
	}, nil
}

// NewDefault creates a Manager over the per-user store with terminal prompts
// on stdin and stdout.
func NewDefault(prompter tui.Prompter) (*Manager, error) {
	dir, err := dotdir.NewManager().Target("")
	if err != nil {
		return nil, err
	}

	return New(Config{
		Store:     credentials.NewStoreInDir(dir),
		Validator: validator.New(nil),
		Prompter:  prompter,
	})
}

// SelectCredentials asks the user which credential set to use. An active set
// is offered first; declining it falls through to a pick from every name.
func (m *Manager) SelectCredentials(ctx context.Context) (*credentials.Active, error) {
	if m.prompter == nil {
		return nil, errors.New("authmanager: no prompter configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := m.store.ReadConfig()
	if len(cfg.Credentials) == 0 {
		return nil, ErrNoCredentials
	}

	if active, ok := m.store.ActiveCredentials(); ok {
		useActive, err := m.prompter.Confirm(
			fmt.Sprintf("Use active credentials %q (%s)?", active.Name, active.Credentials.URL), true)
		if err != nil {
			return nil, err
		}
		if useActive {
			return active, nil
		}
	}

	names := m.store.Names()
	idx, err := m.prompter.Select("Select credentials", names)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.logger.Debug("credentials selected", zap.String("name", names[idx]))

	return m.CredentialsByName(names[idx])
}

// ActiveCredentials returns the active set without prompting.
func (m *Manager) ActiveCredentials() (*credentials.Active, error) {
	active, ok := m.store.ActiveCredentials()
	if !ok {
		return nil, ErrNoActive
	}
	return active, nil
}

// CredentialsByName returns the named set.
func (m *Manager) CredentialsByName(name string) (*credentials.Active, error) {
	creds, ok := m.store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return &credentials.Active{Name: name, Credentials: creds}, nil
}

// Names lists the stored set names in sorted order.
func (m *Manager) Names() []string {
	return m.store.Names()
}

// Validate checks one credential set.
func (m *Manager) Validate(ctx context.Context, name string, creds credentials.Credentials) validator.Result {
	return m.validator.Validate(ctx, name, creds)
}

// ValidateAll checks every given set; results are in sorted name order.
func (m *Manager) ValidateAll(ctx context.Context, creds map[string]credentials.Credentials) []validator.Result {
	return m.validator.ValidateAll(ctx, creds)
}

// Store exposes the underlying store.
func (m *Manager) Store() *credentials.Store {
	return m.store
}
