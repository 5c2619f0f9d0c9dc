// Package credentials stores named Directus credential sets in a single JSON
// document and tracks which set is active. Every operation re-reads the file,
// and every mutation rewrites it in full.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// FileName is the document's file name inside the config directory.
const FileName = "config.json"

// Store reads and writes the credential document at a fixed path.
type Store struct {
	path   string
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store backed by the file at path.
// Nothing is read or created until the first operation.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreInDir creates a Store for config.json inside dir.
func NewStoreInDir(dir string, opts ...Option) *Store {
	return NewStore(filepath.Join(dir, FileName), opts...)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// ReadConfig returns the current document. A missing or unparsable file
// yields the empty document; parse failures are logged, never returned.
func (s *Store) ReadConfig() *Config {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("reading config, using empty document",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return NewConfig()
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		s.logger.Warn("parsing config, using empty document",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return NewConfig()
	}

	if cfg.Credentials == nil {
		cfg.Credentials = make(map[string]Credentials)
	}

	return cfg
}

// WriteConfig persists cfg, creating the directory if needed. The file is
// replaced atomically; there is no check for concurrent writers.
func (s *Store) WriteConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot write nil config")
	}

	if cfg.Credentials == nil {
		cfg.Credentials = make(map[string]Credentials)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// All returns every stored credential set.
func (s *Store) All() map[string]Credentials {
	return s.ReadConfig().Credentials
}

// Names returns the stored names in sorted order.
func (s *Store) Names() []string {
	return sortedNames(s.ReadConfig().Credentials)
}

// Get looks up a credential set by name.
func (s *Store) Get(name string) (Credentials, bool) {
	creds, ok := s.ReadConfig().Credentials[name]
	return creds, ok
}

// Has reports whether name is stored.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Add inserts or replaces the named set. When it leaves exactly one set
// stored, that set becomes active.
func (s *Store) Add(name string, creds Credentials) error {
	if name == "" {
		return errors.New("credential name cannot be empty")
	}

	cfg := s.ReadConfig()
	cfg.Credentials[name] = creds

	if len(cfg.Credentials) == 1 {
		cfg.Active = &name
	}
	repairActive(cfg)

	s.logger.Debug("adding credentials", zap.String("name", name), zap.String("url", creds.URL))

	return s.WriteConfig(cfg)
}

// Remove deletes the named set. It returns false, without writing, when the
// name is not stored. Removing the active set moves active to the first
// remaining name in sorted order, or clears it.
func (s *Store) Remove(name string) (bool, error) {
	cfg := s.ReadConfig()
	if _, ok := cfg.Credentials[name]; !ok {
		return false, nil
	}

	delete(cfg.Credentials, name)
	repairActive(cfg)

	s.logger.Debug("removing credentials", zap.String("name", name))

	if err := s.WriteConfig(cfg); err != nil {
		return false, err
	}
	return true, nil
}

// SetActive makes name the active set. It returns false, without writing,
// when name is not stored.
func (s *Store) SetActive(name string) (bool, error) {
	cfg := s.ReadConfig()
	if _, ok := cfg.Credentials[name]; !ok {
		return false, nil
	}

	cfg.Active = &name

	if err := s.WriteConfig(cfg); err != nil {
		return false, err
	}
	return true, nil
}

// ActiveName returns the active name, if any. Like ActiveCredentials it
// treats a dangling active pointer as unset.
func (s *Store) ActiveName() (string, bool) {
	active, ok := activeOf(s.ReadConfig())
	if !ok {
		return "", false
	}
	return active.Name, true
}

// ActiveCredentials returns the active set. A dangling active pointer is
// reported as no active set.
func (s *Store) ActiveCredentials() (*Active, bool) {
	return activeOf(s.ReadConfig())
}

func activeOf(cfg *Config) (*Active, bool) {
	if cfg.Active == nil {
		return nil, false
	}

	creds, ok := cfg.Credentials[*cfg.Active]
	if !ok {
		return nil, false
	}

	return &Active{Name: *cfg.Active, Credentials: creds}, true
}

// repairActive restores the invariant that Active is nil or a stored key.
func repairActive(cfg *Config) {
	if cfg.Active == nil {
		return
	}
	if _, ok := cfg.Credentials[*cfg.Active]; ok {
		return
	}

	names := sortedNames(cfg.Credentials)
	if len(names) == 0 {
		cfg.Active = nil
		return
	}

	next := names[0]
	cfg.Active = &next
}

func sortedNames(creds map[string]Credentials) []string {
	names := make([]string, 0, len(creds))
	for name := range creds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
