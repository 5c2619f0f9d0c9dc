// Package config loads the optional settings.toml that tunes validation and
// logging. Settings are separate from the credential document.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	settingsFile = "settings.toml"

	defaultUserAgent = "directus-auth-manager"
	defaultLogLevel  = "warn"
)

// Settings is the decoded settings.toml.
type Settings struct {
	Validation ValidationSettings `toml:"validation"`
	Log        LogSettings        `toml:"log"`
}

// ValidationSettings tunes the Validator.
type ValidationSettings struct {
	// Timeout is a Go duration string. Empty or "0s" keeps the transport default.
	Timeout     string `toml:"timeout"`
	Concurrency int    `toml:"concurrency"`
	UserAgent   string `toml:"user_agent"`
}

// LogSettings configures the CLI logger.
type LogSettings struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Validation: ValidationSettings{
			UserAgent: defaultUserAgent,
		},
		Log: LogSettings{
			Level: defaultLogLevel,
		},
	}
}

// Path returns the settings file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, settingsFile)
}

// Load reads settings.toml from dir and applies environment overrides.
// The returned Settings are always usable: a missing file yields defaults,
// and a malformed file or invalid value falls back to the default for what
// could not be used. Those problems are reported in the error.
func Load(dir string) (*Settings, error) {
	s := Default()
	var problems []error

	data, err := os.ReadFile(Path(dir))
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), s); err != nil {
			problems = append(problems, fmt.Errorf("parsing settings: %w", err))
			s = Default()
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		problems = append(problems, fmt.Errorf("reading settings: %w", err))
	}

	problems = append(problems, applyEnv(s)...)

	if _, err := s.Timeout(); err != nil {
		problems = append(problems, err)
		s.Validation.Timeout = ""
	}
	if s.Validation.Concurrency < 0 {
		problems = append(problems, fmt.Errorf("validation.concurrency must be >= 0, got %d", s.Validation.Concurrency))
		s.Validation.Concurrency = 0
	}
	if s.Validation.UserAgent == "" {
		s.Validation.UserAgent = defaultUserAgent
	}
	if s.Log.Level == "" {
		s.Log.Level = defaultLogLevel
	}

	return s, errors.Join(problems...)
}

// Timeout parses Validation.Timeout. Zero means no client-side timeout.
func (s *Settings) Timeout() (time.Duration, error) {
	raw := strings.TrimSpace(s.Validation.Timeout)
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid validation.timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("validation.timeout must not be negative, got %s", raw)
	}

	return d, nil
}

func applyEnv(s *Settings) []error {
	var problems []error

	if v := strings.TrimSpace(os.Getenv("DIRECTUS_AUTH_TIMEOUT")); v != "" {
		s.Validation.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv("DIRECTUS_AUTH_CONCURRENCY")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			problems = append(problems, fmt.Errorf("invalid DIRECTUS_AUTH_CONCURRENCY %q: %w", v, err))
		} else {
			s.Validation.Concurrency = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("DIRECTUS_AUTH_USER_AGENT")); v != "" {
		s.Validation.UserAgent = v
	}
	if v := strings.TrimSpace(os.Getenv("DIRECTUS_AUTH_LOG_LEVEL")); v != "" {
		s.Log.Level = v
	}

	return problems
}
