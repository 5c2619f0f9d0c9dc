package cliutil

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateName accepts letters, digits, hyphens and underscores.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: use letters, numbers, hyphens and underscores only", name)
	}
	return nil
}

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return nil
}

// ValidateToken rejects empty tokens.
func ValidateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token cannot be empty")
	}
	return nil
}
