package cliutil

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/alexvdvalk/directus-auth-manager/pkg/tui"
	"github.com/alexvdvalk/directus-auth-manager/pkg/validator"
)

// MaskToken keeps the first and last four characters of long tokens.
func MaskToken(token string) string {
	runes := []rune(token)
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:4]) + "..." + string(runes[len(runes)-4:])
}

// Truncate shortens s to width display cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// FormatResult renders one validation result on a single line.
func FormatResult(s *tui.Styles, r validator.Result) string {
	if !r.Success {
		return fmt.Sprintf("%s %s: %s", s.Error.Render("✗"), r.Name, r.Message)
	}

	line := fmt.Sprintf("%s %s: %s", s.Success.Render("✓"), r.Name, r.Message)
	if r.User != nil {
		line += " (" + DisplayUser(r.User) + ")"
	}
	return line
}

// DisplayUser returns "First Last <email>", falling back to the email or id.
func DisplayUser(u *validator.User) string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	switch {
	case full != "" && u.Email != "":
		return fmt.Sprintf("%s <%s>", full, u.Email)
	case u.Email != "":
		return u.Email
	case full != "":
		return full
	default:
		return "id " + u.ID
	}
}

// AllSucceeded reports whether every result succeeded.
func AllSucceeded(results []validator.Result) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}
