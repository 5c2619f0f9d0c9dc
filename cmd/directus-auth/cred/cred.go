// Package credcmder provides the commands that add, list, switch, show and
// remove stored Directus credentials.
package credcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
	"github.com/alexvdvalk/directus-auth-manager/pkg/tui"
)

const urlWidth = 60

// completeNames completes the first argument with stored names.
func completeNames(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	deps, err := cliutil.LoadDeps(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return deps.Store.Names(), cobra.ShellCompDirectiveNoFileComp
}

// PrintList writes every stored set, marking the active one.
func PrintList(w io.Writer, s *tui.Styles, store *credentials.Store) {
	cfg := store.ReadConfig()
	if len(cfg.Credentials) == 0 {
		fmt.Fprintln(w, "No stored credentials.")
		fmt.Fprintln(w, "\nUse 'directus-auth add <name> --url <url>' to store credentials.")
		return
	}

	active, _ := store.ActiveName()
	names := store.Names()

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	fmt.Fprintln(w, s.Title.Render("Stored credentials:"))
	for _, name := range names {
		creds := cfg.Credentials[name]
		marker := " "
		label := fmt.Sprintf("%-*s", width, name)
		if name == active {
			marker = "*"
			label = s.Selected.Render(label)
		}
		fmt.Fprintf(w, "%s %s  %s  %s\n",
			marker,
			label,
			cliutil.Truncate(creds.URL, urlWidth),
			s.Muted.Render(cliutil.MaskToken(creds.Token)),
		)
	}
}

// PrintCurrent writes the active set, or a notice when there is none.
func PrintCurrent(w io.Writer, s *tui.Styles, active *credentials.Active) {
	if active == nil {
		fmt.Fprintln(w, "No active credentials.")
		return
	}

	fmt.Fprintln(w, s.Title.Render("Active credentials:"))
	fmt.Fprintf(w, "  Name:  %s\n", active.Name)
	fmt.Fprintf(w, "  URL:   %s\n", active.Credentials.URL)
	fmt.Fprintf(w, "  Token: %s\n", cliutil.MaskToken(active.Credentials.Token))
}

// PrintActiveAfterRemove reports where the active pointer ended up.
func PrintActiveAfterRemove(w io.Writer, store *credentials.Store) {
	if name, ok := store.ActiveName(); ok {
		fmt.Fprintf(w, "Active credentials: %s\n", name)
		return
	}
	fmt.Fprintln(w, "No credentials remain; nothing is active.")
}

func notFound(name string) error {
	return fmt.Errorf("credentials %q not found", strings.TrimSpace(name))
}
