// Package validatecmder provides the validate command.
package validatecmder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
	"github.com/alexvdvalk/directus-auth-manager/pkg/tui"
	"github.com/alexvdvalk/directus-auth-manager/pkg/validator"
)

const validateLongDesc string = `Validate stored credentials against their Directus instance.

Each check calls GET <url>/users/me with the stored token. Without
arguments the active credential set is validated.

Exits with status 1 when any check fails.

Examples:
  directus-auth validate              Validate the active credentials
  directus-auth validate staging      Validate the "staging" credentials
  directus-auth validate --all        Validate every stored set concurrently
  directus-auth validate --all --json Print the results as JSON`

const validateShortDesc string = "Validate stored credentials"

// ErrValidationFailed is returned when at least one check fails.
var ErrValidationFailed = errors.New("validation failed")

func NewValidateCmd() *cobra.Command {
	var allFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:          "validate [name]",
		Short:        validateShortDesc,
		Long:         validateLongDesc,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if allFlag && len(args) > 0 {
				return errors.New("--all cannot be combined with a name")
			}

			deps, err := cliutil.LoadDeps(cmd)
			if err != nil {
				return err
			}

			var results []validator.Result
			switch {
			case allFlag:
				results = deps.Validator.ValidateAll(cmd.Context(), deps.Store.All())
			case len(args) == 1:
				creds, ok := deps.Store.Get(args[0])
				if !ok {
					return fmt.Errorf("credentials %q not found", args[0])
				}
				results = []validator.Result{deps.Validator.Validate(cmd.Context(), args[0], creds)}
			default:
				active, ok := deps.Store.ActiveCredentials()
				if !ok {
					return errors.New("no active credentials")
				}
				results = []validator.Result{deps.Validator.Validate(cmd.Context(), active.Name, active.Credentials)}
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				PrintResults(out, deps.Styles, results)
			}

			if !cliutil.AllSucceeded(results) {
				return ErrValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Validate every stored credential set")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")

	return cmd
}

// PrintResults writes one line per result, plus a summary for several.
func PrintResults(w io.Writer, s *tui.Styles, results []validator.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No stored credentials.")
		return
	}

	for _, r := range results {
		fmt.Fprintln(w, cliutil.FormatResult(s, r))
	}

	if len(results) > 1 {
		valid := 0
		for _, r := range results {
			if r.Success {
				valid++
			}
		}
		fmt.Fprintf(w, "\n%d/%d valid\n", valid, len(results))
	}
}

func writeJSON(w io.Writer, results []validator.Result) error {
	if results == nil {
		results = []validator.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}
