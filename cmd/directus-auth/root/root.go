// Package rootcmder provides the directus-auth root command.
package rootcmder

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	credcmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/cred"
	mcpcmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/mcp"
	menucmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/menu"
	validatecmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/validate"
	"github.com/alexvdvalk/directus-auth-manager/pkg/authmanager"
	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
)

const rootLongDesc string = `Manage credentials for Directus instances.

Credential sets (a base URL and an access token) are stored by name in
config.json inside ~/.directus-auth/ (override with --config-dir or
$DIRECTUS_AUTH_DIR). One set is active at a time; other tools read it
with --json.

Run without arguments in a terminal to open the interactive menu.

Examples:
  directus-auth                         Open the interactive menu
  directus-auth --json                  Print the active set as JSON
  directus-auth add prod --url https://cms.example.com
  directus-auth use prod
  directus-auth validate --all`

const rootShortDesc string = "Manage Directus credentials"

// isInteractive reports whether the menu can be shown. Tests replace it.
var isInteractive = func(cmd *cobra.Command) bool {
	return cliutil.IsTerminal(cmd.InOrStdin())
}

// activeJSON is the --json document. Field order is part of the output.
type activeJSON struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Token string `json:"token"`
}

func NewRootCmd() *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:           "directus-auth",
		Short:         rootShortDesc,
		Long:          rootLongDesc,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jsonFlag {
				return printActiveJSON(cmd)
			}
			if !isInteractive(cmd) {
				return cmd.Help()
			}
			return menucmder.RunCmd(cmd)
		},
	}

	cmd.Flags().BoolVarP(&jsonFlag, "json", "j", false, "Print the active credentials as JSON")

	cmd.PersistentFlags().String(cliutil.FlagConfigDir, "", "Override path to the config directory")
	cmd.PersistentFlags().Bool(cliutil.FlagDebug, false, "Enable debug logging")
	cmd.PersistentFlags().Bool(cliutil.FlagNoColor, false, "Disable coloured output")

	cmd.AddCommand(credcmder.NewAddCmd())
	cmd.AddCommand(credcmder.NewListCmd())
	cmd.AddCommand(credcmder.NewUseCmd())
	cmd.AddCommand(credcmder.NewCurrentCmd())
	cmd.AddCommand(credcmder.NewRemoveCmd())
	cmd.AddCommand(validatecmder.NewValidateCmd())
	cmd.AddCommand(menucmder.NewMenuCmd())
	cmd.AddCommand(mcpcmder.NewMCPCmd())

	return cmd
}

func printActiveJSON(cmd *cobra.Command) error {
	deps, err := cliutil.LoadDeps(cmd)
	if err != nil {
		return err
	}

	active, ok := deps.Store.ActiveCredentials()
	if !ok {
		return authmanager.ErrNoActive
	}

	data, err := json.Marshal(activeJSON{
		Name:  active.Name,
		URL:   active.Credentials.URL,
		Token: active.Credentials.Token,
	})
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
