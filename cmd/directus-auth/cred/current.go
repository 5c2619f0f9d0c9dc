package credcmder

import (
	"github.com/spf13/cobra"

	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
)

const currentLongDesc string = `Show the active credential set with its token masked.

With --watch the command keeps running and prints the active set again
whenever another process switches or edits it.`

func NewCurrentCmd() *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the active credential set",
		Long:  currentLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := cliutil.LoadDeps(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !watchFlag {
				active, _ := deps.Store.ActiveCredentials()
				PrintCurrent(out, deps.Styles, active)
				return nil
			}

			return deps.Store.Watch(cmd.Context(), func(active *credentials.Active) {
				PrintCurrent(out, deps.Styles, active)
			})
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Keep running and print changes to the active set")

	return cmd
}
