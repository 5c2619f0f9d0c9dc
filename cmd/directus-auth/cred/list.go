package credcmder

import (
	"github.com/spf13/cobra"

	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
)

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored credential sets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := cliutil.LoadDeps(cmd)
			if err != nil {
				return err
			}
			PrintList(cmd.OutOrStdout(), deps.Styles, deps.Store)
			return nil
		},
	}
}
