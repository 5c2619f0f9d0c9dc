package credcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
)

func NewUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "use <name>",
		Aliases:           []string{"switch"},
		Short:             "Switch the active credential set",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cliutil.LoadDeps(cmd)
			if err != nil {
				return err
			}

			ok, err := deps.Store.SetActive(args[0])
			if err != nil {
				return fmt.Errorf("switching credentials: %w", err)
			}
			if !ok {
				return notFound(args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Active credentials: %s\n", args[0])
			return nil
		},
	}
}
