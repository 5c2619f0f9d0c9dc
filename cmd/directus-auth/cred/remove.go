package credcmder

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
)

func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <name>",
		Aliases:           []string{"rm"},
		Short:             "Remove a stored credential set",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cliutil.LoadDeps(cmd)
			if err != nil {
				return err
			}

			removed, err := deps.Store.Remove(args[0])
			if err != nil {
				return fmt.Errorf("removing credentials: %w", err)
			}
			if !removed {
				return notFound(args[0])
			}
			deps.Logger.Debug("removed credentials", zap.String("name", args[0]))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed credentials %q\n", args[0])
			PrintActiveAfterRemove(out, deps.Store)

			return nil
		},
	}
}
