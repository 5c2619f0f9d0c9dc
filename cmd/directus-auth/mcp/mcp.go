// Package mcpcmder provides the mcp command, serving the credential tools
// to MCP clients over stdio.
package mcpcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexvdvalk/directus-auth-manager/pkg/authmanager"
	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
	"github.com/alexvdvalk/directus-auth-manager/pkg/mcpserver"
)

const mcpLongDesc string = `Serve stored Directus credentials over the Model Context Protocol.

The server speaks MCP over stdin/stdout and exposes three tools:
  list_credentials         Stored sets with masked tokens
  get_active_credentials   The active set with a masked token
  validate_credentials     Validate one set, the active set, or all sets

Logs go to stderr so they never corrupt the protocol stream.`

func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve credentials to MCP clients over stdio",
		Long:  mcpLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := NewServer(cmd)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context())
		},
	}
}

// NewServer builds the MCP server from cmd's flags.
func NewServer(cmd *cobra.Command) (*mcpserver.Server, error) {
	deps, err := cliutil.LoadDeps(cmd)
	if err != nil {
		return nil, err
	}

	manager, err := authmanager.New(authmanager.Config{
		Store:     deps.Store,
		Validator: deps.Validator,
		Logger:    deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating auth manager: %w", err)
	}

	return mcpserver.New(manager, deps.Logger)
}
