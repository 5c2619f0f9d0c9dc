package credcmder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
)

const addLongDesc string = `Store a named Directus credential set.

The token is read from --token, from stdin when piped, or from a hidden
prompt. The first stored set becomes active automatically.

Examples:
  directus-auth add production --url https://cms.example.com
  directus-auth add local --url http://localhost:8055 --token abc123
  echo $TOKEN | directus-auth add staging --url https://staging.example.com
  directus-auth add production --url https://cms.example.com --force --validate`

const addShortDesc string = "Store a Directus credential set"

func NewAddCmd() *cobra.Command {
	var urlFlag string
	var tokenFlag string
	var forceFlag bool
	var validateFlag bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: addShortDesc,
		Long:  addLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cliutil.LoadDeps(cmd)
			if err != nil {
				return err
			}
			return runAdd(cmd, deps, args[0], urlFlag, tokenFlag, forceFlag, validateFlag)
		},
	}

	cmd.Flags().StringVar(&urlFlag, "url", "", "Base URL of the Directus instance")
	cmd.Flags().StringVar(&tokenFlag, "token", "", "Access token (prompted for when omitted)")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite existing credentials with the same name")
	cmd.Flags().BoolVar(&validateFlag, "validate", false, "Validate the credentials before storing them")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func runAdd(cmd *cobra.Command, deps *cliutil.Deps, name, url, token string, force, validate bool) error {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)

	if err := cliutil.ValidateName(name); err != nil {
		return err
	}
	if err := cliutil.ValidateURL(url); err != nil {
		return err
	}

	if deps.Store.Has(name) && !force {
		return fmt.Errorf("credentials %q already exist (use --force to overwrite)", name)
	}

	if token == "" {
		var err error
		token, err = cliutil.ReadSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Enter token for "+name+": ")
		if err != nil {
			return err
		}
	}
	token = strings.TrimSpace(token)
	if err := cliutil.ValidateToken(token); err != nil {
		return err
	}

	creds := credentials.Credentials{URL: url, Token: token}
	out := cmd.OutOrStdout()

	if validate {
		result := deps.Validator.Validate(cmd.Context(), name, creds)
		fmt.Fprintln(out, cliutil.FormatResult(deps.Styles, result))
		if !result.Success {
			return errors.New("validation failed; credentials not stored")
		}
	}

	if err := deps.Store.Add(name, creds); err != nil {
		return fmt.Errorf("storing credentials: %w", err)
	}
	deps.Logger.Debug("stored credentials", zap.String("name", name), zap.String("path", deps.Store.Path()))

	fmt.Fprintf(out, "Stored credentials %q\n", name)
	if active, ok := deps.Store.ActiveName(); ok && active == name {
		fmt.Fprintf(out, "%q is the active credential set\n", name)
	}

	return nil
}
