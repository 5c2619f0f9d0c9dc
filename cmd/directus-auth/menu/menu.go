// Package menucmder provides the interactive credential menu.
package menucmder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	credcmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/cred"
	validatecmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/validate"
	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
	"github.com/alexvdvalk/directus-auth-manager/pkg/tui"
)

// Menu action labels, in display order.
const (
	ActionAdd         = "Add credentials"
	ActionList        = "List credentials"
	ActionSwitch      = "Switch active credentials"
	ActionCurrent     = "View current credentials"
	ActionValidateOne = "Validate credentials"
	ActionValidateAll = "Validate all credentials"
	ActionRemove      = "Remove credentials"
	ActionExit        = "Exit"
)

const (
	menuTitle          = "Directus Auth Manager"
	urlPlaceholder     = "https://your-directus.example.com"
	noCredentialsLabel = "No stored credentials. Add some first."
)

var actions = []string{
	ActionAdd,
	ActionList,
	ActionSwitch,
	ActionCurrent,
	ActionValidateOne,
	ActionValidateAll,
	ActionRemove,
	ActionExit,
}

// NewPrompter builds the prompter the menu runs with. Tests replace it.
var NewPrompter = func(cmd *cobra.Command, styles *tui.Styles) tui.Prompter {
	return tui.NewTeaPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), styles)
}

func NewMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunCmd(cmd)
		},
	}
}

// RunCmd resolves cmd's dependencies and runs the menu.
func RunCmd(cmd *cobra.Command) error {
	deps, err := cliutil.LoadDeps(cmd)
	if err != nil {
		return err
	}
	return Run(cmd.Context(), deps, NewPrompter(cmd, deps.Styles), cmd.OutOrStdout())
}

// Run shows the menu until the user exits or cancels it.
func Run(ctx context.Context, deps *cliutil.Deps, prompter tui.Prompter, out io.Writer) error {
	m := &menu{deps: deps, prompter: prompter, out: out}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx, err := prompter.Select(menuTitle, actions)
		if errors.Is(err, tui.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		action := actions[idx]
		if action == ActionExit {
			return nil
		}

		if err := m.dispatch(ctx, action); err != nil {
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(out, deps.Styles.Muted.Render("Cancelled."))
				continue
			}
			return err
		}
		fmt.Fprintln(out)
	}
}

type menu struct {
	deps     *cliutil.Deps
	prompter tui.Prompter
	out      io.Writer
}

func (m *menu) dispatch(ctx context.Context, action string) error {
	switch action {
	case ActionAdd:
		return m.add(ctx)
	case ActionList:
		credcmder.PrintList(m.out, m.deps.Styles, m.deps.Store)
		return nil
	case ActionSwitch:
		return m.switchActive()
	case ActionCurrent:
		active, _ := m.deps.Store.ActiveCredentials()
		credcmder.PrintCurrent(m.out, m.deps.Styles, active)
		return nil
	case ActionValidateOne:
		return m.validateOne(ctx)
	case ActionValidateAll:
		validatecmder.PrintResults(m.out, m.deps.Styles, m.deps.Validator.ValidateAll(ctx, m.deps.Store.All()))
		return nil
	case ActionRemove:
		return m.remove()
	}
	return fmt.Errorf("unknown menu action %q", action)
}

func (m *menu) add(ctx context.Context) error {
	name, err := m.prompter.Input("Name for these credentials", tui.InputOptions{
		Placeholder: "production",
		Validate:    cliutil.ValidateName,
	})
	if err != nil {
		return err
	}

	existing, exists := m.deps.Store.Get(name)
	if exists {
		overwrite, err := m.prompter.Confirm(fmt.Sprintf("Credentials %q already exist. Overwrite?", name), false)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(m.out, "Kept existing credentials.")
			return nil
		}
	}

	url, err := m.prompter.Input("Directus URL", tui.InputOptions{
		Placeholder: urlPlaceholder,
		Default:     existing.URL,
		Validate:    cliutil.ValidateURL,
	})
	if err != nil {
		return err
	}

	token, err := m.prompter.Input("Access token", tui.InputOptions{
		Secret:   true,
		Validate: cliutil.ValidateToken,
	})
	if err != nil {
		return err
	}

	creds := credentials.Credentials{URL: url, Token: token}

	check, err := m.prompter.Confirm("Validate before saving?", true)
	if err != nil {
		return err
	}
	if check {
		result := m.deps.Validator.Validate(ctx, name, creds)
		fmt.Fprintln(m.out, cliutil.FormatResult(m.deps.Styles, result))
		if !result.Success {
			fmt.Fprintln(m.out, m.deps.Styles.Warning.Render("These credentials did not validate."))
			save, err := m.prompter.Confirm("Save anyway?", false)
			if err != nil {
				return err
			}
			if !save {
				fmt.Fprintln(m.out, "Credentials not saved.")
				return nil
			}
		}
	}

	if err := m.deps.Store.Add(name, creds); err != nil {
		return fmt.Errorf("storing credentials: %w", err)
	}
	m.deps.Logger.Debug("stored credentials", zap.String("name", name))

	fmt.Fprintln(m.out, m.deps.Styles.Success.Render(fmt.Sprintf("Saved credentials %q", name)))
	return nil
}

// pick asks for a stored name. ok is false when nothing is stored.
func (m *menu) pick(title string) (name string, ok bool, err error) {
	names := m.deps.Store.Names()
	if len(names) == 0 {
		fmt.Fprintln(m.out, noCredentialsLabel)
		return "", false, nil
	}

	idx, err := m.prompter.Select(title, names)
	if err != nil {
		return "", false, err
	}
	return names[idx], true, nil
}

func (m *menu) switchActive() error {
	name, ok, err := m.pick("Switch to")
	if err != nil || !ok {
		return err
	}

	switched, err := m.deps.Store.SetActive(name)
	if err != nil {
		return fmt.Errorf("switching credentials: %w", err)
	}
	if !switched {
		return fmt.Errorf("credentials %q not found", name)
	}

	fmt.Fprintf(m.out, "Active credentials: %s\n", name)
	return nil
}

func (m *menu) validateOne(ctx context.Context) error {
	name, ok, err := m.pick("Validate which credentials?")
	if err != nil || !ok {
		return err
	}

	creds, found := m.deps.Store.Get(name)
	if !found {
		return fmt.Errorf("credentials %q not found", name)
	}

	fmt.Fprintln(m.out, cliutil.FormatResult(m.deps.Styles, m.deps.Validator.Validate(ctx, name, creds)))
	return nil
}

func (m *menu) remove() error {
	name, ok, err := m.pick("Remove which credentials?")
	if err != nil || !ok {
		return err
	}

	sure, err := m.prompter.Confirm(fmt.Sprintf("Remove credentials %q?", name), false)
	if err != nil {
		return err
	}
	if !sure {
		fmt.Fprintln(m.out, "Nothing removed.")
		return nil
	}

	removed, err := m.deps.Store.Remove(name)
	if err != nil {
		return fmt.Errorf("removing credentials: %w", err)
	}
	if !removed {
		fmt.Fprintf(m.out, "Credentials %q were already removed.\n", name)
		return nil
	}

	fmt.Fprintf(m.out, "Removed credentials %q\n", name)
	credcmder.PrintActiveAfterRemove(m.out, m.deps.Store)
	return nil
}
