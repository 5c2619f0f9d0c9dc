package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/alexvdvalk/directus-auth-manager/pkg/authmanager"
	"github.com/alexvdvalk/directus-auth-manager/pkg/cliutil"
	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
	"github.com/alexvdvalk/directus-auth-manager/pkg/validator"
)

// Tool names.
const (
	ToolListCredentials     = "list_credentials"
	ToolGetActive           = "get_active_credentials"
	ToolValidateCredentials = "validate_credentials"
)

// ListInput takes no arguments.
type ListInput struct{}

// CredentialSummary describes a stored set without its token.
type CredentialSummary struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	TokenHint string `json:"token_hint"`
	Active    bool   `json:"active"`
}

// ListOutput is the list_credentials result.
type ListOutput struct {
	Credentials []CredentialSummary `json:"credentials"`
	Active      string              `json:"active,omitempty"`
}

// ActiveInput takes no arguments.
type ActiveInput struct{}

// ActiveOutput is the get_active_credentials result.
type ActiveOutput struct {
	Found     bool   `json:"found"`
	Name      string `json:"name,omitempty"`
	URL       string `json:"url,omitempty"`
	TokenHint string `json:"token_hint,omitempty"`
}

// ValidateInput selects what to validate. With neither field set the active
// set is validated.
type ValidateInput struct {
	Name string `json:"name,omitempty" jsonschema:"name of the credential set to validate"`
	All  bool   `json:"all,omitempty" jsonschema:"validate every stored credential set"`
}

// ValidateOutput is the validate_credentials result.
type ValidateOutput struct {
	Results  []validator.Result `json:"results"`
	AllValid bool               `json:"all_valid"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolListCredentials,
		Description: "List stored Directus credential sets (tokens are masked)",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetActive,
		Description: "Show the active Directus credential set (token is masked)",
	}, s.handleActive)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolValidateCredentials,
		Description: "Validate Directus credentials by calling /users/me",
	}, s.handleValidate)
}

func (s *Server) handleList(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	store := s.manager.Store()
	cfg := store.ReadConfig()
	active, _ := store.ActiveName()

	out := ListOutput{
		Credentials: make([]CredentialSummary, 0, len(cfg.Credentials)),
		Active:      active,
	}
	for _, name := range s.manager.Names() {
		creds := cfg.Credentials[name]
		out.Credentials = append(out.Credentials, CredentialSummary{
			Name:      name,
			URL:       creds.URL,
			TokenHint: cliutil.MaskToken(creds.Token),
			Active:    name == active,
		})
	}

	return nil, out, nil
}

func (s *Server) handleActive(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ActiveInput,
) (*mcp.CallToolResult, ActiveOutput, error) {
	active, err := s.manager.ActiveCredentials()
	if errors.Is(err, authmanager.ErrNoActive) {
		return nil, ActiveOutput{}, nil
	}
	if err != nil {
		return nil, ActiveOutput{}, err
	}

	return nil, ActiveOutput{
		Found:     true,
		Name:      active.Name,
		URL:       active.Credentials.URL,
		TokenHint: cliutil.MaskToken(active.Credentials.Token),
	}, nil
}

func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	var results []validator.Result

	switch {
	case input.All:
		results = s.manager.ValidateAll(ctx, s.manager.Store().All())
	default:
		target, err := s.target(input.Name)
		if err != nil {
			return nil, ValidateOutput{}, err
		}
		results = []validator.Result{s.manager.Validate(ctx, target.Name, target.Credentials)}
	}

	s.logger.Debug("mcp validation finished", zap.Int("count", len(results)))

	return nil, ValidateOutput{
		Results:  results,
		AllValid: cliutil.AllSucceeded(results),
	}, nil
}

func (s *Server) target(name string) (*credentials.Active, error) {
	if name == "" {
		active, err := s.manager.ActiveCredentials()
		if err != nil {
			return nil, fmt.Errorf("no name given and %w", err)
		}
		return active, nil
	}
	return s.manager.CredentialsByName(name)
}
