package cliutil

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexvdvalk/directus-auth-manager/pkg/config"
	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
	"github.com/alexvdvalk/directus-auth-manager/pkg/dotdir"
	"github.com/alexvdvalk/directus-auth-manager/pkg/tui"
	"github.com/alexvdvalk/directus-auth-manager/pkg/validator"
)

// Persistent flag names registered on the root command.
const (
	FlagConfigDir = "config-dir"
	FlagDebug     = "debug"
	FlagNoColor   = "no-color"
)

// Deps is everything a command needs, resolved from its flags.
type Deps struct {
	Dir       string
	Settings  *config.Settings
	Logger    *zap.Logger
	Store     *credentials.Store
	Validator *validator.Validator
	Styles    *tui.Styles
}

// LoadDeps resolves the config directory, settings, logger, store and
// validator for cmd. Flags that cmd does not define read as zero values.
func LoadDeps(cmd *cobra.Command) (*Deps, error) {
	configDir, _ := cmd.Flags().GetString(FlagConfigDir)
	debug, _ := cmd.Flags().GetBool(FlagDebug)
	noColor, _ := cmd.Flags().GetBool(FlagNoColor)

	dir, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	// Settings problems are logged, not returned.
	settings, settingsErr := config.Load(dir)

	logger, err := NewLogger(cmd.ErrOrStderr(), settings.Log.Level, debug)
	if err != nil {
		settingsErr = errors.Join(settingsErr, err)
		settings.Log.Level = "warn"
		logger, _ = NewLogger(cmd.ErrOrStderr(), "", debug)
	}
	if settingsErr != nil {
		logger.Warn("ignoring invalid settings, using defaults",
			zap.String("path", config.Path(dir)),
			zap.Error(settingsErr),
		)
	}

	timeout, _ := settings.Timeout()

	store := credentials.NewStoreInDir(dir, credentials.WithLogger(logger))
	v := validator.New(&validator.Config{
		Timeout:     timeout,
		Concurrency: settings.Validation.Concurrency,
		UserAgent:   settings.Validation.UserAgent,
		Logger:      logger,
	})

	logger.Debug("resolved config",
		zap.String("dir", dir),
		zap.String("store", store.Path()),
		zap.Duration("timeout", timeout),
		zap.Int("concurrency", settings.Validation.Concurrency),
	)

	return &Deps{
		Dir:       dir,
		Settings:  settings,
		Logger:    logger,
		Store:     store,
		Validator: v,
		Styles:    tui.NewStyles(cmd.OutOrStdout(), noColor),
	}, nil
}
