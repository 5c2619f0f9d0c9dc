// Package cliutil holds the plumbing shared by the directus-auth commands.
package cliutil

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a console logger writing to w at the named level.
// debug forces the debug level.
func NewLogger(w io.Writer, level string, debug bool) (*zap.Logger, error) {
	lvl := zapcore.DebugLevel
	if !debug {
		var err error
		lvl, err = ParseLevel(level)
		if err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)

	return zap.New(core), nil
}

// ParseLevel parses a zap level name. Empty means warn.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zapcore.WarnLevel, nil
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
