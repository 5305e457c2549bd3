// Package command contains the CLI command constructors.
package command

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"simrig-shop/internal/config"
)

type envKey struct{}

// env is what PersistentPreRunE hands to the sub-commands.
type env struct {
	cfg    config.Config
	logger *logrus.Logger
}

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	var configFilePath string
	cmd := &cobra.Command{
		Use:          "simrig [command] [flags]",
		Short:        "Sim racing gear storefront",
		Version:      version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFilePath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger, err := newLogger(cfg, cmd)
			if err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"database": cfg.Database.Path,
				"locale":   cfg.Site.Locale,
			}).Debug("configuration loaded")
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, env{cfg: cfg, logger: logger}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(
		&configFilePath,
		"config", "c",
		"",
		"path to the configuration file",
	)

	cmd.AddCommand(
		serveCommand(),
		dbCommand(),
		catalogCommand(),
	)

	return cmd
}

func newLogger(cfg config.Config, cmd *cobra.Command) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(cmd.ErrOrStderr())

	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Log.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

func loadEnv(ctx context.Context) (config.Config, *logrus.Logger, error) {
	e, ok := ctx.Value(envKey{}).(env)
	if !ok {
		return config.Config{}, nil, errors.New("configuration was not loaded")
	}
	return e.cfg, e.logger, nil
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-dev"
	}
	ver := "unknown"
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			ver = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty {
		ver += "-dev"
	}
	return ver
}
