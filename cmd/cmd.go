package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/gaze-network/epoch-schedule/internal/config"
	"github.com/gaze-network/epoch-schedule/pkg/logger"
	"github.com/gaze-network/epoch-schedule/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the `epochs` command tree.
func NewRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "epochs",
		Long:          `Inspect the issuance schedule: epochs, subsidies and ordinal boundaries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Initialize configuration and logger before any sub-command
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.Parse(configFile)
			if err != nil {
				return err
			}
			if err := logger.Init(conf.Logger); err != nil {
				return err
			}
			logger.DebugContext(cmd.Context(), "configuration loaded", slog.Any("network", conf.Network), slog.Any("schedule", conf.Schedule))
			return nil
		},
	}

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("network", "mainnet", "network used by the bitcoin preset, E.g. `mainnet` or `regtest`")
	flags.String("schedule", "", `built-in schedule to use, E.g. "gradual", "legacy" or "bitcoin"`)

	// Bind flags to configuration
	config.BindPFlag("network", flags.Lookup("network"))
	config.BindPFlag("schedule.preset", flags.Lookup("schedule"))

	// Register sub-commands
	cmd.AddCommand(
		NewVersionCommand(),
		NewScheduleCommand(),
		NewClassifyCommand(),
		NewLocateCommand(),
		NewVerifyCommand(),
	)

	return cmd
}

func Execute(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to execute command", err, slogx.String("args", strings.Join(os.Args[1:], " ")))
		os.Exit(1)
	}
}
