package cmd

import (
	"fmt"

	"github.com/gaze-network/epoch-schedule/core/constants"
	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show epochs version",
		RunE:  versionHandler,
	}
}

func versionHandler(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), "epochs", constants.Version)
	return err
}
