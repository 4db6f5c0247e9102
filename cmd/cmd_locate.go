package cmd

import (
	"strconv"
	"strings"

	"github.com/gaze-network/epoch-schedule/core/issuance"
	"github.com/spf13/cobra"
)

type locateCmdOptions struct {
	Ordinal uint64
	Format  string
}

type locateOutput struct {
	Schedule string            `json:"schedule"`
	Ordinal  issuance.Ordinal  `json:"ordinal"`
	Location issuance.Location `json:"location"`
}

func NewLocateCommand() *cobra.Command {
	opts := &locateCmdOptions{}

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Show the height at which an ordinal is created",
		RunE: func(cmd *cobra.Command, args []string) error {
			return locateHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&opts.Ordinal, "ordinal", 0, "Ordinal to locate")
	flags.StringVar(&opts.Format, "format", formatTable, `Output format. "table" or "json"`)
	_ = cmd.MarkFlagRequired("ordinal")

	return cmd
}

func locateHandler(opts *locateCmdOptions, cmd *cobra.Command, _ []string) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}
	schedule, err := invokeSchedule()
	if err != nil {
		return err
	}

	ordinal := issuance.Ordinal(opts.Ordinal)
	location, err := schedule.Locate(ordinal)
	if err != nil {
		return err
	}

	out := locateOutput{Schedule: schedule.Name(), Ordinal: ordinal, Location: location}
	if strings.EqualFold(opts.Format, formatJSON) {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	writeFields(cmd.OutOrStdout(), [][]string{
		{"Schedule", out.Schedule},
		{"Ordinal", out.Ordinal.String()},
		{"Epoch", location.Epoch.String()},
		{"Height", location.Height.String()},
		{"Offset", strconv.FormatUint(location.Offset, 10)},
	})
	return nil
}
