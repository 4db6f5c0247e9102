package cmd

import (
	"strings"

	"github.com/gaze-network/epoch-schedule/core/issuance"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type scheduleCmdOptions struct {
	Format string
}

type scheduleEra struct {
	Epoch        issuance.Epoch    `json:"epoch"`
	Start        issuance.Boundary `json:"start"`
	Subsidy      uint64            `json:"subsidy"`
	SubsidyCoins decimal.Decimal   `json:"subsidyCoins"`
	Terminal     bool              `json:"terminal"`
}

type scheduleOutput struct {
	Name     string        `json:"name"`
	Decimals int32         `json:"decimals"`
	Eras     []scheduleEra `json:"eras"`
}

func NewScheduleCommand() *cobra.Command {
	opts := &scheduleCmdOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the epoch table of the active schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return scheduleHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Format, "format", formatTable, `Output format. "table" or "json"`)

	return cmd
}

func scheduleHandler(opts *scheduleCmdOptions, cmd *cobra.Command, _ []string) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}
	schedule, err := invokeSchedule()
	if err != nil {
		return err
	}

	out := scheduleOutput{
		Name:     schedule.Name(),
		Decimals: schedule.Decimals(),
		Eras: lo.Map(schedule.Eras(), func(era issuance.Era, i int) scheduleEra {
			e := issuance.Epoch(i)
			return scheduleEra{
				Epoch:        e,
				Start:        era.Start,
				Subsidy:      era.Subsidy,
				SubsidyCoins: schedule.Coins(era.Subsidy),
				Terminal:     schedule.IsTerminal(e),
			}
		}),
	}

	if strings.EqualFold(opts.Format, formatJSON) {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	rows := lo.Map(out.Eras, func(era scheduleEra, _ int) []string {
		return []string{
			era.Epoch.String() + lo.Ternary(era.Terminal, "+", ""),
			era.Start.Height.String(),
			era.Start.Ordinal.String(),
			era.SubsidyCoins.String(),
		}
	})
	writeTable(cmd.OutOrStdout(), []string{"Epoch", "Starting height", "Starting ordinal", "Subsidy"}, rows)
	return nil
}
