package cmd

import (
	"strings"

	"github.com/gaze-network/epoch-schedule/core/issuance"
	"github.com/gaze-network/epoch-schedule/pkg/logger"
	"github.com/gaze-network/epoch-schedule/pkg/logger/slogx"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type classifyCmdOptions struct {
	Height  uint64
	Ordinal uint64
	Epoch   int64
	Format  string
}

type classifyOutput struct {
	Schedule        string            `json:"schedule"`
	Height          *issuance.Height  `json:"height,omitempty"`
	Ordinal         *issuance.Ordinal `json:"ordinal,omitempty"`
	Epoch           issuance.Epoch    `json:"epoch"`
	Terminal        bool              `json:"terminal"`
	StartingHeight  issuance.Height   `json:"startingHeight"`
	StartingOrdinal issuance.Ordinal  `json:"startingOrdinal"`
	Subsidy         uint64            `json:"subsidy"`
	SubsidyCoins    decimal.Decimal   `json:"subsidyCoins"`
}

func NewClassifyCommand() *cobra.Command {
	opts := &classifyCmdOptions{}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show the epoch of a height or an ordinal, or the boundaries of an epoch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return classifyHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&opts.Height, "height", 0, "Block height to classify")
	flags.Uint64Var(&opts.Ordinal, "ordinal", 0, "Ordinal to classify")
	flags.Int64Var(&opts.Epoch, "epoch", 0, "Epoch index to describe")
	flags.StringVar(&opts.Format, "format", formatTable, `Output format. "table" or "json"`)
	cmd.MarkFlagsOneRequired("height", "ordinal", "epoch")
	cmd.MarkFlagsMutuallyExclusive("height", "ordinal", "epoch")

	return cmd
}

func classifyHandler(opts *classifyCmdOptions, cmd *cobra.Command, _ []string) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}
	schedule, err := invokeSchedule()
	if err != nil {
		return err
	}

	out := classifyOutput{Schedule: schedule.Name()}
	flags := cmd.Flags()
	switch {
	case flags.Changed("height"):
		h := issuance.Height(opts.Height)
		out.Height = &h
		out.Epoch = schedule.EpochOfHeight(h)
	case flags.Changed("ordinal"):
		o := issuance.Ordinal(opts.Ordinal)
		out.Ordinal = &o
		out.Epoch = schedule.EpochOfOrdinal(o)
	default:
		e, err := issuance.NewEpoch(opts.Epoch)
		if err != nil {
			return err
		}
		out.Epoch = e
	}

	boundary := schedule.Boundary(out.Epoch)
	out.Terminal = schedule.IsTerminal(out.Epoch)
	out.StartingHeight = boundary.Height
	out.StartingOrdinal = boundary.Ordinal
	out.Subsidy = schedule.Subsidy(out.Epoch)
	out.SubsidyCoins = schedule.Coins(out.Subsidy)

	logger.DebugContext(cmd.Context(), "classified",
		slogx.String("schedule", out.Schedule),
		slogx.Stringer("epoch", out.Epoch),
		slogx.Bool("terminal", out.Terminal),
	)

	if strings.EqualFold(opts.Format, formatJSON) {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	fields := [][]string{{"Schedule", out.Schedule}}
	if out.Height != nil {
		fields = append(fields, []string{"Height", out.Height.String()})
	}
	if out.Ordinal != nil {
		fields = append(fields, []string{"Ordinal", out.Ordinal.String()})
	}
	fields = append(fields,
		[]string{"Epoch", out.Epoch.String()},
		[]string{"Terminal", formatBool(out.Terminal)},
		[]string{"Starting height", out.StartingHeight.String()},
		[]string{"Starting ordinal", out.StartingOrdinal.String()},
		[]string{"Subsidy", out.SubsidyCoins.String()},
	)
	writeFields(cmd.OutOrStdout(), fields)
	return nil
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
