package cmd

import (
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/core/issuance"
	"github.com/gaze-network/epoch-schedule/internal/config"
	"github.com/gaze-network/epoch-schedule/pkg/automaxprocs"
	"github.com/gaze-network/epoch-schedule/pkg/logger"
	"github.com/gaze-network/epoch-schedule/pkg/logger/slogx"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type verifyCmdOptions struct {
	All    bool
	Format string
}

type verifyResult struct {
	Schedule string `json:"schedule"`
	Epochs   int    `json:"epochs"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	// OverflowHeight is nil when the supply is capped or never overflows.
	OverflowHeight *issuance.Height `json:"overflowHeight,omitempty"`
}

func NewVerifyCommand() *cobra.Command {
	opts := &verifyCmdOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the active schedule, or every built-in schedule, for consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.All, "all", false, "Verify every built-in schedule together with the active one")
	flags.StringVar(&opts.Format, "format", formatTable, `Output format. "table" or "json"`)

	return cmd
}

func verifyHandler(opts *verifyCmdOptions, cmd *cobra.Command, _ []string) error {
	ctx := logger.WithContext(cmd.Context(), slogx.String("command", "verify"))
	if err := validateFormat(opts.Format); err != nil {
		return err
	}

	schedules := make([]*issuance.Schedule, 0, 1+len(issuance.PresetNames()))
	active, err := invokeSchedule()
	if err != nil {
		return err
	}
	schedules = append(schedules, active)
	if opts.All {
		network := config.Load().Network
		for _, name := range issuance.PresetNames() {
			preset, err := issuance.Preset(name, network)
			if err != nil {
				return errors.Wrapf(err, "preset %q", name)
			}
			schedules = append(schedules, preset)
		}
		// by identity, a custom table may reuse a preset name
		schedules = lo.Uniq(schedules)
	}

	procs, err := automaxprocs.Init(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Failed to set GOMAXPROCS", slogx.Error(err))
	}

	var (
		mu       sync.Mutex
		failures []error
		results  = make([]verifyResult, len(schedules))
	)
	start := time.Now()
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(procs)
	for i, schedule := range schedules {
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return errors.WithStack(err)
			}
			result := verifyResult{Schedule: schedule.Name(), Epochs: schedule.Len(), OK: true}
			if err := schedule.Verify(); err != nil {
				result.OK = false
				result.Error = err.Error()
				logger.WarnContext(ectx, "Schedule is inconsistent", slogx.String("schedule", schedule.Name()), slogx.Error(err))
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
			if h, ok := schedule.OverflowHeight(); ok {
				result.OverflowHeight = &h
			}
			logger.DebugContext(ectx, "Verified schedule", slogx.String("schedule", result.Schedule), slogx.Bool("ok", result.OK))
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Verified schedules",
		slogx.Int("schedules", len(schedules)),
		slogx.Int("failures", len(failures)),
		slogx.Duration("duration", time.Since(start)),
	)

	if strings.EqualFold(opts.Format, formatJSON) {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		rows := lo.Map(results, func(r verifyResult, _ int) []string {
			overflow := "never"
			if r.OverflowHeight != nil {
				overflow = r.OverflowHeight.String()
			}
			return []string{r.Schedule, lo.Ternary(r.OK, "ok", r.Error), overflow}
		})
		writeTable(cmd.OutOrStdout(), []string{"Schedule", "Status", "Overflow height"}, rows)
	}

	return errors.Join(failures...)
}
