package issuance

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common"
	"github.com/gaze-network/epoch-schedule/common/errs"
	"github.com/gaze-network/epoch-schedule/pkg/decimals"
	"github.com/samber/lo"
)

// Config describes the active schedule, either a preset or a custom table.
type Config struct {
	Preset   string      `mapstructure:"preset"`   // Built-in schedule name. Mutually exclusive with Epochs.
	Name     string      `mapstructure:"name"`     // Name of the custom table.
	Decimals int32       `mapstructure:"decimals"` // Decimals of the coin, used to parse subsidies.
	Epochs   []EraConfig `mapstructure:"epochs"`   // Custom table, one row per epoch.
}

type EraConfig struct {
	Height  uint64  `mapstructure:"height"`
	Subsidy string  `mapstructure:"subsidy"` // In coins, e.g. "187.5".
	Ordinal *uint64 `mapstructure:"ordinal"` // In units. Omit on every row to derive the ordinal column.
}

// Build returns the schedule described by the configuration.
func (c Config) Build(network common.Network) (*Schedule, error) {
	if len(c.Epochs) == 0 {
		if c.Preset == "" {
			return nil, errors.Wrap(errs.InvalidArgument, "schedule requires a preset or a list of epochs")
		}
		return Preset(c.Preset, network)
	}
	if c.Preset != "" {
		return nil, errors.Wrapf(errs.InvalidArgument, "schedule preset %q can't be combined with custom epochs", c.Preset)
	}

	name := lo.Ternary(c.Name != "", c.Name, "custom")
	subsidies := make([]uint64, len(c.Epochs))
	for i, era := range c.Epochs {
		units, err := decimals.ToUnits(era.Subsidy, c.Decimals)
		if err != nil {
			return nil, errors.Wrapf(err, "schedule %q: subsidy of epoch %d", name, i)
		}
		subsidies[i] = units
	}

	withOrdinals := lo.CountBy(c.Epochs, func(era EraConfig) bool { return era.Ordinal != nil })
	switch withOrdinals {
	case 0:
		heights := lo.Map(c.Epochs, func(era EraConfig, _ int) Height { return Height(era.Height) })
		return Derive(name, heights, subsidies, WithDecimals(c.Decimals))
	case len(c.Epochs):
		eras := lo.Map(c.Epochs, func(era EraConfig, i int) Era {
			return Era{
				Start:   Boundary{Height: Height(era.Height), Ordinal: Ordinal(*era.Ordinal)},
				Subsidy: subsidies[i],
			}
		})
		return New(name, eras, WithDecimals(c.Decimals))
	}
	return nil, errors.Wrapf(errs.InvalidArgument, "schedule %q: ordinal must be set on every epoch or on none, got %d of %d", name, withOrdinals, len(c.Epochs))
}
