package issuance

import (
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common"
	"github.com/gaze-network/epoch-schedule/common/errs"
	"github.com/samber/lo"
)

// CoinValue is the number of units in one coin.
const CoinValue uint64 = btcutil.SatoshiPerBitcoin

const (
	PresetGradual = "gradual"
	PresetLegacy  = "legacy"
	PresetBitcoin = "bitcoin"
)

// Gradual halves a 12,000 coin subsidy every 432,000 heights, then holds 187.5 coins per height forever.
var Gradual = MustDerive(PresetGradual,
	intervalHeights(432_000, 7),
	[]uint64{
		12_000 * CoinValue,
		6_000 * CoinValue,
		3_000 * CoinValue,
		1_500 * CoinValue,
		750 * CoinValue,
		375 * CoinValue,
		18_750_000_000, // 187.5 coins
	},
)

// Legacy is the original 100,000-height table, constant at 125 coins from epoch 6.
var Legacy = MustDerive(PresetLegacy,
	intervalHeights(100_000, 7),
	[]uint64{
		8_000 * CoinValue,
		4_000 * CoinValue,
		2_000 * CoinValue,
		1_000 * CoinValue,
		500 * CoinValue,
		250 * CoinValue,
		125 * CoinValue,
	},
)

// intervalHeights returns n starting heights spaced by interval.
func intervalHeights(interval uint64, n int) []Height {
	return lo.Times(n, func(i int) Height {
		return Height(uint64(i) * interval)
	})
}

// Bitcoin derives the halving schedule of the network: 50 coins halved every
// SubsidyReductionInterval blocks, with a terminal epoch paying nothing.
func Bitcoin(network common.Network) (*Schedule, error) {
	params := network.ChainParams()
	if params == nil {
		return nil, errors.Wrapf(errs.Unsupported, "network %q", network)
	}
	if params.SubsidyReductionInterval <= 0 {
		return nil, errors.Wrapf(errs.InvalidArgument, "network %q has no subsidy reduction interval", network)
	}

	interval := uint64(params.SubsidyReductionInterval)
	var (
		heights   []Height
		subsidies []uint64
	)
	for subsidy := 50 * CoinValue; ; subsidy >>= 1 {
		heights = append(heights, Height(uint64(len(heights))*interval))
		subsidies = append(subsidies, subsidy)
		if subsidy == 0 {
			break
		}
	}
	return Derive(PresetBitcoin+"-"+network.String(), heights, subsidies)
}

// PresetNames returns the names accepted by [Preset].
func PresetNames() []string {
	names := []string{PresetGradual, PresetLegacy, PresetBitcoin}
	sort.Strings(names)
	return names
}

// Preset returns a built-in schedule by name. The network is only used by the bitcoin preset.
func Preset(name string, network common.Network) (*Schedule, error) {
	switch name {
	case PresetGradual:
		return Gradual, nil
	case PresetLegacy:
		return Legacy, nil
	case PresetBitcoin:
		return Bitcoin(network)
	}
	return nil, errors.Wrapf(errs.NotFound, "preset %q, available presets: %v", name, PresetNames())
}
