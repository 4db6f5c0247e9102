package issuance

import (
	"math"
	"testing"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/gaze-network/epoch-schedule/common"
	"github.com/gaze-network/epoch-schedule/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	mainnet := utils.Must(Bitcoin(common.NetworkMainnet))

	tests := []struct {
		name     string
		schedule *Schedule
		ordinal  Ordinal
		expected Location
	}{
		{
			name:     "first ordinal",
			schedule: Gradual,
			ordinal:  0,
			expected: Location{Epoch: 0, Height: 0, Offset: 0},
		},
		{
			name:     "last ordinal of height 0",
			schedule: Gradual,
			ordinal:  Ordinal(12_000*CoinValue - 1),
			expected: Location{Epoch: 0, Height: 0, Offset: 12_000*CoinValue - 1},
		},
		{
			name:     "first ordinal of height 1",
			schedule: Gradual,
			ordinal:  Ordinal(12_000 * CoinValue),
			expected: Location{Epoch: 0, Height: 1, Offset: 0},
		},
		{
			name:     "first ordinal of epoch 1",
			schedule: Gradual,
			ordinal:  Gradual.StartingOrdinal(1),
			expected: Location{Epoch: 1, Height: 432_000, Offset: 0},
		},
		{
			name:     "terminal epoch",
			schedule: Gradual,
			ordinal:  Gradual.StartingOrdinal(6) + 10*18_750_000_000 + 5,
			expected: Location{Epoch: 6, Height: 2_592_010, Offset: 5},
		},
		{
			name:     "last bitcoin satoshi",
			schedule: mainnet,
			ordinal:  2_099_999_997_689_999,
			expected: Location{Epoch: 32, Height: 6_929_999, Offset: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			actual, err := tt.schedule.Locate(tt.ordinal)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)

			start, err := tt.schedule.StartingOrdinalAt(actual.Height)
			require.NoError(t, err)
			assert.Equal(t, tt.ordinal, start+Ordinal(actual.Offset))
		})
	}
}

func TestLocateNotIssued(t *testing.T) {
	mainnet := utils.Must(Bitcoin(common.NetworkMainnet))
	for _, o := range []Ordinal{2_099_999_997_690_000, math.MaxUint64} {
		_, err := mainnet.Locate(o)
		assert.ErrorIs(t, err, errs.NotIssued)
	}
}

func TestLocateInconsistent(t *testing.T) {
	s := scenarioTable(t)

	actual, err := s.Locate(1)
	require.NoError(t, err)
	assert.Equal(t, Location{Epoch: 0, Height: 0, Offset: 1}, actual)

	_, err = s.Locate(Ordinal(120_000_000_000*CoinValue - 1))
	assert.ErrorIs(t, err, errs.InconsistentSchedule)
}

func TestStartingOrdinalAt(t *testing.T) {
	test := func(s *Schedule, h Height, expected Ordinal) {
		t.Run(s.Name()+"/"+h.String(), func(t *testing.T) {
			t.Parallel()
			actual, err := s.StartingOrdinalAt(h)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}

	test(Gradual, 0, 0)
	test(Gradual, 1, Ordinal(12_000*CoinValue))
	test(Gradual, 432_000, Gradual.StartingOrdinal(1))
	test(Gradual, 432_001, Gradual.StartingOrdinal(1)+Ordinal(6_000*CoinValue))
	test(Legacy, 600_000, Legacy.StartingOrdinal(6))
	test(Legacy, 700_000, Legacy.StartingOrdinal(6)+Ordinal(100_000*125*CoinValue))

	mainnet := utils.Must(Bitcoin(common.NetworkMainnet))
	test(mainnet, 6_930_000, 2_099_999_997_690_000)
	test(mainnet, math.MaxUint64, 2_099_999_997_690_000)
}

func TestSupplyAt(t *testing.T) {
	supply, err := Gradual.SupplyAt(0)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(12_000*CoinValue), supply)

	supply, err = Gradual.SupplyAt(431_999)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(uint64(Gradual.StartingOrdinal(1))), supply)

	// beyond the uint64 horizon the supply is still defined in 128 bits
	supply, err = Gradual.SupplyAt(math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), supply.Hi>>63, "supply must not reach 2^127")
	assert.NotZero(t, supply.Hi)
}

func TestOverflowHeight(t *testing.T) {
	test := func(s *Schedule, expected Height) {
		t.Run(s.Name(), func(t *testing.T) {
			t.Parallel()
			h, ok := s.OverflowHeight()
			require.True(t, ok)
			assert.Equal(t, expected, h)

			_, err := s.StartingOrdinalAt(h)
			assert.NoError(t, err)
			_, err = s.StartingOrdinalAt(h + 1)
			assert.ErrorIs(t, err, errs.OverflowUint64)
		})
	}

	test(Gradual, 931_986_350)
	test(Legacy, 1_463_739_525)

	t.Run("capped supply", func(t *testing.T) {
		mainnet := utils.Must(Bitcoin(common.NetworkMainnet))
		_, ok := mainnet.OverflowHeight()
		assert.False(t, ok)
	})
	t.Run("beyond last height", func(t *testing.T) {
		s := utils.Must(New("late", []Era{
			{Start: Boundary{}, Subsidy: 1},
			{Start: Boundary{Height: math.MaxUint64 - 5, Ordinal: 10}, Subsidy: 1},
		}))
		_, ok := s.OverflowHeight()
		assert.False(t, ok)

		_, err := s.StartingOrdinalAt(math.MaxUint64)
		assert.NoError(t, err)
	})
	t.Run("overflow before the terminal epoch", func(t *testing.T) {
		s := utils.Must(New("skewed", []Era{
			{Start: Boundary{}, Subsidy: 1 << 63},
			{Start: Boundary{Height: 10, Ordinal: 100}, Subsidy: 1},
		}))
		require.ErrorIs(t, s.Verify(), errs.InconsistentSchedule)

		h, ok := s.OverflowHeight()
		require.True(t, ok)
		assert.Equal(t, Height(1), h)

		o, err := s.StartingOrdinalAt(h)
		require.NoError(t, err)
		assert.Equal(t, Ordinal(1<<63), o)
		_, err = s.StartingOrdinalAt(h + 1)
		assert.ErrorIs(t, err, errs.OverflowUint64)
	})
}
