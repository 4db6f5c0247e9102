package issuance

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common/errs"
	"github.com/gaze-network/epoch-schedule/pkg/decimals"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
)

// DefaultDecimals is the number of decimals between a coin and its smallest unit.
const DefaultDecimals int32 = 8

// Boundary is where an epoch starts, in both coordinate systems.
type Boundary struct {
	Height  Height  `json:"height"`
	Ordinal Ordinal `json:"ordinal"`
}

// Era is one row of an epoch table.
type Era struct {
	Start Boundary `json:"start"`
	// Subsidy is the number of units created per height while in the era.
	Subsidy uint64 `json:"subsidy"`
}

// Schedule is an immutable epoch table. The last epoch (the terminal epoch) is open-ended:
// every height or ordinal at or beyond its start belongs to it, and its subsidy is paid forever.
//
// A Schedule is safe for concurrent use.
type Schedule struct {
	name      string
	decimals  int32
	heights   []Height
	ordinals  []Ordinal
	subsidies []uint64
}

type Option func(*Schedule)

// WithDecimals sets the number of decimals used to display amounts in coins.
func WithDecimals(decimals int32) Option {
	return func(s *Schedule) {
		s.decimals = decimals
	}
}

// New creates a schedule from an explicit table.
//
// The table must start at (0, 0), be strictly increasing in both heights and ordinals,
// and have a non-increasing subsidy that is positive everywhere except possibly in the terminal epoch.
func New(name string, eras []Era, opts ...Option) (*Schedule, error) {
	s := &Schedule{
		name:      name,
		decimals:  DefaultDecimals,
		heights:   make([]Height, 0, len(eras)),
		ordinals:  make([]Ordinal, 0, len(eras)),
		subsidies: make([]uint64, 0, len(eras)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, era := range eras {
		s.heights = append(s.heights, era.Start.Height)
		s.ordinals = append(s.ordinals, era.Start.Ordinal)
		s.subsidies = append(s.subsidies, era.Subsidy)
	}
	if err := s.validate(); err != nil {
		return nil, errors.Wrapf(err, "schedule %q", name)
	}
	return s, nil
}

// Derive creates a schedule from starting heights and subsidies. The starting ordinal of
// every epoch is the supply produced by all previous epochs, so the result always passes [Schedule.Verify].
func Derive(name string, heights []Height, subsidies []uint64, opts ...Option) (*Schedule, error) {
	if len(heights) != len(subsidies) {
		return nil, errors.Wrapf(errs.InvalidArgument, "schedule %q: %d heights but %d subsidies", name, len(heights), len(subsidies))
	}

	eras := make([]Era, len(heights))
	supply := uint128.Zero
	for i := range heights {
		if i > 0 {
			if heights[i] <= heights[i-1] {
				return nil, errors.Wrapf(errs.InvalidSchedule, "schedule %q: starting height of epoch %d must be greater than %d", name, i, heights[i-1])
			}
			produced, err := produce(heights[i]-heights[i-1], subsidies[i-1])
			if err != nil {
				return nil, errors.Wrapf(err, "schedule %q: epoch %d", name, i-1)
			}
			var overflow bool
			supply, overflow = supply.AddOverflow(produced)
			if overflow {
				return nil, errors.Wrapf(errs.OverflowUint128, "schedule %q: starting ordinal of epoch %d", name, i)
			}
			if supply.Hi != 0 {
				return nil, errors.Wrapf(errs.OverflowUint64, "schedule %q: starting ordinal of epoch %d is %s", name, i, supply)
			}
		}
		eras[i] = Era{
			Start:   Boundary{Height: heights[i], Ordinal: Ordinal(supply.Lo)},
			Subsidy: subsidies[i],
		}
	}
	return New(name, eras, opts...)
}

// MustNew is like [New] but panics on error. For package-level tables only.
func MustNew(name string, eras []Era, opts ...Option) *Schedule {
	s, err := New(name, eras, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustDerive is like [Derive] but panics on error. For package-level tables only.
func MustDerive(name string, heights []Height, subsidies []uint64, opts ...Option) *Schedule {
	s, err := Derive(name, heights, subsidies, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// produce returns the number of units created by span heights at the given subsidy.
func produce(span Height, subsidy uint64) (uint128.Uint128, error) {
	produced, overflow := uint128.From64(uint64(span)).MulOverflow(uint128.From64(subsidy))
	if overflow {
		return uint128.Uint128{}, errors.WithStack(errs.OverflowUint128)
	}
	return produced, nil
}

func (s *Schedule) validate() error {
	if len(s.heights) == 0 {
		return errors.Wrap(errs.InvalidSchedule, "no epochs")
	}
	if s.decimals < 0 {
		return errors.Wrapf(errs.InvalidArgument, "decimals must not be negative, got %d", s.decimals)
	}
	if s.heights[0] != 0 || s.ordinals[0] != 0 {
		return errors.Wrapf(errs.InvalidSchedule, "epoch 0 must start at height 0 and ordinal 0, got (%d, %d)", s.heights[0], s.ordinals[0])
	}
	for e := 1; e < len(s.heights); e++ {
		if s.heights[e] <= s.heights[e-1] {
			return errors.Wrapf(errs.InvalidSchedule, "starting height of epoch %d (%d) must be greater than epoch %d (%d)", e, s.heights[e], e-1, s.heights[e-1])
		}
		if s.ordinals[e] <= s.ordinals[e-1] {
			return errors.Wrapf(errs.InvalidSchedule, "starting ordinal of epoch %d (%d) must be greater than epoch %d (%d)", e, s.ordinals[e], e-1, s.ordinals[e-1])
		}
		if s.subsidies[e] > s.subsidies[e-1] {
			return errors.Wrapf(errs.InvalidSchedule, "subsidy of epoch %d (%d) must not exceed epoch %d (%d)", e, s.subsidies[e], e-1, s.subsidies[e-1])
		}
	}
	for e := 0; e < len(s.subsidies)-1; e++ {
		if s.subsidies[e] == 0 {
			return errors.Wrapf(errs.InvalidSchedule, "subsidy of non-terminal epoch %d must be positive", e)
		}
	}
	return nil
}

func (s *Schedule) Name() string {
	return s.name
}

func (s *Schedule) Decimals() int32 {
	return s.decimals
}

// Len returns the number of epochs in the table.
func (s *Schedule) Len() int {
	return len(s.heights)
}

// Terminal returns the last epoch of the table.
func (s *Schedule) Terminal() Epoch {
	return Epoch(len(s.heights) - 1)
}

// IsTerminal reports whether e is the terminal epoch or lies beyond it.
// Such epochs all resolve to the terminal row of the table.
func (s *Schedule) IsTerminal(e Epoch) bool {
	return e >= s.Terminal()
}

// Eras returns a copy of the table.
func (s *Schedule) Eras() []Era {
	eras := make([]Era, len(s.heights))
	for i := range eras {
		eras[i] = Era{
			Start:   Boundary{Height: s.heights[i], Ordinal: s.ordinals[i]},
			Subsidy: s.subsidies[i],
		}
	}
	return eras
}

// row returns the table index for e. The terminal era never ends, so any
// epoch past it is served by the terminal row.
func (s *Schedule) row(e Epoch) int {
	if s.IsTerminal(e) {
		return len(s.heights) - 1
	}
	return int(e)
}

// EpochOfHeight returns the greatest epoch whose starting height is <= h.
func (s *Schedule) EpochOfHeight(h Height) Epoch {
	// heights[0] is 0, so at least one row matches.
	i := sort.Search(len(s.heights), func(i int) bool { return s.heights[i] > h })
	return Epoch(i - 1)
}

// EpochOfOrdinal returns the greatest epoch whose starting ordinal is <= o.
func (s *Schedule) EpochOfOrdinal(o Ordinal) Epoch {
	i := sort.Search(len(s.ordinals), func(i int) bool { return s.ordinals[i] > o })
	return Epoch(i - 1)
}

// StartingHeight returns the first height of e. Epochs past the terminal epoch return the terminal start.
func (s *Schedule) StartingHeight(e Epoch) Height {
	return s.heights[s.row(e)]
}

// StartingOrdinal returns the first ordinal of e. Epochs past the terminal epoch return the terminal start.
func (s *Schedule) StartingOrdinal(e Epoch) Ordinal {
	return s.ordinals[s.row(e)]
}

// Boundary returns the starting height and ordinal of e.
func (s *Schedule) Boundary(e Epoch) Boundary {
	i := s.row(e)
	return Boundary{Height: s.heights[i], Ordinal: s.ordinals[i]}
}

// Subsidy returns the number of units created per height during e.
// Epochs at or past the terminal epoch return the terminal rate.
func (s *Schedule) Subsidy(e Epoch) uint64 {
	return s.subsidies[s.row(e)]
}

// SubsidyAt returns the number of units created at height h.
func (s *Schedule) SubsidyAt(h Height) uint64 {
	return s.Subsidy(s.EpochOfHeight(h))
}

// Coins converts an amount of units to coins using the schedule decimals.
func (s *Schedule) Coins(units uint64) decimal.Decimal {
	return decimals.ToDecimal(units, s.decimals)
}
