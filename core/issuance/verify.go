package issuance

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common/errs"
	"github.com/gaze-network/uint128"
)

// Verify checks the table rules and that the starting ordinal of every epoch equals the
// supply produced before it. Tables copied from historical constants may fail the second check.
func (s *Schedule) Verify() error {
	if err := s.validate(); err != nil {
		return errors.Wrapf(err, "schedule %q", s.name)
	}
	for e := 1; e < len(s.heights); e++ {
		produced, err := produce(s.heights[e]-s.heights[e-1], s.subsidies[e-1])
		if err != nil {
			return errors.Wrapf(err, "schedule %q: epoch %d", s.name, e-1)
		}
		expected, overflow := produced.AddOverflow(uint128.From64(uint64(s.ordinals[e-1])))
		if overflow {
			return errors.Wrapf(errs.OverflowUint128, "schedule %q: starting ordinal of epoch %d", s.name, e)
		}
		if expected.Cmp64(uint64(s.ordinals[e])) != 0 {
			return errors.Wrapf(errs.InconsistentSchedule, "schedule %q: epoch %d starts at ordinal %d, but epochs before it produce %s", s.name, e, s.ordinals[e], expected)
		}
	}
	return nil
}

// OverflowHeight returns the greatest height h such that the starting ordinal of every height
// up to h fits in an Ordinal. It returns false if no such limit exists, either because the
// terminal subsidy is zero (the supply is capped) or because the limit lies beyond the last
// representable height.
//
// Consistent tables can only overflow in the terminal epoch. Tables built by [New] that fail
// [Schedule.Verify] may overflow earlier, so every epoch is checked.
func (s *Schedule) OverflowHeight() (Height, bool) {
	last := len(s.heights) - 1
	for i := 0; i < last; i++ {
		// non-terminal subsidies are positive
		fits := (math.MaxUint64 - uint64(s.ordinals[i])) / s.subsidies[i]
		if fits < uint64(s.heights[i+1]-s.heights[i]-1) {
			return s.heights[i] + Height(fits), true
		}
	}

	subsidy := s.subsidies[last]
	if subsidy == 0 {
		return 0, false
	}

	steps := (math.MaxUint64 - uint64(s.ordinals[last])) / subsidy
	h := uint128.From64(uint64(s.heights[last])).Add64(steps)
	if h.Hi != 0 {
		return 0, false
	}
	return Height(h.Lo), true
}
