package issuance

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common/errs"
	"github.com/gaze-network/uint128"
)

// Location is where an ordinal was created.
type Location struct {
	Epoch  Epoch  `json:"epoch"`
	Height Height `json:"height"`
	// Offset is the position of the unit among the units created at Height.
	Offset uint64 `json:"offset"`
}

// StartingOrdinalAt returns the first ordinal created at height h,
// which is also the number of units created by all heights below h.
func (s *Schedule) StartingOrdinalAt(h Height) (Ordinal, error) {
	supply, err := s.supplyBefore(h)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if supply.Hi != 0 {
		return 0, errors.Wrapf(errs.OverflowUint64, "starting ordinal of height %d is %s", h, supply)
	}
	return Ordinal(supply.Lo), nil
}

// SupplyAt returns the number of units created by heights 0 through h inclusive.
func (s *Schedule) SupplyAt(h Height) (uint128.Uint128, error) {
	supply, err := s.supplyBefore(h)
	if err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	supply, overflow := supply.AddOverflow(uint128.From64(s.SubsidyAt(h)))
	if overflow {
		return uint128.Uint128{}, errors.Wrapf(errs.OverflowUint128, "supply at height %d", h)
	}
	return supply, nil
}

func (s *Schedule) supplyBefore(h Height) (uint128.Uint128, error) {
	i := s.row(s.EpochOfHeight(h))
	produced, err := produce(h-s.heights[i], s.subsidies[i])
	if err != nil {
		return uint128.Uint128{}, err
	}
	supply, overflow := produced.AddOverflow(uint128.From64(uint64(s.ordinals[i])))
	if overflow {
		return uint128.Uint128{}, errors.Wrapf(errs.OverflowUint128, "supply before height %d", h)
	}
	return supply, nil
}

// Locate returns the epoch, height and offset at which ordinal o is created.
//
// Ordinals at or beyond the start of a zero-subsidy terminal epoch are never created and return errs.NotIssued.
// If the table is inconsistent, an ordinal may map to a height outside its own epoch; that returns errs.InconsistentSchedule.
func (s *Schedule) Locate(o Ordinal) (Location, error) {
	e := s.EpochOfOrdinal(o)
	i := s.row(e)
	subsidy := s.subsidies[i]
	if subsidy == 0 {
		return Location{}, errors.Wrapf(errs.NotIssued, "ordinal %d is at or beyond the final supply %d", o, s.ordinals[i])
	}

	span, offset := uint64(o-s.ordinals[i])/subsidy, uint64(o-s.ordinals[i])%subsidy
	height := uint128.From64(uint64(s.heights[i])).Add64(span)
	if height.Hi != 0 {
		return Location{}, errors.Wrapf(errs.OverflowUint64, "height of ordinal %d", o)
	}
	if i+1 < len(s.heights) && Height(height.Lo) >= s.heights[i+1] {
		return Location{}, errors.Wrapf(errs.InconsistentSchedule, "ordinal %d of epoch %d falls at height %d, past the epoch end %d", o, e, height.Lo, s.heights[i+1])
	}
	return Location{Epoch: e, Height: Height(height.Lo), Offset: offset}, nil
}
