package issuance

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common/errs"
)

// Height is the index of a block. It increases by exactly one per block.
type Height uint64

func (h Height) N() uint64 {
	return uint64(h)
}

func (h Height) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// Ordinal identifies a single unit of supply by its position in creation order.
// The n-th unit ever created has ordinal n.
type Ordinal uint64

func (o Ordinal) N() uint64 {
	return uint64(o)
}

func (o Ordinal) String() string {
	return strconv.FormatUint(uint64(o), 10)
}

// Epoch is the 0-based index of a contiguous segment of a schedule.
type Epoch uint32

// NewEpoch converts an externally supplied index to an Epoch.
// Indices that cannot be represented (negative or above 2^32-1) return errs.InvalidEpoch.
// Non-negative indices beyond the last epoch of a schedule are valid and clamp to the terminal epoch.
func NewEpoch(n int64) (Epoch, error) {
	if n < 0 || n > math.MaxUint32 {
		return 0, errors.Wrapf(errs.InvalidEpoch, "epoch index %d is out of range", n)
	}
	return Epoch(n), nil
}

func (e Epoch) N() uint32 {
	return uint32(e)
}

func (e Epoch) String() string {
	return strconv.FormatUint(uint64(e), 10)
}
