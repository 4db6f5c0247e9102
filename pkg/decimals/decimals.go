package decimals

import (
	"math"
	"math/big"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common/errs"
	"github.com/gaze-network/epoch-schedule/pkg/logger"
	"github.com/gaze-network/epoch-schedule/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

const (
	DefaultDivPrecision = 36
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// ToDecimal convert an integer amount of the smallest unit to decimal.Decimal with the given number of decimals.
// E.g. ToDecimal(uint64(150_000_000), 8) = 1.5
func ToDecimal[T constraints.Integer](ivalue any, decimals T) decimal.Decimal {
	value := new(big.Int)
	switch v := ivalue.(type) {
	case string:
		value.SetString(v, 10)
	case *big.Int:
		value = v
	case int64:
		value = big.NewInt(v)
	case int, int8, int16, int32:
		rValue := reflect.ValueOf(v)
		value.SetInt64(rValue.Int())
	case uint64:
		value = big.NewInt(0).SetUint64(v)
	case uint, uint8, uint16, uint32:
		rValue := reflect.ValueOf(v)
		value.SetUint64(rValue.Uint())
	case uint128.Uint128:
		value = v.Big()
	default:
		// named integer types such as issuance.Ordinal
		rValue := reflect.ValueOf(v)
		switch {
		case rValue.CanUint():
			value.SetUint64(rValue.Uint())
		case rValue.CanInt():
			value.SetInt64(rValue.Int())
		default:
			logger.Panic("ToDecimal: unsupported value type", slogx.String("type", rValue.Kind().String()))
		}
	}

	switch {
	case int64(decimals) > math.MaxInt32:
		logger.Panic("ToDecimal: decimals is too big, should be equal less than 2^31-1", slogx.Any("decimals", decimals))
	case int64(decimals) < math.MinInt32+1:
		logger.Panic("ToDecimal: decimals is too small, should be greater than -2^31", slogx.Any("decimals", decimals))
	}

	return decimal.NewFromBigInt(value, -int32(decimals))
}

// ToUnits converts a coin amount (e.g. "187.5") to an integer amount of the smallest unit.
// The amount must be non-negative, representable without loss and fit in uint64.
func ToUnits(amount string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, errors.Wrapf(errs.InvalidArgument, "invalid amount %q: %v", amount, err)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(errs.InvalidArgument, "amount %q must not be negative", amount)
	}

	units := d.Mul(PowerOfTen(decimals))
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(errs.InvalidArgument, "amount %q has more than %d decimals", amount, decimals)
	}
	if units.GreaterThan(maxUint64) {
		return 0, errors.Wrapf(errs.OverflowUint64, "amount %q", amount)
	}
	return units.BigInt().Uint64(), nil
}
