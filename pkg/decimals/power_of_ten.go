package decimals

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// PowerOfTen returns 10^n.
func PowerOfTen[T constraints.Integer](n T) decimal.Decimal {
	return decimal.New(1, int32(n))
}
