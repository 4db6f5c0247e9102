package decimals

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerOfTen(t *testing.T) {
	for n := int64(-36); n <= 36; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			expected := powerOfTenString(n)
			actual := PowerOfTen(n)
			assert.Equal(t, expected, actual.String())
		})
	}
}

// powerOfTenString add zero padding to power of ten string
func powerOfTenString(n int64) string {
	if n < 0 {
		return "0." + strings.Repeat("0", int(-n-1)) + "1"
	}
	return "1" + strings.Repeat("0", int(n))
}
