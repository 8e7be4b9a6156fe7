package money

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{10.00, 1000},
		{0.29, 29},
		{19.99, 1999},
		{0.01, 1},
		{-2.5, -250},
	}
	for _, tt := range tests {
		got, err := ToCents(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ToCents(%v)", tt.in)
	}
}

func TestToCents_Invalid(t *testing.T) {
	for _, in := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e17} {
		_, err := ToCents(in)
		assert.True(t, errors.Is(err, ErrInvalidAmount), "ToCents(%v) err = %v", in, err)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "10.00", Format(1000))
	assert.Equal(t, "0.05", Format(5))
	assert.Equal(t, "-0.05", Format(-5))
	assert.Equal(t, "1234.56", Format(123456))
	assert.Equal(t, "$10.00", FormatUSD(1000))
	assert.Equal(t, "-$1.50", FormatUSD(-150))
	assert.Equal(t, "$1,577.95", FormatUSD(157795))
	assert.Equal(t, "$100,000.00", FormatUSD(10000000))
	assert.Equal(t, "-$1,234,567.89", FormatUSD(-123456789))
	assert.Equal(t, "$9,000,000,000,000,000.01", FormatUSD(900000000000000001))
}

func TestRoundTrip(t *testing.T) {
	cents, err := ToCents(10.00)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), cents)
	assert.Equal(t, "10.00", Format(cents))
}
