package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBigInt(t *testing.T) {
	tests := []struct {
		name     string
		amount   *big.Int
		decimals uint8
		want     string
	}{
		{"nil", nil, 18, "0"},
		{"zero", big.NewInt(0), 18, "0"},
		{"fraction", big.NewInt(1234500000000000000), 18, "1.2345"},
		{"whole", new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), 18, "1"},
		{"tiny", big.NewInt(1), 18, "0.000000000000000001"},
		{"no decimals", big.NewInt(42), 0, "42"},
		{"negative", big.NewInt(-1500), 3, "-1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBigInt(tt.amount, tt.decimals))
		})
	}
}

func TestMulUint64(t *testing.T) {
	gasPrice := big.NewInt(50_000_000_000)
	fee := MulUint64(gasPrice, 500000)

	assert.Equal(t, "25000000000000000", fee.String())
	assert.Equal(t, "0.025", FormatBigInt(fee, 18))
	assert.Equal(t, int64(50_000_000_000), gasPrice.Int64(), "input must not be modified")
	assert.Equal(t, int64(0), MulUint64(nil, 10).Int64())
}
