package utils

import (
	"math/big"
	"strings"
)

// FormatBigInt converts a base-unit amount to a human-readable decimal string.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(new(big.Int).Abs(amount), divisor, new(big.Int))

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}

	fracStr := strings.TrimRight(padLeft(frac.String(), int(decimals)), "0")
	if fracStr == "" {
		return sign + whole.String()
	}
	return sign + whole.String() + "." + fracStr
}

// MulUint64 returns a*b as a new big.Int.
func MulUint64(a *big.Int, b uint64) *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(a, new(big.Int).SetUint64(b))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
