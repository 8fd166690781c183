package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundInt rounds half to even, the convention used for every reported
// integer quantity.
func RoundInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.RoundToEven(f))
}

// RoundTo rounds f to the given number of decimal places, half to even.
func RoundTo(f float64, places int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return decimal.NewFromFloat(f).RoundBank(places).InexactFloat64()
}

// Round2 is RoundTo(f, 2), used for money and error metrics.
func Round2(f float64) float64 {
	return RoundTo(f, 2)
}
