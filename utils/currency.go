package utils

import "math"

// Round2 rounds a display amount to two decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// MinorUnits converts a display amount to the smallest currency unit
// expected by the payment processor (paise for INR). Rounding is
// deterministic round-half-up so the charged amount never drifts from the
// displayed one.
func MinorUnits(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}
