package orders

import "math"

// surchargeRate is the fixed charge added on top of the item subtotal.
const surchargeRate = 0.02

// AmountWithSurcharge returns the final order amount: the item subtotal plus
// the 2% surcharge, rounded down.
func AmountWithSurcharge(subtotal float64) float64 {
	return math.Floor(subtotal * (1 + surchargeRate))
}
