package schedule

import "math"

// Online-booking pricing policy: a fixed 10% discount off the list total, and
// a deposit of half the discounted price.
const (
	discountRate = 0.9
	depositRate  = 0.5
)

// ApplyDiscount returns the discounted price for an online booking, rounded
// half-up.
func ApplyDiscount(total int64) int64 {
	return int64(math.Round(float64(total) * discountRate))
}

// CalculateDeposit returns the deposit owed on an already-discounted price,
// rounded half-up. The deposit is derived from the rounded discounted price,
// not from the list total; the small difference against a round-once formula
// is an accepted, reproducible artifact of the two-stage policy.
func CalculateDeposit(discounted int64) int64 {
	return int64(math.Round(float64(discounted) * depositRate))
}

// Quote is the pricing projection over a set of selected services.
type Quote struct {
	Total      int64 `json:"total"`
	Discounted int64 `json:"discounted"`
	Deposit    int64 `json:"deposit"`
}

// Summarize computes the quote for the given service list prices.
func Summarize(prices []int64) Quote {
	var total int64
	for _, p := range prices {
		total += p
	}
	discounted := ApplyDiscount(total)
	return Quote{
		Total:      total,
		Discounted: discounted,
		Deposit:    CalculateDeposit(discounted),
	}
}
