package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, int64(900), ApplyDiscount(1000))
	assert.Equal(t, int64(0), ApplyDiscount(0))
	assert.Equal(t, int64(95), ApplyDiscount(105)) // 94.5 rounds up
}

func TestCalculateDeposit(t *testing.T) {
	assert.Equal(t, int64(450), CalculateDeposit(900))
	assert.Equal(t, int64(0), CalculateDeposit(0))
	assert.Equal(t, int64(48), CalculateDeposit(95)) // 47.5 rounds up
}

func TestSummarize(t *testing.T) {
	quote := Summarize([]int64{600, 400})
	assert.Equal(t, Quote{Total: 1000, Discounted: 900, Deposit: 450}, quote)

	assert.Equal(t, Quote{}, Summarize(nil))
}

// The deposit is derived from the rounded discounted price, so it can differ
// from a single-step 45% of the total by one unit.
func TestSummarizeTwoStageRounding(t *testing.T) {
	quote := Summarize([]int64{105})
	assert.Equal(t, int64(95), quote.Discounted)
	assert.Equal(t, int64(48), quote.Deposit) // round-once 105*0.45 would give 47
}
