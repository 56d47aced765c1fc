package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeCycle(t *testing.T) {
	t.Run("day in the first half maps to the 1st-15th window", func(t *testing.T) {
		now := time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC)
		start, end := ComputeCycle(now)
		assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, time.June, 15, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("the 15th itself still belongs to the first window", func(t *testing.T) {
		now := time.Date(2025, time.June, 15, 23, 0, 0, 0, time.UTC)
		start, _ := ComputeCycle(now)
		assert.Equal(t, 1, start.Day())
	})

	t.Run("day in the second half maps to the 16th-EOM window", func(t *testing.T) {
		now := time.Date(2025, time.June, 20, 9, 0, 0, 0, time.UTC)
		start, end := ComputeCycle(now)
		assert.Equal(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("second window ends on the 31st in long months", func(t *testing.T) {
		now := time.Date(2025, time.July, 31, 12, 0, 0, 0, time.UTC)
		_, end := ComputeCycle(now)
		assert.Equal(t, 31, end.Day())
	})

	t.Run("february window ends on the 28th", func(t *testing.T) {
		now := time.Date(2025, time.February, 20, 12, 0, 0, 0, time.UTC)
		_, end := ComputeCycle(now)
		assert.Equal(t, 28, end.Day())
	})

	t.Run("leap year february window ends on the 29th", func(t *testing.T) {
		now := time.Date(2024, time.February, 17, 12, 0, 0, 0, time.UTC)
		_, end := ComputeCycle(now)
		assert.Equal(t, 29, end.Day())
	})
}

func TestPreviousCycle(t *testing.T) {
	t.Run("first half of the month closes the second half of the previous month", func(t *testing.T) {
		now := time.Date(2025, time.June, 1, 0, 30, 0, 0, time.UTC)
		start, end := PreviousCycle(now)
		assert.Equal(t, time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, time.May, 31, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("second half of the month closes the first half", func(t *testing.T) {
		now := time.Date(2025, time.June, 16, 0, 30, 0, 0, time.UTC)
		start, end := PreviousCycle(now)
		assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, time.June, 15, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("january first half closes december of the previous year", func(t *testing.T) {
		now := time.Date(2026, time.January, 1, 0, 30, 0, 0, time.UTC)
		start, end := PreviousCycle(now)
		assert.Equal(t, time.Date(2025, time.December, 16, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), end)
	})
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	t.Run("sums accepted volume inside the current window", func(t *testing.T) {
		subs := []CycleSubmission{
			{AmountLiters: 12.5, CreatedAt: time.Date(2025, time.June, 2, 7, 0, 0, 0, time.UTC)},
			{AmountLiters: 10.0, CreatedAt: time.Date(2025, time.June, 9, 18, 0, 0, 0, time.UTC)},
		}
		summary := Summarize(now, subs)
		assert.InDelta(t, 22.5, summary.CurrentCycleMilk, 0.001)
		assert.InDelta(t, 22.5*MilkRatePayment, summary.PendingPayment, 0.001)
		assert.Equal(t, time.Date(2025, time.June, 15, 23, 59, 59, 0, time.UTC), summary.NextPaymentDate)
	})

	t.Run("volume outside the window never counts", func(t *testing.T) {
		subs := []CycleSubmission{
			{AmountLiters: 8.0, CreatedAt: time.Date(2025, time.May, 31, 7, 0, 0, 0, time.UTC)},
			{AmountLiters: 6.0, CreatedAt: time.Date(2025, time.June, 16, 7, 0, 0, 0, time.UTC)},
			{AmountLiters: 4.0, CreatedAt: time.Date(2025, time.June, 5, 7, 0, 0, 0, time.UTC)},
		}
		summary := Summarize(now, subs)
		assert.InDelta(t, 4.0, summary.CurrentCycleMilk, 0.001)
	})

	t.Run("no accepted volume yields a zero pending payment", func(t *testing.T) {
		summary := Summarize(now, nil)
		assert.Equal(t, 0.0, summary.CurrentCycleMilk)
		assert.Equal(t, 0.0, summary.PendingPayment)
	})

	t.Run("days until next payment is the ceiling of the remaining time", func(t *testing.T) {
		summary := Summarize(now, nil)
		// June 10 12:00 to June 15 23:59:59 is just under 5.5 days.
		assert.Equal(t, 6, summary.DaysUntilNextPayment)
	})

	t.Run("days until next payment is not clamped past the cycle end", func(t *testing.T) {
		late := time.Date(2025, time.June, 15, 23, 59, 59, 500_000_000, time.UTC)
		summary := Summarize(late, nil)
		assert.LessOrEqual(t, summary.DaysUntilNextPayment, 0)
	})
}
