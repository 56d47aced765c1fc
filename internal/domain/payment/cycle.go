package payment

import (
	"math"
	"time"
)

// MilkRatePayment is the settlement rate per accepted liter. It is a separate
// constant from the loan revenue estimate rate and must stay that way.
const MilkRatePayment = 300.0

// CycleSubmission is the slice of a milk submission the aggregator needs.
type CycleSubmission struct {
	AmountLiters float64
	CreatedAt    time.Time
}

// PaymentSummary is the farmer-facing view of the running cycle.
type PaymentSummary struct {
	CurrentCycleMilk     float64
	PendingPayment       float64
	NextPaymentDate      time.Time
	DaysUntilNextPayment int
}

// ComputeCycle returns the semi-monthly billing window containing now:
// days 1-15 map to [1st, 15th], everything after to [16th, end of month].
func ComputeCycle(now time.Time) (start, end time.Time) {
	year, month, day := now.Date()
	loc := now.Location()

	if day <= 15 {
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
		end = time.Date(year, month, 15, 23, 59, 59, 0, loc)
		return start, end
	}

	start = time.Date(year, month, 16, 0, 0, 0, 0, loc)
	lastDay := time.Date(year, month+1, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1).Day()
	end = time.Date(year, month, lastDay, 23, 59, 59, 0, loc)
	return start, end
}

// PreviousCycle returns the window that closed immediately before the one
// containing now. Used by the batch job that books payments after cycle close.
func PreviousCycle(now time.Time) (start, end time.Time) {
	currentStart, _ := ComputeCycle(now)
	return ComputeCycle(currentStart.Add(-time.Second))
}

// Summarize aggregates accepted submissions that fall inside the cycle window
// containing now, inclusive both ends. Callers pass accepted submissions only;
// pending and rejected volume never counts. daysUntilNextPayment is the
// ceiling of the remaining time in whole days and is not clamped when now is
// past the cycle end.
func Summarize(now time.Time, accepted []CycleSubmission) PaymentSummary {
	start, end := ComputeCycle(now)

	var liters float64
	for _, sub := range accepted {
		if sub.CreatedAt.Before(start) || sub.CreatedAt.After(end) {
			continue
		}
		liters += sub.AmountLiters
	}

	days := int(math.Ceil(end.Sub(now).Hours() / 24))

	return PaymentSummary{
		CurrentCycleMilk:     liters,
		PendingPayment:       liters * MilkRatePayment,
		NextPaymentDate:      end,
		DaysUntilNextPayment: days,
	}
}
