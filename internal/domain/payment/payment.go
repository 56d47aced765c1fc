package payment

import "time"

type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusPaid    PaymentStatus = "PAID"
)

// Payment is a booked cycle settlement for one farmer.
type Payment struct {
	ID         int64
	FarmerID   int64
	Reference  string
	CycleStart time.Time
	CycleEnd   time.Time
	MilkLiters float64
	Amount     float64
	Status     PaymentStatus
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
