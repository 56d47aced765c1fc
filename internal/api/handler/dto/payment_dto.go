package dto

import (
	"dairycollect/internal/domain/payment"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type BulkPaymentStatusRequest struct {
	PaymentIDs []int64 `json:"paymentIds"`
	Status     string  `json:"status"`
}

func (r *BulkPaymentStatusRequest) Validate() error {
	if len(r.PaymentIDs) == 0 {
		return fmt.Errorf("paymentIds cannot be empty")
	}
	for _, id := range r.PaymentIDs {
		if id <= 0 {
			return fmt.Errorf("paymentIds must all be positive numbers")
		}
	}
	if r.Status != string(payment.StatusPending) && r.Status != string(payment.StatusPaid) {
		return fmt.Errorf("status must be PENDING or PAID")
	}
	return nil
}

type PaymentResponse struct {
	ID         string     `json:"id"`
	FarmerID   string     `json:"farmerId"`
	Reference  string     `json:"reference"`
	CycleStart time.Time  `json:"cycleStart"`
	CycleEnd   time.Time  `json:"cycleEnd"`
	MilkLiters float64    `json:"milkLiters"`
	Amount     string     `json:"amount"`
	Status     string     `json:"status"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	if p == nil {
		return PaymentResponse{}
	}

	return PaymentResponse{
		ID:         strconv.FormatInt(p.ID, 10),
		FarmerID:   strconv.FormatInt(p.FarmerID, 10),
		Reference:  p.Reference,
		CycleStart: p.CycleStart,
		CycleEnd:   p.CycleEnd,
		MilkLiters: p.MilkLiters,
		Amount:     decimal.NewFromFloat(p.Amount).StringFixed(2),
		Status:     string(p.Status),
		PaidAt:     p.PaidAt,
		CreatedAt:  p.CreatedAt,
	}
}

type PaymentSummaryResponse struct {
	CurrentCycleMilk     float64   `json:"currentCycleMilk"`
	PendingPayment       string    `json:"pendingPayment"`
	NextPaymentDate      time.Time `json:"nextPaymentDate"`
	DaysUntilNextPayment int       `json:"daysUntilNextPayment"`
}

func NewPaymentSummaryResponse(s *payment.PaymentSummary) PaymentSummaryResponse {
	if s == nil {
		return PaymentSummaryResponse{}
	}

	return PaymentSummaryResponse{
		CurrentCycleMilk:     s.CurrentCycleMilk,
		PendingPayment:       decimal.NewFromFloat(s.PendingPayment).StringFixed(2),
		NextPaymentDate:      s.NextPaymentDate,
		DaysUntilNextPayment: s.DaysUntilNextPayment,
	}
}
