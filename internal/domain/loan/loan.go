package loan

import (
	"dairycollect/internal/pkg/apperrors"
	"fmt"
	"strings"
	"time"
)

// EligibilityWindowDays is the trailing window of accepted milk volume the
// tiered eligibility model looks at.
const EligibilityWindowDays = 15

// MilkRateLoan is the revenue estimate per liter used by the eligibility
// calculators. It is deliberately a different constant from the payment
// settlement rate; the two have never been unified upstream.
const MilkRateLoan = 400.0

const (
	tierHighLiters = 75.0
	tierMidLiters  = 50.0
	tierLowLiters  = 30.0

	tierHighFraction = 0.8
	tierMidFraction  = 0.6
	tierLowFraction  = 0.5

	monthlyAdvanceFraction = 0.5
)

type LoanStatus string

const (
	StatusPending   LoanStatus = "PENDING"
	StatusApproved  LoanStatus = "APPROVED"
	StatusRejected  LoanStatus = "REJECTED"
	StatusCompleted LoanStatus = "COMPLETED"
)

type Loan struct {
	ID         int64
	FarmerID   int64
	LoanAmount float64
	Purpose    string
	Status     LoanStatus
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewLoan(farmerID int64, amount float64, purpose string) (*Loan, error) {
	if farmerID <= 0 {
		return nil, fmt.Errorf("%w: farmer ID must be positive", apperrors.ErrInvalidArgument)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: loan amount must be greater than zero", apperrors.ErrInvalidArgument)
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, fmt.Errorf("%w: loan purpose cannot be empty", apperrors.ErrInvalidArgument)
	}

	now := time.Now()
	return &Loan{
		FarmerID:   farmerID,
		LoanAmount: amount,
		Purpose:    purpose,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// TransitionTo enforces the loan status machine:
// PENDING -> APPROVED | REJECTED, APPROVED -> COMPLETED.
// Approval does not check the loan amount against the eligibility ceiling;
// the upstream system never did, so the gap is preserved rather than fixed.
func (l *Loan) TransitionTo(next LoanStatus) error {
	allowed := map[LoanStatus][]LoanStatus{
		StatusPending:  {StatusApproved, StatusRejected},
		StatusApproved: {StatusCompleted},
	}

	for _, s := range allowed[l.Status] {
		if s == next {
			now := time.Now()
			l.Status = next
			l.UpdatedAt = now
			if next == StatusApproved || next == StatusRejected {
				l.DecidedAt = &now
			}
			return nil
		}
	}
	return fmt.Errorf("%w: loan %d cannot go from %s to %s", apperrors.ErrInvalidStatusTransition, l.ID, l.Status, next)
}

// EligibleAmount is the tiered 15-day eligibility model. Thresholds are
// strict greater-than: exactly 75, 50 or 30 liters falls into the lower tier.
func EligibleAmount(recentMilkLiters float64) float64 {
	estimatedRevenue := recentMilkLiters * MilkRateLoan

	switch {
	case recentMilkLiters > tierHighLiters:
		return estimatedRevenue * tierHighFraction
	case recentMilkLiters > tierMidLiters:
		return estimatedRevenue * tierMidFraction
	case recentMilkLiters > tierLowLiters:
		return estimatedRevenue * tierLowFraction
	default:
		return 0
	}
}

// MonthlyAdvanceCeiling is the older calendar-month flat model that a second
// farmer-facing page still uses. It coexists with EligibleAmount on purpose;
// the two formulas disagree and have not been reconciled upstream.
func MonthlyAdvanceCeiling(monthLiters float64) float64 {
	return monthLiters * MilkRateLoan * monthlyAdvanceFraction
}

// Summary is the farmer-facing loan overview.
type Summary struct {
	FarmerID       int64
	MaxLoanAmount  float64
	CurrentDebt    float64
	MonthlyIncome  float64
	EligibleAmount float64
}
