package dto

import (
	"dairycollect/internal/domain/loan"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RequestLoanRequest struct {
	FarmerID int64   `json:"farmerId"`
	Amount   float64 `json:"amount"`
	Purpose  string  `json:"purpose"`
}

func (r *RequestLoanRequest) Validate() error {
	if r.FarmerID <= 0 {
		return fmt.Errorf("farmerId must be a positive number")
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if strings.TrimSpace(r.Purpose) == "" {
		return fmt.Errorf("purpose cannot be empty")
	}
	return nil
}

type LoanResponse struct {
	ID         string     `json:"id"`
	FarmerID   string     `json:"farmerId"`
	LoanAmount string     `json:"loanAmount"`
	Purpose    string     `json:"purpose"`
	Status     string     `json:"status"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func NewLoanResponse(domainLoan *loan.Loan) LoanResponse {
	if domainLoan == nil {
		return LoanResponse{}
	}

	return LoanResponse{
		ID:         strconv.FormatInt(domainLoan.ID, 10),
		FarmerID:   strconv.FormatInt(domainLoan.FarmerID, 10),
		LoanAmount: decimal.NewFromFloat(domainLoan.LoanAmount).StringFixed(2),
		Purpose:    domainLoan.Purpose,
		Status:     string(domainLoan.Status),
		DecidedAt:  domainLoan.DecidedAt,
		CreatedAt:  domainLoan.CreatedAt,
		UpdatedAt:  domainLoan.UpdatedAt,
	}
}

type LoanSummaryResponse struct {
	FarmerID       string `json:"farmerId"`
	MaxLoanAmount  string `json:"maxLoanAmount"`
	CurrentDebt    string `json:"currentDebt"`
	MonthlyIncome  string `json:"monthlyIncome"`
	EligibleAmount string `json:"eligibleAmount"`
}

func NewLoanSummaryResponse(s *loan.Summary) LoanSummaryResponse {
	if s == nil {
		return LoanSummaryResponse{}
	}

	formatMoney := func(v float64) string {
		return decimal.NewFromFloat(v).StringFixed(2)
	}

	return LoanSummaryResponse{
		FarmerID:       strconv.FormatInt(s.FarmerID, 10),
		MaxLoanAmount:  formatMoney(s.MaxLoanAmount),
		CurrentDebt:    formatMoney(s.CurrentDebt),
		MonthlyIncome:  formatMoney(s.MonthlyIncome),
		EligibleAmount: formatMoney(s.EligibleAmount),
	}
}
