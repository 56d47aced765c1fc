package loan

import "context"

type Repository interface {
	CreateLoan(ctx context.Context, loan *Loan) (*Loan, error)

	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)

	ListLoans(ctx context.Context, status *LoanStatus) ([]Loan, error)

	ListLoansByFarmer(ctx context.Context, farmerID int64) ([]Loan, error)

	UpdateLoanStatus(ctx context.Context, loan *Loan) error

	// OutstandingDebt sums loan_amount over a farmer's APPROVED loans.
	OutstandingDebt(ctx context.Context, farmerID int64) (float64, error)
}
