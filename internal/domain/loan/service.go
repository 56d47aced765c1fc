package loan

import (
	"context"
	"dairycollect/internal/domain/farmer"
	"dairycollect/internal/domain/milk"
	"dairycollect/internal/event"
	"dairycollect/internal/infrastructure/monitoring"
	"dairycollect/internal/pkg/apperrors"
	"dairycollect/internal/pkg/sms"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Money = float64

type LoanService interface {
	RequestLoan(ctx context.Context, farmerID int64, amount Money, purpose string) (*Loan, error)

	GetLoan(ctx context.Context, loanID int64) (*Loan, error)

	ListLoans(ctx context.Context, status *LoanStatus) ([]Loan, error)

	ListFarmerLoans(ctx context.Context, farmerID int64) ([]Loan, error)

	ApproveLoan(ctx context.Context, loanID int64) (*Loan, error)

	RejectLoan(ctx context.Context, loanID int64) (*Loan, error)

	CompleteLoan(ctx context.Context, loanID int64) (*Loan, error)

	// FarmerSummary computes the loan overview for a farmer at the given
	// instant. EligibleAmount uses the 15-day tiered model, MaxLoanAmount the
	// calendar-month flat model; the two coexist for different pages.
	FarmerSummary(ctx context.Context, farmerID int64, now time.Time) (*Summary, error)
}

type loanServiceImpl struct {
	repo          Repository
	milkRepo      milk.Repository
	farmerService farmer.FarmerService
	pub           event.EventPublisher
	logger        *slog.Logger
}

func NewLoanService(r Repository, milkRepo milk.Repository, fs farmer.FarmerService, pub event.EventPublisher, logger *slog.Logger) LoanService {
	return &loanServiceImpl{
		repo:          r,
		milkRepo:      milkRepo,
		farmerService: fs,
		pub:           pub,
		logger:        logger.With("component", "loanService"),
	}
}

func (s *loanServiceImpl) RequestLoan(ctx context.Context, farmerID int64, amount Money, purpose string) (*Loan, error) {
	s.logger.InfoContext(ctx, "Creating new loan request", "farmerID", farmerID, "amount", amount)

	f, err := s.farmerService.GetFarmer(ctx, farmerID)
	if err != nil {
		if errors.Is(err, farmer.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Farmer not found for loan request", "farmerID", farmerID)
			return nil, fmt.Errorf("%w: farmer %d not found", apperrors.ErrValidation, farmerID)
		}
		s.logger.ErrorContext(ctx, "Failed to verify farmer for loan request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify farmer status: %w", err)
	}
	if !f.Active {
		s.logger.WarnContext(ctx, "Loan request from inactive farmer rejected", "farmerID", farmerID)
		return nil, fmt.Errorf("%w: farmer %d is not active", apperrors.ErrValidation, farmerID)
	}

	// The eligibility ceiling is computed at request time only. It is not
	// persisted and nothing stops concurrent requests whose sum exceeds it;
	// the upstream system behaves the same way.
	l, err := NewLoan(farmerID, amount, purpose)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateLoan(ctx, l)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save loan request", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save loan request: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Loan request created", "loanID", created.ID, "farmerID", farmerID)
	return created, nil
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", "loanID", loanID)
			return nil, fmt.Errorf("%w: loan with ID %d not found", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to get loan", "loanID", loanID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get loan %d: %v", apperrors.ErrInternalServer, loanID, err)
	}
	return l, nil
}

func (s *loanServiceImpl) ListLoans(ctx context.Context, status *LoanStatus) ([]Loan, error) {
	loans, err := s.repo.ListLoans(ctx, status)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list loans: %v", apperrors.ErrInternalServer, err)
	}
	return loans, nil
}

func (s *loanServiceImpl) ListFarmerLoans(ctx context.Context, farmerID int64) ([]Loan, error) {
	loans, err := s.repo.ListLoansByFarmer(ctx, farmerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list farmer loans", "farmerID", farmerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list loans for farmer %d: %v", apperrors.ErrInternalServer, farmerID, err)
	}
	return loans, nil
}

func (s *loanServiceImpl) ApproveLoan(ctx context.Context, loanID int64) (*Loan, error) {
	return s.decide(ctx, loanID, StatusApproved)
}

func (s *loanServiceImpl) RejectLoan(ctx context.Context, loanID int64) (*Loan, error) {
	return s.decide(ctx, loanID, StatusRejected)
}

func (s *loanServiceImpl) CompleteLoan(ctx context.Context, loanID int64) (*Loan, error) {
	return s.decide(ctx, loanID, StatusCompleted)
}

func (s *loanServiceImpl) decide(ctx context.Context, loanID int64, next LoanStatus) (*Loan, error) {
	s.logger.InfoContext(ctx, "Applying loan status decision", "loanID", loanID, "next", next)

	l, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if err := l.TransitionTo(next); err != nil {
		s.logger.WarnContext(ctx, "Loan transition refused by status machine", "loanID", loanID, slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.UpdateLoanStatus(ctx, l); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist loan status", "loanID", loanID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to persist loan status for %d: %v", apperrors.ErrInternalServer, loanID, err)
	}
	monitoring.RecordLoanDecision(string(next))

	if next == StatusApproved || next == StatusRejected {
		s.publishDecided(ctx, l)
	}

	s.logger.InfoContext(ctx, "Loan status updated", "loanID", loanID, "status", l.Status)
	return l, nil
}

func (s *loanServiceImpl) publishDecided(ctx context.Context, l *Loan) {
	evt := event.LoanDecidedEvent{
		Timestamp: time.Now(),
		LoanID:    l.ID,
		FarmerID:  l.FarmerID,
		Amount:    l.LoanAmount,
		NewStatus: string(l.Status),
	}

	if f, err := s.farmerService.GetFarmer(ctx, l.FarmerID); err == nil {
		message := sms.LoanApprovedMessage(l.LoanAmount)
		if l.Status == StatusRejected {
			message = sms.LoanRejectedMessage()
		}
		evt.SMS = &event.SMSNotification{
			MessageID: uuid.NewString(),
			Phone:     f.Phone,
			Message:   message,
		}
	} else {
		s.logger.WarnContext(ctx, "Could not resolve farmer phone for loan SMS", "farmerID", l.FarmerID, slog.Any("error", err))
	}

	if err := s.pub.PublishLoanDecided(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Loan decided, but FAILED to publish decision event", slog.Any("error", err))
	}
}

func (s *loanServiceImpl) FarmerSummary(ctx context.Context, farmerID int64, now time.Time) (*Summary, error) {
	s.logger.InfoContext(ctx, "Computing farmer loan summary", "farmerID", farmerID)

	if _, err := s.farmerService.GetFarmer(ctx, farmerID); err != nil {
		if errors.Is(err, farmer.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: farmer %d not found", apperrors.ErrNotFound, farmerID)
		}
		return nil, fmt.Errorf("failed to verify farmer: %w", err)
	}

	windowStart := now.AddDate(0, 0, -EligibilityWindowDays)
	recentLiters, err := s.milkRepo.AcceptedLitersSince(ctx, farmerID, windowStart, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to sum trailing-window liters", "farmerID", farmerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to compute eligibility volume for farmer %d: %v", apperrors.ErrInternalServer, farmerID, err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthLiters, err := s.milkRepo.AcceptedLitersSince(ctx, farmerID, monthStart, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to sum calendar-month liters", "farmerID", farmerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to compute monthly volume for farmer %d: %v", apperrors.ErrInternalServer, farmerID, err)
	}

	debt, err := s.repo.OutstandingDebt(ctx, farmerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to sum outstanding debt", "farmerID", farmerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to compute outstanding debt for farmer %d: %v", apperrors.ErrInternalServer, farmerID, err)
	}

	return &Summary{
		FarmerID:       farmerID,
		MaxLoanAmount:  MonthlyAdvanceCeiling(monthLiters),
		CurrentDebt:    debt,
		MonthlyIncome:  monthLiters * MilkRateLoan,
		EligibleAmount: EligibleAmount(recentLiters),
	}, nil
}
