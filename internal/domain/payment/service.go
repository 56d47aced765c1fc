package payment

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

type PaymentService interface {
	// FarmerSummary aggregates the running semi-monthly cycle for a farmer.
	FarmerSummary(ctx context.Context, farmerID int64, now time.Time) (*PaymentSummary, error)

	ListFarmerPayments(ctx context.Context, farmerID int64) ([]Payment, error)

	// BookCyclePayment books a pending payment for a closed cycle window.
	// Returns nil without booking when the farmer had no accepted volume or
	// the cycle is already booked.
	BookCyclePayment(ctx context.Context, farmerID int64, cycleStart, cycleEnd time.Time) (*Payment, error)

	// BulkUpdateStatus moves a set of payments to the given status in one
	// transaction; any failure rolls the whole batch back.
	BulkUpdateStatus(ctx context.Context, paymentIDs []int64, status PaymentStatus) error
}

type paymentServiceImpl struct {
	repo          Repository
	milkRepo      milk.Repository
	farmerService farmer.FarmerService
	pub           event.EventPublisher
	logger        *slog.Logger
}

func NewPaymentService(r Repository, milkRepo milk.Repository, fs farmer.FarmerService, pub event.EventPublisher, logger *slog.Logger) PaymentService {
	return &paymentServiceImpl{
		repo:          r,
		milkRepo:      milkRepo,
		farmerService: fs,
		pub:           pub,
		logger:        logger.With("component", "paymentService"),
	}
}

func (s *paymentServiceImpl) FarmerSummary(ctx context.Context, farmerID int64, now time.Time) (*PaymentSummary, error) {
	s.logger.InfoContext(ctx, "Computing payment cycle summary", "farmerID", farmerID)

	if _, err := s.farmerService.GetFarmer(ctx, farmerID); err != nil {
		if errors.Is(err, farmer.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: farmer %d not found", apperrors.ErrNotFound, farmerID)
		}
		return nil, fmt.Errorf("failed to verify farmer: %w", err)
	}

	start, end := ComputeCycle(now)
	submissions, err := s.milkRepo.AcceptedSubmissionsInWindow(ctx, farmerID, start, end)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load cycle submissions", "farmerID", farmerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to load cycle submissions for farmer %d: %v", apperrors.ErrInternalServer, farmerID, err)
	}

	accepted := make([]CycleSubmission, 0, len(submissions))
	for _, sub := range submissions {
		accepted = append(accepted, CycleSubmission{AmountLiters: sub.AmountLiters, CreatedAt: sub.CreatedAt})
	}

	summary := Summarize(now, accepted)
	return &summary, nil
}

func (s *paymentServiceImpl) ListFarmerPayments(ctx context.Context, farmerID int64) ([]Payment, error) {
	payments, err := s.repo.ListPaymentsByFarmer(ctx, farmerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list farmer payments", "farmerID", farmerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list payments for farmer %d: %v", apperrors.ErrInternalServer, farmerID, err)
	}
	return payments, nil
}

func (s *paymentServiceImpl) BookCyclePayment(ctx context.Context, farmerID int64, cycleStart, cycleEnd time.Time) (*Payment, error) {
	logCtx := s.logger.With(slog.Int64("farmerID", farmerID), slog.Time("cycleStart", cycleStart), slog.Time("cycleEnd", cycleEnd))
	logCtx.InfoContext(ctx, "Booking cycle payment")

	booked, err := s.repo.ExistsForCycle(ctx, farmerID, cycleStart, cycleEnd)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to check for existing cycle payment", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to check existing payment: %v", apperrors.ErrInternalServer, err)
	}
	if booked {
		logCtx.InfoContext(ctx, "Cycle already booked for farmer, skipping")
		return nil, nil
	}

	liters, err := s.milkRepo.AcceptedLitersSince(ctx, farmerID, cycleStart, cycleEnd)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to sum accepted liters for cycle", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to sum cycle liters: %v", apperrors.ErrInternalServer, err)
	}
	if liters <= 0 {
		logCtx.InfoContext(ctx, "No accepted volume in cycle, nothing to book")
		return nil, nil
	}

	now := time.Now()
	created, err := s.repo.CreatePayment(ctx, &Payment{
		FarmerID:   farmerID,
		Reference:  uuid.NewString(),
		CycleStart: cycleStart,
		CycleEnd:   cycleEnd,
		MilkLiters: liters,
		Amount:     liters * MilkRatePayment,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to save cycle payment", slog.Any("error", err))
		monitoring.RecordPaymentBooked("failure")
		return nil, fmt.Errorf("%w: failed to save cycle payment: %v", apperrors.ErrInternalServer, err)
	}
	monitoring.RecordPaymentBooked("success")

	s.publishBooked(ctx, created)

	logCtx.InfoContext(ctx, "Cycle payment booked", "paymentID", created.ID, "amount", created.Amount)
	return created, nil
}

func (s *paymentServiceImpl) publishBooked(ctx context.Context, p *Payment) {
	evt := event.PaymentBookedEvent{
		Timestamp:  time.Now(),
		PaymentID:  p.ID,
		FarmerID:   p.FarmerID,
		Reference:  p.Reference,
		MilkLiters: p.MilkLiters,
		Amount:     p.Amount,
		CycleStart: p.CycleStart,
		CycleEnd:   p.CycleEnd,
	}

	if f, err := s.farmerService.GetFarmer(ctx, p.FarmerID); err == nil {
		evt.SMS = &event.SMSNotification{
			MessageID: uuid.NewString(),
			Phone:     f.Phone,
			Message:   sms.PaymentBookedMessage(p.Amount, p.Reference),
		}
	} else {
		s.logger.WarnContext(ctx, "Could not resolve farmer phone for payment SMS", "farmerID", p.FarmerID, slog.Any("error", err))
	}

	if err := s.pub.PublishPaymentBooked(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Payment booked, but FAILED to publish event", slog.Any("error", err))
	}
}

func (s *paymentServiceImpl) BulkUpdateStatus(ctx context.Context, paymentIDs []int64, status PaymentStatus) (err error) {
	s.logger.InfoContext(ctx, "Bulk updating payment status", "count", len(paymentIDs), "status", status)

	if len(paymentIDs) == 0 {
		return fmt.Errorf("%w: no payment IDs provided", apperrors.ErrInvalidArgument)
	}
	if status != StatusPending && status != StatusPaid {
		return fmt.Errorf("%w: unknown payment status %q", apperrors.ErrInvalidArgument, status)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: could not begin transaction: %v", apperrors.ErrInternalServer, err)
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.ErrorContext(ctx, "Panic occurred during bulk payment update", slog.Any("error", p))
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			s.logger.ErrorContext(ctx, "Rolling back bulk payment update", slog.Any("error", err))
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	var paidAt *time.Time
	if status == StatusPaid {
		now := time.Now()
		paidAt = &now
	}

	for _, id := range paymentIDs {
		if err = s.repo.UpdateStatusInTx(ctx, tx, id, status, paidAt); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: payment %d not found, batch aborted", apperrors.ErrNotFound, id)
			}
			return fmt.Errorf("%w: failed to update payment %d: %v", apperrors.ErrInternalServer, id, err)
		}
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return fmt.Errorf("%w: could not commit transaction: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Bulk payment status update committed", "count", len(paymentIDs))
	return nil
}
