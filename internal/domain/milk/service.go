package milk

import (
	"context"
	"dairycollect/internal/domain/farmer"
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

type MilkService interface {
	SubmitMilk(ctx context.Context, farmerID int64, pocID *int64, amountLiters float64, notes string) (*Submission, error)

	GetSubmission(ctx context.Context, submissionID int64) (*Submission, error)

	ListFarmerSubmissions(ctx context.Context, farmerID int64) ([]Submission, error)

	ListSubmissionsByStatus(ctx context.Context, status SubmissionStatus) ([]Submission, error)

	// ReviewSubmission settles a pending submission as accepted or rejected.
	ReviewSubmission(ctx context.Context, submissionID int64, outcome SubmissionStatus) (*Submission, error)

	RecordProduction(ctx context.Context, farmerID int64, date time.Time, morningLiters, eveningLiters float64, notes string) (*Production, error)

	ListFarmerProduction(ctx context.Context, farmerID int64) ([]Production, error)
}

type milkServiceImpl struct {
	repo          Repository
	farmerService farmer.FarmerService
	pub           event.EventPublisher
	logger        *slog.Logger
}

func NewMilkService(r Repository, fs farmer.FarmerService, pub event.EventPublisher, logger *slog.Logger) MilkService {
	return &milkServiceImpl{repo: r, farmerService: fs, pub: pub, logger: logger.With("component", "milkService")}
}

func (s *milkServiceImpl) SubmitMilk(ctx context.Context, farmerID int64, pocID *int64, amountLiters float64, notes string) (*Submission, error) {
	s.logger.InfoContext(ctx, "Recording new milk submission", "farmerID", farmerID, "liters", amountLiters)

	f, err := s.farmerService.GetFarmer(ctx, farmerID)
	if err != nil {
		if errors.Is(err, farmer.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Farmer not found for milk submission", "farmerID", farmerID)
			return nil, fmt.Errorf("%w: farmer %d not found", apperrors.ErrValidation, farmerID)
		}
		s.logger.ErrorContext(ctx, "Failed to verify farmer for milk submission", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify farmer: %w", err)
	}
	if !f.Active {
		s.logger.WarnContext(ctx, "Rejected submission from inactive farmer", "farmerID", farmerID)
		return nil, fmt.Errorf("%w: farmer %d is not active", apperrors.ErrValidation, farmerID)
	}

	sub, err := NewSubmission(farmerID, pocID, amountLiters, notes)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateSubmission(ctx, sub)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save milk submission", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save milk submission: %v", apperrors.ErrInternalServer, err)
	}
	monitoring.RecordMilkSubmission(string(created.Status))

	s.logger.InfoContext(ctx, "Milk submission recorded", "submissionID", created.ID)
	return created, nil
}

func (s *milkServiceImpl) GetSubmission(ctx context.Context, submissionID int64) (*Submission, error) {
	sub, err := s.repo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Submission not found", "submissionID", submissionID)
			return nil, fmt.Errorf("%w: milk submission %d not found", apperrors.ErrNotFound, submissionID)
		}
		s.logger.ErrorContext(ctx, "Failed to get milk submission", "submissionID", submissionID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get milk submission %d: %v", apperrors.ErrInternalServer, submissionID, err)
	}
	return sub, nil
}

func (s *milkServiceImpl) ListFarmerSubmissions(ctx context.Context, farmerID int64) ([]Submission, error) {
	submissions, err := s.repo.ListSubmissionsByFarmer(ctx, farmerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list farmer submissions", "farmerID", farmerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list submissions for farmer %d: %v", apperrors.ErrInternalServer, farmerID, err)
	}
	return submissions, nil
}

func (s *milkServiceImpl) ListSubmissionsByStatus(ctx context.Context, status SubmissionStatus) ([]Submission, error) {
	if status != StatusPending && status != StatusAccepted && status != StatusRejected {
		return nil, fmt.Errorf("%w: unknown submission status %q", apperrors.ErrInvalidArgument, status)
	}
	submissions, err := s.repo.ListSubmissionsByStatus(ctx, status)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list submissions by status", "status", status, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list %s submissions: %v", apperrors.ErrInternalServer, status, err)
	}
	return submissions, nil
}

func (s *milkServiceImpl) ReviewSubmission(ctx context.Context, submissionID int64, outcome SubmissionStatus) (*Submission, error) {
	s.logger.InfoContext(ctx, "Reviewing milk submission", "submissionID", submissionID, "outcome", outcome)

	sub, err := s.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := sub.Review(outcome); err != nil {
		s.logger.WarnContext(ctx, "Review rejected by status machine", "submissionID", submissionID, slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.UpdateSubmissionStatus(ctx, submissionID, sub.Status); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist submission review", "submissionID", submissionID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to persist review for submission %d: %v", apperrors.ErrInternalServer, submissionID, err)
	}
	monitoring.RecordMilkReview(string(outcome))
	if outcome == StatusAccepted {
		monitoring.RecordAcceptedLiters(sub.AmountLiters)
	}

	s.publishReviewed(ctx, sub)

	s.logger.InfoContext(ctx, "Milk submission reviewed", "submissionID", submissionID, "status", sub.Status)
	return sub, nil
}

func (s *milkServiceImpl) publishReviewed(ctx context.Context, sub *Submission) {
	evt := event.MilkReviewedEvent{
		Timestamp:    time.Now(),
		SubmissionID: sub.ID,
		FarmerID:     sub.FarmerID,
		AmountLiters: sub.AmountLiters,
		Outcome:      string(sub.Status),
	}

	if f, err := s.farmerService.GetFarmer(ctx, sub.FarmerID); err == nil {
		message := sms.MilkAcceptedMessage(sub.AmountLiters)
		if sub.Status == StatusRejected {
			message = sms.MilkRejectedMessage(sub.AmountLiters)
		}
		evt.SMS = &event.SMSNotification{
			MessageID: uuid.NewString(),
			Phone:     f.Phone,
			Message:   message,
		}
	} else {
		s.logger.WarnContext(ctx, "Could not resolve farmer phone for review SMS", "farmerID", sub.FarmerID, slog.Any("error", err))
	}

	if err := s.pub.PublishMilkReviewed(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Submission reviewed, but FAILED to publish review event", slog.Any("error", err))
	}
}

func (s *milkServiceImpl) RecordProduction(ctx context.Context, farmerID int64, date time.Time, morningLiters, eveningLiters float64, notes string) (*Production, error) {
	s.logger.InfoContext(ctx, "Recording daily production", "farmerID", farmerID, "date", date.Format(time.DateOnly))

	if morningLiters < 0 || eveningLiters < 0 {
		return nil, fmt.Errorf("%w: production liters cannot be negative", apperrors.ErrInvalidArgument)
	}
	if date.IsZero() {
		date = time.Now().Truncate(24 * time.Hour)
	}

	if _, err := s.farmerService.GetFarmer(ctx, farmerID); err != nil {
		if errors.Is(err, farmer.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: farmer %d not found", apperrors.ErrValidation, farmerID)
		}
		return nil, fmt.Errorf("failed to verify farmer: %w", err)
	}

	created, err := s.repo.CreateProduction(ctx, &Production{
		FarmerID:      farmerID,
		Date:          date,
		MorningLiters: morningLiters,
		EveningLiters: eveningLiters,
		Notes:         notes,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save production record", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save production record: %v", apperrors.ErrInternalServer, err)
	}

	return created, nil
}

func (s *milkServiceImpl) ListFarmerProduction(ctx context.Context, farmerID int64) ([]Production, error) {
	records, err := s.repo.ListProductionByFarmer(ctx, farmerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list production records", "farmerID", farmerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list production for farmer %d: %v", apperrors.ErrInternalServer, farmerID, err)
	}
	return records, nil
}
