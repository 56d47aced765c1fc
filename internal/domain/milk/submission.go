package milk

import (
	"dairycollect/internal/pkg/apperrors"
	"fmt"
	"time"
)

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusAccepted SubmissionStatus = "accepted"
	StatusRejected SubmissionStatus = "rejected"
)

type Submission struct {
	ID           int64
	FarmerID     int64
	POCID        *int64
	AmountLiters float64
	Status       SubmissionStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewSubmission(farmerID int64, pocID *int64, amountLiters float64, notes string) (*Submission, error) {
	if farmerID <= 0 {
		return nil, fmt.Errorf("%w: farmer ID must be positive", apperrors.ErrInvalidArgument)
	}
	if amountLiters <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero liters", apperrors.ErrInvalidArgument)
	}

	now := time.Now()
	return &Submission{
		FarmerID:     farmerID,
		POCID:        pocID,
		AmountLiters: amountLiters,
		Status:       StatusPending,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Review settles a pending submission. Accepted and rejected are terminal.
func (s *Submission) Review(outcome SubmissionStatus) error {
	if outcome != StatusAccepted && outcome != StatusRejected {
		return fmt.Errorf("%w: review outcome must be accepted or rejected, got %q", apperrors.ErrInvalidArgument, outcome)
	}
	if s.Status != StatusPending {
		return fmt.Errorf("%w: submission %d is already %s", apperrors.ErrInvalidStatusTransition, s.ID, s.Status)
	}
	s.Status = outcome
	s.UpdatedAt = time.Now()
	return nil
}

// Production is a farmer's self-reported daily yield. Informational only;
// payment and loan math run off accepted submissions.
type Production struct {
	ID            int64
	FarmerID      int64
	Date          time.Time
	MorningLiters float64
	EveningLiters float64
	Notes         string
	CreatedAt     time.Time
}

func (p *Production) TotalLiters() float64 {
	return p.MorningLiters + p.EveningLiters
}
