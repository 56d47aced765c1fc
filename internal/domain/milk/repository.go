package milk

import (
	"context"
	"time"
)

type Repository interface {
	CreateSubmission(ctx context.Context, submission *Submission) (*Submission, error)

	GetSubmissionByID(ctx context.Context, submissionID int64) (*Submission, error)

	ListSubmissionsByFarmer(ctx context.Context, farmerID int64) ([]Submission, error)

	ListSubmissionsByStatus(ctx context.Context, status SubmissionStatus) ([]Submission, error)

	UpdateSubmissionStatus(ctx context.Context, submissionID int64, status SubmissionStatus) error

	// AcceptedLitersSince sums accepted submission volume for a farmer with
	// createdAt in [since, until].
	AcceptedLitersSince(ctx context.Context, farmerID int64, since, until time.Time) (float64, error)

	AcceptedSubmissionsInWindow(ctx context.Context, farmerID int64, start, end time.Time) ([]Submission, error)

	FarmersWithAcceptedSubmissions(ctx context.Context, start, end time.Time) ([]int64, error)

	CreateProduction(ctx context.Context, production *Production) (*Production, error)

	ListProductionByFarmer(ctx context.Context, farmerID int64) ([]Production, error)
}
