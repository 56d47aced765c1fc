package ngo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type NGOService interface {
	CreateNGO(ctx context.Context, name, phone, region string) (*NGO, error)
	GetNGO(ctx context.Context, ngoID int64) (*NGO, error)
	ListNGOs(ctx context.Context, activeOnly bool) ([]*NGO, error)
	UpdateNGO(ctx context.Context, ngoID int64, name, phone, region string) error
	DeactivateNGO(ctx context.Context, ngoID int64) error

	// ActivityReport builds the regional report for the NGO's region over
	// [from, to]. A period with no activity yields a zero-valued report.
	ActivityReport(ctx context.Context, ngoID int64, from, to time.Time) (*ActivityReport, error)
}

var _ NGOService = (*ngoService)(nil)

type ngoService struct {
	repo   Repository
	logger *slog.Logger
}

func NewNGOService(repo Repository, logger *slog.Logger) NGOService {
	if repo == nil {
		panic("ngo repository cannot be nil")
	}
	return &ngoService{repo: repo, logger: logger.With(slog.String("component", "ngoService"))}
}

func (s *ngoService) CreateNGO(ctx context.Context, name, phone, region string) (*NGO, error) {
	s.logger.InfoContext(ctx, "Attempting to create NGO")

	name = strings.TrimSpace(name)
	region = strings.TrimSpace(region)
	if name == "" {
		return nil, errors.New("NGO name cannot be empty")
	}
	if region == "" {
		return nil, errors.New("NGO region cannot be empty")
	}

	n := NewNGO(name, strings.TrimSpace(phone), region)
	if err := s.repo.Save(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save NGO", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save NGO: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created NGO", slog.Int64("ngoID", n.NGOID))
	return n, nil
}

func (s *ngoService) GetNGO(ctx context.Context, ngoID int64) (*NGO, error) {
	n, err := s.repo.FindByID(ctx, ngoID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "NGO not found", slog.Int64("ngoID", ngoID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding NGO", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get NGO %d: %w", ngoID, err)
	}
	return n, nil
}

func (s *ngoService) ListNGOs(ctx context.Context, activeOnly bool) ([]*NGO, error) {
	ngos, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing NGOs", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list NGOs: %w", err)
	}
	return ngos, nil
}

func (s *ngoService) UpdateNGO(ctx context.Context, ngoID int64, name, phone, region string) error {
	s.logger.InfoContext(ctx, "Attempting to update NGO", slog.Int64("ngoID", ngoID))

	n, err := s.GetNGO(ctx, ngoID)
	if err != nil {
		return err
	}

	if v := strings.TrimSpace(name); v != "" {
		n.Name = v
	}
	if v := strings.TrimSpace(phone); v != "" {
		n.Phone = v
	}
	if v := strings.TrimSpace(region); v != "" {
		n.Region = v
	}
	n.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated NGO", slog.Any("error", err))
		return fmt.Errorf("failed to save NGO %d: %w", ngoID, err)
	}
	return nil
}

func (s *ngoService) DeactivateNGO(ctx context.Context, ngoID int64) error {
	s.logger.InfoContext(ctx, "Attempting to deactivate NGO", slog.Int64("ngoID", ngoID))

	if err := s.repo.SetActiveStatus(ctx, ngoID, false); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deactivating NGO", slog.Any("error", err))
		return fmt.Errorf("failed to deactivate NGO %d: %w", ngoID, err)
	}
	return nil
}

func (s *ngoService) ActivityReport(ctx context.Context, ngoID int64, from, to time.Time) (*ActivityReport, error) {
	s.logger.InfoContext(ctx, "Building NGO activity report", slog.Int64("ngoID", ngoID))

	n, err := s.GetNGO(ctx, ngoID)
	if err != nil {
		return nil, err
	}

	if to.Before(from) {
		return nil, errors.New("report period end cannot be before start")
	}

	report, err := s.repo.BuildActivityReport(ctx, n.Region, from, to)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error building activity report", slog.Any("error", err))
		return nil, fmt.Errorf("failed to build activity report for NGO %d: %w", ngoID, err)
	}

	s.logger.InfoContext(ctx, "Successfully built activity report",
		slog.Int64("totalFarmers", report.TotalFarmers),
		slog.Float64("acceptedLiters", report.AcceptedLiters))
	return report, nil
}
