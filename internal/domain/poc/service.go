package poc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type POCService interface {
	CreatePOC(ctx context.Context, name, phone, location string) (*POC, error)
	GetPOC(ctx context.Context, pocID int64) (*POC, error)
	ListPOCs(ctx context.Context, activeOnly bool) ([]*POC, error)
	UpdatePOC(ctx context.Context, pocID int64, name, phone, location string) error
	DeactivatePOC(ctx context.Context, pocID int64) error
	AssignDiary(ctx context.Context, pocID int64, diaryID int64) error

	CreateDiary(ctx context.Context, name, location string, capacityLiters float64) (*Diary, error)
	GetDiary(ctx context.Context, diaryID int64) (*Diary, error)
	ListDiaries(ctx context.Context) ([]*Diary, error)
	UpdateDiary(ctx context.Context, diaryID int64, name, location string, capacityLiters float64) error
}

var _ POCService = (*pocService)(nil)

type pocService struct {
	repo   Repository
	logger *slog.Logger
}

func NewPOCService(repo Repository, logger *slog.Logger) POCService {
	if repo == nil {
		panic("poc repository cannot be nil")
	}
	return &pocService{repo: repo, logger: logger.With(slog.String("component", "pocService"))}
}

func (s *pocService) CreatePOC(ctx context.Context, name, phone, location string) (*POC, error) {
	s.logger.InfoContext(ctx, "Attempting to create collection point")

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" {
		return nil, errors.New("collection point name cannot be empty")
	}
	if location == "" {
		return nil, errors.New("collection point location cannot be empty")
	}

	p := NewPOC(name, strings.TrimSpace(phone), location)
	if err := s.repo.SavePOC(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save collection point", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save collection point: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created collection point", slog.Int64("pocID", p.POCID))
	return p, nil
}

func (s *pocService) GetPOC(ctx context.Context, pocID int64) (*POC, error) {
	p, err := s.repo.FindPOCByID(ctx, pocID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Collection point not found", slog.Int64("pocID", pocID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding collection point", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get collection point %d: %w", pocID, err)
	}
	return p, nil
}

func (s *pocService) ListPOCs(ctx context.Context, activeOnly bool) ([]*POC, error) {
	pocs, err := s.repo.FindAllPOCs(ctx, activeOnly)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing collection points", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list collection points: %w", err)
	}
	return pocs, nil
}

func (s *pocService) UpdatePOC(ctx context.Context, pocID int64, name, phone, location string) error {
	s.logger.InfoContext(ctx, "Attempting to update collection point", slog.Int64("pocID", pocID))

	p, err := s.GetPOC(ctx, pocID)
	if err != nil {
		return err
	}

	if n := strings.TrimSpace(name); n != "" {
		p.Name = n
	}
	if ph := strings.TrimSpace(phone); ph != "" {
		p.Phone = ph
	}
	if l := strings.TrimSpace(location); l != "" {
		p.Location = l
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.SavePOC(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated collection point", slog.Any("error", err))
		return fmt.Errorf("failed to save collection point %d: %w", pocID, err)
	}
	return nil
}

func (s *pocService) DeactivatePOC(ctx context.Context, pocID int64) error {
	s.logger.InfoContext(ctx, "Attempting to deactivate collection point", slog.Int64("pocID", pocID))

	if err := s.repo.SetPOCActiveStatus(ctx, pocID, false); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deactivating collection point", slog.Any("error", err))
		return fmt.Errorf("failed to deactivate collection point %d: %w", pocID, err)
	}
	return nil
}

func (s *pocService) AssignDiary(ctx context.Context, pocID int64, diaryID int64) error {
	s.logger.InfoContext(ctx, "Attempting to assign diary center to collection point", slog.Int64("pocID", pocID), slog.Int64("diaryID", diaryID))

	if _, err := s.repo.FindDiaryByID(ctx, diaryID); err != nil {
		if errors.Is(err, ErrDiaryNotFound) {
			return ErrDiaryNotFound
		}
		return fmt.Errorf("failed to verify diary center %d: %w", diaryID, err)
	}

	if err := s.repo.AssignDiary(ctx, pocID, diaryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error assigning diary center", slog.Any("error", err))
		return fmt.Errorf("failed to assign diary %d to collection point %d: %w", diaryID, pocID, err)
	}
	return nil
}

func (s *pocService) CreateDiary(ctx context.Context, name, location string, capacityLiters float64) (*Diary, error) {
	s.logger.InfoContext(ctx, "Attempting to create diary center")

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" {
		return nil, errors.New("diary center name cannot be empty")
	}
	if location == "" {
		return nil, errors.New("diary center location cannot be empty")
	}
	if capacityLiters < 0 {
		return nil, errors.New("diary center capacity cannot be negative")
	}

	now := time.Now()
	d := &Diary{Name: name, Location: location, CapacityLiters: capacityLiters, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.SaveDiary(ctx, d); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save diary center", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save diary center: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created diary center", slog.Int64("diaryID", d.DiaryID))
	return d, nil
}

func (s *pocService) GetDiary(ctx context.Context, diaryID int64) (*Diary, error) {
	d, err := s.repo.FindDiaryByID(ctx, diaryID)
	if err != nil {
		if errors.Is(err, ErrDiaryNotFound) {
			return nil, ErrDiaryNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding diary center", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get diary center %d: %w", diaryID, err)
	}
	return d, nil
}

func (s *pocService) ListDiaries(ctx context.Context) ([]*Diary, error) {
	diaries, err := s.repo.FindAllDiaries(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing diary centers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list diary centers: %w", err)
	}
	return diaries, nil
}

func (s *pocService) UpdateDiary(ctx context.Context, diaryID int64, name, location string, capacityLiters float64) error {
	s.logger.InfoContext(ctx, "Attempting to update diary center", slog.Int64("diaryID", diaryID))

	d, err := s.GetDiary(ctx, diaryID)
	if err != nil {
		return err
	}

	if n := strings.TrimSpace(name); n != "" {
		d.Name = n
	}
	if l := strings.TrimSpace(location); l != "" {
		d.Location = l
	}
	if capacityLiters > 0 {
		d.CapacityLiters = capacityLiters
	}
	d.UpdatedAt = time.Now()

	if err := s.repo.SaveDiary(ctx, d); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated diary center", slog.Any("error", err))
		return fmt.Errorf("failed to save diary center %d: %w", diaryID, err)
	}
	return nil
}
