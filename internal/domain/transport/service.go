package transport

import (
	"context"
	"dairycollect/internal/domain/poc"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type TransportService interface {
	CreateTransport(ctx context.Context, driverName, phone, vehicleNumber string) (*Transport, error)
	GetTransport(ctx context.Context, transportID int64) (*Transport, error)
	ListTransports(ctx context.Context, activeOnly bool) ([]*Transport, error)
	UpdateTransport(ctx context.Context, transportID int64, driverName, phone, vehicleNumber string) error
	DeactivateTransport(ctx context.Context, transportID int64) error
	AssignDiary(ctx context.Context, transportID int64, diaryID int64) error
}

var _ TransportService = (*transportService)(nil)

type transportService struct {
	repo       Repository
	pocService poc.POCService
	logger     *slog.Logger
}

func NewTransportService(repo Repository, pocService poc.POCService, logger *slog.Logger) TransportService {
	if repo == nil {
		panic("transport repository cannot be nil")
	}
	return &transportService{repo: repo, pocService: pocService, logger: logger.With(slog.String("component", "transportService"))}
}

func (s *transportService) CreateTransport(ctx context.Context, driverName, phone, vehicleNumber string) (*Transport, error) {
	s.logger.InfoContext(ctx, "Attempting to create transport")

	driverName = strings.TrimSpace(driverName)
	vehicleNumber = strings.TrimSpace(vehicleNumber)
	if driverName == "" {
		return nil, errors.New("driver name cannot be empty")
	}
	if vehicleNumber == "" {
		return nil, errors.New("vehicle number cannot be empty")
	}

	t := NewTransport(driverName, strings.TrimSpace(phone), vehicleNumber)
	if err := s.repo.Save(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save transport", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save transport: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created transport", slog.Int64("transportID", t.TransportID))
	return t, nil
}

func (s *transportService) GetTransport(ctx context.Context, transportID int64) (*Transport, error) {
	t, err := s.repo.FindByID(ctx, transportID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Transport not found", slog.Int64("transportID", transportID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding transport", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get transport %d: %w", transportID, err)
	}
	return t, nil
}

func (s *transportService) ListTransports(ctx context.Context, activeOnly bool) ([]*Transport, error) {
	transports, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing transports", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list transports: %w", err)
	}
	return transports, nil
}

func (s *transportService) UpdateTransport(ctx context.Context, transportID int64, driverName, phone, vehicleNumber string) error {
	s.logger.InfoContext(ctx, "Attempting to update transport", slog.Int64("transportID", transportID))

	t, err := s.GetTransport(ctx, transportID)
	if err != nil {
		return err
	}

	if d := strings.TrimSpace(driverName); d != "" {
		t.DriverName = d
	}
	if p := strings.TrimSpace(phone); p != "" {
		t.Phone = p
	}
	if v := strings.TrimSpace(vehicleNumber); v != "" {
		t.VehicleNumber = v
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated transport", slog.Any("error", err))
		return fmt.Errorf("failed to save transport %d: %w", transportID, err)
	}
	return nil
}

func (s *transportService) DeactivateTransport(ctx context.Context, transportID int64) error {
	s.logger.InfoContext(ctx, "Attempting to deactivate transport", slog.Int64("transportID", transportID))

	if err := s.repo.SetActiveStatus(ctx, transportID, false); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deactivating transport", slog.Any("error", err))
		return fmt.Errorf("failed to deactivate transport %d: %w", transportID, err)
	}
	return nil
}

func (s *transportService) AssignDiary(ctx context.Context, transportID int64, diaryID int64) error {
	s.logger.InfoContext(ctx, "Attempting to assign diary center to transport", slog.Int64("transportID", transportID), slog.Int64("diaryID", diaryID))

	if _, err := s.pocService.GetDiary(ctx, diaryID); err != nil {
		if errors.Is(err, poc.ErrDiaryNotFound) {
			return poc.ErrDiaryNotFound
		}
		return fmt.Errorf("failed to verify diary center %d: %w", diaryID, err)
	}

	if err := s.repo.AssignDiary(ctx, transportID, diaryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error assigning diary center to transport", slog.Any("error", err))
		return fmt.Errorf("failed to assign diary %d to transport %d: %w", diaryID, transportID, err)
	}
	return nil
}
