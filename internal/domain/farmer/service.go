package farmer

import (
	"context"
	"dairycollect/internal/event"
	"dairycollect/internal/infrastructure/monitoring"
	"dairycollect/internal/pkg/sms"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const farmerNotFound = "Farmer not found by repository"

type FarmerService interface {
	RegisterFarmer(ctx context.Context, name, phone, address string) (*Farmer, error)
	GetFarmer(ctx context.Context, farmerID int64) (*Farmer, error)
	ListFarmers(ctx context.Context, activeOnly bool) ([]*Farmer, error)
	ListFarmersByPOC(ctx context.Context, pocID int64) ([]*Farmer, error)
	UpdateFarmer(ctx context.Context, farmerID int64, name, phone, address string) error
	AssignPOC(ctx context.Context, farmerID int64, pocID int64) error
	DeactivateFarmer(ctx context.Context, farmerID int64) error
	ReactivateFarmer(ctx context.Context, farmerID int64) error
}

var _ FarmerService = (*farmerService)(nil)

type farmerService struct {
	repo   FarmerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewFarmerService(repo FarmerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) FarmerService {
	if repo == nil {
		panic("farmer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewFarmerService, using default stderr handler")
	}

	return &farmerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "farmerService")),
	}
}

func NewFarmerEventPayload(f *Farmer) event.FarmerEventPayload {
	if f == nil {
		return event.FarmerEventPayload{}
	}
	return event.FarmerEventPayload{
		FarmerID:  f.FarmerID,
		Name:      f.Name,
		Phone:     f.Phone,
		Address:   f.Address,
		POCID:     f.POCID,
		Active:    f.Active,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (s *farmerService) publishFarmerUpdated(ctx context.Context, f *Farmer) {
	if f == nil {
		s.logger.ErrorContext(ctx, "Attempted to publish update event for nil farmer")
		return
	}
	evt := event.FarmerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   NewFarmerEventPayload(f),
	}

	if err := s.pub.PublishFarmerUpdated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish farmer update event", slog.Any("error", err))
	} else {
		s.logger.InfoContext(ctx, "Successfully published farmer update event")
	}
}

func (s *farmerService) RegisterFarmer(ctx context.Context, name, phone, address string) (*Farmer, error) {
	s.logger.InfoContext(ctx, "Attempting to register new farmer")

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)
	if name == "" {
		s.logger.WarnContext(ctx, "Validation failed: name is empty")
		return nil, errors.New("farmer name cannot be empty")
	}
	if phone == "" {
		s.logger.WarnContext(ctx, "Validation failed: phone is empty", slog.String("name", name))
		return nil, errors.New("farmer phone cannot be empty")
	}
	if address == "" {
		s.logger.WarnContext(ctx, "Validation failed: address is empty", slog.String("name", name))
		return nil, errors.New("farmer address cannot be empty")
	}

	if existing, err := s.repo.FindByPhone(ctx, phone); err == nil && existing != nil {
		s.logger.WarnContext(ctx, "Registration rejected: phone already registered", slog.Int64("existingFarmerID", existing.FarmerID))
		return nil, ErrDuplicatePhone
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.ErrorContext(ctx, "Repository error checking phone uniqueness", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
	}

	f := NewFarmer(name, phone, address)

	s.logger.InfoContext(ctx, "Calling repository Save")
	if err := s.repo.Save(ctx, f); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new farmer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new farmer: %w", err)
	}
	monitoring.RecordFarmerRegistered()

	registeredEvent := event.FarmerRegisteredEvent{
		Timestamp: time.Now(),
		Payload:   NewFarmerEventPayload(f),
		SMS: &event.SMSNotification{
			MessageID: uuid.NewString(),
			Phone:     f.Phone,
			Message:   sms.WelcomeMessage(f.Name),
		},
	}
	if pubErr := s.pub.PublishFarmerRegistered(ctx, registeredEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Farmer registered, but FAILED to publish registration event", slog.Any("error", pubErr))
	} else {
		s.logger.InfoContext(ctx, "Successfully published farmer registration event")
	}

	s.logger.InfoContext(ctx, "Successfully registered new farmer", slog.Int64("farmerID", f.FarmerID))
	return f, nil
}

func (s *farmerService) GetFarmer(ctx context.Context, farmerID int64) (*Farmer, error) {
	s.logger.InfoContext(ctx, "Attempting to get farmer by ID")

	f, err := s.repo.FindByID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, farmerNotFound)
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding farmer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get farmer %d: %w", farmerID, err)
	}

	return f, nil
}

func (s *farmerService) ListFarmers(ctx context.Context, activeOnly bool) ([]*Farmer, error) {
	s.logger.InfoContext(ctx, "Attempting to list farmers", slog.Bool("activeOnly", activeOnly))

	farmers, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing farmers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved farmers", slog.Int("count", len(farmers)))
	return farmers, nil
}

func (s *farmerService) ListFarmersByPOC(ctx context.Context, pocID int64) ([]*Farmer, error) {
	s.logger.InfoContext(ctx, "Attempting to list farmers by POC", slog.Int64("pocID", pocID))

	farmers, err := s.repo.FindByPOC(ctx, pocID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing farmers by POC", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list farmers for POC %d: %w", pocID, err)
	}

	return farmers, nil
}

func (s *farmerService) UpdateFarmer(ctx context.Context, farmerID int64, name, phone, address string) error {
	s.logger.InfoContext(ctx, "Attempting to update farmer profile")

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)
	if name == "" && phone == "" && address == "" {
		s.logger.WarnContext(ctx, "Validation failed: no fields to update")
		return errors.New("nothing to update")
	}

	f, err := s.repo.FindByID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Farmer not found by repository for update")
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding farmer for update", slog.Any("error", err))
		return fmt.Errorf("cannot find farmer %d to update: %w", farmerID, err)
	}

	if name != "" {
		f.Name = name
	}
	if phone != "" {
		f.Phone = phone
	}
	if address != "" {
		f.Address = address
	}
	f.UpdatedAt = time.Now()

	s.logger.InfoContext(ctx, "Calling repository Save to persist profile change")
	if err := s.repo.Save(ctx, f); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated farmer", slog.Any("error", err))
		if errors.Is(err, ErrDuplicatePhone) {
			return ErrDuplicatePhone
		}
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to save updated farmer %d: %w", farmerID, err)
	}

	s.publishFarmerUpdated(ctx, f)
	s.logger.InfoContext(ctx, "Successfully updated farmer profile")
	return nil
}

func (s *farmerService) AssignPOC(ctx context.Context, farmerID int64, pocID int64) error {
	s.logger.InfoContext(ctx, "Attempting to assign POC to farmer")

	if pocID <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: invalid POC ID provided")
		return errors.New("invalid POC ID provided")
	}

	f, err := s.repo.FindByID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, farmerNotFound)
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding farmer", slog.Any("error", err))
		return fmt.Errorf("cannot find farmer %d to assign POC: %w", farmerID, err)
	}

	if !f.Active {
		s.logger.WarnContext(ctx, "Business rule failed: cannot assign POC to inactive farmer")
		return fmt.Errorf("cannot assign POC to inactive farmer %d", farmerID)
	}

	if f.POCID != nil && *f.POCID == pocID {
		s.logger.InfoContext(ctx, "POC already assigned to this farmer, no action needed")
		return nil
	}

	if err := s.repo.AssignPOC(ctx, farmerID, pocID); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save POC assignment", slog.Any("error", err))
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to assign POC %d to farmer %d: %w", pocID, farmerID, err)
	}

	f.AssignPOC(pocID)
	s.publishFarmerUpdated(ctx, f)

	s.logger.InfoContext(ctx, "Successfully assigned POC to farmer")
	return nil
}

func (s *farmerService) DeactivateFarmer(ctx context.Context, farmerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to deactivate farmer")

	if err := s.repo.SetActiveStatus(ctx, farmerID, false); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, farmerNotFound)
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deactivating farmer", slog.Any("error", err))
		return fmt.Errorf("failed to deactivate farmer %d: %w", farmerID, err)
	}

	deactivated, fetchErr := s.repo.FindByID(ctx, farmerID)
	if fetchErr != nil {
		s.logger.ErrorContext(ctx, "Successfully updated status, but FAILED to re-fetch farmer for event publishing", slog.Any("error", fetchErr))
	} else {
		s.publishFarmerUpdated(ctx, deactivated)
	}
	s.logger.InfoContext(ctx, "Successfully deactivated farmer")
	return nil
}

func (s *farmerService) ReactivateFarmer(ctx context.Context, farmerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to reactivate farmer")

	if err := s.repo.SetActiveStatus(ctx, farmerID, true); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, farmerNotFound)
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error reactivating farmer", slog.Any("error", err))
		return fmt.Errorf("failed to reactivate farmer %d: %w", farmerID, err)
	}

	reactivated, fetchErr := s.repo.FindByID(ctx, farmerID)
	if fetchErr != nil {
		s.logger.ErrorContext(ctx, "Successfully updated status, but FAILED to re-fetch farmer for event publishing", slog.Any("error", fetchErr))
	} else {
		s.publishFarmerUpdated(ctx, reactivated)
	}
	s.logger.InfoContext(ctx, "Successfully reactivated farmer")
	return nil
}
