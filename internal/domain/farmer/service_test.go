package farmer

import (
	"context"
	"dairycollect/internal/event"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockFarmerRepository struct {
	mock.Mock
}

func (m *MockFarmerRepository) Save(ctx context.Context, f *Farmer) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFarmerRepository) FindByID(ctx context.Context, farmerID int64) (*Farmer, error) {
	args := m.Called(ctx, farmerID)
	var r0 *Farmer
	if args.Get(0) != nil {
		r0 = args.Get(0).(*Farmer)
	}
	return r0, args.Error(1)
}

func (m *MockFarmerRepository) FindByPhone(ctx context.Context, phone string) (*Farmer, error) {
	args := m.Called(ctx, phone)
	var r0 *Farmer
	if args.Get(0) != nil {
		r0 = args.Get(0).(*Farmer)
	}
	return r0, args.Error(1)
}

func (m *MockFarmerRepository) FindAll(ctx context.Context, activeOnly bool) ([]*Farmer, error) {
	args := m.Called(ctx, activeOnly)
	var r0 []*Farmer
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*Farmer)
	}
	return r0, args.Error(1)
}

func (m *MockFarmerRepository) FindByPOC(ctx context.Context, pocID int64) ([]*Farmer, error) {
	args := m.Called(ctx, pocID)
	var r0 []*Farmer
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*Farmer)
	}
	return r0, args.Error(1)
}

func (m *MockFarmerRepository) SetActiveStatus(ctx context.Context, farmerID int64, isActive bool) error {
	args := m.Called(ctx, farmerID, isActive)
	return args.Error(0)
}

func (m *MockFarmerRepository) AssignPOC(ctx context.Context, farmerID int64, pocID int64) error {
	args := m.Called(ctx, farmerID, pocID)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishFarmerRegistered(ctx context.Context, evt event.FarmerRegisteredEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishFarmerUpdated(ctx context.Context, evt event.FarmerUpdatedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishMilkReviewed(ctx context.Context, evt event.MilkReviewedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishPaymentBooked(ctx context.Context, evt event.PaymentBookedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishLoanDecided(ctx context.Context, evt event.LoanDecidedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func newTestService() (FarmerService, *MockFarmerRepository, *MockEventPublisher) {
	repo := new(MockFarmerRepository)
	pub := new(MockEventPublisher)
	return NewFarmerService(repo, pub, logger), repo, pub
}

func TestRegisterFarmer(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a farmer and publishes a welcome event", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.On("FindByPhone", ctx, "9800000001").Return((*Farmer)(nil), ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*farmer.Farmer")).Return(nil)
		pub.On("PublishFarmerRegistered", ctx, mock.MatchedBy(func(evt event.FarmerRegisteredEvent) bool {
			return evt.Payload.Phone == "9800000001" && evt.SMS != nil && evt.SMS.Phone == "9800000001"
		})).Return(nil)

		f, err := svc.RegisterFarmer(ctx, "Asha Devi", "9800000001", "Ward 4, Chitwan")
		assert.NoError(t, err)
		assert.True(t, f.Active)
		assert.Nil(t, f.POCID)
		pub.AssertExpectations(t)
	})

	t.Run("trims whitespace before validating", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.On("FindByPhone", ctx, "9800000001").Return((*Farmer)(nil), ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*farmer.Farmer")).Return(nil)
		pub.On("PublishFarmerRegistered", ctx, mock.AnythingOfType("event.FarmerRegisteredEvent")).Return(nil)

		f, err := svc.RegisterFarmer(ctx, "  Asha Devi  ", " 9800000001 ", " Ward 4, Chitwan ")
		assert.NoError(t, err)
		assert.Equal(t, "Asha Devi", f.Name)
		assert.Equal(t, "9800000001", f.Phone)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		svc, repo, _ := newTestService()

		_, err := svc.RegisterFarmer(ctx, "", "9800000001", "Ward 4")
		assert.Error(t, err)
		_, err = svc.RegisterFarmer(ctx, "Asha Devi", "", "Ward 4")
		assert.Error(t, err)
		_, err = svc.RegisterFarmer(ctx, "Asha Devi", "9800000001", "")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a phone already registered", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.On("FindByPhone", ctx, "9800000001").
			Return(&Farmer{FarmerID: 3, Phone: "9800000001"}, nil)

		_, err := svc.RegisterFarmer(ctx, "Asha Devi", "9800000001", "Ward 4")
		assert.ErrorIs(t, err, ErrDuplicatePhone)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		pub.AssertNotCalled(t, "PublishFarmerRegistered", mock.Anything, mock.Anything)
	})

	t.Run("registration sticks even when event publishing fails", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.On("FindByPhone", ctx, "9800000001").Return((*Farmer)(nil), ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*farmer.Farmer")).Return(nil)
		pub.On("PublishFarmerRegistered", ctx, mock.AnythingOfType("event.FarmerRegisteredEvent")).
			Return(errors.New("broker down"))

		f, err := svc.RegisterFarmer(ctx, "Asha Devi", "9800000001", "Ward 4")
		assert.NoError(t, err)
		assert.NotNil(t, f)
	})
}

func TestAssignPOC(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a collection point and publishes the update", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.On("FindByID", ctx, int64(7)).
			Return(&Farmer{FarmerID: 7, Name: "Asha Devi", Active: true}, nil)
		repo.On("AssignPOC", ctx, int64(7), int64(3)).Return(nil)
		pub.On("PublishFarmerUpdated", ctx, mock.MatchedBy(func(evt event.FarmerUpdatedEvent) bool {
			return evt.Payload.POCID != nil && *evt.Payload.POCID == 3
		})).Return(nil)

		assert.NoError(t, svc.AssignPOC(ctx, 7, 3))
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("assignment is a no-op when the POC is unchanged", func(t *testing.T) {
		svc, repo, pub := newTestService()
		current := int64(3)
		repo.On("FindByID", ctx, int64(7)).
			Return(&Farmer{FarmerID: 7, Active: true, POCID: &current}, nil)

		assert.NoError(t, svc.AssignPOC(ctx, 7, 3))
		repo.AssertNotCalled(t, "AssignPOC", mock.Anything, mock.Anything, mock.Anything)
		pub.AssertNotCalled(t, "PublishFarmerUpdated", mock.Anything, mock.Anything)
	})

	t.Run("refuses assignment to an inactive farmer", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindByID", ctx, int64(7)).
			Return(&Farmer{FarmerID: 7, Active: false}, nil)

		err := svc.AssignPOC(ctx, 7, 3)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "AssignPOC", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an invalid POC ID", func(t *testing.T) {
		svc, repo, _ := newTestService()

		err := svc.AssignPOC(ctx, 7, 0)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestDeactivateFarmer(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates and publishes the new state", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.On("SetActiveStatus", ctx, int64(7), false).Return(nil)
		repo.On("FindByID", ctx, int64(7)).
			Return(&Farmer{FarmerID: 7, Active: false}, nil)
		pub.On("PublishFarmerUpdated", ctx, mock.MatchedBy(func(evt event.FarmerUpdatedEvent) bool {
			return !evt.Payload.Active
		})).Return(nil)

		assert.NoError(t, svc.DeactivateFarmer(ctx, 7))
		pub.AssertExpectations(t)
	})

	t.Run("deactivation succeeds even when the re-fetch for publishing fails", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.On("SetActiveStatus", ctx, int64(7), false).Return(nil)
		repo.On("FindByID", ctx, int64(7)).Return((*Farmer)(nil), errors.New("connection reset"))

		assert.NoError(t, svc.DeactivateFarmer(ctx, 7))
		pub.AssertNotCalled(t, "PublishFarmerUpdated", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for unknown farmers", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("SetActiveStatus", ctx, int64(99), false).Return(ErrNotFound)

		assert.ErrorIs(t, svc.DeactivateFarmer(ctx, 99), ErrNotFound)
	})
}

func TestUpdateFarmer(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only the provided fields", func(t *testing.T) {
		svc, repo, pub := newTestService()
		repo.On("FindByID", ctx, int64(7)).
			Return(&Farmer{FarmerID: 7, Name: "Asha Devi", Phone: "9800000001", Address: "Ward 4", Active: true}, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(f *Farmer) bool {
			return f.Name == "Asha Kumari" && f.Phone == "9800000001"
		})).Return(nil)
		pub.On("PublishFarmerUpdated", ctx, mock.AnythingOfType("event.FarmerUpdatedEvent")).Return(nil)

		assert.NoError(t, svc.UpdateFarmer(ctx, 7, "Asha Kumari", "", ""))
		repo.AssertExpectations(t)
	})

	t.Run("rejects an update with nothing to change", func(t *testing.T) {
		svc, repo, _ := newTestService()

		err := svc.UpdateFarmer(ctx, 7, "", "", "")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("surfaces a phone conflict from storage", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindByID", ctx, int64(7)).
			Return(&Farmer{FarmerID: 7, Name: "Asha Devi", Active: true}, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*farmer.Farmer")).Return(ErrDuplicatePhone)

		assert.ErrorIs(t, svc.UpdateFarmer(ctx, 7, "", "9800000002", ""), ErrDuplicatePhone)
	})
}
