package milk

import (
	"dairycollect/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSubmission(t *testing.T) {
	t.Run("should create a pending submission", func(t *testing.T) {
		pocID := int64(3)
		sub, err := NewSubmission(7, &pocID, 12.5, "morning batch")
		assert.NoError(t, err)
		assert.NotNil(t, sub)
		assert.Equal(t, int64(7), sub.FarmerID)
		assert.Equal(t, &pocID, sub.POCID)
		assert.Equal(t, 12.5, sub.AmountLiters)
		assert.Equal(t, StatusPending, sub.Status)
	})

	t.Run("collection point is optional", func(t *testing.T) {
		sub, err := NewSubmission(7, nil, 5.0, "")
		assert.NoError(t, err)
		assert.Nil(t, sub.POCID)
	})

	t.Run("should reject non-positive volume", func(t *testing.T) {
		_, err := NewSubmission(7, nil, 0, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		_, err = NewSubmission(7, nil, -1.5, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("should reject invalid farmer ID", func(t *testing.T) {
		_, err := NewSubmission(0, nil, 10, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestReview(t *testing.T) {
	newPending := func() *Submission {
		sub, err := NewSubmission(7, nil, 10, "")
		assert.NoError(t, err)
		return sub
	}

	t.Run("pending submission can be accepted", func(t *testing.T) {
		sub := newPending()
		assert.NoError(t, sub.Review(StatusAccepted))
		assert.Equal(t, StatusAccepted, sub.Status)
	})

	t.Run("pending submission can be rejected", func(t *testing.T) {
		sub := newPending()
		assert.NoError(t, sub.Review(StatusRejected))
		assert.Equal(t, StatusRejected, sub.Status)
	})

	t.Run("accepted is terminal", func(t *testing.T) {
		sub := newPending()
		assert.NoError(t, sub.Review(StatusAccepted))
		err := sub.Review(StatusRejected)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
		assert.Equal(t, StatusAccepted, sub.Status)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		sub := newPending()
		assert.NoError(t, sub.Review(StatusRejected))
		assert.ErrorIs(t, sub.Review(StatusAccepted), apperrors.ErrInvalidStatusTransition)
	})

	t.Run("pending is not a valid review outcome", func(t *testing.T) {
		sub := newPending()
		err := sub.Review(StatusPending)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		assert.Equal(t, StatusPending, sub.Status)
	})
}

func TestProductionTotalLiters(t *testing.T) {
	p := &Production{MorningLiters: 6.5, EveningLiters: 4.0}
	assert.InDelta(t, 10.5, p.TotalLiters(), 0.001)
}
