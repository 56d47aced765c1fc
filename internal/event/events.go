package event

import (
	"context"
	"time"
)

type FarmerEventPayload struct {
	FarmerID  int64     `json:"farmerId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	POCID     *int64    `json:"pocId,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FarmerRegisteredEvent struct {
	Timestamp time.Time          `json:"timestamp"`
	Payload   FarmerEventPayload `json:"payload"`
	SMS       *SMSNotification   `json:"sms,omitempty"`
}

type FarmerUpdatedEvent struct {
	Timestamp time.Time          `json:"timestamp"`
	Payload   FarmerEventPayload `json:"payload"`
}

type MilkReviewedEvent struct {
	Timestamp    time.Time        `json:"timestamp"`
	SubmissionID int64            `json:"submissionId"`
	FarmerID     int64            `json:"farmerId"`
	AmountLiters float64          `json:"amountLiters"`
	Outcome      string           `json:"outcome"`
	SMS          *SMSNotification `json:"sms,omitempty"`
}

type PaymentBookedEvent struct {
	Timestamp  time.Time        `json:"timestamp"`
	PaymentID  int64            `json:"paymentId"`
	FarmerID   int64            `json:"farmerId"`
	Reference  string           `json:"reference"`
	MilkLiters float64          `json:"milkLiters"`
	Amount     float64          `json:"amount"`
	CycleStart time.Time        `json:"cycleStart"`
	CycleEnd   time.Time        `json:"cycleEnd"`
	SMS        *SMSNotification `json:"sms,omitempty"`
}

type LoanDecidedEvent struct {
	Timestamp time.Time        `json:"timestamp"`
	LoanID    int64            `json:"loanId"`
	FarmerID  int64            `json:"farmerId"`
	Amount    float64          `json:"amount"`
	NewStatus string           `json:"newStatus"`
	SMS       *SMSNotification `json:"sms,omitempty"`
}

// SMSNotification carries a rendered message for the downstream notifier.
type SMSNotification struct {
	MessageID string `json:"messageId"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

type EventPublisher interface {
	PublishFarmerRegistered(ctx context.Context, event FarmerRegisteredEvent) error
	PublishFarmerUpdated(ctx context.Context, event FarmerUpdatedEvent) error
	PublishMilkReviewed(ctx context.Context, event MilkReviewedEvent) error
	PublishPaymentBooked(ctx context.Context, event PaymentBookedEvent) error
	PublishLoanDecided(ctx context.Context, event LoanDecidedEvent) error
}

// NoopEventPublisher discards every event. It stands in for the RabbitMQ
// publisher when the broker connection could not be established, so domain
// services never have to nil-check their publisher.
type NoopEventPublisher struct{}

var _ EventPublisher = NoopEventPublisher{}

func (NoopEventPublisher) PublishFarmerRegistered(context.Context, FarmerRegisteredEvent) error {
	return nil
}
func (NoopEventPublisher) PublishFarmerUpdated(context.Context, FarmerUpdatedEvent) error {
	return nil
}
func (NoopEventPublisher) PublishMilkReviewed(context.Context, MilkReviewedEvent) error {
	return nil
}
func (NoopEventPublisher) PublishPaymentBooked(context.Context, PaymentBookedEvent) error {
	return nil
}
func (NoopEventPublisher) PublishLoanDecided(context.Context, LoanDecidedEvent) error {
	return nil
}
