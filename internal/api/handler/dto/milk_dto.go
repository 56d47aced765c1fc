package dto

import (
	"dairycollect/internal/domain/milk"
	"fmt"
	"strconv"
	"time"
)

type SubmitMilkRequest struct {
	FarmerID     int64   `json:"farmerId"`
	POCID        *int64  `json:"pocId,omitempty"`
	AmountLiters float64 `json:"amountLiters"`
	Notes        string  `json:"notes,omitempty"`
}

func (r *SubmitMilkRequest) Validate() error {
	if r.FarmerID <= 0 {
		return fmt.Errorf("farmerId must be a positive number")
	}
	if r.AmountLiters <= 0 {
		return fmt.Errorf("amountLiters must be greater than zero")
	}
	if r.POCID != nil && *r.POCID <= 0 {
		return fmt.Errorf("pocId must be a positive number when provided")
	}
	return nil
}

type ReviewSubmissionRequest struct {
	Outcome string `json:"outcome"`
}

func (r *ReviewSubmissionRequest) Validate() error {
	if r.Outcome != string(milk.StatusAccepted) && r.Outcome != string(milk.StatusRejected) {
		return fmt.Errorf("outcome must be accepted or rejected")
	}
	return nil
}

type SubmissionResponse struct {
	ID           string    `json:"id"`
	FarmerID     string    `json:"farmerId"`
	POCID        *string   `json:"pocId,omitempty"`
	AmountLiters float64   `json:"amountLiters"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewSubmissionResponse(s *milk.Submission) SubmissionResponse {
	if s == nil {
		return SubmissionResponse{}
	}

	var pocIDStr *string
	if s.POCID != nil {
		str := strconv.FormatInt(*s.POCID, 10)
		pocIDStr = &str
	}

	return SubmissionResponse{
		ID:           strconv.FormatInt(s.ID, 10),
		FarmerID:     strconv.FormatInt(s.FarmerID, 10),
		POCID:        pocIDStr,
		AmountLiters: s.AmountLiters,
		Status:       string(s.Status),
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

type RecordProductionRequest struct {
	FarmerID      int64   `json:"farmerId"`
	Date          string  `json:"date"`
	MorningLiters float64 `json:"morningLiters"`
	EveningLiters float64 `json:"eveningLiters"`
	Notes         string  `json:"notes,omitempty"`
}

func (r *RecordProductionRequest) Validate() error {
	if r.FarmerID <= 0 {
		return fmt.Errorf("farmerId must be a positive number")
	}
	if r.MorningLiters < 0 || r.EveningLiters < 0 {
		return fmt.Errorf("production liters cannot be negative")
	}
	if _, err := time.Parse(time.RFC3339[:10], r.Date); err != nil || r.Date == "" {
		return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}
	return nil
}

type ProductionResponse struct {
	ID            string    `json:"id"`
	FarmerID      string    `json:"farmerId"`
	Date          string    `json:"date"`
	MorningLiters float64   `json:"morningLiters"`
	EveningLiters float64   `json:"eveningLiters"`
	TotalLiters   float64   `json:"totalLiters"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewProductionResponse(p *milk.Production) ProductionResponse {
	if p == nil {
		return ProductionResponse{}
	}

	return ProductionResponse{
		ID:            strconv.FormatInt(p.ID, 10),
		FarmerID:      strconv.FormatInt(p.FarmerID, 10),
		Date:          p.Date.Format(time.RFC3339[:10]),
		MorningLiters: p.MorningLiters,
		EveningLiters: p.EveningLiters,
		TotalLiters:   p.TotalLiters(),
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}
