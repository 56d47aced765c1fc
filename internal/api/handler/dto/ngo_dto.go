package dto

import (
	"dairycollect/internal/domain/ngo"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CreateNGORequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Region string `json:"region"`
}

func (r *CreateNGORequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(r.Region) == "" {
		return fmt.Errorf("region cannot be empty")
	}
	return nil
}

type UpdateNGORequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Region string `json:"region"`
}

func (r *UpdateNGORequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(r.Region) == "" {
		return fmt.Errorf("region cannot be empty")
	}
	return nil
}

type NGOResponse struct {
	NGOID     string    `json:"ngoId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Region    string    `json:"region"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewNGOResponse(n *ngo.NGO) NGOResponse {
	if n == nil {
		return NGOResponse{}
	}

	return NGOResponse{
		NGOID:     strconv.FormatInt(n.NGOID, 10),
		Name:      n.Name,
		Phone:     n.Phone,
		Region:    n.Region,
		Active:    n.Active,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type ActivityReportResponse struct {
	Region         string    `json:"region"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	TotalFarmers   int64     `json:"totalFarmers"`
	AcceptedLiters float64   `json:"acceptedLiters"`
	PaymentsBooked int64     `json:"paymentsBooked"`
	PaymentsAmount string    `json:"paymentsAmount"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

func NewActivityReportResponse(r *ngo.ActivityReport) ActivityReportResponse {
	if r == nil {
		return ActivityReportResponse{}
	}

	return ActivityReportResponse{
		Region:         r.Region,
		From:           r.From,
		To:             r.To,
		TotalFarmers:   r.TotalFarmers,
		AcceptedLiters: r.AcceptedLiters,
		PaymentsBooked: r.PaymentsBooked,
		PaymentsAmount: decimal.NewFromFloat(r.PaymentsAmount).StringFixed(2),
		GeneratedAt:    r.GeneratedAt,
	}
}
