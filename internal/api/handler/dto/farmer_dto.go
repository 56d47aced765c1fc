package dto

import (
	"dairycollect/internal/domain/farmer"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type RegisterFarmerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (r *RegisterFarmerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("address cannot be empty")
	}

	return nil
}

type UpdateFarmerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (r *UpdateFarmerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("address cannot be empty")
	}
	return nil
}

type AssignPOCRequest struct {
	POCID int64 `json:"pocId"`
}

func (r *AssignPOCRequest) Validate() error {
	if r.POCID <= 0 {
		return fmt.Errorf("pocId must be a positive number")
	}
	return nil
}

type FarmerResponse struct {
	FarmerID  string    `json:"farmerId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	POCID     *string   `json:"pocId,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewFarmerResponse(f *farmer.Farmer) FarmerResponse {
	if f == nil {

		return FarmerResponse{}
	}

	var pocIDStr *string

	if f.POCID != nil {
		s := strconv.FormatInt(*f.POCID, 10)
		pocIDStr = &s
	}

	return FarmerResponse{
		FarmerID:  strconv.FormatInt(f.FarmerID, 10),
		Name:      f.Name,
		Phone:     f.Phone,
		Address:   f.Address,
		POCID:     pocIDStr,
		Active:    f.Active,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
