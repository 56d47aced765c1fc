package dto

import (
	"dairycollect/internal/domain/poc"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type CreatePOCRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

func (r *CreatePOCRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("location cannot be empty")
	}
	return nil
}

// UpdatePOCRequest carries a full replacement of the mutable POC fields.
type UpdatePOCRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

func (r *UpdatePOCRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("location cannot be empty")
	}
	return nil
}

type AssignDiaryRequest struct {
	DiaryID int64 `json:"diaryId"`
}

func (r *AssignDiaryRequest) Validate() error {
	if r.DiaryID <= 0 {
		return fmt.Errorf("diaryId must be a positive number")
	}
	return nil
}

type POCResponse struct {
	POCID     string    `json:"pocId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	DiaryID   *string   `json:"diaryId,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewPOCResponse(p *poc.POC) POCResponse {
	if p == nil {
		return POCResponse{}
	}

	var diaryIDStr *string
	if p.DiaryID != nil {
		s := strconv.FormatInt(*p.DiaryID, 10)
		diaryIDStr = &s
	}

	return POCResponse{
		POCID:     strconv.FormatInt(p.POCID, 10),
		Name:      p.Name,
		Phone:     p.Phone,
		Location:  p.Location,
		DiaryID:   diaryIDStr,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type CreateDiaryRequest struct {
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	CapacityLiters float64 `json:"capacityLiters"`
}

func (r *CreateDiaryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("location cannot be empty")
	}
	if r.CapacityLiters <= 0 {
		return fmt.Errorf("capacityLiters must be greater than zero")
	}
	return nil
}

type UpdateDiaryRequest struct {
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	CapacityLiters float64 `json:"capacityLiters"`
}

func (r *UpdateDiaryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("location cannot be empty")
	}
	if r.CapacityLiters <= 0 {
		return fmt.Errorf("capacityLiters must be greater than zero")
	}
	return nil
}

type DiaryResponse struct {
	DiaryID        string    `json:"diaryId"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	CapacityLiters float64   `json:"capacityLiters"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewDiaryResponse(d *poc.Diary) DiaryResponse {
	if d == nil {
		return DiaryResponse{}
	}

	return DiaryResponse{
		DiaryID:        strconv.FormatInt(d.DiaryID, 10),
		Name:           d.Name,
		Location:       d.Location,
		CapacityLiters: d.CapacityLiters,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
