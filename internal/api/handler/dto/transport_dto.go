package dto

import (
	"dairycollect/internal/domain/transport"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type CreateTransportRequest struct {
	DriverName    string `json:"driverName"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
}

func (r *CreateTransportRequest) Validate() error {
	if strings.TrimSpace(r.DriverName) == "" {
		return fmt.Errorf("driverName cannot be empty")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(r.VehicleNumber) == "" {
		return fmt.Errorf("vehicleNumber cannot be empty")
	}
	return nil
}

type UpdateTransportRequest struct {
	DriverName    string `json:"driverName"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
}

func (r *UpdateTransportRequest) Validate() error {
	if strings.TrimSpace(r.DriverName) == "" {
		return fmt.Errorf("driverName cannot be empty")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(r.VehicleNumber) == "" {
		return fmt.Errorf("vehicleNumber cannot be empty")
	}
	return nil
}

type TransportResponse struct {
	TransportID   string    `json:"transportId"`
	DriverName    string    `json:"driverName"`
	Phone         string    `json:"phone"`
	VehicleNumber string    `json:"vehicleNumber"`
	DiaryID       *string   `json:"diaryId,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewTransportResponse(t *transport.Transport) TransportResponse {
	if t == nil {
		return TransportResponse{}
	}

	var diaryIDStr *string
	if t.DiaryID != nil {
		s := strconv.FormatInt(*t.DiaryID, 10)
		diaryIDStr = &s
	}

	return TransportResponse{
		TransportID:   strconv.FormatInt(t.TransportID, 10),
		DriverName:    t.DriverName,
		Phone:         t.Phone,
		VehicleNumber: t.VehicleNumber,
		DiaryID:       diaryIDStr,
		Active:        t.Active,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
