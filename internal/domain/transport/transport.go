package transport

import "time"

// Transport is a vehicle/driver pairing that moves milk from collection
// points to a diary center.
type Transport struct {
	TransportID   int64     `json:"transportId"`
	DriverName    string    `json:"driverName"`
	Phone         string    `json:"phone"`
	VehicleNumber string    `json:"vehicleNumber"`
	DiaryID       *int64    `json:"diaryId,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewTransport(driverName, phone, vehicleNumber string) *Transport {
	now := time.Now()
	return &Transport{
		DriverName:    driverName,
		Phone:         phone,
		VehicleNumber: vehicleNumber,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
