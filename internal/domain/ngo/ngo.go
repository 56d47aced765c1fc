package ngo

import "time"

// NGO is a partner organization that monitors collection activity in a region.
type NGO struct {
	NGOID     int64     `json:"ngoId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Region    string    `json:"region"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewNGO(name, phone, region string) *NGO {
	now := time.Now()
	return &NGO{
		Name:      name,
		Phone:     phone,
		Region:    region,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ActivityReport aggregates collection activity over a reporting period.
type ActivityReport struct {
	Region         string    `json:"region"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	TotalFarmers   int64     `json:"totalFarmers"`
	AcceptedLiters float64   `json:"acceptedLiters"`
	PaymentsBooked int64     `json:"paymentsBooked"`
	PaymentsAmount float64   `json:"paymentsAmount"`
	GeneratedAt    time.Time `json:"generatedAt"`
}
