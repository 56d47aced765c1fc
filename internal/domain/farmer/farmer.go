package farmer

import "time"

type Farmer struct {
	FarmerID  int64     `json:"farmerId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	POCID     *int64    `json:"pocId,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewFarmer(name, phone, address string) *Farmer {
	now := time.Now()
	return &Farmer{
		Name:      name,
		Phone:     phone,
		Address:   address,
		POCID:     nil,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (f *Farmer) AssignPOC(pocID int64) {
	f.POCID = &pocID
	f.UpdatedAt = time.Now()
}

func (f *Farmer) Deactivate() {
	if f.Active {
		f.Active = false
		f.UpdatedAt = time.Now()
	}
}

func (f *Farmer) Reactivate() {
	if !f.Active {
		f.Active = true
		f.UpdatedAt = time.Now()
	}
}
