package poc

import "time"

// POC is a point of collection where farmers hand over milk.
type POC struct {
	POCID     int64     `json:"pocId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	DiaryID   *int64    `json:"diaryId,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewPOC(name, phone, location string) *POC {
	now := time.Now()
	return &POC{
		Name:      name,
		Phone:     phone,
		Location:  location,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Diary is a dairy collection center that POCs deliver into.
type Diary struct {
	DiaryID        int64     `json:"diaryId"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	CapacityLiters float64   `json:"capacityLiters"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
