package models

import "encoding/json"

type AvailabilityStatus string

const (
	StatusAvailable              AvailabilityStatus = "available"
	StatusOutOfStock             AvailabilityStatus = "out-of-stock"
	StatusSeasonal               AvailabilityStatus = "seasonal"
	StatusTemporarilyUnavailable AvailabilityStatus = "temporarily-unavailable"
)

type MenuItem struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	Price              float64            `json:"price"`
	Description        string             `json:"description"`
	Category           string             `json:"category"`
	Available          bool               `json:"available"`
	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus"`
	UnavailableReason  string             `json:"unavailableReason"`
	EstimatedBackDate  string             `json:"estimatedBackDate"`
	IsSpicy            bool               `json:"isSpicy"`
	IsVegetarian       bool               `json:"isVegetarian"`
	Allergens          string             `json:"allergens"`
	PreparationTime    string             `json:"preparationTime"`
	Image              string             `json:"image"`
}

// UnmarshalJSON treats a missing "available" key as available.
func (m *MenuItem) UnmarshalJSON(data []byte) error {
	type menuItem MenuItem
	item := menuItem{Available: true}
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*m = MenuItem(item)
	return nil
}
