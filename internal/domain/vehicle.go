package domain

import "time"

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
)

type Vehicle struct {
	ID               int32          `json:"id"`
	Slug             string         `json:"slug"`
	Name             string         `json:"name"`
	Category         string         `json:"category"`
	PricePerDayCents int64          `json:"price_per_day"`
	Seats            int32          `json:"seats"`
	Transmission     Transmission   `json:"transmission"`
	FuelType         FuelType       `json:"fuel_type"`
	MinDays          int32          `json:"min_days"`
	Available        bool           `json:"available"`
	Features         []string       `json:"features"`
	Images           []VehicleImage `json:"images,omitempty"`
	CreatedOn        time.Time      `json:"created_on"`
	UpdatedOn        time.Time      `json:"updated_on"`
}

type VehicleImage struct {
	ID         int32  `json:"id"`
	VehicleID  int32  `json:"vehicle_id"`
	StorageKey string `json:"-"`
	URL        string `json:"url"`
	IsPrimary  bool   `json:"is_primary"`
}

// VehicleFilter narrows vehicle listings. Zero values mean "no filter".
type VehicleFilter struct {
	Category      string
	Transmission  string
	FuelType      string
	MaxPriceCents int64
	AvailableOnly bool
}
