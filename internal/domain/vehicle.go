package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type VehicleKind string

const (
	VehicleKindVehicle VehicleKind = "Vehicle"
	VehicleKindCar     VehicleKind = "Car"
)

const (
	DefaultTrunkSpace = 12.5
	DefaultMileage    = 0.0
)

type Vehicle struct {
	Kind         VehicleKind     `json:"type"`
	ID           string          `json:"vin"` // VIN or license plate
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	Seating      int             `json:"seating"`
	Transmission string          `json:"transmission"`
	FuelType     string          `json:"fuel_type"`
	IsAvailable  bool            `json:"is_available"`
	Car          *CarDetails     `json:"car,omitempty"` // set only for VehicleKindCar
}

type CarDetails struct {
	TrunkSpace float64 `json:"trunk_space"`
	Mileage    float64 `json:"mileage"`
}

func (v *Vehicle) IsCar() bool {
	return v.Kind == VehicleKindCar
}

// Clone returns a deep copy of v
func (v *Vehicle) Clone() *Vehicle {
	c := *v
	if v.Car != nil {
		car := *v.Car
		c.Car = &car
	}
	return &c
}

// SortByDailyRate orders vehicles from cheapest to most expensive, keeping
// insertion order between equal rates.
func SortByDailyRate(vehicles []*Vehicle) {
	slices.SortStableFunc(vehicles, func(a, b *Vehicle) int {
		return a.DailyRate.Cmp(b.DailyRate)
	})
}
