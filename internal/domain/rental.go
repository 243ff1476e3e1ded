package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carrental-backend/internal/utils"
)

// RentalStatus is derived, never stored: a rental is active while its
// customer references it as the current rental.
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
)

type Rental struct {
	ID        string    `json:"id"`
	Username  string    `json:"user"`
	VehicleID string    `json:"vehicle"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	// DailyRate is captured from the vehicle when the rental is created.
	DailyRate decimal.Decimal `json:"daily_rate"`
}

// NewRental builds a rental of vehicle for username with a fresh id.
func NewRental(username string, vehicle *Vehicle, startDate, endDate time.Time) (*Rental, error) {
	return newRental(uuid.New().String(), username, vehicle.ID, vehicle.DailyRate, startDate, endDate)
}

// RestoreRental rebuilds a persisted rental, re-checking the date order.
func RestoreRental(id, username, vehicleID string, dailyRate decimal.Decimal, startDate, endDate time.Time) (*Rental, error) {
	return newRental(id, username, vehicleID, dailyRate, startDate, endDate)
}

func newRental(id, username, vehicleID string, dailyRate decimal.Decimal, startDate, endDate time.Time) (*Rental, error) {
	if !endDate.After(startDate) {
		return nil, InvalidRentalDuration()
	}
	return &Rental{
		ID:        id,
		Username:  username,
		VehicleID: vehicleID,
		StartDate: startDate,
		EndDate:   endDate,
		DailyRate: dailyRate,
	}, nil
}

func (r *Rental) DurationDays() int {
	return utils.RentalDays(r.StartDate, r.EndDate)
}

func (r *Rental) TotalCost() decimal.Decimal {
	return utils.CalculateRentalCost(r.DailyRate, r.DurationDays())
}

func (r *Rental) Clone() *Rental {
	c := *r
	return &c
}
