package domain

import "github.com/shopspring/decimal"

// Snapshot is the full ledger state exchanged with the persistence layer.
type Snapshot struct {
	Users    []*User
	Vehicles []*Vehicle
	Rentals  []*Rental
}

// Report is the admin dashboard summary.
type Report struct {
	TotalRentals      int             `json:"total_rentals"`
	ActiveRentals     int             `json:"active_rentals"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	Customers         int             `json:"customers"`
	Vehicles          int             `json:"vehicles"`
	AvailableVehicles int             `json:"available_vehicles"`
}
