package http

import (
	"carrental-backend/internal/domain"
	"carrental-backend/internal/utils"
)

type UserResponse struct {
	Username        string   `json:"username"`
	Role            string   `json:"role"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Address         string   `json:"address"`
	Balance         string   `json:"balance"`
	CurrentRentalID *string  `json:"current_rental,omitempty"`
	RentalHistory   []string `json:"rental_history,omitempty"`
}

type VehicleResponse struct {
	Type         string   `json:"type"`
	VIN          string   `json:"vin"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	DailyRate    string   `json:"daily_rate"`
	Seating      int      `json:"seating"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuel_type"`
	IsAvailable  bool     `json:"is_available"`
	TrunkSpace   *float64 `json:"trunk_space,omitempty"`
	Mileage      *float64 `json:"mileage,omitempty"`
}

type RentalResponse struct {
	ID           string `json:"id"`
	User         string `json:"user"`
	Vehicle      string `json:"vehicle"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
	DailyRate    string `json:"daily_rate"`
	TotalCost    string `json:"total_cost"`
}

type ReportResponse struct {
	TotalRentals      int    `json:"total_rentals"`
	ActiveRentals     int    `json:"active_rentals"`
	TotalRevenue      string `json:"total_revenue"`
	Customers         int    `json:"customers"`
	Vehicles          int    `json:"vehicles"`
	AvailableVehicles int    `json:"available_vehicles"`
}

func MapDomainUserToResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		Username:  u.Username,
		Role:      string(u.Role),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Balance:   utils.FormatMoney(u.Balance()),
	}
	if u.IsCustomer() {
		if u.Account.CurrentRentalID != "" {
			id := u.Account.CurrentRentalID
			resp.CurrentRentalID = &id
		}
		resp.RentalHistory = u.Account.RentalHistory
	}
	return resp
}

func MapDomainVehicleToResponse(v *domain.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		Type:         string(v.Kind),
		VIN:          v.ID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		DailyRate:    utils.FormatMoney(v.DailyRate),
		Seating:      v.Seating,
		Transmission: v.Transmission,
		FuelType:     v.FuelType,
		IsAvailable:  v.IsAvailable,
	}
	if v.Car != nil {
		trunk, mileage := v.Car.TrunkSpace, v.Car.Mileage
		resp.TrunkSpace = &trunk
		resp.Mileage = &mileage
	}
	return resp
}

func MapDomainVehiclesToResponse(vehicles []*domain.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		out[i] = MapDomainVehicleToResponse(v)
	}
	return out
}

func MapDomainRentalToResponse(r *domain.Rental) RentalResponse {
	return RentalResponse{
		ID:           r.ID,
		User:         r.Username,
		Vehicle:      r.VehicleID,
		StartDate:    utils.FormatDate(r.StartDate),
		EndDate:      utils.FormatDate(r.EndDate),
		DurationDays: r.DurationDays(),
		DailyRate:    utils.FormatMoney(r.DailyRate),
		TotalCost:    utils.FormatMoney(r.TotalCost()),
	}
}

func MapDomainRentalsToResponse(rentals []*domain.Rental) []RentalResponse {
	out := make([]RentalResponse, len(rentals))
	for i, r := range rentals {
		out[i] = MapDomainRentalToResponse(r)
	}
	return out
}

func MapDomainReportToResponse(r *domain.Report) ReportResponse {
	return ReportResponse{
		TotalRentals:      r.TotalRentals,
		ActiveRentals:     r.ActiveRentals,
		TotalRevenue:      utils.FormatMoney(r.TotalRevenue),
		Customers:         r.Customers,
		Vehicles:          r.Vehicles,
		AvailableVehicles: r.AvailableVehicles,
	}
}
