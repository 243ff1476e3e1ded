package service

import (
	"context"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
)

// ListActiveRentals returns the rentals customers currently hold
func (s *RentalSystem) ListActiveRentals(ctx context.Context) ([]*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRentals(s.activeRentals()), nil
}

// CurrentRental returns the rental username holds, or nil when there is none
func (s *RentalSystem) CurrentRental(ctx context.Context, username string) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.findCustomer(username)
	if err != nil {
		return nil, err
	}
	if !user.HasActiveRental() {
		return nil, nil
	}
	r := s.findRental(user.Account.CurrentRentalID)
	if r == nil {
		return nil, domain.DatabaseError("Invalid rental reference", nil)
	}
	return r.Clone(), nil
}

// RentalHistory returns the completed rentals of username, oldest first
func (s *RentalSystem) RentalHistory(ctx context.Context, username string) ([]*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.findCustomer(username)
	if err != nil {
		return nil, err
	}
	history := make([]*domain.Rental, 0, len(user.Account.RentalHistory))
	for _, id := range user.Account.RentalHistory {
		r := s.findRental(id)
		if r == nil {
			return nil, domain.DatabaseError("Invalid rental reference", nil)
		}
		history = append(history, r.Clone())
	}
	return history, nil
}

// Report summarises the ledger. Revenue counts every rental ever made.
func (s *RentalSystem) Report(ctx context.Context) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &domain.Report{
		TotalRentals:  len(s.rentals),
		ActiveRentals: len(s.activeRentals()),
		TotalRevenue:  decimal.Zero,
		Vehicles:      len(s.vehicles),
	}
	for _, r := range s.rentals {
		report.TotalRevenue = report.TotalRevenue.Add(r.TotalCost())
	}
	for _, u := range s.users {
		if u.IsCustomer() {
			report.Customers++
		}
	}
	for _, v := range s.vehicles {
		if v.IsAvailable {
			report.AvailableVehicles++
		}
	}
	return report, nil
}

// AuditAvailability returns the ids of vehicles whose availability flag
// disagrees with the current rentals.
func (s *RentalSystem) AuditAvailability(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rented := make(map[string]bool)
	for _, r := range s.activeRentals() {
		rented[r.VehicleID] = true
	}
	mismatched := []string{}
	for _, v := range s.vehicles {
		if v.IsAvailable == rented[v.ID] {
			mismatched = append(mismatched, v.ID)
		}
	}
	return mismatched, nil
}
