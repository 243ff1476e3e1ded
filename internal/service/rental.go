package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/utils"
)

// RentVehicle books vehicleID for username between startDate and endDate and
// charges the full cost up front. Nothing changes when a check fails.
func (s *RentalSystem) RentVehicle(ctx context.Context, username, vehicleID string, startDate, endDate time.Time) (*domain.Rental, error) {
	const method = "RentalSystem.RentVehicle"
	logger.EnterMethod(method, "username", username, "vehicle_id", vehicleID,
		"start_date", utils.FormatDate(startDate), "end_date", utils.FormatDate(endDate))

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.findCustomer(username)
	if err != nil {
		return nil, fail(method, err, "username", username)
	}
	vehicle := s.findVehicle(vehicleID)
	if vehicle == nil || !vehicle.IsAvailable {
		return nil, fail(method, domain.VehicleNotAvailable(vehicleID), "username", username, "vehicle_id", vehicleID)
	}
	if user.HasActiveRental() {
		return nil, fail(method, domain.ActiveRentalExists(username), "username", username, "vehicle_id", vehicleID)
	}

	rental, err := domain.NewRental(username, vehicle, startDate, endDate)
	if err != nil {
		return nil, fail(method, err, "username", username, "vehicle_id", vehicleID)
	}

	// Debit is the only check left and it leaves the balance alone on failure
	if err := user.Debit(rental.TotalCost()); err != nil {
		return nil, fail(method, err, "username", username, "vehicle_id", vehicleID)
	}
	vehicle.IsAvailable = false
	user.Account.CurrentRentalID = rental.ID
	s.rentals = append(s.rentals, rental)

	logger.Info("Vehicle rented", "username", username, "vehicle_id", vehicleID, "rental_id", rental.ID,
		"days", rental.DurationDays(), "cost", utils.FormatMoney(rental.TotalCost()),
		"balance", utils.FormatMoney(user.Account.Balance))
	logger.ExitMethod(method, "rental_id", rental.ID)
	return rental.Clone(), nil
}

// ReturnVehicle closes the current rental of username and frees its vehicle.
// The closed rental is returned.
func (s *RentalSystem) ReturnVehicle(ctx context.Context, username string) (*domain.Rental, error) {
	const method = "RentalSystem.ReturnVehicle"
	logger.EnterMethod(method, "username", username)

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.findCustomer(username)
	if err != nil {
		return nil, fail(method, err, "username", username)
	}
	if !user.HasActiveRental() {
		return nil, fail(method, domain.NoActiveRental(username), "username", username)
	}

	rental := s.findRental(user.Account.CurrentRentalID)
	if rental == nil {
		// Loading resolves every current rental, so this is a broken ledger
		return nil, fail(method, domain.DatabaseError("Invalid rental reference", nil), "username", username,
			"rental_id", user.Account.CurrentRentalID)
	}

	user.Account.RentalHistory = append(user.Account.RentalHistory, rental.ID)
	user.Account.CurrentRentalID = ""
	if vehicle := s.findVehicle(rental.VehicleID); vehicle != nil {
		vehicle.IsAvailable = true
	}

	logger.Info("Vehicle returned", "username", username, "vehicle_id", rental.VehicleID, "rental_id", rental.ID)
	logger.ExitMethod(method, "rental_id", rental.ID)
	return rental.Clone(), nil
}
