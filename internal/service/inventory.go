package service

import (
	"context"
	"fmt"
	"slices"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/utils"
)

// AddVehicle validates input and appends a new, available vehicle
func (s *RentalSystem) AddVehicle(ctx context.Context, input VehicleInput) (*domain.Vehicle, error) {
	const method = "RentalSystem.AddVehicle"
	logger.EnterMethod(method, "vehicle_id", input.ID, "type", input.Kind)

	if err := s.validateVehicle(input); err != nil {
		return nil, fail(method, err, "vehicle_id", input.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findVehicle(input.ID) != nil {
		return nil, fail(method, domain.DuplicateVehicle(input.ID), "vehicle_id", input.ID)
	}

	vehicle := &domain.Vehicle{
		Kind:         input.Kind,
		ID:           input.ID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		DailyRate:    utils.RoundMoney(input.DailyRate),
		Seating:      input.Seating,
		Transmission: input.Transmission,
		FuelType:     input.FuelType,
		IsAvailable:  true,
	}
	if vehicle.IsCar() {
		vehicle.Car = &domain.CarDetails{TrunkSpace: domain.DefaultTrunkSpace, Mileage: domain.DefaultMileage}
		if input.TrunkSpace != nil {
			vehicle.Car.TrunkSpace = *input.TrunkSpace
		}
		if input.Mileage != nil {
			vehicle.Car.Mileage = *input.Mileage
		}
	}
	s.vehicles = append(s.vehicles, vehicle)

	logger.Info("Vehicle added", "vehicle_id", vehicle.ID, "type", vehicle.Kind, "daily_rate", utils.FormatMoney(vehicle.DailyRate))
	logger.ExitMethod(method, "vehicle_id", vehicle.ID)
	return vehicle.Clone(), nil
}

func (s *RentalSystem) validateVehicle(input VehicleInput) error {
	if err := s.validate.Struct(input); err != nil {
		return domain.InvalidVehicleData(err.Error())
	}
	if !utils.RoundMoney(input.DailyRate).IsPositive() {
		return domain.InvalidVehicleData("daily rate must be positive")
	}
	if (s.opts.MinYear != 0 && input.Year < s.opts.MinYear) || (s.opts.MaxYear != 0 && input.Year > s.opts.MaxYear) {
		return domain.InvalidVehicleData(fmt.Sprintf("year must be between %d and %d", s.opts.MinYear, s.opts.MaxYear))
	}
	return nil
}

// RemoveVehicle deletes an available vehicle that no rental refers to
func (s *RentalSystem) RemoveVehicle(ctx context.Context, vehicleID string) error {
	const method = "RentalSystem.RemoveVehicle"
	logger.EnterMethod(method, "vehicle_id", vehicleID)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.vehicles, func(v *domain.Vehicle) bool { return v.ID == vehicleID })
	if idx < 0 {
		return fail(method, domain.VehicleNotFound(vehicleID), "vehicle_id", vehicleID)
	}
	if !s.vehicles[idx].IsAvailable {
		return fail(method, domain.VehicleNotAvailable(vehicleID), "vehicle_id", vehicleID)
	}
	if slices.ContainsFunc(s.rentals, func(r *domain.Rental) bool { return r.VehicleID == vehicleID }) {
		return fail(method, domain.VehicleInUse(vehicleID), "vehicle_id", vehicleID)
	}

	s.vehicles = slices.Delete(s.vehicles, idx, idx+1)

	logger.Info("Vehicle removed", "vehicle_id", vehicleID)
	logger.ExitMethod(method, "vehicle_id", vehicleID)
	return nil
}

func (s *RentalSystem) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.findVehicle(vehicleID)
	if v == nil {
		return nil, domain.VehicleNotFound(vehicleID)
	}
	return v.Clone(), nil
}

// ListVehicles returns every vehicle in insertion order
func (s *RentalSystem) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneVehicles(s.vehicles, nil), nil
}

func (s *RentalSystem) ListAvailableVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneVehicles(s.vehicles, func(v *domain.Vehicle) bool { return v.IsAvailable }), nil
}

// ListReservedVehicles returns the vehicles currently rented out
func (s *RentalSystem) ListReservedVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneVehicles(s.vehicles, func(v *domain.Vehicle) bool { return !v.IsAvailable }), nil
}
