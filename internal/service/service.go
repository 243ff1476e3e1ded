package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
)

// CarRentalService is the rental ledger as seen by its front ends
type CarRentalService interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Shutdown(ctx context.Context) error
	EnsureDefaultAdmin(ctx context.Context, admin RegistrationInput) (bool, error)

	Register(ctx context.Context, input RegistrationInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	RentVehicle(ctx context.Context, username, vehicleID string, startDate, endDate time.Time) (*domain.Rental, error)
	ReturnVehicle(ctx context.Context, username string) (*domain.Rental, error)

	AddVehicle(ctx context.Context, input VehicleInput) (*domain.Vehicle, error)
	RemoveVehicle(ctx context.Context, vehicleID string) error

	AddFunds(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error)

	GetUser(ctx context.Context, username string) (*domain.User, error)
	GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListCustomers(ctx context.Context) ([]*domain.User, error)
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	ListAvailableVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	ListReservedVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	ListActiveRentals(ctx context.Context) ([]*domain.Rental, error)
	CurrentRental(ctx context.Context, username string) (*domain.Rental, error)
	RentalHistory(ctx context.Context, username string) ([]*domain.Rental, error)
	Report(ctx context.Context) (*domain.Report, error)
	AuditAvailability(ctx context.Context) ([]string, error)
}

// Notifier sends rental receipts to customers
type Notifier interface {
	RentalConfirmed(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, rental *domain.Rental) error
	VehicleReturned(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, rental *domain.Rental) error
}

// RegistrationInput is the data needed to create a user.
// A RegistrationCode equal to the admin secret creates an admin.
type RegistrationInput struct {
	Username         string `json:"username" validate:"required,max=64,printascii"`
	Password         string `json:"password" validate:"required,max=128"`
	FirstName        string `json:"first_name" validate:"max=100"`
	LastName         string `json:"last_name" validate:"max=100"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone" validate:"max=32"`
	Address          string `json:"address" validate:"max=255"`
	RegistrationCode string `json:"registration_code,omitempty"`
}

// VehicleInput is the data needed to add a vehicle to the inventory.
// Car details apply only when Kind is Car; nil values take the defaults.
type VehicleInput struct {
	Kind         domain.VehicleKind `json:"type" validate:"required,oneof=Vehicle Car"`
	ID           string             `json:"vin" validate:"required,max=64"`
	Make         string             `json:"make" validate:"required,max=100"`
	Model        string             `json:"model" validate:"required,max=100"`
	Year         int                `json:"year" validate:"required"`
	DailyRate    decimal.Decimal    `json:"daily_rate"`
	Seating      int                `json:"seating" validate:"min=1,max=100"`
	Transmission string             `json:"transmission" validate:"max=50"`
	FuelType     string             `json:"fuel_type" validate:"max=50"`
	TrunkSpace   *float64           `json:"trunk_space,omitempty" validate:"omitempty,min=0"`
	Mileage      *float64           `json:"mileage,omitempty" validate:"omitempty,min=0"`
}
