package http

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockRentalService) Save(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockRentalService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockRentalService) EnsureDefaultAdmin(ctx context.Context, admin service.RegistrationInput) (bool, error) {
	args := m.Called(ctx, admin)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalService) Register(ctx context.Context, input service.RegistrationInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockRentalService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockRentalService) RentVehicle(ctx context.Context, username, vehicleID string, startDate, endDate time.Time) (*domain.Rental, error) {
	args := m.Called(ctx, username, vehicleID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ReturnVehicle(ctx context.Context, username string) (*domain.Rental, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) AddVehicle(ctx context.Context, input service.VehicleInput) (*domain.Vehicle, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockRentalService) RemoveVehicle(ctx context.Context, vehicleID string) error {
	return m.Called(ctx, vehicleID).Error(0)
}
func (m *MockRentalService) AddFunds(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, username, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRentalService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockRentalService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockRentalService) ListCustomers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.User), args.Error(1)
}
func (m *MockRentalService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}
func (m *MockRentalService) ListAvailableVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}
func (m *MockRentalService) ListReservedVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}
func (m *MockRentalService) ListActiveRentals(ctx context.Context) ([]*domain.Rental, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Rental), args.Error(1)
}
func (m *MockRentalService) CurrentRental(ctx context.Context, username string) (*domain.Rental, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) RentalHistory(ctx context.Context, username string) ([]*domain.Rental, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Report(ctx context.Context) (*domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
func (m *MockRentalService) AuditAvailability(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) RentalConfirmed(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, rental *domain.Rental) error {
	return m.Called(ctx, user, vehicle, rental).Error(0)
}
func (m *MockNotifier) VehicleReturned(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, rental *domain.Rental) error {
	return m.Called(ctx, user, vehicle, rental).Error(0)
}
