package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/config"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

// MockLedger stubs the calls jobs make; any other method panics.
type MockLedger struct {
	service.CarRentalService
	mock.Mock
}

func (m *MockLedger) Save(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLedger) AuditAvailability(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedger) Report(ctx context.Context) (*domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func TestAutosave(t *testing.T) {
	t.Run("Saves ledger", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Save", mock.Anything).Return(nil).Once()

		NewJobRunner(ledger, &config.Config{}).Autosave()
		ledger.AssertExpectations(t)
	})

	t.Run("Save failure is contained", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Save", mock.Anything).Return(errors.New("disk full")).Once()

		assert.NotPanics(t, NewJobRunner(ledger, &config.Config{}).Autosave)
		ledger.AssertExpectations(t)
	})
}

func TestAuditAvailability(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("AuditAvailability", mock.Anything).Return([]string{"V1", "V9"}, nil).Once()

	NewJobRunner(ledger, &config.Config{}).AuditAvailability()
	ledger.AssertExpectations(t)
}

func TestLogReport(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("Report", mock.Anything).Return(&domain.Report{
		TotalRentals:      3,
		ActiveRentals:     1,
		TotalRevenue:      decimal.RequireFromString("351.00"),
		Customers:         2,
		Vehicles:          2,
		AvailableVehicles: 1,
	}, nil).Once()

	NewJobRunner(ledger, &config.Config{}).LogReport()
	ledger.AssertExpectations(t)
}

func TestRunWithRecovery(t *testing.T) {
	jr := NewJobRunner(new(MockLedger), &config.Config{})

	assert.NotPanics(t, func() {
		jr.runWithRecovery("Exploding", func(ctx context.Context) {
			panic("boom")
		})
	})

	var sawDeadline bool
	jr.runWithRecovery("Deadline", func(ctx context.Context) {
		_, sawDeadline = ctx.Deadline()
	})
	assert.True(t, sawDeadline)
}

func TestRunAll(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("AuditAvailability", mock.Anything).Return([]string{}, nil).Once()
	ledger.On("Report", mock.Anything).Return(nil, errors.New("unavailable")).Once()
	ledger.On("Save", mock.Anything).Return(nil).Once()

	NewJobRunner(ledger, &config.Config{}).RunAll()
	ledger.AssertExpectations(t)
}
