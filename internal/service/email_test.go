package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
)

func receiptFixture(t *testing.T) (*domain.User, *domain.Vehicle, *domain.Rental) {
	t.Helper()
	snap := ledgerFixture()
	user, vehicle := snap.Users[0], snap.Vehicles[0]
	rental, err := domain.NewRental(user.Username, vehicle, day(0), day(2))
	require.NoError(t, err)
	return user, vehicle, rental
}

func TestSendGridNotifier_RentalConfirmed(t *testing.T) {
	ctx := context.Background()
	user, vehicle, rental := receiptFixture(t)

	client := new(MockMailSender)
	client.On("SendWithContext", ctx, mock.MatchedBy(func(m *mail.SGMailV3) bool {
		return m.From.Address == "noreply@rentals.example" &&
			m.Subject == "Rental confirmed: Toyota Corolla" &&
			m.Personalizations[0].To[0].Address == "alice@example.com"
	})).Return(&rest.Response{StatusCode: 202}, nil)

	n := &sendGridNotifier{client: client, fromEmail: "noreply@rentals.example", fromName: "Rentals"}
	require.NoError(t, n.RentalConfirmed(ctx, user, vehicle, rental))
	client.AssertExpectations(t)
}

func TestSendGridNotifier_Failures(t *testing.T) {
	ctx := context.Background()
	user, vehicle, rental := receiptFixture(t)

	t.Run("Error status", func(t *testing.T) {
		client := new(MockMailSender)
		client.On("SendWithContext", ctx, mock.Anything).Return(&rest.Response{StatusCode: 401, Body: "unauthorized"}, nil)
		n := &sendGridNotifier{client: client, fromEmail: "noreply@rentals.example"}

		err := n.VehicleReturned(ctx, user, vehicle, rental)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("Transport error", func(t *testing.T) {
		client := new(MockMailSender)
		client.On("SendWithContext", ctx, mock.Anything).Return(nil, errors.New("connection refused"))
		n := &sendGridNotifier{client: client, fromEmail: "noreply@rentals.example"}

		err := n.RentalConfirmed(ctx, user, vehicle, rental)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("No email address", func(t *testing.T) {
		client := new(MockMailSender)
		n := &sendGridNotifier{client: client, fromEmail: "noreply@rentals.example"}
		anonymous := user.Clone()
		anonymous.Email = ""

		require.NoError(t, n.RentalConfirmed(ctx, anonymous, vehicle, rental))
		client.AssertNotCalled(t, "SendWithContext", mock.Anything, mock.Anything)
	})
}

func TestNoopNotifier(t *testing.T) {
	user, vehicle, rental := receiptFixture(t)
	n := NewNoopNotifier()
	assert.NoError(t, n.RentalConfirmed(context.Background(), user, vehicle, rental))
	assert.NoError(t, n.VehicleReturned(context.Background(), user, vehicle, rental))
}
