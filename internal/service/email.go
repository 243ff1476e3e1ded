package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/utils"
)

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridNotifier struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewSendGridNotifier sends rental receipts through SendGrid
func NewSendGridNotifier(apiKey, fromEmail, fromName string) Notifier {
	return &sendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (n *sendGridNotifier) RentalConfirmed(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, rental *domain.Rental) error {
	subject := fmt.Sprintf("Rental confirmed: %s %s", vehicle.Make, vehicle.Model)
	body := fmt.Sprintf("Hello %s,\n\nYour rental of the %d %s %s (%s) is confirmed.\n\nFrom: %s\nTo: %s\nDays: %d\nTotal charged: %s\nRemaining balance: %s\n\nRental reference: %s",
		user.FullName(), vehicle.Year, vehicle.Make, vehicle.Model, vehicle.ID,
		utils.FormatDate(rental.StartDate), utils.FormatDate(rental.EndDate), rental.DurationDays(),
		utils.FormatMoney(rental.TotalCost()), utils.FormatMoney(user.Balance()), rental.ID)
	return n.send(ctx, "RentalConfirmed", user, subject, body)
}

func (n *sendGridNotifier) VehicleReturned(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, rental *domain.Rental) error {
	subject := fmt.Sprintf("Vehicle returned: %s %s", vehicle.Make, vehicle.Model)
	body := fmt.Sprintf("Hello %s,\n\nThank you for returning the %s %s (%s).\n\nRental reference: %s\nTotal charged: %s",
		user.FullName(), vehicle.Make, vehicle.Model, vehicle.ID, rental.ID, utils.FormatMoney(rental.TotalCost()))
	return n.send(ctx, "VehicleReturned", user, subject, body)
}

func (n *sendGridNotifier) send(ctx context.Context, operation string, user *domain.User, subject, body string) error {
	if user.Email == "" {
		logger.Debug("No email address, receipt skipped", "username", user.Username, "operation", operation)
		return nil
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(user.FullName(), user.Email)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	logger.ExternalServiceCall("sendgrid", operation, "username", user.Username)
	response, err := n.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	} else if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
	}
	logger.ExternalServiceResult("sendgrid", operation, err, "username", user.Username)
	return err
}

type noopNotifier struct{}

// NewNoopNotifier returns a Notifier that sends nothing
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) RentalConfirmed(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, rental *domain.Rental) error {
	return nil
}

func (noopNotifier) VehicleReturned(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, rental *domain.Rental) error {
	return nil
}
