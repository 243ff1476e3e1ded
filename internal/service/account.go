package service

import (
	"context"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/utils"
)

// AddFunds credits a customer balance and returns the new balance
func (s *RentalSystem) AddFunds(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	const method = "RentalSystem.AddFunds"
	logger.EnterMethod(method, "username", username, "amount", amount.String())

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.findCustomer(username)
	if err != nil {
		return decimal.Zero, fail(method, err, "username", username)
	}
	if err := user.Credit(amount); err != nil {
		return decimal.Zero, fail(method, err, "username", username)
	}

	logger.Info("Funds added", "username", username, "amount", utils.FormatMoney(amount),
		"balance", utils.FormatMoney(user.Account.Balance))
	logger.ExitMethod(method, "username", username)
	return user.Account.Balance, nil
}

func (s *RentalSystem) GetUser(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(username)
	if u == nil {
		return nil, domain.InvalidUser()
	}
	return u.Clone(), nil
}

// ListCustomers returns every customer in registration order
func (s *RentalSystem) ListCustomers(ctx context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		if u.IsCustomer() {
			customers = append(customers, u.Clone())
		}
	}
	return customers, nil
}
