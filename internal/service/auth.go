package service

import (
	"context"
	"crypto/subtle"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

// Register creates a customer, or an admin when the registration code matches
// the configured admin secret. The ledger is saved; if that fails the new
// user is dropped again.
func (s *RentalSystem) Register(ctx context.Context, input RegistrationInput) (*domain.User, error) {
	const method = "RentalSystem.Register"
	logger.EnterMethod(method, "username", input.Username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUser(input.Username) != nil {
		return nil, fail(method, domain.UsernameExists(input.Username), "username", input.Username)
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fail(method, domain.InvalidRegistrationData(err), "username", input.Username)
	}

	admin := false
	if input.RegistrationCode != "" {
		if !s.secretCodeMatches(input.RegistrationCode) {
			return nil, fail(method, domain.InvalidSecretCode(), "username", input.Username)
		}
		admin = true
	}

	stored, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fail(method, err, "username", input.Username)
	}

	var user *domain.User
	if admin {
		user = domain.NewAdmin(input.Username, stored, input.FirstName, input.LastName, input.Email, input.Phone, input.Address)
	} else {
		user = domain.NewCustomer(input.Username, stored, input.FirstName, input.LastName, input.Email, input.Phone, input.Address)
	}

	s.users = append(s.users, user)
	if err := s.saveLocked(ctx, method); err != nil {
		s.users = removeUser(s.users, user)
		return nil, fail(method, err, "username", input.Username)
	}

	logger.Info("User registered", "username", user.Username, "role", user.Role)
	logger.ExitMethod(method, "username", user.Username)
	return user.Clone(), nil
}

func (s *RentalSystem) secretCodeMatches(code string) bool {
	if s.opts.AdminSecretCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.opts.AdminSecretCode)) == 1
}

// Authenticate returns the user whose username and password both match
func (s *RentalSystem) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	const method = "RentalSystem.Authenticate"
	logger.EnterMethod(method, "username", username)

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(username)
	if u == nil || !s.passwords.Verify(u.Password, password) {
		return nil, fail(method, domain.InvalidCredentials(), "username", username)
	}

	logger.ExitMethod(method, "username", username, "role", u.Role)
	return u.Clone(), nil
}

// EnsureDefaultAdmin adds admin when the ledger has no admin yet and saves.
// It reports whether the admin was created.
func (s *RentalSystem) EnsureDefaultAdmin(ctx context.Context, admin RegistrationInput) (bool, error) {
	const method = "RentalSystem.EnsureDefaultAdmin"
	logger.EnterMethod(method, "username", admin.Username)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.IsAdmin() {
			logger.ExitMethod(method, "created", false)
			return false, nil
		}
	}
	if s.findUser(admin.Username) != nil {
		return false, fail(method, domain.UsernameExists(admin.Username), "username", admin.Username)
	}

	stored, err := s.passwords.Hash(admin.Password)
	if err != nil {
		return false, fail(method, err, "username", admin.Username)
	}
	user := domain.NewAdmin(admin.Username, stored, admin.FirstName, admin.LastName, admin.Email, admin.Phone, admin.Address)

	s.users = append(s.users, user)
	if err := s.saveLocked(ctx, method); err != nil {
		s.users = removeUser(s.users, user)
		return false, fail(method, err, "username", admin.Username)
	}

	logger.Info("Default admin created", "username", user.Username)
	logger.ExitMethod(method, "created", true)
	return true, nil
}
