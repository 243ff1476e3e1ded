package service

import (
	"context"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
)

// Options tunes the rules the ledger enforces
type Options struct {
	// AdminSecretCode turns a registration into an admin registration.
	// Empty disables admin registration.
	AdminSecretCode string
	MinYear         int
	MaxYear         int
}

// RentalSystem owns the users, vehicles and rentals of the ledger and
// applies every state change to them. Operations are serialised; state
// reaches the store only at save points.
type RentalSystem struct {
	mu        sync.Mutex
	store     repository.Store
	passwords security.PasswordVerifier
	validate  *validator.Validate
	opts      Options

	users    []*domain.User
	vehicles []*domain.Vehicle
	rentals  []*domain.Rental
}

var _ CarRentalService = (*RentalSystem)(nil)

func NewRentalSystem(store repository.Store, passwords security.PasswordVerifier, opts Options) *RentalSystem {
	if passwords == nil {
		passwords = security.PlaintextVerifier{}
	}
	return &RentalSystem{
		store:     store,
		passwords: passwords,
		validate:  validator.New(),
		opts:      opts,
	}
}

// Load replaces the in-memory ledger with the stored snapshot.
// On failure the current state is kept.
func (s *RentalSystem) Load(ctx context.Context) error {
	logger.EnterMethod("RentalSystem.Load")

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		logger.ExitMethodWithError("RentalSystem.Load", err)
		return err
	}
	s.users = snap.Users
	s.vehicles = snap.Vehicles
	s.rentals = snap.Rentals

	logger.ExitMethod("RentalSystem.Load", "users", len(s.users), "vehicles", len(s.vehicles), "rentals", len(s.rentals))
	return nil
}

// Save writes the whole ledger through the store
func (s *RentalSystem) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, "RentalSystem.Save")
}

// Shutdown is the final save of a session
func (s *RentalSystem) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveLocked(ctx, "RentalSystem.Shutdown"); err != nil {
		return err
	}
	logger.Info("Ledger saved on shutdown", "users", len(s.users), "vehicles", len(s.vehicles), "rentals", len(s.rentals))
	return nil
}

func (s *RentalSystem) saveLocked(ctx context.Context, method string) error {
	logger.EnterMethod(method)
	err := s.store.SaveAll(ctx, &domain.Snapshot{
		Users:    s.users,
		Vehicles: s.vehicles,
		Rentals:  s.rentals,
	})
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return err
	}
	logger.ExitMethod(method)
	return nil
}

// fail logs a rejected operation and returns err unchanged
func fail(method string, err error, args ...any) error {
	if code := domain.CodeOf(err); code == domain.CodeGeneric || code.Area() == domain.CodeDatabase {
		logger.ExitMethodWithError(method, err, args...)
	} else {
		logger.MethodRejected(method, err, args...)
	}
	return err
}

func (s *RentalSystem) findUser(username string) *domain.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// findCustomer returns the customer named username or an InvalidUser failure
func (s *RentalSystem) findCustomer(username string) (*domain.User, error) {
	u := s.findUser(username)
	if u == nil || !u.IsCustomer() {
		return nil, domain.InvalidUser()
	}
	return u, nil
}

func (s *RentalSystem) findVehicle(id string) *domain.Vehicle {
	for _, v := range s.vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}

func (s *RentalSystem) findRental(id string) *domain.Rental {
	for _, r := range s.rentals {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// activeRentals are the rentals some customer holds as current, in ledger order
func (s *RentalSystem) activeRentals() []*domain.Rental {
	current := make(map[string]bool)
	for _, u := range s.users {
		if u.HasActiveRental() {
			current[u.Account.CurrentRentalID] = true
		}
	}
	active := make([]*domain.Rental, 0, len(current))
	for _, r := range s.rentals {
		if current[r.ID] {
			active = append(active, r)
		}
	}
	return active
}

func cloneVehicles(vehicles []*domain.Vehicle, keep func(*domain.Vehicle) bool) []*domain.Vehicle {
	out := make([]*domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if keep == nil || keep(v) {
			out = append(out, v.Clone())
		}
	}
	return out
}

func cloneRentals(rentals []*domain.Rental) []*domain.Rental {
	out := make([]*domain.Rental, len(rentals))
	for i, r := range rentals {
		out[i] = r.Clone()
	}
	return out
}

func removeUser(users []*domain.User, u *domain.User) []*domain.User {
	return slices.DeleteFunc(users, func(x *domain.User) bool { return x == u })
}
