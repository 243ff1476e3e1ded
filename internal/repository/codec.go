package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/utils"
)

const (
	userTypeCustomer = "Customer"
	userTypeAdmin    = "Admin"
)

type userRecord struct {
	Type      string `json:"type"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type customerRecord struct {
	userRecord
	Balance       decimal.Decimal `json:"balance"`
	CurrentRental *string         `json:"current_rental"`
	RentalHistory []string        `json:"rental_history"`
}

// userDocument is the decode side of both user record shapes
type userDocument struct {
	userRecord
	Balance       *decimal.Decimal `json:"balance"`
	CurrentRental *string          `json:"current_rental"`
	RentalHistory []string         `json:"rental_history"`
}

type vehicleRecord struct {
	Type         string          `json:"type"`
	VIN          string          `json:"vin"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	Seating      int             `json:"seating"`
	Transmission string          `json:"transmission"`
	FuelType     string          `json:"fuel_type"`
	IsAvailable  bool            `json:"is_available"`
	TrunkSpace   *float64        `json:"trunk_space,omitempty"`
	Mileage      *float64        `json:"mileage,omitempty"`
}

type vehicleDocument struct {
	vehicleRecord
	LicensePlate string `json:"license_plate"`
	IsAvailable  *bool  `json:"is_available"`
}

type rentalRecord struct {
	ID        string           `json:"id"`
	User      string           `json:"user"`
	Vehicle   string           `json:"vehicle"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	DailyRate *decimal.Decimal `json:"daily_rate,omitempty"`
}

// LoadSnapshot reads users, vehicles and rentals in that order and resolves
// every rental reference against the collections loaded before it.
func LoadSnapshot(ctx context.Context, r DocumentReader) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{}

	var userDocs []userDocument
	if err := readCollection(ctx, r, CollectionUsers, &userDocs); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(userDocs))
	for _, doc := range userDocs {
		if seen[doc.Username] {
			return nil, duplicateKey(CollectionUsers, "username", doc.Username)
		}
		seen[doc.Username] = true

		user, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		snapshot.Users = append(snapshot.Users, user)
	}

	var vehicleDocs []vehicleDocument
	if err := readCollection(ctx, r, CollectionVehicles, &vehicleDocs); err != nil {
		return nil, err
	}
	seen = make(map[string]bool, len(vehicleDocs))
	for _, doc := range vehicleDocs {
		vehicle := decodeVehicle(doc)
		if seen[vehicle.ID] {
			return nil, duplicateKey(CollectionVehicles, "vehicle", vehicle.ID)
		}
		seen[vehicle.ID] = true
		snapshot.Vehicles = append(snapshot.Vehicles, vehicle)
	}

	var rentalDocs []rentalRecord
	if err := readCollection(ctx, r, CollectionRentals, &rentalDocs); err != nil {
		return nil, err
	}
	seen = make(map[string]bool, len(rentalDocs))
	for _, doc := range rentalDocs {
		if seen[doc.ID] {
			return nil, duplicateKey(CollectionRentals, "rental", doc.ID)
		}
		seen[doc.ID] = true

		rental, err := decodeRental(doc, snapshot)
		if err != nil {
			return nil, err
		}
		snapshot.Rentals = append(snapshot.Rentals, rental)
	}

	if err := linkAccounts(snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func duplicateKey(c Collection, kind, key string) error {
	return domain.DatabaseError(fmt.Sprintf("Duplicate %s %q in %s", kind, key, c.FileName()), nil)
}

// SaveSnapshot encodes and writes each collection independently.
func SaveSnapshot(ctx context.Context, w DocumentWriter, snapshot *domain.Snapshot) error {
	users := make([]any, 0, len(snapshot.Users))
	for _, u := range snapshot.Users {
		users = append(users, encodeUser(u))
	}
	vehicles := make([]vehicleRecord, 0, len(snapshot.Vehicles))
	for _, v := range snapshot.Vehicles {
		vehicles = append(vehicles, encodeVehicle(v))
	}
	rentals := make([]rentalRecord, 0, len(snapshot.Rentals))
	for _, r := range snapshot.Rentals {
		rentals = append(rentals, encodeRental(r))
	}

	if err := writeCollection(ctx, w, CollectionUsers, users); err != nil {
		return err
	}
	if err := writeCollection(ctx, w, CollectionVehicles, vehicles); err != nil {
		return err
	}
	return writeCollection(ctx, w, CollectionRentals, rentals)
}

func readCollection(ctx context.Context, r DocumentReader, c Collection, out any) error {
	logger.StoreCall("read", c.FileName())
	payload, err := r.ReadDocument(ctx, c)
	if err != nil {
		logger.StoreResult("read", c.FileName(), 0, err)
		return domain.DatabaseError(fmt.Sprintf("Failed to load %s: %v", c.FileName(), err), err)
	}
	if payload == nil {
		logger.StoreResult("read", c.FileName(), 0, nil)
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		wrapped := errors.Wrapf(err, "decode %s", c.FileName())
		logger.StoreResult("read", c.FileName(), len(payload), wrapped)
		return domain.DatabaseError(fmt.Sprintf("Failed to load %s: %v", c.FileName(), err), wrapped)
	}
	logger.StoreResult("read", c.FileName(), len(payload), nil)
	return nil
}

func writeCollection(ctx context.Context, w DocumentWriter, c Collection, records any) error {
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		wrapped := errors.Wrapf(err, "encode %s", c.FileName())
		return domain.DatabaseError(fmt.Sprintf("Failed to save %s: %v", c.FileName(), err), wrapped)
	}
	logger.StoreCall("write", c.FileName())
	err = w.WriteDocument(ctx, c, payload)
	logger.StoreResult("write", c.FileName(), len(payload), err)
	if err != nil {
		return domain.DatabaseError(fmt.Sprintf("Failed to save %s: %v", c.FileName(), err), err)
	}
	return nil
}

func encodeUser(u *domain.User) any {
	base := userRecord{
		Type:      userTypeAdmin,
		Username:  u.Username,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
	}
	if !u.IsCustomer() {
		return base
	}

	base.Type = userTypeCustomer
	rec := customerRecord{
		userRecord:    base,
		Balance:       u.Account.Balance,
		RentalHistory: append([]string{}, u.Account.RentalHistory...),
	}
	if u.Account.CurrentRentalID != "" {
		id := u.Account.CurrentRentalID
		rec.CurrentRental = &id
	}
	return rec
}

func decodeUser(doc userDocument) (*domain.User, error) {
	switch doc.Type {
	case userTypeCustomer:
		u := domain.NewCustomer(doc.Username, doc.Password, doc.FirstName, doc.LastName, doc.Email, doc.Phone, doc.Address)
		if doc.Balance != nil {
			u.Account.Balance = *doc.Balance
		}
		if doc.CurrentRental != nil {
			u.Account.CurrentRentalID = *doc.CurrentRental
		}
		if doc.RentalHistory != nil {
			u.Account.RentalHistory = doc.RentalHistory
		}
		return u, nil
	case userTypeAdmin:
		return domain.NewAdmin(doc.Username, doc.Password, doc.FirstName, doc.LastName, doc.Email, doc.Phone, doc.Address), nil
	default:
		return nil, domain.DatabaseError(fmt.Sprintf("Unknown user type %q for %s", doc.Type, doc.Username), nil)
	}
}

func encodeVehicle(v *domain.Vehicle) vehicleRecord {
	rec := vehicleRecord{
		Type:         string(domain.VehicleKindVehicle),
		VIN:          v.ID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		DailyRate:    v.DailyRate,
		Seating:      v.Seating,
		Transmission: v.Transmission,
		FuelType:     v.FuelType,
		IsAvailable:  v.IsAvailable,
	}
	if v.IsCar() {
		rec.Type = string(domain.VehicleKindCar)
		trunk, mileage := domain.DefaultTrunkSpace, domain.DefaultMileage
		if v.Car != nil {
			trunk, mileage = v.Car.TrunkSpace, v.Car.Mileage
		}
		rec.TrunkSpace = &trunk
		rec.Mileage = &mileage
	}
	return rec
}

func decodeVehicle(doc vehicleDocument) *domain.Vehicle {
	v := &domain.Vehicle{
		Kind:         domain.VehicleKindVehicle,
		ID:           doc.VIN,
		Make:         doc.Make,
		Model:        doc.Model,
		Year:         doc.Year,
		DailyRate:    doc.DailyRate,
		Seating:      doc.Seating,
		Transmission: doc.Transmission,
		FuelType:     doc.FuelType,
		IsAvailable:  true,
	}
	if v.ID == "" {
		v.ID = doc.LicensePlate
	}
	if doc.IsAvailable != nil {
		v.IsAvailable = *doc.IsAvailable
	}
	if doc.Type == string(domain.VehicleKindCar) {
		v.Kind = domain.VehicleKindCar
		v.Car = &domain.CarDetails{TrunkSpace: domain.DefaultTrunkSpace, Mileage: domain.DefaultMileage}
		if doc.TrunkSpace != nil {
			v.Car.TrunkSpace = *doc.TrunkSpace
		}
		if doc.Mileage != nil {
			v.Car.Mileage = *doc.Mileage
		}
	}
	return v
}

func encodeRental(r *domain.Rental) rentalRecord {
	rate := r.DailyRate
	return rentalRecord{
		ID:        r.ID,
		User:      r.Username,
		Vehicle:   r.VehicleID,
		StartDate: utils.FormatDate(r.StartDate),
		EndDate:   utils.FormatDate(r.EndDate),
		DailyRate: &rate,
	}
}

func decodeRental(doc rentalRecord, snapshot *domain.Snapshot) (*domain.Rental, error) {
	user := findUser(snapshot.Users, doc.User)
	vehicle := findVehicle(snapshot.Vehicles, doc.Vehicle)
	if user == nil || !user.IsCustomer() || vehicle == nil {
		return nil, domain.DatabaseError("Invalid rental reference", nil)
	}

	start, err := utils.ParseDate(doc.StartDate)
	if err != nil {
		return nil, domain.DatabaseError(fmt.Sprintf("Invalid start date for rental %s", doc.ID), err)
	}
	end, err := utils.ParseDate(doc.EndDate)
	if err != nil {
		return nil, domain.DatabaseError(fmt.Sprintf("Invalid end date for rental %s", doc.ID), err)
	}

	rate := vehicle.DailyRate
	if doc.DailyRate != nil {
		rate = *doc.DailyRate
	}
	rental, err := domain.RestoreRental(doc.ID, user.Username, vehicle.ID, rate, start, end)
	if err != nil {
		return nil, domain.DatabaseError(fmt.Sprintf("Invalid rental %s", doc.ID), err)
	}
	return rental, nil
}

// linkAccounts checks that every rental id held by a customer exists and
// belongs to that customer.
func linkAccounts(snapshot *domain.Snapshot) error {
	byID := make(map[string]*domain.Rental, len(snapshot.Rentals))
	for _, r := range snapshot.Rentals {
		byID[r.ID] = r
	}
	owned := func(u *domain.User, id string) bool {
		r, ok := byID[id]
		return ok && r.Username == u.Username
	}

	for _, u := range snapshot.Users {
		if !u.IsCustomer() {
			continue
		}
		if id := u.Account.CurrentRentalID; id != "" && !owned(u, id) {
			return domain.DatabaseError("Invalid rental reference", nil)
		}
		for _, id := range u.Account.RentalHistory {
			if !owned(u, id) {
				return domain.DatabaseError("Invalid rental reference", nil)
			}
		}
	}
	return nil
}

func findUser(users []*domain.User, username string) *domain.User {
	for _, u := range users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func findVehicle(vehicles []*domain.Vehicle, id string) *domain.Vehicle {
	for _, v := range vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}
