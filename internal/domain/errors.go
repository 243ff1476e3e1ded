package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/utils"
)

// ErrorCode identifies a ledger failure. The thousands digit names the area.
type ErrorCode int

const (
	CodeGeneric ErrorCode = 1000

	CodeAuthentication     ErrorCode = 2000
	CodeInvalidCredentials ErrorCode = 2001

	CodeRegistration            ErrorCode = 3000
	CodeUsernameExists          ErrorCode = 3001
	CodeInvalidSecretCode       ErrorCode = 3002
	CodeInvalidRegistrationData ErrorCode = 3003

	CodePayment             ErrorCode = 4000
	CodeInsufficientBalance ErrorCode = 4001
	CodeInvalidAmount       ErrorCode = 4002
	CodeBalanceNotSupported ErrorCode = 4003

	CodeInventory           ErrorCode = 5000
	CodeDuplicateVehicle    ErrorCode = 5001
	CodeVehicleNotFound     ErrorCode = 5002
	CodeVehicleNotAvailable ErrorCode = 5003
	CodeInvalidVehicleData  ErrorCode = 5004
	CodeVehicleInUse        ErrorCode = 5005

	CodeRental                ErrorCode = 6000
	CodeInvalidUser           ErrorCode = 6001
	CodeActiveRentalExists    ErrorCode = 6002
	CodeNoActiveRental        ErrorCode = 6003
	CodeInvalidRentalDuration ErrorCode = 6004

	CodeDatabase ErrorCode = 7000
)

// Area returns the base code of the area this code belongs to
func (c ErrorCode) Area() ErrorCode {
	return c / 1000 * 1000
}

// Error is the single failure type raised by ledger operations.
// Two errors are the same failure when their codes match.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[ERR-%d] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is
var (
	ErrInvalidCredentials      = &Error{Code: CodeInvalidCredentials, Message: "Invalid username or password"}
	ErrUsernameExists          = &Error{Code: CodeUsernameExists, Message: "Username already exists"}
	ErrInvalidSecretCode       = &Error{Code: CodeInvalidSecretCode, Message: "Invalid registration code"}
	ErrInvalidRegistrationData = &Error{Code: CodeInvalidRegistrationData, Message: "Invalid registration data"}
	ErrInsufficientBalance     = &Error{Code: CodeInsufficientBalance, Message: "Insufficient balance"}
	ErrInvalidAmount           = &Error{Code: CodeInvalidAmount, Message: "Amount must be positive"}
	ErrBalanceNotSupported     = &Error{Code: CodeBalanceNotSupported, Message: "Admin accounts don't have balances"}
	ErrDuplicateVehicle        = &Error{Code: CodeDuplicateVehicle, Message: "Vehicle already exists"}
	ErrVehicleNotFound         = &Error{Code: CodeVehicleNotFound, Message: "Vehicle not found"}
	ErrVehicleNotAvailable     = &Error{Code: CodeVehicleNotAvailable, Message: "Vehicle is not available"}
	ErrInvalidVehicleData      = &Error{Code: CodeInvalidVehicleData, Message: "Invalid vehicle data"}
	ErrVehicleInUse            = &Error{Code: CodeVehicleInUse, Message: "Vehicle is referenced by rentals"}
	ErrInvalidUser             = &Error{Code: CodeInvalidUser, Message: "Invalid user type"}
	ErrActiveRentalExists      = &Error{Code: CodeActiveRentalExists, Message: "User has active rental"}
	ErrNoActiveRental          = &Error{Code: CodeNoActiveRental, Message: "No active rental"}
	ErrInvalidRentalDuration   = &Error{Code: CodeInvalidRentalDuration, Message: "End date must be after start date"}
	ErrDatabase                = &Error{Code: CodeDatabase, Message: "Database error"}
)

func InvalidCredentials() error {
	return &Error{Code: CodeInvalidCredentials, Message: "Invalid username or password"}
}

func UsernameExists(username string) error {
	return &Error{Code: CodeUsernameExists, Message: fmt.Sprintf("Username '%s' already exists", username)}
}

func InvalidSecretCode() error {
	return &Error{Code: CodeInvalidSecretCode, Message: "Invalid registration code"}
}

func InvalidRegistrationData(err error) error {
	return &Error{Code: CodeInvalidRegistrationData, Message: fmt.Sprintf("Invalid registration data: %v", err), Err: err}
}

func InvalidAmount() error {
	return &Error{Code: CodeInvalidAmount, Message: "Amount must be positive"}
}

func BalanceNotSupported() error {
	return &Error{Code: CodeBalanceNotSupported, Message: "Admin accounts don't have balances"}
}

func DuplicateVehicle(id string) error {
	return &Error{Code: CodeDuplicateVehicle, Message: fmt.Sprintf("Vehicle %s already exists", id)}
}

func VehicleNotFound(id string) error {
	return &Error{Code: CodeVehicleNotFound, Message: fmt.Sprintf("Vehicle %s not found", id)}
}

func VehicleNotAvailable(id string) error {
	return &Error{Code: CodeVehicleNotAvailable, Message: fmt.Sprintf("Vehicle %s is not available", id)}
}

func InvalidVehicleData(reason string) error {
	return &Error{Code: CodeInvalidVehicleData, Message: fmt.Sprintf("Invalid vehicle data: %s", reason)}
}

func VehicleInUse(id string) error {
	return &Error{Code: CodeVehicleInUse, Message: fmt.Sprintf("Vehicle %s is referenced by rental records", id)}
}

func InvalidUser() error {
	return &Error{Code: CodeInvalidUser, Message: "Invalid user type"}
}

func ActiveRentalExists(username string) error {
	return &Error{Code: CodeActiveRentalExists, Message: fmt.Sprintf("User %s has active rental", username)}
}

func NoActiveRental(username string) error {
	return &Error{Code: CodeNoActiveRental, Message: fmt.Sprintf("No active rental for %s", username)}
}

func InvalidRentalDuration() error {
	return &Error{Code: CodeInvalidRentalDuration, Message: "End date must be after start date"}
}

// DatabaseError reports a persistence failure; cause may be nil.
func DatabaseError(message string, cause error) error {
	return &Error{Code: CodeDatabase, Message: message, Err: cause}
}

// InsufficientBalanceError carries the amounts involved in a rejected debit
type InsufficientBalanceError struct {
	Current  decimal.Decimal
	Required decimal.Decimal
}

func InsufficientBalance(current, required decimal.Decimal) error {
	return &InsufficientBalanceError{Current: current, Required: required}
}

func (e *InsufficientBalanceError) Error() string {
	return e.base().Error()
}

func (e *InsufficientBalanceError) Unwrap() error {
	return e.base()
}

func (e *InsufficientBalanceError) base() *Error {
	return &Error{
		Code: CodeInsufficientBalance,
		Message: fmt.Sprintf("Insufficient balance: Current %s, Required %s",
			utils.FormatMoney(e.Current), utils.FormatMoney(e.Required)),
	}
}

// CodeOf returns the ledger code of err, or CodeGeneric when err is not a ledger error
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeGeneric
}
