package domain

import (
	"slices"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/utils"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
)

// AdminBalance is the fixed balance reported for admin accounts.
var AdminBalance = decimal.NewFromInt(1000000)

// User is either a customer or an admin. Only customers carry an Account.
type User struct {
	Role      UserRole `json:"role"`
	Username  string   `json:"username"`
	Password  string   `json:"-"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Account   *Account `json:"account,omitempty"`
}

// Account is the balance and rental state of a customer.
// Rentals are referenced by id and resolved through the ledger.
type Account struct {
	Balance         decimal.Decimal `json:"balance"`
	CurrentRentalID string          `json:"current_rental_id,omitempty"`
	RentalHistory   []string        `json:"rental_history"`
}

func NewCustomer(username, password, firstName, lastName, email, phone, address string) *User {
	return &User{
		Role:      UserRoleCustomer,
		Username:  username,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Address:   address,
		Account:   &Account{Balance: decimal.Zero, RentalHistory: []string{}},
	}
}

func NewAdmin(username, password, firstName, lastName, email, phone, address string) *User {
	return &User{
		Role:      UserRoleAdmin,
		Username:  username,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Address:   address,
	}
}

func (u *User) IsCustomer() bool {
	return u.Role == UserRoleCustomer && u.Account != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// CanHoldBalance reports whether funds can be credited to or debited from u
func (u *User) CanHoldBalance() bool {
	return u.IsCustomer()
}

func (u *User) Balance() decimal.Decimal {
	if !u.CanHoldBalance() {
		return AdminBalance
	}
	return u.Account.Balance
}

func (u *User) HasActiveRental() bool {
	return u.IsCustomer() && u.Account.CurrentRentalID != ""
}

// Credit adds a positive amount to the balance, rounded to cents
func (u *User) Credit(amount decimal.Decimal) error {
	if !u.CanHoldBalance() {
		return BalanceNotSupported()
	}
	if !amount.IsPositive() {
		return InvalidAmount()
	}
	u.Account.Balance = utils.RoundMoney(u.Account.Balance.Add(amount))
	return nil
}

// Debit removes amount from the balance; the balance never goes negative
func (u *User) Debit(amount decimal.Decimal) error {
	if !u.CanHoldBalance() {
		return BalanceNotSupported()
	}
	if amount.IsNegative() {
		return InvalidAmount()
	}
	if amount.GreaterThan(u.Account.Balance) {
		return InsufficientBalance(u.Account.Balance, amount)
	}
	u.Account.Balance = utils.RoundMoney(u.Account.Balance.Sub(amount))
	return nil
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Clone returns a deep copy of u
func (u *User) Clone() *User {
	c := *u
	if u.Account != nil {
		acct := *u.Account
		acct.RentalHistory = slices.Clone(u.Account.RentalHistory)
		c.Account = &acct
	}
	return &c
}
