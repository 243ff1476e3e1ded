package security

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// PasswordVerifier turns a password into its stored form and checks
// candidates against it.
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// NewPasswordVerifier returns the verifier for a configured scheme
func NewPasswordVerifier(scheme string) (PasswordVerifier, error) {
	switch scheme {
	case "", SchemePlaintext:
		return PlaintextVerifier{}, nil
	case SchemeBcrypt:
		return BcryptVerifier{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("unknown password scheme: %q", scheme)
}

// PlaintextVerifier stores passwords as given. Insecure; it exists so ledgers
// written with plaintext passwords keep working.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextVerifier) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptVerifier stores bcrypt hashes
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify fails for stored values that are not bcrypt hashes
func (BcryptVerifier) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
