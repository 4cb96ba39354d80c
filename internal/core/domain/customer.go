package domain

import (
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrUsernameTaken = errors.New("username is already taken")
var ErrEmailTaken = errors.New("email is already in use")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many signin attempts")
var ErrNotificationFailed = errors.New("notification delivery failed")
var ErrForbidden = errors.New("access forbidden")

// Customer belongs to exactly one clinic. Username and email are unique
// within that clinic, not globally.
type Customer struct {
	ID           string    `json:"id"`
	ClinicID     string    `json:"clinic_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Roles        []Role    `json:"roles"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is an authenticated identity, either a customer or a clinic
// account. It is what signin resolves and what token claims are built from.
type Principal struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Roles        []Role
}
