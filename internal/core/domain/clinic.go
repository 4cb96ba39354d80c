package domain

import (
	"errors"
	"time"
)

var ErrClinicNotFound = errors.New("clinic not found")
var ErrClinicNameTaken = errors.New("clinic name is already taken")
var ErrClinicEmailTaken = errors.New("clinic email is already in use")

// Clinic is the tenant root. Customer uniqueness is scoped to a clinic;
// clinic name and email are unique across all tenants.
type Clinic struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
