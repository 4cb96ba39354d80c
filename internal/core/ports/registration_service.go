package ports

import (
	"context"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
)

// SignupCustomerInput carries everything needed to register a customer under
// a clinic. The customer does not choose a password; one is generated inside
// the workflow and delivered out-of-band.
type SignupCustomerInput struct {
	ClinicID    string
	FirstName   string
	LastName    string
	Username    string
	Email       string
	Address     string
	PhoneNumber string
	Gender      string
	// Roles is nil when the request omitted the field, which selects the
	// default role. An empty non-nil slice behaves the same way.
	Roles []string
}

// SignupClinicInput carries a clinic self-registration. Username doubles as
// the clinic name and the password is chosen by the requester.
type SignupClinicInput struct {
	Username string
	Password string
	Email    string
	Roles    []string
}

// RegistrationService orchestrates the signup workflows: uniqueness checks,
// role resolution, persistence, and (customer path) password generation plus
// notification.
type RegistrationService interface {
	SignupCustomer(ctx context.Context, input SignupCustomerInput) (*domain.Customer, error)
	SignupClinic(ctx context.Context, input SignupClinicInput) (*domain.Clinic, error)
}

// CustomerService exposes read operations over a clinic's customers.
type CustomerService interface {
	ListByClinic(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
}
