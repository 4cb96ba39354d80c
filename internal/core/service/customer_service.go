package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CustomerService exposes read access to a clinic's customer roster.
type CustomerService struct {
	customers ports.CustomerRepository
	clinics   ports.ClinicRepository
	log       zerolog.Logger
}

func NewCustomerService(customers ports.CustomerRepository, clinics ports.ClinicRepository, log zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, clinics: clinics, log: log}
}

// ListByClinic returns a page of the clinic's customers and the total count.
// Page and limit are normalised here so repositories never see out-of-range
// values.
func (s *CustomerService) ListByClinic(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	if _, err := s.clinics.FindByID(ctx, filter.ClinicID); err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	return s.customers.List(ctx, filter)
}
