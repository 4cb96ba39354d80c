package ports

import (
	"context"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
)

// ClinicRepository defines persistence operations for clinics. Name and email
// uniqueness is global, there is no outer tenant above a clinic.
type ClinicRepository interface {
	Create(ctx context.Context, c *domain.Clinic) error
	FindByID(ctx context.Context, id string) (*domain.Clinic, error)
	FindByName(ctx context.Context, name string) (*domain.Clinic, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
