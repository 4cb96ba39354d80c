package ports

import (
	"context"
	"time"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
)

// ListCustomersFilter carries the query parameters for listing a clinic's
// customers. ClinicID is always enforced by the service layer.
type ListCustomersFilter struct {
	ClinicID string
	Page     int // 1-based
	Limit    int // max rows per page (capped at 100 by service)
}

// CustomerRepository defines persistence operations for customers. All
// existence checks are tenant-scoped: a username taken in one clinic does not
// block the same username in another.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	ExistsByUsername(ctx context.Context, clinicID, username string) (bool, error)
	ExistsByEmail(ctx context.Context, clinicID, email string) (bool, error)
	// FindByUsername retrieves a customer by username across all clinics.
	// Used only by signin, which has no tenant disambiguation.
	FindByUsername(ctx context.Context, username string) (*domain.Customer, error)
	// TouchLastSeen updates the customer's last_seen timestamp.
	TouchLastSeen(ctx context.Context, id string, at time.Time) error
	// List returns a page of customers matching filter and the total count.
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
}
