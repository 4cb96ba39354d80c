package ports

import (
	"context"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
)

// Notifier delivers the generated password to a freshly registered customer.
// Implementations must treat the password as sensitive: deliver it, never
// store or log it.
type Notifier interface {
	SendGeneratedPassword(ctx context.Context, customer *domain.Customer, password string) error
}
