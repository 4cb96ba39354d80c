package ports

import (
	"context"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
)

// RoleRepository provides lookup over the canonical role reference data.
// FindByName returns domain.ErrRoleNotFound when the backing store is missing
// a role; after EnsureCanonicalRoles has run at startup that is a fatal
// misconfiguration, not a user error.
type RoleRepository interface {
	FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	// EnsureCanonicalRoles creates any missing canonical role and verifies
	// all of them are readable. Called once at startup.
	EnsureCanonicalRoles(ctx context.Context) error
}
