package service

import (
	"context"
	"fmt"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

// resolveRoles maps request-supplied role tokens to canonical role entities.
// A nil or empty token list selects the fallback role, so the resolved set is
// never empty. Duplicate tokens collapse. A missing canonical role means the
// backing store lost its seed data; the error propagates as fatal
// misconfiguration rather than user-facing validation.
func resolveRoles(ctx context.Context, repo ports.RoleRepository, tokens []string, fallback domain.RoleName) ([]domain.Role, error) {
	if len(tokens) == 0 {
		role, err := repo.FindByName(ctx, fallback)
		if err != nil {
			return nil, fmt.Errorf("resolve default role %s: %w", fallback, err)
		}
		return []domain.Role{*role}, nil
	}

	seen := make(map[domain.RoleName]struct{}, len(tokens))
	roles := make([]domain.Role, 0, len(tokens))
	for _, token := range tokens {
		name := domain.RoleNameForToken(token)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		role, err := repo.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve role %s: %w", name, err)
		}
		roles = append(roles, *role)
	}
	return roles, nil
}
