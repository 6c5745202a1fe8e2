package accounts

import (
	"context"

	"pet-lost-found/internal/ports/roles"
)

// Resolver implementa roles.Resolver.
// Con allowAll (ALLOW_ALL_ROLES=true) todos son adopter + shelter sin llamar a upstream.
type Resolver struct {
	client   *Client
	allowAll bool
}

func NewResolver(client *Client, allowAll bool) *Resolver {
	return &Resolver{client: client, allowAll: allowAll}
}

func (r *Resolver) Roles(ctx context.Context, userID string) ([]roles.Role, error) {
	if r == nil {
		return nil, ErrAccountsNotConfigured
	}
	if r.allowAll {
		return []roles.Role{roles.RoleAdopter, roles.RoleShelter}, nil
	}
	if r.client == nil || !r.client.IsConfigured() {
		// sin upstream preferimos fallar explícito antes que dar permisos
		return nil, ErrAccountsNotConfigured
	}
	return r.client.GetRoles(ctx, userID)
}
