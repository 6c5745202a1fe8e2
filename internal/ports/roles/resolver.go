package roles

import "context"

type Role string

const (
	RoleAdopter      Role = "adopter"
	RoleShelter      Role = "shelter"
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
)

// Resolver devuelve los roles de un usuario (servicio de cuentas).
type Resolver interface {
	Roles(ctx context.Context, userID string) ([]Role, error)
}

// HasAny indica si alguno de want está en have.
func HasAny(have []Role, want ...Role) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
