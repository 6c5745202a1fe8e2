package auth

import "context"

// Claims del usuario autenticado. UserID es el dueño de mascotas / reporter de hallazgos.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

// AuthVerifier valida un bearer token.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
