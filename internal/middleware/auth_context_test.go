package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-lost-found/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{UserID: "u1"}, nil
	}
	return auth.Claims{}, errors.New("bad token")
}

func serve(t *testing.T, verifier auth.AuthVerifier, req *http.Request) (string, bool) {
	t.Helper()
	var (
		uid string
		ok  bool
	)
	h := AuthContext(verifier, nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		var c auth.Claims
		c, ok = GetClaims(r.Context())
		uid = c.UserID
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return uid, ok
}

func TestAuthContext_DevHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, " owner-1 ")

	uid, ok := serve(t, nil, req)
	assert.True(t, ok)
	assert.Equal(t, "owner-1", uid)

	_, ok = serve(t, nil, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestAuthContext_Verifier(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good")
	uid, ok := serve(t, fakeVerifier{}, req)
	assert.True(t, ok)
	assert.Equal(t, "u1", uid)

	// con verifier el header de debug no cuenta
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, "owner-1")
	_, ok = serve(t, fakeVerifier{}, req)
	assert.False(t, ok)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	_, ok = serve(t, fakeVerifier{}, req)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  bearer   abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}
