package odin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-lost-found/internal/adapters/auth/odin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tokens/verify", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": " u1 ", "email": "a@b.c"})
	}))
	defer srv.Close()

	c, err := odin.NewClient(odin.Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	claims, err := odin.NewVerifier(c).Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestVerifier_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := odin.NewClient(odin.Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	_, err = odin.NewVerifier(c).Verify(context.Background(), "tok")
	require.ErrorIs(t, err, odin.ErrOdinUnauthorized)
}

func TestVerifier_EmptyToken(t *testing.T) {
	c, err := odin.NewClient(odin.Config{BaseURL: "http://odin.local", APIKey: "k"})
	require.NoError(t, err)

	_, err = odin.NewVerifier(c).Verify(context.Background(), "  ")
	require.ErrorIs(t, err, odin.ErrTokenEmpty)
}
