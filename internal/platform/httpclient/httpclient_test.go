package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsAPIKeyAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "/v1/ping", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL + "/", APIKey: "secret"})
	require.NoError(t, err)
	assert.True(t, c.Configured())

	var out struct {
		Status string `json:"status"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "v1/ping", &out))
	assert.Equal(t, "ok", out.Status)
}

func TestClient_StatusClassification(t *testing.T) {
	status := http.StatusNotFound
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("nope"))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	err = c.PostJSON(context.Background(), "/x", nil, map[string]string{"a": "b"}, nil)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuthFailure(err))
	assert.EqualError(t, err, "unexpected status 404: nope")

	status = http.StatusForbidden
	err = c.GetJSON(context.Background(), "/x", nil)
	assert.True(t, IsAuthFailure(err))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{BaseURL: "::bad"})
	assert.Error(t, err)

	c, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, c.Configured())
	assert.Error(t, c.GetJSON(context.Background(), "/x", nil))
}
