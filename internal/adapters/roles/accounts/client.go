package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pet-lost-found/internal/platform/httpclient"
	"pet-lost-found/internal/ports/roles"
)

var (
	ErrAccountsNotConfigured = errors.New("accounts client not configured")
	ErrAccountsUnauthorized  = errors.New("accounts unauthorized")
	ErrAccountsUpstream      = errors.New("accounts upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
}

// Client consulta el servicio de cuentas (ACCOUNTS_BASE_URL).
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.New(httpclient.Config{
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		APIKeyHeader: cfg.APIKeyHeader,
		Timeout:      cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("accounts: %w", err)
	}
	return &Client{http: hc}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.Configured()
}

// RolesResponse: {"user_id": "...", "roles": ["adopter", "shelter"]}
type RolesResponse struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

// GetRoles trae los roles de userID.
func (c *Client) GetRoles(ctx context.Context, userID string) ([]roles.Role, error) {
	if !c.IsConfigured() {
		return nil, ErrAccountsNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("userID required")
	}

	path := "/v1/users/" + url.PathEscape(userID) + "/roles"

	var out RolesResponse
	err := c.http.GetJSON(ctx, path, &out)
	switch {
	case httpclient.IsAuthFailure(err):
		return nil, ErrAccountsUnauthorized
	case httpclient.IsNotFound(err):
		return []roles.Role{}, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrAccountsUpstream, err)
	}

	rs := make([]roles.Role, 0, len(out.Roles))
	for _, r := range out.Roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		rs = append(rs, roles.Role(r))
	}
	return rs, nil
}
