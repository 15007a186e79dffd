package clients

import (
	"context"
	"net/http"
)

// AuthClient proxies auth-service endpoints.
type AuthClient struct {
	base *BaseClient
}

// NewAuthClient returns client.
func NewAuthClient(baseURL string, httpClient HTTPDoer) *AuthClient {
	return &AuthClient{base: NewBaseClient(baseURL, httpClient)}
}

// Login forwards login payload.
func (c *AuthClient) Login(ctx context.Context, body []byte) (*Response, error) {
	return c.base.Do(ctx, http.MethodPost, "/auth/login", body, nil)
}

// Session asks auth-service to resolve the caller's token.
func (c *AuthClient) Session(ctx context.Context, token string) (*Response, error) {
	return c.base.Do(ctx, http.MethodGet, "/auth/session", nil, bearer(token))
}
