package notesdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/notes/pkg/sessionstore"
)

// SignIn authenticates and stores the returned token pair.
func (c *Client) SignIn(ctx context.Context, username, password string) (*TokenResponse, error) {
	return c.authenticate(ctx, "/auth/sign-in", http.StatusOK, Credentials{Username: username, Password: password})
}

// SignUp registers a new account and stores the returned token pair.
func (c *Client) SignUp(ctx context.Context, username, password string) (*TokenResponse, error) {
	return c.authenticate(ctx, "/auth/sign-up", http.StatusCreated, Credentials{Username: username, Password: password})
}

func (c *Client) authenticate(ctx context.Context, path string, expected int, creds Credentials) (*TokenResponse, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, path, creds)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var tokens TokenResponse
	if err := decodeJSON(resp, &tokens, expected); err != nil {
		return nil, err
	}

	c.refresher.invalidate()
	if err := c.store.Set(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		return nil, fmt.Errorf("notesdk: store session: %w", err)
	}
	return &tokens, nil
}

// Logout forgets the session. Tokens are stateless, so there is nothing to
// tell the server. Logging out twice is fine.
func (c *Client) Logout(ctx context.Context) error {
	c.refresher.invalidate()
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("notesdk: logout: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether an access token is stored. The token may
// still be expired; the next request finds out.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	return sessionstore.IsAuthenticated(ctx, c.store)
}

// AccessToken returns the stored access token, or "" when signed out.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	sess, err := c.store.Get(ctx)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// GetLiveness calls GET /livez.
func (c *Client) GetLiveness(ctx context.Context) (*LivezResponse, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var out LivezResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
