package notesdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/notes/pkg/sessionstore"
)

// Client talks to the notes service on behalf of a single session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// OnLoginRequired is called when a request was rejected and the session
	// could not be renewed. The session store is already cleared by then
	// (except for ErrNoRefreshToken, where there was nothing to clear).
	OnLoginRequired func(err error)

	store     sessionstore.Store
	refresher *Refresher
	logger    *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithLoginRequired(fn func(err error)) Option {
	return func(c *Client) { c.OnLoginRequired = fn }
}

// New creates a client for baseURL that keeps its tokens in store.
func New(baseURL string, store sessionstore.Store, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		OnLoginRequired: func(error) {},
		store:           store,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.refresher = NewRefresher(store, c.exchangeRefreshToken, c.logger)
	return c
}

// Store returns the session store backing this client.
func (c *Client) Store() sessionstore.Store { return c.store }

// Refresher returns the coordinator shared by every request of this client.
func (c *Client) Refresher() *Refresher { return c.refresher }

// Do sends req. If the server answers 401 the access token is refreshed
// (sharing any refresh already in flight) and the request is sent once more
// with the new token. The retry's response is returned as-is, even when it
// is another 401.
//
// When the refresh fails OnLoginRequired is called and the refresh error is
// returned. Transport errors match ErrNetworkFailure.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := bufferBody(req); err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	ctx := req.Context()
	token, err := c.refresher.Refresh(ctx)
	if err != nil {
		if errors.Is(err, ErrNoRefreshToken) || errors.Is(err, ErrRefreshFailed) {
			c.OnLoginRequired(err)
		}
		return nil, err
	}

	retry, err := cloneWithToken(req, token)
	if err != nil {
		return nil, err
	}
	return c.send(retry)
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetworkFailure, req.Method, req.URL.Path, err)
	}
	return resp, nil
}

// exchangeRefreshToken calls POST /auth/refresh.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}

	resp, err := c.send(req)
	if err != nil {
		return "", err
	}

	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("notesdk: refresh response without access token")
	}
	return out.AccessToken, nil
}

// bufferBody makes sure req can be replayed for the retry.
func bufferBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return nil
	}

	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return fmt.Errorf("notesdk: buffer request body: %w", err)
	}

	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	req.ContentLength = int64(len(data))
	return nil
}

func cloneWithToken(req *http.Request, token string) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("notesdk: replay request body: %w", err)
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)
	return retry, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
