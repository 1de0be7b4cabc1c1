package notesdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/notes/pkg/sessionstore"
)

// ExchangeFunc trades a refresh token for a new access token.
type ExchangeFunc func(ctx context.Context, refreshToken string) (string, error)

type refreshState int

const (
	stateIdle refreshState = iota
	stateRefreshing
)

// PendingRefresh is the result slot handed to every caller of
// RequestRefresh. All slots queued behind the same refresh resolve with the
// same token or the same error.
type PendingRefresh struct {
	done  chan struct{}
	token string
	err   error
}

func newPending() *PendingRefresh {
	return &PendingRefresh{done: make(chan struct{})}
}

func resolved(token string, err error) *PendingRefresh {
	p := newPending()
	p.resolve(token, err)
	return p
}

func (p *PendingRefresh) resolve(token string, err error) {
	p.token, p.err = token, err
	close(p.done)
}

// Done is closed once the result is available.
func (p *PendingRefresh) Done() <-chan struct{} { return p.done }

// Wait blocks until the refresh completes or ctx ends. Giving up on the
// wait does not cancel the refresh itself.
func (p *PendingRefresh) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.token, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Refresher makes sure that at most one refresh is in flight for a session
// store. Callers arriving while a refresh is running queue up behind it
// instead of starting their own.
type Refresher struct {
	store    sessionstore.Store
	exchange ExchangeFunc
	logger   *slog.Logger

	mu      sync.Mutex
	state   refreshState
	waiters []*PendingRefresh
	// gen changes whenever the session is replaced or cleared by the client.
	// A refresh started under an older gen must not write its result.
	gen uint64
}

var errSessionEnded = errors.New("notesdk: session ended during refresh")

func NewRefresher(store sessionstore.Store, exchange ExchangeFunc, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{store: store, exchange: exchange, logger: logger}
}

// RequestRefresh queues the caller for the next access token. When no
// refresh is running it starts one. Without a stored refresh token the
// returned slot is already resolved with ErrNoRefreshToken.
func (r *Refresher) RequestRefresh(ctx context.Context) *PendingRefresh {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := newPending()
	if r.state == stateRefreshing {
		r.waiters = append(r.waiters, p)
		return p
	}

	// Read under the lock so a failed refresh that just cleared the store
	// cannot be followed by a second refresh with the discarded token.
	sess, err := r.store.Get(ctx)
	if err != nil {
		return resolved("", fmt.Errorf("notesdk: read session: %w", err))
	}
	if sess.RefreshToken == "" {
		return resolved("", ErrNoRefreshToken)
	}

	r.state = stateRefreshing
	r.waiters = append(r.waiters, p)
	go r.run(context.WithoutCancel(ctx), r.gen, sess.RefreshToken)
	return p
}

// Refresh is RequestRefresh followed by Wait.
func (r *Refresher) Refresh(ctx context.Context) (string, error) {
	return r.RequestRefresh(ctx).Wait(ctx)
}

// InFlight reports whether a refresh is currently running.
func (r *Refresher) InFlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateRefreshing
}

// invalidate marks any refresh in flight as stale. Called before the client
// replaces or clears the session.
func (r *Refresher) invalidate() {
	r.mu.Lock()
	r.gen++
	r.mu.Unlock()
}

func (r *Refresher) run(ctx context.Context, gen uint64, refreshToken string) {
	token, err := r.exchange(ctx, refreshToken)

	r.mu.Lock()
	switch {
	case !r.current(ctx, gen, refreshToken):
		token, err = r.replacement(ctx)
		r.logger.Debug("session changed during refresh, result dropped")
	case err == nil:
		if serr := r.store.Set(ctx, token, ""); serr != nil {
			token, err = r.fail(ctx, serr)
		} else {
			r.logger.Debug("access token refreshed")
		}
	default:
		token, err = r.fail(ctx, err)
	}

	waiters := r.waiters
	r.waiters = nil
	r.state = stateIdle
	r.mu.Unlock()

	for _, w := range waiters {
		w.resolve(token, err)
	}
}

// current reports whether the session the refresh started from is still the
// stored one. Caller holds r.mu.
func (r *Refresher) current(ctx context.Context, gen uint64, refreshToken string) bool {
	if r.gen != gen {
		return false
	}
	sess, err := r.store.Get(ctx)
	if err != nil {
		return true
	}
	return sess.RefreshToken == refreshToken
}

// replacement resolves waiters of a stale refresh with whatever session is
// stored now. Caller holds r.mu.
func (r *Refresher) replacement(ctx context.Context) (string, error) {
	sess, err := r.store.Get(ctx)
	if err == nil && sess.AccessToken != "" && sess.RefreshToken != "" {
		return sess.AccessToken, nil
	}
	return "", fmt.Errorf("%w: %w", ErrRefreshFailed, errSessionEnded)
}

// fail clears the session and wraps cause as a refresh failure. Caller holds
// r.mu.
func (r *Refresher) fail(ctx context.Context, cause error) (string, error) {
	err := fmt.Errorf("%w: %w", ErrRefreshFailed, cause)
	if cerr := r.store.Clear(ctx); cerr != nil {
		r.logger.Warn("clear session after failed refresh", "err", cerr)
	}
	r.logger.Debug("token refresh failed", "err", err)
	return "", err
}

func (r *Refresher) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.waiters)
}
