// Package sessionstore persists the client-side session: the current access
// token and refresh token. Values are opaque and never validated here.
package sessionstore

import "context"

// Fixed entry names shared by every driver.
const (
	KeyAccessToken  = "auth_token"
	KeyRefreshToken = "refresh_token"
)

// Session is the (access, refresh) pair. Either field may be empty.
type Session struct {
	AccessToken  string `json:"auth_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Empty reports whether neither token is present.
func (s Session) Empty() bool { return s.AccessToken == "" && s.RefreshToken == "" }

// Store holds at most one session.
//
// Set overwrites the access token and, when refresh is non-empty, the refresh
// token; an empty refresh keeps whatever was stored. Clear removes both
// entries and succeeds on an already empty store.
type Store interface {
	Get(ctx context.Context) (Session, error)
	Set(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// IsAuthenticated reports whether an access token is present. It does not
// check whether the token is still valid.
func IsAuthenticated(ctx context.Context, s Store) bool {
	sess, err := s.Get(ctx)
	return err == nil && sess.AccessToken != ""
}

func merge(cur Session, access, refresh string) Session {
	cur.AccessToken = access
	if refresh != "" {
		cur.RefreshToken = refresh
	}
	return cur
}
