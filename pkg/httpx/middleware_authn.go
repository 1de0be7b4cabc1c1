package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// AuthnOption customizes AuthnMiddleware.
type AuthnOption func(*authn)

type authn struct {
	onReject func(r *http.Request, err error)
}

// OnReject registers a hook called for every rejected request. err is nil
// when the bearer token was missing entirely.
func OnReject(fn func(r *http.Request, err error)) AuthnOption {
	return func(a *authn) { a.onReject = fn }
}

// AuthnMiddleware requires a valid access token in the Authorization header.
// The verification error is logged but never returned to the caller; every
// failure is the same flat 401.
func AuthnMiddleware(v jwtx.Verifier, opts ...AuthnOption) Middleware {
	a := &authn{onReject: func(*http.Request, error) {}}
	for _, opt := range opts {
		opt(a)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				a.onReject(r, nil)
				writeBearerError(w)
				return
			}

			claims, err := v.Verify(raw, jwtx.KindAccess)
			if err != nil {
				a.onReject(r, err)
				log.Debug("access token rejected", "reason", jwtx.Reason(err), "err", err)
				writeBearerError(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.WithSubject(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750 challenge with a flat body.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized")
}
