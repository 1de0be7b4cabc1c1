package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the shortest shared secret HS256Codec accepts.
const MinSecretSize = 32

// HS256Options tunes an HS256Codec. Zero values fall back to defaults.
type HS256Options struct {
	// Issuer is written to "iss" and enforced on verify when non-empty.
	Issuer string

	AccessTTL  time.Duration // default: DefaultAccessTokenTTL
	RefreshTTL time.Duration // default: DefaultRefreshTokenTTL

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration

	// Now is the clock used for issuing and verifying. Default: time.Now.
	Now func() time.Time
}

// HS256Codec signs and verifies tokens with a single shared symmetric
// secret. The algorithm is fixed; a token declaring anything else is
// rejected before its claims are looked at.
type HS256Codec struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	leeway     time.Duration
	now        func() time.Time
	parser     *jwt.Parser
}

var _ Codec = (*HS256Codec)(nil)

// NewHS256 creates a codec from the shared secret.
func NewHS256(secret []byte, opts HS256Options) (*HS256Codec, error) {
	if len(secret) < MinSecretSize {
		return nil, ErrWeakSecret
	}

	c := &HS256Codec{
		secret:     append([]byte(nil), secret...),
		issuer:     opts.Issuer,
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		leeway:     opts.Leeway,
		now:        opts.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			// Claims are validated by us against the injected clock.
			jwt.WithoutClaimsValidation(),
		),
	}
	if c.accessTTL <= 0 {
		c.accessTTL = DefaultAccessTokenTTL
	}
	if c.refreshTTL <= 0 {
		c.refreshTTL = DefaultRefreshTokenTTL
	}
	if c.now == nil {
		c.now = time.Now
	}

	return c, nil
}

// NewCodec returns the codec every notes component uses. HS256 is the only
// algorithm on offer.
func NewCodec(secret []byte, opts HS256Options) (*HS256Codec, error) {
	return NewHS256(secret, opts)
}

func (c *HS256Codec) Alg() string { return jwt.SigningMethodHS256.Alg() }

// TTL returns the lifetime tokens of the given kind are issued with.
func (c *HS256Codec) TTL(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Sign mints a token of the given kind for subject.
func (c *HS256Codec) Sign(subject string, kind Kind) (string, error) {
	return c.SignWithUsername(subject, "", kind)
}

// SignWithUsername is Sign with the informational username claim set.
func (c *HS256Codec) SignWithUsername(subject, username string, kind Kind) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidClaim)
	}
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidClaim, kind)
	}

	claims := NewClaims(subject, username, kind, c.TTL(kind), c.issuer, c.now().UTC())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first and only then the claims: expiry, kind
// (when expected is non-empty) and issuer.
func (c *HS256Codec) Verify(raw string, expected Kind) (Claims, error) {
	token, err := c.parser.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	// Now check all the claim requirements
	if err := claims.ValidateExpiryAt(c.now().UTC(), c.leeway); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}
	if err := claims.ValidateKind(expected); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
