package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/telemetry"
	"github.com/aussiebroadwan/notes/pkg/cryptox"
	"github.com/aussiebroadwan/notes/pkg/idx"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

const (
	MinPasswordLength = 1
	MinUsernameLength = 3
	MaxUsernameLength = 64
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrValidation         = errors.New("validation_failed")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type AuthService struct {
	Store   store.Store
	Codec   *jwtx.HS256Codec
	Hasher  *cryptox.Hasher
	Metrics *telemetry.Metrics

	// Now defaults to time.Now.
	Now func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// SignIn checks the credentials and issues a fresh token pair. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	username = strings.TrimSpace(username)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.Metrics.AuthAttempt("sign_in", "error")
			return nil, err
		}
		// Burn the same argon2 work as a real check.
		_ = s.Hasher.Verify(password, s.dummy())
		l.Info("sign-in for unknown user", slog.String("username", username))
		s.Metrics.AuthAttempt("sign_in", "denied")
		return nil, ErrInvalidCredentials
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("err", err))
		}
		s.Metrics.AuthAttempt("sign_in", "denied")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		s.Metrics.AuthAttempt("sign_in", "error")
		return nil, err
	}

	l.Info("user signed in", slog.String("user_id", user.ID))
	s.Metrics.AuthAttempt("sign_in", "ok")
	return pair, nil
}

// SignUp creates the account and signs the new user in.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	username = strings.TrimSpace(username)
	if err := ValidateCredentials(username, password); err != nil {
		s.Metrics.AuthAttempt("sign_up", "invalid")
		return nil, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		s.Metrics.AuthAttempt("sign_up", "error")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			s.Metrics.AuthAttempt("sign_up", "conflict")
			return nil, ErrUsernameTaken
		}
		s.Metrics.AuthAttempt("sign_up", "error")
		return nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		s.Metrics.AuthAttempt("sign_up", "error")
		return nil, err
	}

	slogx.FromContext(ctx).Info("user signed up", slog.String("user_id", user.ID))
	s.Metrics.AuthAttempt("sign_up", "ok")
	return pair, nil
}

// Refresh trades a valid refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Codec.Verify(strings.TrimSpace(refreshToken), jwtx.KindRefresh)
	if err != nil {
		l.Info("refresh token rejected", slog.String("reason", jwtx.Reason(err)))
		s.Metrics.TokenRejected(jwtx.KindRefresh, err)
		s.Metrics.AuthAttempt("refresh", "denied")
		return "", ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("refresh for deleted user", slog.String("user_id", claims.Subject))
			s.Metrics.AuthAttempt("refresh", "denied")
			return "", ErrInvalidRefresh
		}
		s.Metrics.AuthAttempt("refresh", "error")
		return "", err
	}

	access, err := s.Codec.SignWithUsername(user.ID, user.Username, jwtx.KindAccess)
	if err != nil {
		s.Metrics.AuthAttempt("refresh", "error")
		return "", err
	}
	s.Metrics.TokenIssued(jwtx.KindAccess)
	s.Metrics.AuthAttempt("refresh", "ok")
	return access, nil
}

// ValidateCredentials enforces the sign-up rules on an already trimmed
// username.
func ValidateCredentials(username, password string) error {
	switch n := len(username); {
	case n < MinUsernameLength || n > MaxUsernameLength:
		return fmt.Errorf("%w: username must be %d-%d characters", ErrValidation, MinUsernameLength, MaxUsernameLength)
	case !usernamePattern.MatchString(username):
		return fmt.Errorf("%w: username may only contain letters, digits, '_', '.' and '-'", ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

func (s *AuthService) issuePair(user domain.User) (*domain.TokenPair, error) {
	access, err := s.Codec.SignWithUsername(user.ID, user.Username, jwtx.KindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Codec.SignWithUsername(user.ID, user.Username, jwtx.KindRefresh)
	if err != nil {
		return nil, err
	}
	s.Metrics.TokenIssued(jwtx.KindAccess)
	s.Metrics.TokenIssued(jwtx.KindRefresh)

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessTTL:    s.Codec.TTL(jwtx.KindAccess),
	}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
