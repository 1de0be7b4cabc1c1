package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// AuthHandler serves the unauthenticated token endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleSignIn handles POST /auth/sign-in
//
//	@Summary		Sign in
//	@Description	Exchanges a username and password for an access/refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.Credentials		true	"username and password"
//	@Success		200		{object}	notesdk.TokenResponse	"accessToken, refreshToken"
//	@Failure		400		{object}	notesdk.APIError		"error, message"
//	@Failure		401		{object}	notesdk.APIError		"error, message"
//	@Failure		500		{object}	notesdk.APIError		"error, message"
//	@Router			/auth/sign-in [post].
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req notesdk.Credentials
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		notesdk.ErrInvalidRequest.WithMessage("username and password are required").WriteError(w)
		return
	}

	pair, err := h.AuthService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			notesdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		slogx.FromContext(r.Context()).Error("sign-in failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleSignUp handles POST /auth/sign-up
//
//	@Summary		Sign up
//	@Description	Creates an account and returns its first token pair.
//	@Description	Usernames are 3-64 characters of [A-Za-z0-9_.-]; passwords must not be empty.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.Credentials		true	"username and password"
//	@Success		201		{object}	notesdk.TokenResponse	"accessToken, refreshToken"
//	@Failure		400		{object}	notesdk.APIError		"error, message"
//	@Failure		409		{object}	notesdk.APIError		"error, message"
//	@Failure		500		{object}	notesdk.APIError		"error, message"
//	@Router			/auth/sign-up [post].
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req notesdk.Credentials
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.SignUp(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrValidation):
		notesdk.ErrValidation.WithMessage(validationMessage(err)).WriteError(w)
		return
	case errors.Is(err, service.ErrUsernameTaken):
		notesdk.ErrUsernameTaken.WriteError(w)
		return
	default:
		slogx.FromContext(r.Context()).Error("sign-up failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, notesdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleRefresh handles POST /auth/refresh
//
//	@Summary		Refresh the access token
//	@Description	Trades a refresh token for a new access token. The refresh token is not rotated.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.RefreshRequest	true	"refreshToken"
//	@Success		200		{object}	notesdk.RefreshResponse	"accessToken"
//	@Failure		400		{object}	notesdk.APIError		"error, message"
//	@Failure		401		{object}	notesdk.APIError		"error, message"
//	@Failure		500		{object}	notesdk.APIError		"error, message"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req notesdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		notesdk.ErrInvalidRequest.WithMessage("refreshToken is required").WriteError(w)
		return
	}

	access, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			notesdk.ErrInvalidRefreshToken.WriteError(w)
			return
		}
		slogx.FromContext(r.Context()).Error("refresh failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.RefreshResponse{AccessToken: access})
}

// validationMessage strips the sentinel prefix, leaving the human part.
func validationMessage(err error) string {
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, ": "); ok {
		return rest
	}
	return msg
}
