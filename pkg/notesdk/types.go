package notesdk

import (
	"net/url"
	"strconv"
	"time"
)

// ============================================================================
// Auth
// ============================================================================

// Credentials is the body of POST /auth/sign-in and POST /auth/sign-up.
type Credentials struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"correct horse battery"`
}

// TokenResponse is returned by sign-in and sign-up.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse carries only the new access token; the refresh token is
// not rotated.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// ============================================================================
// Notes
// ============================================================================

// Note is a single note as seen on the wire.
type Note struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Categories []string  `json:"category"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasCategory reports whether name is one of the note's categories.
func (n Note) HasCategory(name string) bool {
	for _, c := range n.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// CreateNoteRequest is the body of POST /api/notes.
type CreateNoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Categories []string `json:"category,omitempty"`
}

// UpdateNoteRequest is a partial update; nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title      *string   `json:"title,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Categories *[]string `json:"category,omitempty"`
	IsArchived *bool     `json:"isArchived,omitempty"`
}

// ListNotesOptions filters GET /api/notes. Zero value lists everything.
type ListNotesOptions struct {
	Archived *bool
	Category string
}

func (o ListNotesOptions) query() string {
	q := url.Values{}
	if o.Archived != nil {
		q.Set("archived", strconv.FormatBool(*o.Archived))
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ============================================================================
// Health
// ============================================================================

type LivezResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

type ReadyzResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
