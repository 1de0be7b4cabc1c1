package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the drivers. The
// repositories hang off it so a Tx exposes the same surface and nested
// transactions are impossible to start by accident.
type Store interface {
	Users() Users
	Notes() Notes

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user. A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to the user's notes.
	DeleteUser(ctx context.Context, id string) error
}

// NoteFilter narrows ListNotes. Nil/empty fields match everything.
type NoteFilter struct {
	Archived *bool
	Category string
}

type Notes interface {
	// CreateNote inserts the note and its categories and returns the stored
	// note with its ID assigned.
	CreateNote(ctx context.Context, n domain.Note) (domain.Note, error)

	// GetNote returns ErrNotFound when the note does not exist or belongs to
	// another user.
	GetNote(ctx context.Context, userID string, id int64) (domain.Note, error)

	// ListNotes returns the user's notes, newest first.
	ListNotes(ctx context.Context, userID string, f NoteFilter) ([]domain.Note, error)

	// UpdateNote writes title, content, archive flag, categories and
	// updated_at of an existing note owned by n.UserID.
	UpdateNote(ctx context.Context, n domain.Note) error

	DeleteNote(ctx context.Context, userID string, id int64) error
}
