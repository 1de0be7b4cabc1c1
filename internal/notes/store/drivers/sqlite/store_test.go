package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func createNote(t *testing.T, s store.Store, n domain.Note) domain.Note {
	t.Helper()

	var out domain.Note
	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		var err error
		out, err = tx.Notes().CreateNote(context.Background(), n)
		return err
	})
	require.NoError(t, err)
	return out
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())

	version, dirty, err := s.SchemaVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 2, version)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "alice")

	got, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, u.PasswordHash, got.PasswordHash)

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = s.Users().GetUserByUsername(ctx, "bob")
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := u
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
}

func TestNotes_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	now := time.Now().UTC().Truncate(time.Millisecond)
	n := createNote(t, s, domain.Note{
		UserID:     alice.ID,
		Title:      "groceries",
		Content:    "milk",
		Categories: []string{" home ", "", "errands", "home"},
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NotZero(t, n.ID)
	require.Equal(t, []string{"home", "errands"}, n.Categories)

	got, err := s.Notes().GetNote(ctx, alice.ID, n.ID)
	require.NoError(t, err)
	require.Equal(t, "groceries", got.Title)
	require.Equal(t, []string{"home", "errands"}, got.Categories)
	require.WithinDuration(t, now, got.CreatedAt, time.Millisecond)

	// Owned by someone else looks exactly like missing.
	_, err = s.Notes().GetNote(ctx, bob.ID, n.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	got.Title = "shopping"
	got.IsArchived = true
	got.Categories = []string{"errands", "weekly"}
	got.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Notes().UpdateNote(ctx, got)
	}))

	got, err = s.Notes().GetNote(ctx, alice.ID, n.ID)
	require.NoError(t, err)
	require.Equal(t, "shopping", got.Title)
	require.True(t, got.IsArchived)
	require.Equal(t, []string{"errands", "weekly"}, got.Categories)

	stolen := got
	stolen.UserID = bob.ID
	require.ErrorIs(t, s.Notes().UpdateNote(ctx, stolen), store.ErrNotFound)

	require.ErrorIs(t, s.Notes().DeleteNote(ctx, bob.ID, n.ID), store.ErrNotFound)
	require.NoError(t, s.Notes().DeleteNote(ctx, alice.ID, n.ID))
	_, err = s.Notes().GetNote(ctx, alice.ID, n.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotes_ListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	mk := func(user, title string, offset time.Duration, archived bool, cats ...string) {
		createNote(t, s, domain.Note{
			UserID:     user,
			Title:      title,
			Categories: cats,
			IsArchived: archived,
			CreatedAt:  base.Add(offset),
			UpdatedAt:  base.Add(offset),
		})
	}
	mk(alice.ID, "first", 0, false, "work")
	mk(alice.ID, "second", time.Minute, true, "home")
	mk(alice.ID, "third", 2*time.Minute, false, "work", "home")
	mk(bob.ID, "bobs", 3*time.Minute, false, "work")

	titles := func(f store.NoteFilter) []string {
		notes, err := s.Notes().ListNotes(ctx, alice.ID, f)
		require.NoError(t, err)
		out := make([]string, 0, len(notes))
		for _, n := range notes {
			out = append(out, n.Title)
		}
		return out
	}

	archived, active := true, false
	require.Equal(t, []string{"third", "second", "first"}, titles(store.NoteFilter{}))
	require.Equal(t, []string{"second"}, titles(store.NoteFilter{Archived: &archived}))
	require.Equal(t, []string{"third", "first"}, titles(store.NoteFilter{Archived: &active}))
	require.Equal(t, []string{"third", "first"}, titles(store.NoteFilter{Category: "work"}))
	require.Equal(t, []string{"third"}, titles(store.NoteFilter{Category: "home", Archived: &active}))
	require.Empty(t, titles(store.NoteFilter{Category: "nope"}))

	notes, err := s.Notes().ListNotes(ctx, alice.ID, store.NoteFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"work", "home"}, notes[0].Categories)
}

func TestDeleteUserCascadesNotes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	now := time.Now().UTC()
	n := createNote(t, s, domain.Note{UserID: alice.ID, Title: "t", Categories: []string{"x"}, CreatedAt: now, UpdatedAt: now})

	require.NoError(t, s.Users().DeleteUser(ctx, alice.ID))

	_, err := s.Notes().GetNote(ctx, alice.ID, n.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	now := time.Now().UTC()

	boom := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Notes().CreateNote(ctx, domain.Note{UserID: alice.ID, Title: "t", CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	notes, err := s.Notes().ListNotes(ctx, alice.ID, store.NoteFilter{})
	require.NoError(t, err)
	require.Empty(t, notes)
}
