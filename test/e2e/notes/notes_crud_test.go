package notes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/notes/pkg/notesdk"
)

func TestNotesLifecycle(t *testing.T) {
	baseURL := setupNotesContainer(t, containerOptions{})
	ctx := t.Context()

	alice := newClient(baseURL, nil)
	signUp(t, alice, "alice")
	mallory := newClient(baseURL, nil)
	signUp(t, mallory, "mallory")

	n, err := alice.CreateNote(ctx, notesdk.CreateNoteRequest{
		Title:      "Trip",
		Content:    "pack bags",
		Categories: []string{"travel", " travel", "todo"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"travel", "todo"}, n.Categories)

	_, err = mallory.GetNote(ctx, n.ID)
	require.ErrorIs(t, err, notesdk.ErrNotFound)

	n, err = alice.AddCategory(ctx, n.ID, "summer")
	require.NoError(t, err)
	require.Equal(t, []string{"travel", "todo", "summer"}, n.Categories)

	n, err = alice.RemoveCategory(ctx, n.ID, "todo")
	require.NoError(t, err)
	require.Equal(t, []string{"travel", "summer"}, n.Categories)

	n, err = alice.ArchiveNote(ctx, n.ID)
	require.NoError(t, err)
	require.True(t, n.IsArchived)

	archived, err := alice.ArchivedNotes(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)

	active, err := alice.ActiveNotes(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	byCategory, err := alice.ListNotes(ctx, notesdk.ListNotesOptions{Category: "summer"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	n, err = alice.UnarchiveNote(ctx, n.ID)
	require.NoError(t, err)
	require.False(t, n.IsArchived)

	require.ErrorIs(t, mallory.DeleteNote(ctx, n.ID), notesdk.ErrNotFound)
	require.NoError(t, alice.DeleteNote(ctx, n.ID))

	_, err = alice.GetNote(ctx, n.ID)
	require.ErrorIs(t, err, notesdk.ErrNotFound)
}

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupNotesContainer(t, containerOptions{})

	live, err := newClient(baseURL, nil).GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
}
