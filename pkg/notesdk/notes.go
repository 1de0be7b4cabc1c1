package notesdk

import (
	"context"
	"fmt"
	"net/http"
	"slices"
)

func notePath(id int64) string { return fmt.Sprintf("/api/notes/%d", id) }

// ListNotes returns the caller's notes, newest first.
func (c *Client) ListNotes(ctx context.Context, opts ListNotesOptions) ([]Note, error) {
	resp, err := c.doAuth(ctx, http.MethodGet, "/api/notes"+opts.query(), nil)
	if err != nil {
		return nil, err
	}

	var notes []Note
	if err := decodeJSON(resp, &notes, http.StatusOK); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) ActiveNotes(ctx context.Context) ([]Note, error) {
	archived := false
	return c.ListNotes(ctx, ListNotesOptions{Archived: &archived})
}

func (c *Client) ArchivedNotes(ctx context.Context) ([]Note, error) {
	archived := true
	return c.ListNotes(ctx, ListNotesOptions{Archived: &archived})
}

func (c *Client) GetNote(ctx context.Context, id int64) (*Note, error) {
	resp, err := c.doAuth(ctx, http.MethodGet, notePath(id), nil)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) CreateNote(ctx context.Context, in CreateNoteRequest) (*Note, error) {
	resp, err := c.doAuth(ctx, http.MethodPost, "/api/notes", in)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusCreated); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote applies a partial update and returns the stored note.
func (c *Client) UpdateNote(ctx context.Context, id int64, in UpdateNoteRequest) (*Note, error) {
	resp, err := c.doAuth(ctx, http.MethodPut, notePath(id), in)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	resp, err := c.doAuth(ctx, http.MethodDelete, notePath(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) ArchiveNote(ctx context.Context, id int64) (*Note, error) {
	archived := true
	return c.UpdateNote(ctx, id, UpdateNoteRequest{IsArchived: &archived})
}

func (c *Client) UnarchiveNote(ctx context.Context, id int64) (*Note, error) {
	archived := false
	return c.UpdateNote(ctx, id, UpdateNoteRequest{IsArchived: &archived})
}

// AddCategory appends name to the note's categories unless already present.
func (c *Client) AddCategory(ctx context.Context, id int64, name string) (*Note, error) {
	note, err := c.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.HasCategory(name) {
		return note, nil
	}

	categories := append(slices.Clone(note.Categories), name)
	return c.UpdateNote(ctx, id, UpdateNoteRequest{Categories: &categories})
}

// RemoveCategory drops name from the note's categories.
func (c *Client) RemoveCategory(ctx context.Context, id int64, name string) (*Note, error) {
	note, err := c.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	categories := slices.DeleteFunc(slices.Clone(note.Categories), func(s string) bool { return s == name })
	if categories == nil {
		categories = []string{}
	}
	return c.UpdateNote(ctx, id, UpdateNoteRequest{Categories: &categories})
}
