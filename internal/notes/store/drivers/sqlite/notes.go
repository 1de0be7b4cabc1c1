package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/store/drivers/sqlite/gen"
)

type notesRepo struct {
	q *gen.Queries
}

// CreateNote writes several rows; callers run it inside WithTx.
func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) (domain.Note, error) {
	id, err := r.q.CreateNote(ctx, gen.CreateNoteParams{
		UserID:     n.UserID,
		Title:      n.Title,
		Content:    n.Content,
		IsArchived: n.IsArchived,
		CreatedAt:  n.CreatedAt.UTC(),
		UpdatedAt:  n.UpdatedAt.UTC(),
	})
	if err != nil {
		return domain.Note{}, err
	}

	n.ID = id
	n.Categories = domain.NormalizeCategories(n.Categories)
	if err := r.insertCategories(ctx, id, n.Categories); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

func (r *notesRepo) GetNote(ctx context.Context, userID string, id int64) (domain.Note, error) {
	row, err := r.q.GetNote(ctx, gen.GetNoteParams{ID: id, UserID: userID})
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}

	cats, err := r.q.ListNoteCategories(ctx, id)
	if err != nil {
		return domain.Note{}, err
	}

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return mapNote(row, names), nil
}

func (r *notesRepo) ListNotes(ctx context.Context, userID string, f store.NoteFilter) ([]domain.Note, error) {
	params := gen.ListNotesParams{UserID: userID, Category: f.Category}
	if f.Archived != nil {
		params.Archived = sql.NullBool{Bool: *f.Archived, Valid: true}
	}

	rows, err := r.q.ListNotes(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.Note{}, nil
	}

	cats, err := r.q.ListUserNoteCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	byNote := make(map[int64][]string, len(rows))
	for _, c := range cats {
		byNote[c.NoteID] = append(byNote[c.NoteID], c.Name)
	}

	notes := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, mapNote(row, byNote[row.ID]))
	}
	return notes, nil
}

// UpdateNote rewrites the note row and replaces its categories; callers run
// it inside WithTx.
func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) error {
	affected, err := r.q.UpdateNote(ctx, gen.UpdateNoteParams{
		Title:      n.Title,
		Content:    n.Content,
		IsArchived: n.IsArchived,
		UpdatedAt:  n.UpdatedAt.UTC(),
		ID:         n.ID,
		UserID:     n.UserID,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	if err := r.q.DeleteNoteCategories(ctx, n.ID); err != nil {
		return err
	}
	return r.insertCategories(ctx, n.ID, domain.NormalizeCategories(n.Categories))
}

func (r *notesRepo) DeleteNote(ctx context.Context, userID string, id int64) error {
	affected, err := r.q.DeleteNote(ctx, gen.DeleteNoteParams{ID: id, UserID: userID})
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *notesRepo) insertCategories(ctx context.Context, noteID int64, names []string) error {
	for i, name := range names {
		err := r.q.InsertNoteCategory(ctx, gen.InsertNoteCategoryParams{
			NoteID:   noteID,
			Position: int64(i),
			Name:     name,
		})
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}
