package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

const MaxTitleLength = 200

var ErrNoteNotFound = errors.New("note_not_found")

// NoteInput carries the fields of a new note.
type NoteInput struct {
	Title      string
	Content    string
	Categories []string
	IsArchived bool
}

// NotePatch is a partial update; nil fields are left untouched. A non-nil
// Categories replaces the whole set.
type NotePatch struct {
	Title      *string
	Content    *string
	Categories *[]string
	IsArchived *bool
}

type NoteService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *NoteService) List(ctx context.Context, userID string, f store.NoteFilter) ([]domain.Note, error) {
	f.Category = strings.TrimSpace(f.Category)
	return s.Store.Notes().ListNotes(ctx, userID, f)
}

func (s *NoteService) Get(ctx context.Context, userID string, id int64) (domain.Note, error) {
	n, err := s.Store.Notes().GetNote(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Note{}, ErrNoteNotFound
	}
	return n, err
}

func (s *NoteService) Create(ctx context.Context, userID string, in NoteInput) (domain.Note, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return domain.Note{}, err
	}

	now := s.now()
	n := domain.Note{
		UserID:     userID,
		Title:      title,
		Content:    in.Content,
		Categories: domain.NormalizeCategories(in.Categories),
		IsArchived: in.IsArchived,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var created domain.Note
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		created, err = tx.Notes().CreateNote(ctx, n)
		return err
	})
	if err != nil {
		return domain.Note{}, err
	}

	slogx.FromContext(ctx).Debug("note created", slog.Int64("note_id", created.ID))
	return created, nil
}

// Update applies p to the note inside one transaction and returns the
// stored result.
func (s *NoteService) Update(ctx context.Context, userID string, id int64, p NotePatch) (domain.Note, error) {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if err := validateTitle(t); err != nil {
			return domain.Note{}, err
		}
		p.Title = &t
	}

	var updated domain.Note
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Notes().GetNote(ctx, userID, id)
		if err != nil {
			return err
		}

		if p.Title != nil {
			n.Title = *p.Title
		}
		if p.Content != nil {
			n.Content = *p.Content
		}
		if p.Categories != nil {
			n.Categories = domain.NormalizeCategories(*p.Categories)
		}
		if p.IsArchived != nil {
			n.IsArchived = *p.IsArchived
		}
		n.UpdatedAt = s.now()

		if err := tx.Notes().UpdateNote(ctx, n); err != nil {
			return err
		}
		updated = n
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Note{}, ErrNoteNotFound
	}
	if err != nil {
		return domain.Note{}, err
	}
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, userID string, id int64) error {
	err := s.Store.Notes().DeleteNote(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoteNotFound
	}
	return err
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
	}
	return nil
}

func (s *NoteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
