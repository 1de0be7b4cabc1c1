package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/notes/internal/notes/domain"
	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// NotesHandler serves /api/notes. Every route sits behind AuthnMiddleware,
// so the subject is always present in the context.
type NotesHandler struct {
	NoteService *service.NoteService
}

// HandleList handles GET /api/notes
//
//	@Summary		List notes
//	@Description	Lists the caller's notes, newest first.
//	@Tags			Notes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			archived	query		bool			false	"only archived (true) or only active (false) notes"
//	@Param			category	query		string			false	"only notes carrying this category"
//	@Success		200			{array}		notesdk.Note
//	@Failure		400			{object}	notesdk.APIError	"error, message"
//	@Failure		401			{object}	notesdk.APIError	"error"
//	@Router			/api/notes [get].
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.SubjectFromContext(r.Context())

	var f store.NoteFilter
	if v := r.URL.Query().Get("archived"); v != "" {
		archived, err := strconv.ParseBool(v)
		if err != nil {
			notesdk.ErrValidation.WithMessage("archived must be true or false").WriteError(w)
			return
		}
		f.Archived = &archived
	}
	f.Category = r.URL.Query().Get("category")

	notes, err := h.NoteService.List(r.Context(), userID, f)
	if err != nil {
		h.serverError(w, r, "list notes", err)
		return
	}

	out := make([]notesdk.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, toWire(n))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/notes
//
//	@Summary		Create a note
//	@Tags			Notes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		notesdk.CreateNoteRequest	true	"title, content, category"
//	@Success		201		{object}	notesdk.Note
//	@Failure		400		{object}	notesdk.APIError	"error, message"
//	@Failure		401		{object}	notesdk.APIError	"error"
//	@Router			/api/notes [post].
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.SubjectFromContext(r.Context())

	var req notesdk.CreateNoteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	n, err := h.NoteService.Create(r.Context(), userID, service.NoteInput{
		Title:      req.Title,
		Content:    req.Content,
		Categories: req.Categories,
	})
	if err != nil {
		h.writeError(w, r, "create note", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toWire(n))
}

// HandleGet handles GET /api/notes/{id}
//
//	@Summary		Get a note
//	@Tags			Notes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"note id"
//	@Success		200	{object}	notesdk.Note
//	@Failure		401	{object}	notesdk.APIError	"error"
//	@Failure		404	{object}	notesdk.APIError	"error, message"
//	@Router			/api/notes/{id} [get].
func (h *NotesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.SubjectFromContext(r.Context())
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	n, err := h.NoteService.Get(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, r, "get note", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toWire(n))
}

// HandleUpdate handles PUT /api/notes/{id}
//
//	@Summary		Update a note
//	@Description	Partial update. Omitted fields keep their value; a category array replaces the whole set.
//	@Tags			Notes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int							true	"note id"
//	@Param			request	body		notesdk.UpdateNoteRequest	true	"fields to change"
//	@Success		200		{object}	notesdk.Note
//	@Failure		400		{object}	notesdk.APIError	"error, message"
//	@Failure		401		{object}	notesdk.APIError	"error"
//	@Failure		404		{object}	notesdk.APIError	"error, message"
//	@Router			/api/notes/{id} [put].
func (h *NotesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.SubjectFromContext(r.Context())
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	var req notesdk.UpdateNoteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		notesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	n, err := h.NoteService.Update(r.Context(), userID, id, service.NotePatch{
		Title:      req.Title,
		Content:    req.Content,
		Categories: req.Categories,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		h.writeError(w, r, "update note", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toWire(n))
}

// HandleDelete handles DELETE /api/notes/{id}
//
//	@Summary		Delete a note
//	@Tags			Notes
//	@Security		BearerAuth
//	@Param			id	path	int	true	"note id"
//	@Success		204
//	@Failure		401	{object}	notesdk.APIError	"error"
//	@Failure		404	{object}	notesdk.APIError	"error, message"
//	@Router			/api/notes/{id} [delete].
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.SubjectFromContext(r.Context())
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	if err := h.NoteService.Delete(r.Context(), userID, id); err != nil {
		h.writeError(w, r, "delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotesHandler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		notesdk.ErrNoteNotFound.WriteError(w)
	case errors.Is(err, service.ErrValidation):
		notesdk.ErrValidation.WithMessage(validationMessage(err)).WriteError(w)
	default:
		h.serverError(w, r, op, err)
	}
}

func (h *NotesHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slogx.FromContext(r.Context()).Error(op+" failed", "err", err)
	notesdk.ErrServerError.WriteError(w)
}

// noteID parses the {id} path value. Anything that is not a positive
// integer cannot name a note, so it is a 404 like any other miss.
func noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		notesdk.ErrNoteNotFound.WriteError(w)
		return 0, false
	}
	return id, true
}

func toWire(n domain.Note) notesdk.Note {
	cats := n.Categories
	if cats == nil {
		cats = []string{}
	}
	return notesdk.Note{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Categories: cats,
		IsArchived: n.IsArchived,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
