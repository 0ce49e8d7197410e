package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/inkpad/webapps/internal/api/view"
	"github.com/inkpad/webapps/internal/core/ports"
)

// NoteHandler serves the notes pages. Every route sits behind RequireLogin.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func (h *NoteHandler) Home(c echo.Context) error {
	return seeOther(c, "/notes")
}

// List renders the current user's notes.
//
// @Summary      My notes
// @Tags         notes
// @Produce      html
// @Success      200
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.service.ListNotes(c.Request().Context(), actorFrom(c))
	if err != nil {
		return err
	}
	return render(c, "notes", view.Page{Title: "My notes", Notes: notes})
}

// Create adds a note.
//
// @Summary      Add a note
// @Tags         notes
// @Accept       x-www-form-urlencoded
// @Param        note  formData  string  true  "Note text"
// @Success      303
// @Failure      422  {string}  string  "validation failure"
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var form noteForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if _, err := h.service.CreateNote(c.Request().Context(), actorFrom(c), form.Note); err != nil {
		return err
	}
	return seeOther(c, "/notes")
}

// EditForm renders a note for editing.
//
// @Summary      Edit page
// @Tags         notes
// @Produce      html
// @Param        id  path  string  true  "Note id"
// @Success      200
// @Failure      403  {string}  string  "not your resource"
// @Failure      404  {string}  string  "not found"
// @Router       /notes/{id}/edit [get]
func (h *NoteHandler) EditForm(c echo.Context) error {
	note, err := h.service.GetNote(c.Request().Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, "note_form", view.Page{Title: "Edit note", Note: note})
}

// Update replaces the note text.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       x-www-form-urlencoded
// @Param        id    path      string  true  "Note id"
// @Param        note  formData  string  true  "Note text"
// @Success      303
// @Failure      403  {string}  string  "not your resource"
// @Failure      404  {string}  string  "not found"
// @Router       /notes/{id}/edit [post]
func (h *NoteHandler) Update(c echo.Context) error {
	var form noteForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if err := h.service.UpdateNote(c.Request().Context(), actorFrom(c), c.Param("id"), form.Note); err != nil {
		return err
	}
	return seeOther(c, "/notes")
}

// Delete removes a note.
//
// @Summary      Delete a note
// @Tags         notes
// @Param        id  path  string  true  "Note id"
// @Success      303
// @Failure      403  {string}  string  "not your resource"
// @Failure      404  {string}  string  "not found"
// @Router       /delete/{id} [post]
func (h *NoteHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteNote(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return err
	}
	return seeOther(c, "/notes")
}
