package dto

import (
	"time"

	"notekeeper/internal/notes/domain/entities"
)

// AddNoteRequest содержит данные для создания заметки.
type AddNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"isPinned"`
}

// EditNoteRequest содержит изменения заметки. Tags различает
// отсутствие поля (nil) и пустой список.
type EditNoteRequest struct {
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned bool      `json:"isPinned"`
}

// Patch преобразует запрос в изменения домена.
func (r *EditNoteRequest) Patch() entities.Patch {
	patch := entities.Patch{
		Title:    r.Title,
		Content:  r.Content,
		IsPinned: r.IsPinned,
	}
	if r.Tags != nil {
		patch.HasTags = true
		patch.Tags = *r.Tags
	}
	return patch
}

// UpdateNotePinnedRequest содержит новое значение признака закрепления.
type UpdateNotePinnedRequest struct {
	IsPinned bool `json:"isPinned"`
}

// Note представляет заметку в ответах.
type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	UserID    string    `json:"userId"`
	CreatedOn time.Time `json:"createdOn"`
}

// NewNote преобразует сущность заметки в DTO.
func NewNote(note *entities.Note) Note {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return Note{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		IsPinned:  note.IsPinned,
		UserID:    note.UserID,
		CreatedOn: note.CreatedOn,
	}
}

// NewNotes преобразует список заметок. Пустой список кодируется как [].
func NewNotes(notes []*entities.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, note := range notes {
		out = append(out, NewNote(note))
	}
	return out
}

// AddNoteResponse - ответ на создание заметки.
type AddNoteResponse struct {
	Note    Note   `json:"note"`
	Message string `json:"message"`
}

// NoteResponse - ответ с одной заметкой.
type NoteResponse struct {
	Error   bool   `json:"error"`
	Note    Note   `json:"note"`
	Message string `json:"message"`
}

// NotesResponse - ответ со списком заметок.
type NotesResponse struct {
	Error   bool   `json:"error"`
	Notes   []Note `json:"notes"`
	Message string `json:"message"`
}
