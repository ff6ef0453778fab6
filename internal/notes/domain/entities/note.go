// Package entities содержит сущности домена заметок.
package entities

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation - общий предок ошибок валидации заметок.
var ErrValidation = errors.New("validation error")

// Ошибки домена заметок.
var (
	ErrTitleRequired       = fmt.Errorf("%w: title is required", ErrValidation)
	ErrContentRequired     = fmt.Errorf("%w: content is required", ErrValidation)
	ErrNoChanges           = fmt.Errorf("%w: no changes provided", ErrValidation)
	ErrSearchQueryRequired = fmt.Errorf("%w: search query is required", ErrValidation)
	ErrNoteNotFound        = errors.New("note not found")
)

// Note представляет собой заметку пользователя.
type Note struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	IsPinned  bool
	UserID    string
	CreatedOn time.Time
}

// NewNote создает заметку владельца userID. Теги по умолчанию пусты.
func NewNote(userID, title, content string, tags []string, isPinned bool) *Note {
	if tags == nil {
		tags = []string{}
	}
	return &Note{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Tags:     tags,
		IsPinned: isPinned,
	}
}

// Patch описывает изменения заметки. Пустые строки означают отсутствие поля,
// Tags применяются, если HasTags, IsPinned применяется только при true.
type Patch struct {
	Title    string
	Content  string
	Tags     []string
	HasTags  bool
	IsPinned bool
}

// Empty сообщает, что не задано ни одно из полей title, content, tags.
// IsPinned не учитывается.
func (p Patch) Empty() bool {
	return p.Title == "" && p.Content == "" && !p.HasTags
}

// Apply применяет заданные поля к заметке.
func (p Patch) Apply(note *Note) {
	if p.Title != "" {
		note.Title = p.Title
	}
	if p.Content != "" {
		note.Content = p.Content
	}
	if p.HasTags {
		note.Tags = p.Tags
		if note.Tags == nil {
			note.Tags = []string{}
		}
	}
	if p.IsPinned {
		note.IsPinned = true
	}
}
