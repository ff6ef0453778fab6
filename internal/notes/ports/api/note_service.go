// Package api определяет входной порт домена заметок.
package api

import (
	"context"

	"notekeeper/internal/notes/domain/entities"
)

// NoteUseCase - операции над заметками, ограниченные владельцем userID.
type NoteUseCase interface {
	AddNote(ctx context.Context, userID, title, content string, tags []string, isPinned bool) (*entities.Note, error)
	EditNote(ctx context.Context, userID, noteID string, patch entities.Patch) (*entities.Note, error)
	ListNotes(ctx context.Context, userID string) ([]*entities.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) error
	SetPinned(ctx context.Context, userID, noteID string, isPinned bool) (*entities.Note, error)
	Search(ctx context.Context, userID, query string) ([]*entities.Note, error)
}
