// Package repositories определяет порт хранения заметок.
package repositories

import (
	"context"

	"notekeeper/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// Все операции, кроме Create, фильтруют по паре (noteID, userID) и
// возвращают entities.ErrNoteNotFound, если заметка не найдена или чужая.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error)
	// ListByUserID возвращает заметки сначала закрепленные, затем по createdOn.
	ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Delete(ctx context.Context, noteID, userID string) error
	// Search ищет query без учета регистра как подстроку title или content.
	Search(ctx context.Context, userID, query string) ([]*entities.Note, error)
}
