// Package postgres реализует хранение заметок в PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/db/postgres"
	"notekeeper/pkg/logger"
)

const noteColumns = `id::text, user_id::text, title, content, tags, is_pinned, created_on`

const (
	queryCreateNote = `
        INSERT INTO notes (user_id, title, content, tags, is_pinned)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + noteColumns
	queryGetNote = `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE id = $1 AND user_id = $2
    `
	queryListNotes = `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE user_id = $1
        ORDER BY is_pinned DESC, created_on ASC
    `
	queryUpdateNote = `
        UPDATE notes
        SET title = $3, content = $4, tags = $5, is_pinned = $6
        WHERE id = $1 AND user_id = $2
        RETURNING ` + noteColumns
	queryDeleteNote  = `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	querySearchNotes = `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE user_id = $1
          AND (title ILIKE $2 ESCAPE '\' OR content ILIKE $2 ESCAPE '\')
        ORDER BY created_on ASC
    `
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool postgres.Querier
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool postgres.Querier) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))

	created, err := scanNote(r.pool.QueryRow(ctx, queryCreateNote,
		note.UserID, note.Title, note.Content, tagsOrEmpty(note.Tags), note.IsPinned,
	))
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return created, nil
}

// GetByID получает заметку по ID и ID владельца.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))

	if !validIDs(noteID, userID) {
		log.Debug(ctx, "malformed id", zap.String("noteID", noteID))
		return nil, entities.ErrNoteNotFound
	}

	note, err := scanNote(r.pool.QueryRow(ctx, queryGetNote, noteID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// ListByUserID возвращает заметки владельца: закрепленные первыми, затем по дате создания.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByUserID"))

	if !validIDs(userID) {
		return []*entities.Note{}, nil
	}

	notes, err := r.queryNotes(ctx, queryListNotes, userID)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// Update перезаписывает изменяемые поля заметки владельца.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))

	if !validIDs(note.ID, note.UserID) {
		return nil, entities.ErrNoteNotFound
	}

	updated, err := scanNote(r.pool.QueryRow(ctx, queryUpdateNote,
		note.ID, note.UserID, note.Title, note.Content, tagsOrEmpty(note.Tags), note.IsPinned,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return updated, nil
}

// Delete удаляет заметку владельца.
func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))

	if !validIDs(noteID, userID) {
		return entities.ErrNoteNotFound
	}

	tag, err := r.pool.Exec(ctx, queryDeleteNote, noteID, userID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entities.ErrNoteNotFound
	}

	log.Debug(ctx, "note deleted", zap.String("noteID", noteID))
	return nil
}

// Search ищет подстроку query в title или content без учета регистра.
// Символы шаблона LIKE в query экранируются.
func (r *NoteRepository) Search(ctx context.Context, userID, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Search"))

	if !validIDs(userID) {
		return []*entities.Note{}, nil
	}

	pattern := "%" + likeEscaper.Replace(query) + "%"

	notes, err := r.queryNotes(ctx, querySearchNotes, userID, pattern)
	if err != nil {
		log.Error(ctx, "failed to search notes", zap.Error(err))
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]*entities.Note, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.Tags,
		&note.IsPinned,
		&note.CreatedOn,
	); err != nil {
		return nil, err
	}
	note.Tags = tagsOrEmpty(note.Tags)
	return &note, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
