// Package memory содержит хранилище заметок в памяти процесса.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
)

type storedNote struct {
	note entities.Note
	seq  uint64
}

// NoteRepository хранит заметки в map под мьютексом.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*storedNote
	seq   uint64
	now   func() time.Time
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает пустое хранилище заметок.
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		notes: make(map[string]*storedNote),
		now:   time.Now,
	}
}

// Create добавляет заметку.
func (r *NoteRepository) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	stored := &storedNote{
		note: entities.Note{
			ID:        uuid.NewString(),
			Title:     note.Title,
			Content:   note.Content,
			Tags:      slices.Clone(tagsOrEmpty(note.Tags)),
			IsPinned:  note.IsPinned,
			UserID:    note.UserID,
			CreatedOn: r.now().UTC(),
		},
		seq: r.seq,
	}
	r.notes[stored.note.ID] = stored

	return stored.copy(), nil
}

// GetByID возвращает заметку владельца.
func (r *NoteRepository) GetByID(_ context.Context, noteID, userID string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.owned(noteID, userID)
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	return stored.copy(), nil
}

// ListByUserID возвращает заметки владельца: закрепленные первыми, затем по дате создания.
func (r *NoteRepository) ListByUserID(_ context.Context, userID string) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	selected := r.filter(func(n *entities.Note) bool { return n.UserID == userID })
	slices.SortFunc(selected, func(a, b *storedNote) int {
		if a.note.IsPinned != b.note.IsPinned {
			if a.note.IsPinned {
				return -1
			}
			return 1
		}
		return compareCreated(a, b)
	})

	return copies(selected), nil
}

// Update перезаписывает изменяемые поля заметки владельца.
func (r *NoteRepository) Update(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.owned(note.ID, note.UserID)
	if !ok {
		return nil, entities.ErrNoteNotFound
	}

	stored.note.Title = note.Title
	stored.note.Content = note.Content
	stored.note.Tags = slices.Clone(tagsOrEmpty(note.Tags))
	stored.note.IsPinned = note.IsPinned

	return stored.copy(), nil
}

// Delete удаляет заметку владельца.
func (r *NoteRepository) Delete(_ context.Context, noteID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned(noteID, userID); !ok {
		return entities.ErrNoteNotFound
	}
	delete(r.notes, noteID)
	return nil
}

// Search ищет подстроку query в title или content без учета регистра.
func (r *NoteRepository) Search(_ context.Context, userID, query string) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	selected := r.filter(func(n *entities.Note) bool {
		return n.UserID == userID &&
			(strings.Contains(strings.ToLower(n.Title), needle) ||
				strings.Contains(strings.ToLower(n.Content), needle))
	})
	slices.SortFunc(selected, compareCreated)

	return copies(selected), nil
}

func (r *NoteRepository) owned(noteID, userID string) (*storedNote, bool) {
	stored, ok := r.notes[noteID]
	if !ok || stored.note.UserID != userID {
		return nil, false
	}
	return stored, true
}

func (r *NoteRepository) filter(keep func(*entities.Note) bool) []*storedNote {
	selected := make([]*storedNote, 0)
	for _, stored := range r.notes {
		if keep(&stored.note) {
			selected = append(selected, stored)
		}
	}
	return selected
}

func compareCreated(a, b *storedNote) int {
	if c := a.note.CreatedOn.Compare(b.note.CreatedOn); c != 0 {
		return c
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}

func (s *storedNote) copy() *entities.Note {
	copied := s.note
	copied.Tags = slices.Clone(s.note.Tags)
	return &copied
}

func copies(selected []*storedNote) []*entities.Note {
	notes := make([]*entities.Note, 0, len(selected))
	for _, stored := range selected {
		notes = append(notes, stored.copy())
	}
	return notes
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
