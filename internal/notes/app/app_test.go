package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/domain/entities"
)

var ErrDatabaseOperation = errors.New("database error")

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	return m.Called(ctx, noteID, userID).Error(0)
}

func (m *mockNoteRepository) Search(ctx context.Context, userID, query string) ([]*entities.Note, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func storedNote() *entities.Note {
	return &entities.Note{
		ID:        "note-1",
		Title:     "T",
		Content:   "C",
		Tags:      []string{"a"},
		UserID:    "user-1",
		CreatedOn: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddNote(t *testing.T) {
	ctx := context.Background()

	t.Run("title required first", func(t *testing.T) {
		repo := new(mockNoteRepository)
		_, err := app.NewNoteUseCase(repo).AddNote(ctx, "user-1", "", "", nil, false)
		require.ErrorIs(t, err, entities.ErrTitleRequired)
		assert.ErrorIs(t, err, entities.ErrValidation)
		repo.AssertExpectations(t)
	})

	t.Run("content required", func(t *testing.T) {
		repo := new(mockNoteRepository)
		_, err := app.NewNoteUseCase(repo).AddNote(ctx, "user-1", "T", "", nil, false)
		require.ErrorIs(t, err, entities.ErrContentRequired)
	})

	t.Run("defaults", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.UserID == "user-1" && n.Title == "T" && n.Content == "C" &&
				n.Tags != nil && len(n.Tags) == 0 && !n.IsPinned
		})).Return(storedNote(), nil).Once()

		note, err := app.NewNoteUseCase(repo).AddNote(ctx, "user-1", "T", "C", nil, false)
		require.NoError(t, err)
		assert.Equal(t, "note-1", note.ID)
		repo.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, ErrDatabaseOperation).Once()

		_, err := app.NewNoteUseCase(repo).AddNote(ctx, "user-1", "T", "C", []string{"x"}, true)
		require.ErrorIs(t, err, ErrDatabaseOperation)
	})
}

func TestEditNote(t *testing.T) {
	ctx := context.Background()

	t.Run("no changes regardless of isPinned", func(t *testing.T) {
		repo := new(mockNoteRepository)
		uc := app.NewNoteUseCase(repo)

		_, err := uc.EditNote(ctx, "user-1", "note-1", entities.Patch{})
		require.ErrorIs(t, err, entities.ErrNoChanges)

		_, err = uc.EditNote(ctx, "user-1", "note-1", entities.Patch{IsPinned: true})
		require.ErrorIs(t, err, entities.ErrNoChanges)
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-2").Return(nil, entities.ErrNoteNotFound).Once()

		_, err := app.NewNoteUseCase(repo).EditNote(ctx, "user-2", "note-1", entities.Patch{Title: "X"})
		require.ErrorIs(t, err, entities.ErrNoteNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("applies truthy fields", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(storedNote(), nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.Title == "T2" && n.Content == "C" && len(n.Tags) == 0 && n.IsPinned
		})).Return(&entities.Note{ID: "note-1", Title: "T2"}, nil).Once()

		note, err := app.NewNoteUseCase(repo).EditNote(ctx, "user-1", "note-1", entities.Patch{
			Title:    "T2",
			HasTags:  true,
			Tags:     []string{},
			IsPinned: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "T2", note.Title)
		repo.AssertExpectations(t)
	})

	t.Run("update failure", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(storedNote(), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything).Return(nil, ErrDatabaseOperation).Once()

		_, err := app.NewNoteUseCase(repo).EditNote(ctx, "user-1", "note-1", entities.Patch{Content: "C2"})
		require.ErrorIs(t, err, ErrDatabaseOperation)
	})
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()
	repo := new(mockNoteRepository)
	notes := []*entities.Note{storedNote()}
	repo.On("ListByUserID", mock.Anything, "user-1").Return(notes, nil).Once()
	repo.On("ListByUserID", mock.Anything, "user-2").Return(nil, ErrDatabaseOperation).Once()

	uc := app.NewNoteUseCase(repo)

	got, err := uc.ListNotes(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, notes, got)

	_, err = uc.ListNotes(ctx, "user-2")
	require.ErrorIs(t, err, ErrDatabaseOperation)
	repo.AssertExpectations(t)
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()
	repo := new(mockNoteRepository)
	repo.On("Delete", mock.Anything, "note-1", "user-1").Return(nil).Once()
	repo.On("Delete", mock.Anything, "note-1", "user-2").Return(entities.ErrNoteNotFound).Once()

	uc := app.NewNoteUseCase(repo)
	require.NoError(t, uc.DeleteNote(ctx, "user-1", "note-1"))
	require.ErrorIs(t, uc.DeleteNote(ctx, "user-2", "note-1"), entities.ErrNoteNotFound)
	repo.AssertExpectations(t)
}

func TestSetPinned(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites unconditionally", func(t *testing.T) {
		repo := new(mockNoteRepository)
		pinned := storedNote()
		pinned.IsPinned = true
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(pinned, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return !n.IsPinned
		})).Return(storedNote(), nil).Once()

		note, err := app.NewNoteUseCase(repo).SetPinned(ctx, "user-1", "note-1", false)
		require.NoError(t, err)
		assert.False(t, note.IsPinned)
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-2").Return(nil, entities.ErrNoteNotFound).Once()

		_, err := app.NewNoteUseCase(repo).SetPinned(ctx, "user-2", "note-1", true)
		require.ErrorIs(t, err, entities.ErrNoteNotFound)
		repo.AssertExpectations(t)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query", func(t *testing.T) {
		repo := new(mockNoteRepository)
		_, err := app.NewNoteUseCase(repo).Search(ctx, "user-1", "")
		require.ErrorIs(t, err, entities.ErrSearchQueryRequired)
		repo.AssertExpectations(t)
	})

	t.Run("delegates to repository", func(t *testing.T) {
		repo := new(mockNoteRepository)
		notes := []*entities.Note{storedNote()}
		repo.On("Search", mock.Anything, "user-1", "t").Return(notes, nil).Once()

		got, err := app.NewNoteUseCase(repo).Search(ctx, "user-1", "t")
		require.NoError(t, err)
		assert.Equal(t, notes, got)
		repo.AssertExpectations(t)
	})
}
