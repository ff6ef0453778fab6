package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/adapters/memory"
	"notekeeper/internal/notes/domain/entities"
)

func TestNoteRepository_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	note, err := repo.Create(ctx, entities.NewNote("alice", "T", "C", nil, false))
	require.NoError(t, err)
	assert.Equal(t, []string{}, note.Tags)

	_, err = repo.GetByID(ctx, note.ID, "bob")
	require.ErrorIs(t, err, entities.ErrNoteNotFound)

	_, err = repo.Update(ctx, &entities.Note{ID: note.ID, UserID: "bob", Title: "X"})
	require.ErrorIs(t, err, entities.ErrNoteNotFound)

	require.ErrorIs(t, repo.Delete(ctx, note.ID, "bob"), entities.ErrNoteNotFound)

	got, err := repo.GetByID(ctx, note.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)

	require.NoError(t, repo.Delete(ctx, note.ID, "alice"))
	_, err = repo.GetByID(ctx, note.ID, "alice")
	require.ErrorIs(t, err, entities.ErrNoteNotFound)
}

func TestNoteRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	first, err := repo.Create(ctx, entities.NewNote("alice", "first", "c", nil, false))
	require.NoError(t, err)
	second, err := repo.Create(ctx, entities.NewNote("alice", "second", "c", nil, true))
	require.NoError(t, err)
	third, err := repo.Create(ctx, entities.NewNote("alice", "third", "c", nil, false))
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.NewNote("bob", "foreign", "c", nil, true))
	require.NoError(t, err)

	notes, err := repo.ListByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{second.ID, first.ID, third.ID}, []string{notes[0].ID, notes[1].ID, notes[2].ID})

	empty, err := repo.ListByUserID(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNoteRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	_, err := repo.Create(ctx, entities.NewNote("alice", "Trip", "pack bags", nil, false))
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.NewNote("alice", "Groceries", "milk", nil, false))
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.NewNote("alice", "Plans", "road TRIP", nil, false))
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.NewNote("bob", "trip", "x", nil, false))
	require.NoError(t, err)

	notes, err := repo.Search(ctx, "alice", "tRiP")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Trip", notes[0].Title)
	assert.Equal(t, "Plans", notes[1].Title)

	none, err := repo.Search(ctx, "alice", "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNoteRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	note, err := repo.Create(ctx, entities.NewNote("alice", "T", "C", []string{"a"}, false))
	require.NoError(t, err)

	note.Tags[0] = "mutated"
	note.Title = "mutated"

	got, err := repo.GetByID(ctx, note.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, []string{"a"}, got.Tags)
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	note, err := repo.Create(ctx, entities.NewNote("alice", "T", "C", []string{"a"}, true))
	require.NoError(t, err)

	note.Title = "T2"
	note.Tags = nil
	note.IsPinned = false

	updated, err := repo.Update(ctx, note)
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, []string{}, updated.Tags)
	assert.False(t, updated.IsPinned)
	assert.Equal(t, note.CreatedOn, updated.CreatedOn)
}
