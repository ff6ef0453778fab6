package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/adapters/postgres"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/pkg/logger"
)

const (
	testUserID  = "5f0c8f5e-8a43-4c61-9d36-6f1f7d3f7a10"
	testNoteID  = "0b7e9d1c-2f5a-4e8b-9c3d-1a2b3c4d5e6f"
	otherNoteID = "7d1f0a9b-3c2e-4b5a-8d6f-0e1a2b3c4d5e"
)

var (
	noteColumns = []string{"id", "user_id", "title", "content", "tags", "is_pinned", "created_on"}

	errDB = errors.New("database error")
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext(t)
	createdOn := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Успешное создание заметки", func(t *testing.T) {
		mock := newMock(t)
		note := entities.NewNote(testUserID, "T", "C", nil, false)

		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(testUserID, "T", "C", []string{}, false).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(testNoteID, testUserID, "T", "C", []string{}, false, createdOn))

		created, err := postgres.NewNoteRepository(mock).Create(ctx, note)
		require.NoError(t, err)
		assert.Equal(t, testNoteID, created.ID)
		assert.Equal(t, []string{}, created.Tags)
		assert.Equal(t, createdOn, created.CreatedOn)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(testUserID, "T", "C", []string{}, false).
			WillReturnError(errDB)

		_, err := postgres.NewNoteRepository(mock).Create(ctx, entities.NewNote(testUserID, "T", "C", nil, false))
		require.ErrorIs(t, err, errDB)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_GetByID(t *testing.T) {
	ctx := testContext(t)
	createdOn := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Заметка найдена", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM notes WHERE id = .+").
			WithArgs(testNoteID, testUserID).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(testNoteID, testUserID, "T", "C", []string{"a"}, true, createdOn))

		note, err := postgres.NewNoteRepository(mock).GetByID(ctx, testNoteID, testUserID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, note.Tags)
		assert.True(t, note.IsPinned)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Чужая или отсутствующая заметка", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM notes WHERE id = .+").
			WithArgs(testNoteID, testUserID).
			WillReturnRows(pgxmock.NewRows(noteColumns))

		_, err := postgres.NewNoteRepository(mock).GetByID(ctx, testNoteID, testUserID)
		require.ErrorIs(t, err, entities.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Некорректный идентификатор", func(t *testing.T) {
		mock := newMock(t)

		_, err := postgres.NewNoteRepository(mock).GetByID(ctx, "not-a-uuid", testUserID)
		require.ErrorIs(t, err, entities.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_ListByUserID(t *testing.T) {
	ctx := testContext(t)
	createdOn := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Закрепленные первыми", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ ORDER BY is_pinned DESC, created_on ASC").
			WithArgs(testUserID).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(otherNoteID, testUserID, "B", "b", []string{}, true, createdOn.Add(time.Second)).
				AddRow(testNoteID, testUserID, "A", "a", []string{}, false, createdOn))

		notes, err := postgres.NewNoteRepository(mock).ListByUserID(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, otherNoteID, notes[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустой список", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM notes WHERE user_id = .+").
			WithArgs(testUserID).
			WillReturnRows(pgxmock.NewRows(noteColumns))

		notes, err := postgres.NewNoteRepository(mock).ListByUserID(ctx, testUserID)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+").WithArgs(testUserID).WillReturnError(errDB)

		_, err := postgres.NewNoteRepository(mock).ListByUserID(ctx, testUserID)
		require.ErrorIs(t, err, errDB)
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext(t)
	createdOn := time.Now().UTC().Truncate(time.Microsecond)
	note := &entities.Note{ID: testNoteID, UserID: testUserID, Title: "T2", Content: "C", IsPinned: true}

	t.Run("Успешное обновление", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("UPDATE notes SET .+").
			WithArgs(testNoteID, testUserID, "T2", "C", []string{}, true).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(testNoteID, testUserID, "T2", "C", []string{}, true, createdOn))

		updated, err := postgres.NewNoteRepository(mock).Update(ctx, note)
		require.NoError(t, err)
		assert.Equal(t, "T2", updated.Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Заметка исчезла", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("UPDATE notes SET .+").
			WithArgs(testNoteID, testUserID, "T2", "C", []string{}, true).
			WillReturnRows(pgxmock.NewRows(noteColumns))

		_, err := postgres.NewNoteRepository(mock).Update(ctx, note)
		require.ErrorIs(t, err, entities.ErrNoteNotFound)
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное удаление", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes .+").
			WithArgs(testNoteID, testUserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewNoteRepository(mock).Delete(ctx, testNoteID, testUserID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Нет строк", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes .+").
			WithArgs(testNoteID, testUserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := postgres.NewNoteRepository(mock).Delete(ctx, testNoteID, testUserID)
		require.ErrorIs(t, err, entities.ErrNoteNotFound)
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes .+").
			WithArgs(testNoteID, testUserID).
			WillReturnError(errDB)

		err := postgres.NewNoteRepository(mock).Delete(ctx, testNoteID, testUserID)
		require.ErrorIs(t, err, errDB)
	})
}

func TestNoteRepository_Search(t *testing.T) {
	ctx := testContext(t)
	createdOn := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Экранирование шаблона", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ ILIKE .+").
			WithArgs(testUserID, `%50\%\_off%`).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(testNoteID, testUserID, "50%_off", "c", []string{}, false, createdOn))

		notes, err := postgres.NewNoteRepository(mock).Search(ctx, testUserID, "50%_off")
		require.NoError(t, err)
		require.Len(t, notes, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Некорректный владелец", func(t *testing.T) {
		mock := newMock(t)

		notes, err := postgres.NewNoteRepository(mock).Search(ctx, "bad", "x")
		require.NoError(t, err)
		assert.Empty(t, notes)
	})
}
