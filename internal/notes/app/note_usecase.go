// Package app реализует бизнес-логику заметок, ограниченную владельцем.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/validation"
)

const (
	msgInvalidInput   = "invalid input"
	msgNoteNotFound   = "note not found for owner"
	msgNoteCreated    = "note created"
	msgNoteEdited     = "note edited"
	msgNoteDeleted    = "note deleted"
	msgNotePinned     = "note pin state updated"
	msgErrRepository  = "note repository failure"
	errCtxValidating  = "validating note"
	errCtxCreating    = "creating note"
	errCtxGetting     = "getting note"
	errCtxUpdating    = "updating note"
	errCtxListing     = "listing notes"
	errCtxDeleting    = "deleting note"
	errCtxSearching   = "searching notes"
	fieldNoteID       = "noteID"
	fieldUserID       = "userID"
	fieldMethod       = "method"
	methodAddNote     = "AddNote"
	methodEditNote    = "EditNote"
	methodListNotes   = "ListNotes"
	methodDeleteNote  = "DeleteNote"
	methodSetPinned   = "SetPinned"
	methodSearchNotes = "Search"
)

type addNoteInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

type searchInput struct {
	Query string `validate:"required"`
}

var requiredFieldErrors = map[string]error{
	"Title":   entities.ErrTitleRequired,
	"Content": entities.ErrContentRequired,
	"Query":   entities.ErrSearchQueryRequired,
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo  repositories.NoteRepository
	validator *validation.Validator
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:  noteRepo,
		validator: validation.New(),
	}
}

// AddNote создает заметку. title проверяется раньше content.
func (uc *NoteUseCase) AddNote(ctx context.Context, userID, title, content string, tags []string, isPinned bool) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String(fieldMethod, methodAddNote), zap.String(fieldUserID, userID))

	if err := uc.validator.First(addNoteInput{Title: title, Content: content}, requiredFieldErrors); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	note, err := uc.noteRepo.Create(ctx, entities.NewNote(userID, title, content, tags, isPinned))
	if err != nil {
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreating, err)
	}

	log.Debug(ctx, msgNoteCreated, zap.String(fieldNoteID, note.ID))
	return note, nil
}

// EditNote применяет patch к заметке владельца.
func (uc *NoteUseCase) EditNote(ctx context.Context, userID, noteID string, patch entities.Patch) (*entities.Note, error) {
	log := logger.Log(ctx).With(
		zap.String(fieldMethod, methodEditNote),
		zap.String(fieldUserID, userID),
		zap.String(fieldNoteID, noteID),
	)

	if patch.Empty() {
		log.Debug(ctx, msgInvalidInput, zap.Error(entities.ErrNoChanges))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrNoChanges)
	}

	note, err := uc.getOwned(ctx, log, userID, noteID)
	if err != nil {
		return nil, err
	}

	patch.Apply(note)

	updated, err := uc.update(ctx, log, note)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgNoteEdited)
	return updated, nil
}

// ListNotes возвращает все заметки владельца, закрепленные первыми.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String(fieldMethod, methodListNotes), zap.String(fieldUserID, userID))

	notes, err := uc.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}

	return notes, nil
}

// DeleteNote удаляет заметку владельца.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	log := logger.Log(ctx).With(
		zap.String(fieldMethod, methodDeleteNote),
		zap.String(fieldUserID, userID),
		zap.String(fieldNoteID, noteID),
	)

	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
		} else {
			log.Error(ctx, msgErrRepository, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxDeleting, err)
	}

	log.Debug(ctx, msgNoteDeleted)
	return nil
}

// SetPinned безусловно перезаписывает признак закрепления.
func (uc *NoteUseCase) SetPinned(ctx context.Context, userID, noteID string, isPinned bool) (*entities.Note, error) {
	log := logger.Log(ctx).With(
		zap.String(fieldMethod, methodSetPinned),
		zap.String(fieldUserID, userID),
		zap.String(fieldNoteID, noteID),
	)

	note, err := uc.getOwned(ctx, log, userID, noteID)
	if err != nil {
		return nil, err
	}

	note.IsPinned = isPinned

	updated, err := uc.update(ctx, log, note)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgNotePinned, zap.Bool("isPinned", isPinned))
	return updated, nil
}

// Search ищет заметки владельца по подстроке в title или content без учета регистра.
func (uc *NoteUseCase) Search(ctx context.Context, userID, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String(fieldMethod, methodSearchNotes), zap.String(fieldUserID, userID))

	if err := uc.validator.First(searchInput{Query: query}, requiredFieldErrors); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	notes, err := uc.noteRepo.Search(ctx, userID, query)
	if err != nil {
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSearching, err)
	}

	return notes, nil
}

func (uc *NoteUseCase) getOwned(ctx context.Context, log *logger.Logger, userID, noteID string) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
		} else {
			log.Error(ctx, msgErrRepository, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxGetting, err)
	}
	return note, nil
}

func (uc *NoteUseCase) update(ctx context.Context, log *logger.Logger, note *entities.Note) (*entities.Note, error) {
	updated, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
		} else {
			log.Error(ctx, msgErrRepository, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdating, err)
	}
	return updated, nil
}
