// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/gateway/adapters/http/middleware"
	"notekeeper/internal/gateway/adapters/http/response"
	"notekeeper/internal/gateway/app/dto"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/api"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerAddNote          = "handling add note request"
	LogHandlerEditNote         = "handling edit note request"
	LogHandlerGetAllNotes      = "handling get all notes request"
	LogHandlerDeleteNote       = "handling delete note request"
	LogHandlerUpdateNotePinned = "handling update note pinned request"
	LogHandlerSearchNotes      = "handling search notes request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgFailedRequest      = "failed to serve note request"

	paramNoteID = "noteId"
	queryParam  = "query"
)

// Сообщения ответов.
const (
	MsgTitleRequired        = "Title is required"
	MsgContentRequired      = "Content is required"
	MsgNoChangesProvided    = "No changes provided"
	MsgNoteNotFound         = "Note not found"
	MsgSearchQueryRequired  = "Search query is required."
	MsgNoteAdded            = "Note added successfully"
	MsgNoteEdited           = "Note edited successfully"
	MsgAllNotesFetched      = "All notes fetched successfully"
	MsgNoteDeleted          = "Note deleted successfully"
	MsgNotePinned           = "Note pinned successfully"
	MsgSearchNotesRetrieved = "Notes matching the search query retreived successfully"
)

var clientErrors = []struct {
	err error
	msg string
}{
	{entities.ErrTitleRequired, MsgTitleRequired},
	{entities.ErrContentRequired, MsgContentRequired},
	{entities.ErrNoChanges, MsgNoChangesProvided},
	{entities.ErrSearchQueryRequired, MsgSearchQueryRequired},
	{entities.ErrNoteNotFound, MsgNoteNotFound},
}

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{
		noteUseCase: noteUseCase,
	}
}

// AddNote обрабатывает POST /add-note.
func (h *Handler) AddNote(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.AddNote"))
	log.Debug(userCtx, LogHandlerAddNote)

	userID, ok := ownerID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
	}

	var req dto.AddNoteRequest
	if err := response.Bind(ctx, &req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.AddNote(userCtx, userID, req.Title, req.Content, req.Tags, req.IsPinned)
	if err != nil {
		return handleError(ctx, log, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.AddNoteResponse{
		Note:    dto.NewNote(note),
		Message: MsgNoteAdded,
	})
}

// EditNote обрабатывает PUT /edit-note/:noteId.
func (h *Handler) EditNote(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.EditNote"))
	log.Debug(userCtx, LogHandlerEditNote)

	userID, ok := ownerID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
	}

	var req dto.EditNoteRequest
	if err := response.Bind(ctx, &req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.EditNote(userCtx, userID, ctx.Params(paramNoteID), req.Patch())
	if err != nil {
		return handleError(ctx, log, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NoteResponse{
		Error:   false,
		Note:    dto.NewNote(note),
		Message: MsgNoteEdited,
	})
}

// GetAllNotes обрабатывает GET /get-all-notes.
func (h *Handler) GetAllNotes(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetAllNotes"))
	log.Debug(userCtx, LogHandlerGetAllNotes)

	userID, ok := ownerID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
	}

	notes, err := h.noteUseCase.ListNotes(userCtx, userID)
	if err != nil {
		return handleError(ctx, log, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NotesResponse{
		Error:   false,
		Notes:   dto.NewNotes(notes),
		Message: MsgAllNotesFetched,
	})
}

// DeleteNote обрабатывает DELETE /delete-note/:noteId.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(userCtx, LogHandlerDeleteNote)

	userID, ok := ownerID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
	}

	if err := h.noteUseCase.DeleteNote(userCtx, userID, ctx.Params(paramNoteID)); err != nil {
		return handleError(ctx, log, err)
	}

	return response.Message(ctx, MsgNoteDeleted)
}

// UpdateNotePinned обрабатывает PUT /update-note-pinned/:noteId.
func (h *Handler) UpdateNotePinned(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateNotePinned"))
	log.Debug(userCtx, LogHandlerUpdateNotePinned)

	userID, ok := ownerID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
	}

	var req dto.UpdateNotePinnedRequest
	if err := response.Bind(ctx, &req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.SetPinned(userCtx, userID, ctx.Params(paramNoteID), req.IsPinned)
	if err != nil {
		return handleError(ctx, log, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NoteResponse{
		Error:   false,
		Note:    dto.NewNote(note),
		Message: MsgNotePinned,
	})
}

// SearchNotes обрабатывает GET /search-notes?query=.
func (h *Handler) SearchNotes(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.SearchNotes"))
	log.Debug(userCtx, LogHandlerSearchNotes)

	userID, ok := ownerID(ctx)
	if !ok {
		return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
	}

	notes, err := h.noteUseCase.Search(userCtx, userID, ctx.Query(queryParam))
	if err != nil {
		return handleError(ctx, log, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NotesResponse{
		Error:   false,
		Notes:   dto.NewNotes(notes),
		Message: MsgSearchNotesRetrieved,
	})
}

func ownerID(ctx fiber.Ctx) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(middleware.UserContext(ctx))
	if !ok || claims.Identity.ID == "" {
		return "", false
	}
	return claims.Identity.ID, true
}

// handleError отвечает 400 на ошибки клиента и 500 на все остальные.
func handleError(ctx fiber.Ctx, log *logger.Logger, err error) error {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			return response.Error(ctx, fiber.StatusBadRequest, ce.msg)
		}
	}

	log.Error(middleware.UserContext(ctx), ErrMsgFailedRequest, zap.Error(err))
	return response.Internal(ctx)
}
