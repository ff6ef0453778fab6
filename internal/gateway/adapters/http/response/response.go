// Package response содержит общие для HTTP обработчиков ответы.
package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// Общие сообщения ответов.
const (
	MsgInternalServerError = "Internal Server Error"
	MsgUnauthorized        = "Unauthorized"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgRouteNotFound       = "Route not found"
	MsgTooManyRequests     = "Too many requests"
)

// ErrorBody - тело ответа с ошибкой.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// MessageBody - тело ответа только с сообщением.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON отправляет тело со статусом.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Error отправляет {error:true,message}.
func Error(ctx fiber.Ctx, status int, message string) error {
	return JSON(ctx, status, ErrorBody{Error: true, Message: message})
}

// Message отправляет {error:false,message}.
func Message(ctx fiber.Ctx, message string) error {
	return JSON(ctx, fiber.StatusOK, ErrorBody{Error: false, Message: message})
}

// Internal отправляет 500 без подробностей ошибки.
func Internal(ctx fiber.Ctx) error {
	return Error(ctx, fiber.StatusInternalServerError, MsgInternalServerError)
}

// Bind разбирает JSON тело запроса. Пустое тело и тело с Content-Type
// не application/json означают пустой объект.
func Bind(ctx fiber.Ctx, out any) error {
	if len(ctx.Body()) == 0 || !isJSON(ctx.Get(fiber.HeaderContentType)) {
		return nil
	}
	if err := ctx.Bind().Body(out); err != nil {
		return fmt.Errorf("binding request body: %w", err)
	}
	return nil
}

func isJSON(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), fiber.MIMEApplicationJSON)
}

// NewErrorHandler возвращает обработчик ошибок fiber, отвечающий JSON.
func NewErrorHandler() fiber.ErrorHandler {
	return func(ctx fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return Error(ctx, fiberErr.Code, fiberErr.Message)
		}

		requestCtx := ctx.Context()
		logger.Log(requestCtx).Error(requestCtx, "unhandled request error", zap.Error(err))
		return Internal(ctx)
	}
}
