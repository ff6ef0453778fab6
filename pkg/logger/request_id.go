package logger

import (
	"context"

	"github.com/google/uuid"
)

// MaxRequestIDLength ограничивает длину идентификатора, принятого от клиента.
const MaxRequestIDLength = 128

type requestIDKey struct{}

// NewRequestIDContext сохраняет идентификатор запроса в контексте.
// Пустой или некорректный идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if !validRequestID(requestID) {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// validRequestID допускает только печатные ASCII символы без пробелов.
func validRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}
