// Package validation проверяет обязательные поля входных структур с помощью validator/v10.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrUnmappedField возвращается, если для поля не задана доменная ошибка.
var ErrUnmappedField = errors.New("validation failed")

// Validator сопоставляет ошибки validator/v10 с доменными ошибками.
type Validator struct {
	validate *validator.Validate
}

// New создает Validator.
func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// First проверяет структуру и возвращает доменную ошибку первого поля,
// не прошедшего проверку. Порядок полей совпадает с порядком объявления в структуре.
func (v *Validator) First(input any, fieldErrors map[string]error) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrUnmappedField, err)
	}

	first := validationErrors[0]
	if mapped, ok := fieldErrors[first.Field()]; ok {
		return mapped
	}
	return fmt.Errorf("%w: field %s failed on %s", ErrUnmappedField, first.Field(), first.Tag())
}
