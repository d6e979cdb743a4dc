package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrValidation — входные данные формы не прошли проверку.
	ErrValidation = errors.New("invalid input")
	// ErrForbiddenTransition — запрошенный переход статуса не является следующим допустимым.
	ErrForbiddenTransition = errors.New("status transition not allowed")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// requireID проверяет, что значение является UUID.
func requireID(field, value string) error {
	if value == "" {
		return invalid("%s is required", field)
	}
	if _, err := uuid.Parse(value); err != nil {
		return invalid("%s must be a UUID", field)
	}
	return nil
}

// optionalID возвращает nil для пустой строки; иначе проверяет UUID.
func optionalID(field string, value *string) (*string, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if err := requireID(field, *value); err != nil {
		return nil, err
	}
	return value, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
