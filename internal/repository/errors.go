package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound возвращается, когда запись с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrConflict возвращается при нарушении ограничений целостности (внешний ключ, уникальность).
	ErrConflict = errors.New("constraint violation")
)

// conflictError сохраняет исходное сообщение базы и одновременно сопоставляется с ErrConflict.
type conflictError struct {
	err error
}

func (e *conflictError) Error() string { return e.err.Error() }

func (e *conflictError) Unwrap() []error { return []error{ErrConflict, e.err} }

// wrapErr добавляет контекст операции и классифицирует ошибки драйвера.
func wrapErr(action string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return &conflictError{err: fmt.Errorf("%s: %w", action, err)}
	}
	return fmt.Errorf("%s: %w", action, err)
}

// checkAffected превращает пустой результат UPDATE/DELETE в ErrNotFound.
func checkAffected(action string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(action, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	}
	return nil
}
