package service

import (
	"Valtify/internal/repo"
	"errors"
	"fmt"
)

// Ошибки сервисного уровня. Каждая соответствует отдельному исходу для клиента;
// повторять запрос имеет смысл только при ErrUnavailable.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("service unavailable")

	ErrEmailTaken = fmt.Errorf("%w: email already registered", ErrConflict)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// storeErr переводит ошибку репозитория в ошибку сервиса.
// ErrNotFound репозитория обрабатывается вызывающим кодом.
func storeErr(op string, err error) error {
	if errors.Is(err, repo.ErrUnavailable) {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
