// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import (
	"errors"
	"fmt"

	"github.com/bigkaa/labportal/internal/repository"
)

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (slug уже занят).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrRelayUnavailable — отправка заявок не настроена.
	ErrRelayUnavailable = errors.New("отправка заявок не настроена")
	// ErrRelayFailed — внешний канал отклонил или не принял заявку.
	ErrRelayFailed = errors.New("ошибка отправки заявки")
)

// RelayError — ошибка внешнего канала доставки заявки.
// Cause содержит текст ошибки транспорта для ответа клиенту.
type RelayError struct {
	Cause error
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("%s: %v", ErrRelayFailed, e.Cause)
}

// Unwrap позволяет сопоставить ошибку и с ErrRelayFailed, и с причиной.
func (e *RelayError) Unwrap() []error {
	return []error{ErrRelayFailed, e.Cause}
}

// mapRepoErr переводит ошибки репозиториев в ошибки сервисного слоя.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, repository.ErrInvalidReference),
		errors.Is(err, repository.ErrInvalidValue):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}
