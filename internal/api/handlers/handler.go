// handler.go — общие функции обработчиков HTTP API сайта.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/labportal/internal/api/errors"
	"github.com/bigkaa/labportal/internal/service"
)

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError переводит ошибку сервисного слоя в HTTP-ответ.
// Неизвестные ошибки логируются и отдаются как 500 с общим сообщением.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, err.Error())
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, err.Error())
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		apierrors.InternalError(w, internalMsg)
	}
}
