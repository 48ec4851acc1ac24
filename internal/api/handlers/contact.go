// contact.go — приём заявок с формы обратной связи.
// POST /send-telegram/ и POST /api/v1/contact, ответ {"success": bool, "error": "..."}.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/bigkaa/labportal/internal/i18n"
	"github.com/bigkaa/labportal/internal/service"
)

// maxContactBody — предельный размер тела заявки.
const maxContactBody = 64 << 10

// ContactSubmitter — отправка заявки. Реализуется *service.ContactService.
type ContactSubmitter interface {
	Submit(ctx context.Context, in service.ContactInput) error
}

// ContactHandler — обработчик формы обратной связи.
type ContactHandler struct {
	contact ContactSubmitter
	bundle  *i18n.Bundle
	logger  *slog.Logger
}

// NewContactHandler создаёт обработчик заявок.
func NewContactHandler(contact ContactSubmitter, bundle *i18n.Bundle, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contact: contact,
		bundle:  bundle,
		logger:  logger.With(slog.String("component", "contact_handler")),
	}
}

type contactResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Submit принимает заявку в form-urlencoded, multipart или JSON.
//
//	200 — отправлена
//	400 — не заполнены поля или некорректное тело
//	502 — Telegram отклонил или недоступен
//	503 — отправка не настроена
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	in, err := decodeContact(r)
	if err != nil {
		h.logger.Debug("Некорректное тело заявки", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, contactResponse{Error: h.bundle.T(ctx, "contact.bad_request")})
		return
	}

	err = h.contact.Submit(ctx, in)
	var relayErr *service.RelayError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, contactResponse{Success: true})
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, contactResponse{Error: h.bundle.T(ctx, "contact.fields_required")})
	case errors.Is(err, service.ErrRelayUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, contactResponse{Error: h.bundle.T(ctx, "contact.relay_disabled")})
	case errors.As(err, &relayErr):
		writeJSON(w, http.StatusBadGateway, contactResponse{
			Error: h.bundle.Tf(ctx, "contact.telegram_error", relayErr.Cause.Error()),
		})
	default:
		h.logger.Error("Ошибка обработки заявки", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, contactResponse{Error: err.Error()})
	}
}

// decodeContact читает поля заявки по Content-Type.
func decodeContact(r *http.Request) (service.ContactInput, error) {
	var in service.ContactInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&in)
		return in, err
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxContactBody); err != nil {
			return in, err
		}
	} else if err := r.ParseForm(); err != nil {
		return in, err
	}

	in.Name = r.PostFormValue("name")
	in.Phone = r.PostFormValue("phone")
	in.Email = r.PostFormValue("email")
	in.Message = r.PostFormValue("message")
	return in, nil
}
