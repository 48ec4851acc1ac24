// contact.go — приём заявок с формы обратной связи и пересылка в Telegram.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// contactMessagesTotal — заявки по результату: sent, invalid, failed, disabled.
var contactMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lp_contact_messages_total",
	Help: "Общее количество заявок с формы обратной связи по результату.",
}, []string{"result"})

// Relay — канал доставки заявки (Telegram Bot API).
type Relay interface {
	SendMessage(ctx context.Context, text string) error
}

// ContactInput — поля формы обратной связи, все обязательны.
type ContactInput struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Phone   string `json:"phone" form:"phone" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required"`
	Message string `json:"message" form:"message" validate:"required"`
}

// ContactService проверяет заявку и отправляет её одним сообщением.
// Заявка не сохраняется и не отправляется повторно.
type ContactService struct {
	relay    Relay
	validate *Validator
	logger   *slog.Logger
}

// NewContactService создаёт сервис заявок. relay == nil отключает отправку.
func NewContactService(relay Relay, validate *Validator, logger *slog.Logger) *ContactService {
	return &ContactService{
		relay:    relay,
		validate: validate,
		logger:   logger.With(slog.String("component", "contact_service")),
	}
}

// Submit проверяет заявку и отправляет её.
// Ошибки: ErrValidation, ErrRelayUnavailable, *RelayError (ErrRelayFailed).
func (s *ContactService) Submit(ctx context.Context, in ContactInput) error {
	if err := s.validate.Struct(in); err != nil {
		contactMessagesTotal.WithLabelValues("invalid").Inc()
		return err
	}
	if s.relay == nil {
		contactMessagesTotal.WithLabelValues("disabled").Inc()
		return ErrRelayUnavailable
	}

	if err := s.relay.SendMessage(ctx, FormatContactMessage(in)); err != nil {
		contactMessagesTotal.WithLabelValues("failed").Inc()
		s.logger.Warn("Не удалось отправить заявку",
			slog.String("error", err.Error()),
		)
		return &RelayError{Cause: err}
	}

	contactMessagesTotal.WithLabelValues("sent").Inc()
	s.logger.Info("Заявка отправлена")
	return nil
}

// telegramHTMLEscaper экранирует только символы, которые Bot API
// требует заменять в режиме parse_mode=HTML.
var telegramHTMLEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// FormatContactMessage формирует текст заявки в HTML-разметке Telegram.
// В значениях полей экранируются только &, < и >.
func FormatContactMessage(in ContactInput) string {
	return fmt.Sprintf(
		"<b>Новая заявка с сайта!</b>\n\n"+
			"<b>Имя:</b> %s\n"+
			"<b>Телефон:</b> %s\n"+
			"<b>Email:</b> %s\n\n"+
			"<b>Сообщение:</b>\n%s",
		telegramHTMLEscaper.Replace(in.Name),
		telegramHTMLEscaper.Replace(in.Phone),
		telegramHTMLEscaper.Replace(in.Email),
		telegramHTMLEscaper.Replace(in.Message),
	)
}
