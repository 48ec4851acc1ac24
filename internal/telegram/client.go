// Пакет telegram — клиент Telegram Bot API для пересылки заявок с сайта.
// Поддерживается только метод sendMessage.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError — ответ Bot API с ok=false или неуспешным HTTP-статусом.
type APIError struct {
	StatusCode  int
	Description string
}

// Error возвращает описание ошибки от Bot API.
func (e *APIError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// sendMessageRequest — тело запроса sendMessage.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// apiResponse — общий конверт ответа Bot API.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Client — клиент Bot API, привязанный к одному чату.
type Client struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт клиент. httpClient == nil — http.DefaultClient: запрос
// ограничен только контекстом и таймаутами транспорта по умолчанию.
func New(apiURL, token, chatID string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(apiURL, "/"),
		token:      token,
		chatID:     chatID,
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "telegram_client")),
	}
}

// SendMessage отправляет text в чат с parse_mode=HTML. Повторных попыток нет.
// Ошибка Bot API возвращается как *APIError.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("сериализация sendMessage: %w", err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("создание запроса sendMessage: %w", redact(err))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	if err != nil {
		return fmt.Errorf("запрос sendMessage: %w", redact(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("чтение ответа sendMessage: %w", err)
	}

	var result apiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{StatusCode: resp.StatusCode, Description: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("декодирование ответа sendMessage: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !result.OK {
		return &APIError{StatusCode: resp.StatusCode, Description: result.Description}
	}

	c.logger.Debug("Сообщение отправлено",
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// redact убирает из ошибки URL запроса: он содержит токен бота.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
