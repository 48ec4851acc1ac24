// Пакет errors — JSON-ответы редакторского API и служебных маршрутов при ошибке.
// Тело ответа: {"error": {"code": "NOT_FOUND", "message": "..."}}.
// Форма обратной связи сюда не относится, у неё свой формат {"success", "error"}.
package errors

import (
	"encoding/json"
	"net/http"
)

// Машиночитаемые коды ошибок.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// codeByStatus сопоставляет HTTP-статус и код ошибки.
var codeByStatus = map[int]string{
	http.StatusBadRequest:          CodeValidationError,
	http.StatusNotFound:            CodeNotFound,
	http.StatusUnauthorized:        CodeUnauthorized,
	http.StatusForbidden:           CodeForbidden,
	http.StatusConflict:            CodeConflict,
	http.StatusInternalServerError: CodeInternalError,
}

type problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Error problem `json:"error"`
}

// WriteError пишет ошибку с явно заданным кодом.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: problem{Code: code, Message: message}})
}

// Write пишет ошибку, выбирая код по статусу. Неизвестный статус даёт INTERNAL_ERROR.
func Write(w http.ResponseWriter, status int, message string) {
	code, ok := codeByStatus[status]
	if !ok {
		code = CodeInternalError
	}
	WriteError(w, status, code, message)
}

// ValidationError — 400: тело запроса или поля контента некорректны.
func ValidationError(w http.ResponseWriter, message string) {
	Write(w, http.StatusBadRequest, message)
}

// NotFound — 404: нет записи с таким slug.
func NotFound(w http.ResponseWriter, message string) { Write(w, http.StatusNotFound, message) }

// Unauthorized — 401: нет токена редактора или он невалиден.
func Unauthorized(w http.ResponseWriter, message string) { Write(w, http.StatusUnauthorized, message) }

// Forbidden — 403: у токена нет роли редактора.
func Forbidden(w http.ResponseWriter, message string) { Write(w, http.StatusForbidden, message) }

// Conflict — 409: slug уже занят.
func Conflict(w http.ResponseWriter, message string) { Write(w, http.StatusConflict, message) }

// InternalError — 500. message не должен раскрывать детали сбоя.
func InternalError(w http.ResponseWriter, message string) {
	Write(w, http.StatusInternalServerError, message)
}
