package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nojaf/christmas-elm/internal/domain"
	"github.com/nojaf/christmas-elm/internal/logging"
)

type APIError struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON-ответ с указанным статус-кодом.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку в едином формате {"error": {"code", "message"}}.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, APIError{
		Error: APIErrorBody{Code: code, Message: message},
	})
}

// HTTPError описывает контролируемую HTTP-ошибку.
type HTTPError struct {
	status  int
	code    string
	message string
}

func (e *HTTPError) Error() string {
	return e.message
}

// NewHTTPError создаёт новую HTTP-ошибку.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		status:  status,
		code:    code,
		message: message,
	}
}

// NewBadRequestError создаёт 400 ошибку.
func NewBadRequestError(code, message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, code, message)
}

// WithErrorHandling оборачивает обработчик, централизуя выдачу ошибок.
// Преобразует доменные ошибки в HTTP-ответы с соответствующими статус-кодами.
func WithErrorHandling(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			var httpErr *HTTPError
			// Если ошибка уже является HTTPError, используем её статус и код
			if errors.As(err, &httpErr) {
				RespondError(w, httpErr.status, httpErr.code, httpErr.message)
				return
			}
			// Иначе преобразуем доменную ошибку в HTTP-ответ
			WriteDomainError(w, r, err)
		}
	}
}

// WriteDomainError преобразует доменные ошибки в HTTP-ответы.
// Ошибки сервиса обёрнуты, поэтому сравниваем через errors.Is.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := logging.ErrorCtx(r.Context(), err)
	requestID := chimw.GetReqID(ctx)

	switch {
	case errors.Is(err, domain.ErrNoDerangement):
		slog.DebugContext(ctx, "derangement impossible", "request_id", requestID, "error", err)
		RespondError(w, http.StatusUnprocessableEntity, "NO_DERANGEMENT", err.Error())
	case errors.Is(err, domain.ErrTooManyParticipants):
		slog.DebugContext(ctx, "participants limit exceeded", "request_id", requestID, "error", err)
		RespondError(w, http.StatusBadRequest, "TOO_MANY_PARTICIPANTS", err.Error())
	case errors.Is(err, domain.ErrInvalidIdentifier):
		slog.DebugContext(ctx, "invalid participant identifier", "request_id", requestID, "error", err)
		RespondError(w, http.StatusBadRequest, "INVALID_IDENTIFIER", err.Error())
	default:
		slog.ErrorContext(ctx, "unhandled domain error", "request_id", requestID, "error", err)
		RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
