// errors стандартизирует ответы об ошибках HTTP-слоя events-client.
// На вход он принимает ошибку доменного слоя (api, fetch, screens, models),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей;
//   - для ошибок формы — список нарушений по полям.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/events-client/internal/api"
	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
	"github.com/pribylovaa/events-client/internal/screens"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// ErrInvalidArgument — локальная ошибка разбора входных данных хендлером.
var ErrInvalidArgument = errors.New("invalid argument")

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
// Fields — нарушения валидации формы.
type APIError struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	RequestID string              `json:"request_id,omitempty"`
	Fields    []models.FieldError `json:"fields,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует входную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal;
//   - ошибки контекста проверяются первыми (499/504), даже если завёрнуты в api.ErrUnavailable;
//   - *models.ValidationError — 400/validation_failed с полями;
//   - таксономия отказов выборки: 401, 403, 404, 503;
//   - ошибки экранов: неизвестный список 404, устаревший запрос 409;
//   - прочее — 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, response("internal", "internal error")
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		resp := response("validation_failed", "validation failed")
		resp.Error.Fields = verr.Fields
		return http.StatusBadRequest, resp
	}

	status, code, msg := base(err)
	return status, response(code, msg)
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func response(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// base — маппинг ошибки -> HTTP/FE-код/сообщение:
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - ErrInvalidArgument, screens.ErrInvalidQuery, screens.ErrNoSession,
//     paging.ErrInvalidDescriptor, api.ErrBadRequest -> 400;
//   - fetch.ErrUnauthorized -> 401, fetch.ErrForbidden -> 403;
//   - fetch.ErrNotFound, screens.ErrUnknownList -> 404;
//   - fetch.ErrSuperseded, fetch.ErrClosed, api.ErrConflict -> 409;
//   - fetch.ErrNoRequest -> 412;
//   - api.ErrUnavailable, fetch.Failure(NetworkOrServer) -> 503.
func base(err error) (int, string, string) {
	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, screens.ErrInvalidQuery),
		errors.Is(err, screens.ErrNoSession),
		errors.Is(err, paging.ErrInvalidDescriptor),
		errors.Is(err, api.ErrBadRequest):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, fetch.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, fetch.ErrForbidden):
		return http.StatusForbidden, "permission_denied", "permission denied"
	case errors.Is(err, fetch.ErrNotFound), errors.Is(err, screens.ErrUnknownList):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, fetch.ErrSuperseded):
		return http.StatusConflict, "superseded", "request superseded by a newer one"
	case errors.Is(err, fetch.ErrClosed):
		return http.StatusConflict, "session_closed", "session closed"
	case errors.Is(err, api.ErrConflict):
		return http.StatusConflict, "conflict", "conflict"
	case errors.Is(err, fetch.ErrNoRequest):
		return http.StatusPreconditionFailed, "no_request", "nothing to retry"
	case errors.Is(err, api.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	}

	var f *fetch.Failure
	if errors.As(err, &f) && f.Reason == fetch.ReasonNetworkOrServer {
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	}

	return http.StatusInternalServerError, "internal", "internal error"
}
