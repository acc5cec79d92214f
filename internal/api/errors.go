package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/events-client/internal/fetch"
)

var (
	// ErrUnavailable — апстрим недоступен: транспорт, 5xx, битый ответ.
	// Для контроллера выборки это ReasonNetworkOrServer.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrBadRequest — апстрим отверг входные данные (400/422).
	// Совпадает с fetch.ErrRejected: такой отказ не повторяется и не подменяется fallback.
	ErrBadRequest = fetch.ErrRejected
	// ErrConflict — конфликт состояния (409): например, повторная регистрация.
	ErrConflict = errors.New("conflict")
)

// maxMessage — предел длины сообщения апстрима, пробрасываемого наружу.
const maxMessage = 200

// StatusError — неуспешный HTTP-ответ апстрима.
//
// Err — одна из таксономических ошибок (fetch.ErrUnauthorized, fetch.ErrForbidden,
// fetch.ErrNotFound, ErrBadRequest, ErrConflict, ErrUnavailable), поэтому
// вызывающий работает через errors.Is, не глядя на код.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status %d: %v", e.Status, e.Err)
	}

	return fmt.Sprintf("upstream status %d: %v: %s", e.Status, e.Err, e.Message)
}

func (e *StatusError) Unwrap() error { return e.Err }

// errorFromStatus строит StatusError по коду и (усечённому) телу ответа.
func errorFromStatus(status int, body []byte) *StatusError {
	return &StatusError{
		Status:  status,
		Message: messageFromBody(body),
		Err:     sentinelFor(status),
	}
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return fetch.ErrUnauthorized
	case http.StatusForbidden:
		return fetch.ErrForbidden
	case http.StatusNotFound:
		return fetch.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrBadRequest
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrUnavailable
	}
}

// messageFromBody достаёт человекочитаемое сообщение: строковое тело
// или поле message/error JSON-объекта Spring.
func messageFromBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" || !utf8.ValidString(s) {
		return ""
	}

	if strings.HasPrefix(s, "{") {
		var obj struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}

		if err := decodeJSON(strings.NewReader(s), &obj); err != nil {
			return ""
		}

		s = obj.Message
		if s == "" {
			s = obj.Error
		}
	}

	if utf8.RuneCountInString(s) > maxMessage {
		s = string([]rune(s)[:maxMessage])
	}

	return s
}
