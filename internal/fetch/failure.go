package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized — сессия не аутентифицирована (HTTP 401 апстрима).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden — у сессии нет прав на ресурс (HTTP 403 апстрима).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — запрошенный ресурс отсутствует (HTTP 404 апстрима).
	ErrNotFound = errors.New("not found")
	// ErrRejected — апстрим отверг параметры запроса (HTTP 400/422).
	// Причина остаётся ReasonNetworkOrServer, но повтор и fallback не помогут.
	ErrRejected = errors.New("rejected by upstream")

	// ErrSuperseded — поколение запроса вытеснено более новым запросом.
	ErrSuperseded = errors.New("request superseded")
	// ErrClosed — контроллер закрыт.
	ErrClosed = errors.New("controller closed")
	// ErrNoRequest — Retry до первого Request.
	ErrNoRequest = errors.New("no request to retry")
	// ErrUnknownGeneration — Wait по поколению, которое ещё не выдавалось.
	ErrUnknownGeneration = errors.New("unknown request generation")
)

// Reason — закрытая таксономия причин отказа выборки.
type Reason int

const (
	// ReasonNetworkOrServer — транспорт, 5xx, таймаут, некорректный ответ.
	ReasonNetworkOrServer Reason = iota
	ReasonUnauthorized
	ReasonForbidden
	ReasonNotFound
)

func (r Reason) String() string {
	switch r {
	case ReasonUnauthorized:
		return "unauthorized"
	case ReasonForbidden:
		return "forbidden"
	case ReasonNotFound:
		return "not_found"
	default:
		return "network_or_server"
	}
}

// MarshalText кодирует причину строкой в JSON-представлениях.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Failure — отказ выборки: причина из таксономии и исходная ошибка.
type Failure struct {
	Reason Reason
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Reason.String()
	}

	return fmt.Sprintf("%s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Retryable сообщает, имеет ли смысл предлагать повтор (и подменять данные fallback).
// Unauthorized/Forbidden/NotFound и отвергнутый апстримом запрос терминальны:
// повтор даст тот же ответ.
func (f *Failure) Retryable() bool {
	return f.Reason == ReasonNetworkOrServer && !f.Rejected()
}

// Rejected — апстрим отверг параметры запроса (ErrRejected).
func (f *Failure) Rejected() bool {
	return errors.Is(f.Err, ErrRejected)
}

// Classify сводит произвольную ошибку коллаборатора к Failure.
//
// Маппинг:
//   - ErrUnauthorized -> ReasonUnauthorized;
//   - ErrForbidden -> ReasonForbidden;
//   - ErrNotFound -> ReasonNotFound;
//   - всё остальное (включая context.Canceled/DeadlineExceeded) -> ReasonNetworkOrServer.
//
// nil на входе даёт nil.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return &Failure{Reason: ReasonUnauthorized, Err: err}
	case errors.Is(err, ErrForbidden):
		return &Failure{Reason: ReasonForbidden, Err: err}
	case errors.Is(err, ErrNotFound):
		return &Failure{Reason: ReasonNotFound, Err: err}
	default:
		return &Failure{Reason: ReasonNetworkOrServer, Err: err}
	}
}
