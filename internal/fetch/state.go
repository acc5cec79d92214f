package fetch

import "github.com/pribylovaa/events-client/internal/paging"

// Status — тег варианта состояния выборки.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Display — что должен показать экран: ровно один из вариантов.
type Display string

const (
	DisplayLoading Display = "loading"
	DisplayError   Display = "error"
	DisplayContent Display = "content"
	DisplayEmpty   Display = "empty"
)

// State — снимок состояния списка.
//
// Result осмыслен только при StatusSuccess, Failure — только при StatusFailure.
// Generation — номер запроса, породившего состояние (0 для Idle).
// Degraded помечает успех, полученный через fallback-стратегию.
type State[T any] struct {
	Status     Status
	Generation uint64
	Descriptor paging.Descriptor
	Result     paging.Result[T]
	Failure    *Failure
	Degraded   bool
}

// Display выбирает вариант отображения. Idle показывается как загрузка:
// экран создаёт контроллер и сразу выдаёт первый запрос.
func (s State[T]) Display() Display {
	switch s.Status {
	case StatusFailure:
		return DisplayError
	case StatusSuccess:
		if s.Result.Empty() {
			return DisplayEmpty
		}

		return DisplayContent
	default:
		return DisplayLoading
	}
}

// Settled — состояние финально для своего поколения.
func (s State[T]) Settled() bool {
	return s.Status == StatusSuccess || s.Status == StatusFailure
}
