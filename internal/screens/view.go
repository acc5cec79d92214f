package screens

import (
	"github.com/pribylovaa/events-client/internal/display"
	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
)

// Тексты ошибок для экрана.
const (
	msgNetworkOrServer = "Failed to load events. Please try again."
	msgUnauthorized    = "Your session has expired. Please log in again."
	msgForbidden       = "You don't have permission to view this page."
	msgNotFound        = "The requested page was not found."
	msgRejected        = "The request was rejected. Please check the search or filter."
)

// PageView — модель экрана списка, готовая к отрисовке.
//
// Ровно один вариант Display: loading, error, content или empty.
// Items и Controls заполнены только при успехе, Error — только при отказе.
type PageView struct {
	List       string           `json:"list"`
	Status     fetch.Status     `json:"status"`
	Display    fetch.Display    `json:"display"`
	Generation uint64           `json:"generation"`
	Degraded   bool             `json:"degraded"`
	Page       int              `json:"page"`
	Size       int              `json:"size"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
	Items      any              `json:"items"`
	Controls   *paging.Controls `json:"controls,omitempty"`
	Error      *ErrorView       `json:"error,omitempty"`
}

// ErrorView — вариант «ошибка»: причина, текст и доступность повтора.
type ErrorView struct {
	Reason    fetch.Reason `json:"reason"`
	Message   string       `json:"message"`
	Retryable bool         `json:"retryable"`
}

// EventItem — событие вместе с производными данными карточки.
type EventItem struct {
	models.Event
	Card display.Card `json:"card"`
}

// TicketItem — регистрация; карточка строится по событию, если оно пришло.
type TicketItem struct {
	models.Registration
	Card *display.Card `json:"card,omitempty"`
}

// NewEventItem декорирует событие.
func NewEventItem(e models.Event) EventItem {
	return EventItem{
		Event: e,
		Card:  display.NewCard(e.Title, e.RegistrationCount, e.MaxAttendees),
	}
}

// NewTicketItem декорирует регистрацию.
func NewTicketItem(r models.Registration) TicketItem {
	it := TicketItem{Registration: r}
	if r.Event != nil {
		card := display.NewCard(r.Event.Title, r.Event.RegistrationCount, r.Event.MaxAttendees)
		it.Card = &card
	}

	return it
}

func eventItems(events []models.Event) any {
	out := make([]EventItem, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventItem(e))
	}

	return out
}

func ticketItems(regs []models.Registration) any {
	out := make([]TicketItem, 0, len(regs))
	for _, r := range regs {
		out = append(out, NewTicketItem(r))
	}

	return out
}

// NewErrorView переводит отказ в текст для экрана.
func NewErrorView(f *fetch.Failure) *ErrorView {
	if f == nil {
		return nil
	}

	v := &ErrorView{Reason: f.Reason, Retryable: f.Retryable()}

	switch f.Reason {
	case fetch.ReasonUnauthorized:
		v.Message = msgUnauthorized
	case fetch.ReasonForbidden:
		v.Message = msgForbidden
	case fetch.ReasonNotFound:
		v.Message = msgNotFound
	default:
		v.Message = msgNetworkOrServer
		if f.Rejected() {
			v.Message = msgRejected
		}
	}

	return v
}

// buildView собирает PageView из состояния контроллера.
func buildView[T any](list string, st fetch.State[T], items func([]T) any, maxVisible int) PageView {
	v := PageView{
		List:       list,
		Status:     st.Status,
		Display:    st.Display(),
		Generation: st.Generation,
		Page:       st.Descriptor.Index,
		Size:       st.Descriptor.Size,
		Items:      items(nil),
	}

	switch st.Status {
	case fetch.StatusSuccess:
		res := st.Result
		v.Degraded = st.Degraded
		v.Page = res.PageIndex
		v.Size = res.PageSize
		v.TotalItems = res.TotalItems
		v.TotalPages = res.TotalPages
		v.Items = items(res.Items)

		controls := paging.NewControls(res.PageIndex, res.TotalPages, maxVisible)
		v.Controls = &controls
	case fetch.StatusFailure:
		v.Error = NewErrorView(st.Failure)
	}

	return v
}
