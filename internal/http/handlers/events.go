package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	logctx "github.com/pribylovaa/events-client/internal/pkg/log"
	"github.com/pribylovaa/events-client/internal/screens"
)

// EventView — детальная страница события.
type EventView struct {
	Event    screens.EventItem `json:"event"`
	Degraded bool              `json:"degraded"`
}

// GetEvent — детальная страница. При сбое сети/сервера и подключённом
// офлайн-каталоге отдаётся событие из каталога с пометкой degraded.
func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.GetEvent"

	id, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ev, err := h.API.Event(r.Context(), id)
	if err == nil {
		writeJSON(w, http.StatusOK, EventView{Event: screens.NewEventItem(ev)})
		return
	}

	if f := fetch.Classify(err); f.Retryable() && h.Details != nil {
		if local, lerr := h.Details.Event(id); lerr == nil {
			logctx.From(r.Context()).Warn("event_fallback_served",
				slog.String("op", op),
				slog.Int64("id", id),
				slog.String("cause", err.Error()),
			)

			writeJSON(w, http.StatusOK, EventView{Event: screens.NewEventItem(local), Degraded: true})
			return
		}
	}

	h.fail(w, r, err)
}

// EditForm — форма редактирования, заполненная текущими значениями события.
func (h *Handlers) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ev, err := h.API.Event(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.FormFromEvent(ev))
}

// CreateEvent проверяет форму до обращения к API.
func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ev, err := h.API.CreateEvent(r.Context(), form)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, screens.NewEventItem(ev))
}

// UpdateEvent проверяет форму до обращения к API.
func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	form, err := readForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ev, err := h.API.UpdateEvent(r.Context(), id, form)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, screens.NewEventItem(ev))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.API.DeleteEvent(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Register регистрирует текущего пользователя на событие.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	me, err := h.API.Me(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	reg, err := h.API.Register(r.Context(), me.ID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, screens.NewTicketItem(reg))
}

// Me — текущий пользователь.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	me, err := h.API.Me(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, me)
}

// readForm декодирует, нормализует и проверяет форму события.
func readForm(r *http.Request) (models.EventForm, error) {
	var form models.EventForm
	if err := decodeStrict(r, &form); err != nil {
		return models.EventForm{}, err
	}

	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return models.EventForm{}, err
	}

	return form, nil
}
