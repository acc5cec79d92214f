package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/events-client/internal/fetch"
	apierrors "github.com/pribylovaa/events-client/internal/http/errors"
	"github.com/pribylovaa/events-client/internal/http/middleware"
	"github.com/pribylovaa/events-client/internal/screens"
)

// FetchList выдаёт запрос страницы списка и отвечает моделью экрана.
// Отказ выборки — это вариант экрана (200, display=error), кроме Unauthorized.
func (h *Handlers) FetchList(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.Screens.Fetch(r.Context(), middleware.SessionID(r.Context()), chi.URLParam(r, "list"), q)
	h.respondView(w, r, view, err)
}

// ListState отдаёт текущее состояние списка без нового запроса.
func (h *Handlers) ListState(w http.ResponseWriter, r *http.Request) {
	view, err := h.Screens.View(middleware.SessionID(r.Context()), chi.URLParam(r, "list"))
	h.respondView(w, r, view, err)
}

// RetryList повторяет последний запрос списка.
func (h *Handlers) RetryList(w http.ResponseWriter, r *http.Request) {
	view, err := h.Screens.Retry(r.Context(), middleware.SessionID(r.Context()), chi.URLParam(r, "list"))
	h.respondView(w, r, view, err)
}

func (h *Handlers) respondView(w http.ResponseWriter, r *http.Request, view screens.PageView, err error) {
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if view.Error != nil && view.Error.Reason == fetch.ReasonUnauthorized {
		h.fail(w, r, fetch.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// parseQuery читает page, size, sortBy, direction, keyword, creatorId.
func parseQuery(v url.Values) (screens.Query, error) {
	q := screens.Query{
		SortBy:    v.Get("sortBy"),
		Direction: v.Get("direction"),
		Keyword:   v.Get("keyword"),
	}

	var err error
	if q.Page, err = intParam(v, "page"); err != nil {
		return screens.Query{}, err
	}

	if q.Size, err = intParam(v, "size"); err != nil {
		return screens.Query{}, err
	}

	if raw := v.Get("creatorId"); raw != "" {
		q.CreatorID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return screens.Query{}, fmt.Errorf("%w: creatorId %q", apierrors.ErrInvalidArgument, raw)
		}
	}

	return q, nil
}

func intParam(v url.Values, name string) (int, error) {
	raw := v.Get(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", apierrors.ErrInvalidArgument, name, raw)
	}

	return n, nil
}
