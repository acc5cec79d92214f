package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/events-client/internal/api"
	"github.com/pribylovaa/events-client/internal/fetch"
	apierrors "github.com/pribylovaa/events-client/internal/http/errors"
	"github.com/pribylovaa/events-client/internal/http/middleware"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/screens"
)

// Details — офлайн-источник карточки события для деградации детальной страницы.
type Details interface {
	Event(id int64) (models.Event, error)
}

// Handlers агрегирует зависимости: API, реестр экранов и (опционально) офлайн-каталог.
// SecureCookies выставляет флаг Secure у cookie с токеном.
type Handlers struct {
	API           api.EventsAPI
	Screens       *screens.Registry
	Details       Details
	SecureCookies bool
}

func New(client api.EventsAPI, reg *screens.Registry, details Details) *Handlers {
	return &Handlers{API: client, Screens: reg, Details: details}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrInvalidArgument, err)
	}

	return nil
}

// fail пишет ошибку. Unauthorized дополнительно сбрасывает сессию
// и токен: браузер уйдёт на страницу входа.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, fetch.ErrUnauthorized) {
		h.signOut(w, r)
	}

	apierrors.WriteError(w, r, err)
}

func (h *Handlers) signOut(w http.ResponseWriter, r *http.Request) {
	if sid := middleware.SessionID(r.Context()); sid != "" && h.Screens != nil {
		h.Screens.Drop(sid)
	}

	h.setToken(w, "", -1)
}

// setToken пишет cookie с токеном; maxAge < 0 удаляет её.
func (h *Handlers) setToken(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// idParam разбирает положительный int64 из параметра пути.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", apierrors.ErrInvalidArgument, name, raw)
	}

	return id, nil
}
