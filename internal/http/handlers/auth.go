package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/events-client/internal/api"
	"github.com/pribylovaa/events-client/internal/http/middleware"
	"github.com/pribylovaa/events-client/internal/models"
	logctx "github.com/pribylovaa/events-client/internal/pkg/log"
)

// TokenTTL — срок жизни cookie с токеном (как у выданного апстримом JWT).
const TokenTTL = 7 * 24 * time.Hour

// AuthView — ответ на вход и регистрацию.
type AuthView struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login — POST /auth/login: вход, cookie с токеном и текущий пользователь.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeStrict(r, &creds); err != nil {
		h.fail(w, r, err)
		return
	}

	creds = creds.Normalize()
	if err := creds.Validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	h.signIn(w, r, http.StatusOK, func(ctx context.Context) (string, error) {
		return h.API.Login(ctx, creds)
	})
}

// SignUp — POST /auth/register: регистрация и сразу вход.
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var form models.SignUpForm
	if err := decodeStrict(r, &form); err != nil {
		h.fail(w, r, err)
		return
	}

	form = form.Normalize()
	if err := form.Validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	h.signIn(w, r, http.StatusCreated, func(ctx context.Context) (string, error) {
		return h.API.SignUp(ctx, form)
	})
}

// Logout — POST /auth/logout: сброс токена и экранов сессии.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.signOut(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// signIn получает токен, сбрасывает экраны прежнего пользователя
// и отвечает токеном вместе с профилем.
func (h *Handlers) signIn(w http.ResponseWriter, r *http.Request, status int, issue func(context.Context) (string, error)) {
	const op = "handlers.signIn"

	token, err := issue(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.API.Me(api.WithAuthToken(r.Context(), token))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if sid := middleware.SessionID(r.Context()); sid != "" && h.Screens != nil {
		h.Screens.Drop(sid)
	}

	h.setToken(w, token, int(TokenTTL/time.Second))

	logctx.From(r.Context()).Info("signed_in",
		slog.String("op", op),
		slog.Int64("user_id", user.ID),
	)

	writeJSON(w, status, AuthView{Token: token, User: user})
}
