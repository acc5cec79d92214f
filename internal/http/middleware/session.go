package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	logctx "github.com/pribylovaa/events-client/internal/pkg/log"
)

// Идентификация браузерной сессии.
const (
	SessionCookie  = "sid"
	HeaderClientID = "X-Client-Id"
)

type ctxKey string

const ctxSessionID ctxKey = "session_id"

// SessionID возвращает идентификатор сессии из контекста или "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxSessionID).(string)
	return id
}

// WithSessionID кладёт идентификатор сессии в контекст.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxSessionID, id)
}

// Session обеспечивает идентификатор сессии:
//  1. заголовок X-Client-Id (для не-браузерных клиентов);
//  2. cookie sid;
//  3. иначе новый UUID, который выдаётся браузеру в cookie sid.
//
// Принимаются только корректные UUID. Идентификатор попадает в контекст
// и в атрибут session логгера.
func Session(secure bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := validID(r.Header.Get(HeaderClientID))
			if id == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					id = validID(c.Value)
				}
			}

			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := logctx.With(WithSessionID(r.Context(), id), slog.String("session", id))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validID(raw string) string {
	id, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}

	return id.String()
}
