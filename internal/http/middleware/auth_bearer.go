package middleware

import (
	"net/http"
	"strings"

	"github.com/pribylovaa/events-client/internal/api"
)

// TokenCookie — cookie, в которой браузер хранит токен доступа.
const TokenCookie = "token"

// AuthBearer извлекает токен и кладёт его в контекст для api-клиента.
//
// Источники:
//  1. заголовок Authorization: Bearer <token>;
//  2. cookie token.
//
// Токен не проверяется: это делает удалённый API.
func AuthBearer() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearer(r); token != "" {
				r = r.WithContext(api.WithAuthToken(r.Context(), token))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearer(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		const prefix = "Bearer "
		if strings.HasPrefix(auth, prefix) && len(auth) > len(prefix) {
			return strings.TrimSpace(auth[len(prefix):])
		}

		return ""
	}

	if c, err := r.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}

	return ""
}
