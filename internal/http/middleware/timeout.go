package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout ограничивает запрос сроком d. Более ранний deadline родителя
// сохраняется (context.WithTimeout берёт минимальный). d <= 0 — no-op.
//
// Ожидание списка прерывается по этому сроку, сама выборка продолжается:
// её результат будет доступен через /state.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
