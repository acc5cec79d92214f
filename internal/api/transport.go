package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/events-client/internal/pkg/log"
)

type CtxKey string

const (
	CtxRequestID CtxKey = "request_id"
	CtxAuthToken CtxKey = "auth_token"
)

// WithRequestID кладёт request id в контекст для исходящих вызовов.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxRequestID, id)
}

// WithAuthToken кладёт «сырой» bearer-токен в контекст для исходящих вызовов.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CtxAuthToken, token)
}

// AuthToken достаёт токен из контекста.
func AuthToken(ctx context.Context) string {
	tok, _ := ctx.Value(CtxAuthToken).(string)
	return tok
}

// RequestID достаёт request id из контекста.
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(CtxRequestID).(string)
	return rid
}

// Decorator — обёртка над http.RoundTripper.
type Decorator func(http.RoundTripper) http.RoundTripper

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain применяет декораторы в порядке перечисления: первый — внешний.
func Chain(base http.RoundTripper, decorators ...Decorator) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	for i := len(decorators) - 1; i >= 0; i-- {
		base = decorators[i](base)
	}

	return base
}

// WithMetadata добавляет в исходящий запрос заголовки:
//   - X-Request-Id (если есть в контексте);
//   - Authorization: Bearer <token> (если есть в контексте);
//   - User-Agent (если передан параметром).
//
// Уже выставленные вызывающим заголовки не перезаписываются.
func WithMetadata(userAgent string) Decorator {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())

			if rid := RequestID(r.Context()); rid != "" && r.Header.Get("X-Request-Id") == "" {
				r.Header.Set("X-Request-Id", rid)
			}

			if tok := AuthToken(r.Context()); tok != "" && r.Header.Get("Authorization") == "" {
				r.Header.Set("Authorization", "Bearer "+tok)
			}

			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}

// WithTimeout навешивает таймаут d на исходящий вызов, если у контекста
// ещё нет дедлайна. Таймаут покрывает и чтение тела: cancel вызывается
// при закрытии тела ответа.
//
// d <= 0 — декоратор ничего не делает.
func WithTimeout(d time.Duration) Decorator {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}

		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if _, ok := r.Context().Deadline(); ok {
				return next.RoundTrip(r)
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)

			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		})
	}
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// WithLogging — логирование исходящих вызовов.
// Поведение:
//   - берёт X-Request-Id из запроса (или генерирует новый и выставляет);
//   - прокладывает обогащённый логгер в контекст (pkg/log);
//   - пишет одну финальную запись: msg="upstream", status, dur.
//
// Тело и чувствительные заголовки не логируются.
func WithLogging(base *slog.Logger) Decorator {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			rid := r.Header.Get("X-Request-Id")
			if rid == "" {
				rid = uuid.NewString()
				r = r.Clone(r.Context())
				r.Header.Set("X-Request-Id", rid)
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			r = r.WithContext(log.Into(r.Context(), l))

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("upstream",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("upstream",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
