package middleware

import (
	"net/http"
)

// Middleware оборачивает обработчик BFF.
type Middleware func(http.Handler) http.Handler

// Chain собирает цепочку: первый мидлвар оказывается внешним,
// то есть первым видит запрос и последним ответ.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}

// statusWriter фиксирует код и объём ответа для записи "http".
// Учитывается первый WriteHeader: повторные net/http всё равно игнорирует.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(p)
	w.count += n

	return n, err
}

// Unwrap нужен http.ResponseController (Flush, дедлайны записи).
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
