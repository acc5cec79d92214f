// fetch реализует контроллер постраничной выборки: один контроллер на экран-список,
// машина состояний Idle -> Loading -> (Success | Failure) и правило
// «побеждает последний запрос» через счётчик поколений.
//
// Контроллер сам не делает I/O: выборку выполняет переданный Fetcher,
// таймауты принадлежат ему же (HTTP-клиенту).
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pribylovaa/events-client/internal/paging"
	"github.com/pribylovaa/events-client/internal/pkg/log"
)

// Fetcher выполняет выборку одной страницы.
type Fetcher[T any] func(ctx context.Context, d paging.Descriptor) (paging.Result[T], error)

// Fallback — явная стратегия подмены данных при повторяемом ReasonNetworkOrServer.
// cause — исходная ошибка основного источника.
type Fallback[T any] func(ctx context.Context, d paging.Descriptor, cause error) (paging.Result[T], error)

// Исходы выборки для Recorder (помимо Reason.String()).
const (
	OutcomeSuccess  = "success"
	OutcomeDegraded = "degraded"
	OutcomeStale    = "stale"
)

// Recorder получает итог каждой выборки (метрики).
type Recorder interface {
	ObserveFetch(list, outcome string, dur time.Duration)
}

// Option настраивает Controller.
type Option[T any] func(*Controller[T])

// WithFallback подключает fallback-стратегию. Применяется к каждому запросу
// отдельно и только для повторяемых отказов (Failure.Retryable); следующий запрос снова идёт
// в основной источник.
func WithFallback[T any](fb Fallback[T]) Option[T] {
	return func(c *Controller[T]) { c.fallback = fb }
}

// WithUnauthorized — сигнал коллаборатору аутентификации.
// Вызывается вне блокировок при каждом переходе в Failure(Unauthorized).
func WithUnauthorized[T any](fn func()) Option[T] {
	return func(c *Controller[T]) { c.onUnauthorized = fn }
}

// WithRecorder подключает сбор итогов выборки.
func WithRecorder[T any](r Recorder) Option[T] {
	return func(c *Controller[T]) { c.rec = r }
}

// WithLogger задаёт базовый логгер. По умолчанию берётся логгер из контекста Request.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(c *Controller[T]) { c.log = l }
}

// Controller владеет состоянием одного списка.
//
// Особенности:
//   - Request сразу переводит состояние в Loading и увеличивает поколение;
//     предыдущая выборка отменяется, а её результат, когда бы он ни пришёл,
//     отбрасывается;
//   - автоматических повторов нет, Retry повторяет последний дескриптор
//     новым поколением;
//   - паника внутри Fetcher превращается в Failure(NetworkOrServer);
//   - результат, нарушающий инварианты paging.Result, тоже считается
//     Failure(NetworkOrServer).
type Controller[T any] struct {
	list           string
	fetcher        Fetcher[T]
	fallback       Fallback[T]
	onUnauthorized func()
	rec            Recorder
	log            *slog.Logger

	mu      sync.Mutex
	state   State[T]
	gen     uint64
	cancel  context.CancelFunc
	changed chan struct{}
	closed  bool
}

// New создаёт контроллер в состоянии Idle.
func New[T any](list string, fetcher Fetcher[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		list:    list,
		fetcher: fetcher,
		changed: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// List — имя списка, которым владеет контроллер.
func (c *Controller[T]) List() string { return c.list }

// State возвращает текущий снимок.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Request выдаёт новый запрос и возвращает его поколение.
//
// Выборка выполняется в отдельной горутине. Контекст выборки наследует
// значения ctx (request id, токен, логгер), но не его отмену: выборкой
// владеет экран, а не HTTP-запрос, который её инициировал.
//
// Ошибки:
//   - paging.ErrInvalidDescriptor — состояние не меняется;
//   - ErrClosed — контроллер закрыт.
func (c *Controller[T]) Request(ctx context.Context, d paging.Descriptor) (uint64, error) {
	const op = "fetch.Controller.Request"

	if err := d.Validate(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, fmt.Errorf("%s: %w", op, ErrClosed)
	}

	if c.cancel != nil {
		c.cancel()
	}

	c.gen++
	gen := c.gen

	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.transition(State[T]{Status: StatusLoading, Generation: gen, Descriptor: d})
	c.mu.Unlock()

	lg := c.logger(ctx)
	lg.Debug("list_fetch_start",
		slog.String("op", op),
		slog.Uint64("generation", gen),
		slog.String("page", d.Key()),
	)

	go c.run(fctx, cancel, lg, gen, d)

	return gen, nil
}

// Retry повторяет последний дескриптор новым поколением.
func (c *Controller[T]) Retry(ctx context.Context) (uint64, error) {
	const op = "fetch.Controller.Retry"

	c.mu.Lock()
	st := c.state
	c.mu.Unlock()

	if st.Generation == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNoRequest)
	}

	return c.Request(ctx, st.Descriptor)
}

// Wait блокируется до финального состояния поколения gen.
//
// Финальное состояние поколения возвращается и после Close.
//
// Ошибки:
//   - ErrSuperseded — выдан более новый запрос (возвращается текущий снимок);
//   - ErrClosed — контроллер закрыт до финального состояния;
//   - ErrUnknownGeneration — gen ещё не выдавался;
//   - ctx.Err() — истёк контекст ожидания (выборка продолжается).
func (c *Controller[T]) Wait(ctx context.Context, gen uint64) (State[T], error) {
	const op = "fetch.Controller.Wait"

	for {
		c.mu.Lock()
		st, cur, closed, ch := c.state, c.gen, c.closed, c.changed
		c.mu.Unlock()

		switch {
		case gen == 0 || gen > cur:
			return st, fmt.Errorf("%s: %w: %d", op, ErrUnknownGeneration, gen)
		case gen < cur:
			return st, fmt.Errorf("%s: %w", op, ErrSuperseded)
		case st.Generation == gen && st.Settled():
			return st, nil
		case closed:
			return st, fmt.Errorf("%s: %w", op, ErrClosed)
		}

		select {
		case <-ctx.Done():
			return st, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-ch:
		}
	}
}

// Close отменяет выборку в полёте и переводит контроллер в закрытое состояние.
// Повторный вызов безопасен.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	close(c.changed)
	c.changed = make(chan struct{})
}

// transition фиксирует новое состояние и будит ожидающих. Вызывается под c.mu.
func (c *Controller[T]) transition(s State[T]) {
	c.state = s
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller[T]) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return !c.closed && c.gen == gen
}

func (c *Controller[T]) run(ctx context.Context, cancel context.CancelFunc, lg *slog.Logger, gen uint64, d paging.Descriptor) {
	const op = "fetch.Controller.run"

	defer cancel()
	start := time.Now()

	res, err := c.invoke(ctx, lg, d)
	if err == nil {
		res = res.ClampPastEnd()
		err = res.Validate()
	}

	degraded := false
	fail := Classify(err)

	if fail != nil && fail.Retryable() && c.fallback != nil && c.current(gen) {
		fbRes, fbErr := c.invokeFallback(ctx, lg, d, err)
		if fbErr == nil {
			fbErr = fbRes.Validate()
		}

		if fbErr == nil {
			res, fail, degraded = fbRes, nil, true
		} else {
			lg.Warn("list_fallback_failed",
				slog.String("op", op),
				slog.Uint64("generation", gen),
				slog.String("err", fbErr.Error()),
			)
		}
	}

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()

		lg.Debug("list_fetch_stale",
			slog.String("op", op),
			slog.Uint64("generation", gen),
		)
		c.observe(OutcomeStale, time.Since(start))

		return
	}

	next := State[T]{Generation: gen, Descriptor: d}
	if fail != nil {
		next.Status = StatusFailure
		next.Failure = fail
	} else {
		next.Status = StatusSuccess
		next.Result = res
		next.Degraded = degraded
	}

	c.transition(next)
	c.cancel = nil
	hook := c.onUnauthorized
	c.mu.Unlock()

	dur := time.Since(start)

	switch {
	case fail != nil:
		lg.Warn("list_fetch_failed",
			slog.String("op", op),
			slog.Uint64("generation", gen),
			slog.String("reason", fail.Reason.String()),
			slog.String("err", fail.Error()),
		)
		c.observe(fail.Reason.String(), dur)

		if fail.Reason == ReasonUnauthorized && hook != nil {
			hook()
		}
	case degraded:
		lg.Warn("list_fetch_degraded",
			slog.String("op", op),
			slog.Uint64("generation", gen),
			slog.Int("items", len(res.Items)),
		)
		c.observe(OutcomeDegraded, dur)
	default:
		lg.Debug("list_fetch_ok",
			slog.String("op", op),
			slog.Uint64("generation", gen),
			slog.Int("items", len(res.Items)),
			slog.Int("total_items", res.TotalItems),
			slog.Duration("dur", dur),
		)
		c.observe(OutcomeSuccess, dur)
	}
}

func (c *Controller[T]) invoke(ctx context.Context, lg *slog.Logger, d paging.Descriptor) (res paging.Result[T], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			lg.Error("list_fetch_panic", slog.Any("reason", rec))
			err = fmt.Errorf("fetcher panic: %v", rec)
		}
	}()

	return c.fetcher(ctx, d)
}

func (c *Controller[T]) invokeFallback(ctx context.Context, lg *slog.Logger, d paging.Descriptor, cause error) (res paging.Result[T], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			lg.Error("list_fallback_panic", slog.Any("reason", rec))
			err = fmt.Errorf("fallback panic: %v", rec)
		}
	}()

	return c.fallback(ctx, d, cause)
}

func (c *Controller[T]) observe(outcome string, dur time.Duration) {
	if c.rec != nil {
		c.rec.ObserveFetch(c.list, outcome, dur)
	}
}

func (c *Controller[T]) logger(ctx context.Context) *slog.Logger {
	l := c.log
	if l == nil {
		l = log.From(ctx)
	}

	return l.With(slog.String("list", c.list))
}
