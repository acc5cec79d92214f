package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pribylovaa/events-client/internal/api"
	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
	"github.com/pribylovaa/events-client/internal/pkg/log"
)

// ErrNoSession — пустой идентификатор сессии.
var ErrNoSession = errors.New("session id is required")

// Значения по умолчанию.
const (
	DefaultPageSize = 6
	MaxPageSize     = 100
	DefaultIdleTTL  = 30 * time.Minute
)

// Options — зависимости и настройки реестра.
type Options struct {
	// API — upstream REST API (обязателен).
	API api.EventsAPI
	// Resilience — деградация публичных списков; nil отключает её.
	Resilience Resilience
	// Recorder — сбор итогов выборок; может быть nil.
	Recorder fetch.Recorder
	// Sessions вызывается с числом активных сессий после каждого изменения.
	Sessions func(n int)

	DefaultSize int
	MaxSize     int
	MaxVisible  int
	IdleTTL     time.Duration

	// Now — источник времени (для тестов).
	Now func() time.Time
}

// session — экраны одной браузерной сессии.
type session struct {
	screens  map[string]screen
	lastSeen time.Time
}

// Registry хранит сессии и их экраны.
//
// Особенности:
//   - экран создаётся лениво при первом обращении к списку;
//   - отказ Unauthorized в любом экране сбрасывает всю сессию;
//   - сессии без обращений дольше IdleTTL удаляет Sweep.
type Registry struct {
	opts Options

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry создаёт реестр и нормализует настройки.
func NewRegistry(opts Options) *Registry {
	if opts.DefaultSize <= 0 {
		opts.DefaultSize = DefaultPageSize
	}

	if opts.MaxSize <= 0 {
		opts.MaxSize = MaxPageSize
	}

	if opts.DefaultSize > opts.MaxSize {
		opts.DefaultSize = opts.MaxSize
	}

	if opts.MaxVisible <= 0 {
		opts.MaxVisible = paging.DefaultMaxVisible
	}

	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultIdleTTL
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Registry{opts: opts, sessions: make(map[string]*session)}
}

// Descriptor переводит Query в дескриптор списка с нормализацией.
func (r *Registry) Descriptor(list string, q Query) (paging.Descriptor, error) {
	if !known(list) {
		return paging.Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownList, list)
	}

	return descriptor(list, q, r.opts.DefaultSize, r.opts.MaxSize)
}

// Fetch выдаёт запрос страницы и ждёт его завершения.
//
// Отказ выборки не является ошибкой: он приходит как PageView с Display == error.
// Ошибки:
//   - ErrNoSession, ErrUnknownList, ErrInvalidQuery — неверный вызов;
//   - fetch.ErrSuperseded — пока ждали, тот же экран получил новый запрос;
//   - ошибка ctx — вызывающий перестал ждать (выборка продолжается).
func (r *Registry) Fetch(ctx context.Context, sid, list string, q Query) (PageView, error) {
	const op = "screens.Registry.Fetch"

	d, err := r.Descriptor(list, q)
	if err != nil {
		return PageView{}, fmt.Errorf("%s: %w", op, err)
	}

	view, err := r.issue(ctx, sid, list, func(ctx context.Context, sc screen) (uint64, error) {
		return sc.request(ctx, d)
	})
	if err != nil {
		return PageView{}, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

// Retry повторяет последний запрос списка и ждёт его завершения.
// Если запросов ещё не было, возвращает fetch.ErrNoRequest.
func (r *Registry) Retry(ctx context.Context, sid, list string) (PageView, error) {
	const op = "screens.Registry.Retry"

	if !known(list) {
		return PageView{}, fmt.Errorf("%s: %w: %q", op, ErrUnknownList, list)
	}

	view, err := r.issue(ctx, sid, list, func(ctx context.Context, sc screen) (uint64, error) {
		return sc.retry(ctx)
	})
	if err != nil {
		return PageView{}, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

// View возвращает текущее состояние списка без нового запроса.
// Для незнакомой сессии или списка — Idle.
func (r *Registry) View(sid, list string) (PageView, error) {
	if sid == "" {
		return PageView{}, ErrNoSession
	}

	if !known(list) {
		return PageView{}, fmt.Errorf("%w: %q", ErrUnknownList, list)
	}

	r.mu.Lock()
	var sc screen
	if s, ok := r.sessions[sid]; ok {
		s.lastSeen = r.opts.Now()
		sc = s.screens[list]
	}
	r.mu.Unlock()

	if sc == nil {
		return idleView(list), nil
	}

	return sc.view(), nil
}

// Drop закрывает все экраны сессии и забывает её.
func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	s, ok := r.sessions[sid]
	if ok {
		delete(r.sessions, sid)
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return
	}

	for _, sc := range s.screens {
		sc.close()
	}

	r.report(n)
}

// Sweep удаляет сессии, простаивающие дольше IdleTTL. Возвращает число удалённых.
func (r *Registry) Sweep() int {
	deadline := r.opts.Now().Add(-r.opts.IdleTTL)

	r.mu.Lock()
	var idle []*session
	for id, s := range r.sessions {
		if s.lastSeen.Before(deadline) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, s := range idle {
		for _, sc := range s.screens {
			sc.close()
		}
	}

	if len(idle) > 0 {
		r.report(n)
	}

	return len(idle)
}

// Len — число активных сессий.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// Close закрывает все сессии.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*session)
	r.mu.Unlock()

	for _, s := range all {
		for _, sc := range s.screens {
			sc.close()
		}
	}

	r.report(0)
}

// StartSweeper периодически вызывает Sweep до отмены ctx.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) error {
	const op = "screens.Registry.StartSweeper"

	if interval <= 0 {
		return fmt.Errorf("%s: interval must be > 0", op)
	}

	lg := log.From(ctx)
	lg.Info("sweeper_start",
		slog.String("op", op),
		slog.Duration("interval", interval),
		slog.Duration("idle_ttl", r.opts.IdleTTL),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("sweeper_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				lg.Info("sessions_expired",
					slog.String("op", op),
					slog.Int("expired", n),
					slog.Int("active", r.Len()),
				)
			}
		}
	}
}

// issue выдаёт запрос через экран и ждёт его поколение.
// Если экран закрыли между получением и запросом (сессию сбросили),
// запрос повторяется один раз на новом экране.
func (r *Registry) issue(ctx context.Context, sid, list string, send func(context.Context, screen) (uint64, error)) (PageView, error) {
	if sid == "" {
		return PageView{}, ErrNoSession
	}

	for attempt := 0; ; attempt++ {
		sc := r.screen(sid, list)

		gen, err := send(ctx, sc)
		if errors.Is(err, fetch.ErrClosed) && attempt == 0 {
			continue
		}

		if err != nil {
			return PageView{}, err
		}

		return sc.wait(ctx, gen)
	}
}

// screen возвращает экран списка, создавая сессию и экран при необходимости.
func (r *Registry) screen(sid, list string) screen {
	r.mu.Lock()
	s, ok := r.sessions[sid]
	if !ok {
		s = &session{screens: make(map[string]screen)}
		r.sessions[sid] = s
	}
	s.lastSeen = r.opts.Now()

	sc, found := s.screens[list]
	if !found {
		sc = r.newScreen(sid, list)
		s.screens[list] = sc
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		r.report(n)
	}

	return sc
}

func (r *Registry) newScreen(sid, list string) screen {
	drop := func() { r.Drop(sid) }

	if list == ListTickets {
		ctrl := fetch.New(list, ticketFetcher(r.opts.API),
			fetch.WithUnauthorized[models.Registration](drop),
			fetch.WithRecorder[models.Registration](r.opts.Recorder),
		)

		return newListScreen(ctrl, ticketItems, r.opts.MaxVisible)
	}

	fetcher := eventFetcher(r.opts.API, list)
	opts := []fetch.Option[models.Event]{
		fetch.WithUnauthorized[models.Event](drop),
		fetch.WithRecorder[models.Event](r.opts.Recorder),
	}

	if res := r.opts.Resilience; res != nil && public(list) {
		fetcher = res.Wrap(list, fetcher)
		if fb := res.Fallback(list); fb != nil {
			opts = append(opts, fetch.WithFallback(fb))
		}
	}

	return newListScreen(fetch.New(list, fetcher, opts...), eventItems, r.opts.MaxVisible)
}

func (r *Registry) report(n int) {
	if r.opts.Sessions != nil {
		r.opts.Sessions(n)
	}
}

func idleView(list string) PageView {
	items := eventItems(nil)
	if list == ListTickets {
		items = ticketItems(nil)
	}

	return PageView{
		List:    list,
		Status:  fetch.StatusIdle,
		Display: fetch.DisplayLoading,
		Items:   items,
	}
}
