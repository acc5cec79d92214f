package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
)

// DefaultTTL — срок жизни снимка по умолчанию.
const DefaultTTL = 24 * time.Hour

// Snapshots связывает PageCache с контроллером выборки: Capture запоминает
// удачные страницы, Restore подставляет их при отказе.
type Snapshots struct {
	cache PageCache
	ttl   time.Duration
	log   *slog.Logger
}

// NewSnapshots создаёт хранилище снимков. ttl <= 0 заменяется DefaultTTL.
func NewSnapshots(c PageCache, ttl time.Duration, log *slog.Logger) *Snapshots {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if log == nil {
		log = slog.Default()
	}

	return &Snapshots{cache: c, ttl: ttl, log: log}
}

// Key — ключ снимка: список плюс детерминированное представление дескриптора.
func Key(list string, d paging.Descriptor) string {
	return list + ":" + d.Key()
}

// Capture оборачивает выборку: каждая удачная и корректная страница
// сохраняется в кэш. Ошибка записи логируется и на выборку не влияет.
func Capture[T any](s *Snapshots, list string, f fetch.Fetcher[T]) fetch.Fetcher[T] {
	return func(ctx context.Context, d paging.Descriptor) (paging.Result[T], error) {
		const op = "cache.Capture"

		res, err := f(ctx, d)
		if err != nil || res.Validate() != nil {
			return res, err
		}

		b, merr := json.Marshal(res)
		if merr != nil {
			s.log.Warn("snapshot_encode_failed",
				slog.String("op", op),
				slog.String("list", list),
				slog.String("err", merr.Error()),
			)

			return res, nil
		}

		if serr := s.cache.Set(ctx, Key(list, d), b, s.ttl); serr != nil {
			s.log.Warn("snapshot_store_failed",
				slog.String("op", op),
				slog.String("list", list),
				slog.String("err", serr.Error()),
			)
		}

		return res, nil
	}
}

// Restore — fallback-стратегия: страница из последнего снимка.
//
// Ошибки:
//   - ErrMiss — снимка нет;
//   - ошибки Redis и декодирования — обёрнутые.
func Restore[T any](s *Snapshots, list string) fetch.Fallback[T] {
	return func(ctx context.Context, d paging.Descriptor, cause error) (paging.Result[T], error) {
		const op = "cache.Restore"

		b, ok, err := s.cache.Get(ctx, Key(list, d))
		if err != nil {
			return paging.Result[T]{}, fmt.Errorf("%s: %w", op, err)
		}

		if !ok {
			return paging.Result[T]{}, fmt.Errorf("%s: %w", op, ErrMiss)
		}

		var res paging.Result[T]
		if err := json.Unmarshal(b, &res); err != nil {
			return paging.Result[T]{}, fmt.Errorf("%s: decode: %w", op, err)
		}

		s.log.Info("snapshot_served",
			slog.String("op", op),
			slog.String("list", list),
			slog.String("page", d.Key()),
			slog.Any("cause", cause),
		)

		return res, nil
	}
}

// Wrap — Capture для списков событий.
func (s *Snapshots) Wrap(list string, f fetch.Fetcher[models.Event]) fetch.Fetcher[models.Event] {
	return Capture(s, list, f)
}

// Fallback — Restore для списков событий.
func (s *Snapshots) Fallback(list string) fetch.Fallback[models.Event] {
	return Restore[models.Event](s, list)
}

// Close закрывает нижележащий кэш.
func (s *Snapshots) Close() error { return s.cache.Close() }
