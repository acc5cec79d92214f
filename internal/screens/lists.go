// screens — экраны-списки BFF. Каждая браузерная сессия владеет набором
// экранов (по одному на список), каждый экран — ровно одним контроллером
// выборки. Экран отдаёт готовую к отрисовке модель страницы.
package screens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pribylovaa/events-client/internal/api"
	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
)

// Имена списков.
const (
	// ListUpcoming — лента главной страницы.
	ListUpcoming = "upcoming"
	// ListAll — все события (каталог и админ-панель).
	ListAll = "all"
	// ListSearch — результаты поиска по keyword.
	ListSearch = "search"
	// ListMine — события, созданные текущим пользователем.
	ListMine = "mine"
	// ListTickets — регистрации текущего пользователя.
	ListTickets = "tickets"
)

// Lists — все известные списки.
var Lists = []string{ListUpcoming, ListAll, ListSearch, ListMine, ListTickets}

var (
	// ErrUnknownList — такого списка нет.
	ErrUnknownList = errors.New("unknown list")
	// ErrInvalidQuery — некорректные параметры страницы.
	ErrInvalidQuery = errors.New("invalid query")
)

// Допустимые значения сортировки.
var (
	sortFields = map[string]bool{
		"startTime":    true,
		"endTime":      true,
		"title":        true,
		"location":     true,
		"maxAttendees": true,
	}
	directions = map[string]bool{"asc": true, "desc": true}
)

// Значения сортировки по умолчанию.
const (
	defaultSortBy    = "startTime"
	defaultDirection = "asc"
)

// Query — параметры запроса страницы от браузера.
type Query struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
	Keyword   string
	// CreatorID — автор для списка mine; 0 означает текущего пользователя.
	CreatorID int64
}

// Resilience — политика деградации для публичных списков
// (офлайн-каталог или снимки последних удачных страниц).
type Resilience interface {
	// Wrap оборачивает основную выборку (например, запоминает удачные страницы).
	Wrap(list string, f fetch.Fetcher[models.Event]) fetch.Fetcher[models.Event]
	// Fallback — стратегия подмены или nil.
	Fallback(list string) fetch.Fallback[models.Event]
}

// public — списки, не зависящие от пользователя: только для них допустима деградация.
func public(list string) bool {
	return list == ListUpcoming || list == ListAll || list == ListSearch
}

// known сообщает, существует ли список.
func known(list string) bool {
	for _, l := range Lists {
		if l == list {
			return true
		}
	}

	return false
}

// descriptor переводит Query в дескриптор с нормализацией размера страницы.
//
// Правила нормализации:
//   - size <= 0 -> defaultSize;
//   - size > maxSize -> maxSize;
//   - page < 0 -> ErrInvalidQuery;
//   - sortBy/direction — из белого списка, по умолчанию startTime/asc;
//   - search требует непустой keyword; tickets сортировку не принимает;
//   - creatorId учитывается только для mine.
func descriptor(list string, q Query, defaultSize, maxSize int) (paging.Descriptor, error) {
	if q.Page < 0 {
		return paging.Descriptor{}, fmt.Errorf("%w: page must be >= 0", ErrInvalidQuery)
	}

	size := q.Size
	if size <= 0 {
		size = defaultSize
	}

	if maxSize > 0 && size > maxSize {
		size = maxSize
	}

	d := paging.NewDescriptor(q.Page, size)

	switch list {
	case ListTickets:
		return d, nil
	case ListSearch:
		kw := strings.TrimSpace(q.Keyword)
		if kw == "" {
			return paging.Descriptor{}, fmt.Errorf("%w: keyword is required", ErrInvalidQuery)
		}

		d = d.WithParam("keyword", kw)
	case ListMine:
		if q.CreatorID < 0 {
			return paging.Descriptor{}, fmt.Errorf("%w: creatorId must be > 0", ErrInvalidQuery)
		}

		if q.CreatorID > 0 {
			d = d.WithParam("creatorId", strconv.FormatInt(q.CreatorID, 10))
		}
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	if !sortFields[sortBy] {
		return paging.Descriptor{}, fmt.Errorf("%w: unsupported sortBy %q", ErrInvalidQuery, sortBy)
	}

	direction := strings.ToLower(q.Direction)
	if direction == "" {
		direction = defaultDirection
	}

	if !directions[direction] {
		return paging.Descriptor{}, fmt.Errorf("%w: unsupported direction %q", ErrInvalidQuery, q.Direction)
	}

	return d.WithParam("sortBy", sortBy).WithParam("direction", direction), nil
}

// eventFetcher — выборка событий для списка.
func eventFetcher(client api.EventsAPI, list string) fetch.Fetcher[models.Event] {
	switch list {
	case ListUpcoming:
		return client.UpcomingEvents
	case ListAll:
		return client.ListEvents
	case ListSearch:
		return client.SearchEvents
	case ListMine:
		return func(ctx context.Context, d paging.Descriptor) (paging.Result[models.Event], error) {
			if raw := d.Param("creatorId"); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return paging.Result[models.Event]{}, fmt.Errorf("creatorId %q: %w", raw, err)
				}

				return client.EventsByCreator(ctx, id, d)
			}

			me, err := client.Me(ctx)
			if err != nil {
				return paging.Result[models.Event]{}, err
			}

			return client.EventsByCreator(ctx, me.ID, d)
		}
	default:
		return nil
	}
}

// ticketFetcher — выборка регистраций текущего пользователя.
func ticketFetcher(client api.EventsAPI) fetch.Fetcher[models.Registration] {
	return func(ctx context.Context, d paging.Descriptor) (paging.Result[models.Registration], error) {
		me, err := client.Me(ctx)
		if err != nil {
			return paging.Result[models.Registration]{}, err
		}

		return client.Registrations(ctx, me.ID, d)
	}
}
