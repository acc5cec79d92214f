// api — типизированный REST-клиент удалённого API событий.
//
// Все ошибки приводятся к таксономии: *StatusError для неуспешных ответов
// (errors.Is с fetch.ErrUnauthorized/ErrForbidden/ErrNotFound, ErrBadRequest,
// ErrConflict, ErrUnavailable) и ErrUnavailable для транспортных сбоев.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
)

//go:generate mockgen -source=client.go -destination=../../mocks/mock_events_api.go -package=mocks

// EventsAPI — контракт удалённого API, которым пользуются экраны и хендлеры.
type EventsAPI interface {
	// ListEvents — все события (страница).
	ListEvents(ctx context.Context, d paging.Descriptor) (paging.Result[models.Event], error)
	// UpcomingEvents — предстоящие события (страница).
	UpcomingEvents(ctx context.Context, d paging.Descriptor) (paging.Result[models.Event], error)
	// SearchEvents — поиск по параметру keyword дескриптора.
	SearchEvents(ctx context.Context, d paging.Descriptor) (paging.Result[models.Event], error)
	// EventsByCreator — события, созданные пользователем.
	EventsByCreator(ctx context.Context, creatorID int64, d paging.Descriptor) (paging.Result[models.Event], error)
	// Event — одно событие.
	Event(ctx context.Context, id int64) (models.Event, error)
	// CreateEvent создаёт событие.
	CreateEvent(ctx context.Context, form models.EventForm) (models.Event, error)
	// UpdateEvent обновляет событие.
	UpdateEvent(ctx context.Context, id int64, form models.EventForm) (models.Event, error)
	// DeleteEvent удаляет событие.
	DeleteEvent(ctx context.Context, id int64) error
	// Register регистрирует пользователя на событие.
	Register(ctx context.Context, userID, eventID int64) (models.Registration, error)
	// Registrations — билеты пользователя (страница).
	Registrations(ctx context.Context, userID int64, d paging.Descriptor) (paging.Result[models.Registration], error)
	// Me — текущий пользователь по токену из контекста.
	Me(ctx context.Context) (models.User, error)
	// Login — вход по email и паролю, возвращает JWT.
	Login(ctx context.Context, creds models.Credentials) (string, error)
	// SignUp — регистрация пользователя, возвращает JWT.
	SignUp(ctx context.Context, form models.SignUpForm) (string, error)
}

// maxBody — предел читаемого тела ответа.
const maxBody = 8 << 20

// Options — параметры клиента.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Logger    *slog.Logger
	// Transport — базовый транспорт (по умолчанию http.DefaultTransport).
	Transport http.RoundTripper
}

// Client — реализация EventsAPI поверх net/http.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ EventsAPI = (*Client)(nil)

// New создаёт клиент. Цепочка декораторов транспорта: metadata -> timeout -> logging.
func New(opts Options) (*Client, error) {
	const op = "api.New"

	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%s: empty base url", op)
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported scheme %q", op, base.Scheme)
	}

	rt := Chain(opts.Transport,
		WithMetadata(opts.UserAgent),
		WithTimeout(opts.Timeout),
		WithLogging(opts.Logger),
	)

	return &Client{
		base: base,
		http: &http.Client{Transport: rt},
	}, nil
}

// pageQuery переводит дескриптор в query апстрима: page, size и параметры
// сортировки/фильтра как есть.
func pageQuery(d paging.Descriptor) url.Values {
	q := make(url.Values, len(d.Params)+2)
	for k, v := range d.Params {
		q[k] = append([]string(nil), v...)
	}

	q.Set("page", strconv.Itoa(d.Index))
	q.Set("size", strconv.Itoa(d.Size))

	return q
}

// do выполняет запрос и декодирует JSON-ответ в out (если out != nil).
func (c *Client) do(ctx context.Context, method string, path []string, query url.Values, body, out any) error {
	u := c.base.JoinPath(path...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromStatus(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := decodeJSON(bytes.NewReader(raw), out); err != nil {
		return fmt.Errorf("%w: decode body: %w", ErrUnavailable, err)
	}

	return nil
}

func idPath(id int64) string { return strconv.FormatInt(id, 10) }
