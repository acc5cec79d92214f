package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
	"github.com/stretchr/testify/require"
)

// Тесты REST-клиента против httptest-сервера:
//   - пути, query и тела запросов;
//   - конвертация PagedResponseDTO и LocalDateTime;
//   - маппинг статусов в таксономию ошибок;
//   - транспортные сбои и битые ответы -> ErrUnavailable.

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Options{
		BaseURL:   srv.URL + "/api",
		Timeout:   time.Second,
		UserAgent: "events-client-test",
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return c
}

const eventJSON = `{
	"id": 3,
	"title": "Wellness & Mindfulness Retreat",
	"description": "Retreat",
	"location": "Mountain Lodge",
	"startTime": "2026-06-01T10:00:00",
	"endTime": "2026-06-03T16:30:00.123",
	"maxAttendees": 50,
	"creator": {"id": 1, "name": "Admin", "email": "admin@example.com", "isAdmin": true},
	"registrationCount": 50,
	"isFull": true,
	"images": [{"id": 9, "imageUrl": "https://img/1.jpg", "displayOrder": 0, "createdAt": "2026-01-01T00:00:00Z"}]
}`

func TestClient_ListEvents(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/events", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "6", r.URL.Query().Get("size"))
		require.Equal(t, "startTime", r.URL.Query().Get("sortBy"))
		require.Equal(t, "asc", r.URL.Query().Get("direction"))
		require.Equal(t, "events-client-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"content":[`+eventJSON+`],"pageNumber":1,"pageSize":6,"totalElements":7,"totalPages":2,"last":true}`)
	}))

	d := paging.NewDescriptor(1, 6).WithParam("sortBy", "startTime").WithParam("direction", "asc")
	res, err := c.ListEvents(context.Background(), d)
	require.NoError(t, err)
	require.NoError(t, res.Validate())

	require.Equal(t, 1, res.PageIndex)
	require.Equal(t, 6, res.PageSize)
	require.Equal(t, 7, res.TotalItems)
	require.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Items, 1)

	ev := res.Items[0]
	require.EqualValues(t, 3, ev.ID)
	require.True(t, ev.IsFull)
	require.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), ev.StartTime)
	require.Equal(t, time.Date(2026, 6, 3, 16, 30, 0, 123000000, time.UTC), ev.EndTime)
	require.Equal(t, &models.User{ID: 1, Name: "Admin", Email: "admin@example.com", IsAdmin: true}, ev.Creator)
	require.Equal(t, "https://img/1.jpg", ev.Images[0].URL)
}

// Апстрим отвечает на страницу за концом пустым content и pageNumber >= totalPages:
// это пустая, но успешная страница.
func TestClient_PagePastEnd_IsEmptyLastPage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "5", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"content":[],"pageNumber":5,"pageSize":6,"totalElements":12,"totalPages":2,"last":true}`)
	}))

	res, err := c.ListEvents(context.Background(), paging.NewDescriptor(5, 6))
	require.NoError(t, err)
	require.NoError(t, res.Validate())
	require.True(t, res.Empty())
	require.Equal(t, 1, res.PageIndex)
	require.Equal(t, 12, res.TotalItems)
	require.Equal(t, 2, res.TotalPages)
}

func TestClient_ListPaths(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var paths []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path+"?"+r.URL.Query().Get("keyword"))
		mu.Unlock()
		_, _ = io.WriteString(w, `{"content":[],"pageNumber":0,"pageSize":6,"totalElements":0,"totalPages":0,"last":true}`)
	}))

	ctx := context.Background()
	d := paging.NewDescriptor(0, 6)

	_, err := c.UpcomingEvents(ctx, d)
	require.NoError(t, err)
	_, err = c.SearchEvents(ctx, d.WithParam("keyword", "jazz"))
	require.NoError(t, err)
	_, err = c.EventsByCreator(ctx, 42, d)
	require.NoError(t, err)
	regs, err := c.Registrations(ctx, 42, d)
	require.NoError(t, err)
	require.True(t, regs.Empty())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{
		"/api/events/upcoming?",
		"/api/events/search?jazz",
		"/api/events/creator/42?",
		"/api/registrations/user/42?",
	}, paths)
}

func TestClient_CreateEvent_SendsLocalDateTimeAndToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/events", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.Equal(t, "rid-1", r.Header.Get("X-Request-Id"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Jazz Night", body["title"])
		require.Equal(t, "2026-07-01T19:00:00", body["startTime"])
		require.Equal(t, "2026-07-01T23:00:00", body["endTime"])
		require.EqualValues(t, 80, body["maxAttendees"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, eventJSON)
	}))

	ctx := WithAuthToken(WithRequestID(context.Background(), "rid-1"), "tok-1")
	start := time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC)

	ev, err := c.CreateEvent(ctx, models.EventForm{
		Title:        "Jazz Night",
		StartTime:    start,
		EndTime:      start.Add(4 * time.Hour),
		MaxAttendees: 80,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, ev.ID)
}

func TestClient_UpdateDeleteRegisterMe(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "PUT /api/events/3":
			_, _ = io.WriteString(w, eventJSON)
		case "DELETE /api/events/3":
			w.WriteHeader(http.StatusNoContent)
		case "POST /api/registrations/user/5":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.EqualValues(t, 3, body["eventId"])
			_, _ = io.WriteString(w, `{"id":11,"user":{"id":5,"name":"U"},"event":`+eventJSON+`,"registrationTime":"2026-02-01T08:00:00","attended":false}`)
		case "GET /api/users/me":
			_, _ = io.WriteString(w, `{"id":5,"name":"U","email":"u@example.com","isAdmin":false}`)
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()

	ev, err := c.UpdateEvent(ctx, 3, models.EventForm{Title: "x"})
	require.NoError(t, err)
	require.Equal(t, "Wellness & Mindfulness Retreat", ev.Title)

	require.NoError(t, c.DeleteEvent(ctx, 3))

	reg, err := c.Register(ctx, 5, 3)
	require.NoError(t, err)
	require.EqualValues(t, 11, reg.ID)
	require.EqualValues(t, 3, reg.Event.ID)
	require.Equal(t, time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC), reg.RegisteredAt)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, models.User{ID: 5, Name: "U", Email: "u@example.com"}, me)
}

func TestClient_StatusMapping(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		status int
		body   string
		want   error
		msg    string
	}{
		{http.StatusUnauthorized, "", fetch.ErrUnauthorized, ""},
		{http.StatusForbidden, "Only admins can edit events", fetch.ErrForbidden, "Only admins can edit events"},
		{http.StatusNotFound, `{"message":"Event not found with id: 99"}`, fetch.ErrNotFound, "Event not found with id: 99"},
		{http.StatusBadRequest, `{"error":"Bad Request"}`, ErrBadRequest, "Bad Request"},
		{http.StatusConflict, "already registered", ErrConflict, "already registered"},
		{http.StatusInternalServerError, "<html>boom</html>", ErrUnavailable, "<html>boom</html>"},
		{http.StatusBadGateway, "", ErrUnavailable, ""},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))

			_, err := c.Event(context.Background(), 99)
			require.ErrorIs(t, err, tc.want)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			require.Equal(t, tc.status, se.Status)
			require.Equal(t, tc.msg, se.Message)

			// Классификация контроллером выборки.
			reason := fetch.Classify(err).Reason
			switch tc.want {
			case fetch.ErrUnauthorized:
				require.Equal(t, fetch.ReasonUnauthorized, reason)
			case fetch.ErrForbidden:
				require.Equal(t, fetch.ReasonForbidden, reason)
			case fetch.ErrNotFound:
				require.Equal(t, fetch.ReasonNotFound, reason)
			default:
				require.Equal(t, fetch.ReasonNetworkOrServer, reason)
			}
		})
	}
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: url, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	_, err = c.ListEvents(context.Background(), paging.NewDescriptor(0, 6))
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, fetch.ReasonNetworkOrServer, fetch.Classify(err).Reason)
}

func TestClient_TimeoutIsUnavailable(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(Options{BaseURL: srv.URL, Timeout: 30 * time.Millisecond, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_BadPayloadIsUnavailable(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"content": "nope"`)
	}))

	_, err := c.ListEvents(context.Background(), paging.NewDescriptor(0, 6))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Options{})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "ftp://example.com"})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "http://[::1"})
	require.Error(t, err)
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-04T05:06:07"`), &ts))
	require.Equal(t, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC), ts.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2026-03-04T05:06:07+03:00"`), &ts))
	require.Equal(t, time.Date(2026, 3, 4, 2, 6, 7, 0, time.UTC), ts.Time)

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	require.True(t, ts.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"04.03.2026"`), &ts))
	require.Error(t, json.Unmarshal([]byte(`42`), &ts))

	b, err := json.Marshal(Timestamp{time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)})
	require.NoError(t, err)
	require.Equal(t, `"2026-03-04T05:06:07"`, string(b))

	b, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	require.Equal(t, `null`, string(b))
}

func TestClient_LoginAndSignUp(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		// Токен прежней сессии на вход не пересылается.
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/api/auth/login":
			if body["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `{"token":"jwt-login"}`)
		case "/api/auth/register":
			require.Equal(t, "Ann", body["name"])
			if body["email"] == "taken@example.com" {
				w.WriteHeader(http.StatusConflict)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"token":"jwt-new"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := WithAuthToken(context.Background(), "stale")

	token, err := c.Login(ctx, models.Credentials{Email: "ann@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "jwt-login", token)

	_, err = c.Login(ctx, models.Credentials{Email: "ann@example.com", Password: "wrong"})
	require.ErrorIs(t, err, fetch.ErrUnauthorized)

	token, err = c.SignUp(ctx, models.SignUpForm{Name: "Ann", Email: "ann@example.com", Password: "12345678"})
	require.NoError(t, err)
	require.Equal(t, "jwt-new", token)

	_, err = c.SignUp(ctx, models.SignUpForm{Name: "Ann", Email: "taken@example.com", Password: "12345678"})
	require.ErrorIs(t, err, ErrConflict)
}
