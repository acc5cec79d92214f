package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
	"github.com/stretchr/testify/require"
)

// memCache — PageCache в памяти для unit-тестов.
type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	setErr error
	getErr error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, false, m.getErr
	}

	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setErr != nil {
		return m.setErr
	}

	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memCache) Close() error { return nil }

func silent() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func sampleEvents() []models.Event {
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	return []models.Event{
		{ID: 1, Title: "A", StartTime: start, EndTime: start.Add(time.Hour), MaxAttendees: 10, RegistrationCount: 3, Creator: &models.User{ID: 7, Name: "C"}},
		{ID: 2, Title: "B", StartTime: start, EndTime: start.Add(time.Hour), MaxAttendees: 5, RegistrationCount: 5, IsFull: true},
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	d := paging.NewDescriptor(1, 6).WithParam("keyword", "jazz")
	require.Equal(t, "search:p=1&s=6&keyword=jazz", Key("search", d))
}

func TestCaptureAndRestore_RoundTrip(t *testing.T) {
	t.Parallel()

	mc := newMemCache()
	s := NewSnapshots(mc, time.Hour, silent())
	d := paging.NewDescriptor(0, 6)

	fetcher := s.Wrap("upcoming", func(_ context.Context, d paging.Descriptor) (paging.Result[models.Event], error) {
		return paging.Slice(sampleEvents(), d), nil
	})

	res, err := fetcher(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	require.Equal(t, time.Hour, mc.ttls[Key("upcoming", d)])

	got, err := s.Fallback("upcoming")(context.Background(), d, errors.New("down"))
	require.NoError(t, err)
	require.Equal(t, res, got)

	// Другой список и другая страница — промах.
	_, err = s.Fallback("all")(context.Background(), d, errors.New("down"))
	require.ErrorIs(t, err, ErrMiss)
	_, err = s.Fallback("upcoming")(context.Background(), d.WithIndex(1), errors.New("down"))
	require.ErrorIs(t, err, ErrMiss)
}

func TestCapture_SkipsFailuresAndInvalidPages(t *testing.T) {
	t.Parallel()

	mc := newMemCache()
	s := NewSnapshots(mc, 0, nil)
	d := paging.NewDescriptor(0, 6)

	boom := errors.New("boom")
	_, err := Capture(s, "all", func(context.Context, paging.Descriptor) (paging.Result[int], error) {
		return paging.Result[int]{}, boom
	})(context.Background(), d)
	require.ErrorIs(t, err, boom)

	_, err = Capture(s, "all", func(context.Context, paging.Descriptor) (paging.Result[int], error) {
		return paging.Result[int]{Items: []int{1}, PageSize: 6, TotalItems: 9, TotalPages: 1}, nil
	})(context.Background(), d)
	require.NoError(t, err)

	require.Empty(t, mc.data)
}

func TestCapture_StoreErrorDoesNotFailFetch(t *testing.T) {
	t.Parallel()

	mc := newMemCache()
	mc.setErr = errors.New("redis down")
	s := NewSnapshots(mc, time.Minute, silent())

	res, err := Capture(s, "all", func(_ context.Context, d paging.Descriptor) (paging.Result[int], error) {
		return paging.Slice([]int{1, 2, 3}, d), nil
	})(context.Background(), paging.NewDescriptor(0, 2))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, res.Items)
}

func TestRestore_Errors(t *testing.T) {
	t.Parallel()

	mc := newMemCache()
	s := NewSnapshots(mc, time.Minute, silent())
	d := paging.NewDescriptor(0, 6)

	mc.data[Key("all", d)] = []byte("{not json")
	_, err := Restore[int](s, "all")(context.Background(), d, errors.New("down"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMiss)

	redisErr := errors.New("conn reset")
	mc.getErr = redisErr
	_, err = Restore[int](s, "all")(context.Background(), d, errors.New("down"))
	require.ErrorIs(t, err, redisErr)
}
