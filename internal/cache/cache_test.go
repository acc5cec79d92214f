package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты redisCache:
// — поднимают реальный Redis через testcontainers-go (образ redis:7-alpine);
// — проверяют Get/Set, промах, префикс ключей и истечение TTL.

// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/cache -v -race -count=1

// startRedis — поднимает Redis и возвращает URL и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startRedis(t *testing.T) (string, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	cleanup := func() {
		_ = c.Terminate(context.Background())
	}

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port()), cleanup
}

func TestIntegration_RedisCache_GetSet(t *testing.T) {
	url, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	pc, err := NewRedisCache(ctx, url, "")
	require.NoError(t, err)
	defer pc.Close()

	_, ok, err := pc.Get(ctx, "all:p=0&s=6")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, pc.Set(ctx, "all:p=0&s=6", []byte(`{"items":[]}`), time.Minute))

	b, ok, err := pc.Get(ctx, "all:p=0&s=6")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"items":[]}`, string(b))

	// Ключи изолированы префиксом.
	other, err := NewRedisCache(ctx, url, "other:")
	require.NoError(t, err)
	defer other.Close()

	_, ok, err = other.Get(ctx, "all:p=0&s=6")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIntegration_RedisCache_TTL(t *testing.T) {
	url, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	pc, err := NewRedisCache(ctx, url, "ttl:")
	require.NoError(t, err)
	defer pc.Close()

	require.NoError(t, pc.Set(ctx, "k", []byte("v"), 1*time.Second))

	require.Eventually(t, func() bool {
		_, ok, err := pc.Get(ctx, "k")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestNewRedisCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache(context.Background(), "not-a-url", "")
	require.Error(t, err)
}
