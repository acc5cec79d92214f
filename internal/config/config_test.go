package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

// chdir — смена текущего рабочего каталога с авто-возвратом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML под текущую структуру config.go.
const sampleYAML = `
env: "prod"
http:
  host: "0.0.0.0"
  port: "8080"
  secure_cookies: true
metrics:
  host: "127.0.0.1"
  port: "9090"
api:
  base_url: "https://events.example.com/api"
  timeout: "4s"
  user_agent: "events-client/test"
paging:
  default_size: 9
  max_size: 45
  max_visible: 7
sessions:
  idle_ttl: "10m"
  sweep_interval: "30s"
fallback:
  mode: "snapshot"
  redis_url: "redis://cache:6379/1"
  prefix: "ev:"
  ttl: "2h"
timeouts:
  service: "3s"
`

// Минимальный YAML (всё остальное — через дефолты/ENV).
const minimalYAML = `
env: "stage"
`

// Некорректный YAML для проверки сообщений об ошибке.
const brokenYAML = `
env: [unclosed
`

func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := HTTPConfig{Host: "0.0.0.0", Port: "8080"}
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestMetricsConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := MetricsConfig{Host: "127.0.0.1", Port: "9090"}
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
}

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	require.True(t, cfg.HTTP.SecureCookies)
	require.Equal(t, "127.0.0.1:9090", cfg.Metrics.Addr())

	require.Equal(t, "https://events.example.com/api", cfg.API.BaseURL)
	require.Equal(t, 4*time.Second, cfg.API.Timeout)
	require.Equal(t, "events-client/test", cfg.API.UserAgent)

	require.Equal(t, 9, cfg.Paging.DefaultSize)
	require.Equal(t, 45, cfg.Paging.MaxSize)
	require.Equal(t, 7, cfg.Paging.MaxVisible)

	require.Equal(t, 10*time.Minute, cfg.Sessions.IdleTTL)
	require.Equal(t, 30*time.Second, cfg.Sessions.SweepInterval)

	require.Equal(t, FallbackSnapshot, cfg.Fallback.Mode)
	require.Equal(t, "redis://cache:6379/1", cfg.Fallback.RedisURL)
	require.Equal(t, "ev:", cfg.Fallback.Prefix)
	require.Equal(t, 2*time.Hour, cfg.Fallback.TTL)

	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
}

// Незаданные поля получают значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "min.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "stage", cfg.Env)
	require.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, 6, cfg.Paging.DefaultSize)
	require.Equal(t, 100, cfg.Paging.MaxSize)
	require.Equal(t, 5, cfg.Paging.MaxVisible)
	require.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
	require.Equal(t, FallbackNone, cfg.Fallback.Mode)
	require.Equal(t, 15*time.Second, cfg.Timeouts.Service)
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_Validate(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		yaml string
	}{
		{"relative_base_url", `api: { base_url: "/api" }`},
		{"ftp_base_url", `api: { base_url: "ftp://host/api" }`},
		{"default_above_max", `paging: { default_size: 50, max_size: 10 }`},
		{"negative_max_visible", `paging: { max_visible: -1 }`},
		{"unknown_mode", `fallback: { mode: "sticky" }`},
		{"negative_idle_ttl", `sessions: { idle_ttl: "-1s" }`},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfgPath := writeFile(t, t.TempDir(), "cfg.yaml", tc.yaml)

			_, err := Load(cfgPath)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "from_env_path.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "stage", cfg.Env)
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "8080", cfg.HTTP.Port)
}

// CONFIG_PATH важнее local.yaml.
func TestLoad_Priority_ENVWinsOverLocal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, ".", "local.yaml", `
env: "local"
http: { host: "127.0.0.1", port: "7777" }
`)

	envPath := writeFile(t, dir, "from_env.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", envPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "stage", cfg.Env)
}

// Явный путь важнее CONFIG_PATH и local.yaml.
func TestLoad_Priority_ExplicitWinsOverEnvAndLocal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	explicit := writeFile(t, dir, "explicit.yaml", `
env: "prod"
http: { host: "0.0.0.0", port: "8080" }
`)
	badFromEnv := writeFile(t, dir, "bad.yaml", brokenYAML)
	t.Setenv("CONFIG_PATH", badFromEnv)
	writeFile(t, ".", "local.yaml", `
env: "local"
http: { host: "127.0.0.1", port: "9999" }
`)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "8080", cfg.HTTP.Port)
}

func TestLoad_EnvOverlay_OverridesValuesFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	t.Setenv("HTTP_PORT", "18080")
	t.Setenv("API_BASE_URL", "http://10.0.0.5:8080/api")
	t.Setenv("FALLBACK_MODE", "mock")
	t.Setenv("PAGING_MAX_VISIBLE", "9")
	t.Setenv("SERVICE", "5s") // таймаут

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "18080", cfg.HTTP.Port)
	require.Equal(t, "http://10.0.0.5:8080/api", cfg.API.BaseURL)
	require.Equal(t, FallbackMock, cfg.Fallback.Mode)
	require.Equal(t, 9, cfg.Paging.MaxVisible)
	require.Equal(t, 5*time.Second, cfg.Timeouts.Service)
}

// «Только ENV» без файлов.
func TestLoad_EnvOnly_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	t.Setenv("ENV", "dev")
	t.Setenv("HTTP_PORT", "50090")
	t.Setenv("METRICS_PORT", "50085")
	t.Setenv("API_BASE_URL", "https://api.internal/api")
	t.Setenv("SESSIONS_IDLE_TTL", "5m")
	t.Setenv("SERVICE", "2s")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "50090", cfg.HTTP.Port)
	require.Equal(t, "50085", cfg.Metrics.Port)
	require.Equal(t, "https://api.internal/api", cfg.API.BaseURL)
	require.Equal(t, 5*time.Minute, cfg.Sessions.IdleTTL)
	require.Equal(t, 2*time.Second, cfg.Timeouts.Service)
}

func TestLoad_EnvOnly_Invalid(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("FALLBACK_MODE", "sometimes")

	_, err := Load("")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMustLoad_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "ok.yaml", minimalYAML)

	cfg := MustLoad(cfgPath)
	require.NotNil(t, cfg)
	require.Equal(t, "stage", cfg.Env)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
