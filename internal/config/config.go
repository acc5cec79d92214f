// config — загрузка конфигурации events-client.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Режимы деградации публичных списков.
const (
	FallbackNone     = "none"
	FallbackMock     = "mock"
	FallbackSnapshot = "snapshot"
)

// ErrInvalidConfig — значения конфигурации вне допустимых диапазонов.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	API      APIConfig      `yaml:"api"`
	Paging   PagingConfig   `yaml:"paging"`
	Sessions SessionsConfig `yaml:"sessions"`
	Fallback FallbackConfig `yaml:"fallback"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// TimeoutConfig — таймаут обработки входящего запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// HTTPConfig — публичный REST-сервер BFF.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8081"`
	// SecureCookies — выставлять Secure у cookie сессии.
	SecureCookies bool `yaml:"secure_cookies" env:"HTTP_SECURE_COOKIES" env-default:"false"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9091"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// APIConfig — удалённый REST API событий.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"API_BASE_URL"   env-default:"http://localhost:8080/api"`
	Timeout   time.Duration `yaml:"timeout"    env:"API_TIMEOUT"    env-default:"10s"`
	UserAgent string        `yaml:"user_agent" env:"API_USER_AGENT" env-default:"events-client"`
}

// PagingConfig — размеры страниц и строки пагинации.
type PagingConfig struct {
	DefaultSize int `yaml:"default_size" env:"PAGING_DEFAULT_SIZE" env-default:"6"`
	MaxSize     int `yaml:"max_size"     env:"PAGING_MAX_SIZE"     env-default:"100"`
	MaxVisible  int `yaml:"max_visible"  env:"PAGING_MAX_VISIBLE"  env-default:"5"`
}

// SessionsConfig — время жизни простаивающих сессий.
type SessionsConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"       env:"SESSIONS_IDLE_TTL"       env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSIONS_SWEEP_INTERVAL" env-default:"1m"`
}

// FallbackConfig — стратегия деградации публичных списков.
type FallbackConfig struct {
	Mode     string        `yaml:"mode"      env:"FALLBACK_MODE"      env-default:"none"`
	RedisURL string        `yaml:"redis_url" env:"FALLBACK_REDIS_URL" env-default:"redis://localhost:6379/0"`
	Prefix   string        `yaml:"prefix"    env:"FALLBACK_PREFIX"    env-default:"events:page:"`
	TTL      time.Duration `yaml:"ttl"       env:"FALLBACK_TTL"       env-default:"24h"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		return finish(&cfg)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		return finish(&cfg)
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// finish накладывает ENV поверх файла и проверяет результат.
func finish(cfg *Config) (*Config, error) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to overlay env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an absolute http(s) URL", ErrInvalidConfig, c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be > 0", ErrInvalidConfig)
	}

	if c.Paging.DefaultSize <= 0 || c.Paging.MaxSize <= 0 {
		return fmt.Errorf("%w: paging sizes must be > 0", ErrInvalidConfig)
	}

	if c.Paging.DefaultSize > c.Paging.MaxSize {
		return fmt.Errorf("%w: paging.default_size %d > paging.max_size %d", ErrInvalidConfig, c.Paging.DefaultSize, c.Paging.MaxSize)
	}

	if c.Paging.MaxVisible < 1 {
		return fmt.Errorf("%w: paging.max_visible must be >= 1", ErrInvalidConfig)
	}

	if c.Sessions.IdleTTL <= 0 || c.Sessions.SweepInterval <= 0 {
		return fmt.Errorf("%w: sessions durations must be > 0", ErrInvalidConfig)
	}

	switch c.Fallback.Mode {
	case FallbackNone, FallbackMock:
	case FallbackSnapshot:
		if c.Fallback.RedisURL == "" {
			return fmt.Errorf("%w: fallback.redis_url is required in snapshot mode", ErrInvalidConfig)
		}

		if c.Fallback.TTL <= 0 {
			return fmt.Errorf("%w: fallback.ttl must be > 0", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown fallback.mode %q", ErrInvalidConfig, c.Fallback.Mode)
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("%w: timeouts.service must be > 0", ErrInvalidConfig)
	}

	return nil
}
