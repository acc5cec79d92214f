package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/events-client/internal/api"
	"github.com/pribylovaa/events-client/internal/cache"
	"github.com/pribylovaa/events-client/internal/config"
	"github.com/pribylovaa/events-client/internal/fallback/mock"
	bffhttp "github.com/pribylovaa/events-client/internal/http"
	"github.com/pribylovaa/events-client/internal/http/handlers"
	"github.com/pribylovaa/events-client/internal/metrics"
	logctx "github.com/pribylovaa/events-client/internal/pkg/log"
	"github.com/pribylovaa/events-client/internal/screens"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting events-client", "env", cfg.Env, "fallback", cfg.Fallback.Mode)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	client, err := api.New(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Logger:    log,
	})
	if err != nil {
		log.Error("api_client_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	var (
		res     screens.Resilience
		details handlers.Details
	)

	switch cfg.Fallback.Mode {
	case config.FallbackMock:
		catalog := mock.New(nil)
		res, details = catalog, catalog
	case config.FallbackSnapshot:
		pc, err := cache.NewRedisCache(rootCtx, cfg.Fallback.RedisURL, cfg.Fallback.Prefix)
		if err != nil {
			log.Error("snapshot_cache_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}

		snapshots := cache.NewSnapshots(pc, cfg.Fallback.TTL, log)
		defer func() {
			if cerr := snapshots.Close(); cerr != nil {
				log.Warn("snapshot_cache_close_failed", slog.String("err", cerr.Error()))
			}
		}()

		res = snapshots
	}

	log.Info("fallback_configured", slog.String("mode", cfg.Fallback.Mode))

	m := metrics.New(prometheus.DefaultRegisterer)

	registry := screens.NewRegistry(screens.Options{
		API:         client,
		Resilience:  res,
		Recorder:    m,
		Sessions:    m.SetSessions,
		DefaultSize: cfg.Paging.DefaultSize,
		MaxSize:     cfg.Paging.MaxSize,
		MaxVisible:  cfg.Paging.MaxVisible,
		IdleTTL:     cfg.Sessions.IdleTTL,
	})
	defer registry.Close()

	go func() {
		if err := registry.StartSweeper(logctx.Into(rootCtx, log), cfg.Sessions.SweepInterval); err != nil {
			log.Error("sweeper_failed", slog.String("err", err.Error()))
		}
	}()

	h := handlers.New(client, registry, details)
	h.SecureCookies = cfg.HTTP.SecureCookies

	apiHandler := bffhttp.NewRouter(h, bffhttp.Options{
		Logger:        log,
		Timeout:       cfg.Timeouts.Service,
		SecureCookies: cfg.HTTP.SecureCookies,
		BasePath:      "/api",
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/", apiHandler)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	httpSrv := &http.Server{Addr: cfg.HTTP.Addr(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	metricsSrv := &http.Server{Addr: cfg.Metrics.Addr(), Handler: metricsMux, ReadHeaderTimeout: 5 * time.Second}

	serveErrCh := make(chan error, 2)
	for _, srv := range []*http.Server{httpSrv, metricsSrv} {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			log.Error("http_listen_failed", slog.String("addr", srv.Addr), slog.String("err", err.Error()))
			os.Exit(1)
		}

		log.Info("http_listen_start", slog.String("addr", srv.Addr))

		go func(srv *http.Server, ln net.Listener) {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErrCh <- err
			}
		}(srv, ln)
	}

	atomic.StoreInt32(&ready, 1)
	log.Info("events_client_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		log.Error("http_serve_failed", slog.String("err", err.Error()))
	}

	atomic.StoreInt32(&ready, 0)
	rootCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, srv := range []*http.Server{httpSrv, metricsSrv} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http_shutdown_incomplete", slog.String("addr", srv.Addr), slog.String("err", err.Error()))
		} else {
			log.Info("http_stopped", slog.String("addr", srv.Addr))
		}
	}

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
