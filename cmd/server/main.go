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

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mclhub/poke-board/internal/cache"
	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/oauth"
	"github.com/mclhub/poke-board/internal/service/auth"
	"github.com/mclhub/poke-board/internal/service/boards"
	"github.com/mclhub/poke-board/internal/service/comments"
	"github.com/mclhub/poke-board/internal/service/members"
	"github.com/mclhub/poke-board/internal/service/samples"
	"github.com/mclhub/poke-board/internal/storage"
	"github.com/mclhub/poke-board/internal/storage/minio"
	"github.com/mclhub/poke-board/internal/storage/mongo"
	"github.com/mclhub/poke-board/internal/storage/postgres"
	boardhttp "github.com/mclhub/poke-board/internal/transport/http"
	"github.com/mclhub/poke-board/internal/transport/http/handlers"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting poke-board", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := postgres.New(dbCtx, cfg.DB.DatabaseURL)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer store.Close()
	log.Info("postgres_connected")

	mongoCtx, mongoCancel := context.WithTimeout(rootCtx, 10*time.Second)
	commentsStore, err := mongo.New(mongoCtx, cfg.Mongo, cfg.Limits)
	mongoCancel()
	if err != nil {
		log.Error("mongo_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer commentsStore.Close()
	log.Info("mongo_connected")

	// Хранилище загрузок опционально: без S3 профили живут без аватаров.
	var uploads storage.UploadStorage
	if cfg.S3.Endpoint != "" {
		s3Ctx, s3Cancel := context.WithTimeout(rootCtx, 10*time.Second)
		uploadsStore, err := minio.New(s3Ctx, cfg.S3)
		s3Cancel()
		if err != nil {
			log.Error("minio_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		uploads = uploadsStore
		log.Info("minio_connected")
	}

	authSvc := auth.New(store, cfg.Auth)

	// Кэш refresh-токенов опционален: без Redis ротация ходит только в БД.
	if cfg.Redis.RedisURL != "" {
		rcache, err := cache.NewRedisCache(cfg.Redis.RedisURL, "auth:rt:")
		if err != nil {
			log.Error("redis_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = rcache.Close() }()

		authSvc.SetRefreshCache(rcache)
		log.Info("redis_connected")
	}

	h := handlers.New(handlers.Deps{
		Auth:     authSvc,
		Boards:   boards.New(store, cfg.Limits),
		Samples:  samples.New(store, cfg.Limits),
		Comments: comments.New(commentsStore, store),
		Members:  members.New(store, uploads),
		OAuth:    oauth.NewRegistry(cfg.OAuth),
		CORS:     cfg.CORS,
		OAuthCfg: cfg.OAuth,
	})
	log.Info("services_initialized")

	apiHandler := boardhttp.NewRouter(h, authSvc, boardhttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Service,
		BasePath: "/api/v1",
	})

	var ready int32 // 0 — not ready; 1 — ready

	opsMux := http.NewServeMux()
	opsMux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	opsMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	opsMux.Handle("/metrics", promhttp.Handler())

	opsAddr := cfg.Ops.Addr()
	opsSrv := &http.Server{
		Addr:              opsAddr,
		Handler:           opsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("ops_listen_start", slog.String("addr", opsAddr))
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ops_serve_failed", slog.String("err", err.Error()))
		}
	}()

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           apiHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed",
			slog.String("addr", httpAddr),
			slog.String("err", err.Error()),
		)
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	_ = opsSrv.Shutdown(context.Background())

	log.Info("service_stopped")
}

// setupLogger настраивает slog по окружению.
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
