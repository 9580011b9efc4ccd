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

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authv1 "github.com/astraios/auth-service/gen/go/auth"
	commonv1 "github.com/astraios/auth-service/gen/go/common"
	"github.com/astraios/auth-service/internal/clients/users"
	"github.com/astraios/auth-service/internal/config"
	"github.com/astraios/auth-service/internal/interceptors"
	"github.com/astraios/auth-service/internal/keys"
	"github.com/astraios/auth-service/internal/pkg/log"
	"github.com/astraios/auth-service/internal/service"
	"github.com/astraios/auth-service/internal/store/redisstore"
	"github.com/astraios/auth-service/internal/tokens"
	auth "github.com/astraios/auth-service/internal/transport/grpc"
	"github.com/astraios/auth-service/internal/transport/httpapi"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Константы для определения окружения.
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

	lg := setupLogger(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting application", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Ключевой материал: common-service (если включён) с локальным фолбэком.
	// Процесс не стартует без SigningKey.
	var commonClient commonv1.CommonServiceClient
	var commonConn *grpc.ClientConn
	if cfg.RemoteConfig.Enabled && cfg.RemoteConfig.CommonServiceAddr != "" {
		cc, err := grpc.NewClient(cfg.RemoteConfig.CommonServiceAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			lg.Error("common_service_dial_failed", slog.String("err", err.Error()))
			rootCancel()
			os.Exit(1)
		}
		commonConn = cc
		commonClient = commonv1.NewCommonServiceClient(cc)
	}

	signingKey, redisOverride, err := keys.Load(log.Into(rootCtx, lg), cfg, commonClient)
	if commonConn != nil {
		_ = commonConn.Close()
	}
	if err != nil {
		lg.Error("key_material_load_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	// Переопределения Redis из удалённого документа.
	redisOverride.Apply(&cfg.Redis)

	// Хранилище refresh-привязок с таймаутом на подключение.
	storeCtx, storeCancel := context.WithTimeout(rootCtx, 10*time.Second)
	refreshStore, err := redisstore.New(storeCtx, cfg.Redis)
	storeCancel()
	if err != nil {
		lg.Error("redis_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	lg.Info("redis_connected", slog.String("addr", cfg.Redis.Addr()))

	// Клиент user-service.
	userClient, err := users.New(cfg.UserService.Addr)
	if err != nil {
		lg.Error("user_service_dial_failed", slog.String("err", err.Error()))
		rootCancel()
		_ = refreshStore.Close()
		os.Exit(1)
	}

	// Сервис.
	codec := tokens.NewCodec(signingKey, cfg.Auth)
	srvc := service.New(userClient, codec, refreshStore)
	lg.Info("service_initialized", slog.String("kid", signingKey.KeyID))

	var ready int32 // 0 — not ready; 1 — ready
	httpAddr := cfg.HTTP.Addr()

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

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc(httpapi.JWKSPath, httpapi.JWKSHandler(codec, lg))

	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("http_listen_start", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}()

	grpc_prometheus.EnableHandlingTimeHistogram()

	// gRPC-сервер и интерсепторы.
	grpcOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			interceptors.Recover(lg),
			interceptors.UnaryLogging(lg),
			interceptors.WithTimeout(cfg.Timeouts.Service),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_prometheus.StreamServerInterceptor,
		),
	}
	grpcServer := grpc.NewServer(grpcOpts...)

	// Health-check сервис.
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	// Регистрация сервиса.
	authv1.RegisterAuthServiceServer(grpcServer, auth.NewAuthServer(srvc))

	// Рефлексия — только в local/dev.
	if cfg.Env == envLocal || cfg.Env == envDev {
		reflection.Register(grpcServer)
	}

	// Старт gRPC-сервера.
	addr := cfg.GRPC.Addr()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		lg.Error("grpc_listen_failed",
			slog.String("addr", addr),
			slog.String("err", err.Error()),
		)
		rootCancel()
		_ = refreshStore.Close()
		_ = userClient.Close()
		os.Exit(1)
	}
	lg.Info("grpc_listen_start", slog.String("addr", addr))

	grpc_prometheus.Register(grpcServer)

	// Сервис готов: health -> SERVING и readiness=1
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	atomic.StoreInt32(&ready, 1)

	serveErrCh := make(chan error, 1)
	go func() {
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	// Ожидание сигнала завершения или фатальной ошибки сервера.
	select {
	case <-rootCtx.Done():
		lg.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			lg.Error("grpc_serve_failed", slog.String("err", err.Error()))
		}
	}

	// Переводим в NOT_SERVING и снимаем ready.
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	atomic.StoreInt32(&ready, 0)

	// Graceful stop с таймаутом.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		lg.Info("grpc_stopped")
	case <-shutdownCtx.Done():
		lg.Warn("grpc_force_stop")
		grpcServer.Stop()
	}

	// Грейсфул остановка HTTP
	_ = httpSrv.Shutdown(context.Background())

	// Явная очистка перед выходом.
	shutdownCancel()
	rootCancel()
	_ = userClient.Close()
	_ = refreshStore.Close()

	lg.Info("service_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var lg *slog.Logger

	switch env {
	case envLocal:
		lg = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		lg = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		lg = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		lg = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return lg
}
