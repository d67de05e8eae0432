package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/upwatch/upwatch/internal/config"
	"github.com/upwatch/upwatch/internal/domain/event"
	"github.com/upwatch/upwatch/internal/repository/kafka"
	"github.com/upwatch/upwatch/internal/repository/recordstore"
	"github.com/upwatch/upwatch/internal/services/auth"
	"github.com/upwatch/upwatch/internal/services/checks"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("UPWATCH_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/upwatch.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting upwatch", zap.String("env", cfg.App.Env), zap.String("ver", cfg.App.Version))

	otelShutdown, err := initOTel(rootCtx, cfg)
	if err != nil {
		logger.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelShutdown(rootCtx) }()

	st, err := initStore(rootCtx, cfg)
	if err != nil {
		logger.Fatal("store connect", zap.Error(err))
	}
	defer st.close()

	var events event.CheckEvents
	if cfg.Kafka.Enable {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic).WithLogger(logger)
		defer func() { _ = producer.Close() }()
		events = kafka.NewCheckEventsKafka(producer)
	}

	tokens := recordstore.NewTokenRepo(st.store)
	uc := checks.New(
		logger,
		recordstore.NewCheckRepo(st.store),
		recordstore.NewUserRepo(st.store),
		tokens,
		auth.NewVerifier(tokens, nil),
		events,
		cfg.Quota.MaxChecksPerUser,
		nil,
	)

	httpSrv := buildHTTPServer(cfg, logger, checks.NewHandler(logger, uc), st.health)

	httpErrCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.Server.HTTPAddr))
		httpErrCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal", zap.String("reason", "context canceled"))
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	_ = httpSrv.Shutdown(shCtx)

	time.Sleep(100 * time.Millisecond)
	logger.Info("bye")
}
