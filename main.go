package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	auditx "github.com/tanpawarit/cafe-action-server/action/audit"
	dispatchx "github.com/tanpawarit/cafe-action-server/action/dispatch"
	handlersx "github.com/tanpawarit/cafe-action-server/action/handlers"
	serverx "github.com/tanpawarit/cafe-action-server/action/server"
	cafeapix "github.com/tanpawarit/cafe-action-server/pkg/cafeapi"
	configx "github.com/tanpawarit/cafe-action-server/pkg/config"
	_ "github.com/tanpawarit/cafe-action-server/pkg/logger/autoload"
)

type AppConfig struct {
	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:":5055"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("action server stopped")
	}
}

func run() error {
	appCfg := configx.MustNew[AppConfig]("")
	apiCfg := configx.MustNew[cafeapix.Config]("CAFE_API")
	auditCfg := configx.MustNew[auditx.Config]("AUDIT")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := cafeapix.NewClient(*apiCfg)
	if err != nil {
		return err
	}

	metrics := serverx.NewMetrics()
	opts := []dispatchx.Option{dispatchx.WithRecorder(metrics)}
	serverOpts := []serverx.Option{
		serverx.WithRequestTimeout(appCfg.RequestTimeout),
		serverx.WithMetricsHandler(metrics.Handler()),
	}

	if auditCfg.Enabled() {
		store, err := auditx.Open(*auditCfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		journal := dispatchx.NewBackground(store, auditCfg.QueueSize)
		defer journal.Close()
		opts = append(opts, dispatchx.WithRecorder(journal))
		serverOpts = append(serverOpts, serverx.WithHealthCheck("journal", store.Ping))
		log.Info().Msg("invocation journal enabled")
	}

	registry := dispatchx.New(opts...)
	if err := registry.RegisterAll(handlersx.New(client).Handlers()); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              appCfg.ListenAddr,
		Handler:           serverx.New(registry, serverOpts...).Routes(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      appCfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("backend", client.BaseURL()).
			Strs("actions", registry.Names()).
			Msg("action server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
