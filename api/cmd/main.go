// api/cmd/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/flatfile-auth/internal/bootstrap"
	"github.com/baechuer/flatfile-auth/internal/logger"
)

// httpServer is the part of *http.Server that serve drives.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type realServer struct{ *http.Server }

func (r realServer) Addr() string { return r.Server.Addr }

// service is one running auth service: the HTTP server and the user store
// it persists to.
type service struct {
	srv httpServer

	backend  string
	location string // users file, redis key or postgres row; empty for memory

	// close releases store connections. nil when there are none.
	close func() error
}

type serviceBuilder func() (*service, error)

const shutdownTimeout = 15 * time.Second

// Run builds the service, serves until a signal or a listener failure and
// returns the process exit code. A store that fails to close also exits 1.
func Run(build serviceBuilder, sigCh <-chan os.Signal, lg zerolog.Logger) (code int) {
	svc, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	lg = lg.With().Str("store_backend", svc.backend).Logger()

	defer func() {
		if svc.close == nil {
			return
		}
		if err := svc.close(); err != nil {
			lg.Error().Err(err).Msg("closing user store failed")
			code = 1
		}
	}()

	evt := lg.Info().Str("addr", svc.srv.Addr())
	if svc.location != "" {
		evt = evt.Str("store_location", svc.location)
	}
	evt.Msg("starting")

	if err := serve(svc.srv, sigCh, lg); err != nil {
		lg.Error().Err(err).Msg("server crashed")
		return 1
	}
	lg.Info().Msg("shutdown complete")
	return 0
}

// serve blocks until sigCh fires, then drains in-flight requests for up to
// shutdownTimeout before forcing the listener closed. A listener failure is
// returned immediately.
func serve(srv httpServer, sigCh <-chan os.Signal, lg zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Warn().Err(err).Msg("graceful shutdown failed, closing")
		_ = srv.Close()
	}
	return nil
}

func buildFromBootstrap() (*service, error) {
	app, err := bootstrap.NewServer()
	if err != nil {
		return nil, err
	}
	return &service{
		srv:      realServer{app.HTTP},
		backend:  app.StoreBackend,
		location: app.StoreLocation,
		close:    app.Close,
	}, nil
}

func main() {
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Exit(Run(buildFromBootstrap, sigCh, zlog.Logger))
}
