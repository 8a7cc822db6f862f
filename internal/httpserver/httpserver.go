package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const (
	readHeaderTimeout = 10 * time.Second
	// Downloads stream whole artifacts, so there is no write timeout.
	idleTimeout     = 2 * time.Minute
	shutdownTimeout = 20 * time.Second
)

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (srv HTTPServer) Run() error {
	ctx := context.Background()
	if err := srv.mapHandlers(); err != nil {
		srv.l.Errorf(ctx, "httpserver.Run.mapHandlers: %v", err)
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "%s (%s) listening on %s", ServiceName, srv.env, server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCtx.Done():
		srv.l.Info(ctx, "shutdown signal received, draining requests")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(ctx, "httpserver.Run.Shutdown: %v", err)
		return err
	}
	srv.l.Info(ctx, "http server stopped")
	return nil
}
