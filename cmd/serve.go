package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/boardsync/internal/server"
	"github.com/desertthunder/boardsync/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web interface until ctx is canceled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	config := r.cfg()
	app, err := web.New(web.Options{
		Source:        r.source,
		Destination:   r.destination,
		Store:         r.store,
		Reconciler:    r.reconciler,
		Lister:        r.lister,
		Pipeline:      r.pipeline,
		SessionSecret: config.Server.SessionSecret,
		SecureCookies: config.Server.SecureCookies,
		Logger:        r.logger,
	})
	if err != nil {
		return fmt.Errorf("%w (edit [server] in %s)", err, r.configPath)
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = config.Server.Addr()
	}

	httpServer := server.NewHTTPServer(addr, app.Handler())
	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
