package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/storecalc/pkg/interfaces/web"
)

const shutdownTimeout = 10 * time.Second

// ServeCommand runs the web calculator until the context is cancelled
type ServeCommand struct {
	config Config
}

// NewServeCommand creates a serve command with the given configuration
func NewServeCommand(config Config) *ServeCommand {
	return &ServeCommand{
		config: config,
	}
}

// Execute starts the HTTP server and shuts it down gracefully on cancellation
func (c *ServeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		showHelp(c.config.stdout())
		return nil
	}

	rt, err := newRuntime(c.config)
	if err != nil {
		return err
	}
	defer rt.events.Wait()

	if c.config.Addr != "" {
		rt.settings.Server.Addr = c.config.Addr
	}

	server, err := web.NewServer(rt.calculator, web.Options{
		Locale:         rt.settings.Language(),
		Logger:         rt.logger,
		RequestTimeout: rt.settings.Server.WriteTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}
	srv := web.NewHTTPServer(rt.settings.Server, server.Router())

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if c.config.Verbose {
		fmt.Fprintf(c.config.stdout(), "🌐 Calculator listening on %s\n", srv.Addr)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
