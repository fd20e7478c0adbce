package internal

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// RunServer serves srv until ctx is cancelled, then shuts it down within
// timeout. A clean shutdown returns nil.
func RunServer(ctx context.Context, srv *http.Server, timeout time.Duration, logger *Logger) error {
	if logger == nil {
		logger = DefaultLogger
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("shutting down %s", srv.Addr)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
