package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const shutdownTimeout = 2 * time.Second

// NewServer mounts the hub at /ws next to a /health probe.
func NewServer(addr string, hub *Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

// ListenAndServe runs the hub and its server until ctx is done, then shuts
// the server down.
func ListenAndServe(ctx context.Context, addr string, hub *Hub) error {
	go hub.Run(ctx)

	srv := NewServer(addr, hub)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	hub.log.WithField("addr", addr).Info("telemetry feed listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
