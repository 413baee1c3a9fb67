package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	MessagesPath  = "/messages"
	ActiveTabPath = "/tabs/active"
)

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler exposes relay over HTTP.
func NewHandler(relay *Relay, tabs *TabRegistry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+MessagesPath, func(w http.ResponseWriter, r *http.Request) {
		var msg Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid message: %v", err)})
			return
		}
		tabs.Touch(r)

		pending, ok := relay.Dispatch(r.Context(), msg)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("unknown action: %q", msg.Action)})
			return
		}
		response, err := pending.Wait(r.Context())
		if err != nil {
			slog.Default().Warn("relay caller went away", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, response)
	})
	mux.HandleFunc("GET "+ActiveTabPath, func(w http.ResponseWriter, r *http.Request) {
		tab, ok := tabs.Active()
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "no active tab"})
			return
		}
		writeJSON(w, http.StatusOK, tab)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to write response", "error", err)
	}
}

// Serve runs handler on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("Starting relay server", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server.ListenAndServe() > %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown() > %w", err)
		}
		return nil
	}
}
