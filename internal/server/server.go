// Package server exposes a catalog.Source over HTTP for `stateful serve`.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/five82/stateful/internal/catalog"
)

const (
	defaultPageLimit = 25
	shutdownTimeout  = 5 * time.Second
	readTimeout      = 10 * time.Second
)

// Handler serves the catalog API.
type Handler struct {
	source catalog.Source
	log    *slog.Logger
	mux    *http.ServeMux
}

// NewHandler builds the API routes for source.
func NewHandler(source catalog.Source, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{source: source, log: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /api/items", h.items)
	h.mux.HandleFunc("GET /api/status", h.status)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)
	h.log.Debug("api request",
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

func (h *Handler) items(w http.ResponseWriter, r *http.Request) {
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := intParam(r, "limit", defaultPageLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	page, err := h.source.Page(r.Context(), offset, limit)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidPage) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		h.log.Warn("page query failed", "offset", offset, "limit", limit, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	st, err := h.source.Status(r.Context())
	if err != nil {
		h.log.Warn("status query failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Serve listens on bind and serves the API until ctx is cancelled.
func Serve(ctx context.Context, bind string, source catalog.Source, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", bind, err)
	}
	return ServeListener(ctx, ln, source, logger)
}

// ServeListener serves the API on ln until ctx is cancelled.
func ServeListener(ctx context.Context, ln net.Listener, source catalog.Source, logger *slog.Logger) error {
	handler := NewHandler(source, logger)
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	handler.log.Info("catalog api listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	handler.log.Info("catalog api stopped")
	return nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", catalog.ErrInvalidPage, name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
