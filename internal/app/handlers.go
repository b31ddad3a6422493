package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the page of a SyncClient over HTTP.
type Server struct {
	client *SyncClient
	static fs.FS
	logger *slog.Logger
}

// NewServer creates the HTTP front-end. static is served below /static/.
func NewServer(client *SyncClient, static fs.FS, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{client: client, static: static, logger: logger}
}

// Routes returns the handler with all routes registered.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.ServeIndex)
	mux.HandleFunc("/actions", s.HandleAction)
	mux.HandleFunc("/export", s.HandleExport)
	mux.HandleFunc("/healthz", s.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	if s.static != nil {
		mux.Handle("/static/", http.FileServer(http.FS(s.static)))
	}
	return mux
}

// ServeIndex serves the current page
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	page, err := s.client.Snapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Error rendering page", "error", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(page); err != nil {
		s.logger.Error("Error writing page", "error", err)
	}
}

// HandleAction dispatches a posted form as a UI event and redirects back to
// the page. Removals without confirmed=yes get a confirmation page first.
func (s *Server) HandleAction(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidForm, http.StatusBadRequest)
		return
	}

	ev := Event{
		Action:   Action(formValue(r, "action")),
		Activity: formValue(r, "activity"),
		Email:    formValue(r, "email"),
	}
	if ev.Action == ActionDismiss {
		http.Error(w, ErrInvalidAction, http.StatusBadRequest)
		return
	}

	if ev.Action == ActionRemove {
		if formValue(r, "confirmed") != "yes" {
			s.serveConfirm(w, r, ev)
			return
		}
		ev.Confirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
	}

	err := s.client.Submit(r.Context(), ev)
	switch {
	case errors.Is(err, ErrUnknownAction):
		http.Error(w, ErrInvalidAction, http.StatusBadRequest)
		return
	case errors.Is(err, ErrStopped):
		http.Error(w, ErrInternalServer, http.StatusServiceUnavailable)
		return
	case err != nil:
		// Failures are shown on the page.
		s.logger.DebugContext(r.Context(), "Action failed", "action", ev.Action, "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) serveConfirm(w http.ResponseWriter, r *http.Request, ev Event) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := writeConfirmPage(w, s.client.lang, s.client.p, ev.Activity, ev.Email); err != nil {
		s.logger.ErrorContext(r.Context(), "Error rendering confirmation", "error", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleHealth reports liveness
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Error("Error writing health response", "error", err)
	}
}
