// Package server exposes the drafting pipeline over HTTP: a JSON parse
// endpoint, a DOCX generation endpoint, and a small embedded form UI.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patentdesk/fer-reply/internal/config"
	"github.com/patentdesk/fer-reply/internal/drafting"
)

type Server struct {
	cfg *config.Config
	svc *drafting.Service
	log *slog.Logger
}

func New(cfg *config.Config, svc *drafting.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, svc: svc, log: log}
}

// Handler builds the routed and middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/parse_fer", s.handleParseFER)
	mux.HandleFunc("POST /api/generate_reply", s.handleGenerateReply)
	mux.HandleFunc("GET /", s.handleIndex)

	var handler http.Handler = mux
	handler = logMiddleware(s.log, handler)
	handler = corsMiddleware(handler)
	handler = recoveryMiddleware(s.log, handler)
	return handler
}

// Run serves until the context is cancelled or an interrupt arrives,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // DOCX generation can be slow on large inputs
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.log.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		s.log.Info("shutting down", "reason", "context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
