// Package server provides the HTTP server setup for go-pagerange.
//
// Usage:
//
//	srv := server.New(cfg, logger)
//	go srv.RunJanitor(ctx)
//	srv.HTTPServer().ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go-pagerange/internal/config"
	"go-pagerange/internal/session"

	"github.com/sirupsen/logrus"
)

type Server struct {
	Config         *config.Config
	SessionManager *session.SessionManager
	Logger         *logrus.Logger
}

// New creates the upload and output directories and returns a server with an
// empty session manager.
func New(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return &Server{
		Config:         cfg,
		SessionManager: session.NewSessionManager(),
		Logger:         logger,
	}, nil
}

// HTTPServer wraps the routes in an http.Server listening on the configured
// port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RunJanitor expires old sessions every cleanup interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(s.Config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.SessionManager.Expire(s.Config.SessionTTL); n > 0 {
				s.Logger.WithField("sessions", n).Info("expired old sessions")
			}
		}
	}
}

// Cleanup removes every session file plus anything left in the upload and
// output directories.
func (s *Server) Cleanup() {
	s.SessionManager.CleanupAll()
	CleanDirs(s.Config.UploadDir, s.Config.OutputDir)
}

// CleanDirs removes the regular files directly inside dirs.
func CleanDirs(dirs ...string) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				_ = os.Remove(filepath.Join(dir, entry.Name()))
			}
		}
	}
}
