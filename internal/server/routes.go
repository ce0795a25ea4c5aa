// Package server sets up the HTTP server and registers API routes for
// go-pagerange.
//
// RegisterRoutes returns an http.Handler with all API endpoints for session,
// document and page action management.
//
// Expected outputs:
// - All API endpoints are available under /api/sessions
// - Request IDs, panic recovery, CORS and access logging are enabled
// - Swagger UI is served to localhost only
package server

import (
	"net"
	"net/http"

	_ "go-pagerange/docs"
	"go-pagerange/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.Logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.Config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)

	h := handlers.NewAPIHandler(s.SessionManager, s.Config.UploadDir, s.Config.OutputDir, s.Config.MaxUploadBytes(), s.Logger)
	r.Get("/healthz", h.Health)
	r.Route("/api/sessions", func(api chi.Router) {
		api.Post("/", h.CreateSession)
		api.Post("/{sessionID}/files", h.UploadFile)
		api.Post("/{sessionID}/signature", h.UploadSignature)
		api.Put("/{sessionID}/order", h.UpdateOrder)
		api.Get("/{sessionID}/files", h.ListFiles)
		api.Post("/{sessionID}/pages", h.ResolvePages)
		api.Post("/{sessionID}/actions/select", h.SelectPages)
		api.Post("/{sessionID}/actions/rotate", h.RotatePages)
		api.Post("/{sessionID}/actions/remove", h.RemovePages)
		api.Post("/{sessionID}/actions/stamp", h.StampPages)
		api.Post("/{sessionID}/actions/sign", h.SignPages)
		api.Post("/{sessionID}/actions/merge", h.MergeFiles)
		api.Get("/{sessionID}/files/{filename}", h.DownloadFile)
	})

	return r
}
