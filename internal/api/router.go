// Package api exposes report card building, analysis and export over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/settings
//	GET    /api/grade?percentage=P
//	POST   /api/analyze
//	POST   /api/students
//	GET    /api/students
//	DELETE /api/students
//	GET    /api/students/{id}
//	GET    /api/students/{id}/analysis
//	GET    /api/students/{id}/export
//	GET    /api/export.xlsx
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alyansheikhh/reportcard/internal/report"
)

// Server holds the shared state behind the HTTP handlers.
type Server struct {
	Store    *report.Store
	Builder  *report.Builder
	Settings report.ClassSettings
	Now      func() time.Time
}

// NewServer creates a Server with an empty store grading under settings.
func NewServer(settings report.ClassSettings) *Server {
	return &Server{
		Store:    report.NewStore(),
		Builder:  report.NewBuilder(settings.Scheme),
		Settings: settings,
		Now:      time.Now,
	}
}

// Routes returns the API handler. corsOrigins lists the browser origins
// allowed to call it.
func (s *Server) Routes(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", getSettings(s.Settings))
		r.Get("/grade", getGrade(s.Settings))
		r.Post("/analyze", analyzeMarks())

		r.Route("/students", func(r chi.Router) {
			r.Post("/", createStudent(s.Store, s.Builder))
			r.Get("/", listStudents(s.Store))
			r.Delete("/", clearStudents(s.Store))
			r.Get("/{id}", getStudent(s.Store))
			r.Get("/{id}/analysis", getAnalysis(s.Store))
			r.Get("/{id}/export", exportStudent(s.Store, s.now))
		})

		r.Get("/export.xlsx", exportRoster(s.Store, s.Settings))
	})

	return r
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
