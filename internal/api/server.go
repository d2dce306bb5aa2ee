// Package api exposes the learner operations as a JSON HTTP API for a
// web front-end.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/store"
)

// Server represents the HTTP API server.
type Server struct {
	ctrl    *progression.Controller
	journal store.EventRepo
	logger  *slog.Logger
	origins []string
	router  *chi.Mux
}

// NewServer creates a new API server. journal may be nil.
func NewServer(ctrl *progression.Controller, journal store.EventRepo, allowedOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	s := &Server{
		ctrl:    ctrl,
		journal: journal,
		logger:  logger,
		origins: allowedOrigins,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/challenges", s.handleListChallenges)
		r.Get("/wallet", s.handleWallet)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Get("/current", s.handleCurrentSession)

			r.Route("/{handle}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleLeaveSession)
				r.Post("/reorder", s.handleReorder)
				r.Post("/hints/{index}", s.handlePurchaseHint)
				r.Post("/check", s.handleCheck)
				r.Post("/reset", s.handleReset)
				r.Get("/concept", s.handleConcept)
				r.Post("/concept/dismiss", s.handleDismissConcept)
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
