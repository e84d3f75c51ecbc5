package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

type Server struct {
	router     *chi.Mux
	accountUC  AccountUseCase
	noteUC     NoteUseCase
	middleware []func(http.Handler) http.Handler
}

type Options func(*Server)

// WithMiddleware adds middleware running after the access logger, e.g. error reporting
func WithMiddleware(mw ...func(http.Handler) http.Handler) Options {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}

func New(accountUC AccountUseCase, noteUC NoteUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:    r,
		accountUC: accountUC,
		noteUC:    noteUC,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(s.middleware...)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", registerHandler(s.accountUC))
		r.Post("/login", loginHandler(s.accountUC))
		r.Post("/logout", logoutHandler(s.accountUC))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(s.accountUC))
			r.Get("/notes", listNotesHandler(s.noteUC))
			r.Post("/notes", createNoteHandler(s.noteUC))
			r.Delete("/notes/{id}", deleteNoteHandler(s.noteUC))
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "not found"})
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(r.Context(), w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(logging.With(r.Context(), logger))

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
