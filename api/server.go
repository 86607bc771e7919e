// Package api - Thin HTTP layer over the pricing engine
// The API is ONLY responsible for: input decoding, boundary validation,
// engine invocation and output serialization. It holds no session state.
package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cleaning-cost/core/pricing"
	"cleaning-cost/internal/errors"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Server is the API server
type Server struct {
	router         chi.Router
	engine         *pricing.Engine
	version        string
	logger         *zap.Logger
	preserveFloors bool
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithPreserveFloors makes POST /v1/rooms carry floor choices over from
// the previous room list.
func WithPreserveFloors(preserve bool) Option {
	return func(s *Server) { s.preserveFloors = preserve }
}

// NewServer creates a new API server
func NewServer(version string, engine *pricing.Engine, opts ...Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		engine:  engine,
		version: version,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.Use(s.requestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/version", s.handleVersion)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/estimate", s.handleEstimate)
		r.Post("/rooms", s.handleRooms)
		r.Post("/rooms/floor", s.handleFloor)
		r.Get("/rates", s.handleRates)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "cleaning-cost",
		"rate_table":  s.engine.Table().Name(),
		"api_version": "v1",
	}, http.StatusOK)
}

type ctxKey struct{}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestIDFrom(r.Context())))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

// writeError maps domain error types to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.TypeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.TypeInput, errors.TypeInvalidEnum, errors.TypeIndex, errors.TypeParsing:
		status = http.StatusBadRequest
	case "":
		code = errors.TypeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", zap.Error(err), zap.String("request_id", requestIDFrom(r.Context())))
	}

	msg := err.Error()
	var e *errors.Error
	if stderrors.As(err, &e) {
		msg = e.Message
	}
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{
		Code:      string(code),
		Message:   msg,
		RequestID: requestIDFrom(r.Context()),
	}}, status)
}
