package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-variant-cache/internal/config"
	"go-variant-cache/internal/service"
)

// Server represents the variant resolution HTTP server
type Server struct {
	sessions *service.Manager
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a new variant resolution HTTP server
func NewServer(sessions *service.Manager, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		sessions: sessions,
		config:   cfg,
		logger:   logger,
	}
}

// Start starts the HTTP server on the configured address
func (s *Server) Start() error {
	router := s.createRouter()

	s.server = &http.Server{
		Addr:         s.config.Server.ListenAddress,
		Handler:      router,
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting variant resolution HTTP server", zap.String("address", s.config.Server.ListenAddress))
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping variant resolution HTTP server")
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	// Session lifecycle
	router.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/state", s.handleState).Methods("GET")

	// Engine operations
	router.HandleFunc("/sessions/{id}/select", s.handleSelect).Methods("POST")
	router.HandleFunc("/sessions/{id}/hover", s.handleHover).Methods("POST")
	router.HandleFunc("/sessions/{id}/hover/cancel", s.handleHoverCancel).Methods("POST")

	// Health check
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status":   "healthy",
		"sessions": s.sessions.Len(),
		"time":     time.Now().UTC(),
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
