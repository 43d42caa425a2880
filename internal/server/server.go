// Package server provides the HTTP API for Photofind.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/adapter"
	"github.com/hyperjump/photofind/internal/config"
	"github.com/hyperjump/photofind/internal/parser"
	"github.com/hyperjump/photofind/internal/search"
)

// Server is the HTTP server for the Photofind API.
type Server struct {
	engine   *search.Engine
	parser   *parser.Parser
	pipeline *adapter.Pipeline
	agent    *adapter.Adapter
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	p *parser.Parser,
	pipeline *adapter.Pipeline,
	agent *adapter.Adapter,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:   engine,
		parser:   p,
		pipeline: pipeline,
		agent:    agent,
		config:   cfg,
		logger:   logger,
	}
}

// Router assembles the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/index", s.handleIndex)
	r.Post("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/query", s.handleQuery)
	r.Post("/api/v1/agent/command", s.handleAgentCommand)
	r.Get("/api/v1/suggestions", s.handleSuggestions)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
