// Package api provides the HTTP REST API server for InvestSight.
//
// It exposes endpoints for research runs, news gathering, report
// analysis, run history, ticker search, and WebSocket progress
// streaming.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	jsoniter "github.com/json-iterator/go"

	"github.com/AIDataFireGirl/investsight/internal/config"
	"github.com/AIDataFireGirl/investsight/internal/datasource"
	"github.com/AIDataFireGirl/investsight/internal/recorder"
	"github.com/AIDataFireGirl/investsight/internal/research"
	"github.com/AIDataFireGirl/investsight/internal/tickers"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	cfg       *config.Config
	pipeline  *research.Pipeline
	directory *tickers.Directory
	wsHub     *WSHub
}

// NewServer creates a server with production wiring: live data
// sources, the ticker directory, and a SQLite run recorder when a
// history database is configured.
func NewServer(cfg *config.Config) (*Server, error) {
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Research.HistoryDB != "" {
		r, err := recorder.NewSQLiteRecorder(cfg.Research.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("open history db: %w", err)
		}
		rec = r
	}

	dir, err := tickers.NewDirectory()
	if err != nil {
		return nil, fmt.Errorf("build ticker directory: %w", err)
	}

	pipeline := research.NewPipeline(cfg, datasource.NewGatherer(cfg), rec)
	return NewServerWith(cfg, pipeline, dir), nil
}

// NewServerWith assembles a server from prebuilt components.
func NewServerWith(cfg *config.Config, pipeline *research.Pipeline, dir *tickers.Directory) *Server {
	srv := &Server{
		cfg:       cfg,
		pipeline:  pipeline,
		directory: dir,
		wsHub:     NewWSHub(),
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Close releases the server's pipeline and directory resources.
func (s *Server) Close() error {
	if err := s.pipeline.Close(); err != nil {
		return err
	}
	return s.directory.Close()
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("[INFO] API server listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("[INFO] shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(180 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Research pipeline
		r.Get("/research/{ticker}", s.handleResearch)
		r.Get("/news/{ticker}", s.handleNews)
		r.Get("/report/{ticker}", s.handleReport)

		// Run history
		r.Get("/recommendations", s.handleRecommendations)

		// Ticker search
		r.Get("/search/tickers", s.handleSearchTickers)

		// Configuration
		r.Get("/config/keys", s.handleGetConfigKeys)

		// WebSocket progress stream
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
