package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AIDataFireGirl/investsight/internal/config"
	"github.com/AIDataFireGirl/investsight/internal/datasource"
	"github.com/AIDataFireGirl/investsight/internal/research"
	"github.com/AIDataFireGirl/investsight/pkg/utils"
)

// Version is reported by the health endpoint. The CLI overwrites it at
// startup.
var Version = "dev"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":        "ok",
			"version":       Version,
			"market_status": utils.MarketStatus(),
			"time_et":       utils.FormatDateTimeET(utils.NowET()),
		},
	})
}

// handleResearch runs the full pipeline for one ticker. Progress is
// broadcast to WebSocket clients while the run is in flight.
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	opts := research.Options{
		DaysBack: queryInt(r, "days", 0),
		Period:   r.URL.Query().Get("period"),
		Progress: func(stage, message string) {
			s.wsHub.Broadcast(WSMessage{
				Type: "research_progress",
				Data: map[string]interface{}{
					"ticker":  ticker,
					"stage":   stage,
					"message": message,
				},
			})
		},
	}

	result, err := s.pipeline.Research(ctx, ticker, opts)
	if err != nil {
		writeResearchError(w, err)
		return
	}

	s.wsHub.Broadcast(WSMessage{
		Type: "research_complete",
		Data: map[string]interface{}{
			"ticker":         result.Ticker,
			"recommendation": result.Insights.Recommendation.Action,
			"score":          result.Insights.Combined.OverallScore,
		},
	})

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	bundle, err := s.pipeline.NewsBundle(ctx, ticker, research.Options{
		DaysBack: queryInt(r, "days", 0),
	})
	if err != nil {
		writeResearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    bundle,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	analysis, err := s.pipeline.ReportAnalysis(ctx, ticker, research.Options{
		Period: r.URL.Query().Get("period"),
	})
	if err != nil {
		writeResearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    analysis,
	})
}

// handleRecommendations returns recent research runs, newest first.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)

	runs, err := s.pipeline.RecentRuns(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    runs,
	})
}

func (s *Server) handleSearchTickers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := queryInt(r, "limit", 10)
	results, err := s.directory.Search(q, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    results,
	})
}

// handleGetConfigKeys returns the status of all credentialed
// providers, keys masked.
func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckAPIKeys(s.cfg),
	})
}

// writeResearchError maps pipeline errors onto HTTP status codes.
func writeResearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, research.ErrInvalidTicker):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, datasource.ErrNotSupported):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, research.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, datasource.ErrTickerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// queryInt reads an integer query parameter, falling back to def when
// absent or unparseable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
