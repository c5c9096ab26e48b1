package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/models"
)

const defaultPostLimit = 25

// AnalysisRunner is the pipeline surface the server consumes.
type AnalysisRunner interface {
	Run(ctx context.Context, community string, limit int) (*models.AnalysisBatch, error)
}

type Server struct {
	pipeline AnalysisRunner
}

func NewServer(pipeline AnalysisRunner) *Server {
	return &Server{pipeline: pipeline}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analysis", s.handleAnalysis)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/", s.handleDashboard)
	return mux
}

type postView struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	URL            string                `json:"url"`
	Score          int                   `json:"score"`
	Label          models.SentimentLabel `json:"label"`
	SentimentScore float64               `json:"sentiment_score"`
}

type analysisResponse struct {
	Subreddit string                 `json:"subreddit"`
	Total     int                    `json:"total"`
	Counts    models.SentimentCounts `json:"counts"`
	Posts     []postView             `json:"posts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	subreddit := r.URL.Query().Get("subreddit")

	limit := defaultPostLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	batch, err := s.pipeline.Run(r.Context(), subreddit, limit)
	if err != nil {
		writeError(w, statusFor(err), insight.UserMessage(err))
		return
	}

	response := analysisResponse{
		Subreddit: batch.Community,
		Total:     batch.Len(),
		Counts:    batch.Counts,
		Posts:     make([]postView, batch.Len()),
	}
	for i, post := range batch.Posts {
		response.Posts[i] = postView{
			ID:             post.ID,
			Title:          post.Title,
			URL:            post.URL,
			Score:          post.Score,
			Label:          post.Sentiment.Label,
			SentimentScore: post.Sentiment.Score,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(dashboardHTML)); err != nil {
		slog.Warn("[Server] Failed to write dashboard page",
			slog.String("error", err.Error()))
	}
}

// statusFor maps the error taxonomy onto HTTP statuses so API consumers can
// tell bad input from credential problems from upstream failures.
func statusFor(err error) int {
	var invalid *insight.InvalidInputError
	var auth *insight.AuthenticationError
	var fetch *insight.FetchError

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	case errors.As(err, &fetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("[Server] Failed to encode response",
			slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
