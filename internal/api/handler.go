// Package api exposes the chat bot and its query engines over HTTP and MCP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/recommend"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/retrieval"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/storage"
)

const maxRequestBodySize = 64 << 10 // 64KB

// Chatter answers one chat turn. Implemented by dialogue.Bot.
type Chatter interface {
	ProcessQuery(ctx context.Context, text, sessionID string) string
}

// InteractionStore reads and annotates journaled turns. Implemented by
// storage.Store.
type InteractionStore interface {
	GetInteraction(ctx context.Context, id string) (storage.Interaction, error)
	GetRecentInteractions(ctx context.Context, limit int) ([]storage.Interaction, error)
	GetSessionInteractions(ctx context.Context, sessionID string, limit int) ([]storage.Interaction, error)
	UpdateFeedback(ctx context.Context, id string, score int, notes string) error
	IntentCounts(ctx context.Context) ([]storage.IntentCount, error)
}

// Deps holds everything the HTTP surface serves from.
type Deps struct {
	Bot    Chatter
	Index  *retrieval.Index
	Engine *recommend.Engine
	// Journal is optional; without it the interaction routes answer 503.
	Journal InteractionStore
	// Limiter is optional; when set it guards POST /chat per client.
	Limiter *RateLimiter

	SimilarTopN int
	SearchTopN  int
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the reply to POST /chat.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// MovieView is the JSON shape of one ranked movie.
type MovieView struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	VoteAverage float64  `json:"vote_average"`
	Popularity  float64  `json:"popularity"`
	ReleaseDate string   `json:"release_date"`
	Genres      []string `json:"genres"`
	Overview    string   `json:"overview"`
	Score       *float32 `json:"score,omitempty"`
}

// FeedbackRequest is the body of POST /interactions/{id}/feedback.
type FeedbackRequest struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

// NewHandler returns the HTTP router for the chat bot and its query routes.
func NewHandler(deps Deps) http.Handler {
	if deps.SimilarTopN <= 0 {
		deps.SimilarTopN = recommend.DefaultTopN
	}
	if deps.SearchTopN <= 0 {
		deps.SearchTopN = recommend.SearchTopN
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", handleHealth(deps))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(deps.Limiter.Middleware)
		}
		r.Post("/chat", handleChat(deps))
	})

	r.Get("/similar", handleSimilar(deps))
	r.Get("/search", handleSearch(deps))

	r.Get("/interactions", handleListInteractions(deps))
	r.Get("/interactions/{id}", handleGetInteraction(deps))
	r.Post("/interactions/{id}/feedback", handleFeedback(deps))
	r.Get("/stats/intents", handleIntentStats(deps))

	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"movies":     deps.Index.Corpus().Len(),
			"vocabulary": deps.Index.VocabularySize(),
			"journal":    deps.Journal != nil,
		})
	}
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		reply := deps.Bot.ProcessQuery(r.Context(), req.Message, req.SessionID)
		writeJSON(w, http.StatusOK, ChatResponse{Response: reply, SessionID: req.SessionID})
	}
}

func handleSimilar(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimSpace(r.URL.Query().Get("title"))
		if title == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "title is required")
			return
		}
		limit := parseIntParam(r, "limit", deps.SimilarTopN, 50)

		neighbors, err := deps.Index.NearestNeighbors(title, limit)
		if errors.Is(err, retrieval.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found_error", "movie %q not found", title)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "similar movies: %v", err)
			return
		}

		views := make([]MovieView, len(neighbors))
		for i, n := range neighbors {
			views[i] = movieView(n.Movie)
			score := n.Score
			views[i].Score = &score
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func handleSearch(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "q is required")
			return
		}
		limit := parseIntParam(r, "limit", deps.SearchTopN, 50)

		res, err := deps.Engine.Search(r.Context(), q, limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "search failed: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, movieViews(res.Movies))
	}
}

func handleListInteractions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !journalEnabled(w, deps) {
			return
		}
		limit := parseIntParam(r, "limit", 20, 100)

		var (
			interactions []storage.Interaction
			err          error
		)
		if session := r.URL.Query().Get("session"); session != "" {
			interactions, err = deps.Journal.GetSessionInteractions(r.Context(), session, limit)
		} else {
			interactions, err = deps.Journal.GetRecentInteractions(r.Context(), limit)
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list interactions: %v", err)
			return
		}
		if interactions == nil {
			interactions = []storage.Interaction{}
		}
		writeJSON(w, http.StatusOK, interactions)
	}
}

func handleGetInteraction(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !journalEnabled(w, deps) {
			return
		}
		id := chi.URLParam(r, "id")
		ix, err := deps.Journal.GetInteraction(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found_error", "interaction not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get interaction: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, ix)
	}
}

func handleFeedback(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !journalEnabled(w, deps) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req FeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Score < -1 || req.Score > 1 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "score must be -1, 0 or 1")
			return
		}

		id := chi.URLParam(r, "id")
		err := deps.Journal.UpdateFeedback(r.Context(), id, req.Score, req.Notes)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found_error", "interaction not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to record feedback: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
	}
}

func handleIntentStats(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !journalEnabled(w, deps) {
			return
		}
		counts, err := deps.Journal.IntentCounts(r.Context())
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to count intents: %v", err)
			return
		}
		if counts == nil {
			counts = []storage.IntentCount{}
		}
		writeJSON(w, http.StatusOK, counts)
	}
}

func journalEnabled(w http.ResponseWriter, deps Deps) bool {
	if deps.Journal == nil {
		httpError(w, http.StatusServiceUnavailable, "api_error", "interaction journal is disabled")
		return false
	}
	return true
}

func movieView(m corpus.Movie) MovieView {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return MovieView{
		ID:          m.ID,
		Title:       m.Title,
		VoteAverage: m.VoteAverage,
		Popularity:  m.Popularity,
		ReleaseDate: m.ReleaseDate,
		Genres:      genres,
		Overview:    m.Overview,
	}
}

func movieViews(movies []corpus.Movie) []MovieView {
	out := make([]MovieView, len(movies))
	for i, m := range movies {
		out[i] = movieView(m)
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": fmt.Sprintf(format, args...),
			"type":    errType,
		},
	})
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
