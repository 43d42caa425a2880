package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/adapter"
	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/internal/search"
)

type indexRequest struct {
	Photos []*models.PhotoRecord `json:"photos"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("index request", zap.Int("photos", len(req.Photos)))
	if err := s.engine.IndexPhotos(r.Context(), req.Photos); err != nil {
		s.logger.Error("indexing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]any{
		"status":  "indexed",
		"indexed": s.engine.IndexedCount(),
	})
}

type searchRequest struct {
	Query  *models.ParsedQuery `json:"query"`
	Limit  int                 `json:"limit,omitempty"`
	Offset int                 `json:"offset,omitempty"`
}

// handleSearch executes a pre-structured query, bypassing the parser.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == nil {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	result, err := s.engine.Search(r.Context(), req.Query,
		&models.Pagination{Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		switch {
		case errors.Is(err, search.ErrNotIndexed):
			s.respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, search.ErrEmptyQuery):
			s.respondError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("search failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusOK, adapter.FormatInteractive(result))
}

type queryRequest struct {
	Text           string `json:"text"`
	ConversationID string `json:"conversation_id,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
}

type queryResponse struct {
	ConversationID string                     `json:"conversation_id"`
	Final          adapter.State              `json:"final"`
	Query          *models.ParsedQuery        `json:"query,omitempty"`
	Result         *adapter.InteractiveResult `json:"result,omitempty"`
	Structured     *adapter.SearchResultsPage `json:"structured,omitempty"`
	Validation     *models.QueryValidation    `json:"validation,omitempty"`
	Suggestions    []models.SearchSuggestion  `json:"suggestions,omitempty"`
}

// handleQuery runs a conversational utterance through the full pipeline.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}
	s.logger.Debug("query request",
		zap.String("text", req.Text), zap.String("conversation", req.ConversationID))

	res, err := s.pipeline.Run(r.Context(), req.ConversationID, req.Text,
		&models.Pagination{Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		if errors.Is(err, search.ErrNotIndexed) {
			s.respondError(w, http.StatusConflict, err.Error())
			return
		}
		s.logger.Error("query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := queryResponse{
		ConversationID: req.ConversationID,
		Final:          res.Final,
		Query:          res.Query,
		Structured:     res.Structured,
		Validation:     res.Validation,
		Suggestions:    res.Suggestions,
	}
	if res.Result != nil {
		resp.Result = adapter.FormatInteractive(res.Result)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgentCommand(w http.ResponseWriter, r *http.Request) {
	var cmd adapter.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Command failures are part of the protocol: the outcome carries them.
	outcome := s.agent.ProcessAgentCommand(r.Context(), cmd)
	s.respondJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	suggestions := s.parser.SuggestRefinements(text)
	s.respondJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.engine.IndexStats()
	s.respondJSON(w, http.StatusOK, map[string]any{
		"indexed_photos": stats.Photos,
		"index":          stats,
		"server":         s.config,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
