// ABOUTME: HTTP surface for DocuChat: chat, ingestion, search, and sessions
// ABOUTME: Routes are served by chi; responses are JSON except the CSV export
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chat"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/config"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/history"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/ingest"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/observability"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/session"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/store"
)

// Answerer runs one chat turn against the knowledge base
type Answerer interface {
	Answer(ctx context.Context, question string, hist *history.History, sourceFilter string) chat.Result
}

type Server struct {
	cfg       config.Config
	sessions  *session.Manager
	engine    Answerer
	store     store.Store
	processor *ingest.Processor
	metrics   *observability.Metrics
	upgrader  websocket.Upgrader
	static    http.Handler
}

func New(cfg config.Config, sessions *session.Manager, engine Answerer, st store.Store, processor *ingest.Processor, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:       cfg,
		sessions:  sessions,
		engine:    engine,
		store:     st,
		processor: processor,
		metrics:   metrics,
		static:    newStaticHandler(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Only allow browser websocket connections from the same
				// origin; non-browser clients omit Origin and are allowed.
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Handle("/ui/*", http.StripPrefix("/ui/", s.static))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/sessions", s.handleCreateSession)
	r.Post("/v1/sessions/{id}/end", s.handleEndSession)
	r.Get("/v1/sessions/{id}/history", s.handleListHistory)
	r.Delete("/v1/sessions/{id}/history", s.handleClearHistory)
	r.Get("/v1/sessions/{id}/history/export", s.handleExportHistory)

	r.Post("/v1/chat", s.handleChat)
	r.Get("/v1/chat/ws", s.handleChatWS)

	r.Post("/v1/documents", s.handleUploadDocument)
	r.Post("/v1/documents/web", s.handleIngestWebArticle)
	r.Get("/v1/search", s.handleSearch)
	r.Get("/v1/knowledge-base", s.handleKnowledgeBaseStatus)
	r.Delete("/v1/knowledge-base", s.handleClearKnowledgeBase)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"backend": s.cfg.StoreBackend,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Count(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	respondJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.End(id); err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"session_id": id, "status": session.StatusEnded})
}

type chatRequest struct {
	Question     string `json:"question"`
	SessionID    string `json:"session_id,omitempty"`
	SourceFilter string `json:"source_filter,omitempty"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	chat.Result
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}

	result := s.answer(r.Context(), req.Question, sess.History, req.SourceFilter)
	status := statusForOutcome(result.Outcome)
	respondJSON(w, status, chatResponse{SessionID: sess.ID, Result: result})
}

// answer delegates to the engine and records turn metrics
func (s *Server) answer(ctx context.Context, question string, hist *history.History, sourceFilter string) chat.Result {
	started := time.Now()
	result := s.engine.Answer(ctx, question, hist, sourceFilter)

	s.metrics.ChatTurns.WithLabelValues(string(result.Outcome)).Inc()
	switch result.Outcome {
	case chat.OutcomeGrounded, chat.OutcomeRefusal:
		s.metrics.ObserveRetrievalLatency(time.Since(started))
	case chat.OutcomeProviderError:
		s.metrics.ProviderErrors.WithLabelValues("chat").Inc()
	}
	return result
}

func statusForOutcome(outcome chat.Outcome) int {
	switch outcome {
	case chat.OutcomeValidation:
		return http.StatusBadRequest
	case chat.OutcomeProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing_query", "query parameter q is required")
		return
	}

	k := s.cfg.MaxContextChunks
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_k", "query parameter k must be a positive integer")
			return
		}
		k = parsed
	}

	var filter *store.Filter
	uploadID := r.URL.Query().Get("upload_id")
	source := r.URL.Query().Get("source")
	if uploadID != "" || source != "" {
		filter = &store.Filter{UploadID: uploadID, Source: source}
	}

	results, err := s.store.Search(r.Context(), query, k, filter)
	if err != nil {
		respondError(w, http.StatusBadGateway, "search_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}

func (s *Server) handleKnowledgeBaseStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "store_unavailable", err.Error())
		return
	}
	s.metrics.ChunksIndexed.Set(float64(count))
	respondJSON(w, http.StatusOK, map[string]any{
		"backend":    s.cfg.StoreBackend,
		"collection": s.cfg.QdrantCollection,
		"chunks":     count,
	})
}

func (s *Server) handleClearKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "clear_failed", err.Error())
		return
	}
	s.metrics.ChunksIndexed.Set(0)
	respondJSON(w, http.StatusOK, map[string]any{"status": "cleared"})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
