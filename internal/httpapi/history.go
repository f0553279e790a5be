// ABOUTME: Session history endpoints: list, clear, and CSV export
package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"turns":      sess.History.All(),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	if err := sess.History.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "clear_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"session_id": sess.ID, "status": "cleared"})
}

func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}

	filename := fmt.Sprintf("chat_history_%s.csv", time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"timestamp", "role", "message"})
	for _, turn := range sess.History.All() {
		_ = cw.Write([]string{
			turn.Timestamp.UTC().Format(time.RFC3339),
			string(turn.Role),
			turn.Text,
		})
	}
	cw.Flush()
}
