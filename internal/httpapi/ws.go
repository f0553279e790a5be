// ABOUTME: WebSocket chat endpoint: one answer per inbound question message
package httpapi

import (
	"net/http"
	"strings"
	"time"
)

type wsQuestion struct {
	Question     string `json:"question"`
	SourceFilter string `json:"source_filter,omitempty"`
}

func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
		return nil
	})

	for {
		var req wsQuestion
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(10 * time.Minute))

		result := s.answer(r.Context(), req.Question, sess.History, req.SourceFilter)

		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(chatResponse{SessionID: sess.ID, Result: result}); err != nil {
			return
		}
	}
}
