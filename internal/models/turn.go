// ABOUTME: Turn represents a single chat message from the user or the assistant
// ABOUTME: Turns are appended to session history and never mutated afterwards
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the conversation produced a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation
type Turn struct {
	TurnID    string    `json:"turn_id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a new Turn with validation
func NewTurn(role Role, text string) (*Turn, error) {
	if role != RoleUser && role != RoleAssistant {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("turn text cannot be empty")
	}
	return &Turn{
		TurnID:    generateTurnID(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}, nil
}

// generateTurnID generates a unique turn identifier
func generateTurnID() string {
	return fmt.Sprintf("turn_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
