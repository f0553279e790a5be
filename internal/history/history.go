// ABOUTME: History is the append-only record of chat turns for one session
// ABOUTME: Mirrors every append to a JSON file, best-effort in both directions
package history

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
)

// record is the durable on-disk shape of one turn
type record struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History holds the ordered turns of a chat session. The most recent bound
// turns feed back into the answerer as conversational context; the full
// sequence stays available for display and export.
type History struct {
	mu    sync.Mutex
	turns []models.Turn
	bound int
	path  string // empty disables persistence
}

// New creates a History bounded to the given number of context turns,
// mirrored to path when non-empty. A missing or corrupt file yields an
// empty history silently.
func New(bound int, path string) *History {
	if bound <= 0 {
		bound = 10
	}
	h := &History{bound: bound, path: path}
	h.load()
	return h
}

// Append adds a turn and rewrites the durable file in full. A persistence
// failure is returned for observability but must not abort the caller's
// operation.
func (h *History) Append(turn models.Turn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turn)
	return h.persistLocked()
}

// All returns a copy of every turn in order
func (h *History) All() []models.Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Context returns the most recent turns up to the configured bound
func (h *History) Context() []models.Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	start := len(h.turns) - h.bound
	if start < 0 {
		start = 0
	}
	out := make([]models.Turn, len(h.turns)-start)
	copy(out, h.turns[start:])
	return out
}

// Len returns the number of recorded turns
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Clear drops all turns and rewrites the durable file as empty
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
	return h.persistLocked()
}

// load reads the durable file. Only the most recent bound turns enter the
// active context; any failure leaves the history empty.
func (h *History) load() {
	if h.path == "" {
		return
	}
	data, err := os.ReadFile(h.path)
	if err != nil {
		return
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return
	}
	if len(records) > h.bound {
		records = records[len(records)-h.bound:]
	}
	for _, r := range records {
		turn, err := models.NewTurn(models.Role(r.Role), r.Content)
		if err != nil {
			continue
		}
		h.turns = append(h.turns, *turn)
	}
}

// persistLocked overwrites the durable file with all turns. Callers hold mu.
func (h *History) persistLocked() error {
	if h.path == "" {
		return nil
	}
	records := make([]record, len(h.turns))
	for i, t := range h.turns {
		records[i] = record{Role: string(t.Role), Content: t.Text}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0o644)
}
