// ABOUTME: Tests for session history bounds and durable persistence
// ABOUTME: Covers round-trip, corrupt files, and the context window

package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
)

func mustTurn(t *testing.T, role models.Role, text string) models.Turn {
	t.Helper()
	turn, err := models.NewTurn(role, text)
	if err != nil {
		t.Fatalf("NewTurn() error = %v", err)
	}
	return *turn
}

func TestHistory_AppendAndContext(t *testing.T) {
	h := New(4, "")

	for i := 0; i < 6; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		if err := h.Append(mustTurn(t, role, fmt.Sprintf("message %d", i))); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if h.Len() != 6 {
		t.Errorf("Len() = %d, want 6", h.Len())
	}

	ctx := h.Context()
	if len(ctx) != 4 {
		t.Fatalf("Context() returned %d turns, want 4", len(ctx))
	}
	if ctx[0].Text != "message 2" || ctx[3].Text != "message 5" {
		t.Errorf("Context() window = [%q .. %q], want [message 2 .. message 5]", ctx[0].Text, ctx[3].Text)
	}

	// Full record is untouched by the context bound
	if all := h.All(); len(all) != 6 {
		t.Errorf("All() returned %d turns, want 6", len(all))
	}
}

func TestHistory_PersistLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")

	h := New(10, path)
	h.Append(mustTurn(t, models.RoleUser, "what is the revenue?"))
	h.Append(mustTurn(t, models.RoleAssistant, "Revenue grew 12% in Q3."))

	reloaded := New(10, path)
	turns := reloaded.All()
	if len(turns) != 2 {
		t.Fatalf("reloaded %d turns, want 2", len(turns))
	}
	if turns[0].Role != models.RoleUser || turns[0].Text != "what is the revenue?" {
		t.Errorf("turn 0 = %+v", turns[0])
	}
	if turns[1].Role != models.RoleAssistant || turns[1].Text != "Revenue grew 12% in Q3." {
		t.Errorf("turn 1 = %+v", turns[1])
	}
}

func TestHistory_LoadKeepsOnlyBound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")

	h := New(10, path)
	for i := 0; i < 6; i++ {
		h.Append(mustTurn(t, models.RoleUser, fmt.Sprintf("m%d", i)))
	}

	reloaded := New(2, path)
	turns := reloaded.All()
	if len(turns) != 2 {
		t.Fatalf("reloaded %d turns, want bound of 2", len(turns))
	}
	if turns[0].Text != "m4" || turns[1].Text != "m5" {
		t.Errorf("loaded window = [%q, %q], want [m4, m5]", turns[0].Text, turns[1].Text)
	}
}

func TestHistory_CorruptFileYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := New(10, path)
	if h.Len() != 0 {
		t.Errorf("Len() = %d for corrupt file, want 0", h.Len())
	}
}

func TestHistory_MissingFileYieldsEmpty(t *testing.T) {
	h := New(10, filepath.Join(t.TempDir(), "nope.json"))
	if h.Len() != 0 {
		t.Errorf("Len() = %d for missing file, want 0", h.Len())
	}
}

func TestHistory_PersistFailureReturnedNotFatal(t *testing.T) {
	// Point persistence at a directory that does not exist
	h := New(10, filepath.Join(t.TempDir(), "missing-dir", "chat.json"))

	err := h.Append(mustTurn(t, models.RoleUser, "hello there, documents"))
	if err == nil {
		t.Error("Append() = nil error, want persistence failure")
	}
	// The turn is recorded regardless
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")

	h := New(10, path)
	h.Append(mustTurn(t, models.RoleUser, "hello documents"))
	if err := h.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", h.Len())
	}

	if reloaded := New(10, path); reloaded.Len() != 0 {
		t.Errorf("reloaded Len() = %d after Clear, want 0", reloaded.Len())
	}
}
