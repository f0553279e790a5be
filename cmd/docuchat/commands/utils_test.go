// ABOUTME: Tests for shared CLI utility functions

package commands

import (
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny limit", "hello", 3, "hel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-10 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-48 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTime(tt.t); got != tt.want {
				t.Errorf("formatTime() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("old dates use absolute format", func(t *testing.T) {
		old := now.Add(-30 * 24 * time.Hour)
		got := formatTime(old)
		if !strings.Contains(got, "-") {
			t.Errorf("formatTime() = %q, want YYYY-MM-DD format", got)
		}
	})
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "limit"); err != nil {
		t.Errorf("unexpected error for positive value: %v", err)
	}
	if err := validatePositiveInt(0, "limit"); err == nil {
		t.Error("expected error for zero value")
	}
	if err := validatePositiveInt(-1, "limit"); err == nil {
		t.Error("expected error for negative value")
	}
}
